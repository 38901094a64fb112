package domain

// Output format names.
const (
	FormatHTML     = "html"
	FormatInDesign = "indesign"
	FormatXML      = "xml"
)

// GridLayout is the per-format grid configuration. Lengths are in points.
type GridLayout struct {
	Format string
	// Fixed renders every major room in every slice, even when empty.
	Fixed  bool
	Slices []Slice

	TableWidth    float64
	TableHeight   float64
	HeaderWidth   float64
	HeaderHeight  float64
	MinCellHeight float64
	MaxCellHeight float64
}

// Rule matches a session field against a value, e.g. title starts_with "Load-in".
type Rule struct {
	Field string `yaml:"field"`
	Op    string `yaml:"op"`
	Value string `yaml:"value"`
}

// SessionChanges renames rooms and titles before sessions are resolved.
type SessionChanges struct {
	RoomByName     map[string]string `yaml:"room_by_name"`
	RoomBySession  map[string]string `yaml:"room_by_session"`
	TitleBySession map[string]string `yaml:"title_by_session"`
}
