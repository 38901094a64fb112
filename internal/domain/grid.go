package domain

import (
	"context"
	"slices"
)

// Bucket is a group of sessions sharing one start time. The same Bucket is
// stored in every half-hour slot the group covers.
type Bucket struct {
	Sessions []*Session
}

// Start returns the start time shared by the bucket's sessions.
func (b *Bucket) Start() ClockTime {
	return b.Sessions[0].Time
}

// SameContent reports whether a and b hold the same sessions in the same
// order. Two empty slots compare equal.
func SameContent(a, b *Bucket) bool {
	if a == b {
		return true
	}
	if a == nil || b == nil {
		return false
	}
	return slices.Equal(a.Sessions, b.Sessions)
}

// Slice is a configured time window within a day, before it is bound to a day.
type Slice struct {
	Name  string    `json:"name" yaml:"name"`
	Start ClockTime `json:"start" yaml:"-"`
	End   ClockTime `json:"end" yaml:"-"`
}

// GridSlice is one printable table: a slice bound to a day with the rooms
// that appear in it.
type GridSlice struct {
	Name       string    `json:"name"`
	Day        *Day      `json:"-"`
	Start      ClockTime `json:"start"`
	End        ClockTime `json:"end"`
	StartIndex int       `json:"start_index"`
	EndIndex   int       `json:"end_index"`
	Rooms      []*Room   `json:"rooms"`
	// MajorCount is the number of major rooms in the registry; fixed layouts
	// size rows from it.
	MajorCount int `json:"major_count"`
}

// Columns returns the number of half-hour columns in the slice.
func (g *GridSlice) Columns() int {
	return g.EndIndex - g.StartIndex
}

// GridRenderer writes one output format's markup. Each method returns a
// fragment of the table; the slicer concatenates them in order.
type GridRenderer interface {
	Name() string
	TableAnchor(day *Day) string
	TableTitle(slice *GridSlice) string
	TableStart(slice *GridSlice) string
	TableEnd() string
	HeaderRowStart(slice *GridSlice) string
	RowStart(slice *GridSlice) string
	RowEnd() string
	TableHeaderCell(label string) string
	RowHeaderCell(text string, room *Room) string
	Title(s *Session) string
	TextCell(nrow, ncol int, text string, room *Room) string
	GrayCell(ncol int) string
	CellBehind() string
}

// GridDocument wraps rendered tables into a complete output file.
type GridDocument interface {
	GridRenderer
	DocumentStart(days []*Day) string
	DocumentEnd() string
	// Encode converts the finished document into its file encoding.
	Encode(doc string) ([]byte, error)
}

// GridFragment is one rendered table.
type GridFragment struct {
	Slice  *GridSlice `json:"slice"`
	Markup string     `json:"markup"`
}

// GridService builds the grid and renders it for each output format.
type GridService interface {
	Formats() []string
	Slices(ctx context.Context, format string) ([]*GridSlice, error)
	Fragments(ctx context.Context, format string) ([]GridFragment, error)
	Document(ctx context.Context, format string) ([]byte, error)
}
