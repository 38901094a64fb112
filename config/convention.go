package config

import (
	"fmt"
	"log/slog"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"conguide/internal/domain"
)

const pointsPerInch = 72.0

// Convention is the layout file: rooms, levels and grid settings for one event.
type Convention struct {
	Name                string                `yaml:"convention"`
	MajorThreshold      int                   `yaml:"major_threshold"`
	ScheduleLink        string                `yaml:"schedule_link"`
	Levels              []LevelConfig         `yaml:"levels"`
	Rooms               map[string]RoomConfig `yaml:"rooms"`
	Grid                map[string]GridConfig `yaml:"grid"`
	NoPrint             []domain.Rule         `yaml:"no_print"`
	TitlePrune          []string              `yaml:"title_prune"`
	ParticipantsAsTitle []domain.Rule         `yaml:"title_from_participants"`
	Changes             domain.SessionChanges `yaml:"changes"`
}

// LevelConfig declares a level and its rooms in grid order.
type LevelConfig struct {
	Name  string   `yaml:"name"`
	Rooms []string `yaml:"rooms"`
}

// RoomConfig overrides how a room is shown.
type RoomConfig struct {
	DisplayName string   `yaml:"display_name"`
	Usage       string   `yaml:"usage"`
	Combination []string `yaml:"combination"`
}

// GridConfig holds one output format's grid settings. Lengths are in inches.
type GridConfig struct {
	PrintEmptyRooms string        `yaml:"print_empty_rooms"`
	Slices          []SliceConfig `yaml:"slices"`
	TableWidth      float64       `yaml:"table_width"`
	TableHeight     float64       `yaml:"table_height"`
	HeaderWidth     float64       `yaml:"header_width"`
	HeaderHeight    float64       `yaml:"header_height"`
	MinCellHeight   float64       `yaml:"minimum_cell_height"`
	MaxCellHeight   float64       `yaml:"maximum_cell_height"`
}

// SliceConfig is a named time window, e.g. {name: Evening, start: "6:00pm", end: "midnight"}.
type SliceConfig struct {
	Name  string `yaml:"name"`
	Start string `yaml:"start"`
	End   string `yaml:"end"`
}

// LoadConvention reads and parses the YAML layout file at path.
func LoadConvention(path string) (*Convention, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read convention file: %w", err)
	}
	return ParseConvention(data)
}

// ParseConvention parses a YAML layout document.
func ParseConvention(data []byte) (*Convention, error) {
	var c Convention
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parse convention file: %w", err)
	}
	if c.MajorThreshold == 0 {
		c.MajorThreshold = domain.DefaultMajorThreshold
	}
	if c.ScheduleLink == "" {
		c.ScheduleLink = "schedule.html"
	}
	return &c, nil
}

// BuildRegistry declares the configured levels and rooms, in file order, and
// applies the per-room overrides.
func (c *Convention) BuildRegistry(logger *slog.Logger) *domain.Registry {
	reg := domain.NewRegistry()
	for _, lc := range c.Levels {
		level, _ := reg.GetOrCreateLevel(lc.Name)
		for _, name := range lc.Rooms {
			reg.AddRoomToLevel(level, name)
		}
	}
	names := make([]string, 0, len(c.Rooms))
	for name := range c.Rooms {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if _, ok := reg.Room(name); !ok {
			logger.Warn("room override for room not on any level", "room", name)
		}
	}
	for _, name := range names {
		rc := c.Rooms[name]
		room, _ := reg.GetOrCreateRoom(name)
		room.DisplayName = rc.DisplayName
		room.Usage = rc.Usage
		if len(rc.Combination) > 0 {
			reg.SetCombination(name, rc.Combination)
		}
	}
	return reg
}

// Layout returns the grid layout for format. ok is false when the file has no
// grid section for it, which callers treat as nothing to render.
func (c *Convention) Layout(format string) (layout domain.GridLayout, ok bool, err error) {
	gc, ok := c.Grid[format]
	if !ok {
		return domain.GridLayout{Format: format}, false, nil
	}
	slices, err := parseSlices(gc.Slices)
	if err != nil {
		return domain.GridLayout{}, true, fmt.Errorf("grid %s: %w", format, err)
	}
	return domain.GridLayout{
		Format:        format,
		Fixed:         gc.PrintEmptyRooms == "major",
		Slices:        slices,
		TableWidth:    gc.TableWidth * pointsPerInch,
		TableHeight:   gc.TableHeight * pointsPerInch,
		HeaderWidth:   gc.HeaderWidth * pointsPerInch,
		HeaderHeight:  gc.HeaderHeight * pointsPerInch,
		MinCellHeight: gc.MinCellHeight * pointsPerInch,
		MaxCellHeight: gc.MaxCellHeight * pointsPerInch,
	}, true, nil
}

// parseSlices converts slice windows to clock times. A slice starting before
// the first slice belongs to the small hours and moves forward a day; a slice
// ending before it starts runs past midnight.
func parseSlices(in []SliceConfig) ([]domain.Slice, error) {
	out := make([]domain.Slice, 0, len(in))
	for _, sc := range in {
		start, err := parseSliceTime(sc.Start)
		if err != nil {
			return nil, fmt.Errorf("slice %q start: %w", sc.Name, err)
		}
		end, err := parseSliceTime(sc.End)
		if err != nil {
			return nil, fmt.Errorf("slice %q end: %w", sc.Name, err)
		}
		if len(out) > 0 && start.Before(out[0].Start) {
			start.Hour += 24
		}
		if end.Before(start) {
			end.Hour += 24
		}
		out = append(out, domain.Slice{Name: sc.Name, Start: start, End: end})
	}
	return out, nil
}

func parseSliceTime(s string) (domain.ClockTime, error) {
	switch s {
	case "midnight":
		return domain.ClockTime{Hour: 0}, nil
	case "noon":
		return domain.ClockTime{Hour: 12}, nil
	}
	return domain.ParseClockTime(s)
}
