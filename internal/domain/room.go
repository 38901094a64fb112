package domain

// DefaultMajorThreshold is the session count a room must exceed to be major.
const DefaultMajorThreshold = 5

// Level groups rooms, usually a floor of the venue.
type Level struct {
	Index int     `json:"index"`
	Name  string  `json:"name"`
	Rooms []*Room `json:"-"`
}

func (l *Level) String() string {
	return l.Name
}

// Room is a grid row. Sessions holds the sessions scheduled in the room as
// loaded; GridSessions holds what the grid shows after combination fan-out.
type Room struct {
	Index       int        `json:"index"`
	Name        string     `json:"name"`
	DisplayName string     `json:"display_name"`
	Usage       string     `json:"usage,omitempty"`
	Level       *Level     `json:"-"`
	Sessions    []*Session `json:"-"`

	// Combination lists the rooms this room's sessions fan out to on the grid.
	Combination  []*Room    `json:"-"`
	GridSessions []*Session `json:"-"`

	Major bool `json:"major"`
	// Last is set on the last major room of each level.
	Last bool `json:"last"`
}

func (r *Room) String() string {
	if r.DisplayName != "" {
		return r.DisplayName
	}
	return r.Name
}

// Registry owns rooms and levels for one run. Rooms and levels are indexed in
// creation order and looked up by name through separate maps.
type Registry struct {
	rooms       []*Room
	roomsByName map[string]*Room

	levels       []*Level
	levelsByName map[string]*Level
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		roomsByName:  make(map[string]*Room),
		levelsByName: make(map[string]*Level),
	}
}

// GetOrCreateLevel returns the level called name, creating it if needed.
// created reports whether the level is new.
func (r *Registry) GetOrCreateLevel(name string) (level *Level, created bool) {
	if l, ok := r.levelsByName[name]; ok {
		return l, false
	}
	l := &Level{Index: len(r.levels), Name: name}
	r.levels = append(r.levels, l)
	r.levelsByName[name] = l
	return l, true
}

// GetOrCreateRoom returns the room called name, creating it with the next
// index if needed. created reports whether the room was not declared before,
// which callers treat as a warning.
func (r *Registry) GetOrCreateRoom(name string) (room *Room, created bool) {
	if rm, ok := r.roomsByName[name]; ok {
		return rm, false
	}
	rm := &Room{Index: len(r.rooms), Name: name}
	r.rooms = append(r.rooms, rm)
	r.roomsByName[name] = rm
	return rm, true
}

// AddRoomToLevel declares a room on a level.
func (r *Registry) AddRoomToLevel(level *Level, name string) *Room {
	room, _ := r.GetOrCreateRoom(name)
	if room.Level == nil {
		room.Level = level
		level.Rooms = append(level.Rooms, room)
	}
	return room
}

// Room looks up a room by name.
func (r *Registry) Room(name string) (*Room, bool) {
	rm, ok := r.roomsByName[name]
	return rm, ok
}

// Rooms returns all rooms in index order.
func (r *Registry) Rooms() []*Room {
	return r.rooms
}

// Levels returns all levels in index order.
func (r *Registry) Levels() []*Level {
	return r.levels
}

// SetCombination makes source fan out to the named target rooms.
func (r *Registry) SetCombination(source string, targets []string) {
	src, _ := r.GetOrCreateRoom(source)
	src.Combination = src.Combination[:0]
	for _, name := range targets {
		t, _ := r.GetOrCreateRoom(name)
		src.Combination = append(src.Combination, t)
	}
}

// ApplyCombinations fills GridSessions for every room. A room with a
// combination list hands its sessions to each target and keeps none itself.
// Session.Room is not changed.
func (r *Registry) ApplyCombinations() {
	for _, room := range r.rooms {
		room.GridSessions = append([]*Session(nil), room.Sessions...)
	}
	for _, room := range r.rooms {
		if len(room.Combination) == 0 {
			continue
		}
		for _, target := range room.Combination {
			if target == room {
				continue
			}
			target.GridSessions = append(target.GridSessions, room.Sessions...)
		}
		room.GridSessions = nil
	}
}

// ClassifyMajor marks rooms with more than threshold grid sessions as major
// and flags the last major room on each level. It can be called again and
// gives the same result.
func (r *Registry) ClassifyMajor(threshold int) {
	for _, room := range r.rooms {
		room.Major = len(room.GridSessions) > threshold
		room.Last = false
	}
	for _, level := range r.levels {
		for i := len(level.Rooms) - 1; i >= 0; i-- {
			if level.Rooms[i].Major {
				level.Rooms[i].Last = true
				break
			}
		}
	}
}

// MajorCount returns the number of major rooms.
func (r *Registry) MajorCount() int {
	n := 0
	for _, room := range r.rooms {
		if room.Major {
			n++
		}
	}
	return n
}
