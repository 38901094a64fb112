package services

import (
	"fmt"
	"strings"

	"conguide/internal/domain"
)

var (
	halfHour    = domain.Duration{Minute: 30}
	shortLength = domain.Duration{Minute: 15}
)

// Slicer cuts the matrix into day x slice tables and writes them through a
// GridRenderer.
type Slicer struct {
	matrix     *Matrix
	rooms      []*domain.Room
	days       []*domain.Day
	majorCount int
	// participantsAsTitle selects sessions whose cell shows the participant
	// list instead of the title.
	participantsAsTitle func(*domain.Session) bool
}

// NewSlicer returns a Slicer over m. rooms must be in registry order.
func NewSlicer(m *Matrix, rooms []*domain.Room, days []*domain.Day, participantsAsTitle func(*domain.Session) bool) *Slicer {
	n := 0
	for _, r := range rooms {
		if r.Major {
			n++
		}
	}
	return &Slicer{matrix: m, rooms: rooms, days: days, majorCount: n, participantsAsTitle: participantsAsTitle}
}

// Slices returns the non-empty grid slices for layout, day by day.
func (sl *Slicer) Slices(layout domain.GridLayout) []*domain.GridSlice {
	var out []*domain.GridSlice
	for _, day := range sl.days {
		for _, s := range layout.Slices {
			if gs := sl.slice(day, s, layout.Fixed); gs != nil {
				out = append(out, gs)
			}
		}
	}
	return out
}

func (sl *Slicer) slice(day *domain.Day, s domain.Slice, fixed bool) *domain.GridSlice {
	gs := &domain.GridSlice{
		Name:       fmt.Sprintf("%s %s", day.Name, s.Name),
		Day:        day,
		Start:      s.Start.On(day),
		End:        s.End.On(day),
		MajorCount: sl.majorCount,
	}
	gs.StartIndex = gs.Start.Offset()
	gs.EndIndex = gs.End.Offset()
	if gs.Columns() <= 0 {
		return nil
	}

	active := false
	for _, room := range sl.rooms {
		busy := sl.matrix.Active(room, gs.StartIndex, gs.EndIndex)
		if busy || (fixed && room.Major) {
			gs.Rooms = append(gs.Rooms, room)
		}
		active = active || busy
	}
	if !active {
		return nil
	}
	return gs
}

// Render writes every non-empty slice of layout. body is the full sequence
// including day anchors; fragments holds each table on its own.
func (sl *Slicer) Render(r domain.GridRenderer, layout domain.GridLayout) (body string, fragments []domain.GridFragment) {
	var b strings.Builder
	for _, day := range sl.days {
		b.WriteString(r.TableAnchor(day))
		for _, s := range layout.Slices {
			gs := sl.slice(day, s, layout.Fixed)
			if gs == nil {
				continue
			}
			table := sl.WriteTable(r, gs)
			b.WriteString(table)
			fragments = append(fragments, domain.GridFragment{Slice: gs, Markup: table})
		}
	}
	return b.String(), fragments
}

// WriteTable renders one slice.
func (sl *Slicer) WriteTable(r domain.GridRenderer, gs *domain.GridSlice) string {
	var b strings.Builder
	b.WriteString(r.TableTitle(gs))
	b.WriteString(r.TableStart(gs))

	b.WriteString(r.HeaderRowStart(gs))
	b.WriteString(r.RowHeaderCell("", nil))
	for t := gs.Start; t.Before(gs.End); t = t.Add(halfHour) {
		b.WriteString(r.TableHeaderCell(t.GridLabel()))
	}
	b.WriteString(r.RowEnd())

	covered := make([][]bool, len(gs.Rooms))
	for i := range covered {
		covered[i] = make([]bool, gs.Columns())
	}
	for i := range gs.Rooms {
		sl.writeRow(&b, r, gs, i, covered)
	}
	b.WriteString(r.TableEnd())
	return b.String()
}

// writeRow emits row i. covered marks the positions already claimed by a
// rowspan from an earlier row; those become continuation cells.
func (sl *Slicer) writeRow(b *strings.Builder, r domain.GridRenderer, gs *domain.GridSlice, i int, covered [][]bool) {
	room := gs.Rooms[i]
	b.WriteString(r.RowStart(gs))
	b.WriteString(r.RowHeaderCell(roomHeader(room), room))
	for j := gs.StartIndex; j < gs.EndIndex; {
		if covered[i][j-gs.StartIndex] {
			b.WriteString(r.CellBehind())
			j++
			continue
		}
		ncol := sl.colspan(gs, i, j, covered[i])
		cell := sl.matrix.At(room, j)
		nrow := 1
		if cell != nil {
			nrow = sl.rowspan(gs, i, j, ncol)
			for k := i + 1; k < i+nrow; k++ {
				for c := j; c < j+ncol; c++ {
					covered[k][c-gs.StartIndex] = true
				}
			}
		}
		b.WriteString(sl.cell(r, gs, room, cell, nrow, ncol))
		j += ncol
	}
	b.WriteString(r.RowEnd())
}

func (sl *Slicer) cell(r domain.GridRenderer, gs *domain.GridSlice, room *domain.Room, cell *domain.Bucket, nrow, ncol int) string {
	if cell == nil {
		return r.GrayCell(ncol)
	}
	titles := make([]string, 0, len(cell.Sessions))
	for _, s := range cell.Sessions {
		if sl.participantsAsTitle != nil && sl.participantsAsTitle(s) && len(s.Participants) > 0 {
			alt := *s
			alt.Title = strings.Join(s.Participants, ", ")
			s = &alt
		}
		titles = append(titles, r.Title(s)+annotation(s, gs))
	}
	return r.TextCell(nrow, ncol, strings.Join(titles, ", "), room)
}

// annotation marks sessions that started before the slice or off the
// half-hour grid, and sessions shorter than a quarter hour, e.g.
// "<i> (4:30pm, 10min)</i>".
func annotation(s *domain.Session, gs *domain.GridSlice) string {
	var notes []string
	if s.Time.Before(gs.Start) || s.Time.Minute%30 != 0 {
		notes = append(notes, strings.Replace(s.Time.String(), ":00", "", 1))
	}
	if s.Duration.Less(shortLength) {
		notes = append(notes, s.Duration.String())
	}
	if len(notes) == 0 {
		return ""
	}
	return "<i> (" + strings.Join(notes, ", ") + ")</i>"
}

// colspan is the length of the run at j in row i, stopping at the slice end
// or at a position claimed from above.
func (sl *Slicer) colspan(gs *domain.GridSlice, i, j int, covered []bool) int {
	room := gs.Rooms[i]
	cell := sl.matrix.At(room, j)
	k := j + 1
	for k < gs.EndIndex && !covered[k-gs.StartIndex] && domain.SameContent(sl.matrix.At(room, k), cell) {
		k++
	}
	return k - j
}

// rowspan extends the cell at (i, j) down over the following rows whose run
// covers exactly [j, j+ncol) with the same content.
func (sl *Slicer) rowspan(gs *domain.GridSlice, i, j, ncol int) int {
	cell := sl.matrix.At(gs.Rooms[i], j)
	k := i + 1
	for k < len(gs.Rooms) && sl.sameRun(gs, gs.Rooms[k], j, ncol, cell) {
		k++
	}
	return k - i
}

func (sl *Slicer) sameRun(gs *domain.GridSlice, room *domain.Room, j, ncol int, cell *domain.Bucket) bool {
	for c := j; c < j+ncol; c++ {
		if !domain.SameContent(sl.matrix.At(room, c), cell) {
			return false
		}
	}
	if j > gs.StartIndex && domain.SameContent(sl.matrix.At(room, j-1), cell) {
		return false
	}
	end := j + ncol
	return end >= gs.EndIndex || !domain.SameContent(sl.matrix.At(room, end), cell)
}

// roomHeader is the row header text: the room name with its usage in
// italics on a second line.
func roomHeader(room *domain.Room) string {
	if room.Usage == "" {
		return room.String()
	}
	return room.String() + "\n<i>" + room.Usage + "</i>"
}
