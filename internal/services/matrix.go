package services

import (
	"slices"

	"conguide/internal/domain"
)

// Matrix holds one row of half-hour buckets per room.
type Matrix struct {
	rows  map[*domain.Room][]*domain.Bucket
	slots int
}

// BuildMatrix lays every room's grid sessions out in half-hour buckets.
// Rows cover days+1 days so sessions running past midnight on the last day
// still fit. Sessions for which skip returns true are left off the grid.
func BuildMatrix(rooms []*domain.Room, days int, skip func(*domain.Session) bool) *Matrix {
	m := &Matrix{
		rows:  make(map[*domain.Room][]*domain.Bucket, len(rooms)),
		slots: (days + 1) * domain.SlotsPerDay,
	}
	for _, room := range rooms {
		row := make([]*domain.Bucket, m.slots)
		for _, s := range room.GridSessions {
			if skip != nil && skip(s) {
				continue
			}
			place(row, s)
		}
		m.rows[room] = row
	}
	return m
}

// place writes s into the buckets it covers. A bucket already holding a
// group with the same start time takes s as a co-scheduled member, and an
// empty bucket continues whatever s occupied in the slot before. Any other
// bucket is replaced with a fresh group holding only s, so the later start
// wins.
func place(row []*domain.Bucket, s *domain.Session) {
	off, end := slotSpan(s)
	var last, fresh *domain.Bucket
	for ; off < min(end, len(row)); off++ {
		cur := row[off]
		switch {
		case cur != nil && cur.Start().Equal(s.Time):
			if !slices.Contains(cur.Sessions, s) {
				cur.Sessions = append(cur.Sessions, s)
			}
		case cur == nil && last != nil:
			row[off] = last
		default:
			if fresh == nil {
				fresh = &domain.Bucket{Sessions: []*domain.Session{s}}
			}
			row[off] = fresh
		}
		last = row[off]
	}
}

// slotSpan returns the half-open bucket range [start, end) of s. Sessions
// whose start and end round to the same bucket are widened by one bucket on
// the side they mostly fall in. Sessions under 30 minutes that straddle a
// quarter hour (4:05-4:25) round apart instead and render like half-hour
// sessions.
func slotSpan(s *domain.Session) (start, end int) {
	start = s.Time.Offset()
	end = s.Time.Add(s.Duration).Offset()
	if start != end {
		return start, end
	}

	startMin := s.Time.Minute
	endMin := startMin + s.Duration.Minute
	switch {
	// entirely in the first half of a slot, e.g. 4:00-4:10
	case startMin < 15 || (startMin >= 30 && startMin < 45):
		end++
	// entirely in the second half, e.g. 4:20-4:30
	case (endMin >= 15 && endMin <= 30) || (endMin >= 45 && endMin <= 60):
		start--
	// crosses a half-hour or hour boundary: keep the side holding more of it
	default:
		boundary := 30
		if startMin >= 30 {
			boundary = 60
		}
		before := boundary - startMin
		after := endMin - boundary
		if before > after {
			start--
		} else {
			end++
		}
	}
	if start < 0 {
		start = 0
		end = max(end, 1)
	}
	return start, end
}

// Row returns the buckets for room. Rooms not in the matrix have no row.
func (m *Matrix) Row(room *domain.Room) []*domain.Bucket {
	return m.rows[room]
}

// At returns the bucket at off, or nil for an empty or out of range slot.
func (m *Matrix) At(room *domain.Room, off int) *domain.Bucket {
	row := m.rows[room]
	if off < 0 || off >= len(row) {
		return nil
	}
	return row[off]
}

// Slots returns the row length.
func (m *Matrix) Slots() int {
	return m.slots
}

// Active reports whether room has any session in [start, end).
func (m *Matrix) Active(room *domain.Room, start, end int) bool {
	for off := start; off < end; off++ {
		if m.At(room, off) != nil {
			return true
		}
	}
	return false
}
