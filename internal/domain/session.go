package domain

import (
	"context"
	"slices"
)

// Session is one scheduled program item.
type Session struct {
	SessionID    string    `json:"session_id"`
	Index        int       `json:"index"`
	Time         ClockTime `json:"time"`
	Duration     Duration  `json:"duration"`
	Room         *Room     `json:"-"`
	Title        string    `json:"title"`
	Track        string    `json:"track"`
	Type         string    `json:"type"`
	Participants []string  `json:"participants"`
	Moderators   []string  `json:"moderators"`
}

// NewSession returns a Session with the given fields. Index is assigned later by SortSessions.
func NewSession(sessionID string, t ClockTime, d Duration, room *Room, title, track, typ string, participants, moderators []string) *Session {
	return &Session{
		SessionID:    sessionID,
		Time:         t,
		Duration:     d,
		Room:         room,
		Title:        title,
		Track:        track,
		Type:         typ,
		Participants: participants,
		Moderators:   moderators,
	}
}

// Day returns the day the session is scheduled on, or nil.
func (s *Session) Day() *Day {
	return s.Time.Day
}

// End returns the session end time. The hour is not wrapped past midnight.
func (s *Session) End() ClockTime {
	return s.Time.Add(s.Duration)
}

// IsModerator reports whether name moderates the session.
func (s *Session) IsModerator(name string) bool {
	return slices.Contains(s.Moderators, name)
}

// Compare orders sessions by day, time and then a tie-break. While either
// session has no display index yet the room index breaks ties; afterwards
// the display index does.
func (s *Session) Compare(o *Session) int {
	if c := cmpInt(dayIndex(s.Time.Day), dayIndex(o.Time.Day)); c != 0 {
		return c
	}
	if c := cmpInt(s.Time.Hour, o.Time.Hour); c != 0 {
		return c
	}
	if c := cmpInt(s.Time.Minute, o.Time.Minute); c != 0 {
		return c
	}
	if s.Index == 0 || o.Index == 0 {
		return cmpInt(roomIndex(s.Room), roomIndex(o.Room))
	}
	return cmpInt(s.Index, o.Index)
}

// SortSessions sorts sessions with the provisional room tie-break and then
// assigns display indices starting at 1.
func SortSessions(sessions []*Session) {
	for _, s := range sessions {
		s.Index = 0
	}
	slices.SortStableFunc(sessions, (*Session).Compare)
	for i, s := range sessions {
		s.Index = i + 1
	}
}

func dayIndex(d *Day) int {
	if d == nil {
		return -1
	}
	return d.Index
}

func roomIndex(r *Room) int {
	if r == nil {
		return -1
	}
	return r.Index
}

// SessionRecord is a session as it arrives from an importer, before times
// are parsed and rooms resolved.
type SessionRecord struct {
	SessionID    string   `json:"sessionid"`
	Day          string   `json:"day"`
	Time         string   `json:"time"`
	Duration     string   `json:"duration"`
	Room         string   `json:"room"`
	Level        string   `json:"level,omitempty"`
	Title        string   `json:"title"`
	Track        string   `json:"track"`
	Type         string   `json:"type"`
	Participants []string `json:"participants"`
	Moderators   []string `json:"moderators"`
}

// SessionSource yields session records from an import (CSV file, Sessionize, database).
type SessionSource interface {
	Records(ctx context.Context) ([]SessionRecord, error)
}

// SessionRecordRepository reads session records stored for an event.
type SessionRecordRepository interface {
	ListSessionRecordsByEventID(ctx context.Context, eventID string) ([]SessionRecord, error)
}
