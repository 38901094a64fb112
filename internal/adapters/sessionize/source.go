package sessionize

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"conguide/internal/domain"
)

// Category titles mapped onto session fields.
const (
	trackCategory = "track"
	typeCategory  = "session format"
)

type source struct {
	client       *Client
	sessionizeID string
}

// NewSource returns a SessionSource over the given Sessionize event.
func NewSource(client *Client, sessionizeID string) domain.SessionSource {
	return &source{client: client, sessionizeID: sessionizeID}
}

// Records fetches the "All" view. Unscheduled sessions (no start time or
// room) are skipped; the rest come back in start order so days are seen
// chronologically.
func (s *source) Records(ctx context.Context) ([]domain.SessionRecord, error) {
	if s.sessionizeID == "" {
		return nil, fmt.Errorf("sessionize id is required")
	}
	data, err := s.client.fetchAll(ctx, s.sessionizeID)
	if err != nil {
		return nil, err
	}
	return toRecords(data), nil
}

func toRecords(data *allResponse) []domain.SessionRecord {
	rooms := make(map[int]string, len(data.Rooms))
	for _, r := range data.Rooms {
		rooms[r.ID] = r.Name
	}
	speakers := make(map[string]string, len(data.Speakers))
	for _, sp := range data.Speakers {
		speakers[sp.ID] = sp.FullName
	}
	itemField := make(map[int]string)
	itemName := make(map[int]string)
	for _, cat := range data.Categories {
		field := strings.ToLower(cat.Title)
		for _, item := range cat.Items {
			itemField[item.ID] = field
			itemName[item.ID] = item.Name
		}
	}

	sessions := slices.Clone(data.Sessions)
	slices.SortStableFunc(sessions, func(a, b apiSession) int {
		return a.StartsAt.Compare(b.StartsAt.Time)
	})

	var out []domain.SessionRecord
	for _, sess := range sessions {
		room, ok := rooms[sess.RoomID]
		if sess.StartsAt.IsZero() || !ok {
			continue
		}
		minutes := int(sess.EndsAt.Sub(sess.StartsAt.Time).Minutes())
		if sess.EndsAt.IsZero() || minutes < 0 {
			minutes = 0
		}
		rec := domain.SessionRecord{
			SessionID: sess.ID,
			Day:       sess.StartsAt.Weekday().String(),
			Time:      fmt.Sprintf("%d:%02d", sess.StartsAt.Hour(), sess.StartsAt.Minute()),
			Duration:  fmt.Sprintf("%dmin", minutes),
			Room:      room,
			Title:     sess.Title,
		}
		for _, id := range sess.CategoryItems {
			switch itemField[id] {
			case trackCategory:
				if rec.Track == "" {
					rec.Track = itemName[id]
				}
			case typeCategory:
				if rec.Type == "" {
					rec.Type = itemName[id]
				}
			}
		}
		for _, id := range sess.Speakers {
			if name, ok := speakers[id]; ok {
				rec.Participants = append(rec.Participants, name)
			}
		}
		out = append(out, rec)
	}
	return out
}
