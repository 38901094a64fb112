package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/lib/pq"

	"conguide/internal/domain"
)

// SessionRepository reads scheduled sessions from the ticketing schema
// (rooms, sessions, session_tags, tags).
type SessionRepository struct {
	DB *sql.DB
	// Location converts stored timestamps to convention wall-clock time.
	Location *time.Location
}

// NewSessionRepository returns a read-only SessionRecordRepository. A nil
// loc keeps timestamps in the zone the driver returns.
func NewSessionRepository(db *sql.DB, loc *time.Location) domain.SessionRecordRepository {
	return &SessionRepository{DB: db, Location: loc}
}

// Open connects to Postgres through lib/pq and checks the connection.
func Open(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return db, nil
}

// ListSessionRecordsByEventID returns the event's sessions in start order.
// The first tag (by name) becomes the track.
func (r *SessionRepository) ListSessionRecordsByEventID(ctx context.Context, eventID string) ([]domain.SessionRecord, error) {
	query := `
		SELECT s.id, s.sessionize_session_id, s.title, s.start_time, s.end_time, r.name
		FROM sessions s
		INNER JOIN rooms r ON r.id = s.room_id
		WHERE r.event_id = $1
		ORDER BY s.start_time, r.name
	`
	rows, err := r.DB.QueryContext(ctx, query, eventID)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	defer rows.Close()

	var records []domain.SessionRecord
	var ids []string
	for rows.Next() {
		var (
			id, title, room string
			sourceID        sql.NullString
			start, end      time.Time
		)
		if err := rows.Scan(&id, &sourceID, &title, &start, &end, &room); err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		records = append(records, r.record(id, sourceID, title, start, end, room))
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	if len(ids) == 0 {
		return records, nil
	}

	tags, err := r.firstTags(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i, id := range ids {
		records[i].Track = tags[id]
	}
	return records, nil
}

func (r *SessionRepository) record(id string, sourceID sql.NullString, title string, start, end time.Time, room string) domain.SessionRecord {
	if r.Location != nil {
		start = start.In(r.Location)
		end = end.In(r.Location)
	}
	minutes := int(end.Sub(start).Minutes())
	if minutes < 0 {
		minutes = 0
	}
	sessionID := id
	if sourceID.Valid && sourceID.String != "" {
		sessionID = sourceID.String
	}
	return domain.SessionRecord{
		SessionID: sessionID,
		Day:       start.Weekday().String(),
		Time:      fmt.Sprintf("%d:%02d", start.Hour(), start.Minute()),
		Duration:  fmt.Sprintf("%dmin", minutes),
		Room:      room,
		Title:     title,
	}
}

func (r *SessionRepository) firstTags(ctx context.Context, sessionIDs []string) (map[string]string, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT st.session_id, t.name
		FROM session_tags st
		INNER JOIN tags t ON t.id = st.tag_id
		WHERE st.session_id = ANY($1)
		ORDER BY st.session_id, t.name
	`, pq.Array(sessionIDs))
	if err != nil {
		return nil, fmt.Errorf("list session tags: %w", err)
	}
	defer rows.Close()
	first := make(map[string]string)
	for rows.Next() {
		var sessionID, tag string
		if err := rows.Scan(&sessionID, &tag); err != nil {
			return nil, fmt.Errorf("scan session tag: %w", err)
		}
		if _, ok := first[sessionID]; !ok {
			first[sessionID] = tag
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list session tags: %w", err)
	}
	return first, nil
}

type eventSource struct {
	repo    domain.SessionRecordRepository
	eventID string
}

// NewEventSource adapts a repository to a SessionSource for one event.
func NewEventSource(repo domain.SessionRecordRepository, eventID string) domain.SessionSource {
	return &eventSource{repo: repo, eventID: eventID}
}

func (s *eventSource) Records(ctx context.Context) ([]domain.SessionRecord, error) {
	if s.eventID == "" {
		return nil, fmt.Errorf("event id is required")
	}
	records, err := s.repo.ListSessionRecordsByEventID(ctx, s.eventID)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("event %s: %w", s.eventID, domain.ErrNotFound)
	}
	return records, nil
}
