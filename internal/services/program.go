package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"conguide/internal/domain"
)

// Program is a loaded convention schedule.
type Program struct {
	Sessions []*domain.Session
	Registry *domain.Registry
	Days     *domain.DayRegistry
}

// ProgramLoader turns session records into sessions bound to days and rooms.
type ProgramLoader struct {
	registry       *domain.Registry
	days           *domain.DayRegistry
	changes        domain.SessionChanges
	majorThreshold int
	logger         *slog.Logger
}

// NewProgramLoader returns a loader that resolves rooms against registry.
// Rooms and levels the registry doesn't know are created with a warning.
func NewProgramLoader(registry *domain.Registry, changes domain.SessionChanges, majorThreshold int, logger *slog.Logger) *ProgramLoader {
	if majorThreshold <= 0 {
		majorThreshold = domain.DefaultMajorThreshold
	}
	return &ProgramLoader{
		registry:       registry,
		days:           domain.NewDayRegistry(),
		changes:        changes,
		majorThreshold: majorThreshold,
		logger:         logger,
	}
}

// Load parses every record. The first malformed time or duration aborts the
// load. Sessions come back sorted with display indices assigned, and the
// registry has combinations applied and major rooms classified.
func (l *ProgramLoader) Load(records []domain.SessionRecord) (*Program, error) {
	sessions := make([]*domain.Session, 0, len(records))
	for _, rec := range records {
		s, err := l.session(rec)
		if err != nil {
			return nil, fmt.Errorf("session %s: %w", rec.SessionID, err)
		}
		sessions = append(sessions, s)
	}

	domain.SortSessions(sessions)
	l.registry.ApplyCombinations()
	l.registry.ClassifyMajor(l.majorThreshold)

	l.logger.Debug("program loaded",
		"sessions", len(sessions),
		"rooms", len(l.registry.Rooms()),
		"days", l.days.Len(),
		"major_rooms", l.registry.MajorCount(),
	)
	return &Program{Sessions: sessions, Registry: l.registry, Days: l.days}, nil
}

func (l *ProgramLoader) session(rec domain.SessionRecord) (*domain.Session, error) {
	rec = l.applyChanges(rec)

	t, err := domain.ParseClockTime(rec.Time)
	if err != nil {
		return nil, err
	}
	d, err := domain.ParseDuration(rec.Duration)
	if err != nil {
		return nil, err
	}
	t = t.On(l.days.Get(rec.Day))

	room, created := l.registry.GetOrCreateRoom(rec.Room)
	if created {
		l.logger.Warn("new room", "room", rec.Room, "session", rec.SessionID)
	}
	if rec.Level != "" && room.Level == nil {
		level, created := l.registry.GetOrCreateLevel(rec.Level)
		if created {
			l.logger.Warn("new level", "level", rec.Level, "room", rec.Room)
		}
		room.Level = level
		level.Rooms = append(level.Rooms, room)
	}

	s := domain.NewSession(rec.SessionID, t, d, room, rec.Title, rec.Track, rec.Type, rec.Participants, rec.Moderators)
	room.Sessions = append(room.Sessions, s)
	return s, nil
}

func (l *ProgramLoader) applyChanges(rec domain.SessionRecord) domain.SessionRecord {
	rec.Room = strings.TrimSpace(rec.Room)
	if name, ok := l.changes.RoomByName[rec.Room]; ok {
		rec.Room = name
	}
	if name, ok := l.changes.RoomBySession[rec.SessionID]; ok {
		rec.Room = name
	}
	if title, ok := l.changes.TitleBySession[rec.SessionID]; ok {
		rec.Title = title
	}
	return rec
}

type programService struct {
	source         domain.SessionSource
	loader         *ProgramLoader
	contextTimeout time.Duration
}

// ProgramService fetches records from a source and loads them.
type ProgramService interface {
	Load(ctx context.Context) (*Program, error)
}

// NewProgramService returns a ProgramService reading from source.
func NewProgramService(source domain.SessionSource, loader *ProgramLoader, timeout time.Duration) ProgramService {
	return &programService{source: source, loader: loader, contextTimeout: timeout}
}

func (s *programService) Load(ctx context.Context) (*Program, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	records, err := s.source.Records(ctx)
	if err != nil {
		return nil, fmt.Errorf("read sessions: %w", err)
	}
	return s.loader.Load(records)
}
