// Package csvimport reads program sessions from a CSV export with one row
// per session. Header names are matched case-insensitively.
package csvimport

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"

	"github.com/gocarina/gocsv"

	"conguide/internal/domain"
)

type sessionRow struct {
	SessionID    string `csv:"sessionid"`
	Day          string `csv:"day"`
	Time         string `csv:"time"`
	Duration     string `csv:"duration"`
	Room         string `csv:"room"`
	Level        string `csv:"level"`
	Title        string `csv:"title"`
	Track        string `csv:"track"`
	Type         string `csv:"type"`
	Participants string `csv:"participants"`
}

var (
	spaceRE       = regexp.MustCompile(`\s+`)
	punctSpaceRE  = regexp.MustCompile(` ([,.;])`)
	participantRE = regexp.MustCompile(`, ?`)
	moderatorRE   = regexp.MustCompile(` ?\(m\)`)
)

type fileSource struct {
	path string
}

// NewFileSource returns a SessionSource that reads the CSV file at path.
func NewFileSource(path string) domain.SessionSource {
	return &fileSource{path: path}
}

func (s *fileSource) Records(ctx context.Context) ([]domain.SessionRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("open session csv: %w", err)
	}
	defer f.Close()
	return Parse(f)
}

// Parse reads session records from r.
func Parse(r io.Reader) ([]domain.SessionRecord, error) {
	var rows []*sessionRow
	if err := gocsv.UnmarshalCSV(newLowerHeaderReader(r), &rows); err != nil {
		return nil, fmt.Errorf("parse session csv: %w", err)
	}
	records := make([]domain.SessionRecord, 0, len(rows))
	for _, row := range rows {
		records = append(records, toRecord(row))
	}
	return records, nil
}

func toRecord(row *sessionRow) domain.SessionRecord {
	participants, moderators := splitParticipants(row.Participants)
	return domain.SessionRecord{
		SessionID:    clean(row.SessionID),
		Day:          clean(row.Day),
		Time:         clean(row.Time),
		Duration:     clean(row.Duration),
		Room:         clean(row.Room),
		Level:        clean(row.Level),
		Title:        clean(row.Title),
		Track:        clean(row.Track),
		Type:         clean(row.Type),
		Participants: participants,
		Moderators:   moderators,
	}
}

// splitParticipants splits "A (m), B, C" into names, collecting the ones
// marked "(m)" as moderators.
func splitParticipants(field string) (participants, moderators []string) {
	if strings.TrimSpace(field) == "" {
		return nil, nil
	}
	for _, p := range participantRE.Split(field, -1) {
		name := clean(moderatorRE.ReplaceAllString(p, ""))
		if moderatorRE.MatchString(p) {
			moderators = append(moderators, name)
		}
		participants = append(participants, name)
	}
	return participants, moderators
}

// clean collapses runs of whitespace and drops spaces before punctuation.
func clean(field string) string {
	field = spaceRE.ReplaceAllString(field, " ")
	field = strings.TrimSpace(field)
	return punctSpaceRE.ReplaceAllString(field, "$1")
}

// lowerHeaderReader lower-cases the header row so column names like
// "SessionID" or "Room" match the struct tags.
type lowerHeaderReader struct {
	r          *csv.Reader
	headerDone bool
}

func newLowerHeaderReader(in io.Reader) *lowerHeaderReader {
	r := csv.NewReader(in)
	r.FieldsPerRecord = -1
	r.LazyQuotes = true
	return &lowerHeaderReader{r: r}
}

func (l *lowerHeaderReader) Read() ([]string, error) {
	rec, err := l.r.Read()
	if err != nil || l.headerDone {
		return rec, err
	}
	l.headerDone = true
	for i, name := range rec {
		rec[i] = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(name, "\ufeff")))
	}
	return rec, nil
}

func (l *lowerHeaderReader) ReadAll() ([][]string, error) {
	var out [][]string
	for {
		rec, err := l.Read()
		if err == io.EOF {
			return out, nil
		}
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
}
