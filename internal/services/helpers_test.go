package services

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"conguide/internal/domain"
)

// testLogger is a no-op logger so tests don't assert on log output.
var testLogger = slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))

// capturingHandler records every log record at or above level.
type capturingHandler struct {
	level   slog.Level
	records []slog.Record
}

func (h *capturingHandler) Enabled(_ context.Context, l slog.Level) bool { return l >= h.level }

func (h *capturingHandler) Handle(_ context.Context, r slog.Record) error {
	h.records = append(h.records, r.Clone())
	return nil
}

func (h *capturingHandler) WithAttrs(_ []slog.Attr) slog.Handler { return h }

func (h *capturingHandler) WithGroup(_ string) slog.Handler { return h }

func (h *capturingHandler) messages() []string {
	out := make([]string, len(h.records))
	for i, r := range h.records {
		out[i] = r.Message
	}
	return out
}

func rec(id, day, at, dur, room, title string) domain.SessionRecord {
	return domain.SessionRecord{SessionID: id, Day: day, Time: at, Duration: dur, Room: room, Title: title}
}

// loadProgram declares levels (in order) and loads records through a ProgramLoader.
func loadProgram(t *testing.T, levels map[string][]string, order []string, combos map[string][]string, records []domain.SessionRecord) *Program {
	t.Helper()
	reg := domain.NewRegistry()
	for _, name := range order {
		level, _ := reg.GetOrCreateLevel(name)
		for _, room := range levels[name] {
			reg.AddRoomToLevel(level, room)
		}
	}
	for src, targets := range combos {
		reg.SetCombination(src, targets)
	}
	p, err := NewProgramLoader(reg, domain.SessionChanges{}, domain.DefaultMajorThreshold, testLogger).Load(records)
	require.NoError(t, err)
	return p
}

// cell is one recorded renderer call inside a table body.
type cell struct {
	kind string // "text", "gray", "behind", "header"
	nrow int
	ncol int
	text string
	room *domain.Room
}

// recordingRenderer records cells row by row and renders a compact marker
// text so output can also be compared as a string.
type recordingRenderer struct {
	tables [][][]cell
	labels [][]string
}

func (r *recordingRenderer) row() *[]cell {
	t := r.tables[len(r.tables)-1]
	return &t[len(t)-1]
}

func (r *recordingRenderer) Name() string                     { return "record" }
func (r *recordingRenderer) TableAnchor(d *domain.Day) string { return "#" + d.Name + "\n" }
func (r *recordingRenderer) TableTitle(gs *domain.GridSlice) string {
	return "== " + gs.Name + "\n"
}
func (r *recordingRenderer) TableStart(*domain.GridSlice) string {
	r.tables = append(r.tables, nil)
	r.labels = append(r.labels, nil)
	return "["
}
func (r *recordingRenderer) TableEnd() string { return "]\n" }
func (r *recordingRenderer) HeaderRowStart(*domain.GridSlice) string {
	return "<"
}
func (r *recordingRenderer) RowStart(*domain.GridSlice) string {
	i := len(r.tables) - 1
	r.tables[i] = append(r.tables[i], nil)
	return "("
}
func (r *recordingRenderer) RowEnd() string { return ")" }
func (r *recordingRenderer) TableHeaderCell(label string) string {
	i := len(r.labels) - 1
	r.labels[i] = append(r.labels[i], label)
	return label + "|"
}
func (r *recordingRenderer) RowHeaderCell(text string, room *domain.Room) string {
	if room == nil {
		return "-|"
	}
	*r.row() = append(*r.row(), cell{kind: "header", text: text, room: room})
	return text + "|"
}
func (r *recordingRenderer) Title(s *domain.Session) string { return s.Title }
func (r *recordingRenderer) TextCell(nrow, ncol int, text string, room *domain.Room) string {
	*r.row() = append(*r.row(), cell{kind: "text", nrow: nrow, ncol: ncol, text: text, room: room})
	return fmt.Sprintf("T%dx%d:%s|", nrow, ncol, text)
}
func (r *recordingRenderer) GrayCell(ncol int) string {
	*r.row() = append(*r.row(), cell{kind: "gray", nrow: 1, ncol: ncol})
	return fmt.Sprintf("G%d|", ncol)
}
func (r *recordingRenderer) CellBehind() string {
	*r.row() = append(*r.row(), cell{kind: "behind", nrow: 1, ncol: 1})
	return "B|"
}

// bodyCells drops the row header cell of each row.
func bodyCells(row []cell) []cell {
	var out []cell
	for _, c := range row {
		if c.kind != "header" {
			out = append(out, c)
		}
	}
	return out
}

// assertTiles checks that the recorded table covers rows x cols exactly once:
// text and gray cells claim fresh positions, behind cells sit under a text
// cell from an earlier row.
func assertTiles(t *testing.T, table [][]cell, cols int) {
	t.Helper()
	rows := len(table)
	covered := make([][]bool, rows)
	for i := range covered {
		covered[i] = make([]bool, cols)
	}
	for i, row := range table {
		j := 0
		for _, c := range bodyCells(row) {
			switch c.kind {
			case "behind":
				require.Less(t, j, cols, "row %d overflows", i)
				require.True(t, covered[i][j], "behind cell at %d,%d not under a spanning cell", i, j)
				j++
			default:
				for di := 0; di < c.nrow; di++ {
					for dj := 0; dj < c.ncol; dj++ {
						require.Less(t, i+di, rows, "rowspan overflows at %d,%d", i, j)
						require.Less(t, j+dj, cols, "colspan overflows at %d,%d", i, j)
						require.False(t, covered[i+di][j+dj], "overlap at %d,%d", i+di, j+dj)
						covered[i+di][j+dj] = true
					}
				}
				j += c.ncol
			}
		}
		require.Equal(t, cols, j, "row %d width", i)
	}
	for i := range covered {
		for j := range covered[i] {
			require.True(t, covered[i][j], "gap at %d,%d", i, j)
		}
	}
}
