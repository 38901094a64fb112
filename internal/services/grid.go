package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"

	"conguide/internal/domain"
)

// RendererFactory creates a fresh renderer for one rendering pass.
type RendererFactory func(layout domain.GridLayout) domain.GridDocument

// GridOptions configures a grid service.
type GridOptions struct {
	Layouts   map[string]domain.GridLayout
	Renderers map[string]RendererFactory
	// NoPrint selects sessions left off the grid.
	NoPrint *RuleSet
	// ParticipantsAsTitle selects sessions shown by participant names.
	ParticipantsAsTitle *RuleSet
}

type gridService struct {
	program *Program
	opts    GridOptions
	logger  *slog.Logger

	once   sync.Once
	slicer *Slicer
}

// NewGridService returns a GridService over a loaded program. The matrix is
// built on first use and reused afterwards.
func NewGridService(program *Program, opts GridOptions, logger *slog.Logger) domain.GridService {
	return &gridService{program: program, opts: opts, logger: logger}
}

func (s *gridService) build() *Slicer {
	s.once.Do(func() {
		reg := s.program.Registry
		m := BuildMatrix(reg.Rooms(), s.program.Days.Len(), s.opts.NoPrint.Matches)
		s.slicer = NewSlicer(m, reg.Rooms(), s.program.Days.Days(), s.opts.ParticipantsAsTitle.Matches)
		s.logger.Debug("grid matrix built", "rooms", len(reg.Rooms()), "slots", m.Slots())
	})
	return s.slicer
}

// Formats returns the output formats that have both a layout and a renderer.
func (s *gridService) Formats() []string {
	var out []string
	for name := range s.opts.Layouts {
		if _, ok := s.opts.Renderers[name]; ok {
			out = append(out, name)
		}
	}
	sort.Strings(out)
	return out
}

func (s *gridService) layout(format string) (domain.GridLayout, RendererFactory, error) {
	layout, ok := s.opts.Layouts[format]
	if !ok {
		return domain.GridLayout{}, nil, fmt.Errorf("grid format %q: %w", format, domain.ErrNotFound)
	}
	factory, ok := s.opts.Renderers[format]
	if !ok {
		return domain.GridLayout{}, nil, fmt.Errorf("grid renderer %q: %w", format, domain.ErrNotFound)
	}
	return layout, factory, nil
}

func (s *gridService) Slices(ctx context.Context, format string) ([]*domain.GridSlice, error) {
	layout, _, err := s.layout(format)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.build().Slices(layout), nil
}

func (s *gridService) Fragments(ctx context.Context, format string) ([]domain.GridFragment, error) {
	layout, factory, err := s.layout(format)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	_, fragments := s.build().Render(factory(layout), layout)
	return fragments, nil
}

func (s *gridService) Document(ctx context.Context, format string) ([]byte, error) {
	layout, factory, err := s.layout(format)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(layout.Slices) == 0 {
		s.logger.Warn("no grid slices configured", "format", format)
	}
	doc := factory(layout)
	body, fragments := s.build().Render(doc, layout)

	var b strings.Builder
	b.WriteString(doc.DocumentStart(s.program.Days.Days()))
	b.WriteString(body)
	b.WriteString(doc.DocumentEnd())

	out, err := doc.Encode(b.String())
	if err != nil {
		return nil, fmt.Errorf("encode %s grid: %w", format, err)
	}
	s.logger.Info("grid rendered", "format", format, "tables", len(fragments), "bytes", len(out))
	return out, nil
}
