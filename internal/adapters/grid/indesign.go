package grid

import (
	"fmt"
	"strings"

	"golang.org/x/text/encoding/charmap"

	"conguide/internal/domain"
)

// InDesign tagged text uses DOS line breaks.
const crlf = "\r\n"

type indesignRenderer struct {
	layout domain.GridLayout
	opts   Options

	// row height of the table being written
	cellHeight float64
}

// NewInDesign returns the InDesign tagged-text renderer. Every spanned
// column needs its own filler cell, and row heights come from the layout.
func NewInDesign(layout domain.GridLayout, opts Options) domain.GridDocument {
	return &indesignRenderer{layout: layout, opts: opts}
}

func (r *indesignRenderer) Name() string { return domain.FormatInDesign }

func (r *indesignRenderer) DocumentStart([]*domain.Day) string {
	return "<ASCII-WIN>" + crlf + "<Version:8><FeatureSet:InDesign-Roman>"
}

func (r *indesignRenderer) DocumentEnd() string { return "" }

// Encode writes the document as Windows-1252. Characters outside the code
// page become InDesign unicode escapes such as <0x2014>.
func (r *indesignRenderer) Encode(doc string) ([]byte, error) {
	out := make([]byte, 0, len(doc))
	for _, c := range doc {
		if b, ok := charmap.Windows1252.EncodeRune(c); ok {
			out = append(out, b)
			continue
		}
		out = fmt.Appendf(out, "<0x%04X>", c)
	}
	return out, nil
}

func (r *indesignRenderer) TableAnchor(*domain.Day) string { return "" }

func (r *indesignRenderer) TableTitle(gs *domain.GridSlice) string {
	return "<ParaStyle:Headline>" + gs.Name + crlf
}

func (r *indesignRenderer) TableStart(gs *domain.GridSlice) string {
	r.cellHeight = r.rowHeight(gs)
	trows := len(gs.Rooms) + 1
	tcols := gs.Columns() + 1
	cwidth := (r.layout.TableWidth - r.layout.HeaderWidth) / float64(tcols-1)

	var b strings.Builder
	fmt.Fprintf(&b, "<ParaStyle:Grid time><TableStart:%d,%d:1:0<tCellDefaultCellType:Text>>", trows, tcols)
	fmt.Fprintf(&b, "<ColStart:<tColAttrWidth:%.4f>>", r.layout.HeaderWidth)
	for range tcols - 1 {
		fmt.Fprintf(&b, "<ColStart:<tColAttrWidth:%.4f>>", cwidth)
	}
	return b.String()
}

// rowHeight splits the table height among the major rooms in a fixed
// layout, or among the slice's rooms clamped to the configured range.
func (r *indesignRenderer) rowHeight(gs *domain.GridSlice) float64 {
	body := r.layout.TableHeight - r.layout.HeaderHeight
	if r.layout.Fixed && gs.MajorCount > 0 {
		return body / float64(gs.MajorCount)
	}
	if len(gs.Rooms) == 0 {
		return body
	}
	h := body / float64(len(gs.Rooms))
	if r.layout.MaxCellHeight > 0 && h > r.layout.MaxCellHeight {
		h = r.layout.MaxCellHeight
	} else if h < r.layout.MinCellHeight {
		h = r.layout.MinCellHeight
	}
	return h
}

func (r *indesignRenderer) TableEnd() string { return "<TableEnd:>" + crlf }

func (r *indesignRenderer) HeaderRowStart(*domain.GridSlice) string {
	return rowStart(r.layout.HeaderHeight)
}

func (r *indesignRenderer) RowStart(*domain.GridSlice) string { return rowStart(r.cellHeight) }

func rowStart(height float64) string {
	return fmt.Sprintf("<RowStart:<tRowAttrHeight:%.4f><tRowAutoGrow:0>>", height)
}

func (r *indesignRenderer) RowEnd() string { return "<RowEnd:>" }

func (r *indesignRenderer) cell(style string, nrow, ncol int, text string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "<CellStyle:Grid %s><CellStart:%d,%d>", style, nrow, ncol)
	if text != "" {
		// the paragraph style drops any cell style suffix
		para, _, _ := strings.Cut(style, " ")
		fmt.Fprintf(&b, "<ParaStyle:Grid %s>%s", para, text)
	}
	b.WriteString("<CellEnd:>")
	for range ncol - 1 {
		b.WriteString(r.CellBehind())
	}
	return b.String()
}

func (r *indesignRenderer) TableHeaderCell(label string) string {
	return r.cell("time", 1, 1, label)
}

// RowHeaderCell flags minor rooms in red. Only the last major room on a
// level keeps the bottom border.
func (r *indesignRenderer) RowHeaderCell(text string, room *domain.Room) string {
	if text != "" && room != nil {
		if !room.Major {
			text = "<CharStyle:Red>" + text + "<CharStyle:>"
		}
		text = strings.ReplaceAll(text, "\n", crlf)
		text = strings.ReplaceAll(text, "<i>", "<CharStyle:Room italic>")
		text = strings.ReplaceAll(text, "</i>", "<CharStyle:>")
	}
	style := "room"
	if room != nil && !room.Last {
		style = "room no bottom"
	}
	return r.cell(style, 1, 1, text)
}

func (r *indesignRenderer) Title(s *domain.Session) string {
	return pruneTitle(s.Title, s.Room, r.opts.TitlePrune)
}

// TextCell appends the room name to sessions in minor rooms so the cell
// can be moved by hand in layout.
func (r *indesignRenderer) TextCell(nrow, ncol int, text string, room *domain.Room) string {
	if text != "" {
		text = strings.ReplaceAll(text, "\n", crlf)
		text = strings.ReplaceAll(text, "<i>", "<CharStyle:Body italic>")
		text = strings.ReplaceAll(text, "</i>", "<CharStyle:>")
		if room != nil && !room.Major {
			text += fmt.Sprintf("<CharStyle:Body italic> (%s)<CharStyle:>", room)
		}
	}
	return r.cell("text", nrow, ncol, text)
}

func (r *indesignRenderer) GrayCell(ncol int) string { return r.cell("gray", 1, ncol, "") }

func (r *indesignRenderer) CellBehind() string { return "<CellStart:1,1><CellEnd:>" }
