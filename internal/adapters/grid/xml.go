package grid

import (
	"fmt"
	"strings"

	"conguide/internal/domain"
)

const (
	aidNS  = "http://ns.adobe.com/AdobeInDesign/4.0/"
	aid5NS = "http://ns.adobe.com/AdobeInDesign/5.0/"
)

// InDesign XML cannot set row heights, so it suits variable-size tables only.
type xmlRenderer struct {
	layout domain.GridLayout
	opts   Options

	// column width of the table being written
	cellWidth float64
}

// NewXML returns the InDesign XML renderer.
func NewXML(layout domain.GridLayout, opts Options) domain.GridDocument {
	return &xmlRenderer{layout: layout, opts: opts}
}

func (r *xmlRenderer) Name() string { return domain.FormatXML }

func (r *xmlRenderer) DocumentStart([]*domain.Day) string {
	return "<?xml version=\"1.0\" encoding=\"UTF-8\" standalone=\"yes\"?>\n<Root><Story>"
}

func (r *xmlRenderer) DocumentEnd() string { return "</Story></Root>\n" }

func (r *xmlRenderer) Encode(doc string) ([]byte, error) { return utf8Bytes(doc) }

func (r *xmlRenderer) TableAnchor(*domain.Day) string { return "" }

func (r *xmlRenderer) TableTitle(gs *domain.GridSlice) string {
	return fmt.Sprintf("<title xmlns:aid=%q aid:pstyle=\"Headline\">%s</title>", aidNS, markupEscaper.Replace(gs.Name))
}

func (r *xmlRenderer) TableStart(gs *domain.GridSlice) string {
	trows := len(gs.Rooms) + 1
	tcols := gs.Columns() + 1
	r.cellWidth = (r.layout.TableWidth - r.layout.HeaderWidth) / float64(tcols-1)
	return fmt.Sprintf("<Table xmlns:aid=%q xmlns:aid5=%q aid:table=\"table\" aid:trows=\"%d\" aid:tcols=\"%d\">",
		aidNS, aid5NS, trows, tcols)
}

func (r *xmlRenderer) TableEnd() string { return "</Table>\n" }

func (r *xmlRenderer) HeaderRowStart(*domain.GridSlice) string { return "" }

func (r *xmlRenderer) RowStart(*domain.GridSlice) string { return "" }

func (r *xmlRenderer) RowEnd() string { return "" }

// cellStart omits the column width when width is zero.
func cellStart(style string, nrow, ncol int, width float64) string {
	w := ""
	if width != 0 {
		w = fmt.Sprintf(" aid:ccolwidth=\"%.4f\"", width)
	}
	return fmt.Sprintf("<Cell aid:table=\"cell\" aid:crows=\"%d\" aid:ccols=\"%d\"%s aid5:cellstyle=\"Grid %s\">", nrow, ncol, w, style)
}

func xmlCell(tag string, nrow, ncol int, width float64, text string) string {
	return cellStart(tag, nrow, ncol, width) +
		fmt.Sprintf("<%s aid:pstyle=\"Grid %s\">%s</%s>", tag, tag, text, tag) +
		"</Cell>"
}

func (r *xmlRenderer) TableHeaderCell(label string) string {
	return xmlCell("time", 1, 1, r.cellWidth, label)
}

func (r *xmlRenderer) RowHeaderCell(text string, _ *domain.Room) string {
	text = strings.ReplaceAll(text, "<i>", "<i aid:cstyle=\"Room italic\">")
	return xmlCell("room", 1, 1, r.layout.HeaderWidth, text)
}

func (r *xmlRenderer) Title(s *domain.Session) string {
	return markupEscaper.Replace(pruneTitle(s.Title, s.Room, r.opts.TitlePrune))
}

func (r *xmlRenderer) TextCell(nrow, ncol int, text string, _ *domain.Room) string {
	text = strings.ReplaceAll(text, "<i>", "<i aid:cstyle=\"Body italic\">")
	return xmlCell("text", nrow, ncol, 0, text)
}

func (r *xmlRenderer) GrayCell(ncol int) string {
	return cellStart("gray", 1, ncol, 0) + "</Cell>"
}

func (r *xmlRenderer) CellBehind() string { return "" }
