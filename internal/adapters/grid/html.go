package grid

import (
	"embed"
	"fmt"
	"strings"
	"text/template"

	"conguide/internal/domain"
)

//go:embed templates/*
var templateFS embed.FS

var htmlHeader = template.Must(template.ParseFS(templateFS, "templates/html_header.tmpl"))

type htmlRenderer struct {
	opts Options
}

// NewHTML returns the HTML table renderer. HTML needs no filler cells and
// ignores the layout geometry.
func NewHTML(_ domain.GridLayout, opts Options) domain.GridDocument {
	if opts.ScheduleLink == "" {
		opts.ScheduleLink = "schedule.html"
	}
	return &htmlRenderer{opts: opts}
}

func (r *htmlRenderer) Name() string { return domain.FormatHTML }

func (r *htmlRenderer) DocumentStart(days []*domain.Day) string {
	names := make([]string, len(days))
	for i, d := range days {
		names[i] = d.Name
	}
	var b strings.Builder
	err := htmlHeader.Execute(&b, struct {
		Title     string
		Generated string
		Days      []string
	}{r.opts.Convention + " Schedule Grid", r.opts.Generated, names})
	if err != nil {
		// the template is embedded and its data is plain strings
		panic(fmt.Sprintf("html grid header: %v", err))
	}
	return b.String()
}

func (r *htmlRenderer) DocumentEnd() string { return "</body></html>\n" }

func (r *htmlRenderer) Encode(doc string) ([]byte, error) { return utf8Bytes(doc) }

func (r *htmlRenderer) TableAnchor(day *domain.Day) string {
	return fmt.Sprintf("<a name=\"%s\"></a>\n", day.Name)
}

func (r *htmlRenderer) TableTitle(gs *domain.GridSlice) string {
	return fmt.Sprintf("<h2>%s</h2>\n", markupEscaper.Replace(gs.Name))
}

func (r *htmlRenderer) TableStart(*domain.GridSlice) string {
	return "<table border=\"1\" width=\"100%\">\n"
}

func (r *htmlRenderer) TableEnd() string { return "</table>\n<br /><br />\n" }

func (r *htmlRenderer) HeaderRowStart(gs *domain.GridSlice) string { return r.RowStart(gs) }

func (r *htmlRenderer) RowStart(*domain.GridSlice) string { return "<tr>" }

func (r *htmlRenderer) RowEnd() string { return "</tr>\n" }

func (r *htmlRenderer) TableHeaderCell(label string) string { return headerCell(label) }

func (r *htmlRenderer) RowHeaderCell(text string, _ *domain.Room) string {
	return headerCell(strings.ReplaceAll(text, "\n", "<br />"))
}

func headerCell(text string) string {
	if text == "" {
		text = "&nbsp;"
	}
	return "<th>" + text + "</th>"
}

func (r *htmlRenderer) Title(s *domain.Session) string {
	return fmt.Sprintf("<a href=\"%s#%s\">%s</a>", r.opts.ScheduleLink, s.SessionID, markupEscaper.Replace(s.Title))
}

func (r *htmlRenderer) TextCell(nrow, ncol int, text string, _ *domain.Room) string {
	return fmt.Sprintf("<td rowspan=\"%d\" colspan=\"%d\" class=\"white\">%s</td>\n", nrow, ncol, text)
}

func (r *htmlRenderer) GrayCell(ncol int) string {
	return fmt.Sprintf("<td colspan=\"%d\" class=\"gray\">&nbsp;</td>\n", ncol)
}

func (r *htmlRenderer) CellBehind() string { return "" }
