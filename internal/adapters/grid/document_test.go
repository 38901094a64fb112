package grid_test

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"conguide/internal/adapters/grid"
	"conguide/internal/domain"
	"conguide/internal/services"
)

var testLogger = slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))

var evening = domain.Slice{Name: "Evening", Start: domain.ClockTime{Hour: 18}, End: domain.ClockTime{Hour: 24}}

func newGridService(t *testing.T, layouts map[string]domain.GridLayout, records ...domain.SessionRecord) domain.GridService {
	t.Helper()
	reg := domain.NewRegistry()
	lobby, _ := reg.GetOrCreateLevel("Lobby")
	reg.AddRoomToLevel(lobby, "Alcott")
	reg.AddRoomToLevel(lobby, "Burroughs")
	program, err := services.NewProgramLoader(reg, domain.SessionChanges{}, domain.DefaultMajorThreshold, testLogger).Load(records)
	require.NoError(t, err)

	opts := grid.Options{Convention: "Arisia", Generated: "now"}
	return services.NewGridService(program, services.GridOptions{
		Layouts: layouts,
		Renderers: map[string]services.RendererFactory{
			domain.FormatHTML:     func(l domain.GridLayout) domain.GridDocument { return grid.NewHTML(l, opts) },
			domain.FormatInDesign: func(l domain.GridLayout) domain.GridDocument { return grid.NewInDesign(l, opts) },
			domain.FormatXML:      func(l domain.GridLayout) domain.GridDocument { return grid.NewXML(l, opts) },
		},
	}, testLogger)
}

func TestHTMLDocument(t *testing.T) {
	svc := newGridService(t, map[string]domain.GridLayout{
		domain.FormatHTML: {Format: domain.FormatHTML, Slices: []domain.Slice{evening}},
	},
		domain.SessionRecord{SessionID: "1", Day: "Friday", Time: "7:00pm", Duration: "1hr", Room: "Alcott", Title: "Opening & Welcome"},
	)

	out, err := svc.Document(context.Background(), domain.FormatHTML)
	require.NoError(t, err)
	doc := string(out)

	want := "<a name=\"Friday\"></a>\n" +
		"<h2>Friday Evening</h2>\n" +
		"<table border=\"1\" width=\"100%\">\n" +
		"<tr><th>&nbsp;</th><th>6:00p</th><th>6:30p</th><th>7:00p</th><th>7:30p</th><th>8:00p</th><th>8:30p</th>" +
		"<th>9:00p</th><th>9:30p</th><th>10:00p</th><th>10:30p</th><th>11:00p</th><th>11:30p</th></tr>\n" +
		"<tr><th>Alcott</th><td colspan=\"2\" class=\"gray\">&nbsp;</td>\n" +
		"<td rowspan=\"1\" colspan=\"2\" class=\"white\"><a href=\"schedule.html#1\">Opening &amp; Welcome</a></td>\n" +
		"<td colspan=\"8\" class=\"gray\">&nbsp;</td>\n" +
		"</tr>\n" +
		"</table>\n<br /><br />\n" +
		"</body></html>\n"
	assert.True(t, strings.HasSuffix(doc, want), doc)
	assert.Contains(t, doc, "<h1>Arisia Schedule Grid</h1>")

	again, err := svc.Document(context.Background(), domain.FormatHTML)
	require.NoError(t, err)
	assert.Equal(t, out, again, "rendering is deterministic")
}

func TestInDesignDocument_RowSpan(t *testing.T) {
	svc := newGridService(t, map[string]domain.GridLayout{
		domain.FormatInDesign: {
			Format:        domain.FormatInDesign,
			Slices:        []domain.Slice{{Name: "Late", Start: domain.ClockTime{Hour: 22}, End: domain.ClockTime{Hour: 24}}},
			TableWidth:    100,
			TableHeight:   100,
			HeaderWidth:   20,
			HeaderHeight:  20,
			MinCellHeight: 10,
			MaxCellHeight: 30,
		},
	},
		domain.SessionRecord{SessionID: "1", Day: "Friday", Time: "10:00pm", Duration: "1hr", Room: "Alcott", Title: "Masquerade"},
		domain.SessionRecord{SessionID: "2", Day: "Friday", Time: "11:00pm", Duration: "1hr", Room: "Burroughs", Title: "Filk"},
	)

	frags, err := svc.Fragments(context.Background(), domain.FormatInDesign)
	require.NoError(t, err)
	require.Len(t, frags, 1)

	want := "<ParaStyle:Headline>Friday Late\r\n" +
		"<ParaStyle:Grid time><TableStart:3,5:1:0<tCellDefaultCellType:Text>>" +
		"<ColStart:<tColAttrWidth:20.0000>>" + strings.Repeat("<ColStart:<tColAttrWidth:20.0000>>", 4) +
		"<RowStart:<tRowAttrHeight:20.0000><tRowAutoGrow:0>>" +
		"<CellStyle:Grid room><CellStart:1,1><CellEnd:>"
	assert.True(t, strings.HasPrefix(frags[0].Markup, want), frags[0].Markup)
	assert.Contains(t, frags[0].Markup,
		"<RowStart:<tRowAttrHeight:30.0000><tRowAutoGrow:0>>"+
			"<CellStyle:Grid room no bottom><CellStart:1,1><ParaStyle:Grid room><CharStyle:Red>Alcott<CharStyle:><CellEnd:>"+
			"<CellStyle:Grid text><CellStart:1,2><ParaStyle:Grid text>Masquerade<CharStyle:Body italic> (Alcott)<CharStyle:><CellEnd:>"+
			"<CellStart:1,1><CellEnd:>"+
			"<CellStyle:Grid gray><CellStart:1,2><CellEnd:><CellStart:1,1><CellEnd:>"+
			"<RowEnd:>")

	doc, err := svc.Document(context.Background(), domain.FormatInDesign)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(doc), "<ASCII-WIN>\r\n"))
	assert.True(t, strings.HasSuffix(string(doc), "<TableEnd:>\r\n"))
}
