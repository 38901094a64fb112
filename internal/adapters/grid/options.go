// Package grid renders the program grid as an HTML page, InDesign tagged
// text, or InDesign XML.
package grid

import (
	"strings"

	"conguide/internal/domain"
)

// Options carries the document-level settings shared by all renderers.
type Options struct {
	// Convention names the event in document titles.
	Convention string
	// Generated is the timestamp printed in the HTML header.
	Generated string
	// ScheduleLink is the page session titles link to in HTML output.
	ScheduleLink string
	// TitlePrune lists words stripped from titles when the room is used for them.
	TitlePrune []string
}

var markupEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")

// pruneTitle drops a leading "Reading - " style prefix when the room
// already says what the session is. Only the first matching word applies.
func pruneTitle(title string, room *domain.Room, words []string) string {
	if room == nil {
		return title
	}
	for _, m := range words {
		if room.Usage == m || room.Usage == m+"s" || strings.Contains(room.String(), m) {
			title = strings.ReplaceAll(title, m+" - ", "")
			title = strings.ReplaceAll(title, m+": ", "")
			break
		}
	}
	return title
}

func utf8Bytes(doc string) ([]byte, error) {
	return []byte(doc), nil
}
