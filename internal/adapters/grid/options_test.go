package grid

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"conguide/internal/domain"
)

func TestPruneTitle(t *testing.T) {
	words := []string{"Reading", "Autographs"}
	tests := []struct {
		name  string
		title string
		room  *domain.Room
		want  string
	}{
		{name: "usage matches", title: "Reading - Jo Walton", room: &domain.Room{Name: "Alcott", Usage: "Reading"}, want: "Jo Walton"},
		{name: "plural usage", title: "Reading: Jo Walton", room: &domain.Room{Name: "Alcott", Usage: "Readings"}, want: "Jo Walton"},
		{name: "room name contains word", title: "Autographs - Ken Liu", room: &domain.Room{Name: "Autographs Table"}, want: "Ken Liu"},
		{name: "display name used", title: "Reading - Jo Walton", room: &domain.Room{Name: "Room 3", DisplayName: "Reading Room"}, want: "Jo Walton"},
		{name: "no match keeps title", title: "Reading - Jo Walton", room: &domain.Room{Name: "Alcott", Usage: "Panels"}, want: "Reading - Jo Walton"},
		{name: "first match only", title: "Reading - Autographs - X", room: &domain.Room{Name: "Autographs", Usage: "Reading"}, want: "Autographs - X"},
		{name: "nil room", title: "Reading - Jo Walton", want: "Reading - Jo Walton"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, pruneTitle(tt.title, tt.room, words))
		})
	}
}
