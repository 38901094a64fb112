package sessionize

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"conguide/internal/domain"
)

const allView = `{
  "sessions": [
    {"id": "s2", "title": "Worldbuilding", "startsAt": "2026-01-17T10:00:00", "endsAt": "2026-01-17T11:15:00",
     "speakers": ["p1", "p2"], "categoryItems": [11, 21], "roomId": 2},
    {"id": "s1", "title": "Opening Ceremonies", "startsAt": "2026-01-16T19:00:00", "endsAt": "2026-01-16T20:00:00",
     "speakers": [], "categoryItems": [22], "roomId": 1},
    {"id": "s3", "title": "Unscheduled", "startsAt": null, "endsAt": null, "speakers": [], "categoryItems": [], "roomId": 0},
    {"id": "s4", "title": "Midnight Movie", "startsAt": "2026-01-17T00:30:00Z", "endsAt": "2026-01-17T02:30:00Z",
     "speakers": ["ghost"], "categoryItems": [], "roomId": 1}
  ],
  "speakers": [
    {"id": "p1", "fullName": "Jo Walton"},
    {"id": "p2", "fullName": "Ken Liu"}
  ],
  "rooms": [
    {"id": 1, "name": "Grand Ballroom", "sort": 1},
    {"id": 2, "name": "Alcott", "sort": 2}
  ],
  "categories": [
    {"id": 10, "title": "Track", "items": [{"id": 11, "name": "Literature"}]},
    {"id": 20, "title": "Session format", "items": [{"id": 21, "name": "Panel"}, {"id": 22, "name": "Event"}]}
  ]
}`

func TestSource_Records(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(allView))
	}))
	defer srv.Close()

	records, err := NewSource(NewClient(srv.Client(), srv.URL+"/"), "abc123").Records(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "/abc123/view/All", gotPath)

	require.Len(t, records, 3)
	assert.Equal(t, domain.SessionRecord{
		SessionID: "s1",
		Day:       "Friday",
		Time:      "19:00",
		Duration:  "60min",
		Room:      "Grand Ballroom",
		Title:     "Opening Ceremonies",
		Type:      "Event",
	}, records[0])
	assert.Equal(t, "s4", records[1].SessionID, "sorted by start")
	assert.Equal(t, "Saturday", records[1].Day)
	assert.Equal(t, "0:30", records[1].Time)
	assert.Nil(t, records[1].Participants, "unknown speakers are dropped")

	assert.Equal(t, domain.SessionRecord{
		SessionID:    "s2",
		Day:          "Saturday",
		Time:         "10:00",
		Duration:     "75min",
		Room:         "Alcott",
		Title:        "Worldbuilding",
		Track:        "Literature",
		Type:         "Panel",
		Participants: []string{"Jo Walton", "Ken Liu"},
	}, records[2])
}

func TestSource_Errors(t *testing.T) {
	tests := []struct {
		name    string
		id      string
		handler http.HandlerFunc
		wantErr string
	}{
		{
			name:    "missing id",
			handler: func(w http.ResponseWriter, r *http.Request) {},
			wantErr: "sessionize id is required",
		},
		{
			name:    "bad status",
			id:      "abc",
			handler: func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusNotFound) },
			wantErr: "sessionize api returned status: 404",
		},
		{
			name:    "bad body",
			id:      "abc",
			handler: func(w http.ResponseWriter, r *http.Request) { _, _ = w.Write([]byte("<html>")) },
			wantErr: "failed to decode sessionize response",
		},
		{
			name: "bad time",
			id:   "abc",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`{"sessions":[{"id":"1","startsAt":"Friday evening"}]}`))
			},
			wantErr: `sessionize time "Friday evening"`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(tt.handler)
			defer srv.Close()

			_, err := NewSource(NewClient(srv.Client(), srv.URL), tt.id).Records(context.Background())
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestNewClient_Defaults(t *testing.T) {
	c := NewClient(nil, "")
	assert.Equal(t, http.DefaultClient, c.client)
	assert.Equal(t, DefaultBaseURL, c.baseURL)
}
