package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSession_Compare(t *testing.T) {
	days := NewDayRegistry()
	fri := days.Get("Friday")
	sat := days.Get("Saturday")
	reg := NewRegistry()
	a, _ := reg.GetOrCreateRoom("Alcott")
	b, _ := reg.GetOrCreateRoom("Burroughs")

	early := &Session{Time: ClockTime{Hour: 9, Day: sat}, Room: b}
	late := &Session{Time: ClockTime{Hour: 23, Day: fri}, Room: b}
	assert.Equal(t, 1, early.Compare(late), "day comes first")

	x := &Session{Time: ClockTime{Hour: 10, Day: fri}, Room: b}
	y := &Session{Time: ClockTime{Hour: 10, Day: fri}, Room: a}
	assert.Equal(t, 1, x.Compare(y), "room breaks ties before indices exist")

	x.Index, y.Index = 1, 2
	assert.Equal(t, -1, x.Compare(y), "index breaks ties once assigned")

	y.Index = 0
	assert.Equal(t, 1, x.Compare(y), "one unassigned index falls back to room")

	z := &Session{Time: ClockTime{Hour: 10, Minute: 30, Day: fri}, Room: a}
	assert.Equal(t, -1, x.Compare(z))
}

func TestSortSessions(t *testing.T) {
	days := NewDayRegistry()
	fri := days.Get("Friday")
	sat := days.Get("Saturday")
	reg := NewRegistry()
	a, _ := reg.GetOrCreateRoom("Alcott")
	b, _ := reg.GetOrCreateRoom("Burroughs")

	s1 := &Session{SessionID: "1", Time: ClockTime{Hour: 10, Day: sat}, Room: a}
	s2 := &Session{SessionID: "2", Time: ClockTime{Hour: 10, Day: fri}, Room: b}
	s3 := &Session{SessionID: "3", Time: ClockTime{Hour: 10, Day: fri}, Room: a}
	s4 := &Session{SessionID: "4", Time: ClockTime{Hour: 9, Minute: 30, Day: fri}, Room: b}

	sessions := []*Session{s1, s2, s3, s4}
	SortSessions(sessions)

	require.Equal(t, []*Session{s4, s3, s2, s1}, sessions)
	for i, s := range sessions {
		assert.Equal(t, i+1, s.Index)
	}

	// sorting again is stable with final indices
	SortSessions(sessions)
	assert.Equal(t, []*Session{s4, s3, s2, s1}, sessions)
}

func TestSession_Helpers(t *testing.T) {
	s := NewSession("42", ClockTime{Hour: 23, Minute: 30}, Duration{Hour: 1}, nil,
		"Dead Dog Party", "Social", "Party", []string{"A", "B"}, []string{"B"})
	assert.Equal(t, ClockTime{Hour: 24, Minute: 30}, s.End())
	assert.True(t, s.IsModerator("B"))
	assert.False(t, s.IsModerator("A"))
	assert.Nil(t, s.Day())
	assert.Equal(t, 0, s.Index)
}

func TestSameContent(t *testing.T) {
	s1 := &Session{Title: "one"}
	s2 := &Session{Title: "two"}

	assert.True(t, SameContent(nil, nil))
	assert.False(t, SameContent(nil, &Bucket{Sessions: []*Session{s1}}))
	assert.True(t, SameContent(&Bucket{Sessions: []*Session{s1, s2}}, &Bucket{Sessions: []*Session{s1, s2}}))
	assert.False(t, SameContent(&Bucket{Sessions: []*Session{s1, s2}}, &Bucket{Sessions: []*Session{s2, s1}}))
	assert.False(t, SameContent(&Bucket{Sessions: []*Session{s1}}, &Bucket{Sessions: []*Session{s1, s2}}))
}
