package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseClockTime(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    ClockTime
		wantErr bool
	}{
		{name: "pm", in: "4:15pm", want: ClockTime{Hour: 16, Minute: 15}},
		{name: "pm with space and caps", in: "4:15 PM", want: ClockTime{Hour: 16, Minute: 15}},
		{name: "midnight", in: "12:00am", want: ClockTime{Hour: 0, Minute: 0}},
		{name: "noon", in: "12:30pm", want: ClockTime{Hour: 12, Minute: 30}},
		{name: "morning", in: "9:05 am", want: ClockTime{Hour: 9, Minute: 5}},
		{name: "24 hour", in: "16:15", want: ClockTime{Hour: 16, Minute: 15}},
		{name: "past midnight", in: "25:30", want: ClockTime{Hour: 25, Minute: 30}},
		{name: "word", in: "noon", wantErr: true},
		{name: "empty", in: "", wantErr: true},
		{name: "hour out of range", in: "48:00", wantErr: true},
		{name: "minute out of range", in: "10:75", wantErr: true},
		{name: "bad twelve hour", in: "13:00pm", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseClockTime(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrParse))
				var pe *ParseError
				require.True(t, errors.As(err, &pe))
				assert.Equal(t, "time", pe.Kind)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseDuration(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    Duration
		wantErr bool
	}{
		{name: "hours and minutes", in: "2hr 30min", want: Duration{Hour: 2, Minute: 30}},
		{name: "minutes only", in: "45min", want: Duration{Minute: 45}},
		{name: "hours only", in: "2hr", want: Duration{Hour: 2}},
		{name: "spaced", in: "1 hr 15 min", want: Duration{Hour: 1, Minute: 15}},
		{name: "clock form", in: "2:30", want: Duration{Hour: 2, Minute: 30}},
		{name: "bare minutes", in: "150", want: Duration{Hour: 2, Minute: 30}},
		{name: "bare zero", in: "0", want: Duration{}},
		{name: "minutes carry", in: "90min", want: Duration{Hour: 1, Minute: 30}},
		{name: "garbage", in: "all day", wantErr: true},
		{name: "empty", in: "", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDuration(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrParse))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDuration_StringRoundTrip(t *testing.T) {
	for hour := 0; hour < 5; hour++ {
		for minute := 0; minute < 60; minute++ {
			d := Duration{Hour: hour, Minute: minute}
			got, err := ParseDuration(d.String())
			require.NoError(t, err, d.String())
			assert.Equal(t, d, got, d.String())
		}
	}
}

func TestDuration_String(t *testing.T) {
	assert.Equal(t, "2hr", Duration{Hour: 2}.String())
	assert.Equal(t, "45min", Duration{Minute: 45}.String())
	assert.Equal(t, "1hr 5min", Duration{Hour: 1, Minute: 5}.String())
	assert.Equal(t, "0hr", Duration{}.String())
}

func TestClockTime_Offset(t *testing.T) {
	days := NewDayRegistry()
	fri := days.Get("Friday")
	sat := days.Get("Saturday")

	tests := []struct {
		name string
		in   ClockTime
		want int
	}{
		{name: "on the hour", in: ClockTime{Hour: 14, Minute: 0, Day: fri}, want: 28},
		{name: "rounds down before quarter", in: ClockTime{Hour: 14, Minute: 5, Day: fri}, want: 28},
		{name: "quarter rounds to half", in: ClockTime{Hour: 14, Minute: 15, Day: fri}, want: 29},
		{name: "before three quarters", in: ClockTime{Hour: 14, Minute: 44, Day: fri}, want: 29},
		{name: "three quarters rounds up", in: ClockTime{Hour: 14, Minute: 45, Day: fri}, want: 30},
		{name: "second day", in: ClockTime{Hour: 19, Minute: 0, Day: sat}, want: 86},
		{name: "no day", in: ClockTime{Hour: 1, Minute: 30}, want: 3},
		{name: "past midnight stays on day", in: ClockTime{Hour: 25, Minute: 0, Day: fri}, want: 50},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.in.Offset())
		})
	}
}

func TestClockTime_OffsetMonotonic(t *testing.T) {
	day := NewDayRegistry().Get("Sunday")
	prev := ClockTime{Day: day}
	for m := 1; m < 48*60; m++ {
		cur := ClockTime{Hour: m / 60, Minute: m % 60, Day: day}
		require.True(t, prev.Before(cur))
		assert.LessOrEqual(t, prev.Offset(), cur.Offset(), cur.String24())
		prev = cur
	}
}

func TestClockTime_Compare(t *testing.T) {
	days := NewDayRegistry()
	fri := days.Get("Friday")
	sat := days.Get("Saturday")

	assert.True(t, ClockTime{Hour: 24, Day: fri}.Equal(ClockTime{Hour: 0, Day: sat}))
	assert.True(t, ClockTime{Hour: 23, Minute: 59, Day: fri}.Before(ClockTime{Hour: 0, Day: sat}))
	assert.False(t, ClockTime{Hour: 9, Day: sat}.Before(ClockTime{Hour: 10, Day: fri}))
	// without days only hour and minute count
	assert.True(t, ClockTime{Hour: 9, Day: sat}.Before(ClockTime{Hour: 10}))
	assert.Equal(t, 0, ClockTime{Hour: 9, Minute: 30}.Compare(ClockTime{Hour: 9, Minute: 30}))
	assert.Equal(t, 1, ClockTime{Hour: 9, Minute: 31}.Compare(ClockTime{Hour: 9, Minute: 30}))
}

func TestClockTime_AddSub(t *testing.T) {
	day := NewDayRegistry().Get("Friday")

	got := ClockTime{Hour: 23, Minute: 45, Day: day}.Add(Duration{Minute: 30})
	assert.Equal(t, 24, got.Hour, "no automatic day rollover")
	assert.Equal(t, 15, got.Minute)
	assert.Same(t, day, got.Day)

	got = ClockTime{Hour: 10, Minute: 50}.Add(Duration{Hour: 1, Minute: 20})
	assert.Equal(t, ClockTime{Hour: 12, Minute: 10}, got)

	got = ClockTime{Hour: 10, Minute: 15}.Sub(Duration{Hour: 1, Minute: 30})
	assert.Equal(t, ClockTime{Hour: 8, Minute: 45}, got)

	got = ClockTime{Hour: 0, Minute: 15}.Sub(Duration{Minute: 30})
	assert.Equal(t, ClockTime{Hour: -1, Minute: 45}, got)
}

func TestClockTime_Format(t *testing.T) {
	tests := []struct {
		in        ClockTime
		wantStr   string
		wantLabel string
	}{
		{in: ClockTime{Hour: 16, Minute: 15}, wantStr: "4:15pm", wantLabel: "4:15p"},
		{in: ClockTime{Hour: 0, Minute: 5}, wantStr: "12:05am", wantLabel: "12:05a"},
		{in: ClockTime{Hour: 12}, wantStr: "12:00pm", wantLabel: "noon"},
		{in: ClockTime{Hour: 0}, wantStr: "12:00am", wantLabel: "midnight"},
		{in: ClockTime{Hour: 24}, wantStr: "12:00am", wantLabel: "midnight"},
		{in: ClockTime{Hour: 25, Minute: 30}, wantStr: "1:30am", wantLabel: "1:30a"},
		{in: ClockTime{Hour: 9}, wantStr: "9:00am", wantLabel: "9:00a"},
	}
	for _, tt := range tests {
		t.Run(tt.wantStr, func(t *testing.T) {
			assert.Equal(t, tt.wantStr, tt.in.String())
			assert.Equal(t, tt.wantLabel, tt.in.GridLabel())
		})
	}
	assert.Equal(t, "25:05", ClockTime{Hour: 25, Minute: 5}.String24())
}

func TestDayRegistry(t *testing.T) {
	days := NewDayRegistry()
	fri := days.Get("Friday")
	assert.Equal(t, 0, fri.Index)
	assert.Equal(t, "Fri", fri.ShortName)
	assert.Same(t, fri, days.Get("Fri"))
	assert.Same(t, fri, days.Get(" Friday "))

	sat := days.Get("Sat")
	assert.Equal(t, 1, sat.Index)
	assert.Equal(t, "Saturday", sat.Name)
	assert.Same(t, sat, days.Get("Saturday"))

	other := days.Get("Dead Dog")
	assert.Equal(t, 2, other.Index)
	assert.Equal(t, "Dead Dog", other.Name)

	assert.Equal(t, 3, days.Len())
	assert.Equal(t, []*Day{fri, sat, other}, days.Days())

	_, ok := days.Lookup("Monday")
	assert.False(t, ok)
}
