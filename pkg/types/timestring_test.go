package types

import (
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTimeStringFromString(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    int
		wantErr bool
	}{
		{name: "hours and minutes", in: "10:30", want: 630},
		{name: "midnight", in: "00:00", want: 0},
		{name: "end of day", in: "24:00", want: MinutesPerDay},
		{name: "postgres time", in: "07:15:00", want: 435},
		{name: "non zero seconds", in: "07:15:30", wantErr: true},
		{name: "past end of day", in: "24:30", wantErr: true},
		{name: "single digit hour", in: "7:15", wantErr: true},
		{name: "bad minutes", in: "10:60", wantErr: true},
		{name: "garbage", in: "ten", wantErr: true},
		{name: "empty", in: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewTimeStringFromString(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, got.IsZero())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.Minutes())
		})
	}
}

func TestTimeStringArithmetic(t *testing.T) {
	start := MustTimeString("21:30")

	end, err := start.AddMinutes(90)
	require.NoError(t, err)
	assert.Equal(t, "23:00", end.String())

	_, err = start.AddMinutes(180)
	assert.ErrorIs(t, err, ErrTimeOutOfRange)

	assert.True(t, start.IsBefore(end))
	assert.True(t, end.IsAfter(start))
	assert.Equal(t, 90, start.MinutesUntil(end))
	assert.False(t, start.Equal(TimeString{}))
}

func TestTimeStringOnIgnoresClockOfDay(t *testing.T) {
	loc := time.FixedZone("UTC+3", 3*60*60)
	day := time.Date(2026, 3, 14, 23, 59, 0, 0, time.UTC)

	got := MustTimeString("08:30").On(day, loc)

	assert.Equal(t, time.Date(2026, 3, 14, 8, 30, 0, 0, loc), got)
}

func TestTimeStringOnKeepsWallClockAcrossDST(t *testing.T) {
	loc, err := time.LoadLocation("Europe/Madrid")
	require.NoError(t, err)

	tests := []struct {
		name string
		day  time.Time
		in   string
	}{
		{name: "spring forward", day: time.Date(2026, 3, 29, 0, 0, 0, 0, time.UTC), in: "10:00"},
		{name: "fall back", day: time.Date(2026, 10, 25, 0, 0, 0, 0, time.UTC), in: "10:00"},
		{name: "fall back evening", day: time.Date(2026, 10, 25, 0, 0, 0, 0, time.UTC), in: "21:30"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MustTimeString(tt.in).On(tt.day, loc)
			assert.Equal(t, tt.in, got.Format("15:04"))
			assert.Equal(t, tt.day.Day(), got.Day())
		})
	}

	// 10:00 CEST on the spring-forward day is 08:00 UTC
	got := MustTimeString("10:00").On(time.Date(2026, 3, 29, 0, 0, 0, 0, time.UTC), loc)
	assert.Equal(t, time.Date(2026, 3, 29, 8, 0, 0, 0, time.UTC), got.UTC())
}

func TestTimeStringOnEndOfDay(t *testing.T) {
	got := MustTimeString("24:00").On(time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC), time.UTC)
	assert.Equal(t, time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC), got)
}

func TestTimeStringScan(t *testing.T) {
	var ts TimeString

	require.NoError(t, ts.Scan([]byte("18:00:00.000000")))
	assert.Equal(t, "18:00", ts.String())

	require.NoError(t, ts.Scan(nil))
	assert.True(t, ts.IsZero())

	assert.Error(t, ts.Scan(42))
}

func TestTimeStringText(t *testing.T) {
	var ts TimeString
	require.NoError(t, ts.UnmarshalText([]byte("09:45")))

	out, err := ts.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "09:45", string(out))

	require.NoError(t, ts.UnmarshalText(nil))
	assert.True(t, ts.IsZero())
}
