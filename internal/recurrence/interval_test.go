package recurrence

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTimeOfDay(t *testing.T) {
	tests := []struct {
		input   string
		want    TimeOfDay
		wantErr bool
	}{
		{input: "09:30:00", want: TimeOfDay{Hour: 9, Minute: 30}},
		{input: "23:00", want: TimeOfDay{Hour: 23}},
		{input: "00:00:00", want: TimeOfDay{}},
		{input: "12:05:45", want: TimeOfDay{Hour: 12, Minute: 5, Second: 45}},
		{input: "25:00", wantErr: true},
		{input: "bogus", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseTimeOfDay(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTimeOfDayString(t *testing.T) {
	assert.Equal(t, "09:05:00", TimeOfDay{Hour: 9, Minute: 5}.String())
	assert.Equal(t, "23:00:00", TimeOfDay{Hour: 23}.String())
}

func TestDuration(t *testing.T) {
	start := time.Date(2024, time.January, 8, 14, 0, 0, 0, time.UTC)

	t.Run("whole minutes", func(t *testing.T) {
		minutes, err := Duration(start, start.Add(3*time.Hour))
		require.NoError(t, err)
		assert.Equal(t, 180, minutes)
	})

	t.Run("truncates seconds", func(t *testing.T) {
		minutes, err := Duration(start, start.Add(90*time.Minute+45*time.Second))
		require.NoError(t, err)
		assert.Equal(t, 90, minutes)
	})

	t.Run("spans days", func(t *testing.T) {
		minutes, err := Duration(start, start.AddDate(0, 0, 1).Add(30*time.Minute))
		require.NoError(t, err)
		assert.Equal(t, 24*60+30, minutes)
	})

	t.Run("end equals start", func(t *testing.T) {
		_, err := Duration(start, start)
		assert.ErrorIs(t, err, ErrInvalidInterval)
	})

	t.Run("end before start never rolls over", func(t *testing.T) {
		_, err := Duration(start, start.Add(-time.Hour))
		assert.ErrorIs(t, err, ErrInvalidInterval)
	})
}

func TestDailyDuration(t *testing.T) {
	tests := []struct {
		name          string
		start, end    TimeOfDay
		allowRollover bool
		want          int
		wantErr       bool
	}{
		{
			name:  "plain window",
			start: TimeOfDay{Hour: 9},
			end:   TimeOfDay{Hour: 12, Minute: 30},
			want:  210,
		},
		{
			name:          "midnight rollover",
			start:         TimeOfDay{Hour: 23},
			end:           TimeOfDay{Hour: 1},
			allowRollover: true,
			want:          120,
		},
		{
			name:    "rollover refused without flag",
			start:   TimeOfDay{Hour: 23},
			end:     TimeOfDay{Hour: 1},
			wantErr: true,
		},
		{
			name:          "equal times invalid even with rollover",
			start:         TimeOfDay{Hour: 10},
			end:           TimeOfDay{Hour: 10},
			allowRollover: true,
			wantErr:       true,
		},
		{
			name:          "one minute before midnight wrap",
			start:         TimeOfDay{Hour: 0, Minute: 1},
			end:           TimeOfDay{Hour: 0},
			allowRollover: true,
			want:          24*60 - 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			minutes, err := DailyDuration(tt.start, tt.end, tt.allowRollover)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidInterval)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, minutes)
		})
	}
}
