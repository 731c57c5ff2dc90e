package schedule

import (
	"encoding/json"
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
		{input: "09:00", want: NewTimeOfDay(9, 0)},
		{input: "00:00", want: NewTimeOfDay(0, 0)},
		{input: "23:59", want: NewTimeOfDay(23, 59)},
		{input: "24:00", wantErr: true},
		{input: "09:60", wantErr: true},
		{input: "-1:30", wantErr: true},
		{input: "0900", wantErr: true},
		{input: "nine:thirty", wantErr: true},
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

func TestTimeOfDayOfTruncatesSeconds(t *testing.T) {
	ts := time.Date(2024, 3, 11, 9, 30, 45, 999, time.UTC)
	assert.Equal(t, NewTimeOfDay(9, 30), TimeOfDayOf(ts))
}

func TestTimeOfDayAt(t *testing.T) {
	day := time.Date(2024, 3, 11, 0, 0, 0, 0, time.UTC)
	got := NewTimeOfDay(14, 15).At(day)
	assert.Equal(t, time.Date(2024, 3, 11, 14, 15, 0, 0, time.UTC), got)
}

func TestTimeOfDayJSONRoundTrip(t *testing.T) {
	data, err := json.Marshal(NewTimeOfDay(9, 5))
	require.NoError(t, err)
	assert.Equal(t, `"09:05"`, string(data))

	var back TimeOfDay
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, NewTimeOfDay(9, 5), back)

	assert.Error(t, json.Unmarshal([]byte(`"25:00"`), &back))
	assert.Error(t, json.Unmarshal([]byte(`123`), &back))
}

func TestTimeOfDayString(t *testing.T) {
	assert.Equal(t, "00:00", NewTimeOfDay(0, 0).String())
	assert.Equal(t, "09:30", NewTimeOfDay(9, 30).String())
}
