package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Date
		wantErr bool
	}{
		{"valid", "15-08-2025", NewDate(2025, time.August, 15), false},
		{"valid with spaces", " 01-01-2000 ", NewDate(2000, time.January, 1), false},
		{"iso format rejected", "2025-08-15", Date{}, true},
		{"us format rejected", "08/15/2025", Date{}, true},
		{"day out of range", "32-01-2025", Date{}, true},
		{"month out of range", "15-13-2025", Date{}, true},
		{"empty", "", Date{}, true},
		{"garbage", "not-a-date", Date{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDate(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, got.Equal(tt.want.Time))
		})
	}
}

func TestDateJSONRoundTrip(t *testing.T) {
	d := NewDate(1994, time.March, 7)

	data, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, `"07-03-1994"`, string(data))

	var back Date
	require.NoError(t, json.Unmarshal(data, &back))
	assert.True(t, back.Equal(d.Time))
}

func TestDateUnmarshalRejectsWrongFormat(t *testing.T) {
	var d Date
	err := json.Unmarshal([]byte(`"1994-03-07"`), &d)
	assert.Error(t, err)
}
