package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDate_JSON(t *testing.T) {
	var d Date
	require.NoError(t, json.Unmarshal([]byte(`"2025-06-01"`), &d))
	assert.Equal(t, time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC), d.Time)

	out, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, `"2025-06-01"`, string(out))
}

func TestDate_UnmarshalRejectsGarbage(t *testing.T) {
	cases := []string{`"01.06.2025"`, `"2025-06-01T10:00:00Z"`, `20250601`, `true`}
	for _, tc := range cases {
		var d Date
		assert.Error(t, json.Unmarshal([]byte(tc), &d), tc)
	}
}

func TestDate_NullAndEmptyAreZero(t *testing.T) {
	for _, tc := range []string{`null`, `""`} {
		d := Date{time.Now()}
		require.NoError(t, json.Unmarshal([]byte(tc), &d))
		assert.True(t, d.IsZero(), tc)
	}

	out, err := json.Marshal(Date{})
	require.NoError(t, err)
	assert.Equal(t, "null", string(out))
}

func TestNewDate_DropsTimeOfDay(t *testing.T) {
	loc := time.FixedZone("MSK", 3*60*60)
	d := NewDate(time.Date(2025, time.December, 31, 23, 30, 0, 0, loc))
	assert.Equal(t, "2025-12-31", d.String())
}

func TestBooking_WireShape(t *testing.T) {
	b := Booking{
		ID:            "65f0c0ffee",
		ParentName:    "Анна",
		Phone:         "+79990000000",
		PreferredDate: Date{time.Date(2025, time.July, 5, 0, 0, 0, 0, time.UTC)},
		ProgramKey:    "space_odyssey",
		CreatedAt:     time.Date(2025, time.June, 1, 12, 0, 0, 0, time.UTC),
	}
	out, err := json.Marshal(b)
	require.NoError(t, err)

	var m map[string]any
	require.NoError(t, json.Unmarshal(out, &m))
	assert.Equal(t, "65f0c0ffee", m["id"])
	assert.Equal(t, "2025-07-05", m["preferred_date"])
	assert.Contains(t, m, "email")
	assert.Equal(t, float64(0), m["child_age"])
	assert.NotContains(t, m, "_id")
}
