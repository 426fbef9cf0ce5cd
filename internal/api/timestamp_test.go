package api

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimestampDecode(t *testing.T) {
	fixedNow := time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)
	prev := nowFunc
	nowFunc = func() time.Time { return fixedNow }
	t.Cleanup(func() { nowFunc = prev })

	tests := []struct {
		name string
		in   string
		want time.Time
	}{
		{"rfc3339", `"2026-02-18T09:00:05Z"`, time.Date(2026, 2, 18, 9, 0, 5, 0, time.UTC)},
		{"rfc3339 offset", `"2026-02-18T10:00:05+01:00"`, time.Date(2026, 2, 18, 9, 0, 5, 0, time.UTC)},
		{"fractional no zone", `"2026-02-18T09:00:05.250000"`, time.Date(2026, 2, 18, 9, 0, 5, 250_000_000, time.UTC)},
		{"space separated", `"2026-02-18 09:00:05"`, time.Date(2026, 2, 18, 9, 0, 5, 0, time.UTC)},
		{"unix seconds", `1771405205`, time.Unix(1771405205, 0).UTC()},
		{"unix fractional", `1771405205.5`, time.Unix(1771405205, 500_000_000).UTC()},
		{"null", `null`, time.Time{}},
		{"garbage string", `"yesterday"`, fixedNow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var ts Timestamp
			require.NoError(t, json.Unmarshal([]byte(tt.in), &ts))
			assert.True(t, tt.want.Equal(ts.Time), "got %s, want %s", ts.Time, tt.want)
		})
	}
}

func TestTimestampDecode_RejectsOtherTypes(t *testing.T) {
	var ts Timestamp
	assert.Error(t, json.Unmarshal([]byte(`{"when": 1}`), &ts))
	assert.Error(t, json.Unmarshal([]byte(`true`), &ts))
}

func TestTimestampEncode(t *testing.T) {
	ts := NewTimestamp(time.Date(2026, 2, 18, 10, 0, 5, 999, time.FixedZone("CET", 3600)))
	data, err := json.Marshal(ts)
	require.NoError(t, err)
	assert.JSONEq(t, `"2026-02-18T09:00:05Z"`, string(data))

	data, err = json.Marshal(Timestamp{})
	require.NoError(t, err)
	assert.Equal(t, "null", string(data))
}

func TestNullableDate(t *testing.T) {
	tests := []struct {
		in        string
		wantValid bool
		wantDate  string
	}{
		{`"2026-02-17"`, true, "2026-02-17"},
		{`"2026-02-17T18:30:00"`, true, "2026-02-17"},
		{`"2026-02-17T18:30:00Z"`, true, "2026-02-17"},
		{`"17/02/2026"`, false, "never"},
		{`null`, false, "never"},
		{`20260217`, false, "never"},
	}

	for _, tt := range tests {
		var d NullableDate
		require.NoError(t, json.Unmarshal([]byte(tt.in), &d), tt.in)
		assert.Equal(t, tt.wantValid, d.Valid, tt.in)
		assert.Equal(t, tt.wantDate, d.String(), tt.in)
	}
}

func TestStudentMissingCreatedAtUsesNow(t *testing.T) {
	fixedNow := time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)
	prev := nowFunc
	nowFunc = func() time.Time { return fixedNow }
	t.Cleanup(func() { nowFunc = prev })

	var s Student
	require.NoError(t, json.Unmarshal([]byte(`{"id": "x", "name": "X", "year_level": 2}`), &s))
	assert.True(t, fixedNow.Equal(s.CreatedAt.Time))
	assert.Equal(t, "star", s.Avatar)
}
