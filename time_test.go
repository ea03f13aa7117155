package htlc

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/iov-one/htlc/errors"
	"github.com/iov-one/htlc/htlctest/assert"
)

func TestUnixTimeFromJSON(t *testing.T) {
	cases := map[string]struct {
		Raw     string
		Want    UnixTime
		WantErr *errors.Error
	}{
		"seconds":             {Raw: "1772366400", Want: 1772366400},
		"epoch":               {Raw: "0", Want: 0},
		"rfc3339 utc":         {Raw: `"2026-03-01T12:00:00Z"`, Want: 1772366400},
		"rfc3339 with offset": {Raw: `"2026-03-01T13:00:00+01:00"`, Want: 1772366400},
		"negative seconds":    {Raw: "-5", WantErr: errors.ErrInput},
		"before epoch":        {Raw: `"1969-12-31T23:59:00Z"`, WantErr: errors.ErrInput},
		"garbage":             {Raw: `"tomorrow"`, WantErr: errors.ErrInput},
		"object":              {Raw: `{}`, WantErr: errors.ErrInput},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			var got UnixTime
			err := json.Unmarshal([]byte(tc.Raw), &got)
			assert.IsErr(t, tc.WantErr, err)
			if tc.WantErr == nil {
				assert.Equal(t, tc.Want, got)
			}
		})
	}
}

func TestUnixTimeArithmetic(t *testing.T) {
	noon := AsUnixTime(time.Date(2026, 3, 1, 12, 0, 0, 999, time.UTC))
	assert.Equal(t, UnixTime(1772366400), noon)
	assert.Equal(t, "2026-03-01T12:00:00Z", noon.String())
	assert.Equal(t, noon+3600, noon.Add(time.Hour))
	assert.Equal(t, noon-10, noon.Add(-10*time.Second))
	assert.Equal(t, noon+1, noon.Add(1999*time.Millisecond))
	assert.Equal(t, noon, AsUnixTime(noon.Time()))
}

func TestUnixTimeValidate(t *testing.T) {
	assert.Nil(t, UnixTime(0).Validate())
	assert.Nil(t, UnixTime(1772366400).Validate())
	assert.IsErr(t, errors.ErrState, UnixTime(-1).Validate())
}
