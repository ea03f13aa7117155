package htlc

import (
	"encoding/json"
	"time"

	"github.com/iov-one/htlc/errors"
)

// UnixTime is a block clock reading in whole seconds since the epoch.
// Deadlines are compared in this unit only.
type UnixTime int64

// AsUnixTime truncates t to whole seconds.
func AsUnixTime(t time.Time) UnixTime {
	return UnixTime(t.Unix())
}

// Time returns the UTC time.Time for t.
func (t UnixTime) Time() time.Time {
	return time.Unix(int64(t), 0).UTC()
}

// Add shifts t by d. Fractions of a second are dropped.
func (t UnixTime) Add(d time.Duration) UnixTime {
	return t + UnixTime(d/time.Second)
}

func (t UnixTime) Validate() error {
	if t < 0 {
		return errors.Wrapf(errors.ErrState, "time %d before epoch", int64(t))
	}
	return nil
}

func (t UnixTime) String() string {
	return t.Time().Format(time.RFC3339)
}

// UnmarshalJSON accepts seconds as a number or an RFC 3339 string.
func (t *UnixTime) UnmarshalJSON(raw []byte) error {
	var secs int64
	if err := json.Unmarshal(raw, &secs); err != nil {
		var stamp time.Time
		if err := json.Unmarshal(raw, &stamp); err != nil {
			return errors.Wrap(errors.ErrInput, "time must be seconds or RFC 3339")
		}
		secs = stamp.Unix()
	}
	if secs < 0 {
		return errors.Wrap(errors.ErrInput, "time before epoch")
	}
	*t = UnixTime(secs)
	return nil
}
