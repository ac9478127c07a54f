package block

import "time"

// timestampLayout is the wire format for block timestamps: UTC,
// microsecond precision, always six fractional digits.
const timestampLayout = "2006-01-02T15:04:05.000000Z"

func formatTimestamp(t time.Time) string {
	return t.UTC().Format(timestampLayout)
}

func parseTimestamp(s string) (time.Time, error) {
	t, err := time.Parse(timestampLayout, s)
	if err != nil {
		return time.Time{}, blockerr(ErrInvalidTimestamp, "malformed timestamp %q: %v", s, err)
	}
	return t, nil
}
