package annotate

import (
	"bytes"
	"fmt"
	"time"
)

// TimestampLayout is Twitter's own created_at format. Go renders day and
// month names in English regardless of host locale, which keeps collected_at
// consistent with the date fields already present in each payload.
const TimestampLayout = "Mon Jan 02 15:04:05 -0700 2006"

// Timestamp formats t the way Twitter formats created_at, e.g.
// "Fri Sep 29 04:15:02 +0000 2017".
func Timestamp(t time.Time) string {
	return t.Format(TimestampLayout)
}

// Stamp splices a collected_at field into raw immediately after the opening
// brace, leaving every other byte of the payload untouched. The payload must
// be a JSON object.
func Stamp(raw []byte, timestamp string) ([]byte, error) {
	if len(raw) == 0 || raw[0] != '{' {
		return nil, fmt.Errorf("payload is not a JSON object")
	}
	rest := raw[1:]
	field := `"collected_at":"` + timestamp + `"`
	if !emptyObject(rest) {
		field += ","
	}
	out := make([]byte, 0, 1+len(field)+len(rest))
	out = append(out, '{')
	out = append(out, field...)
	out = append(out, rest...)
	return out, nil
}

func emptyObject(rest []byte) bool {
	trimmed := bytes.TrimLeft(rest, " \t\r\n")
	return len(trimmed) > 0 && trimmed[0] == '}'
}
