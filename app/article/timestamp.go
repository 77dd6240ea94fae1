package article

import (
	"strings"
	"time"
)

// Layouts accepted by ParseTimestamp, tried in order. GDELT reports
// "seendate" in a compact UTC form; feeds commonly use RFC3339 or RFC1123.
// Layouts without a zone component parse as UTC, which matches the
// assume-UTC rule for naive timestamps.
var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"20060102T150405Z",
	time.RFC1123Z,
	time.RFC1123,
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseTimestamp resolves an adapter-provided timestamp string into a
// timezone-aware instant. A trailing "Z" means UTC, an explicit offset is
// respected, and naive timestamps are assumed UTC. The second return value
// reports whether parsing succeeded; on failure the current instant is
// returned, which makes malformed timestamps sort as "now".
func ParseTimestamp(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s != "" {
		for _, layout := range timestampLayouts {
			if t, err := time.Parse(layout, s); err == nil {
				return t, true
			}
		}
	}
	return time.Now(), false
}
