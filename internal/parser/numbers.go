package parser

import (
	"strconv"
	"strings"
	"time"
)

// parseCompactNumber converts display strings like "1.23M subscribers" or
// "4,321 views" to an integer count. Returns 0 when nothing numeric is found.
func parseCompactNumber(s string) int64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	// Keep the leading numeric token.
	token := s
	if i := strings.IndexByte(s, ' '); i > 0 {
		token = s[:i]
	}
	token = strings.ReplaceAll(token, ",", "")

	multiplier := int64(1)
	switch {
	case strings.HasSuffix(token, "K"):
		multiplier = 1_000
		token = strings.TrimSuffix(token, "K")
	case strings.HasSuffix(token, "M"):
		multiplier = 1_000_000
		token = strings.TrimSuffix(token, "M")
	case strings.HasSuffix(token, "B"):
		multiplier = 1_000_000_000
		token = strings.TrimSuffix(token, "B")
	}

	f, err := strconv.ParseFloat(token, 64)
	if err != nil {
		return digitsOnly(s)
	}
	return int64(f * float64(multiplier))
}

// digitsOnly extracts all digits from a display string ("1,234 videos" -> 1234).
func digitsOnly(s string) int64 {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return 0
	}
	n, err := strconv.ParseInt(b.String(), 10, 64)
	if err != nil {
		return 0
	}
	return n
}

// parseDate tries the date layouts seen across page metadata.
func parseDate(s string) *time.Time {
	layouts := []string{
		"2006-01-02",
		"20060102",
		time.RFC3339,
		"2006-01-02 15:04:05",
		"Jan 2, 2006",
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return &t
		}
	}
	return nil
}
