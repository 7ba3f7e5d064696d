// Package duration converts HH:MM:SS latency strings to and from whole seconds.
package duration

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// NotAvailable is the sentinel stored when a latency is absent or unparsable.
const NotAvailable = "N/A"

const (
	secondsPerMinute = 60
	secondsPerHour   = 3600
	segmentCount     = 3
)

// Parse converts "HH:MM:SS" into seconds. Hours are unbounded; each segment
// must be a non-negative base-10 integer. Any other shape, including the
// NotAvailable sentinel, yields ok=false.
func Parse(text string) (seconds int64, ok bool) {
	s := strings.TrimSpace(text)
	if s == "" || s == NotAvailable {
		return 0, false
	}

	parts := strings.Split(s, ":")
	if len(parts) != segmentCount {
		return 0, false
	}

	var seg [segmentCount]int64
	for i, p := range parts {
		if !digitsOnly(p) {
			return 0, false
		}
		v, err := strconv.ParseInt(p, 10, 64)
		if err != nil {
			return 0, false
		}
		seg[i] = v
	}

	h, m, sec := seg[0], seg[1], seg[2]
	if m > (math.MaxInt64-sec)/secondsPerMinute {
		return 0, false
	}
	if h > (math.MaxInt64-m*secondsPerMinute-sec)/secondsPerHour {
		return 0, false
	}
	return h*secondsPerHour + m*secondsPerMinute + sec, true
}

// Format renders seconds as zero-padded "HH:MM:SS". Negative input renders as
// NotAvailable.
func Format(seconds int64) string {
	if seconds < 0 {
		return NotAvailable
	}
	h := seconds / secondsPerHour
	m := (seconds % secondsPerHour) / secondsPerMinute
	s := seconds % secondsPerMinute
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}

// FormatParsed is Format for the (seconds, ok) pair returned by Parse.
func FormatParsed(seconds int64, ok bool) string {
	if !ok {
		return NotAvailable
	}
	return Format(seconds)
}

// Canonical re-renders text in canonical "HH:MM:SS" form, or NotAvailable.
func Canonical(text string) string {
	return FormatParsed(Parse(text))
}

func digitsOnly(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
