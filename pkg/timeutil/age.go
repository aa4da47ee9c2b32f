// Package timeutil parses and renders the compact durations used by catalog
// listings, such as "3d" or "1w2d".
package timeutil

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

type unit struct {
	label   string
	aliases []string
	value   time.Duration
}

var (
	segment = regexp.MustCompile(`^\s*(\d+)\s*([a-z]+)`)
	units   = []unit{
		{"w", []string{"wk", "wks", "week", "weeks"}, 7 * 24 * time.Hour},
		{"d", []string{"day", "days"}, 24 * time.Hour},
		{"h", []string{"hr", "hrs", "hour", "hours"}, time.Hour},
		{"m", []string{"min", "mins", "minute", "minutes"}, time.Minute},
		{"s", []string{"sec", "secs", "second", "seconds"}, time.Second},
	}
)

func lookup(name string) (time.Duration, bool) {
	for _, u := range units {
		if u.label == name {
			return u.value, true
		}
		for _, a := range u.aliases {
			if a == name {
				return u.value, true
			}
		}
	}
	return 0, false
}

// ParseWindow parses strings like "3d" or "1w2d6h" into a duration. An empty
// input is a zero window, which callers treat as "no limit".
func ParseWindow(input string) (time.Duration, error) {
	remaining := strings.ToLower(strings.TrimSpace(input))
	if remaining == "" {
		return 0, nil
	}
	var total time.Duration
	for len(remaining) > 0 {
		m := segment.FindStringSubmatch(remaining)
		if len(m) != 3 {
			return 0, fmt.Errorf("invalid duration segment %q", strings.TrimSpace(remaining))
		}
		n, err := strconv.ParseInt(m[1], 10, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid duration value %q: %w", m[1], err)
		}
		base, ok := lookup(m[2])
		if !ok {
			return 0, fmt.Errorf("unsupported duration unit %q", m[2])
		}
		total += time.Duration(n) * base
		remaining = remaining[len(m[0]):]
	}
	if total <= 0 {
		return 0, fmt.Errorf("duration must be greater than zero")
	}
	return total, nil
}

// FormatWindow renders d with every non-zero unit, largest first.
func FormatWindow(d time.Duration) string {
	var b strings.Builder
	for _, u := range units {
		if d < u.value {
			continue
		}
		n := d / u.value
		d -= n * u.value
		fmt.Fprintf(&b, "%d%s", n, u.label)
	}
	if b.Len() == 0 {
		return "0s"
	}
	return b.String()
}

// Age renders how long before now t was, using only the largest unit:
// "just now", "5m ago", "3d ago". A zero t renders as "".
func Age(t, now time.Time) string {
	if t.IsZero() {
		return ""
	}
	d := now.Sub(t)
	if d < time.Minute {
		return "just now"
	}
	for _, u := range units {
		if d >= u.value {
			return fmt.Sprintf("%d%s ago", d/u.value, u.label)
		}
	}
	return "just now"
}
