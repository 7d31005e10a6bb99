// Package util holds formatting helpers that squeeze values into the very
// narrow head gutters and title lines of the dashboard.
package util

import (
	"fmt"
	"strings"
	"time"

	"github.com/mattn/go-runewidth"
)

const filler = '…'

// FadeStrLeft truncates a string to at most width display columns. A longer
// string is cut from the left end and an ellipsis is prepended; the result,
// ellipsis included, never exceeds width.
func FadeStrLeft(s string, width int) string {
	if width == 0 {
		return ""
	}
	curr := runewidth.StringWidth(s)
	if curr <= width {
		return s
	}

	curr++
	found := false
	for i, r := range s {
		curr -= runewidth.RuneWidth(r)
		if found {
			return string(filler) + s[i:]
		}
		if curr <= width {
			// mark position and move to the next character
			found = true
		}
	}
	return string(filler)
}

// CutString squeezes a " | "-separated hint line into width columns by
// dropping trailing segments. The least useful hints go last so they are the
// first to be removed. A single oversized segment is hard-truncated.
func CutString(s string, width int) string {
	if runewidth.StringWidth(s) <= width {
		return s
	}
	parts := strings.Split(s, " | ")
	for len(parts) > 1 {
		parts = parts[:len(parts)-1]
		joined := strings.Join(parts, " | ")
		if runewidth.StringWidth(joined) <= width {
			return joined
		}
	}
	return runewidth.Truncate(parts[0], width, "")
}

// FormatBytes converts a value in KB to a string of at most 4 characters,
// displaying as much info as possible.
func FormatBytes(val uint64) string {
	if val < 1000 {
		return fmt.Sprintf("%dK", val)
	}
	coeff := []byte{'M', 'G', 'T', 'P'}
	v := float64(val) / 1024.0
	for idx := 0; idx < 4; idx++ {
		if v < 9.5 {
			return fmt.Sprintf("%.2f%c", v, coeff[idx])
		}
		if v < 99.5 {
			return fmt.Sprintf("%.1f%c", v, coeff[idx])
		}
		if v < 999.5 {
			return fmt.Sprintf("%.0f%c", v, coeff[idx])
		}
		v /= 1024.0
	}
	return "!!!!!"
}

// FormatMem converts a value in KB to a string of at most 4 characters using
// whole units only.
func FormatMem(val uint64) string {
	if val < 1024 {
		return fmt.Sprintf("%dK", val)
	}
	coeff := []byte{'M', 'G', 'T', 'P'}
	v := val / 1024
	for idx := 0; idx < 4; idx++ {
		if v < 1024 {
			return fmt.Sprintf("%d%c", v, coeff[idx])
		}
		v /= 1024
	}
	return "!!!!!"
}

// FormatDiff converts a signed difference in KB to a short signed string.
func FormatDiff(val int64) string {
	sgn := "+"
	if val < 0 {
		sgn = "-"
		val = -val
	}
	if val == 0 {
		return "0K"
	}
	if val < 1000 {
		return fmt.Sprintf("%s%dK", sgn, val)
	}
	coeff := []byte{'M', 'G', 'T', 'P'}
	v := float64(val) / 1024.0
	for idx := 0; idx < 4; idx++ {
		if v < 999.5 {
			return fmt.Sprintf("%s%d%c", sgn, uint64(v+0.5), coeff[idx])
		}
		v /= 1024.0
	}
	return sgn + "!!!!"
}

// FormatDuration renders a duration with at most two units: 23s, 2m56s, 4d2h.
func FormatDuration(d time.Duration) string {
	sec := int64(d.Seconds())
	if sec < 60 {
		return fmt.Sprintf("%ds", sec)
	}
	m := sec / 60
	sec %= 60
	if m < 60 {
		if sec == 0 {
			return fmt.Sprintf("%dm", m)
		}
		return fmt.Sprintf("%dm%ds", m, sec)
	}
	h := m / 60
	m %= 60
	if h < 24 {
		if m == 0 {
			return fmt.Sprintf("%dh", h)
		}
		return fmt.Sprintf("%dh%dm", h, m)
	}
	days := h / 24
	h %= 24
	if h == 0 {
		return fmt.Sprintf("%dd", days)
	}
	return fmt.Sprintf("%dd%dh", days, h)
}

// RoundToHundred returns the smallest multiple of 100 that is >= v.
func RoundToHundred(v uint64) uint64 {
	if v%100 == 0 {
		return v
	}
	return (v/100 + 1) * 100
}

// ShortRound rounds a value to a short human-readable number expressed as
// (digits, scale) where scale is a power of 1024. Rounding down never exceeds
// the true value when re-expanded; rounding up never falls below it.
func ShortRound(val uint64, down bool) (uint64, uint64) {
	if val < 1024 {
		return val, 1
	}
	coef := uint64(1024)
	delta := uint64(0)
	if val%1024 != 0 {
		delta = 1
	}
	v := val / 1024
	if !down && delta != 0 {
		v++
	}
	for v >= 1024 {
		coef *= 1024
		delta = 0
		if v%1024 != 0 {
			delta = 1
		}
		v /= 1024
		if !down {
			v += delta
		}
	}
	return v, coef
}
