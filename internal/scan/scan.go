// Package scan picks a meter reading out of text recognised on a meter photo.
// Recognition itself happens elsewhere; this package only sees the text lines.
package scan

import (
	"errors"
	"regexp"
	"strconv"
	"strings"
)

const (
	// MinReading and MaxReading bound the plausible cumulative meter values.
	MinReading = 100.0
	MaxReading = 999999.0
)

var ErrNoReading = errors.New("no meter reading found")

var (
	numberRE = regexp.MustCompile(`[0-9٠-٩]+\.?[0-9٠-٩]*`)

	arabicDigits = strings.NewReplacer(
		"٠", "0", "١", "1", "٢", "2", "٣", "3", "٤", "4",
		"٥", "5", "٦", "6", "٧", "7", "٨", "8", "٩", "9",
	)
)

// Extract returns every number found in lines, in order of appearance.
// Eastern Arabic digits are read as their ASCII equivalents.
func Extract(lines []string) []float64 {
	var out []float64
	for _, line := range lines {
		for _, m := range numberRE.FindAllString(line, -1) {
			v, err := strconv.ParseFloat(strings.TrimSuffix(arabicDigits.Replace(m), "."), 64)
			if err != nil {
				continue
			}
			out = append(out, v)
		}
	}
	return out
}

// MostLikely returns the largest value within [MinReading, MaxReading]. The
// largest plausible number on a meter face is usually the cumulative counter.
func MostLikely(values []float64) (float64, bool) {
	best, ok := 0.0, false
	for _, v := range values {
		if v < MinReading || v > MaxReading {
			continue
		}
		if !ok || v > best {
			best, ok = v, true
		}
	}
	return best, ok
}

// Detect extracts the most likely meter reading from recognised text.
func Detect(lines []string) (float64, error) {
	v, ok := MostLikely(Extract(lines))
	if !ok {
		return 0, ErrNoReading
	}
	return v, nil
}
