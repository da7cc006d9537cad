package parse

import (
	"errors"
	"fmt"
	"regexp"
	"time"
)

// ErrInvalidDate reports a filename with no usable YYYY-MM-DD date. Callers
// treat this as recoverable: the conversation proceeds undated.
var ErrInvalidDate = errors.New("no valid date in filename")

var filenameDateRe = regexp.MustCompile(`\d{4}-\d{2}-\d{2}`)

// ExtractDate finds a YYYY-MM-DD substring in a transcript filename (e.g.
// "2004-05-18 [Tuesday].htm") and parses it as a calendar date.
func ExtractDate(filename string) (time.Time, error) {
	raw := filenameDateRe.FindString(filename)
	if raw == "" {
		return time.Time{}, fmt.Errorf("extracting date from %q: %w", filename, ErrInvalidDate)
	}
	date, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("extracting date from %q: %w", filename, ErrInvalidDate)
	}
	return date, nil
}
