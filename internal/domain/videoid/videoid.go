package videoid

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// ErrInvalidURL is returned when no video identifier can be found in a URL.
var ErrInvalidURL = errors.New("invalid YouTube URL")

// Matches watch?v=ID, youtu.be/ID, /embed/ID and any path segment of exactly 11 chars.
var idInURL = regexp.MustCompile(`(?:v=|/|youtu\.be/|/embed/)([a-zA-Z0-9_-]{11})`)

type Error struct {
	URL string
}

func (e *Error) Error() string {
	return fmt.Sprintf("extract video id from %q: %v", e.URL, ErrInvalidURL)
}

func (e *Error) Unwrap() error { return ErrInvalidURL }

// Parse returns the first video identifier found in rawURL.
func Parse(rawURL string) (string, error) {
	s := strings.TrimSpace(rawURL)
	m := idInURL.FindStringSubmatch(s)
	if len(m) < 2 {
		return "", &Error{URL: rawURL}
	}
	return m[1], nil
}
