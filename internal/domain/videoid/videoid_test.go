package videoid

import (
	"errors"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    string
		wantErr bool
	}{
		{name: "watch", in: "https://www.youtube.com/watch?v=dQw4w9WgXcQ", want: "dQw4w9WgXcQ"},
		{name: "watch with params", in: "https://www.youtube.com/watch?v=dQw4w9WgXcQ&t=42s", want: "dQw4w9WgXcQ"},
		{name: "mobile", in: "https://m.youtube.com/watch?v=dQw4w9WgXcQ", want: "dQw4w9WgXcQ"},
		{name: "short", in: "https://youtu.be/dQw4w9WgXcQ", want: "dQw4w9WgXcQ"},
		{name: "short with query", in: "https://youtu.be/dQw4w9WgXcQ?si=abc", want: "dQw4w9WgXcQ"},
		{name: "embed", in: "https://www.youtube.com/embed/dQw4w9WgXcQ", want: "dQw4w9WgXcQ"},
		{name: "shorts", in: "https://www.youtube.com/shorts/abc12345678", want: "abc12345678"},
		{name: "dash and underscore", in: "https://youtu.be/a-b_c-d_e-f", want: "a-b_c-d_e-f"},
		{name: "surrounding space", in: "  https://youtu.be/abc12345678  ", want: "abc12345678"},
		{name: "not a url", in: "not a url", wantErr: true},
		{name: "empty", in: "", wantErr: true},
		{name: "id too short", in: "https://youtu.be/abc", wantErr: true},
		{name: "bare id has no anchor", in: "dQw4w9WgXcQ", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %q", got)
				}
				if !errors.Is(err, ErrInvalidURL) {
					t.Fatalf("expected ErrInvalidURL, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Fatalf("Parse(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestParse_ErrorCarriesURL(t *testing.T) {
	_, err := Parse("nope")
	var perr *Error
	if !errors.As(err, &perr) {
		t.Fatalf("expected *Error, got %T", err)
	}
	if perr.URL != "nope" {
		t.Fatalf("unexpected URL in error: %q", perr.URL)
	}
}
