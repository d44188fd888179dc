package types

import "testing"

func TestTranscriptText(t *testing.T) {
	tests := []struct {
		name  string
		frags []string
		want  string
	}{
		{"two", []string{"Hello", "world"}, "Hello world"},
		{"order kept", []string{"This", "is", "a", "test"}, "This is a test"},
		{"single", []string{"solo"}, "solo"},
		{"empty", nil, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := Transcript{}
			for i, s := range tt.frags {
				tr.Fragments = append(tr.Fragments, Fragment{Text: s, Start: float64(i)})
			}
			if got := tr.Text(); got != tt.want {
				t.Fatalf("Text() = %q, want %q", got, tt.want)
			}
		})
	}
}
