package pdf

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/forPelevin/ytsum/internal/types"
)

func readPDF(t *testing.T, path string) string {
	t.Helper()
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read pdf: %v", err)
	}
	if !bytes.HasPrefix(b, []byte("%PDF-")) {
		t.Fatalf("expected PDF header, got %q", b[:min(len(b), 8)])
	}
	return string(b)
}

func TestWrite_CreatesParentDirectories(t *testing.T) {
	out := filepath.Join(t.TempDir(), "a", "b", "c", "report.pdf")

	w := New(Options{Uncompressed: true})
	if err := w.Write(types.Report{URL: "https://youtu.be/abc12345678", Summary: "A short test."}, out); err != nil {
		t.Fatalf("write: %v", err)
	}
	readPDF(t, out)

	entries, err := os.ReadDir(filepath.Dir(out))
	if err != nil {
		t.Fatalf("read dir: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected only the report in output dir, got %d entries", len(entries))
	}
}

func TestWrite_SectionsWithoutTranscript(t *testing.T) {
	out := filepath.Join(t.TempDir(), "report.pdf")

	w := New(Options{Uncompressed: true})
	err := w.Write(types.Report{
		URL:               "https://youtu.be/abc12345678",
		Summary:           "A short test.",
		Transcript:        "This is a test",
		IncludeTranscript: false,
	}, out)
	if err != nil {
		t.Fatalf("write: %v", err)
	}

	body := readPDF(t, out)
	for _, want := range []string{DocumentTitle, "https://youtu.be/abc12345678", "Summary:", "A short test."} {
		if !strings.Contains(body, want) {
			t.Fatalf("expected pdf to contain %q", want)
		}
	}
	if strings.Contains(body, "Transcript:") {
		t.Fatalf("expected no transcript section")
	}
}

func TestWrite_TranscriptSection(t *testing.T) {
	cases := []struct {
		name       string
		include    bool
		transcript string
		want       bool
	}{
		{name: "flag and text", include: true, transcript: "This is a test", want: true},
		{name: "flag without text", include: true, transcript: "  ", want: false},
		{name: "text without flag", include: false, transcript: "This is a test", want: false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			out := filepath.Join(t.TempDir(), "report.pdf")
			err := New(Options{Uncompressed: true}).Write(types.Report{
				URL:               "https://youtu.be/abc12345678",
				Summary:           "A short test.",
				Transcript:        tc.transcript,
				IncludeTranscript: tc.include,
			}, out)
			if err != nil {
				t.Fatalf("write: %v", err)
			}
			body := readPDF(t, out)
			if got := strings.Contains(body, "Transcript:"); got != tc.want {
				t.Fatalf("transcript heading present = %v, want %v", got, tc.want)
			}
			if tc.want && !strings.Contains(body, "This is a test") {
				t.Fatalf("expected transcript body")
			}
		})
	}
}

func TestWrite_VideoTitle(t *testing.T) {
	out := filepath.Join(t.TempDir(), "report.pdf")
	err := New(Options{Uncompressed: true}).Write(types.Report{
		URL:     "https://youtu.be/abc12345678",
		Title:   "Never Gonna Give You Up",
		Summary: "s",
	}, out)
	if err != nil {
		t.Fatalf("write: %v", err)
	}
	if !strings.Contains(readPDF(t, out), "Never Gonna Give You Up") {
		t.Fatalf("expected video title in pdf")
	}
}

func TestWrite_Idempotent(t *testing.T) {
	dir := t.TempDir()
	report := types.Report{
		URL:               "https://www.youtube.com/watch?v=dQw4w9WgXcQ",
		Summary:           strings.Repeat("Summary sentence. ", 50),
		Transcript:        strings.Repeat("transcript words ", 400),
		IncludeTranscript: true,
	}
	w := New(Options{CreatedAt: time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)})

	first := filepath.Join(dir, "first.pdf")
	second := filepath.Join(dir, "second.pdf")
	if err := w.Write(report, first); err != nil {
		t.Fatalf("write first: %v", err)
	}
	if err := w.Write(report, second); err != nil {
		t.Fatalf("write second: %v", err)
	}
	a, _ := os.ReadFile(first)
	b, _ := os.ReadFile(second)
	if !bytes.Equal(a, b) {
		t.Fatalf("expected byte-identical output (%d vs %d bytes)", len(a), len(b))
	}
}

func TestWrite_OverwritesExisting(t *testing.T) {
	out := filepath.Join(t.TempDir(), "report.pdf")
	if err := os.WriteFile(out, []byte("stale"), 0o644); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if err := New(Options{}).Write(types.Report{URL: "u", Summary: "s"}, out); err != nil {
		t.Fatalf("write: %v", err)
	}
	readPDF(t, out)
}

func TestRender_FlowsAcrossPages(t *testing.T) {
	doc, err := New(Options{}).render(types.Report{
		URL:     "https://youtu.be/abc12345678",
		Summary: strings.Repeat("A long summary that keeps going and going. ", 400),
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if doc.PageCount() < 2 {
		t.Fatalf("expected text to flow onto more pages, got %d", doc.PageCount())
	}
}

func TestWrite_UnwritablePath(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	if err := os.WriteFile(blocker, []byte("x"), 0o644); err != nil {
		t.Fatalf("seed: %v", err)
	}

	err := New(Options{}).Write(types.Report{URL: "u", Summary: "s"}, filepath.Join(blocker, "sub", "report.pdf"))
	if err == nil {
		t.Fatalf("expected error when parent is a file")
	}
	if !strings.Contains(err.Error(), "create directory") {
		t.Fatalf("expected descriptive error, got %v", err)
	}
}

func TestWrite_EmptyPath(t *testing.T) {
	if err := New(Options{}).Write(types.Report{}, " "); err == nil {
		t.Fatalf("expected error for empty path")
	}
}
