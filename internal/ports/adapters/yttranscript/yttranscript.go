package yttranscript

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/forPelevin/ytsum/internal/types"
	"github.com/forPelevin/ytsum/internal/usecase"
	"github.com/horiagug/youtube-transcript-api-go/pkg/yt_transcript"
)

// ErrNoTranscript means the video has no usable transcript in the requested language.
var ErrNoTranscript = errors.New("no transcript available")

// Client error texts that mean the transcript does not exist, as opposed to a
// transient failure. The client returns them as plain formatted errors.
var noTranscriptMarkers = []string{
	"no transcript found",
	"playercaptionstracklistrenderer not found",
	"transcripts are disabled",
	"video unavailable",
}

type track struct {
	Language  string
	Fragments []types.Fragment
}

type fetchFunc func(videoID string, languages []string) ([]track, error)

type Adapter struct {
	fetch fetchFunc
}

func New() *Adapter {
	client := yt_transcript.NewClient()
	return &Adapter{fetch: func(videoID string, languages []string) ([]track, error) {
		transcripts, err := client.GetTranscripts(videoID, languages)
		if err != nil {
			return nil, err
		}
		out := make([]track, 0, len(transcripts))
		for _, tr := range transcripts {
			t := track{Language: tr.LanguageCode}
			for _, l := range tr.Lines {
				t.Fragments = append(t.Fragments, types.Fragment{
					Text:     plainText(l.Text),
					Start:    l.Start,
					Duration: l.Duration,
				})
			}
			out = append(out, t)
		}
		return out, nil
	}}
}

// Fetch returns the transcript of videoID in language, fragments in delivery order.
func (a *Adapter) Fetch(ctx context.Context, videoID, language string) (types.Transcript, error) {
	language = strings.TrimSpace(language)
	if language == "" {
		language = usecase.DefaultLanguage
	}
	if videoID == "" {
		return types.Transcript{}, errors.New("video ID is required")
	}
	if err := ctx.Err(); err != nil {
		return types.Transcript{}, err
	}

	type result struct {
		tracks []track
		err    error
	}
	// The client has no context support; abandon it when ctx is done.
	ch := make(chan result, 1)
	go func() {
		tracks, err := a.fetch(videoID, []string{language})
		ch <- result{tracks: tracks, err: err}
	}()

	var res result
	select {
	case res = <-ch:
	case <-ctx.Done():
		return types.Transcript{}, ctx.Err()
	}
	if res.err != nil {
		if isNoTranscript(res.err) {
			return types.Transcript{}, fmt.Errorf("%w: video %s, language %s: %w", ErrNoTranscript, videoID, language, res.err)
		}
		return types.Transcript{}, fmt.Errorf("fetch transcript %s (%s): %w", videoID, language, res.err)
	}

	t, ok := pickTrack(res.tracks, language)
	if !ok {
		return types.Transcript{}, fmt.Errorf("%w: video %s, language %s", ErrNoTranscript, videoID, language)
	}
	return types.Transcript{VideoID: videoID, Language: t.Language, Fragments: t.Fragments}, nil
}

// pickTrack prefers an exact language match and skips empty tracks.
func pickTrack(tracks []track, language string) (track, bool) {
	for _, t := range tracks {
		if strings.EqualFold(t.Language, language) && len(t.Fragments) > 0 {
			return t, true
		}
	}
	for _, t := range tracks {
		if len(t.Fragments) > 0 {
			if t.Language == "" {
				t.Language = language
			}
			return t, true
		}
	}
	return track{}, false
}

// IsPermanent reports whether retrying err cannot help.
func IsPermanent(err error) bool {
	return errors.Is(err, ErrNoTranscript)
}

func isNoTranscript(err error) bool {
	msg := strings.ToLower(err.Error())
	for _, m := range noTranscriptMarkers {
		if strings.Contains(msg, m) {
			return true
		}
	}
	return false
}

// plainText drops caption markup such as <i> and decodes entities.
func plainText(s string) string {
	if !strings.ContainsAny(s, "<&") {
		return s
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	if err != nil {
		return s
	}
	return doc.Text()
}
