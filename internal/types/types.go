package types

import "strings"

type Fragment struct {
	Text     string  `json:"text"`
	Start    float64 `json:"start"`
	Duration float64 `json:"duration"`
}

type Transcript struct {
	VideoID   string     `json:"video_id"`
	Language  string     `json:"language"`
	Fragments []Fragment `json:"fragments"`
}

// Text joins fragment texts with single spaces, in delivery order.
func (t Transcript) Text() string {
	parts := make([]string, 0, len(t.Fragments))
	for _, f := range t.Fragments {
		parts = append(parts, f.Text)
	}
	return strings.Join(parts, " ")
}

type SummaryRequest struct {
	Text        string
	Model       string
	MaxTokens   int
	Temperature float64
}

type VideoMeta struct {
	ID      string
	Title   string
	Channel string
}

type Report struct {
	URL               string
	Title             string
	Summary           string
	Transcript        string
	IncludeTranscript bool
}
