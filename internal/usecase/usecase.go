package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/forPelevin/ytsum/internal/domain/videoid"
	"github.com/forPelevin/ytsum/internal/ports"
	"github.com/forPelevin/ytsum/internal/types"
)

const DefaultLanguage = "en"

type Stage string

const (
	StageParse      Stage = "parse"
	StageTranscript Stage = "transcript"
	StageSummarize  Stage = "summarize"
	StageReport     Stage = "report"
)

var (
	ErrInvalidURL            = errors.New("invalid URL")
	ErrTranscriptUnavailable = errors.New("transcript unavailable")
	ErrSummarizationFailed   = errors.New("summarization failed")
	ErrReportWrite           = errors.New("report write failed")
)

// StageError is returned by Run; errors.Is matches both Kind and the cause.
type StageError struct {
	Stage Stage
	Kind  error
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%v: %v", e.Kind, e.Err)
}

func (e *StageError) Unwrap() []error {
	return []error{e.Kind, e.Err}
}

type Deps struct {
	Transcripts ports.TranscriptSource
	Summarizer  ports.Summarizer
	Reports     ports.ReportWriter

	// Optional.
	Metadata ports.MetadataSource
	Cache    ports.TranscriptCache
}

type Usecase struct{ d Deps }

func New(d Deps) Usecase { return Usecase{d: d} }

// Progress is called when a stage starts (done=false) and when it succeeds (done=true).
type Progress func(stage Stage, done bool, detail string)

type Input struct {
	URL               string
	Language          string
	Model             string
	MaxTokens         int
	Temperature       float64
	IncludeTranscript bool
	OutputPath        string

	Progress Progress
	Logf     func(format string, args ...any)
}

type Result struct {
	VideoID    string
	Meta       types.VideoMeta
	Transcript types.Transcript
	Summary    string
	OutputPath string
}

// Run parses the URL, fetches the transcript, summarizes it and writes the report.
// The first failing stage stops the run; nothing is written unless every earlier stage succeeded.
func (u Usecase) Run(ctx context.Context, in Input) (Result, error) {
	progress := in.Progress
	if progress == nil {
		progress = func(Stage, bool, string) {}
	}
	logf := in.Logf
	if logf == nil {
		logf = func(string, ...any) {}
	}

	url := strings.TrimSpace(in.URL)
	progress(StageParse, false, url)
	id, err := videoid.Parse(url)
	if err != nil {
		return Result{}, &StageError{Stage: StageParse, Kind: ErrInvalidURL, Err: err}
	}
	progress(StageParse, true, id)
	res := Result{VideoID: id, OutputPath: in.OutputPath}

	lang := strings.TrimSpace(in.Language)
	if lang == "" {
		lang = DefaultLanguage
	}
	progress(StageTranscript, false, lang)
	tr, err := u.transcript(ctx, id, lang, logf)
	if err != nil {
		return Result{}, &StageError{Stage: StageTranscript, Kind: ErrTranscriptUnavailable, Err: err}
	}
	res.Transcript = tr
	text := tr.Text()
	progress(StageTranscript, true, fmt.Sprintf("%d fragments", len(tr.Fragments)))

	if u.d.Metadata != nil {
		meta, err := u.d.Metadata.Lookup(ctx, id)
		if err != nil {
			logf("metadata lookup failed, continuing without title: %v", err)
		} else {
			res.Meta = meta
		}
	}

	progress(StageSummarize, false, in.Model)
	summary, err := u.d.Summarizer.Summarize(ctx, types.SummaryRequest{
		Text:        text,
		Model:       in.Model,
		MaxTokens:   in.MaxTokens,
		Temperature: in.Temperature,
	})
	if err != nil {
		return Result{}, &StageError{Stage: StageSummarize, Kind: ErrSummarizationFailed, Err: err}
	}
	res.Summary = summary
	progress(StageSummarize, true, "")

	progress(StageReport, false, in.OutputPath)
	report := types.Report{
		URL:               url,
		Title:             res.Meta.Title,
		Summary:           summary,
		Transcript:        text,
		IncludeTranscript: in.IncludeTranscript,
	}
	if err := u.d.Reports.Write(report, in.OutputPath); err != nil {
		return Result{}, &StageError{Stage: StageReport, Kind: ErrReportWrite, Err: err}
	}
	progress(StageReport, true, in.OutputPath)

	return res, nil
}

func (u Usecase) transcript(ctx context.Context, id, lang string, logf func(string, ...any)) (types.Transcript, error) {
	if u.d.Cache != nil {
		tr, ok, err := u.d.Cache.Get(ctx, id, lang)
		switch {
		case err != nil:
			logf("cache read failed: %v", err)
		case ok:
			logf("transcript %s/%s served from cache", id, lang)
			return tr, nil
		}
	}

	tr, err := u.d.Transcripts.Fetch(ctx, id, lang)
	if err != nil {
		return types.Transcript{}, err
	}

	if u.d.Cache != nil {
		// Cache under the requested language so the next lookup hits.
		cached := tr
		cached.Language = lang
		if err := u.d.Cache.Put(ctx, cached); err != nil {
			logf("cache write failed: %v", err)
		}
	}
	return tr, nil
}
