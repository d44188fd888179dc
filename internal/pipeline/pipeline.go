package pipeline

import (
	"context"
	"errors"
	"fmt"
	"math"
	"path/filepath"
	"strings"
	"time"

	"github.com/forPelevin/ytsum/internal/ports"
	"github.com/forPelevin/ytsum/internal/ports/adapters/openai"
	"github.com/forPelevin/ytsum/internal/ports/adapters/pdf"
	"github.com/forPelevin/ytsum/internal/ports/adapters/sqlitecache"
	"github.com/forPelevin/ytsum/internal/ports/adapters/ytdata"
	"github.com/forPelevin/ytsum/internal/ports/adapters/yttranscript"
	"github.com/forPelevin/ytsum/internal/ports/retrying"
	"github.com/forPelevin/ytsum/internal/usecase"
)

const DefaultOutputPath = "data/youtube_transcript_summary.pdf"

type Config struct {
	URL               string
	Language          string
	Model             string
	MaxTokens         int
	Temperature       float64
	IncludeTranscript bool

	// OutputPath is where the PDF report goes. If empty, defaults to DefaultOutputPath.
	OutputPath string

	OpenAIAPIKey       string
	OpenAIBaseURL      string
	OpenAIAllowedHosts []string

	// YouTubeAPIKey enables title lookup through the Data API. Optional.
	YouTubeAPIKey string

	// CacheDir enables the SQLite transcript cache when set.
	CacheDir string

	FontPath string
	Retries  int

	// CreatedAt stamps the report. Zero keeps the writer's fixed date.
	CreatedAt time.Time

	Logf     func(format string, args ...any)
	Progress usecase.Progress
}

func (c Config) Validate() error {
	if c.MaxTokens <= 0 {
		return errors.New("max tokens must be > 0")
	}
	if math.IsNaN(c.Temperature) || c.Temperature < 0 || c.Temperature > 1 {
		return errors.New("temperature must be within [0, 1]")
	}
	if c.Retries < 0 {
		return errors.New("retries must be >= 0")
	}
	if strings.HasSuffix(c.OutputPath, "/") {
		return fmt.Errorf("output path %q is a directory", c.OutputPath)
	}
	return openai.ValidateBaseURL(
		c.OpenAIBaseURL,
		c.OpenAIAllowedHosts,
	)
}

// newTranscriptSource is swapped in tests to avoid the network.
var newTranscriptSource = func() ports.TranscriptSource { return yttranscript.New() }

func Run(ctx context.Context, cfg Config) (usecase.Result, error) {
	logf := cfg.Logf
	if logf == nil {
		logf = func(string, ...any) {}
	}

	// adapters
	rc := retrying.DefaultConfig(cfg.Retries)
	rc.Permanent = yttranscript.IsPermanent
	rc.Logf = logf
	transcripts := retrying.Wrap(newTranscriptSource(), rc)

	llm := openai.New(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL)
	reports := pdf.New(pdf.Options{CreatedAt: cfg.CreatedAt, FontPath: cfg.FontPath})

	deps := usecase.Deps{
		Transcripts: transcripts,
		Summarizer:  llm,
		Reports:     reports,
	}

	if cfg.YouTubeAPIKey != "" {
		meta, err := ytdata.New(ctx, cfg.YouTubeAPIKey)
		if err != nil {
			logf("metadata disabled: %v", err)
		} else {
			deps.Metadata = meta
		}
	}

	if cfg.CacheDir != "" {
		cache, err := sqlitecache.Open(cfg.CacheDir)
		if err != nil {
			logf("transcript cache disabled: %v", err)
		} else {
			defer func() {
				if err := cache.Close(); err != nil {
					logf("close transcript cache: %v", err)
				}
			}()
			logf("cache: %s", filepath.Join(cfg.CacheDir, sqlitecache.FileName))
			deps.Cache = cache
		}
	}

	uc := usecase.New(deps)

	out := resolveOutputPath(cfg.OutputPath)
	logf("output: %s", out)

	return uc.Run(ctx, usecase.Input{
		URL:               cfg.URL,
		Language:          cfg.Language,
		Model:             cfg.Model,
		MaxTokens:         cfg.MaxTokens,
		Temperature:       cfg.Temperature,
		IncludeTranscript: cfg.IncludeTranscript,
		OutputPath:        out,
		Progress:          cfg.Progress,
		Logf:              logf,
	})
}

func resolveOutputPath(p string) string {
	p = strings.TrimSpace(p)
	if p == "" {
		return filepath.FromSlash(DefaultOutputPath)
	}
	if strings.EqualFold(filepath.Ext(p), ".pdf") {
		return filepath.Clean(p)
	}
	return filepath.Clean(p) + ".pdf"
}

// ensure adapters implement ports
var _ ports.TranscriptSource = (*yttranscript.Adapter)(nil)
var _ ports.TranscriptSource = (*retrying.TranscriptSource)(nil)
var _ ports.Summarizer = (*openai.Adapter)(nil)
var _ ports.ReportWriter = (*pdf.Writer)(nil)
var _ ports.MetadataSource = (*ytdata.Adapter)(nil)
var _ ports.TranscriptCache = (*sqlitecache.Cache)(nil)
