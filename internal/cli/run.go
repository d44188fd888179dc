package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/forPelevin/ytsum/internal/pipeline"
	"github.com/forPelevin/ytsum/internal/ports/adapters/openai"
	"github.com/forPelevin/ytsum/internal/usecase"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

const runTimeout = 10 * time.Minute

// runPipeline is replaced in tests.
var runPipeline = pipeline.Run

type answers struct {
	url               string
	model             string
	includeTranscript bool
	language          string
	maxTokens         int
	temperature       float64
}

func run(cmd *cobra.Command) error {
	out := newPrinter(cmd.OutOrStdout())
	verbose, _ := cmd.Flags().GetBool("verbose")
	logger := newLogger(cmd.ErrOrStderr(), verbose)
	logf := func(format string, args ...any) { logger.Debug().Msgf(format, args...) }

	ans, err := collect(cmd, out)
	if err != nil {
		return err
	}

	outPath, _ := cmd.Flags().GetString("out")
	cacheDir, _ := cmd.Flags().GetString("cache-dir")
	fontPath, _ := cmd.Flags().GetString("font")
	retries, _ := cmd.Flags().GetInt("retries")
	printSummary, _ := cmd.Flags().GetBool("print-summary")

	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		logger.Warn().Msg("OPENAI_API_KEY is not set; summarization will fail")
	}

	cfg := pipeline.Config{
		URL:               ans.url,
		Language:          ans.language,
		Model:             ans.model,
		MaxTokens:         ans.maxTokens,
		Temperature:       ans.temperature,
		IncludeTranscript: ans.includeTranscript,
		OutputPath:        outPath,

		OpenAIAPIKey:       apiKey,
		OpenAIBaseURL:      getenvDefault("OPENAI_BASE_URL", openai.DefaultBaseURL),
		OpenAIAllowedHosts: openai.ParseAllowedHosts(os.Getenv("OPENAI_ALLOWED_HOSTS")),
		YouTubeAPIKey:      os.Getenv("YOUTUBE_API_KEY"),

		CacheDir: cacheDir,
		FontPath: fontPath,
		Retries:  retries,

		Logf:     logf,
		Progress: progressPrinter(out),
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), runTimeout)
	defer cancel()

	res, err := runPipeline(ctx, cfg)
	if err != nil {
		// Stage failures are reported, not propagated: the process still exits 0.
		var se *usecase.StageError
		if errors.As(err, &se) {
			out.Error("%s: %v", stageFailure(se.Stage), se.Err)
			logger.Debug().Err(err).Str("stage", string(se.Stage)).Msg("run failed")
			return nil
		}
		return err
	}

	if printSummary {
		if width, ok := terminal(cmd.OutOrStdout()); ok {
			rendered, err := renderMarkdown(res.Summary, width)
			if err != nil {
				logf("render summary: %v", err)
				return nil
			}
			out.Header("Summary")
			fmt.Fprint(cmd.OutOrStdout(), rendered)
		}
	}
	return nil
}

// collect fills every answer from its flag when set, otherwise from the prompt.
func collect(cmd *cobra.Command, out *printer) (answers, error) {
	flags := cmd.Flags()
	p := newPrompter(cmd.InOrStdin(), cmd.OutOrStdout())
	var a answers

	if flags.Changed("url") {
		a.url, _ = flags.GetString("url")
	} else {
		v, err := p.ask(promptURL)
		if err != nil {
			return a, err
		}
		a.url = v
	}

	if flags.Changed("model") {
		v, _ := flags.GetString("model")
		a.model = modelFromFlag(v)
	} else {
		v, err := p.ask(promptModel)
		if err != nil {
			return a, err
		}
		a.model = chooseModel(v)
	}

	if flags.Changed("include-transcript") {
		a.includeTranscript, _ = flags.GetBool("include-transcript")
	} else {
		v, err := p.ask(promptInclude)
		if err != nil {
			return a, err
		}
		a.includeTranscript = parseInclude(v)
	}

	if flags.Changed("lang") {
		v, _ := flags.GetString("lang")
		a.language = parseLanguage(v)
	} else {
		v, err := p.ask(promptLanguage)
		if err != nil {
			return a, err
		}
		a.language = parseLanguage(v)
	}

	if flags.Changed("max-tokens") {
		a.maxTokens, _ = flags.GetInt("max-tokens")
	} else {
		v, err := p.ask(promptMaxTokens)
		if err != nil {
			return a, err
		}
		n, ok := parseMaxTokens(v)
		if !ok {
			out.Warning("Invalid number of tokens %q, using %d.", v, defaultMaxTokens)
		}
		a.maxTokens = n
	}

	if flags.Changed("temperature") {
		a.temperature, _ = flags.GetFloat64("temperature")
	} else {
		v, err := p.ask(promptTemperature)
		if err != nil {
			return a, err
		}
		f, ok := parseTemperature(v)
		if !ok {
			out.Warning("Invalid temperature %q, using %.1f.", v, defaultTemperature)
		}
		a.temperature = f
	}

	return a, nil
}

func progressPrinter(out *printer) usecase.Progress {
	return func(stage usecase.Stage, done bool, detail string) {
		switch {
		case stage == usecase.StageParse && !done:
			out.Info("Extracting video ID...")
		case stage == usecase.StageParse:
			out.Success("Video ID extracted: %s", detail)
		case stage == usecase.StageTranscript && !done:
			out.Info("Fetching YouTube transcript...")
		case stage == usecase.StageTranscript:
			out.Success("Transcript fetched successfully.")
		case stage == usecase.StageSummarize && !done:
			out.Info("Summarizing transcript...")
		case stage == usecase.StageSummarize:
			out.Success("Summary generated.")
		case stage == usecase.StageReport && !done:
			out.Info("Generating PDF...")
		case stage == usecase.StageReport:
			out.Success("PDF saved at: %s", detail)
		}
	}
}

func stageFailure(s usecase.Stage) string {
	switch s {
	case usecase.StageParse:
		return "Error extracting video ID"
	case usecase.StageTranscript:
		return "Error fetching transcript"
	case usecase.StageSummarize:
		return "Error summarizing transcript"
	case usecase.StageReport:
		return "Error saving PDF"
	}
	return "Error"
}

func newLogger(w io.Writer, verbose bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	cw := zerolog.ConsoleWriter{
		Out:        w,
		TimeFormat: time.TimeOnly,
		NoColor:    os.Getenv("NO_COLOR") != "" || strings.EqualFold(os.Getenv("TERM"), "dumb"),
	}
	return zerolog.New(cw).Level(level).With().Timestamp().Logger()
}

func getenvDefault(k, def string) string {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	return v
}
