package cli

import (
	"fmt"
	"os"

	"github.com/forPelevin/ytsum/internal/pipeline"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func Main() {
	_ = godotenv.Load() // best-effort: load .env if present

	root := newRootCmd()
	root.SetOut(os.Stdout)
	root.SetErr(os.Stderr)
	root.SetIn(os.Stdin)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "ytsum",
		Short:        "Summarize a YouTube video transcript into a PDF report",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd)
		},
	}
	root.SilenceErrors = true

	// Answers to the interactive prompts. A prompt is skipped when its flag is set.
	root.Flags().String("url", "", "YouTube video URL")
	root.Flags().String("model", "", `Model: "m" (gpt-4o-mini), "4" (gpt-4o) or a model name`)
	root.Flags().Bool("include-transcript", false, "Include the transcript in the PDF")
	root.Flags().String("lang", "", "Transcript language code (default en)")
	root.Flags().Int("max-tokens", defaultMaxTokens, "Maximum summary tokens")
	root.Flags().Float64("temperature", defaultTemperature, "Sampling temperature (0-1)")

	root.Flags().String("out", pipeline.DefaultOutputPath, "Output PDF path")
	root.Flags().String("cache-dir", os.Getenv("YTSUM_CACHE_DIR"), "Transcript cache directory (disabled when empty)")
	root.Flags().Int("retries", 0, "Transcript fetch retries")
	root.Flags().String("font", os.Getenv("YTSUM_FONT"), "UTF-8 TrueType font for the PDF")
	root.Flags().Bool("print-summary", true, "Render the summary in the terminal after saving")
	root.Flags().BoolP("verbose", "v", false, "Debug logging on stderr")

	return root
}
