package cli

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/forPelevin/ytsum/internal/ports/adapters/openai"
	"github.com/forPelevin/ytsum/internal/usecase"
)

const (
	defaultMaxTokens   = 150
	defaultTemperature = 0.3

	modelMini = openai.DefaultModel
	modelFull = "gpt-4o"
)

const (
	promptURL         = "Enter the YouTube video URL: "
	promptModel       = "Which model do you want to use? (m: gpt-4o-mini or 4: gpt-4o): "
	promptInclude     = "Include the transcript in the PDF? (y/n): "
	promptLanguage    = "Enter the language of the transcript (e.g en for english or pt for portuguese): "
	promptMaxTokens   = "Enter the maximum number of tokens: "
	promptTemperature = "Enter the temperature for the model (0-1): "
)

type prompter struct {
	r *bufio.Reader
	w io.Writer
}

func newPrompter(r io.Reader, w io.Writer) *prompter {
	return &prompter{r: bufio.NewReader(r), w: w}
}

// ask prints label and reads one line. EOF counts as a blank answer.
func (p *prompter) ask(label string) (string, error) {
	fmt.Fprint(p.w, label)
	line, err := p.r.ReadString('\n')
	if err != nil && err != io.EOF {
		return "", fmt.Errorf("read answer: %w", err)
	}
	if err == io.EOF {
		fmt.Fprintln(p.w)
	}
	return strings.TrimSpace(line), nil
}

func chooseModel(answer string) string {
	if strings.TrimSpace(answer) == "4" {
		return modelFull
	}
	return modelMini
}

// modelFromFlag accepts the prompt shorthands or a literal model name.
func modelFromFlag(v string) string {
	switch v = strings.TrimSpace(v); v {
	case "", "m":
		return modelMini
	case "4":
		return modelFull
	}
	return v
}

func parseInclude(answer string) bool {
	return strings.EqualFold(strings.TrimSpace(answer), "y")
}

func parseLanguage(answer string) string {
	if l := strings.TrimSpace(answer); l != "" {
		return l
	}
	return usecase.DefaultLanguage
}

// parseMaxTokens reports false when the answer is unusable and the default was taken.
func parseMaxTokens(answer string) (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(answer))
	if err != nil || n <= 0 {
		return defaultMaxTokens, false
	}
	return n, true
}

func parseTemperature(answer string) (float64, bool) {
	f, err := strconv.ParseFloat(strings.TrimSpace(answer), 64)
	if err != nil || math.IsNaN(f) || f < 0 || f > 1 {
		return defaultTemperature, false
	}
	return f, true
}
