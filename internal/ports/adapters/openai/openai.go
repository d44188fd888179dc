package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/forPelevin/ytsum/internal/types"
)

const (
	DefaultModel = "gpt-4o-mini"

	requestTimeout = 90 * time.Second

	systemPrompt = "You are a helpful assistant with the aim of summarizing youtube videos."
)

var (
	ErrAuth              = errors.New("chat completion: authentication failed")
	ErrMissingAPIKey     = fmt.Errorf("%w: OPENAI_API_KEY is not set", ErrAuth)
	ErrQuota             = errors.New("chat completion: quota or rate limit exceeded")
	ErrMalformedResponse = errors.New("chat completion: malformed response")
)

// StatusError is a non-2xx reply from the chat completion endpoint.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("chat completion status %d: %s", e.StatusCode, e.Body)
}

func (e *StatusError) Unwrap() error {
	switch e.StatusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		return ErrAuth
	case http.StatusTooManyRequests:
		return ErrQuota
	}
	return nil
}

type Adapter struct {
	key     string
	baseURL string
	client  *http.Client
}

func New(apiKey, baseURL string) *Adapter {
	return &Adapter{
		key:     strings.TrimSpace(apiKey),
		baseURL: normalizeBaseURL(baseURL),
		client:  &http.Client{Timeout: 5 * time.Minute},
	}
}

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string    `json:"model"`
	Messages    []message `json:"messages"`
	MaxTokens   int       `json:"max_tokens"`
	Temperature float64   `json:"temperature"`
	Stream      bool      `json:"stream"`
}

// Summarize sends a single chat completion request. It never retries.
func (a *Adapter) Summarize(ctx context.Context, in types.SummaryRequest) (string, error) {
	if a.key == "" {
		return "", ErrMissingAPIKey
	}
	model := in.Model
	if model == "" {
		model = DefaultModel
	}

	body, err := json.Marshal(chatRequest{
		Model:       model,
		Messages:    buildMessages(in.Text, in.MaxTokens),
		MaxTokens:   in.MaxTokens,
		Temperature: in.Temperature,
	})
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	reqCtx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodPost, a.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+a.key)
	req.Header.Set("Content-Type", "application/json")

	resp, err := a.client.Do(req)
	if err != nil {
		if errors.Is(reqCtx.Err(), context.DeadlineExceeded) {
			return "", fmt.Errorf("chat completion timeout after %s (model=%s)", requestTimeout, model)
		}
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		rb, readErr := io.ReadAll(io.LimitReader(resp.Body, 64*1024))
		if readErr != nil {
			return "", fmt.Errorf("chat completion status %d and read body failed: %v", resp.StatusCode, readErr)
		}
		return "", &StatusError{
			StatusCode: resp.StatusCode,
			Body:       truncate(redactSecrets(string(rb), a.key), 400),
		}
	}

	var raw struct {
		Choices []struct {
			Message struct {
				Content any `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return "", fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	if len(raw.Choices) == 0 {
		return "", fmt.Errorf("%w: no choices", ErrMalformedResponse)
	}

	content, err := messageContentToString(raw.Choices[0].Message.Content)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(content), nil
}

func buildMessages(transcript string, maxTokens int) []message {
	return []message{
		{Role: "system", Content: systemPrompt},
		{Role: "user", Content: buildUserPrompt(transcript, maxTokens)},
	}
}

func buildUserPrompt(transcript string, maxTokens int) string {
	return "The following is a transcript of a YouTube video. " +
		"Please summarize it, highlighting the main topics discussed, " +
		"key conclusions, participants, and any other relevant information. " +
		"Use clear and concise language to provide a comprehensive overview of the content. " +
		fmt.Sprintf("Be as detailed as possible using up to %d tokens.", maxTokens) +
		"\nTranscript:\n\n" + transcript
}

func messageContentToString(v any) (string, error) {
	switch x := v.(type) {
	case string:
		if strings.TrimSpace(x) == "" {
			return "", fmt.Errorf("%w: empty content", ErrMalformedResponse)
		}
		return x, nil
	case []any:
		// Some providers return an array of {type,text} parts.
		var b strings.Builder
		for _, it := range x {
			m, ok := it.(map[string]any)
			if !ok {
				continue
			}
			if t, ok := m["text"].(string); ok {
				b.WriteString(t)
			}
		}
		s := b.String()
		if strings.TrimSpace(s) == "" {
			return "", fmt.Errorf("%w: empty content", ErrMalformedResponse)
		}
		return s, nil
	default:
		return "", fmt.Errorf("%w: unexpected content type %T", ErrMalformedResponse, v)
	}
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

var (
	bearerTokenRE = regexp.MustCompile(`(?i)\bBearer\s+[A-Za-z0-9._-]+\b`)
	authHeaderRE  = regexp.MustCompile(`(?i)(authorization\s*[:=]\s*)([^\n\r,;]+)`)
	apiKeyFieldRE = regexp.MustCompile(`(?i)(api[_-]?key\s*[:=]\s*)([^\n\r,;]+)`)
)

func redactSecrets(s, apiKey string) string {
	if s == "" {
		return s
	}
	out := s
	if apiKey != "" {
		out = strings.ReplaceAll(out, apiKey, "[REDACTED]")
	}
	out = bearerTokenRE.ReplaceAllString(out, "Bearer [REDACTED]")
	out = authHeaderRE.ReplaceAllString(out, "${1}[REDACTED]")
	out = apiKeyFieldRE.ReplaceAllString(out, "${1}[REDACTED]")
	return out
}
