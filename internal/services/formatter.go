package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"cv-formatter/internal/models"
)

// AIFormatter turns raw extracted text into a validated CV record by
// walking an ordered provider chain: first provider to return a
// parseable, schema-conforming JSON object wins.
type AIFormatter interface {
	Format(ctx context.Context, text string) (*models.CV, error)
}

type aiFormatter struct {
	providers    []Provider
	cache        ResultCache
	prompt       *PromptBuilder
	maxAttempts  int
	initialDelay time.Duration
}

func NewAIFormatter(
	providers []Provider,
	cache ResultCache,
	maxAttempts int,
	initialDelay time.Duration,
) AIFormatter {
	return &aiFormatter{
		providers:    providers,
		cache:        cache,
		prompt:       NewPromptBuilder(),
		maxAttempts:  maxAttempts,
		initialDelay: initialDelay,
	}
}

// Format implements AIFormatter. A cache hit bypasses the providers
// entirely.
func (f *aiFormatter) Format(ctx context.Context, text string) (*models.CV, error) {
	if cv, ok := f.cache.Get(text); ok {
		log.Println("♻️  Formatter cache hit, skipping provider call")
		return cv, nil
	}

	prompt := f.prompt.BuildFormatPrompt(text)

	lastErr := errors.New("no provider configured")
	for _, p := range f.providers {
		if !p.Configured() {
			continue
		}

		cv, err := f.tryFormat(ctx, p, prompt)
		if err == nil {
			f.cache.Set(text, cv)
			return cv, nil
		}
		if ctx.Err() != nil {
			return nil, fmt.Errorf("formatting cancelled: %w", ctx.Err())
		}

		log.Printf("⚠️  Provider %s failed: %v. Trying next provider...\n", p.Name(), err)
		lastErr = err
	}

	return nil, fmt.Errorf("%w: %v", ErrAllProvidersExhausted, lastErr)
}

// tryFormat runs one provider through the retry loop and parses its
// response into the schema contract.
func (f *aiFormatter) tryFormat(ctx context.Context, p Provider, prompt string) (*models.CV, error) {
	raw, err := f.completeWithRetry(ctx, p, prompt)
	if err != nil {
		return nil, err
	}
	return parseRecord(raw)
}

// completeWithRetry retries transient provider failures (rate limit,
// service unavailable) with exponential backoff. Fatal failures return
// immediately so the chain can move on.
func (f *aiFormatter) completeWithRetry(ctx context.Context, p Provider, prompt string) (string, error) {
	var lastErr error

	delay := f.initialDelay
	for attempt := 1; attempt <= f.maxAttempts; attempt++ {
		result, err := p.Complete(ctx, prompt)
		if err == nil {
			return result, nil
		}
		lastErr = err

		if !IsTransient(err) {
			return "", err
		}
		if attempt == f.maxAttempts {
			break
		}

		log.Printf("⚠️  Provider %s attempt %d failed: %v. Retrying in %s...\n", p.Name(), attempt, err, delay)
		select {
		case <-ctx.Done():
			return "", fmt.Errorf("retry cancelled: %w", ctx.Err())
		case <-time.After(delay):
		}
		delay *= 2
	}

	return "", fmt.Errorf("failed after %d attempts: %w", f.maxAttempts, lastErr)
}

// parseRecord decodes the provider payload into a CV record and
// validates it against the schema contract. Mechanical defects (nil
// slices, stray whitespace) are repaired; anything else rejects the
// payload.
func parseRecord(raw string) (*models.CV, error) {
	jsonStr := extractJSON(raw)

	var cv models.CV
	if err := json.Unmarshal([]byte(jsonStr), &cv); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnparsableResponse, err)
	}

	cv.Normalize()
	if err := cv.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnparsableResponse, err)
	}

	return &cv, nil
}

// extractJSON pulls a JSON object out of text that may be wrapped in a
// markdown code fence or surrounded by prose.
func extractJSON(text string) string {
	if start := strings.Index(text, "```json"); start != -1 {
		rest := text[start+len("```json"):]
		if end := strings.Index(rest, "```"); end != -1 {
			return strings.TrimSpace(rest[:end])
		}
	}
	text = strings.ReplaceAll(text, "```", "")

	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start != -1 && end != -1 && end > start {
		return text[start : end+1]
	}

	return text
}
