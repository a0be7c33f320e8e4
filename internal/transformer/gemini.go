package transformer

import (
	"context"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"
	"google.golang.org/genai"

	"github.com/xkilldash9x/graphloom/api/schemas"
)

// geminiGenerator implements schemas.TextGenerator against the Gemini API in
// native JSON mode, retrying transient failures with exponential backoff.
type geminiGenerator struct {
	client      *genai.Client
	model       string
	temperature float32
	maxElapsed  time.Duration
	log         *zap.Logger
}

var _ schemas.TextGenerator = (*geminiGenerator)(nil)

func newGeminiGenerator(ctx context.Context, cfg Config, logger *zap.Logger) (*geminiGenerator, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("gemini API key is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}

	return &geminiGenerator{
		client:      client,
		model:       cfg.Model,
		temperature: cfg.Temperature,
		maxElapsed:  cfg.RequestTimeout,
		log:         logger.Named("gemini"),
	}, nil
}

// GenerateJSON sends the prompt and returns the raw JSON payload the model
// produced. Network-level failures retry; a blocked or empty response is
// permanent.
func (g *geminiGenerator) GenerateJSON(ctx context.Context, prompt string) (string, error) {
	genCfg := &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		Temperature:      genai.Ptr(g.temperature),
	}

	b := backoff.NewExponentialBackOff()
	b.MaxElapsedTime = g.maxElapsed
	b.MaxInterval = 30 * time.Second

	var payload string
	operation := func() error {
		start := time.Now()
		resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), genCfg)
		if err != nil {
			g.log.Warn("Gemini request failed, retrying", zap.Error(err))
			return fmt.Errorf("gemini request failed: %w", err)
		}

		text := resp.Text()
		if text == "" {
			return backoff.Permanent(fmt.Errorf("gemini returned an empty response"))
		}

		g.log.Debug("Extraction response received",
			zap.String("model", g.model),
			zap.Duration("duration", time.Since(start)),
			zap.Int("bytes", len(text)),
		)
		payload = text
		return nil
	}

	if err := backoff.Retry(operation, backoff.WithContext(b, ctx)); err != nil {
		return "", err
	}
	return payload, nil
}
