// Package transformer extracts graph documents from free text using a
// generative model in JSON mode. Extraction quality is the model's problem;
// this package guarantees well-formed node and relationship records.
package transformer

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/xkilldash9x/graphloom/api/schemas"
)

// Config tunes the extraction pipeline.
type Config struct {
	Model       string
	APIKey      string
	Temperature float32
	// Concurrency bounds how many documents are in flight at once.
	Concurrency int
	// RequestsPerSecond throttles calls to the model API.
	RequestsPerSecond float64
	// RequestTimeout caps the total retry budget per document.
	RequestTimeout time.Duration
}

func (c *Config) applyDefaults() {
	if c.Model == "" {
		c.Model = "gemini-2.5-pro"
	}
	if c.Concurrency <= 0 {
		c.Concurrency = 4
	}
	if c.RequestsPerSecond <= 0 {
		c.RequestsPerSecond = 1
	}
	if c.RequestTimeout <= 0 {
		c.RequestTimeout = 2 * time.Minute
	}
}

// GraphExtractor turns source documents into graph documents.
type GraphExtractor struct {
	llm         schemas.TextGenerator
	limiter     *rate.Limiter
	concurrency int
	log         *zap.Logger
}

var _ schemas.GraphTransformer = (*GraphExtractor)(nil)

// New builds an extractor backed by the Gemini API.
func New(ctx context.Context, cfg Config, logger *zap.Logger) (*GraphExtractor, error) {
	cfg.applyDefaults()
	if logger == nil {
		logger = zap.NewNop()
	}

	llm, err := newGeminiGenerator(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}
	return newExtractor(llm, cfg, logger), nil
}

// newExtractor wires an extractor from a pre-built generator. Tests use it
// with fakes.
func newExtractor(llm schemas.TextGenerator, cfg Config, logger *zap.Logger) *GraphExtractor {
	cfg.applyDefaults()
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GraphExtractor{
		llm:         llm,
		limiter:     rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), 1),
		concurrency: cfg.Concurrency,
		log:         logger.Named("transformer"),
	}
}

// Transform processes every document and returns one GraphDocument per
// input, in input order. A document whose extraction or parse fails yields an
// empty graph bound to its source rather than failing the batch; only
// cancellation aborts the whole run.
func (t *GraphExtractor) Transform(ctx context.Context, docs []schemas.Document) ([]schemas.GraphDocument, error) {
	results := make([]schemas.GraphDocument, len(docs))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(t.concurrency)

	for i, doc := range docs {
		g.Go(func() error {
			if err := t.limiter.Wait(ctx); err != nil {
				return err
			}
			results[i] = t.transformOne(ctx, doc)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("transformation cancelled: %w", err)
	}
	return results, nil
}

func (t *GraphExtractor) transformOne(ctx context.Context, doc schemas.Document) schemas.GraphDocument {
	empty := schemas.GraphDocument{
		Nodes:         []schemas.Node{},
		Relationships: []schemas.Relationship{},
		Source:        doc,
	}

	prompt := fmt.Sprintf("%s\n\nText to process:\n---\n%s\n---", extractionPrompt, doc.PageContent)

	payload, err := t.llm.GenerateJSON(ctx, prompt)
	if err != nil {
		t.log.Warn("Extraction failed for document", zap.Error(err))
		return empty
	}

	parsed, err := parseGraphPayload(payload, doc)
	if err != nil {
		t.log.Warn("Failed to parse model response",
			zap.Error(err),
			zap.Int("payload_bytes", len(payload)),
		)
		return empty
	}

	t.log.Debug("Document transformed",
		zap.Int("nodes", len(parsed.Nodes)),
		zap.Int("relationships", len(parsed.Relationships)),
	)
	return parsed
}
