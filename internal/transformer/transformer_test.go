package transformer

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/xkilldash9x/graphloom/api/schemas"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// fakeGenerator serves canned payloads keyed by a substring of the prompt.
type fakeGenerator struct {
	mu       sync.Mutex
	payloads map[string]string
	err      error
	prompts  []string
}

func (f *fakeGenerator) GenerateJSON(ctx context.Context, prompt string) (string, error) {
	f.mu.Lock()
	f.prompts = append(f.prompts, prompt)
	f.mu.Unlock()

	if f.err != nil {
		return "", f.err
	}
	for needle, payload := range f.payloads {
		if strings.Contains(prompt, needle) {
			return payload, nil
		}
	}
	return "[]", nil
}

func testConfig() Config {
	return Config{Concurrency: 2, RequestsPerSecond: 1000}
}

func TestTransform(t *testing.T) {
	llm := &fakeGenerator{payloads: map[string]string{
		"Acme employs Jane": `[
			{"id": "Acme", "type": "Company"},
			{"id": "Jane", "type": "Person"},
			{"source": "Acme", "target": "Jane", "type": "EMPLOYS", "properties": {"years": 3}}
		]`,
	}}
	tr := newExtractor(llm, testConfig(), nil)

	docs := []schemas.Document{
		{PageContent: "Acme employs Jane.", Metadata: map[string]any{"filename": "acme.txt"}},
		{PageContent: "Nothing of note."},
	}

	out, err := tr.Transform(context.Background(), docs)
	require.NoError(t, err)
	require.Len(t, out, 2, "one graph document per input, in input order")

	first := out[0]
	assert.Len(t, first.Nodes, 2)
	assert.Len(t, first.Relationships, 1)
	assert.Equal(t, docs[0], first.Source)

	second := out[1]
	assert.Empty(t, second.Nodes)
	assert.Equal(t, docs[1], second.Source)
}

func TestTransformPromptCarriesDocumentText(t *testing.T) {
	llm := &fakeGenerator{}
	tr := newExtractor(llm, testConfig(), nil)

	_, err := tr.Transform(context.Background(), []schemas.Document{{PageContent: "Acme employs Jane."}})
	require.NoError(t, err)

	require.Len(t, llm.prompts, 1)
	assert.Contains(t, llm.prompts[0], "Acme employs Jane.")
	assert.Contains(t, llm.prompts[0], "valid JSON array")
}

func TestTransformGenerationFailureYieldsEmptyDocument(t *testing.T) {
	llm := &fakeGenerator{err: errors.New("model unavailable")}
	tr := newExtractor(llm, testConfig(), nil)

	doc := schemas.Document{PageContent: "Acme employs Jane."}
	out, err := tr.Transform(context.Background(), []schemas.Document{doc})
	require.NoError(t, err, "per-document failures must not fail the batch")
	require.Len(t, out, 1)
	assert.Empty(t, out[0].Nodes)
	assert.Empty(t, out[0].Relationships)
	assert.Equal(t, doc, out[0].Source)
}

func TestTransformMalformedPayloadYieldsEmptyDocument(t *testing.T) {
	llm := &fakeGenerator{payloads: map[string]string{"Acme": "```json not really```"}}
	tr := newExtractor(llm, testConfig(), nil)

	out, err := tr.Transform(context.Background(), []schemas.Document{{PageContent: "Acme."}})
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Empty(t, out[0].Nodes)
}

func TestTransformCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// Throttle hard so the limiter blocks and observes the cancelled context.
	tr := newExtractor(&fakeGenerator{}, Config{Concurrency: 1, RequestsPerSecond: 0.001}, nil)

	_, err := tr.Transform(ctx, []schemas.Document{{PageContent: "a"}, {PageContent: "b"}})
	require.Error(t, err)
}

func TestTransformEmptyInput(t *testing.T) {
	tr := newExtractor(&fakeGenerator{}, testConfig(), nil)
	out, err := tr.Transform(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, out)
}
