package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xkilldash9x/graphloom/api/schemas"
)

func TestRootCommandWiring(t *testing.T) {
	expected := map[string]bool{
		"ingest":  false,
		"query":   false,
		"schema":  false,
		"cleanup": false,
	}
	for _, sub := range rootCmd.Commands() {
		if _, ok := expected[sub.Name()]; ok {
			expected[sub.Name()] = true
		}
	}
	for name, found := range expected {
		assert.True(t, found, "subcommand %q must be registered", name)
	}
}

func TestSchemaCommandHasRefresh(t *testing.T) {
	schemaCmd := newSchemaCmd()
	names := make([]string, 0)
	for _, sub := range schemaCmd.Commands() {
		names = append(names, sub.Name())
	}
	assert.Contains(t, names, "refresh")
}

func TestIngestFlags(t *testing.T) {
	ingestCmd := newIngestCmd()
	assert.NotNil(t, ingestCmd.Flags().Lookup("include-source"))
	assert.NotNil(t, ingestCmd.Flags().Lookup("base-entity-label"))
}

func TestRenderRowPreservesColumnOrder(t *testing.T) {
	row := schemas.ResultRow{
		Columns: []string{"zulu", "alpha", "mike"},
		Values: map[string]any{
			"zulu":  int64(1),
			"alpha": "two",
			"mike":  nil,
		},
	}

	line, err := renderRow(row)
	require.NoError(t, err)
	assert.Equal(t, `{"zulu":1,"alpha":"two","mike":null}`, line)
}

func TestRenderRowNestedValues(t *testing.T) {
	row := schemas.ResultRow{
		Columns: []string{"properties"},
		Values: map[string]any{
			"properties": map[string]any{"country": "USA"},
		},
	}

	line, err := renderRow(row)
	require.NoError(t, err)
	assert.Equal(t, `{"properties":{"country":"USA"}}`, line)
}
