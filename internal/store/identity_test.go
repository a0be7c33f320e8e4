package store

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashIdentifierKnownValues(t *testing.T) {
	// Known-answer values pin the digest, the 8-byte truncation, and the
	// big-endian signed interpretation. Any drift here silently orphans
	// every previously stored row.
	cases := []struct {
		input string
		want  int64
	}{
		{"alpha", -8154903275597228642},
		{"beta", -842625135373891351},
		{"Company-Acme", -5971594675512984146},
		{"Person-Jane", 1131482214299922244},
	}
	for _, tc := range cases {
		t.Run(tc.input, func(t *testing.T) {
			assert.Equal(t, tc.want, hashIdentifier(tc.input))
		})
	}
}

func TestHashIdentifierDeterminism(t *testing.T) {
	inputs := []string{"", "a", "Company-Acme", "Person-Jane", "unicode-héllo-世界"}
	seen := make(map[int64]string)
	for _, in := range inputs {
		first := hashIdentifier(in)
		for i := 0; i < 10; i++ {
			require.Equal(t, first, hashIdentifier(in), "hash must be stable across calls")
		}
		if prev, ok := seen[first]; ok {
			t.Fatalf("distinct inputs %q and %q collided", prev, in)
		}
		seen[first] = in
	}
}

func TestNodeIdentifier(t *testing.T) {
	assert.Equal(t, int64(-5971594675512984146), NodeIdentifier("Company", "Acme"))
	assert.Equal(t, int64(1131482214299922244), NodeIdentifier("Person", "Jane"))

	// The separator sits between type and id, so the pair is what matters,
	// not the concatenation.
	assert.Equal(t, hashIdentifier("Company-Acme"), NodeIdentifier("Company", "Acme"))
}

func TestEdgeIdentifierFromEndpoints(t *testing.T) {
	src := NodeIdentifier("Company", "Acme")
	dst := NodeIdentifier("Person", "Jane")

	got := EdgeIdentifier(src, dst, "EMPLOYS")
	assert.Equal(t, int64(-7690513211337193563), got)

	// Identity is derived from natural keys only, never insertion order.
	assert.Equal(t, got, EdgeIdentifier(src, dst, "EMPLOYS"))
	assert.NotEqual(t, got, EdgeIdentifier(dst, src, "EMPLOYS"), "direction must matter")
	assert.NotEqual(t, got, EdgeIdentifier(src, dst, "FIRES"), "edge type must matter")
}

func TestEdgeKeyUsesHashedEndpoints(t *testing.T) {
	// The canonical edge string embeds the signed decimal endpoint ids.
	src, dst := int64(-42), int64(7)
	assert.Equal(t, fmt.Sprintf("%d-KNOWS-%d", src, dst), edgeKey(src, "KNOWS", dst))
}

func TestIdentityRegistry(t *testing.T) {
	r := newIdentityRegistry()
	require.NoError(t, r.register(1, "Company-Acme"))
	require.NoError(t, r.register(1, "Company-Acme"), "re-registering the same key is fine")
	require.NoError(t, r.register(2, "Person-Jane"))

	err := r.register(1, "Person-Jane")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "identifier collision")
}
