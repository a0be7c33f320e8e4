package store

import (
	"crypto/sha256"
	"encoding/binary"
	"fmt"
)

// hashIdentifier maps a canonical key string to a fixed-width signed integer:
// the first 8 bytes of the SHA-256 digest, interpreted big-endian. Identical
// inputs always produce identical identifiers; distinct inputs collide only
// with digest-level probability.
func hashIdentifier(input string) int64 {
	sum := sha256.Sum256([]byte(input))
	return int64(binary.BigEndian.Uint64(sum[:8]))
}

// nodeKey is the canonical string for a node's natural key.
func nodeKey(nodeType, id string) string {
	return fmt.Sprintf("%s-%s", nodeType, id)
}

// edgeKey is the canonical string for an edge, built from the already hashed
// endpoint identifiers and the edge type. Using the integer identifiers keeps
// edge identity independent of how the endpoints were spelled out.
func edgeKey(sourceID int64, edgeType string, targetID int64) string {
	return fmt.Sprintf("%d-%s-%d", sourceID, edgeType, targetID)
}

// identityRegistry tracks which canonical key produced each identifier
// within one batch, so strict mode can reject a real digest collision
// instead of silently merging two distinct entities.
type identityRegistry struct {
	keys map[int64]string
}

func newIdentityRegistry() *identityRegistry {
	return &identityRegistry{keys: make(map[int64]string)}
}

func (r *identityRegistry) register(id int64, key string) error {
	if prev, ok := r.keys[id]; ok && prev != key {
		return fmt.Errorf("identifier collision: %q and %q both hash to %d", prev, key, id)
	}
	r.keys[id] = key
	return nil
}

// NodeIdentifier exposes the node identity derivation to callers that need to
// address a stored node directly, e.g. when building read queries.
func NodeIdentifier(nodeType, id string) int64 {
	return hashIdentifier(nodeKey(nodeType, id))
}

// EdgeIdentifier derives the identifier of the edge between two nodes given
// their natural keys and the edge type.
func EdgeIdentifier(source, target int64, edgeType string) int64 {
	return hashIdentifier(edgeKey(source, edgeType, target))
}
