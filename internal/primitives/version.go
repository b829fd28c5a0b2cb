package primitives

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"time"
)

// ComputeVersion computes a deterministic-prefix version string for a state
// tree: SHA256(state JSON)[:8] + timestamp. Identical trees committed at
// different times share the hash prefix, which makes duplicate snapshots easy
// to spot when listing registry versions.
func ComputeVersion(state map[string]any) string {
	data, err := json.Marshal(state)
	if err != nil {
		// Fallback (should not happen for a serializable state tree)
		return fmt.Sprintf("invalid-%d", time.Now().Unix())
	}

	hash := sha256.Sum256(data)
	return fmt.Sprintf("%x-%s", hash[:8], time.Now().UTC().Format("20060102T150405Z"))
}
