package core

import (
	"fmt"
	"sort"

	"github.com/comalice/storex/internal/draft"
	"github.com/comalice/storex/internal/primitives"
)

// CombineReducers merges a mapping of named slice reducers into one root
// reducer over a keyed state tree, plus the assembled initial root state.
// The initial state is read off each config; the combiner never invents
// defaults.
//
// The root reducer returns the *same* state map when no slice reducer changed
// its sub-state (by identity), so consumers can detect no-op dispatches with
// a cheap comparison. Keys are iterated in sorted order to keep performance
// deterministic.
func CombineReducers(configs map[string]ReducerConfig) (ReducerFunc, map[string]any, error) {
	if len(configs) == 0 {
		return nil, nil, fmt.Errorf("reducer map is required and cannot be empty")
	}

	keys := make([]string, 0, len(configs))
	initial := make(map[string]any, len(configs))
	for key, cfg := range configs {
		if key == "" {
			return nil, nil, fmt.Errorf("reducer key is required")
		}
		if cfg.Reducer == nil {
			return nil, nil, fmt.Errorf("reducer %q is nil", key)
		}
		keys = append(keys, key)
		initial[key] = cfg.InitialState
	}
	sort.Strings(keys)

	root := func(state any, action primitives.Action) (any, error) {
		tree, _ := state.(map[string]any)

		next := make(map[string]any, len(keys))
		changed := false
		for _, key := range keys {
			prev := tree[key]
			sub, err := configs[key].Reducer(prev, action)
			if err != nil {
				// No partial commit: the caller discards next entirely.
				return nil, err
			}
			next[key] = sub
			if !draft.Identical(sub, prev) {
				changed = true
			}
		}
		if !changed {
			return state, nil
		}
		return next, nil
	}

	return root, initial, nil
}
