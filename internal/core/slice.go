// Package core provides the runtime core tier of the state-container engine.
// This includes the Store runtime, slice builder, reducer composition, and
// middleware composition.
// Dependencies: internal/primitives, internal/draft.
//
//go:generate go test ./... -race
package core

import (
	"errors"
	"fmt"
	"strings"

	"github.com/comalice/storex/internal/draft"
	"github.com/comalice/storex/internal/primitives"
)

// HandlerFunc handles one action for a slice. It expresses the update by
// mutating d as if the state were directly writable; the commit step
// guarantees copy-on-write. Calling d.Replace commits a replacement value
// verbatim. A returned error propagates unchanged to the dispatch caller.
type HandlerFunc func(d *draft.Map, action primitives.Action) error

// ReducerFunc is a pure function mapping (state, action) -> state.
// A nil incoming state means "use the slice's initial state".
type ReducerFunc func(state any, action primitives.Action) (any, error)

// ReducerConfig pairs a slice reducer with its initial state. Created once
// when a slice is built; immutable afterward.
type ReducerConfig struct {
	InitialState map[string]any
	Reducer      ReducerFunc
}

// SliceConfig declares a named, independently defined unit of state.
type SliceConfig struct {
	// Name qualifies the slice's action types as "<Name>/<handler>".
	Name string

	// InitialState is the slice's state before any action is handled.
	InitialState map[string]any

	// Reducers maps short handler names to their handlers. Each entry also
	// yields an action creator under the same name.
	Reducers map[string]HandlerFunc

	// ExtraReducers handle actions defined outside the slice, keyed by full
	// action type. Colliding registrations overwrite (last write wins).
	ExtraReducers map[string]HandlerFunc

	// Default runs when no handler matches. Its result is committed only if
	// it actually changes the state, guarding against no-op churn.
	Default HandlerFunc
}

// Validate checks the slice configuration:
// - Non-empty Name without "/" (the qualifier separator)
// - Non-nil InitialState
// - Non-empty handler names without "/"
// - Non-empty extra-case action types
func (c *SliceConfig) Validate() error {
	if c.Name == "" {
		return errors.New("slice name is required")
	}
	if strings.Contains(c.Name, "/") {
		return fmt.Errorf("slice name %q must not contain %q", c.Name, "/")
	}
	if c.InitialState == nil {
		return fmt.Errorf("slice %q: initial state is required", c.Name)
	}
	for name, h := range c.Reducers {
		if name == "" {
			return fmt.Errorf("slice %q: handler name is required", c.Name)
		}
		if strings.Contains(name, "/") {
			return fmt.Errorf("slice %q: handler name %q must not contain %q", c.Name, name, "/")
		}
		if h == nil {
			return fmt.Errorf("slice %q: handler %q is nil", c.Name, name)
		}
	}
	for actionType, h := range c.ExtraReducers {
		if actionType == "" {
			return fmt.Errorf("slice %q: extra-case action type is required", c.Name)
		}
		if h == nil {
			return fmt.Errorf("slice %q: extra case %q is nil", c.Name, actionType)
		}
	}
	return nil
}

// Slice is the built form of a SliceConfig: one action creator per handler
// plus the slice reducer ready for CombineReducers.
type Slice struct {
	Name    string
	Reducer ReducerConfig
	Actions map[string]primitives.ActionCreator
}

// CreateSlice validates cfg and builds its routing table, action creators,
// and reducer.
//
// The reducer looks the incoming action's type up in the routing table. On a
// miss it falls back to the default case if one is configured, otherwise the
// state passes through unchanged; unmatched actions are never an error at the
// slice level.
func CreateSlice(cfg SliceConfig) (*Slice, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	table := make(map[string]HandlerFunc, len(cfg.Reducers)+len(cfg.ExtraReducers))
	actions := make(map[string]primitives.ActionCreator, len(cfg.Reducers))
	for name, h := range cfg.Reducers {
		actionType := cfg.Name + "/" + name
		table[actionType] = h
		actions[name] = primitives.NewActionCreator(actionType)
	}
	for actionType, h := range cfg.ExtraReducers {
		table[actionType] = h
	}

	reducer := func(state any, action primitives.Action) (any, error) {
		base := cfg.InitialState
		if state != nil {
			m, ok := state.(map[string]any)
			if !ok {
				return nil, fmt.Errorf("slice %q: state is %T, want map[string]any", cfg.Name, state)
			}
			base = m
		}

		h, ok := table[action.Type]
		if !ok {
			if cfg.Default == nil {
				return base, nil
			}
			h = cfg.Default
		}
		return draft.Apply(base, func(d *draft.Map) error {
			return h(d, action)
		})
	}

	return &Slice{
		Name:    cfg.Name,
		Reducer: ReducerConfig{InitialState: cfg.InitialState, Reducer: reducer},
		Actions: actions,
	}, nil
}
