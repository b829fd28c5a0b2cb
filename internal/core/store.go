package core

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/comalice/storex/internal/primitives"
)

// ErrDispatchInProgress reports a reentrancy violation: Dispatch (or the
// guarded State accessor) was invoked while a base dispatch was already
// executing. Never retried automatically; always surfaces to the original
// caller.
var ErrDispatchInProgress = errors.New("dispatch in progress")

// Pluggable post-commit components. Implementations in internal/production.

// StoreSnapshot is the serializable snapshot of a store's committed state.
type StoreSnapshot struct {
	StoreID   string         `json:"storeID" yaml:"storeID"`
	State     map[string]any `json:"state" yaml:"state"`
	Timestamp time.Time      `json:"timestamp" yaml:"timestamp"`
}

// DispatchMetadata annotates a committed action for publishing.
type DispatchMetadata struct {
	StoreID    string    `json:"storeID" yaml:"storeID"`
	ActionType string    `json:"actionType" yaml:"actionType"`
	Timestamp  time.Time `json:"timestamp" yaml:"timestamp"`
}

type Persister interface {
	Save(ctx context.Context, snapshot StoreSnapshot) error
	Load(ctx context.Context, storeID string) (StoreSnapshot, error)
}

type Publisher interface {
	Publish(ctx context.Context, action primitives.Action, metadata DispatchMetadata) error
	Close() error
}

// StoreAPI is the restricted store surface handed to middleware. State is the
// store's guarded accessor; Dispatch re-enters the full pipeline, not just
// the downstream stages. Middleware never holds a direct reference to store
// internals.
type StoreAPI struct {
	State    func() (map[string]any, error)
	Dispatch DispatchFunc
}

// Option applies configuration to Store via the functional options pattern.
type Option func(*Store)

type listener struct {
	id int
	fn func()
}

// Store owns exactly one state tree, its root reducer, the composed dispatch
// pipeline, and the listener registry.
//
// The store is a passive object: it runs no goroutine and Dispatch executes
// entirely within the calling stack. Dispatch is strictly single-writer and
// non-reentrant at the base layer, mediated by a flag rather than a lock.
// Multi-threaded hosts must serialize Dispatch/State externally.
type Store struct {
	id          string
	state       map[string]any
	rootReducer ReducerFunc
	dispatch    DispatchFunc
	listeners   []listener
	nextID      int
	dispatching bool
	// Pluggable components (nil = disabled)
	middleware []Middleware
	persister  Persister
	publisher  Publisher
	registry   Registry
}

// NewStore builds a store from a mapping of slice reducers: it combines them
// into the root reducer, assembles the initial root state from each slice's
// initial state, and applies any configured middleware to base dispatch to
// obtain the effective dispatch function.
func NewStore(reducers map[string]ReducerConfig, opts ...Option) (*Store, error) {
	root, initial, err := CombineReducers(reducers)
	if err != nil {
		return nil, err
	}

	s := &Store{
		id:          uuid.NewString(),
		state:       initial,
		rootReducer: root,
	}
	for _, opt := range opts {
		opt(s)
	}

	api := StoreAPI{
		State: s.State,
		// Bound to the store's public dispatch so middleware-issued
		// dispatches re-enter the full pipeline from the top.
		Dispatch: func(action primitives.Action) error { return s.Dispatch(action) },
	}
	links := make([]ChainLink, 0, len(s.middleware))
	for _, mw := range s.middleware {
		links = append(links, mw(api))
	}
	s.dispatch = Compose(links...)(s.baseDispatch)

	return s, nil
}

// ID returns the store's identifier, used in snapshots and publish metadata.
func (s *Store) ID() string {
	return s.id
}

// State returns the current state tree. The tree is replaced wholesale on
// every commit and never mutated in place, so two reads bracketing a no-op
// dispatch return the identical map; callers must treat it as read-only.
//
// Fails with ErrDispatchInProgress while a base dispatch is executing:
// reducers and middleware must not observe a half-committed tree through this
// accessor. The guard covers the base-dispatch frame only, so middleware
// reading state after next(action) has fully unwound is fine.
func (s *Store) State() (map[string]any, error) {
	if s.dispatching {
		return nil, ErrDispatchInProgress
	}
	return s.state, nil
}

// Dispatch submits an action through the middleware-enhanced pipeline, or
// directly to base dispatch when no middleware is configured.
func (s *Store) Dispatch(action primitives.Action) error {
	return s.dispatch(action)
}

// Subscribe registers fn for invocation after every completed dispatch, even
// when the committed state is referentially unchanged. Listeners run in
// registration order, with no arguments. The returned function unregisters
// fn; it is idempotent.
func (s *Store) Subscribe(fn func()) func() {
	id := s.nextID
	s.nextID++
	s.listeners = append(s.listeners, listener{id: id, fn: fn})
	return func() {
		for i, l := range s.listeners {
			if l.id == id {
				s.listeners = append(s.listeners[:i], s.listeners[i+1:]...)
				return
			}
		}
	}
}

// baseDispatch is the innermost, unconditional commit routine: set the
// reentrancy flag, run the root reducer, replace the state, clear the flag
// (guaranteed, even on reducer error), then notify listeners. A reducer
// error leaves the previous state committed and surfaces unwrapped.
func (s *Store) baseDispatch(action primitives.Action) error {
	if s.dispatching {
		return ErrDispatchInProgress
	}

	next, err := func() (any, error) {
		s.dispatching = true
		defer func() { s.dispatching = false }()
		return s.rootReducer(s.state, action)
	}()
	if err != nil {
		return err
	}
	tree, ok := next.(map[string]any)
	if !ok {
		return fmt.Errorf("root reducer returned %T, want map[string]any", next)
	}
	s.state = tree

	// Notify after the guard clears so listeners observe a committed tree.
	// Iterate a snapshot: unsubscribing during notification takes effect on
	// the next dispatch.
	current := make([]listener, len(s.listeners))
	copy(current, s.listeners)
	for _, l := range current {
		l.fn()
	}

	s.afterCommit(action)
	return nil
}

// afterCommit runs the configured post-commit components, best effort:
// persistence, publishing, and registry errors never disturb dispatch
// semantics.
func (s *Store) afterCommit(action primitives.Action) {
	if s.persister == nil && s.publisher == nil && s.registry == nil {
		return
	}
	ctx := context.Background()
	snapshot := StoreSnapshot{
		StoreID:   s.id,
		State:     s.state,
		Timestamp: time.Now(),
	}
	if s.persister != nil {
		_ = s.persister.Save(ctx, snapshot)
	}
	if s.publisher != nil {
		metadata := DispatchMetadata{
			StoreID:    s.id,
			ActionType: action.Type,
			Timestamp:  snapshot.Timestamp,
		}
		_ = s.publisher.Publish(ctx, action, metadata)
	}
	if s.registry != nil {
		_ = s.registry.Register(ctx, s.id, snapshot)
	}
}

// Restore replaces the store's state from a snapshot, outside any dispatch.
func (s *Store) Restore(snapshot StoreSnapshot) error {
	if s.dispatching {
		return ErrDispatchInProgress
	}
	if snapshot.StoreID != s.id {
		return fmt.Errorf("store ID mismatch: have %q, snapshot %q", s.id, snapshot.StoreID)
	}
	if snapshot.State == nil {
		return errors.New("snapshot state is required")
	}
	s.state = snapshot.State
	return nil
}
