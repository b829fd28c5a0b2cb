// Package storex is a minimal, predictable state container: a store owns one
// state tree, actions describe events, pure reducers compute the next state,
// middleware intercepts dispatches, and listeners observe every commit.
//
// State is sliced: each slice declares a name, an initial value, and a map of
// handlers; CreateSlice derives action creators and a slice reducer, and
// NewStore combines slices into one root state tree. Handlers write to a
// copy-on-write draft, so updates read like direct mutation while the
// previous tree stays intact and unchanged sub-trees stay shared.
//
// The store is a passive object: dispatch runs synchronously on the caller's
// stack, is strictly non-reentrant, and uses no locks. Multi-threaded hosts
// must serialize access externally.
package storex

import (
	"log"

	"github.com/comalice/storex/internal/core"
	"github.com/comalice/storex/internal/draft"
	"github.com/comalice/storex/internal/extensibility"
	"github.com/comalice/storex/internal/primitives"
	"github.com/comalice/storex/internal/production"
)

// Re-export the engine types from the internal tiers for the public API.
type (
	// Action is an immutable event record submitted to a store.
	Action = primitives.Action
	// ActionCreator produces Actions with a fixed type.
	ActionCreator = primitives.ActionCreator
	// Draft is the mutable working view a handler writes through.
	Draft = draft.Map
	// DraftList is the draft view over a slice-valued entry.
	DraftList = draft.List
	// HandlerFunc handles one action for a slice by mutating a draft.
	HandlerFunc = core.HandlerFunc
	// ReducerFunc is a pure function mapping (state, action) -> state.
	ReducerFunc = core.ReducerFunc
	// ReducerConfig pairs a slice reducer with its initial state.
	ReducerConfig = core.ReducerConfig
	// SliceConfig declares a named, independently defined unit of state.
	SliceConfig = core.SliceConfig
	// Slice is the built form of a SliceConfig.
	Slice = core.Slice
	// Store owns the state tree, dispatch pipeline, and listener registry.
	Store = core.Store
	// StoreAPI is the restricted store surface handed to middleware.
	StoreAPI = core.StoreAPI
	// Option configures a Store at construction.
	Option = core.Option
	// DispatchFunc submits one action for handling.
	DispatchFunc = core.DispatchFunc
	// ChainLink binds a middleware stage to the next stage's dispatch.
	ChainLink = core.ChainLink
	// Middleware is an interceptor stage of the dispatch pipeline.
	Middleware = core.Middleware
	// StoreSnapshot is the serializable snapshot of a store's state.
	StoreSnapshot = core.StoreSnapshot
	// DispatchMetadata annotates a committed action for publishing.
	DispatchMetadata = core.DispatchMetadata
	// Persister saves and loads store snapshots.
	Persister = core.Persister
	// Publisher receives every committed action.
	Publisher = core.Publisher
	// Registry manages versioned snapshots of running stores.
	Registry = core.Registry
	// PublishedAction bundles a committed action with its metadata.
	PublishedAction = production.PublishedAction
)

// Re-export sentinel errors.
var (
	ErrDispatchInProgress = core.ErrDispatchInProgress
	ErrNotFound           = core.ErrNotFound
	ErrExists             = core.ErrExists
)

// NewAction creates an immutable Action.
func NewAction(actionType string, payload any) Action {
	return primitives.NewAction(actionType, payload)
}

// NewActionCreator returns a creator bound to the given action type.
func NewActionCreator(actionType string) ActionCreator {
	return primitives.NewActionCreator(actionType)
}

// NewActionCreators builds a creator per entry of the name -> type mapping.
func NewActionCreators(types map[string]string) map[string]ActionCreator {
	return primitives.NewActionCreators(types)
}

// IsActionOf returns a predicate matching actions produced by creator.
func IsActionOf(creator ActionCreator) func(Action) bool {
	return primitives.IsActionOf(creator)
}

// CreateSlice validates cfg and builds its action creators and reducer.
func CreateSlice(cfg SliceConfig) (*Slice, error) {
	return core.CreateSlice(cfg)
}

// CombineReducers merges named slice reducers into one root reducer plus the
// assembled initial root state.
func CombineReducers(configs map[string]ReducerConfig) (ReducerFunc, map[string]any, error) {
	return core.CombineReducers(configs)
}

// Compose turns an ordered list of chain links into a single pipeline,
// composed right to left.
func Compose(links ...ChainLink) ChainLink {
	return core.Compose(links...)
}

// NewStore builds a store from a mapping of slice reducers.
func NewStore(reducers map[string]ReducerConfig, opts ...Option) (*Store, error) {
	return core.NewStore(reducers, opts...)
}

// Store options.

// WithMiddleware appends interceptor stages to the dispatch pipeline.
func WithMiddleware(mw ...Middleware) Option { return core.WithMiddleware(mw...) }

// WithStoreID overrides the generated store identifier.
func WithStoreID(id string) Option { return core.WithStoreID(id) }

// WithPersister configures a post-commit snapshot Persister.
func WithPersister(p Persister) Option { return core.WithPersister(p) }

// WithPublisher configures a post-commit action Publisher.
func WithPublisher(pb Publisher) Option { return core.WithPublisher(pb) }

// WithRegistry configures a Registry for versioning snapshots.
func WithRegistry(r Registry) Option { return core.WithRegistry(r) }

// Stock middleware.

// NewLoggingMiddleware logs each action around the downstream pipeline.
func NewLoggingMiddleware(logger *log.Logger) Middleware {
	return extensibility.NewLoggingMiddleware(logger)
}

// NewFilterMiddleware forwards only actions passing the predicate.
func NewFilterMiddleware(pred func(Action) bool) Middleware {
	return extensibility.NewFilterMiddleware(pred)
}

// Production integrations.

// NewJSONPersister creates a file-based JSON snapshot persister.
func NewJSONPersister(dir string) (*production.JSONPersister, error) {
	return production.NewJSONPersister(dir)
}

// NewYAMLPersister creates a file-based YAML snapshot persister.
func NewYAMLPersister(dir string) (*production.YAMLPersister, error) {
	return production.NewYAMLPersister(dir)
}

// NewChannelPublisher forwards committed actions to ch, dropping on
// backpressure.
func NewChannelPublisher(ch chan<- PublishedAction) *production.ChannelPublisher {
	return production.NewChannelPublisher(ch)
}

// NewMemoryRegistry creates an empty in-memory snapshot registry.
func NewMemoryRegistry() *production.MemoryRegistry {
	return production.NewMemoryRegistry()
}
