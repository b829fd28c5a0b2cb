// Action provides the immutable action primitive for store dispatch.
//
// Actions are value types designed for zero-allocation creation via stack
// allocation. Once created, Actions should not be mutated. Use NewAction or
// an ActionCreator for construction.
//
// # Immutability
//
// Action fields are exported for convenience in read-only contexts, but
// consumers MUST NOT modify them after construction. Violations break the
// store's change-detection guarantees.
//
// Example:
//
//	action := NewAction("counter/increment", nil)
//	// Zero heap allocation if Payload is a stack value (<16 bytes typically)
package primitives

// Action is an immutable event record submitted to a store.
// Type identifies the handler responsible for it; Payload is opaque to the
// engine and is interpreted by the matching handler only.
type Action struct {
	Type    string `json:"type" yaml:"type"`
	Payload any    `json:"payload,omitempty" yaml:"payload,omitempty"`
}

// NewAction creates and returns a new immutable Action.
//
// This is zero-heap-allocation when Payload is a stack value (small structs,
// primitives). Returns Action by value for stack allocation and copy elision.
func NewAction(actionType string, payload any) Action {
	return Action{
		Type:    actionType,
		Payload: payload,
	}
}

// ActionCreator produces Actions with a fixed Type and a caller-supplied
// payload. Creators for payload-free handlers are called with nil.
type ActionCreator func(payload any) Action

// NewActionCreator returns a creator bound to the given action type.
func NewActionCreator(actionType string) ActionCreator {
	return func(payload any) Action {
		return Action{Type: actionType, Payload: payload}
	}
}

// NewActionCreators builds a creator per entry of the name -> type mapping.
// The returned map is keyed by the same names as the input.
func NewActionCreators(types map[string]string) map[string]ActionCreator {
	creators := make(map[string]ActionCreator, len(types))
	for name, actionType := range types {
		creators[name] = NewActionCreator(actionType)
	}
	return creators
}

// IsActionOf returns a predicate reporting whether an action's Type matches
// the type produced by creator.
func IsActionOf(creator ActionCreator) func(Action) bool {
	matchType := creator(nil).Type
	return func(a Action) bool {
		return a.Type == matchType
	}
}
