package core

import "github.com/comalice/storex/internal/primitives"

// DispatchFunc submits one action for handling. The innermost DispatchFunc
// of a pipeline is the store's base dispatch.
type DispatchFunc func(action primitives.Action) error

// ChainLink wraps the next stage's dispatch function with one middleware
// stage's action handler. next is bound once, at composition time.
type ChainLink func(next DispatchFunc) DispatchFunc

// Middleware is an interceptor stage. Setup receives the restricted store
// surface and returns the stage's ChainLink; the stage may inspect,
// transform, short-circuit, or forward each action.
type Middleware func(api StoreAPI) ChainLink

// Compose turns an ordered list of chain links into a single pipeline via
// right-to-left composition: the first element becomes the outermost wrapper,
// so it runs first on the way in and last on the way out.
//
// Composing right-to-left means that applying the result to base dispatch
// hands each stage, as its next, the stage closer to base dispatch — one
// reduction pass, no explicit linked list.
func Compose(links ...ChainLink) ChainLink {
	switch len(links) {
	case 0:
		return func(next DispatchFunc) DispatchFunc { return next }
	case 1:
		return links[0]
	}
	return func(next DispatchFunc) DispatchFunc {
		for i := len(links) - 1; i >= 0; i-- {
			next = links[i](next)
		}
		return next
	}
}
