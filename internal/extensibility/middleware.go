// Package extensibility provides stock middleware stages and action sources
// for the store's dispatch pipeline.
package extensibility

import (
	"log"
	"time"

	"github.com/comalice/storex/internal/core"
	"github.com/comalice/storex/internal/primitives"
)

// NewLoggingMiddleware returns a stage that logs each action around the
// downstream pipeline, including elapsed time and the downstream error.
// A nil logger uses the stdlib default logger.
func NewLoggingMiddleware(logger *log.Logger) core.Middleware {
	if logger == nil {
		logger = log.Default()
	}
	return func(api core.StoreAPI) core.ChainLink {
		return func(next core.DispatchFunc) core.DispatchFunc {
			return func(a primitives.Action) error {
				logger.Printf("LOG: Dispatching action %q", a.Type)
				start := time.Now()
				err := next(a)
				logger.Printf("LOG: Action %q completed in %v: %v", a.Type, time.Since(start), err)
				return err
			}
		}
	}
}

// NewFilterMiddleware returns a stage that forwards only actions passing the
// predicate; everything else is short-circuited without error, so neither
// reducers nor listeners observe the action.
func NewFilterMiddleware(pred func(primitives.Action) bool) core.Middleware {
	return func(api core.StoreAPI) core.ChainLink {
		return func(next core.DispatchFunc) core.DispatchFunc {
			return func(a primitives.Action) error {
				if !pred(a) {
					return nil
				}
				return next(a)
			}
		}
	}
}
