package metrics

import (
	"context"

	"github.com/newrelic/go-agent/v3/newrelic"
)

type contextKey int

// NewRelicContextKey is the context key holding the *newrelic.Application.
const NewRelicContextKey contextKey = iota

// NewContext binds a New Relic application to the context. Metrics and events
// recorded against a context without one are dropped.
func NewContext(ctx context.Context, app *newrelic.Application) context.Context {
	if app == nil {
		return ctx
	}
	return context.WithValue(ctx, NewRelicContextKey, app)
}

// StartTransaction starts a New Relic transaction for the unit of work and
// returns the derived context along with a function ending it.
func StartTransaction(ctx context.Context, name string) (context.Context, func()) {
	nr, ok := ctx.Value(NewRelicContextKey).(*newrelic.Application)
	if !ok {
		return ctx, func() {}
	}

	txn := nr.StartTransaction(name)
	return newrelic.NewContext(ctx, txn), txn.End
}
