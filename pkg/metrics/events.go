package metrics

import (
	"context"

	"github.com/newrelic/go-agent/v3/newrelic"
)

// RecordEvent records a new event with a name and set of key-value pairs
func RecordEvent(ctx context.Context, eventName string, kvPairs map[string]interface{}) {
	if nr := application(ctx); nr != nil {
		nr.RecordCustomEvent(eventName, kvPairs)
	}
}

func application(ctx context.Context) *newrelic.Application {
	nr, _ := ctx.Value(NewRelicContextKey).(*newrelic.Application)
	return nr
}
