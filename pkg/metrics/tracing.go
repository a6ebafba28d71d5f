package metrics

import (
	"context"
	"time"

	"github.com/newrelic/go-agent/v3/newrelic"
)

// TraceMethodCall opens a "component.method" segment in the transaction bound
// to ctx. Without a transaction the tracer is nil and every call on it is a
// no-op.
func TraceMethodCall(ctx context.Context, component, method string) *MethodTracer {
	txn := newrelic.FromContext(ctx)
	if txn == nil {
		return nil
	}

	name := component + "." + method
	return &MethodTracer{
		ctx:   ctx,
		name:  name,
		start: time.Now(),
		txn:   txn,
		seg:   txn.StartSegment(name),
	}
}

// MethodTracer collects analytics for a single method call.
type MethodTracer struct {
	ctx   context.Context
	name  string
	start time.Time

	txn *newrelic.Transaction
	seg *newrelic.Segment
}

func (t *MethodTracer) AddAttribute(key string, value interface{}) {
	if t == nil {
		return
	}

	t.seg.AddAttribute(key, value)
}

func (t *MethodTracer) AddAttributes(attributes map[string]interface{}) {
	if t == nil {
		return
	}

	for key, value := range attributes {
		t.seg.AddAttribute(key, value)
	}
}

// OnError notices err on the transaction and counts it against the method.
func (t *MethodTracer) OnError(err error) {
	if t == nil || err == nil {
		return
	}

	t.txn.NoticeError(err)
	t.seg.AddAttribute("error", err.Error())
	RecordCount(t.ctx, metricName(t.name, "Errors"), 1)
}

// End closes the segment and records the call duration.
func (t *MethodTracer) End() {
	if t == nil {
		return
	}

	t.seg.End()
	RecordDuration(t.ctx, metricName(t.name, "Duration"), time.Since(t.start))
}

func metricName(method, suffix string) string {
	return "Custom/" + method + "/" + suffix
}
