package metrics

import (
	"context"
	"crypto/ed25519"
	"errors"
	"testing"
	"time"

	"github.com/mr-tron/base58"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNoApplication(t *testing.T) {
	ctx := NewContext(context.Background(), nil)
	assert.Nil(t, ctx.Value(NewRelicContextKey))

	txnCtx, end := StartTransaction(ctx, "test")
	assert.Equal(t, ctx, txnCtx)
	end()

	tracer := TraceMethodCall(ctx, "whitelist", "Swap")
	assert.Nil(t, tracer)
	tracer.AddAttribute("key", "value")
	tracer.AddAttributes(map[string]interface{}{"a": 1})
	tracer.OnError(errors.New("boom"))
	tracer.End()

	RecordEvent(ctx, "WhitelistRedemption", map[string]interface{}{"user": "abc"})
	RecordCount(ctx, "WhitelistRejected", 1)
	RecordDuration(ctx, "WhitelistLatency", time.Second)
}

func TestLogMessage(t *testing.T) {
	key := make(ed25519.PublicKey, ed25519.PublicKeySize)
	key[0] = 1

	entry := logrus.NewEntry(logrus.New()).WithFields(logrus.Fields{
		"user":          key,
		"amount":        5,
		logrus.ErrorKey: errors.New("not whitelisted"),
	})
	entry.Message = "swap rejected"

	assert.Equal(
		t,
		`message="swap rejected", error="not whitelisted", data={"amount":5,"user":"`+base58.Encode(key)+`"}`,
		logMessage(entry),
	)

	entry = logrus.NewEntry(logrus.New())
	entry.Message = "plain"
	assert.Equal(t, "plain", logMessage(entry))
}

func TestFormatterWithoutApplication(t *testing.T) {
	text := &logrus.TextFormatter{DisableColors: true, DisableTimestamp: true}
	entry := logrus.NewEntry(logrus.New()).WithField("slot", 1)
	entry.Message = "committed"
	entry.Level = logrus.InfoLevel

	expected, err := text.Format(entry)
	require.NoError(t, err)

	actual, err := NewCustomNewRelicLogFormatter(nil, text).Format(entry)
	require.NoError(t, err)
	assert.Equal(t, expected, actual)
}
