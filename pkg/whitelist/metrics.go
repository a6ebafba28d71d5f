package whitelist

import (
	"context"
	"crypto/ed25519"

	"github.com/mr-tron/base58"

	"github.com/code-payments/swap-whitelist/pkg/metrics"
)

const (
	whitelistInitializedEventName = "WhitelistInitialized"
	whitelistRedemptionEventName  = "WhitelistRedemption"
)

func recordWhitelistInitializedEvent(ctx context.Context, config ed25519.PublicKey, state *WhitelistConfigAccount) {
	metrics.RecordEvent(ctx, whitelistInitializedEventName, map[string]interface{}{
		"config":    base58.Encode(config),
		"creator":   base58.Encode(state.Creator),
		"swap_pool": base58.Encode(state.SwapPool),
		"price":     state.Price,
	})
}

func recordWhitelistRedemptionEvent(ctx context.Context, config ed25519.PublicKey, state *UserRedemptionStateAccount, amountIn uint64) {
	metrics.RecordEvent(ctx, whitelistRedemptionEventName, map[string]interface{}{
		"config":      base58.Encode(config),
		"user":        base58.Encode(state.RedeemedBy),
		"redeemed_at": state.RedeemedAt,
		"amount_in":   amountIn,
	})
}
