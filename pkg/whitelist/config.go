package whitelist

import (
	"context"

	"github.com/spf13/viper"

	"github.com/code-payments/swap-whitelist/pkg/config"
	"github.com/code-payments/swap-whitelist/pkg/config/wrapper"
	viperconfig "github.com/code-payments/swap-whitelist/pkg/config/viper"
)

// Keys resolve against the viper instance, which binds them to WHITELIST_
// prefixed environment variables when the caller sets that env prefix.
const (
	ProgramIDConfigKey              = "program_id"
	TokenProgramIDConfigKey         = "token_program_id"
	SwapProgramIDConfigKey          = "swap_program_id"
	SystemProgramIDConfigKey        = "system_program_id"
	AssociatedTokenProgramConfigKey = "associated_token_program_id"
	NativeMintConfigKey             = "native_mint"
)

type conf struct {
	programID              config.PublicKey
	tokenProgramID         config.PublicKey
	swapProgramID          config.PublicKey
	systemProgramID        config.PublicKey
	associatedTokenProgram config.PublicKey
	nativeMint             config.PublicKey
}

// ConfigProvider defines how config values are pulled
type ConfigProvider func() *conf

// WithViperConfigs returns configuration pulled from v
func WithViperConfigs(v *viper.Viper) ConfigProvider {
	return func() *conf {
		defaults := DefaultProgramIDs()
		return &conf{
			programID:              viperconfig.NewPublicKeyConfig(v, ProgramIDConfigKey, defaults.Whitelist),
			tokenProgramID:         viperconfig.NewPublicKeyConfig(v, TokenProgramIDConfigKey, defaults.Token),
			swapProgramID:          viperconfig.NewPublicKeyConfig(v, SwapProgramIDConfigKey, defaults.Swap),
			systemProgramID:        viperconfig.NewPublicKeyConfig(v, SystemProgramIDConfigKey, defaults.System),
			associatedTokenProgram: viperconfig.NewPublicKeyConfig(v, AssociatedTokenProgramConfigKey, defaults.AssociatedToken),
			nativeMint:             viperconfig.NewPublicKeyConfig(v, NativeMintConfigKey, defaults.NativeMint),
		}
	}
}

// WithDefaults returns the mainnet program ids
func WithDefaults() ConfigProvider {
	return func() *conf {
		defaults := DefaultProgramIDs()
		return &conf{
			programID:              wrapper.NewPublicKeyConfig(config.NoopConfig, defaults.Whitelist),
			tokenProgramID:         wrapper.NewPublicKeyConfig(config.NoopConfig, defaults.Token),
			swapProgramID:          wrapper.NewPublicKeyConfig(config.NoopConfig, defaults.Swap),
			systemProgramID:        wrapper.NewPublicKeyConfig(config.NoopConfig, defaults.System),
			associatedTokenProgram: wrapper.NewPublicKeyConfig(config.NoopConfig, defaults.AssociatedToken),
			nativeMint:             wrapper.NewPublicKeyConfig(config.NoopConfig, defaults.NativeMint),
		}
	}
}

func (c *conf) programIDs(ctx context.Context) ProgramIDs {
	return ProgramIDs{
		Whitelist:       c.programID.Get(ctx),
		Token:           c.tokenProgramID.Get(ctx),
		Swap:            c.swapProgramID.Get(ctx),
		System:          c.systemProgramID.Get(ctx),
		AssociatedToken: c.associatedTokenProgram.Get(ctx),
		NativeMint:      c.nativeMint.Get(ctx),
	}
}
