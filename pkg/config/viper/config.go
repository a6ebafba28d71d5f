// Package viper backs config.Config values with a *viper.Viper, so values can
// come from a config file, the environment or explicit overrides.
package viper

import (
	"context"
	"crypto/ed25519"

	"github.com/spf13/viper"

	"github.com/code-payments/swap-whitelist/pkg/config"
	"github.com/code-payments/swap-whitelist/pkg/config/wrapper"
)

type conf struct {
	v   *viper.Viper
	key string
}

// NewConfig returns a config reading key from v on every Get.
func NewConfig(v *viper.Viper, key string) config.Config {
	return &conf{
		v:   v,
		key: key,
	}
}

// Get implements Config.Get
func (c *conf) Get(_ context.Context) (interface{}, error) {
	if !c.v.IsSet(c.key) {
		return nil, config.ErrNoValue
	}

	val := c.v.GetString(c.key)
	if len(val) == 0 {
		return nil, config.ErrNoValue
	}
	return val, nil
}

// Shutdown implements Config.Shutdown
func (c *conf) Shutdown() {
}

// NewStringConfig creates a viper-based string config
func NewStringConfig(v *viper.Viper, key string, defaultValue string) config.String {
	return wrapper.NewStringConfig(NewConfig(v, key), defaultValue)
}

// NewPublicKeyConfig creates a viper-based base58 public key config
func NewPublicKeyConfig(v *viper.Viper, key string, defaultValue ed25519.PublicKey) config.PublicKey {
	return wrapper.NewPublicKeyConfig(NewConfig(v, key), defaultValue)
}
