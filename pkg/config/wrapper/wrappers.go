package wrapper

import (
	"context"
	"crypto/ed25519"
	"sync"

	"github.com/mr-tron/base58"
	"github.com/pkg/errors"

	"github.com/code-payments/swap-whitelist/pkg/config"
)

// ErrUnsuportedConversion indicates the wrapper does not implement conversion from the source type
var ErrUnsuportedConversion = errors.New("config: wrapper conversion from source type not implemented")

// ErrInvalidPublicKey indicates the source value is not a base58 encoded ed25519 public key
var ErrInvalidPublicKey = errors.New("config: invalid public key")

// StringConfig is a utility wrapper for a string config
type StringConfig struct {
	config       config.Config
	defaultValue string

	stateMu   sync.RWMutex
	lastValue string
}

// NewStringConfig returns a new string config utility wrapper
func NewStringConfig(config config.Config, defaultValue string) config.String {
	return &StringConfig{
		config:       config,
		defaultValue: defaultValue,
		lastValue:    defaultValue,
	}
}

// GetSafe gets a config value and propagates any errors that arise. A best-effort
// attempt is made to return the last known value
func (c *StringConfig) GetSafe(ctx context.Context) (string, error) {
	override, err := c.config.Get(ctx)
	c.stateMu.RLock()
	lastValue := c.lastValue
	c.stateMu.RUnlock()
	if err == config.ErrNoValue {
		c.stateMu.Lock()
		c.lastValue = c.defaultValue
		c.stateMu.Unlock()
		return c.defaultValue, nil
	} else if err != nil {
		return lastValue, err
	}
	switch override := override.(type) {
	case []byte:
		newValue := string(override)
		c.stateMu.Lock()
		c.lastValue = newValue
		c.stateMu.Unlock()
		return newValue, nil
	case string:
		newValue := override
		c.stateMu.Lock()
		c.lastValue = newValue
		c.stateMu.Unlock()
		return newValue, nil
	default:
		return lastValue, ErrUnsuportedConversion
	}
}

// Get is a wrapper for GetSafe that ignores the returned error
func (c *StringConfig) Get(ctx context.Context) string {
	val, _ := c.GetSafe(ctx)
	return val
}

// Shutdown signals the config to stop all underlying resources
func (c *StringConfig) Shutdown() {
	c.config.Shutdown()
}

// PublicKeyConfig is a utility wrapper for a public key config. String and
// byte values are parsed as base58.
type PublicKeyConfig struct {
	override     config.Config
	defaultValue ed25519.PublicKey

	stateMu   sync.RWMutex
	lastValue ed25519.PublicKey
}

// NewPublicKeyConfig returns a new public key config utility wrapper
func NewPublicKeyConfig(override config.Config, defaultValue ed25519.PublicKey) config.PublicKey {
	return &PublicKeyConfig{
		override:     override,
		defaultValue: defaultValue,
		lastValue:    defaultValue,
	}
}

// GetSafe gets a config value and propagates any errors that arise. A best-effort
// attempt is made to return the last known value
func (c *PublicKeyConfig) GetSafe(ctx context.Context) (ed25519.PublicKey, error) {
	override, err := c.override.Get(ctx)
	c.stateMu.RLock()
	lastValue := c.lastValue
	c.stateMu.RUnlock()
	if err == config.ErrNoValue {
		c.stateMu.Lock()
		c.lastValue = c.defaultValue
		c.stateMu.Unlock()
		return c.defaultValue, nil
	} else if err != nil {
		return lastValue, err
	}

	var encoded string
	switch override := override.(type) {
	case []byte:
		encoded = string(override)
	case string:
		encoded = override
	case ed25519.PublicKey:
		c.stateMu.Lock()
		c.lastValue = override
		c.stateMu.Unlock()
		return override, nil
	default:
		return lastValue, ErrUnsuportedConversion
	}

	decoded, err := base58.Decode(encoded)
	if err != nil {
		return lastValue, errors.Wrap(ErrInvalidPublicKey, err.Error())
	}
	if len(decoded) != ed25519.PublicKeySize {
		return lastValue, errors.Wrapf(ErrInvalidPublicKey, "decoded %d bytes", len(decoded))
	}

	newValue := ed25519.PublicKey(decoded)
	c.stateMu.Lock()
	c.lastValue = newValue
	c.stateMu.Unlock()
	return newValue, nil
}

// Get is a wrapper for GetSafe that ignores the returned error
func (c *PublicKeyConfig) Get(ctx context.Context) ed25519.PublicKey {
	val, _ := c.GetSafe(ctx)
	return val
}

// Shutdown signals the config to stop all underlying resources
func (c *PublicKeyConfig) Shutdown() {
	c.override.Shutdown()
}
