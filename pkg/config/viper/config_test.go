package viper

import (
	"context"
	"os"
	"testing"

	"github.com/mr-tron/base58"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/code-payments/swap-whitelist/pkg/config"
)

func TestConfigDoesntExist(t *testing.T) {
	v := viper.New()

	val, err := NewConfig(v, "missing").Get(context.Background())
	assert.Nil(t, val)
	assert.Equal(t, config.ErrNoValue, err)

	v.Set("missing", "")
	_, err = NewConfig(v, "missing").Get(context.Background())
	assert.Equal(t, config.ErrNoValue, err)
}

func TestConfigFromEnv(t *testing.T) {
	const env = "VIPER_CONFIG_TEST_PROGRAM_ID"
	expected := make([]byte, 32)
	expected[31] = 1

	os.Setenv(env, base58.Encode(expected))
	defer os.Unsetenv(env)

	v := viper.New()
	v.SetEnvPrefix("viper_config_test")
	v.AutomaticEnv()

	val, err := NewConfig(v, "program_id").Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, base58.Encode(expected), val)

	key, err := NewPublicKeyConfig(v, "program_id", nil).GetSafe(context.Background())
	require.NoError(t, err)
	assert.EqualValues(t, expected, key)
}

func TestStringConfigOverride(t *testing.T) {
	v := viper.New()
	c := NewStringConfig(v, "ledger_path", "default.db")
	assert.Equal(t, "default.db", c.Get(context.Background()))

	v.Set("ledger_path", "override.db")
	assert.Equal(t, "override.db", c.Get(context.Background()))
}
