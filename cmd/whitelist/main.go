package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	viperconfig "github.com/code-payments/swap-whitelist/pkg/config/viper"
	"github.com/code-payments/swap-whitelist/pkg/metrics"
	"github.com/code-payments/swap-whitelist/pkg/whitelist"
)

const (
	configFlagName   = "config"
	logLevelFlagName = "log-level"

	newRelicLicenseConfigKey = "new_relic_license_key"
	newRelicAppConfigKey     = "new_relic_app_name"
	defaultNewRelicAppName   = "swap-whitelist"
)

var (
	rootCmd = &cobra.Command{
		Use:               "whitelist",
		Short:             "whitelist is a utility for the swap whitelist program",
		SilenceUsage:      true,
		PersistentPreRunE: setup,
	}

	rootFlags struct {
		config   string
		logLevel string
	}

	v   = viper.New()
	app *newrelic.Application
)

func init() {
	rootCmd.PersistentFlags().StringVar(&rootFlags.config, configFlagName, "", "optional config file")
	rootCmd.PersistentFlags().StringVar(&rootFlags.logLevel, logLevelFlagName, "info", "logrus level")
}

func main() {
	defer func() {
		if app != nil {
			app.Shutdown(0)
		}
	}()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "failed to execute command: %+v\n", err)
		os.Exit(1)
	}
}

func setup(cmd *cobra.Command, args []string) error {
	level, err := logrus.ParseLevel(rootFlags.logLevel)
	if err != nil {
		return errors.Wrap(err, "invalid log level")
	}
	logrus.SetLevel(level)

	v.SetEnvPrefix("whitelist")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if rootFlags.config != "" {
		v.SetConfigFile(rootFlags.config)
		if err := v.ReadInConfig(); err != nil {
			return errors.Wrapf(err, "failed to read config %s", rootFlags.config)
		}
	}

	license, appName := newRelicConfig(context.Background())
	if license == "" {
		return nil
	}

	app, err = newrelic.NewApplication(
		newrelic.ConfigAppName(appName),
		newrelic.ConfigLicense(license),
	)
	if err != nil {
		return errors.Wrap(err, "failed to start new relic")
	}

	logrus.SetFormatter(metrics.NewCustomNewRelicLogFormatter(app, &logrus.TextFormatter{}))
	return nil
}

// newRelicConfig returns the license key and application name. No license
// means New Relic stays disabled.
func newRelicConfig(ctx context.Context) (license, appName string) {
	license = viperconfig.NewStringConfig(v, newRelicLicenseConfigKey, "").Get(ctx)
	appName = viperconfig.NewStringConfig(v, newRelicAppConfigKey, defaultNewRelicAppName).Get(ctx)
	return license, appName
}

// commandContext binds the new relic application, when one is configured.
func commandContext() context.Context {
	ctx := context.Background()
	if app != nil {
		ctx = metrics.NewContext(ctx, app)
	}
	return ctx
}

func configProvider() whitelist.ConfigProvider {
	return whitelist.WithViperConfigs(v)
}

func programIDs(ctx context.Context) whitelist.ProgramIDs {
	return whitelist.NewProgram(configProvider()).ProgramIDs(ctx)
}
