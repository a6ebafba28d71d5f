package testutil

import (
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// TestLogLevelEnv overrides the trace level used while testing.
const TestLogLevelEnv = "WHITELIST_TEST_LOG_LEVEL"

func init() {
	var isVerbose bool
	for _, arg := range os.Args {
		if arg == "-test.v=true" || arg == "-test.v" || strings.HasPrefix(arg, "-test.v=t") {
			isVerbose = true
		}
	}

	level := logrus.TraceLevel
	if parsed, err := logrus.ParseLevel(os.Getenv(TestLogLevelEnv)); err == nil {
		level = parsed
	}
	logrus.SetLevel(level)

	if !isVerbose {
		logrus.StandardLogger().Out = io.Discard
	}
}

// DisableLogging silences the standard logger until reset is called.
func DisableLogging() (reset func()) {
	originalLogOutput := logrus.StandardLogger().Out
	originalLevel := logrus.GetLevel()

	logrus.StandardLogger().Out = io.Discard
	return func() {
		logrus.StandardLogger().Out = originalLogOutput
		logrus.SetLevel(originalLevel)
	}
}
