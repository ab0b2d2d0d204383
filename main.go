package main

import (
	"fmt"
	"os"
	"strings"

	"finadvisor/cmd/analyze"
	"finadvisor/cmd/root"
	"finadvisor/cmd/serve"
	"finadvisor/cmd/subscriptions"
	"finadvisor/internal/config"

	"github.com/sirupsen/logrus"
)

func init() {
	// Load environment variables silently before any logging happens.
	config.LoadEnv()

	// Configure the global log level before commands build their loggers.
	configureLogLevelDirectly()

	root.Init()

	root.Cmd.AddCommand(analyze.Cmd)
	root.Cmd.AddCommand(subscriptions.Cmd)
	root.Cmd.AddCommand(serve.Cmd)
}

// configureLogLevelDirectly sets the global log level from the environment
// so early startup messages already honor it. Configuration loading may
// refine it later.
func configureLogLevelDirectly() {
	logLevelStr := os.Getenv("FINADVISOR_LOG_LEVEL")
	if logLevelStr == "" {
		logLevelStr = "info"
	}

	logLevel, err := logrus.ParseLevel(strings.ToLower(logLevelStr))
	if err != nil {
		logLevel = logrus.InfoLevel
	}

	logrus.SetLevel(logLevel)
}

func main() {
	if err := root.Cmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
