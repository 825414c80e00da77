package main

import (
	"os"

	"github.com/fatih/color"
	"github.com/icecave/relay/cmd"
	"github.com/icecave/relay/health"
)

func main() {
	config, err := cmd.GetConfigFromEnvironment()
	if err != nil {
		color.Red("%s", err)
		os.Exit(1)
	}

	checker := &health.HTTPChecker{
		Address:       ":" + config.Port,
		Timeout:       config.CheckTimeout,
		ProxyProtocol: config.ProxyProtocol,
	}

	os.Exit(run(checker))
}

// run performs a health-check and returns the process exit code.
func run(checker health.Checker) int {
	status := checker.Check()
	if !status.IsHealthy {
		color.Red("%s", status)
		return 1
	}

	color.Green("%s", status)
	return 0
}
