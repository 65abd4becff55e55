package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/okian/fog/internal/smoke"
)

// Default configuration constants.
const (
	defaultTimeout    = 10 * time.Second
	defaultRunTimeout = 2 * time.Minute
)

func main() {
	var (
		baseURL = flag.String("url", "http://localhost:9080", "Base URL of the service")
		prefix  = flag.String("prefix", "/mock", "Path placed before /fog/...")
		timeout = flag.Duration("timeout", defaultTimeout, "HTTP request timeout")
		logFile = flag.String("log", "", "Log file for test output (default: smoke_TIMESTAMP.log)")
		verbose = flag.Bool("verbose", false, "Enable verbose logging")
		help    = flag.Bool("help", false, "Show help")
	)
	flag.Parse()

	if *help {
		smoke.ShowHelp(os.Stdout)
		return
	}

	closeLog, err := smoke.SetupLogging(*logFile, *verbose)
	if err != nil {
		os.Stderr.WriteString("Failed to setup logging: " + err.Error() + "\n")
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), defaultRunTimeout)
	err = smoke.Run(ctx, &smoke.Config{
		BaseURL:  *baseURL,
		BasePath: *prefix,
		Timeout:  *timeout,
		LogFile:  *logFile,
		Verbose:  *verbose,
	})
	cancel()
	_ = closeLog()

	if err != nil {
		os.Stderr.WriteString("Smoke test failed: " + err.Error() + "\n")
		os.Exit(1)
	}
}
