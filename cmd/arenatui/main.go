// Command arenatui is the terminal admin dashboard. It talks to the platform
// API with an existing admin session cookie value.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/dalemusser/arenadash/internal/app/console"
	platformstore "github.com/dalemusser/arenadash/internal/app/store/platform"
	"github.com/dalemusser/arenadash/internal/app/system/htmlsanitize"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	_ = godotenv.Load()

	var baseURL, session, cookieName, logPath string
	var timeout time.Duration

	flag.StringVar(&baseURL, "base-url", getEnv("ARENADASH_PLATFORM_BASE_URL", ""), "platform base URL, e.g. https://arena.example.com")
	flag.StringVar(&session, "session", getEnv("ARENADASH_SESSION", ""), "platform session cookie value of an admin user")
	flag.StringVar(&cookieName, "cookie", getEnv("ARENADASH_PLATFORM_SESSION_COOKIE", "connect.sid"), "name of the platform session cookie")
	flag.DurationVar(&timeout, "timeout", defaultTimeout(), "per-request timeout")
	flag.StringVar(&logPath, "log", "", "write logs to this file (default: discard)")
	flag.Parse()

	if baseURL == "" || session == "" {
		fmt.Fprintln(os.Stderr, "Error: --base-url and --session are required")
		flag.Usage()
		os.Exit(2)
	}

	logger, err := newLogger(logPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	client, err := platformstore.New(platformstore.Config{
		BaseURL:       baseURL,
		SessionCookie: cookieName,
		Timeout:       timeout,
	}, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	m := console.New(client.Session(session), console.Options{Timeout: timeout}, logger)
	final, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if fm, ok := final.(console.Model); ok && fm.ExitNotice() != "" {
		fmt.Fprintln(os.Stderr, htmlsanitize.Text(fm.ExitNotice()))
		os.Exit(1)
	}
}

// newLogger returns a production zap logger writing to path, or a no-op
// logger when path is empty. The terminal belongs to the dashboard.
func newLogger(path string) (*zap.Logger, error) {
	if path == "" {
		return zap.NewNop(), nil
	}
	cfg := zap.NewProductionConfig()
	cfg.OutputPaths = []string{path}
	cfg.ErrorOutputPaths = []string{path}
	return cfg.Build()
}

// defaultTimeout reads ARENADASH_TIMEOUT, falling back to 10s when it is
// unset or not a positive duration.
func defaultTimeout() time.Duration {
	const fallback = 10 * time.Second
	d, err := time.ParseDuration(getEnv("ARENADASH_TIMEOUT", fallback.String()))
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
