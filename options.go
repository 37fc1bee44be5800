package htmlprint

import (
	"os"
	"time"

	"go.uber.org/zap"
)

// converterConfig holds internal configuration for a Converter.
type converterConfig struct {
	chromePath   string
	remoteURL    string
	timeout      time.Duration
	noSandbox    bool
	autoDownload bool
	headless     string
	fileMode     os.FileMode
	logger       *zap.Logger
}

func defaultConfig() converterConfig {
	return converterConfig{
		timeout:  30 * time.Second,
		headless: "new",
		fileMode: 0o644,
		logger:   zap.NewNop(),
	}
}

// Option configures a [Converter].
type Option func(*converterConfig)

// WithChromePath sets the path to the Chrome or Chromium executable.
// By default the library searches standard locations automatically.
func WithChromePath(path string) Option {
	return func(c *converterConfig) {
		c.chromePath = path
	}
}

// WithTimeout sets the maximum duration for a single conversion.
// Defaults to 30 seconds. A zero or negative value disables the timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *converterConfig) {
		c.timeout = d
	}
}

// WithNoSandbox disables the Chrome sandbox. This is required when
// running as root, for example inside Docker containers.
func WithNoSandbox() Option {
	return func(c *converterConfig) {
		c.noSandbox = true
	}
}

// WithAutoDownload downloads a Chromium build into the user cache when no
// path is given with [WithChromePath].
func WithAutoDownload() Option {
	return func(c *converterConfig) {
		c.autoDownload = true
	}
}

// WithRemoteURL attaches to an already running Chrome through its
// DevTools websocket URL instead of launching one. Launch options such as
// [WithChromePath] are ignored.
func WithRemoteURL(url string) Option {
	return func(c *converterConfig) {
		c.remoteURL = url
	}
}

// WithFileMode sets the permissions of written PDF files. Defaults to 0644.
func WithFileMode(mode os.FileMode) Option {
	return func(c *converterConfig) {
		c.fileMode = mode
	}
}

// WithLogger sets the logger for conversion events. Defaults to a no-op logger.
func WithLogger(l *zap.Logger) Option {
	return func(c *converterConfig) {
		if l != nil {
			c.logger = l
		}
	}
}
