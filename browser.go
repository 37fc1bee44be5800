package htmlprint

import (
	"fmt"

	"github.com/go-rod/rod/lib/launcher"
	"go.uber.org/zap"
)

// resolveBrowser returns the path of a cached Chromium build, downloading
// it first if needed. The cache lives in ~/.cache/rod/browser on Unix and
// %APPDATA%\rod\browser on Windows.
func resolveBrowser(logger *zap.Logger) (string, error) {
	b := launcher.NewBrowser()
	b.Logger = zap.NewStdLog(logger)
	path, err := b.Get()
	if err != nil {
		return "", fmt.Errorf("htmlprint: downloading browser: %w", err)
	}
	logger.Debug("using downloaded browser", zap.String("path", path))
	return path, nil
}
