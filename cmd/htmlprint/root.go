package main

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	htmlprint "github.com/porticus-lab/go-html-print"
)

// config is the merged view of defaults, the config file, HTMLPRINT_*
// environment variables and flags, in increasing priority.
type config struct {
	Verbose bool

	Chrome    string
	Remote    string
	NoSandbox bool
	Download  bool
	Timeout   time.Duration

	Title     string
	Encoding  string
	Size      string
	Landscape bool
	Margin    float64
	Scale     float64
	NoMkdir   bool
	Fragment  bool
	Outline   bool
}

func newRootCommand() *cobra.Command {
	v := viper.New()
	var cfgFile string

	root := &cobra.Command{
		Use:           "htmlprint",
		Short:         "Print HTML to PDF with headless Chrome",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return loadConfig(v, cmd, cfgFile)
		},
	}
	root.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default ./htmlprint.toml)")
	root.PersistentFlags().BoolP("verbose", "v", false, "enable debug logging")

	root.AddCommand(newPrintCommand(v), newInfoCommand())
	return root
}

// loadConfig reads the config file and environment and binds cmd's flags
// over them.
func loadConfig(v *viper.Viper, cmd *cobra.Command, cfgFile string) error {
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("htmlprint")
		v.SetConfigType("toml")
		v.AddConfigPath(".")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return fmt.Errorf("reading config: %w", err)
		}
	}

	v.SetEnvPrefix("HTMLPRINT")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return err
	}
	return v.BindPFlags(cmd.InheritedFlags())
}

func readConfig(v *viper.Viper) config {
	return config{
		Verbose:   v.GetBool("verbose"),
		Chrome:    v.GetString("chrome"),
		Remote:    v.GetString("remote"),
		NoSandbox: v.GetBool("no-sandbox"),
		Download:  v.GetBool("download"),
		Timeout:   v.GetDuration("timeout"),
		Title:     v.GetString("title"),
		Encoding:  v.GetString("encoding"),
		Size:      v.GetString("size"),
		Landscape: v.GetBool("landscape"),
		Margin:    v.GetFloat64("margin"),
		Scale:     v.GetFloat64("scale"),
		NoMkdir:   v.GetBool("no-mkdir"),
		Fragment:  v.GetBool("fragment"),
		Outline:   v.GetBool("outline"),
	}
}

func newLogger(verbose bool) (*zap.Logger, error) {
	zc := zap.NewDevelopmentConfig()
	zc.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	if verbose {
		zc.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	zc.DisableStacktrace = true
	zc.OutputPaths = []string{"stderr"}
	return zc.Build()
}

// converterOptions maps the browser settings onto converter options.
func (c config) converterOptions(logger *zap.Logger) []htmlprint.Option {
	opts := []htmlprint.Option{
		htmlprint.WithLogger(logger),
		htmlprint.WithTimeout(c.Timeout),
	}
	if c.Chrome != "" {
		opts = append(opts, htmlprint.WithChromePath(c.Chrome))
	}
	if c.Remote != "" {
		opts = append(opts, htmlprint.WithRemoteURL(c.Remote))
	}
	if c.NoSandbox {
		opts = append(opts, htmlprint.WithNoSandbox())
	}
	if c.Download {
		opts = append(opts, htmlprint.WithAutoDownload())
	}
	return opts
}

// printOptions maps the page and encoding settings onto print options.
func (c config) printOptions() ([]htmlprint.PrintOption, error) {
	enc, err := htmlprint.ParseEncoding(c.Encoding)
	if err != nil {
		return nil, err
	}
	size, ok := htmlprint.PageSizeByName(c.Size)
	if !ok {
		return nil, fmt.Errorf("unknown page size %q", c.Size)
	}
	page := &htmlprint.PageConfig{
		Size:            size,
		Margin:          htmlprint.UniformMargin(c.Margin),
		Scale:           c.Scale,
		PrintBackground: true,
		Outline:         c.Outline,
	}
	if c.Landscape {
		page.Orientation = htmlprint.Landscape
	}
	if err := page.Validate(); err != nil {
		return nil, err
	}
	return []htmlprint.PrintOption{
		htmlprint.WithEncoding(enc),
		htmlprint.WithPage(page),
		htmlprint.WithCreateDirectories(!c.NoMkdir),
	}, nil
}
