// Package cmd holds the inkwell command line.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/zjrosen/inkwell/internal/config"
	"github.com/zjrosen/inkwell/internal/log"
	"github.com/zjrosen/inkwell/internal/tracing"
	"github.com/zjrosen/inkwell/internal/ui/markdown"
)

func init() {
	// Query the terminal background before any Bubble Tea program starts,
	// so the OSC 11 reply cannot race the input loop.
	//
	// See: https://github.com/charmbracelet/bubbletea/issues/1036
	_ = lipgloss.HasDarkBackground()
}

// localConfigPath is checked before the user config directory.
const localConfigPath = ".inkwell/config.yaml"

var (
	version   = "dev"
	cfgFile   string
	debugFlag bool

	cfg     config.Config
	cfgPath string
	cfgErr  error
)

var rootCmd = &cobra.Command{
	Use:   "inkwell [FILE]",
	Short: "A modal editor for long-form writing",
	Long: `A distraction-free terminal editor for markdown manuscripts with Vim-style
navigation, typewriter scrolling and focus dimming.

Run with a file to edit it:
  inkwell chapter-01.md`,
	Version:           version,
	Args:              cobra.MaximumNArgs(1),
	PersistentPreRunE: checkConfig,
	SilenceUsage:      true,
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			return cmd.Help()
		}
		return runEdit(cmd, args)
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "",
		"config file (default: .inkwell/config.yaml or ~/.config/inkwell/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&debugFlag, "debug", "d", false,
		"write a debug log (path from INKWELL_LOG, default debug.log)")
}

func initConfig() {
	cfg, cfgPath, cfgErr = loadConfig(cfgFile, config.ConfigDir())
}

// loadConfig reads the config file. Lookup order when explicit is empty:
// .inkwell/config.yaml in the working directory, then config.yaml in
// userDir. When neither exists a commented default is written to userDir.
// The returned path is where toggled settings are saved.
func loadConfig(explicit, userDir string) (config.Config, string, error) {
	v := viper.New()
	setDefaults(v, config.Defaults())

	path := explicit
	if path == "" {
		path = localConfigPath
		if _, err := os.Stat(path); err != nil {
			path = ""
			if userDir != "" {
				path = filepath.Join(userDir, "config.yaml")
			}
		}
	}
	if path != "" {
		if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) && explicit == "" {
			if err := config.WriteDefaultConfig(path); err != nil {
				// Carry on with defaults; toggles will fail to save and say so.
				log.Warn(log.CatConfig, "Writing default config failed", "path", path, "error", err)
			}
		}
		if _, err := os.Stat(path); err == nil || explicit != "" {
			v.SetConfigFile(path)
			if err := v.ReadInConfig(); err != nil {
				return config.Defaults(), path, fmt.Errorf("reading config %s: %w", path, err)
			}
		}
	}

	var c config.Config
	if err := v.Unmarshal(&c); err != nil {
		return config.Defaults(), path, fmt.Errorf("decoding config: %w", err)
	}
	return c, path, nil
}

func setDefaults(v *viper.Viper, d config.Config) {
	v.SetDefault("editor.tab_width", d.Editor.TabWidth)
	v.SetDefault("editor.auto_save_interval_ms", d.Editor.AutoSaveIntervalMs)
	v.SetDefault("editor.typewriter_enabled", d.Editor.TypewriterEnabled)
	v.SetDefault("editor.typewriter_focus_lines", d.Editor.TypewriterFocusLines)
	v.SetDefault("editor.focus_dimming", d.Editor.FocusDimming)
	v.SetDefault("editor.word_wrap", d.Editor.WordWrap)
	v.SetDefault("editor.undo_levels", d.Editor.UndoLevels)
	v.SetDefault("editor.recenter_delay_ms", d.Editor.RecenterDelayMs)
	v.SetDefault("store.path", d.Store.Path)
	v.SetDefault("tracing.enabled", d.Tracing.Enabled)
	v.SetDefault("tracing.exporter", d.Tracing.Exporter)
	v.SetDefault("tracing.file_path", d.Tracing.FilePath)
	v.SetDefault("tracing.otlp_endpoint", d.Tracing.OTLPEndpoint)
	v.SetDefault("tracing.sample_rate", d.Tracing.SampleRate)
}

func checkConfig(_ *cobra.Command, _ []string) error {
	if cfgErr != nil {
		return cfgErr
	}
	if err := config.Validate(cfg); err != nil {
		return fmt.Errorf("invalid configuration in %s: %w", cfgPath, err)
	}
	return nil
}

// startLogging opens the debug log when --debug or INKWELL_DEBUG is set.
// INKWELL_LOG_LEVEL raises the minimum level.
// The returned cleanup is always safe to call.
func startLogging(prefix string) (func(), error) {
	if !debugFlag && os.Getenv("INKWELL_DEBUG") == "" {
		log.SetEnabled(false)
		return func() {}, nil
	}
	logPath := os.Getenv("INKWELL_LOG")
	if logPath == "" {
		logPath = "debug.log"
	}
	cleanup, err := log.InitWithTeaLog(logPath, prefix)
	if err != nil {
		return func() {}, fmt.Errorf("initializing logging: %w", err)
	}
	level, err := log.ParseLevel(os.Getenv("INKWELL_LOG_LEVEL"))
	if err != nil {
		cleanup()
		return func() {}, fmt.Errorf("INKWELL_LOG_LEVEL: %w", err)
	}
	log.SetMinLevel(level)
	log.Info(log.CatConfig, "Inkwell starting", "version", version, "config", cfgPath, "logPath", logPath)
	return cleanup, nil
}

// startTracing builds the tracing provider from the tracing section. The
// returned shutdown flushes pending spans.
func startTracing(tc config.TracingConfig) (*tracing.Provider, func(), error) {
	filePath := tc.FilePath
	if filePath == "" && tc.Exporter == "file" {
		filePath = config.DefaultTracesFilePath()
	}
	provider, err := tracing.NewProvider(tracing.Config{
		Enabled:      tc.Enabled,
		Exporter:     tc.Exporter,
		FilePath:     filePath,
		OTLPEndpoint: tc.OTLPEndpoint,
		SampleRate:   tc.SampleRate,
		ServiceName:  tracing.DefaultServiceName,
	})
	if err != nil {
		return nil, func() {}, fmt.Errorf("creating tracing provider: %w", err)
	}
	shutdown := func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := provider.Shutdown(ctx); err != nil {
			log.ErrorErr(log.CatTrace, "Tracing shutdown failed", err)
		}
	}
	return provider, shutdown, nil
}

// markdownStyle picks the glamour style for the theme mode, asking the
// terminal when the mode is unset.
func markdownStyle(mode string, dark func() bool) string {
	if s := markdown.StyleForMode(mode); s != markdown.StyleAuto {
		return s
	}
	if dark() {
		return markdown.StyleDark
	}
	return markdown.StyleLight
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// SetVersion sets the version string (called from main with ldflags)
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}
