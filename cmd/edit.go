package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/term"

	"github.com/zjrosen/inkwell/internal/config"
	"github.com/zjrosen/inkwell/internal/document"
	"github.com/zjrosen/inkwell/internal/editor"
	"github.com/zjrosen/inkwell/internal/flags"
	"github.com/zjrosen/inkwell/internal/infrastructure/sqlite"
	"github.com/zjrosen/inkwell/internal/log"
	"github.com/zjrosen/inkwell/internal/tracing"
	"github.com/zjrosen/inkwell/internal/ui/edit"
	"github.com/zjrosen/inkwell/internal/ui/styles"
	"github.com/zjrosen/inkwell/internal/watcher"
)

// positionRetention is how long an untouched file's cursor is remembered.
const positionRetention = 180 * 24 * time.Hour

var errNotTerminal = errors.New("editing needs a terminal; use 'inkwell preview' or 'inkwell stats' in pipes")

var editCmd = &cobra.Command{
	Use:   "edit FILE",
	Short: "Edit a file",
	Long: `Open FILE in the editor. A missing file is created on the first write.

Navigation mode moves and deletes; i, a, o and friends enter insert mode.
Press ? in navigation mode for the keybindings.`,
	Args: cobra.ExactArgs(1),
	RunE: runEdit,
}

func init() {
	rootCmd.AddCommand(editCmd)
}

func runEdit(_ *cobra.Command, args []string) error {
	if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
		return errNotTerminal
	}

	cleanup, err := startLogging("inkwell")
	if err != nil {
		return err
	}
	defer cleanup()

	path, err := filepath.Abs(args[0])
	if err != nil {
		return fmt.Errorf("resolving %s: %w", args[0], err)
	}

	provider, shutdown, err := startTracing(cfg.Tracing)
	if err != nil {
		return err
	}
	defer shutdown()
	tracer := provider.Tracer()

	text, err := loadDocument(context.Background(), tracer, path)
	if err != nil {
		return err
	}

	if err := styles.ApplyTheme(cfg.Theme.Styles()); err != nil {
		return fmt.Errorf("applying theme: %w", err)
	}

	featureFlags := flags.New(cfg.Flags)
	positions, closeStore := openPositions(cfg.Store)
	defer closeStore()

	var changes <-chan struct{}
	if w, err := watcher.New(watcher.Config{Path: path}); err != nil {
		log.ErrorErr(log.CatWatcher, "Creating watcher failed", err, "path", path)
	} else if changes, err = w.Start(); err != nil {
		log.ErrorErr(log.CatWatcher, "Starting watcher failed", err, "path", path)
		_ = w.Stop()
	} else {
		defer func() { _ = w.Stop() }()
	}

	model := edit.New(edit.Options{
		Path:          path,
		Text:          text,
		Settings:      cfg.Editor,
		ConfigPath:    cfgPath,
		Flags:         featureFlags,
		Positions:     positions,
		Changes:       changes,
		Clipboard:     editor.SystemClipboard(),
		Tracer:        tracer,
		MarkdownStyle: markdownStyle(cfg.Theme.Mode, lipgloss.HasDarkBackground),
	})
	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running editor: %w", err)
	}
	return nil
}

// loadDocument reads path, treating a missing file as a new empty one.
func loadDocument(ctx context.Context, tracer trace.Tracer, path string) (string, error) {
	_, span := tracer.Start(ctx, tracing.SpanDocumentLoad,
		trace.WithAttributes(attribute.String(tracing.AttrDocumentPath, path)))
	defer span.End()

	text, exists, err := document.LoadOrEmpty(path)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "load failed")
		return "", err
	}
	span.SetAttributes(attribute.Int(tracing.AttrDocumentBytes, len(text)))
	log.Debug(log.CatSession, "Document loaded", "path", path, "exists", exists, "bytes", len(text))
	return text, nil
}

// openPositions opens the cursor position store. The editor works without
// one, so failures are logged and resume is skipped.
func openPositions(sc config.StoreConfig) (edit.PositionStore, func()) {
	path := sc.Path
	if path == "" {
		path = config.DefaultStorePath()
	}
	if path == "" {
		return nil, func() {}
	}
	db, err := sqlite.NewDB(path)
	if err != nil {
		log.ErrorErr(log.CatStore, "Opening position store failed", err, "path", path)
		return nil, func() {}
	}
	repo := db.Positions()
	if n, err := repo.Prune(context.Background(), time.Now().Add(-positionRetention)); err != nil {
		log.ErrorErr(log.CatStore, "Pruning positions failed", err)
	} else if n > 0 {
		log.Debug(log.CatStore, "Pruned old positions", "count", n)
	}
	return repo, func() {
		if err := db.Close(); err != nil {
			log.ErrorErr(log.CatStore, "Closing position store failed", err)
		}
	}
}
