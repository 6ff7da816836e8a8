// Package log writes structured debug logs for inkwell.
// Output goes to a file so it never fights the editor for the terminal; it
// is enabled with --debug or INKWELL_DEBUG.
package log

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/zjrosen/inkwell/internal/pubsub"
)

// Level represents log severity.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

var levelNames = [...]string{"DEBUG", "INFO", "WARN", "ERROR"}

func (l Level) String() string {
	if l < 0 || int(l) >= len(levelNames) {
		return "UNKNOWN"
	}
	return levelNames[l]
}

// ParseLevel converts a value such as "warn" to a Level. Empty means debug.
func ParseLevel(s string) (Level, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	switch s {
	case "":
		return LevelDebug, nil
	case "WARNING":
		return LevelWarn, nil
	}
	for i, name := range levelNames {
		if name == s {
			return Level(i), nil
		}
	}
	return LevelDebug, fmt.Errorf("unknown log level %q", s)
}

// LevelOf reads the "[LEVEL]" tag of a formatted entry. Entries without a
// tag, such as Bubble Tea panics, count as errors.
func LevelOf(entry string) Level {
	for i, name := range levelNames {
		if strings.Contains(entry, "["+name+"]") {
			return Level(i)
		}
	}
	return LevelError
}

// Category groups related log messages.
type Category string

const (
	CatEditor  Category = "editor"  // Mode changes and key handling
	CatUndo    Category = "undo"    // Undo frames and eviction
	CatSearch  Category = "search"  // Queries and replacements
	CatSession Category = "session" // Session lifecycle, saves and timers
	CatCache   Category = "cache"
	CatConfig  Category = "config"
	CatWatcher Category = "watcher"
	CatStore   Category = "store" // Cursor position database
	CatUI      Category = "ui"
	CatTrace   Category = "trace"
)

type logger struct {
	mu       sync.Mutex
	out      io.Writer
	enabled  bool
	minLevel Level
	broker   *pubsub.Broker[string]
}

// current is nil until InitWithTeaLog or InitWriter runs; every call is a
// no-op until then.
var current *logger

// InitWithTeaLog opens path through tea.LogToFile so Bubble Tea's own
// diagnostics land in the same file. The cleanup closes the file.
func InitWithTeaLog(path string, prefix string) (func(), error) {
	f, err := tea.LogToFile(path, prefix)
	if err != nil {
		return nil, err
	}
	InitWriter(f)
	return func() { _ = f.Close() }, nil
}

// InitWriter sends log entries to w.
func InitWriter(w io.Writer) {
	current = &logger{
		out:     w,
		enabled: true,
		broker:  pubsub.NewBroker[string](),
	}
}

// SetEnabled toggles logging on/off.
func SetEnabled(enabled bool) {
	if l := current; l != nil {
		l.mu.Lock()
		l.enabled = enabled
		l.mu.Unlock()
	}
}

// SetMinLevel drops entries below level.
func SetMinLevel(level Level) {
	if l := current; l != nil {
		l.mu.Lock()
		l.minLevel = level
		l.mu.Unlock()
	}
}

func Debug(cat Category, msg string, fields ...any) { current.write(LevelDebug, cat, msg, fields) }
func Info(cat Category, msg string, fields ...any)  { current.write(LevelInfo, cat, msg, fields) }
func Warn(cat Category, msg string, fields ...any)  { current.write(LevelWarn, cat, msg, fields) }
func Error(cat Category, msg string, fields ...any) { current.write(LevelError, cat, msg, fields) }

// ErrorErr logs at error level with err appended as the "error" field.
func ErrorErr(cat Category, msg string, err error, fields ...any) {
	var text any = "<nil>"
	if err != nil {
		text = err.Error()
	}
	current.write(LevelError, cat, msg, append(fields, "error", text))
}

// format renders one line:
//
//	2026-10-14T10:45:00 [WARN] [session] message key=value key2=value2
func format(now time.Time, level Level, cat Category, msg string, fields []any) string {
	var sb strings.Builder
	sb.WriteString(now.Format("2006-01-02T15:04:05"))
	fmt.Fprintf(&sb, " [%s] [%s] %s", level, cat, msg)
	for len(fields) >= 2 {
		fmt.Fprintf(&sb, " %v=%v", fields[0], fields[1])
		fields = fields[2:]
	}
	if len(fields) == 1 {
		fmt.Fprintf(&sb, " %v=<missing>", fields[0])
	}
	sb.WriteByte('\n')
	return sb.String()
}

func (l *logger) write(level Level, cat Category, msg string, fields []any) {
	if l == nil {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if !l.enabled || level < l.minLevel {
		return
	}
	entry := format(time.Now(), level, cat, msg, fields)
	_, _ = io.WriteString(l.out, entry)
	l.broker.Publish(pubsub.UpdatedEvent, entry)
}

// LogEvent carries one formatted entry.
type LogEvent = pubsub.Event[string]

// LogListener delivers entries to a Bubble Tea program.
type LogListener = pubsub.ContinuousListener[string]

// NewListener subscribes to new entries until ctx is done. It returns nil
// when logging was never initialized.
func NewListener(ctx context.Context) *LogListener {
	if current == nil {
		return nil
	}
	return pubsub.NewContinuousListener[string](ctx, current.broker)
}
