package edit

import (
	"errors"
	"fmt"
	"strings"

	"github.com/zjrosen/inkwell/internal/editor"
)

// CommandKind identifies a ':' command.
type CommandKind int

const (
	CmdWrite CommandKind = iota
	CmdQuit
	CmdWriteQuit
	CmdForceQuit
	CmdSubstitute
	CmdTypewriter
	CmdDim
	CmdNoHighlight
	CmdPreview
)

// Toggle is the argument of :typewriter and :dim.
type Toggle int

const (
	ToggleFlip Toggle = iota
	ToggleOn
	ToggleOff
)

// Command is a parsed ':' command line.
type Command struct {
	Kind CommandKind

	// Substitute fields. All replaces every match instead of the next one.
	Pattern     string
	Replacement string
	All         bool
	Options     editor.SearchOptions

	Toggle Toggle
}

var errEmptyCommand = errors.New("empty command")

// ParseCommand parses the text typed after ':'.
//
// Substitute takes the form s/old/new/flags or %s/old/new/flags. Any
// punctuation can stand in for '/', and a backslash escapes the delimiter.
// Flags: g replaces every match, i ignores case, c restores case
// sensitivity, w matches whole words, r treats old as a regular expression.
func ParseCommand(input string) (Command, error) {
	line := strings.TrimSpace(input)
	if line == "" {
		return Command{}, errEmptyCommand
	}

	name, arg, _ := strings.Cut(line, " ")
	arg = strings.TrimSpace(arg)
	switch name {
	case "w", "write":
		return Command{Kind: CmdWrite}, nil
	case "q", "quit":
		return Command{Kind: CmdQuit}, nil
	case "q!", "quit!":
		return Command{Kind: CmdForceQuit}, nil
	case "wq", "x":
		return Command{Kind: CmdWriteQuit}, nil
	case "noh", "nohlsearch":
		return Command{Kind: CmdNoHighlight}, nil
	case "preview":
		return Command{Kind: CmdPreview}, nil
	case "typewriter", "dim":
		t, err := parseToggle(arg)
		if err != nil {
			return Command{}, fmt.Errorf("%s: %w", name, err)
		}
		kind := CmdTypewriter
		if name == "dim" {
			kind = CmdDim
		}
		return Command{Kind: kind, Toggle: t}, nil
	}

	if strings.HasPrefix(line, "%s") {
		return parseSubstitute(line[2:], true)
	}
	if strings.HasPrefix(line, "s") && len(line) > 1 && isDelimiter(line[1]) {
		return parseSubstitute(line[1:], false)
	}
	return Command{}, fmt.Errorf("not an editor command: %s", line)
}

func parseToggle(arg string) (Toggle, error) {
	switch arg {
	case "":
		return ToggleFlip, nil
	case "on":
		return ToggleOn, nil
	case "off":
		return ToggleOff, nil
	}
	return ToggleFlip, fmt.Errorf("expected on or off, got %q", arg)
}

func isDelimiter(c byte) bool {
	switch {
	case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		return false
	case c == ' ', c == '\\', c == '"', c == '|':
		return false
	}
	return c < 0x80
}

func parseSubstitute(body string, all bool) (Command, error) {
	if body == "" || !isDelimiter(body[0]) {
		return Command{}, errors.New("substitute: missing delimiter")
	}
	parts := splitEscaped(body[1:], body[0])
	if len(parts) < 2 {
		return Command{}, errors.New("substitute: expected old and new text")
	}
	if len(parts) > 3 {
		return Command{}, errors.New("substitute: too many fields")
	}
	cmd := Command{
		Kind:        CmdSubstitute,
		Pattern:     parts[0],
		Replacement: parts[1],
		All:         all,
		Options:     editor.SearchOptions{CaseSensitive: true},
	}
	if cmd.Pattern == "" {
		return Command{}, errors.New("substitute: empty pattern")
	}
	if len(parts) == 3 {
		for _, f := range parts[2] {
			switch f {
			case 'g':
				cmd.All = true
			case 'i':
				cmd.Options.CaseSensitive = false
			case 'c':
				cmd.Options.CaseSensitive = true
			case 'w':
				cmd.Options.WholeWord = true
			case 'r':
				cmd.Options.IsPattern = true
			default:
				return Command{}, fmt.Errorf("substitute: unknown flag %q", f)
			}
		}
	}
	return cmd, nil
}

// splitEscaped splits s on delim. A backslash before delim keeps it
// literal; other backslashes are kept for the pattern syntax.
func splitEscaped(s string, delim byte) []string {
	var parts []string
	var cur strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == '\\' && i+1 < len(s) && s[i+1] == delim {
			cur.WriteByte(delim)
			i++
			continue
		}
		if c == delim {
			parts = append(parts, cur.String())
			cur.Reset()
			continue
		}
		cur.WriteByte(c)
	}
	return append(parts, cur.String())
}
