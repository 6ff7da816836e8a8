package cmd

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/zjrosen/inkwell/internal/document"
	"github.com/zjrosen/inkwell/internal/ui/markdown"
)

var previewWidth int

var previewCmd = &cobra.Command{
	Use:   "preview FILE",
	Short: "Print a file as rendered markdown",
	Long: `Render FILE as styled markdown on standard output. Colour is dropped when
the output is not a terminal, so the result can be piped or saved.`,
	Args: cobra.ExactArgs(1),
	RunE: runPreview,
}

func init() {
	previewCmd.Flags().IntVarP(&previewWidth, "width", "w", 0,
		"wrap width (default: terminal width, or 80)")
	rootCmd.AddCommand(previewCmd)
}

func runPreview(cmd *cobra.Command, args []string) error {
	cleanup, err := startLogging("inkwell-preview")
	if err != nil {
		return err
	}
	defer cleanup()

	text, err := document.Load(args[0])
	if err != nil {
		return err
	}

	tty := term.IsTerminal(int(os.Stdout.Fd()))
	style := markdown.StylePlain
	if tty {
		style = markdownStyle(cfg.Theme.Mode, lipgloss.HasDarkBackground)
	}

	r, err := markdown.New(previewColumns(tty), style)
	if err != nil {
		return err
	}
	out, err := r.Render(text)
	if err != nil {
		return err
	}
	_, err = fmt.Fprint(cmd.OutOrStdout(), out)
	return err
}

func previewColumns(tty bool) int {
	if previewWidth > 0 {
		return previewWidth
	}
	if tty {
		if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
			return w
		}
	}
	return 80
}
