package presentation

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/zjrosen/inkwell/internal/ui/styles"
)

// Formatter handles output formatting
type Formatter struct {
	writer io.Writer
}

// NewFormatter creates a new formatter
func NewFormatter(writer io.Writer) *Formatter {
	return &Formatter{
		writer: writer,
	}
}

// FormatReportJSON writes the report as indented JSON.
func (f *Formatter) FormatReportJSON(rep ReportDTO) error {
	encoder := json.NewEncoder(f.writer)
	encoder.SetIndent("", "  ")
	return encoder.Encode(rep)
}

// FormatReport writes the report as a table with a total row when more
// than one file was counted.
func (f *Formatter) FormatReport(rep ReportDTO) error {
	headerStyle := lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle := lipgloss.NewStyle().Padding(0, 1)
	numberStyle := cellStyle.Align(lipgloss.Right)

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(styles.MutedStyle).
		Headers("File", "Words", "Chars", "Lines", "Reading").
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case col == 0:
				return cellStyle
			}
			return numberStyle
		})
	for _, file := range rep.Files {
		t.Row(countsRow(file.Path, file.CountsDTO)...)
	}
	if len(rep.Files) > 1 {
		t.Row(countsRow("total", rep.Total)...)
	}
	_, err := fmt.Fprintln(f.writer, t.Render())
	return err
}

func countsRow(name string, c CountsDTO) []string {
	return []string{
		name,
		fmt.Sprint(c.Words),
		fmt.Sprint(c.Chars),
		fmt.Sprint(c.Lines),
		fmt.Sprintf("%d min", c.ReadingMinutes),
	}
}
