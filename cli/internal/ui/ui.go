// Package ui renders CLI output: headers, status lines, tables and
// markdown reports.
package ui

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/pterm/pterm"
)

var (
	// Colors
	PrimaryColor   = lipgloss.Color("#36A3D9")
	SuccessColor   = lipgloss.Color("#23D18B")
	WarningColor   = lipgloss.Color("#E5C07B")
	ErrorColor     = lipgloss.Color("#E06C75")
	SecondaryColor = lipgloss.Color("#7F848E")

	// Styles
	TitleStyle = lipgloss.NewStyle().
			Foreground(PrimaryColor).
			Bold(true).
			MarginBottom(1)

	SuccessStyle   = lipgloss.NewStyle().Foreground(SuccessColor).Bold(true)
	ErrorStyle     = lipgloss.NewStyle().Foreground(ErrorColor).Bold(true)
	WarningStyle   = lipgloss.NewStyle().Foreground(WarningColor).Bold(true)
	InfoStyle      = lipgloss.NewStyle().Foreground(PrimaryColor)
	SecondaryStyle = lipgloss.NewStyle().Foreground(SecondaryColor)
)

// terminalWidth returns the current terminal width, with a fallback for
// pipes and dumb terminals.
func terminalWidth() int {
	if w := pterm.GetTerminalWidth(); w > 0 {
		return w
	}
	return 80
}

// statusLine renders one glyph-prefixed status message.
func statusLine(w io.Writer, style lipgloss.Style, glyph, format string, args ...interface{}) {
	fmt.Fprintln(w, style.Render(glyph+" "+fmt.Sprintf(format, args...)))
}

// PrintHeader prints a boxed command header
func PrintHeader(title string, subtitle string) {
	body := lipgloss.JoinVertical(
		lipgloss.Center,
		TitleStyle.Render(title),
		SecondaryStyle.Render(subtitle),
	)
	box := lipgloss.NewStyle().
		Width(terminalWidth()).
		Align(lipgloss.Center).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(PrimaryColor).
		Padding(1, 2).
		Render(body)

	fmt.Println(box)
	fmt.Println()
}

// PrintSection prints an underlined section header
func PrintSection(title string) {
	section := lipgloss.NewStyle().
		Width(terminalWidth()).
		Border(lipgloss.NormalBorder(), false, false, true, false).
		BorderForeground(SecondaryColor).
		Padding(0, 0, 1, 0).
		Render(title)

	fmt.Println(section)
}

// PrintSuccess prints a success message
func PrintSuccess(format string, args ...interface{}) {
	statusLine(os.Stdout, SuccessStyle, "✓", format, args...)
}

// PrintError prints an error message to stderr
func PrintError(format string, args ...interface{}) {
	statusLine(os.Stderr, ErrorStyle, "✗", format, args...)
}

// PrintWarning prints a warning message
func PrintWarning(format string, args ...interface{}) {
	statusLine(os.Stdout, WarningStyle, "⚠", format, args...)
}

// PrintInfo prints an info message
func PrintInfo(format string, args ...interface{}) {
	statusLine(os.Stdout, InfoStyle, "ℹ", format, args...)
}

// PrintList prints a bulleted list
func PrintList(items []string) {
	for _, item := range items {
		fmt.Printf("  • %s\n", item)
	}
}

// PrintTable prints a table using pterm
func PrintTable(headers []string, rows [][]string) {
	tableData := pterm.TableData{headers}
	tableData = append(tableData, rows...)
	pterm.DefaultTable.WithHasHeader().WithData(tableData).Render()
}

// PrintMarkdown renders markdown content to the terminal
func PrintMarkdown(content string) error {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(terminalWidth()),
	)
	if err != nil {
		return err
	}

	out, err := r.Render(content)
	if err != nil {
		return err
	}

	fmt.Print(out)
	return nil
}

// PrintSpinner creates a spinner and returns it
func PrintSpinner(message string) (*pterm.SpinnerPrinter, error) {
	return pterm.DefaultSpinner.WithText(message).Start()
}
