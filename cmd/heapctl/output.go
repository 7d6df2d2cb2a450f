package main

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var (
	okStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	failStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	headerStyle = lipgloss.NewStyle().Bold(true)
	addrStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))

	// numbers formats byte counts with digit grouping.
	numbers = message.NewPrinter(language.English)
)

// styled renders text with s unless color is disabled.
func styled(s lipgloss.Style, text string) string {
	if noColor {
		return text
	}
	return s.Render(text)
}

// formatBytes renders n as a grouped byte count, e.g. "102,400 bytes".
func formatBytes(n uintptr) string {
	return numbers.Sprintf("%d bytes", n)
}

// formatAddr renders a heap address.
func formatAddr(p uintptr) string {
	return styled(addrStyle, fmt.Sprintf("%#x", p))
}

// printInfo prints an info line unless quiet mode is on.
func printInfo(w io.Writer, format string, args ...any) {
	if !quiet {
		fmt.Fprintf(w, format, args...)
	}
}
