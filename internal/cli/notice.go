package cli

import (
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

// NoticeKind selects the style and prefix of a message box.
type NoticeKind int

const (
	InfoNotice NoticeKind = iota
	SuccessNotice
	WarningNotice
	ErrorNotice
)

var noticeStyles = map[NoticeKind]struct {
	style  lipgloss.Style
	prefix string
}{
	InfoNotice:    {lipgloss.NewStyle().Foreground(lipgloss.Color("86")), "ℹ"},
	SuccessNotice: {lipgloss.NewStyle().Foreground(lipgloss.Color("42")), "✓"},
	WarningNotice: {lipgloss.NewStyle().Foreground(lipgloss.Color("178")), "⚠"},
	ErrorNotice:   {lipgloss.NewStyle().Foreground(lipgloss.Color("196")), "✗"},
}

// Notice renders a box-drawn message with a title line and detail lines,
// wrapped to the terminal width.
func Notice(kind NoticeKind, title string, lines ...string) string {
	ns := noticeStyles[kind]

	contentWidth := terminalWidth() - 14
	if contentWidth < 20 {
		contentWidth = 20
	}

	var wrapped []string
	for _, line := range append([]string{title}, lines...) {
		wrapped = append(wrapped, wrapText(line, contentWidth)...)
	}

	boxWidth := 6
	for _, line := range wrapped {
		if w := utf8.RuneCountInString(line) + 6; w > boxWidth {
			boxWidth = w
		}
	}

	var sb strings.Builder
	sb.WriteString(ns.style.Render("╭"+strings.Repeat("─", boxWidth-2)+"╮") + "\n")
	for i, line := range wrapped {
		lead := "  "
		pad := boxWidth - utf8.RuneCountInString(line) - 4
		if i == 0 {
			lead = ns.style.Bold(true).Render(ns.prefix) + " "
			pad -= utf8.RuneCountInString(ns.prefix) + 1
		}
		if pad < 0 {
			pad = 0
		}
		fmt.Fprintf(&sb, "%s %s%s%s %s\n",
			ns.style.Render("│"), lead, line, strings.Repeat(" ", pad), ns.style.Render("│"))
	}
	sb.WriteString(ns.style.Render("╰" + strings.Repeat("─", boxWidth-2) + "╯"))
	return sb.String()
}

func Info(title string, lines ...string) string {
	return Notice(InfoNotice, title, lines...)
}

func Success(title string, lines ...string) string {
	return Notice(SuccessNotice, title, lines...)
}

func Warning(title string, lines ...string) string {
	return Notice(WarningNotice, title, lines...)
}

func Error(title string, lines ...string) string {
	return Notice(ErrorNotice, title, lines...)
}

func terminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return 80
	}
	return width
}

// wrapText word-wraps a line to maxWidth runes; words longer than the width
// stay on their own line.
func wrapText(text string, maxWidth int) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return []string{""}
	}

	var lines []string
	current := words[0]
	width := utf8.RuneCountInString(current)
	for _, word := range words[1:] {
		w := utf8.RuneCountInString(word)
		if width+w+1 <= maxWidth {
			current += " " + word
			width += w + 1
			continue
		}
		lines = append(lines, current)
		current = word
		width = w
	}
	return append(lines, current)
}
