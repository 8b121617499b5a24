package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Terminal colors. The step palette lives in pkg/step; these only dress up
// command output.
var (
	colorAccent = lipgloss.Color("36")
	colorOK     = lipgloss.Color("35")
	colorFail   = lipgloss.Color("167")
	colorBusy   = lipgloss.Color("220")
	colorLink   = lipgloss.Color("75")
	colorText   = lipgloss.Color("255")
	colorLabel  = lipgloss.Color("245")
	colorMuted  = lipgloss.Color("240")
)

var (
	styleTitle  = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	styleLink   = lipgloss.NewStyle().Foreground(colorLink).Underline(true)
	styleMuted  = lipgloss.NewStyle().Foreground(colorMuted)
	styleText   = lipgloss.NewStyle().Foreground(colorText)
	styleLabel  = lipgloss.NewStyle().Foreground(colorLabel).Width(12)
	styleAccent = lipgloss.NewStyle().Foreground(colorAccent)
	styleOK     = lipgloss.NewStyle().Foreground(colorOK)
	styleFail   = lipgloss.NewStyle().Foreground(colorFail)
	styleNote   = lipgloss.NewStyle().Foreground(colorLabel)
)

// Status markers prefixed to a message line.
const (
	markOK    = "✓"
	markFail  = "✗"
	markNote  = "›"
	markFile  = "→"
	separator = " · "
)

// status prints msg prefixed by a colored marker.
func status(mark string, style lipgloss.Style, format string, args ...any) {
	fmt.Println(style.Render(mark) + " " + fmt.Sprintf(format, args...))
}

func printSuccess(format string, args ...any) { status(markOK, styleOK, format, args...) }
func printError(format string, args ...any)   { status(markFail, styleFail, format, args...) }
func printInfo(format string, args ...any)    { status(markNote, styleNote, format, args...) }

// printDetail prints an indented, muted line under a status message.
func printDetail(format string, args ...any) {
	fmt.Println("  " + styleMuted.Render(fmt.Sprintf(format, args...)))
}

// printFile reports a written file.
func printFile(path string) {
	fmt.Println("  " + styleMuted.Render(markFile) + " " + styleText.Render(path))
}

// printKeyValue prints a label padded to a fixed column and its value.
func printKeyValue(key, value string) {
	fmt.Println(styleLabel.Render(key) + " " + styleText.Render(value))
}

// printStats summarizes an artifact batch: how many units were produced,
// their total size and whether they came from the cache.
func printStats(count int, unit string, size int, cached bool) {
	origin := styleNote.Render("fresh")
	if cached {
		origin = styleOK.Render("cached")
	}
	fields := []string{
		styleMuted.Render(fmt.Sprintf("%d %s", count, unit)),
		styleMuted.Render(formatBytes(size)),
		origin,
	}
	fmt.Println("  " + strings.Join(fields, styleMuted.Render(separator)))
}

// printNextStep suggests a follow-up command.
func printNextStep(description, cmd string) {
	fmt.Println(styleMuted.Render(description+":") + " " + styleLink.UnsetUnderline().Render(cmd))
}

func printNewline() { fmt.Println() }

// formatBytes renders a byte count with a binary unit.
func formatBytes(n int) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := unit, 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGT"[exp])
}
