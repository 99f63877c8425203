// Package render draws disk statistics as terminal panels: the detailed
// window view and the small and medium widget views.
package render

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/labstack/gommon/color"
	"github.com/mattn/go-isatty"

	"diskinfo/pkg/diskstat"
	"diskinfo/pkg/timeline"
)

// Color modes accepted by NewRenderer.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

const (
	windowWidth    = 40
	windowBarWidth = 20
	widgetBarWidth = 10
	clockFormat    = "15:04"
)

// ErrUnknownFamily is returned by ParseFamily for unsupported widget sizes.
var ErrUnknownFamily = errors.New("unknown widget family")

// Family is a widget size.
type Family string

const (
	FamilySmall  Family = "small"
	FamilyMedium Family = "medium"
)

// Families lists the supported widget sizes.
func Families() []Family {
	return []Family{FamilySmall, FamilyMedium}
}

// ParseFamily validates a widget size name.
func ParseFamily(name string) (Family, error) {
	switch Family(strings.ToLower(strings.TrimSpace(name))) {
	case FamilySmall:
		return FamilySmall, nil
	case FamilyMedium:
		return FamilyMedium, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFamily, name)
	}
}

// Renderer draws panels, optionally with ANSI colors.
type Renderer struct {
	color *color.Color
}

// NewRenderer returns a Renderer for out. In ColorAuto mode colors are
// used only when out is a terminal.
func NewRenderer(mode string, out io.Writer) *Renderer {
	c := color.New()
	if colorEnabled(mode, out) {
		c.Enable()
	} else {
		c.Disable()
	}
	return &Renderer{color: c}
}

func colorEnabled(mode string, out io.Writer) bool {
	switch mode {
	case ColorAlways:
		return true
	case ColorNever:
		return false
	}
	f, ok := out.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// accent colors text by the severity of the usage percentage.
func (r *Renderer) accent(sev diskstat.Severity, text string) string {
	switch sev {
	case diskstat.SeverityCritical:
		return r.color.Red(text)
	case diskstat.SeverityWarning:
		return r.color.Yellow(text)
	default:
		return r.color.Blue(text)
	}
}

// Window draws the detailed panel of the interactive view.
func (r *Renderer) Window(w io.Writer, stats diskstat.DiskStats) error {
	var b strings.Builder
	sev := stats.Severity()

	b.WriteString(r.color.Bold("Disk Info") + "\n")
	b.WriteString(r.color.Grey("Run `diskinfo widget` for the compact view") + "\n")
	b.WriteString(strings.Repeat("-", windowWidth) + "\n")
	b.WriteString(r.row("Total Space:", stats.TotalFormatted(), nil))
	b.WriteString(r.row("Used Space:", stats.UsedFormatted(), nil))
	b.WriteString(r.row("Free Space:", stats.FreeFormatted(), r.green))
	b.WriteString(r.accent(sev, bar(stats.UsagePercent, windowBarWidth)) + "\n")
	b.WriteString(r.color.Grey(center(fmt.Sprintf("%d%% used", stats.WholePercent()), windowWidth)) + "\n")

	_, err := io.WriteString(w, b.String())
	return err
}

// Small draws the compact widget: a gauge and the free space.
func (r *Renderer) Small(w io.Writer, entry timeline.Entry) error {
	var b strings.Builder
	stats := entry.Stats
	sev := stats.Severity()

	fmt.Fprintf(&b, "%s %s\n", r.accent(sev, bar(stats.UsagePercent, widgetBarWidth)), r.color.Bold(fmt.Sprintf("%d%%", stats.WholePercent())))
	b.WriteString(r.color.Grey("used") + "\n")
	fmt.Fprintf(&b, "%s %s\n", stats.FreeFormatted(), r.color.Grey("free"))
	b.WriteString(r.color.Dim("updated "+entry.Date.Format(clockFormat)) + "\n")

	_, err := io.WriteString(w, b.String())
	return err
}

// Medium draws the wide widget: a gauge and the Used/Free/Total breakdown.
func (r *Renderer) Medium(w io.Writer, entry timeline.Entry) error {
	var b strings.Builder
	stats := entry.Stats
	sev := stats.Severity()

	b.WriteString(r.color.Bold("Disk Storage") + "\n")
	fmt.Fprintf(&b, "%s %s %s\n", r.accent(sev, bar(stats.UsagePercent, windowBarWidth)),
		r.color.Bold(fmt.Sprintf("%d%%", stats.WholePercent())), r.color.Grey("used"))
	fmt.Fprintf(&b, "%s Used:  %s\n", r.color.Blue("●"), stats.UsedFormatted())
	fmt.Fprintf(&b, "%s Free:  %s\n", r.color.Green("●"), stats.FreeFormatted())
	fmt.Fprintf(&b, "%s %s\n", r.color.Grey("●"), r.color.Grey("Total: "+stats.TotalFormatted()))
	b.WriteString(r.color.Dim("updated "+entry.Date.Format(clockFormat)) + "\n")

	_, err := io.WriteString(w, b.String())
	return err
}

// Widget draws entry in the given family. Unknown families fall back to small.
func (r *Renderer) Widget(w io.Writer, family Family, entry timeline.Entry) error {
	if family == FamilyMedium {
		return r.Medium(w, entry)
	}
	return r.Small(w, entry)
}

func (r *Renderer) green(text string) string {
	return r.color.Green(text)
}

// row lays out a label and a right-aligned value across the window width.
func (r *Renderer) row(label, value string, paint func(string) string) string {
	padded := fmt.Sprintf("%*s", windowWidth-len(label), value)
	if paint != nil {
		padded = paint(padded)
	}
	return r.color.Grey(label) + padded + "\n"
}

// bar draws a progress bar; the fill is clamped to the bar even if percent is not.
func bar(percent float64, width int) string {
	filled := int(percent / 100 * float64(width))
	filled = max(0, min(filled, width))
	return "[" + strings.Repeat("#", filled) + strings.Repeat("-", width-filled) + "]"
}

func center(text string, width int) string {
	if len(text) >= width {
		return text
	}
	return strings.Repeat(" ", (width-len(text))/2) + text
}
