package app

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/vk/packgrid/internal/compiler"
	"github.com/vk/packgrid/internal/execorder"
	"github.com/vk/packgrid/internal/manifest"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#5B8DEF"))
	chunkStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FFB86C"))
	dimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#AAAAAA"))
	boxStyle   = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#444444")).
			Padding(0, 1)
)

// renderSummary draws the chunk table printed after a successful build.
func renderSummary(comp *compiler.Compilation, man *manifest.Manifest) string {
	head := titleStyle.Render("packgrid build") + " " + dimStyle.Render(fmt.Sprintf(
		"%d modules · %d lazy · %d chunks · %d external · %s",
		comp.ModuleGraph.Len(),
		len(execorder.Unordered(comp.ModuleGraph)),
		comp.ChunkGraph.Len(),
		comp.Stats.Externals,
		comp.Stats.Duration.Round(time.Microsecond),
	))

	lines := []string{head}
	for _, c := range comp.ChunkGraph.Chunks() {
		out := man.Outputs[c.ID]
		label := c.ID
		if c.Name != "" {
			label = fmt.Sprintf("%s (%s)", c.ID, c.Name)
		}
		lines = append(lines, "", chunkStyle.Render(label)+"  "+dimStyle.Render(fmt.Sprintf(
			"%s · %d modules · %s", out.Kind, len(out.Modules), formatBytes(out.Bytes),
		)))
		for _, id := range out.Modules {
			lines = append(lines, "  "+id)
		}
	}
	return boxStyle.Render(strings.Join(lines, "\n"))
}

func formatBytes(n int) string {
	if n < 1024 {
		return fmt.Sprintf("%d B", n)
	}
	return fmt.Sprintf("%.1f kB", float64(n)/1024)
}
