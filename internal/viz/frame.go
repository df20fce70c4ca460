package viz

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/catsanzsh/flame64/internal/chaos"
)

// RenderFrame downsamples a flat 240x320 RGB frame into terminal
// half-block cells: each character carries two vertical samples, the
// top one as foreground of '▀' and the bottom one as background.
func RenderFrame(frame []byte, cols, rows int) string {
	if cols <= 0 || rows <= 0 || len(frame) < chaos.FrameHeight*chaos.FrameWidth*3 {
		return ""
	}
	var b strings.Builder
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			topY := (r * 2) * chaos.FrameHeight / (rows * 2)
			botY := (r*2 + 1) * chaos.FrameHeight / (rows * 2)
			x := c * chaos.FrameWidth / cols
			cell := lipgloss.NewStyle().
				Foreground(pixelColor(frame, topY, x)).
				Background(pixelColor(frame, botY, x))
			b.WriteString(cell.Render("▀"))
		}
		if r < rows-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func pixelColor(frame []byte, y, x int) lipgloss.Color {
	o := (y*chaos.FrameWidth + x) * 3
	return lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", frame[o], frame[o+1], frame[o+2]))
}
