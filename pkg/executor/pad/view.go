package pad

import (
	"strings"

	"github.com/entrhq/strokes/pkg/gesture"
)

const (
	defaultWidth  = 80
	defaultHeight = 24

	// title, status, history and help
	chromeRows = 4
)

// View renders the canvas with the trail, then the status lines.
func (m *model) View() string {
	width, height := m.width, m.height
	if width <= 0 {
		width = defaultWidth
	}
	if height <= 0 {
		height = defaultHeight
	}
	rows := height - chromeRows
	if rows < 1 {
		rows = 1
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("strokes pad"))
	if m.pattern != "" {
		b.WriteString("  " + patternStyle.Render(m.pattern))
	}
	b.WriteString("\n")

	cells := m.trailCells(width, rows)
	glyph := trailGlyph(m.trail.Style)
	style := trailStyle(m.trail.Style.Color)
	for row := 0; row < rows; row++ {
		for col := 0; col < width; col++ {
			if cells[cell{col, row}] {
				b.WriteString(style.Render(glyph))
			} else {
				b.WriteByte(' ')
			}
		}
		b.WriteString("\n")
	}

	b.WriteString(statusStyle.Render(m.status) + "\n")
	if m.last != nil {
		b.WriteString(actionStyle.Render(describeRequest(m.last)) + "  ")
	}
	b.WriteString(historyStyle.Render(strings.Join(m.history, " · ")) + "\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

type cell struct{ col, row int }

// trailCells maps trail points back to canvas cells. Row 0 of the terminal
// holds the title, so canvas rows start one below.
func (m *model) trailCells(width, rows int) map[cell]bool {
	cells := make(map[cell]bool, len(m.trail.Points))
	for _, p := range m.trail.Points {
		c := cell{col: int(p.X / m.cellWidth), row: int(p.Y/m.cellHeight) - 1}
		if c.col < 0 || c.col >= width || c.row < 0 || c.row >= rows {
			continue
		}
		cells[c] = true
	}
	return cells
}

func trailGlyph(style gesture.TrailStyle) string {
	if style.Width >= 6 {
		return "●"
	}
	return "•"
}
