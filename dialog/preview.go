package dialog

import (
	"fmt"
	"image"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// renderPreview converts a thumbnail into terminal art. Each character
// cell carries two vertically stacked pixels via the upper half block,
// with the top pixel as foreground and the bottom as background, so a
// 100x80 thumbnail fits in a 100x40 cell region.
func renderPreview(img image.Image) string {
	bounds := img.Bounds()
	w := bounds.Dx()
	h := bounds.Dy()

	var s strings.Builder
	for y := 0; y < h; y += 2 {
		for x := 0; x < w; x++ {
			top := colorAt(img, bounds.Min.X+x, bounds.Min.Y+y)
			bottom := top
			if y+1 < h {
				bottom = colorAt(img, bounds.Min.X+x, bounds.Min.Y+y+1)
			}
			s.WriteString(lipgloss.NewStyle().
				Foreground(top).
				Background(bottom).
				Render("▀"))
		}
		if y+2 < h {
			s.WriteString("\n")
		}
	}
	return s.String()
}

func colorAt(img image.Image, x, y int) lipgloss.Color {
	r, g, b, _ := img.At(x, y).RGBA()
	return lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", r>>8, g>>8, b>>8))
}
