package render

import (
	"image"
	"image/color"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
)

// upperHalf shows the top pixel in the foreground colour and the bottom
// pixel in the background colour.
const upperHalf = "▀"

// Cells converts img into terminal rows, two pixel rows per text row. Runs
// of identical cells share one style.
func Cells(img image.Image) []string {
	b := img.Bounds()
	rows := make([]string, 0, (b.Dy()+1)/2)
	for y := b.Min.Y; y < b.Max.Y; y += 2 {
		var sb strings.Builder
		var run int
		var top, bottom string
		flush := func() {
			if run > 0 {
				sb.WriteString(cellStyle(top, bottom).Render(strings.Repeat(upperHalf, run)))
			}
		}
		for x := b.Min.X; x < b.Max.X; x++ {
			t := hex(img.At(x, y))
			bt := hex(background)
			if y+1 < b.Max.Y {
				bt = hex(img.At(x, y+1))
			}
			if run > 0 && t == top && bt == bottom {
				run++
				continue
			}
			flush()
			top, bottom, run = t, bt, 1
		}
		flush()
		rows = append(rows, sb.String())
	}
	return rows
}

func cellStyle(top, bottom string) lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(top)).
		Background(lipgloss.Color(bottom))
}

// hex returns the "#rrggbb" form of c. Fully transparent pixels read as
// background.
func hex(c color.Color) string {
	cf, ok := colorful.MakeColor(c)
	if !ok {
		cf, _ = colorful.MakeColor(background)
	}
	return cf.Hex()
}
