package tui

import (
	"image"
	"math"
)

const (
	tabRows    = 1
	statusRows = 2 // separator + status bar
	barRows    = 1 // find bar or prompt
	minPaneW   = 10
)

// layout holds the screen rectangles of one frame.
type layout struct {
	tabs    []image.Rectangle // one tab strip per pane
	editors []image.Rectangle
	divider image.Rectangle // empty unless split
	bar     image.Rectangle // empty unless the find bar or a prompt shows
	status  image.Rectangle
}

// generateLayout splits the screen between panes using their proportional
// sizes. A split leaves one column for the divider.
func generateLayout(width, height int, sizes []float64, showBar bool) layout {
	var ly layout
	bottom := height - statusRows
	ly.status = image.Rect(0, bottom, width, height)
	if showBar {
		ly.bar = image.Rect(0, bottom-barRows, width, bottom)
		bottom -= barRows
	}
	bottom = max(bottom, tabRows)

	cols := paneColumns(width, sizes)
	for i, c := range cols {
		ly.tabs = append(ly.tabs, image.Rect(c.Min.X, 0, c.Max.X, tabRows))
		ly.editors = append(ly.editors, image.Rect(c.Min.X, tabRows, c.Max.X, bottom))
		if i == 0 && len(cols) > 1 {
			ly.divider = image.Rect(c.Max.X, 0, c.Max.X+1, bottom)
		}
	}
	return ly
}

// paneColumns returns the horizontal extent of each pane.
func paneColumns(width int, sizes []float64) []image.Rectangle {
	if len(sizes) < 2 {
		return []image.Rectangle{image.Rect(0, 0, width, 1)}
	}
	avail := width - 1
	first := int(math.Round(float64(avail) * sizes[0]))
	first = max(min(first, avail-minPaneW), min(minPaneW, avail))
	return []image.Rectangle{
		image.Rect(0, 0, first, 1),
		image.Rect(first+1, 0, width, 1),
	}
}

func inRect(x, y int, r image.Rectangle) bool {
	return image.Pt(x, y).In(r)
}
