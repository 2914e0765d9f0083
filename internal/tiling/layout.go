// Package tiling turns frame trees into window geometry and pushes it to
// the window system.
package tiling

import (
	"fmt"
	"math"

	"github.com/1broseidon/frametile/internal/frame"
	"github.com/1broseidon/frametile/internal/platform"
)

// Rect represents a window position and size.
type Rect = platform.Rect

// Padding is reserved space at the screen edges.
type Padding struct {
	Top    int
	Bottom int
	Left   int
	Right  int
}

// Placement is the computed geometry of one window.
type Placement struct {
	Window frame.WindowID
	Bounds Rect
}

// CalculateGrid determines the grid dimensions for the given number of windows.
func CalculateGrid(numWindows int) (rows, cols int) {
	if numWindows == 0 {
		return 0, 0
	}
	cols = int(math.Ceil(math.Sqrt(float64(numWindows))))
	rows = int(math.Ceil(float64(numWindows) / float64(cols)))
	return rows, cols
}

// ApplyPadding shrinks a monitor area by the configured screen padding.
func ApplyPadding(area Rect, p Padding) (Rect, error) {
	area.X += p.Left
	area.Y += p.Top
	area.Width -= p.Left + p.Right
	area.Height -= p.Top + p.Bottom
	if area.Empty() {
		return area, fmt.Errorf(
			"screen_padding leaves no usable space: %dx%d at %d,%d",
			area.Width, area.Height, area.X, area.Y,
		)
	}
	return area, nil
}

// Arrange computes window geometry for a frame tree inside area. A
// vertical split stacks its children top to bottom, a horizontal split
// puts them side by side; the fraction is the share of the first child.
// Every window is inset by half the gap on each side.
func Arrange(root frame.Frame, area Rect, gap int) []Placement {
	var out []Placement
	arrange(root, area, gap, &out)
	return out
}

func arrange(f frame.Frame, area Rect, gap int, out *[]Placement) {
	switch n := f.(type) {
	case *frame.Split:
		first, second := SplitRect(area, n.Alignment, n.Fraction)
		arrange(n.Children[0], first, gap, out)
		arrange(n.Children[1], second, gap, out)
	case *frame.Leaf:
		cells := leafCells(n, area)
		for i, id := range n.Windows {
			*out = append(*out, Placement{Window: id, Bounds: inset(cells[i], gap/2)})
		}
	}
}

// SplitRect divides area along the split axis.
func SplitRect(area Rect, align frame.Alignment, fraction float64) (Rect, Rect) {
	first, second := area, area
	if align == frame.AlignmentVertical {
		first.Height = int(float64(area.Height) * fraction)
		second.Y = area.Y + first.Height
		second.Height = area.Height - first.Height
		return first, second
	}
	first.Width = int(float64(area.Width) * fraction)
	second.X = area.X + first.Width
	second.Width = area.Width - first.Width
	return first, second
}

func leafCells(l *frame.Leaf, area Rect) []Rect {
	n := len(l.Windows)
	cells := make([]Rect, n)
	if n == 0 {
		return cells
	}

	switch l.Algorithm {
	case frame.AlgorithmMax:
		for i := range cells {
			cells[i] = area
		}
	case frame.AlgorithmHorizontal:
		for i := range cells {
			x0 := area.X + area.Width*i/n
			x1 := area.X + area.Width*(i+1)/n
			cells[i] = Rect{X: x0, Y: area.Y, Width: x1 - x0, Height: area.Height}
		}
	case frame.AlgorithmGrid:
		rows, cols := CalculateGrid(n)
		for i := range cells {
			row, col := i/cols, i%cols
			// The last row stretches when it is not full.
			rowCols := cols
			if row == rows-1 && n%cols != 0 {
				rowCols = n % cols
			}
			x0 := area.X + area.Width*col/rowCols
			x1 := area.X + area.Width*(col+1)/rowCols
			y0 := area.Y + area.Height*row/rows
			y1 := area.Y + area.Height*(row+1)/rows
			cells[i] = Rect{X: x0, Y: y0, Width: x1 - x0, Height: y1 - y0}
		}
	default:
		for i := range cells {
			y0 := area.Y + area.Height*i/n
			y1 := area.Y + area.Height*(i+1)/n
			cells[i] = Rect{X: area.X, Y: y0, Width: area.Width, Height: y1 - y0}
		}
	}
	return cells
}

func inset(r Rect, by int) Rect {
	if by <= 0 {
		return r
	}
	w := r.Width - 2*by
	h := r.Height - 2*by
	if w < 1 || h < 1 {
		return r
	}
	return Rect{X: r.X + by, Y: r.Y + by, Width: w, Height: h}
}
