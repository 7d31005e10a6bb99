package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// cell classes select which lipgloss style a run of runes is painted with.
type cellClass uint8

const (
	classText cellClass = iota
	classAccent
	classUp
	classDown
	classDead
	classHelp
	classInfo
)

func (c cellClass) style() lipgloss.Style {
	switch c {
	case classAccent:
		return accentStyle
	case classUp:
		return upStyle
	case classDown:
		return downStyle
	case classDead:
		return deadStyle
	case classHelp:
		return helpStyle
	case classInfo:
		return infoStyle
	default:
		return lipgloss.NewStyle()
	}
}

// canvas is a fixed-size grid of runes with a style class per cell. Panels
// draw into it with absolute coordinates and out-of-bounds writes are
// silently clipped, so drawing code never needs its own bounds checks.
type canvas struct {
	w, h  int
	cells []rune
	class []cellClass
}

func newCanvas(w, h int) *canvas {
	cv := &canvas{
		w:     w,
		h:     h,
		cells: make([]rune, w*h),
		class: make([]cellClass, w*h),
	}
	for i := range cv.cells {
		cv.cells[i] = ' '
	}
	return cv
}

func (cv *canvas) set(x, y int, r rune, cl cellClass) {
	if x < 0 || y < 0 || x >= cv.w || y >= cv.h {
		return
	}
	cv.cells[y*cv.w+x] = r
	cv.class[y*cv.w+x] = cl
}

// setString draws s starting at (x, y), advancing by display width. A wide
// rune occupies two cells; the shadow cell holds a NUL that row rendering
// skips, so the emitted line keeps its display width.
func (cv *canvas) setString(x, y int, s string, cl cellClass) {
	for _, r := range s {
		w := runewidth.RuneWidth(r)
		if w == 0 {
			continue
		}
		cv.set(x, y, r, cl)
		if w > 1 {
			cv.set(x+1, y, 0, cl)
		}
		x += w
	}
}

// Row returns the runes of line y, mainly for tests and screenshots.
// Shadow cells of wide runes are dropped so the line keeps its display width.
func (cv *canvas) Row(y int) string {
	if y < 0 || y >= cv.h {
		return ""
	}
	rs := make([]rune, 0, cv.w)
	for _, r := range cv.cells[y*cv.w : (y+1)*cv.w] {
		if r != 0 {
			rs = append(rs, r)
		}
	}
	return string(rs)
}

// Plain renders the canvas without any styling.
func (cv *canvas) Plain() string {
	var sb strings.Builder
	for y := 0; y < cv.h; y++ {
		if y > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(cv.Row(y))
	}
	return sb.String()
}

// Styled renders the canvas with lipgloss styles, grouping consecutive
// cells of the same class into a single styled segment per run.
func (cv *canvas) Styled() string {
	var sb strings.Builder
	for y := 0; y < cv.h; y++ {
		if y > 0 {
			sb.WriteByte('\n')
		}
		x := 0
		for x < cv.w {
			cl := cv.class[y*cv.w+x]
			end := x
			for end < cv.w && cv.class[y*cv.w+end] == cl {
				end++
			}
			seg := segString(cv.cells[y*cv.w+x : y*cv.w+end])
			if cl == classText {
				sb.WriteString(seg)
			} else {
				sb.WriteString(cl.style().Render(seg))
			}
			x = end
		}
	}
	return sb.String()
}

func segString(cells []rune) string {
	rs := make([]rune, 0, len(cells))
	for _, r := range cells {
		if r != 0 {
			rs = append(rs, r)
		}
	}
	return string(rs)
}
