// Package sheet montages rendered code images into printable pages.
// The grid is presentation only: restore never depends on where a code
// sits on a page, only on each code decoding on its own.
package sheet

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// Layout describes the page grid.
type Layout struct {
	// Cols and Rows give the number of codes per page.
	Cols int
	Rows int

	// Margin is the outer page margin in pixels.
	Margin int

	// Gap is the spacing between adjacent codes in pixels.
	Gap int

	// Captions enables a footer line with the page number and the frame
	// range the page carries.
	Captions bool

	// Title is printed in the footer before the page numbers, typically
	// the key id being backed up.
	Title string
}

// DefaultLayout returns a grid that fits A4 at common print densities.
func DefaultLayout() Layout {
	return Layout{
		Cols:     4,
		Rows:     5,
		Margin:   48,
		Gap:      24,
		Captions: true,
	}
}

// PerPage returns the number of codes one page holds.
func (l Layout) PerPage() int {
	return l.Cols * l.Rows
}

const captionHeight = 28

// Compose lays the code images out into pages in slice order. Codes are
// expected to share one size; the cell size is taken from the largest.
func Compose(codes []image.Image, l Layout) ([]image.Image, error) {
	if l.Cols < 1 || l.Rows < 1 {
		return nil, fmt.Errorf("sheet: layout needs at least one column and row, got %dx%d", l.Cols, l.Rows)
	}
	if len(codes) == 0 {
		return nil, nil
	}

	cell := 0
	for _, c := range codes {
		b := c.Bounds()
		if b.Dx() > cell {
			cell = b.Dx()
		}
		if b.Dy() > cell {
			cell = b.Dy()
		}
	}

	perPage := l.PerPage()
	pageCount := (len(codes) + perPage - 1) / perPage
	width := 2*l.Margin + l.Cols*cell + (l.Cols-1)*l.Gap
	height := 2*l.Margin + l.Rows*cell + (l.Rows-1)*l.Gap
	if l.Captions {
		height += captionHeight
	}

	pages := make([]image.Image, 0, pageCount)
	for p := 0; p < pageCount; p++ {
		page := image.NewRGBA(image.Rect(0, 0, width, height))
		draw.Draw(page, page.Bounds(), image.White, image.Point{}, draw.Src)

		first := p * perPage
		last := first + perPage
		if last > len(codes) {
			last = len(codes)
		}
		for i := first; i < last; i++ {
			slot := i - first
			x := l.Margin + (slot%l.Cols)*(cell+l.Gap)
			y := l.Margin + (slot/l.Cols)*(cell+l.Gap)
			b := codes[i].Bounds()
			// Center smaller codes in their cell.
			dst := image.Rect(x+(cell-b.Dx())/2, y+(cell-b.Dy())/2, x+cell, y+cell)
			draw.Draw(page, dst, codes[i], b.Min, draw.Src)
		}

		if l.Captions {
			caption := fmt.Sprintf("page %d/%d  codes %d-%d of %d", p+1, pageCount, first+1, last, len(codes))
			if l.Title != "" {
				caption = l.Title + "  " + caption
			}
			drawCaption(page, caption, l.Margin, height-l.Margin/2)
		}
		pages = append(pages, page)
	}
	return pages, nil
}

func drawCaption(dst *image.RGBA, text string, x, y int) {
	d := font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(color.Black),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(text)
}
