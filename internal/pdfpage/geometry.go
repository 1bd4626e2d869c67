// Package pdfpage turns a full-page template export into a 6x4in label page.
package pdfpage

import (
	"fmt"
	"strconv"
)

const (
	// label stock, in points
	LabelWidth  = 432
	LabelHeight = 288

	// US Letter height, used when a page carries no media box
	defaultTop = 792
)

type Settings struct {
	Scale  float64
	X, Y   float64
	Rotate bool
}

// Placement is what gets written into the page: a content matrix
// [a b c d e f], a new media box [llx lly urx ury] and extra rotation.
type Placement struct {
	Matrix   [6]float64
	MediaBox [4]float64
	Rotate   int
}

// Place keeps the top-left 6x4in of the page after scaling the content and
// shifting it by (X, Y).
func Place(s Settings, mediaTop float64) Placement {
	scale := s.Scale
	if scale <= 0 {
		scale = 1
	}
	p := Placement{
		Matrix:   [6]float64{scale, 0, 0, scale, s.X, s.Y},
		MediaBox: [4]float64{0, mediaTop - LabelHeight, LabelWidth, mediaTop},
	}
	if s.Rotate {
		p.Rotate = 90
	}
	return p
}

func num(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func (p Placement) ContentPrefix() []byte {
	m := p.Matrix
	return []byte(fmt.Sprintf("q %s %s %s %s %s %s cm\n", num(m[0]), num(m[1]), num(m[2]), num(m[3]), num(m[4]), num(m[5])))
}

func (p Placement) ContentSuffix() []byte {
	return []byte("\nQ\n")
}
