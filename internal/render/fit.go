package render

import (
	"strings"

	"github.com/pkg/errors"
)

// FittedLine is one caption or title line with the font size chosen for it.
type FittedLine struct {
	Text  string
	Size  float64
	Width float64
}

// Measurer reports the rendered width of text at a font size.
type Measurer interface {
	Measure(text string, size float64) (float64, error)
}

// MeasureFunc adapts a function to Measurer.
type MeasureFunc func(text string, size float64) (float64, error)

func (f MeasureFunc) Measure(text string, size float64) (float64, error) {
	return f(text, size)
}

// Fit picks, for every line of text, the first size in sizes whose measured
// width is strictly below bound. When no size fits the last candidate is
// used. Lines are returned in input order with their text untouched.
func Fit(bound float64, text string, sizes []float64, m Measurer) ([]FittedLine, error) {
	if text == "" {
		return nil, errors.Wrap(ErrEmptyInput, "fit text")
	}
	if len(sizes) == 0 {
		return nil, errors.New("fit text: no font size candidates")
	}

	lines := strings.Split(text, "\n")
	fitted := make([]FittedLine, 0, len(lines))
	for _, line := range lines {
		fl, err := fitLine(bound, line, sizes, m)
		if err != nil {
			return nil, errors.Wrapf(err, "fit line %q", line)
		}
		fitted = append(fitted, fl)
	}
	return fitted, nil
}

func fitLine(bound float64, line string, sizes []float64, m Measurer) (FittedLine, error) {
	var last FittedLine
	for _, size := range sizes {
		w, err := m.Measure(line, size)
		if err != nil {
			return FittedLine{}, err
		}
		last = FittedLine{Text: line, Size: size, Width: w}
		if w < bound {
			return last, nil
		}
	}
	return last, nil
}
