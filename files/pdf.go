package files

import (
	"errors"
	"math"
	"os"
	"strings"

	pdf "rsc.io/pdf"
)

// firstPageText returns the text layer of page 1 only. Pages without a text
// layer yield an empty string.
func firstPageText(filePath string) (string, error) {
	f, err := os.Open(filePath)
	if err != nil {
		return "", err
	}
	defer f.Close()

	st, err := f.Stat()
	if err != nil {
		return "", err
	}
	r, err := pdf.NewReader(f, st.Size())
	if err != nil {
		return "", err
	}
	if r.NumPage() < 1 {
		return "", errors.New("pdf sem páginas")
	}

	p := r.Page(1)
	if p.V.IsNull() {
		return "", nil
	}
	var buf strings.Builder
	var lastY float64
	for i, t := range p.Content().Text {
		// glyphs on a new baseline start a new line
		if i > 0 && math.Abs(t.Y-lastY) > t.FontSize/2 {
			buf.WriteByte('\n')
		}
		buf.WriteString(t.S)
		lastY = t.Y
		if buf.Len() >= 4*MaxExcerptChars {
			break
		}
	}
	return buf.String(), nil
}
