package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/go-pdf/fpdf"
	"golang.org/x/text/encoding/charmap"
)

// Document is the renderer-neutral form of an exported entry.
type Document struct {
	Title  string
	Blocks []string
}

type Renderer interface {
	Render(w io.Writer, doc Document) error
}

const (
	defaultFontFamily = "Arial"
	defaultFontSize   = 12
	lineHeight        = 10
)

// PDFRenderer writes documents with the standard PDF core fonts. Core fonts
// only cover Windows-1252, so every other rune is replaced with '?'.
type PDFRenderer struct {
	FontSize    float64
	Compression bool
}

func NewPDFRenderer() *PDFRenderer {
	return &PDFRenderer{
		FontSize:    defaultFontSize,
		Compression: true,
	}
}

func (r *PDFRenderer) Render(w io.Writer, doc Document) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetCompression(r.Compression)
	pdf.SetTitle(doc.Title, true)
	pdf.SetCreator("rss-pdf", false)
	pdf.AddPage()
	pdf.SetFont(defaultFontFamily, "", r.FontSize)

	for _, block := range doc.Blocks {
		pdf.MultiCell(0, lineHeight, EncodeLatin(block), "", "", false)
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("failed to render PDF: %w", err)
	}
	return nil
}

// EncodeLatin converts s to the Windows-1252 bytes the core fonts expect.
// Runes without a Windows-1252 code point become '?'.
func EncodeLatin(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if c, ok := charmap.Windows1252.EncodeRune(r); ok {
			b.WriteByte(c)
		} else {
			b.WriteByte('?')
		}
	}
	return b.String()
}
