package document

import "strings"

// Formatos de página soportados.
const (
	FormatA4     = "A4"
	FormatLetter = "Letter"
)

// PageOptions formato y márgenes (en milímetros) del PDF.
type PageOptions struct {
	Format          string
	PrintBackground bool
	MarginTop       float64
	MarginRight     float64
	MarginBottom    float64
	MarginLeft      float64
}

// DefaultPageOptions A4 con fondo y márgenes 20/15/20/15 mm.
func DefaultPageOptions() PageOptions {
	return PageOptions{
		Format:          FormatA4,
		PrintBackground: true,
		MarginTop:       20,
		MarginRight:     15,
		MarginBottom:    20,
		MarginLeft:      15,
	}
}

// PaperSizeMM ancho y alto del papel en milímetros; formatos desconocidos caen en A4.
func (o PageOptions) PaperSizeMM() (width, height float64) {
	if strings.EqualFold(o.Format, FormatLetter) {
		return 215.9, 279.4
	}
	return 210, 297
}

// MMToInches convierte milímetros a pulgadas.
func MMToInches(mm float64) float64 {
	return mm / 25.4
}
