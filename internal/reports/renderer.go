// Package reports renders deputy activity reports to PDF files and
// keeps a log of everything rendered.
package reports

import (
	"path/filepath"

	"github.com/go-pdf/fpdf"

	"github.com/politreg/deputy-portal/internal/dto/request"
)

const reportFont = "DejaVuSans"

// Config locates the media directory the PDFs land in and the public
// base URL they are served from. FontDir points at the DejaVu TTF
// files; when empty the renderer falls back to the built-in Helvetica
// with a cp1251 translation, which is enough for Cyrillic text.
type Config struct {
	MediaDir string
	BaseURL  string
	FontDir  string
}

// Renderer produces one A4 portrait PDF per report payload.
type Renderer struct {
	fontDir string
}

func NewRenderer(cfg Config) *Renderer {
	return &Renderer{fontDir: cfg.FontDir}
}

// Render writes the report to path. The layout is a centered title, an
// optional period line and one heading-plus-body block per section.
func (r *Renderer) Render(req *request.RenderReport, path string) error {
	pdf := fpdf.New("P", "mm", "A4", "")

	family := "Helvetica"
	tr := pdf.UnicodeTranslatorFromDescriptor("cp1251")
	if r.fontDir != "" {
		family = reportFont
		pdf.AddUTF8Font(reportFont, "", filepath.Join(r.fontDir, "DejaVuSans.ttf"))
		pdf.AddUTF8Font(reportFont, "B", filepath.Join(r.fontDir, "DejaVuSans-Bold.ttf"))
		tr = func(s string) string { return s }
	}

	pdf.SetTitle(req.Title, r.fontDir != "")
	pdf.AddPage()

	pdf.SetFont(family, "B", 16)
	pdf.MultiCell(0, 9, tr(req.Title), "", "C", false)
	if req.Period != "" {
		pdf.SetFont(family, "", 11)
		pdf.MultiCell(0, 6, tr(req.Period), "", "C", false)
	}
	pdf.Ln(6)

	for _, section := range req.Sections {
		pdf.SetFont(family, "B", 13)
		pdf.MultiCell(0, 7, tr(section.Heading), "", "L", false)
		pdf.SetFont(family, "", 11)
		pdf.MultiCell(0, 6, tr(section.Body), "", "L", false)
		pdf.Ln(4)
	}

	return pdf.OutputFileAndClose(path)
}
