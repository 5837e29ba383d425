// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"errors"
	"fmt"
	"io"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// PdfcpuWriter writes page images into a new PDF using pdfcpu's image
// import. Each page is sized to its image.
type PdfcpuWriter struct{}

// NewPdfcpuWriter returns a writer that keeps pdfcpu from creating its
// per-user configuration directory.
func NewPdfcpuWriter() *PdfcpuWriter {
	api.DisableConfigDir()
	return &PdfcpuWriter{}
}

// WritePDF writes one page per entry of pages, in order, to w.
func (p *PdfcpuWriter) WritePDF(w io.Writer, pages []io.Reader) error {
	if len(pages) == 0 {
		return errors.New("no pages to write")
	}

	imp := pdfcpu.DefaultImportConfig()
	conf := model.NewDefaultConfiguration()

	if err := api.ImportImages(nil, w, pages, imp, conf); err != nil {
		return fmt.Errorf("importing %d pages with pdfcpu: %w", len(pages), err)
	}
	return nil
}
