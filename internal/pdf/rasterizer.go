package pdf

import (
	"context"
	"fmt"
	"image/png"
	"os"
	"path/filepath"

	"github.com/gen2brain/go-fitz"

	"github.com/Excalibur9527/pdfOcr2Word/internal/domain"
)

// Rasterizer renders PDF pages to images using go-fitz (MuPDF).
type Rasterizer struct {
	tempDir string
}

// NewRasterizer creates a new rasterizer instance
func NewRasterizer() *Rasterizer {
	return &Rasterizer{}
}

// Render converts every page of the PDF at pdfPath into a PNG rendered
// at the given resolution. Pages come back in document order; a source
// with zero pages yields domain.ErrEmptySource.
func (r *Rasterizer) Render(ctx context.Context, pdfPath string, dpi int) ([]domain.Page, error) {
	if err := NewValidator().ValidatePDFPath(pdfPath); err != nil {
		return nil, err
	}

	doc, err := fitz.New(pdfPath)
	if err != nil {
		return nil, domain.ConversionError("failed to open PDF", err)
	}
	defer doc.Close()

	pageCount := doc.NumPage()
	if pageCount == 0 {
		return nil, domain.ConversionError("rasterization produced no pages", domain.ErrEmptySource)
	}

	tempDir, err := os.MkdirTemp("", "pdfocr2word-*")
	if err != nil {
		return nil, domain.IOError("failed to create temp directory", err)
	}
	r.tempDir = tempDir

	pages, err := r.renderPages(ctx, doc, pageCount, dpi)
	if err != nil {
		r.Cleanup()
		return nil, err
	}
	return pages, nil
}

func (r *Rasterizer) renderPages(ctx context.Context, doc *fitz.Document, pageCount, dpi int) ([]domain.Page, error) {
	pages := make([]domain.Page, 0, pageCount)

	for pageNum := 0; pageNum < pageCount; pageNum++ {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		img, err := doc.ImageDPI(pageNum, float64(dpi))
		if err != nil {
			return nil, domain.ConversionError(fmt.Sprintf("failed to render page %d", pageNum+1), err)
		}

		outputPath := filepath.Join(r.tempDir, fmt.Sprintf("page_%04d.png", pageNum+1))
		outputFile, err := os.Create(outputPath)
		if err != nil {
			return nil, domain.IOError(fmt.Sprintf("failed to create image file for page %d", pageNum+1), err)
		}

		err = png.Encode(outputFile, img)
		outputFile.Close()
		if err != nil {
			return nil, domain.ConversionError(fmt.Sprintf("failed to encode page %d as PNG", pageNum+1), err)
		}

		pages = append(pages, domain.Page{
			Index:     pageNum + 1,
			ImagePath: outputPath,
		})
	}

	return pages, nil
}

// Cleanup removes the rendered page images
func (r *Rasterizer) Cleanup() error {
	if r.tempDir == "" {
		return nil
	}
	err := os.RemoveAll(r.tempDir)
	r.tempDir = ""
	if err != nil {
		return domain.IOError("failed to remove temp directory", err)
	}
	return nil
}
