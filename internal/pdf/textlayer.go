package pdf

import (
	"context"
	"fmt"

	"github.com/gen2brain/go-fitz"

	"github.com/Excalibur9527/pdfOcr2Word/internal/domain"
)

// TextLayer reads embedded PDF text without rasterizing.
type TextLayer struct{}

// NewTextLayer creates a new text-layer reader
func NewTextLayer() *TextLayer {
	return &TextLayer{}
}

// Pages extracts the text layer of every page, in document order. Blank
// or image-only pages come back with empty Text so pagination survives.
func (t *TextLayer) Pages(ctx context.Context, pdfPath string) ([]domain.Page, error) {
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
		return nil, domain.ConversionError("text layer has no pages", domain.ErrEmptySource)
	}

	pages := make([]domain.Page, 0, pageCount)

	for pageNum := 0; pageNum < pageCount; pageNum++ {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		text, err := doc.Text(pageNum)
		if err != nil {
			return nil, domain.ConversionError(fmt.Sprintf("failed to read text layer of page %d", pageNum+1), err)
		}

		pages = append(pages, domain.Page{
			Index: pageNum + 1,
			Text:  text,
		})
	}

	return pages, nil
}
