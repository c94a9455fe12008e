package domain

import "context"

// Rasterizer renders a PDF into an ordered sequence of page images.
type Rasterizer interface {
	// Render produces one Page per PDF page, in page order, with
	// ImagePath pointing at a rendered image at the given resolution.
	Render(ctx context.Context, pdfPath string, dpi int) ([]Page, error)

	// Cleanup removes temporary images created during rendering
	Cleanup() error
}

// TextLayerReader extracts embedded text from a PDF without rasterizing.
type TextLayerReader interface {
	// Pages returns one Page per PDF page, in page order, with Text
	// holding the page's text-layer content (empty for blank pages).
	Pages(ctx context.Context, pdfPath string) ([]Page, error)
}

// Engine recognizes text on a single page image. Implementations must
// be safe to call concurrently from multiple workers; backends that are
// not reentrant create one underlying instance per call.
type Engine interface {
	Recognize(ctx context.Context, imagePath string) (string, error)
	Close() error
}

// Assembler persists ordered page text blocks into a word-processing
// document with page breaks between pages.
type Assembler interface {
	AppendParagraph(text string)
	AppendPageBreak()
	Save(path string) (string, error)
}
