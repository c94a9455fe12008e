// Package converter is the public entry point for turning a PDF into an
// editable Word document.
package converter

import (
	"context"

	"github.com/Excalibur9527/pdfOcr2Word/internal/config"
	"github.com/Excalibur9527/pdfOcr2Word/internal/domain"
	"github.com/Excalibur9527/pdfOcr2Word/internal/pipeline"
)

// Re-export the run types for the public API.
type (
	Options      = domain.Options
	Mode         = domain.Mode
	EngineKind   = domain.EngineKind
	ProgressFunc = domain.ProgressFunc
)

// Mode and engine constants
const (
	ModeOCR  = domain.ModeOCR
	ModeText = domain.ModeText
	ModeMac  = domain.ModeMac

	EngineTesseract = domain.EngineTesseract
	EngineGemini    = domain.EngineGemini
)

// DefaultOptions returns the library defaults.
func DefaultOptions() Options {
	return domain.DefaultOptions()
}

// Client converts PDFs under one fixed Options value. Engine instances
// are cached inside the client and reused across Convert calls.
type Client struct {
	conv *pipeline.Converter
}

// New creates a client, validating the options.
func New(opts Options) (*Client, error) {
	if err := config.Validate(opts); err != nil {
		return nil, err
	}
	return &Client{conv: pipeline.New(opts)}, nil
}

// Convert runs one conversion and returns the absolute path of the
// saved .docx. progress may be nil; when set it is called once with
// completed=0 before work starts and once per completed page.
func (c *Client) Convert(ctx context.Context, inputPDF, outputDocx string, progress ProgressFunc) (string, error) {
	return c.conv.Convert(ctx, inputPDF, outputDocx, progress)
}

// Close releases cached engine resources.
func (c *Client) Close() error {
	return c.conv.Close()
}
