// Package pipeline sequences the conversion run: open and validate the
// source, materialize pages (raster images or text layer), recognize
// them, reconstruct paragraphs, and persist the Word document, with one
// unified progress signal across all modes.
package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Excalibur9527/pdfOcr2Word/internal/docx"
	"github.com/Excalibur9527/pdfOcr2Word/internal/domain"
	"github.com/Excalibur9527/pdfOcr2Word/internal/ocr"
	"github.com/Excalibur9527/pdfOcr2Word/internal/pdf"
	"github.com/Excalibur9527/pdfOcr2Word/internal/text"
)

// EngineProvider hands out recognition engines by backend and language.
type EngineProvider interface {
	Get(ctx context.Context, kind domain.EngineKind, language string) (domain.Engine, error)
}

// Converter orchestrates one or more conversion runs. Engines are
// cached across runs; everything else is per-run state.
type Converter struct {
	opts      domain.Options
	raster    domain.Rasterizer
	textLayer domain.TextLayerReader
	engines   EngineProvider
	logger    *domain.Logger
}

// New creates a converter wired to the real rasterizer, text-layer
// reader, and engine cache.
func New(opts domain.Options) *Converter {
	opts.Normalize()
	return &Converter{
		opts:      opts,
		raster:    pdf.NewRasterizer(),
		textLayer: pdf.NewTextLayer(),
		engines:   ocr.NewCache(),
		logger:    domain.DefaultLogger.WithPrefix("pipeline"),
	}
}

// NewWithDeps creates a converter with injected collaborators.
func NewWithDeps(opts domain.Options, raster domain.Rasterizer, textLayer domain.TextLayerReader, engines EngineProvider) *Converter {
	opts.Normalize()
	return &Converter{
		opts:      opts,
		raster:    raster,
		textLayer: textLayer,
		engines:   engines,
		logger:    domain.DefaultLogger.WithPrefix("pipeline"),
	}
}

// Close releases the cached engines.
func (c *Converter) Close() error {
	if cache, ok := c.engines.(*ocr.Cache); ok {
		return cache.Reset()
	}
	return nil
}

// Convert runs the full pipeline and returns the absolute path of the
// saved document. progress may be nil.
func (c *Converter) Convert(ctx context.Context, inputPath, outputPath string, progress domain.ProgressFunc) (string, error) {
	if err := pdf.NewValidator().ValidatePDFPath(inputPath); err != nil {
		return "", err
	}

	// The output directory is created before any recognition work so a
	// bad destination fails the run up front rather than after minutes
	// of OCR.
	absOutput, err := filepath.Abs(outputPath)
	if err != nil {
		return "", domain.IOError("failed to resolve output path", err)
	}
	if err := os.MkdirAll(filepath.Dir(absOutput), 0o755); err != nil {
		return "", domain.IOError("failed to create output directory", err)
	}

	var pageTexts []string
	switch c.opts.Mode {
	case domain.ModeText:
		pageTexts, err = c.extractTextLayer(ctx, inputPath, progress)
	default:
		pageTexts, err = c.recognizePages(ctx, inputPath, progress)
	}
	if err != nil {
		return "", err
	}

	return c.persist(pageTexts, absOutput)
}

// recognizePages rasterizes the source and runs the configured engine
// over every page through the worker pool.
func (c *Converter) recognizePages(ctx context.Context, inputPath string, progress domain.ProgressFunc) ([]string, error) {
	c.logger.Info("rendering %s at %d dpi", inputPath, c.opts.DPI)
	pages, err := c.raster.Render(ctx, inputPath, c.opts.DPI)
	if err != nil {
		return nil, err
	}
	defer c.raster.Cleanup()

	if len(pages) == 0 {
		return nil, domain.ConversionError("rasterization produced no pages", domain.ErrEmptySource)
	}
	c.logger.Info("rendered %d pages", len(pages))

	kind := c.opts.Engine
	if c.opts.Mode == domain.ModeMac {
		kind = domain.EngineVision
	}
	engine, err := c.engines.Get(ctx, kind, c.opts.Language)
	if err != nil {
		return nil, err
	}

	recognize := func(ctx context.Context, page domain.Page) (string, error) {
		return engine.Recognize(ctx, page.ImagePath)
	}

	results, err := ProcessPages(ctx, pages, recognize, c.opts.Workers, progress)
	if err != nil {
		return nil, err
	}

	reconstructor := &text.Reconstructor{AutoFormat: true}
	texts := make([]string, len(results))
	for i, res := range results {
		if c.opts.AutoFormat {
			texts[i] = reconstructor.ReconstructPage(res.RawText)
		} else {
			texts[i] = res.RawText
		}
	}
	return texts, nil
}

// extractTextLayer reads embedded text page by page. The source library
// already buffers page access, so extraction runs inline rather than
// through the pool, with the same progress contract.
func (c *Converter) extractTextLayer(ctx context.Context, inputPath string, progress domain.ProgressFunc) ([]string, error) {
	c.logger.Info("extracting text layer from %s", inputPath)
	pages, err := c.textLayer.Pages(ctx, inputPath)
	if err != nil {
		return nil, err
	}
	if len(pages) == 0 {
		return nil, domain.ConversionError("text layer has no pages", domain.ErrEmptySource)
	}

	total := len(pages)
	if progress != nil {
		progress(0, total)
	}

	reconstructor := &text.Reconstructor{
		RemoveTokens: c.opts.RemoveTokens,
		AutoFormat:   c.opts.AutoFormat,
	}

	texts := make([]string, total)
	for i, page := range pages {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		texts[i] = reconstructor.ReconstructPage(page.Text)

		if progress != nil {
			progress(i+1, total)
		}
	}
	return texts, nil
}

// persist writes the page texts into a .docx: one paragraph block per
// page, a page break after every page but the last.
func (c *Converter) persist(pageTexts []string, outputPath string) (string, error) {
	var doc domain.Assembler = docx.NewDocument(c.opts.FontName, c.opts.FontSizePt)
	for i, pageText := range pageTexts {
		doc.AppendParagraph(pageText)
		if i != len(pageTexts)-1 {
			doc.AppendPageBreak()
		}
	}

	savedPath, err := doc.Save(outputPath)
	if err != nil {
		return "", err
	}
	c.logger.Info("saved %s (%d pages)", savedPath, len(pageTexts))
	return savedPath, nil
}

// helper used by the CLI to describe a run.
func (c *Converter) String() string {
	return fmt.Sprintf("mode=%s engine=%s lang=%s dpi=%d workers=%d",
		c.opts.Mode, c.opts.Engine, c.opts.Language, c.opts.DPI, c.opts.Workers)
}
