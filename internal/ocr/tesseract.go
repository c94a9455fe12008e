// Package ocr provides the recognition engines used to obtain text from
// rendered page images: local Tesseract via gosseract, Google Gemini
// vision models, and the macOS Vision framework through a helper binary.
//
// The Tesseract backend requires the native library to be installed. On
// macOS:
//
//	brew install tesseract tesseract-lang
//
// On Ubuntu/Debian:
//
//	apt-get install tesseract-ocr tesseract-ocr-chi-sim
package ocr

import (
	"context"
	"fmt"

	"github.com/otiai10/gosseract/v2"

	"github.com/Excalibur9527/pdfOcr2Word/internal/domain"
)

// Tesseract recognizes page images with the local Tesseract engine.
// gosseract clients are not reentrant, so each Recognize call runs on
// its own short-lived client; that makes the engine itself safe to call
// from any number of workers.
type Tesseract struct {
	language string
}

// NewTesseract creates a Tesseract engine for the given language code
// (e.g. "chi_sim", "eng", "chi_sim+eng").
func NewTesseract(language string) *Tesseract {
	if language == "" {
		language = "chi_sim"
	}
	return &Tesseract{language: language}
}

// Recognize runs OCR on one page image and returns the raw text.
func (t *Tesseract) Recognize(ctx context.Context, imagePath string) (string, error) {
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	default:
	}

	client := gosseract.NewClient()
	defer client.Close()

	if err := client.SetLanguage(t.language); err != nil {
		return "", domain.EngineError(fmt.Sprintf("tesseract language %q not installed", t.language), err)
	}
	if err := client.SetPageSegMode(gosseract.PSM_AUTO); err != nil {
		return "", domain.EngineError("failed to set page segmentation mode", err)
	}
	if err := client.SetImage(imagePath); err != nil {
		return "", domain.RecognitionError(fmt.Sprintf("failed to load image %s", imagePath), err)
	}

	text, err := client.Text()
	if err != nil {
		return "", domain.RecognitionError("tesseract recognition failed", err)
	}
	return text, nil
}

// Close releases engine resources. Tesseract holds no long-lived state.
func (t *Tesseract) Close() error {
	return nil
}
