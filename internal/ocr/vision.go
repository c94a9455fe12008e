package ocr

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/Excalibur9527/pdfOcr2Word/internal/domain"
)

// visionBinary is the helper CLI that exposes the macOS Vision
// framework's text recognition. There is no Go binding for Vision, so
// the engine shells out to it per page.
const visionBinary = "ocrit"

// Vision recognizes page images with the platform-native macOS Vision
// OCR. Each Recognize call is an independent process, so the engine is
// safe for concurrent workers.
type Vision struct {
	binPath   string
	languages []string
}

// NewVision creates a Vision engine. A missing helper binary surfaces
// as domain.ErrEngineUnavailable.
func NewVision() (*Vision, error) {
	binPath, err := exec.LookPath(visionBinary)
	if err != nil {
		return nil, domain.EngineError(
			fmt.Sprintf("%s not found in PATH (install it to use mac mode)", visionBinary),
			domain.ErrEngineUnavailable)
	}
	return &Vision{
		binPath:   binPath,
		languages: []string{"zh-Hans", "en-US"},
	}, nil
}

// Recognize runs the helper on one page image and returns its output.
func (v *Vision) Recognize(ctx context.Context, imagePath string) (string, error) {
	args := make([]string, 0, 1+2*len(v.languages))
	args = append(args, imagePath)
	for _, lang := range v.languages {
		args = append(args, "-l", lang)
	}

	cmd := exec.CommandContext(ctx, v.binPath, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		return "", domain.RecognitionError(
			fmt.Sprintf("vision OCR failed: %s", strings.TrimSpace(stderr.String())), err)
	}

	return stdout.String(), nil
}

// Close releases engine resources. Vision holds no long-lived state.
func (v *Vision) Close() error {
	return nil
}
