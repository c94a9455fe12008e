package ocr

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/Excalibur9527/pdfOcr2Word/internal/domain"
)

const (
	defaultGeminiModel = "gemini-1.5-flash"

	geminiMaxRetries     = 3
	geminiInitialBackoff = 1 * time.Second
	geminiMaxBackoff     = 30 * time.Second
)

const geminiPromptFormat = `You are an OCR engine. Transcribe ALL text visible in this scanned page image.

Rules:
- Output ONLY the transcribed text, with no commentary, headers, or markdown fences.
- Preserve the original line breaks and reading order.
- Do not translate; keep the text in its original language (%s).
- If the page contains no readable text, output nothing.`

// Gemini recognizes page images with a Google generative vision model.
// One client and model handle serves all workers; the genai client is
// safe for concurrent use.
type Gemini struct {
	client   *genai.Client
	model    *genai.GenerativeModel
	language string
	logger   *domain.Logger
}

// NewGemini creates a Gemini engine. The API key comes from the
// GEMINI_API_KEY environment variable; its absence is reported as
// domain.ErrEngineUnavailable at construction, which is the engine's
// first use.
func NewGemini(ctx context.Context, language string) (*Gemini, error) {
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		return nil, domain.EngineError("GEMINI_API_KEY not set", domain.ErrEngineUnavailable)
	}

	modelName := os.Getenv("GEMINI_MODEL")
	if modelName == "" {
		modelName = defaultGeminiModel
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, domain.EngineError("failed to create Gemini client", err)
	}

	model := client.GenerativeModel(modelName)
	model.SetTemperature(0)

	return &Gemini{
		client:   client,
		model:    model,
		language: language,
		logger:   domain.DefaultLogger.WithPrefix("gemini"),
	}, nil
}

// Recognize uploads one page image and returns the model's transcription.
func (g *Gemini) Recognize(ctx context.Context, imagePath string) (string, error) {
	imageData, err := os.ReadFile(imagePath)
	if err != nil {
		return "", domain.IOError(fmt.Sprintf("failed to read image %s", imagePath), err)
	}

	format := strings.TrimPrefix(strings.ToLower(filepath.Ext(imagePath)), ".")
	if format == "jpg" {
		format = "jpeg"
	}
	prompt := fmt.Sprintf(geminiPromptFormat, g.language)

	resp, err := g.generateWithBackoff(ctx, genai.ImageData(format, imageData), genai.Text(prompt))
	if err != nil {
		return "", domain.RecognitionError("gemini recognition failed", err)
	}

	return extractText(resp), nil
}

// generateWithBackoff retries transient API failures with exponential
// backoff. The increment-and-wait loop bails out as soon as the context
// is cancelled.
func (g *Gemini) generateWithBackoff(ctx context.Context, parts ...genai.Part) (*genai.GenerateContentResponse, error) {
	backoff := geminiInitialBackoff
	var lastErr error

	for attempt := 0; attempt <= geminiMaxRetries; attempt++ {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		resp, err := g.model.GenerateContent(ctx, parts...)
		if err == nil {
			return resp, nil
		}
		lastErr = err

		if attempt == geminiMaxRetries {
			break
		}

		g.logger.Warn("request failed (attempt %d/%d), retrying in %v: %v",
			attempt+1, geminiMaxRetries, backoff, err)

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(backoff):
		}

		backoff *= 2
		if backoff > geminiMaxBackoff {
			backoff = geminiMaxBackoff
		}
	}

	return nil, fmt.Errorf("request failed after %d retries: %w", geminiMaxRetries, lastErr)
}

// extractText concatenates the text parts of the first candidate.
func extractText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			sb.WriteString(string(txt))
		}
	}
	return strings.TrimSpace(sb.String())
}

// Close releases the underlying API client.
func (g *Gemini) Close() error {
	if g.client != nil {
		return g.client.Close()
	}
	return nil
}
