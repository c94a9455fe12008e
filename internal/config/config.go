// Package config loads conversion defaults from an optional YAML file
// and the environment.
package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/Excalibur9527/pdfOcr2Word/internal/domain"
)

// File mirrors the YAML config file. Every field is optional; zero
// values leave the corresponding default untouched.
type File struct {
	Mode         string   `yaml:"mode"`
	Engine       string   `yaml:"engine"`
	Language     string   `yaml:"language"`
	DPI          int      `yaml:"dpi"`
	Workers      int      `yaml:"workers"`
	FontName     string   `yaml:"font_name"`
	FontSize     int      `yaml:"font_size"`
	AutoFormat   *bool    `yaml:"auto_format"`
	RemoveTokens []string `yaml:"remove_tokens"`
}

// Load reads and parses a YAML config file.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, domain.ConfigError(fmt.Sprintf("failed to read config file %s", path), err)
	}

	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, domain.ConfigError(fmt.Sprintf("failed to parse config file %s", path), err)
	}
	return &f, nil
}

// Apply overlays the file's settings onto opts.
func (f *File) Apply(opts *domain.Options) {
	if f.Mode != "" {
		opts.Mode = domain.Mode(f.Mode)
	}
	if f.Engine != "" {
		opts.Engine = domain.EngineKind(f.Engine)
	}
	if f.Language != "" {
		opts.Language = f.Language
	}
	if f.DPI > 0 {
		opts.DPI = f.DPI
	}
	if f.Workers > 0 {
		opts.Workers = f.Workers
	}
	if f.FontName != "" {
		opts.FontName = f.FontName
	}
	if f.FontSize > 0 {
		opts.FontSizePt = f.FontSize
	}
	if f.AutoFormat != nil {
		opts.AutoFormat = *f.AutoFormat
	}
	if len(f.RemoveTokens) > 0 {
		opts.RemoveTokens = append(opts.RemoveTokens, f.RemoveTokens...)
	}
}

// ApplyEnv overlays environment overrides (OCR2WORD_ENGINE,
// OCR2WORD_LANGUAGE, OCR2WORD_FONT, OCR2WORD_DPI) onto opts. Env beats
// the config file but not explicit CLI flags.
func ApplyEnv(opts *domain.Options) {
	if v := os.Getenv("OCR2WORD_ENGINE"); v != "" {
		opts.Engine = domain.EngineKind(v)
	}
	if v := os.Getenv("OCR2WORD_LANGUAGE"); v != "" {
		opts.Language = v
	}
	if v := os.Getenv("OCR2WORD_FONT"); v != "" {
		opts.FontName = v
	}
	if v := os.Getenv("OCR2WORD_DPI"); v != "" {
		if dpi, err := strconv.Atoi(v); err == nil && dpi > 0 {
			opts.DPI = dpi
		}
	}
}

// Validate rejects unknown mode and engine values.
func Validate(opts domain.Options) error {
	switch opts.Mode {
	case domain.ModeOCR, domain.ModeText, domain.ModeMac:
	default:
		return domain.ConfigError(fmt.Sprintf("unknown mode %q", opts.Mode), nil)
	}
	switch opts.Engine {
	case domain.EngineTesseract, domain.EngineGemini, domain.EngineVision:
	default:
		return domain.ConfigError(fmt.Sprintf("unknown engine %q", opts.Engine), nil)
	}
	return nil
}
