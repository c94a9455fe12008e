package domain

import "runtime"

// Mode selects how page text is obtained from the source PDF.
type Mode string

const (
	// ModeOCR rasterizes pages and runs them through an OCR engine.
	ModeOCR Mode = "ocr"
	// ModeText reads the PDF's embedded text layer directly, no OCR.
	ModeText Mode = "text"
	// ModeMac uses the platform-native Vision OCR available on macOS.
	ModeMac Mode = "mac"
)

// EngineKind selects the OCR backend used in ModeOCR.
type EngineKind string

const (
	EngineTesseract EngineKind = "tesseract"
	EngineGemini    EngineKind = "gemini"
	EngineVision    EngineKind = "vision"
)

// Page is one page input produced by the rasterizer or the text-layer
// reader. Exactly one of ImagePath and Text is populated, depending on
// the mode. Index is 1-based and immutable once produced.
type Page struct {
	Index     int
	ImagePath string // path to the rendered page image (OCR modes)
	Text      string // embedded text-layer content (text mode)
}

// PageResult pairs a page index with the raw text recognized for it.
// A completed run holds exactly one result per page, indices 1..N.
type PageResult struct {
	Index   int
	RawText string
}

// ProgressFunc receives completion progress during a run. It is invoked
// once with completed=0 before any work starts and once per completed
// page thereafter; completed is non-decreasing and total never changes.
type ProgressFunc func(completed, total int)

// Options parameterizes one conversion run. A run never mutates its
// Options; independent runs carry independent Options values.
type Options struct {
	Mode         Mode
	Engine       EngineKind
	Language     string   // engine-specific language/model code
	DPI          int      // rasterization resolution
	Workers      int      // worker bound; 0 means NumCPU
	RemoveTokens []string // header/footer tokens stripped in text mode
	AutoFormat   bool     // paragraph reconstruction toggle
	FontName     string   // document default font (Latin and east-Asian)
	FontSizePt   int
}

// DefaultOptions returns the defaults used by the CLI.
func DefaultOptions() Options {
	return Options{
		Mode:       ModeOCR,
		Engine:     EngineTesseract,
		DPI:        300,
		AutoFormat: true,
		FontName:   "SimSun",
		FontSizePt: 12,
	}
}

// Normalize fills in derived defaults: the per-engine language code and
// the worker bound. The "no explicit bound" setting resolves to the
// machine's parallelism rather than staying a magic zero.
func (o *Options) Normalize() {
	if o.Language == "" {
		switch o.Engine {
		case EngineGemini:
			o.Language = "zh"
		default:
			o.Language = "chi_sim"
		}
	}
	if o.Workers <= 0 {
		o.Workers = runtime.NumCPU()
	}
	if o.DPI <= 0 {
		o.DPI = 300
	}
	if o.FontSizePt <= 0 {
		o.FontSizePt = 12
	}
	if o.FontName == "" {
		o.FontName = "SimSun"
	}
}
