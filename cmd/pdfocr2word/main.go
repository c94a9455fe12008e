package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/schollz/progressbar/v3"

	"github.com/Excalibur9527/pdfOcr2Word/internal/config"
	"github.com/Excalibur9527/pdfOcr2Word/internal/domain"
	"github.com/Excalibur9527/pdfOcr2Word/pkg/converter"
)

const version = "1.0.0"

// tokenList collects repeatable -remove-token flags.
type tokenList []string

func (t *tokenList) String() string { return strings.Join(*t, ",") }
func (t *tokenList) Set(v string) error {
	*t = append(*t, v)
	return nil
}

var (
	mode         string
	engine       string
	language     string
	dpi          int
	workers      int
	fontName     string
	fontSize     int
	noFormat     bool
	configPath   string
	removeTokens tokenList
	showVersion  bool
	verbose      bool
)

func init() {
	flag.StringVar(&mode, "mode", "ocr", "processing mode: ocr (rasterize + OCR), text (embedded text layer), mac (macOS Vision OCR)")
	flag.StringVar(&engine, "engine", "tesseract", "OCR engine for -mode ocr: tesseract or gemini")
	flag.StringVar(&language, "lang", "", "language/model code (tesseract: chi_sim, eng; gemini: zh, en); default depends on engine")
	flag.IntVar(&dpi, "dpi", 300, "rasterization resolution; higher is more accurate but slower")
	flag.IntVar(&workers, "workers", 0, "OCR worker bound; 0 sizes the pool to available CPUs")
	flag.StringVar(&fontName, "font-name", "SimSun", "output document font name")
	flag.IntVar(&fontSize, "font-size", 12, "output document font size in points")
	flag.BoolVar(&noFormat, "no-format", false, "disable paragraph reconstruction")
	flag.StringVar(&configPath, "config", "", "optional YAML config file with defaults")
	flag.Var(&removeTokens, "remove-token", "header/footer token to strip (text mode only, repeatable)")
	flag.BoolVar(&showVersion, "version", false, "show version information")
	flag.BoolVar(&verbose, "verbose", false, "enable verbose logging")
	flag.Usage = usage
}

func main() {
	flag.Parse()

	if showVersion {
		fmt.Printf("pdfocr2word version %s\n", version)
		os.Exit(0)
	}

	if flag.NArg() < 2 {
		fmt.Fprintf(os.Stderr, "Error: input PDF and output path required\n\n")
		usage()
		os.Exit(1)
	}
	inputPDF := flag.Arg(0)
	outputDocx := flag.Arg(1)

	// Load environment variables (GEMINI_API_KEY etc.)
	_ = godotenv.Load()

	opts := converter.DefaultOptions()
	if configPath != "" {
		fileCfg, err := config.Load(configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fileCfg.Apply(&opts)
	}
	config.ApplyEnv(&opts)
	applyFlags(&opts)

	client, err := converter.New(opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer client.Close()

	// Set up signal handling for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		fmt.Fprintln(os.Stderr, "\nReceived interrupt signal, shutting down...")
		cancel()
	}()

	fmt.Fprintf(os.Stderr, "Input PDF:  %s\n", inputPDF)
	fmt.Fprintf(os.Stderr, "Output:     %s\n", outputDocx)
	fmt.Fprintf(os.Stderr, "Mode:       %s\n", opts.Mode)
	if opts.Mode == converter.ModeOCR {
		fmt.Fprintf(os.Stderr, "Engine:     %s (%s)\n", opts.Engine, opts.Language)
	}

	var bar *progressbar.ProgressBar
	progress := func(completed, total int) {
		if bar == nil {
			bar = newBar(int64(total))
		}
		bar.ChangeMax64(int64(total))
		_ = bar.Set64(int64(completed))
	}

	startTime := time.Now()
	savedPath, err := client.Convert(ctx, inputPDF, outputDocx, progress)
	if bar != nil {
		_ = bar.Finish()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Conversion failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Fprintf(os.Stderr, "Done in %v\n", time.Since(startTime).Round(time.Second))
	fmt.Println(savedPath)
}

// applyFlags overlays explicitly-set flags onto opts. Flags beat both
// the defaults and the config file.
func applyFlags(opts *converter.Options) {
	set := make(map[string]bool)
	flag.Visit(func(f *flag.Flag) { set[f.Name] = true })

	if set["mode"] {
		opts.Mode = converter.Mode(mode)
	}
	if set["engine"] {
		opts.Engine = converter.EngineKind(engine)
	}
	if set["lang"] {
		opts.Language = language
	}
	if set["dpi"] {
		opts.DPI = dpi
	}
	if set["workers"] {
		opts.Workers = workers
	}
	if set["font-name"] {
		opts.FontName = fontName
	}
	if set["font-size"] {
		opts.FontSizePt = fontSize
	}
	if set["no-format"] {
		opts.AutoFormat = !noFormat
	}
	if set["remove-token"] {
		opts.RemoveTokens = append(opts.RemoveTokens, removeTokens...)
	}

	if verbose {
		domain.DefaultLogger = domain.NewLogger(domain.LogLevelDebug)
	}
}

func newBar(total int64) *progressbar.ProgressBar {
	return progressbar.NewOptions64(
		total,
		progressbar.OptionSetDescription("pages"),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionSetRenderBlankState(true),
		progressbar.OptionOnCompletion(func() {
			fmt.Fprint(os.Stderr, "\n")
		}),
	)
}

func usage() {
	fmt.Fprintf(os.Stderr, `pdfocr2word - convert a PDF into an editable Word document via OCR

Usage:
  pdfocr2word [options] <input.pdf> <output.docx>

Options:
  -mode <ocr|text|mac>     processing mode (default: ocr)
  -engine <name>           OCR engine: tesseract or gemini (default: tesseract)
  -lang <code>             language/model code (default: chi_sim for tesseract, zh for gemini)
  -dpi <n>                 rasterization resolution (default: 300)
  -workers <n>             worker bound, 0 = CPU count (default: 0)
  -remove-token <s>        strip a header/footer token in text mode (repeatable)
  -font-name <name>        output font (default: SimSun)
  -font-size <pt>          output font size (default: 12)
  -no-format               disable paragraph reconstruction
  -config <file>           YAML config file with defaults
  -verbose                 enable verbose logging
  -version                 show version information

Environment Variables:
  GEMINI_API_KEY           API key for the gemini engine
  GEMINI_MODEL             override the gemini model name (optional)
  OCR2WORD_ENGINE          default engine (overridden by -engine)
  OCR2WORD_LANGUAGE        default language code (overridden by -lang)
  OCR2WORD_FONT            default output font (overridden by -font-name)
  OCR2WORD_DPI             default resolution (overridden by -dpi)

Examples:
  pdfocr2word scan.pdf out.docx
  pdfocr2word -engine gemini -lang zh scan.pdf out.docx
  pdfocr2word -mode text -remove-token "Confidential" digital.pdf out.docx

`)
}
