package converter

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"

	"darkiv/converter/assemble"
	"darkiv/converter/magick"
	"darkiv/converter/poppler"
)

// Assembler backends selectable via Options.Assembler
const (
	AssemblerImg2pdf = "img2pdf"
	AssemblerPDFCPU  = "pdfcpu"
)

// ErrNoImages is returned when rasterization produces no page images.
var ErrNoImages = errors.New("no images were extracted from the PDF")

// Options holds the configuration for one conversion run
type Options struct {
	InputFile  string
	OutputFile string
	Assembler  string   // "img2pdf" or "pdfcpu"
	Progress   Progress // optional, receives inversion progress events
}

// Progress receives (current, total) events while pages are inverted.
// It is only invoked when the total page count is known.
type Progress func(current, total int)

// Rasterizer converts a PDF into one image file per page inside dir,
// returning the image paths in page order.
type Rasterizer interface {
	Rasterize(pdfPath, dir string) ([]string, error)
}

// Inverter produces an inverted, alpha-free copy of src at dst.
type Inverter interface {
	Invert(src, dst string) error
}

// Assembler packs the ordered images into a single PDF at dest.
type Assembler interface {
	Assemble(images []string, dest string) error
}

// PageCounter reports a document's page count, best effort.
// The second return is false when the count could not be determined.
type PageCounter interface {
	PageCount(pdfPath string) (int, bool)
}

// Pipeline runs the rasterize -> invert -> assemble conversion.
// Fields are exported so tests can substitute fake collaborators.
type Pipeline struct {
	Rasterizer Rasterizer
	Inverter   Inverter
	Assembler  Assembler
	Counter    PageCounter
	Progress   Progress
}

// New builds a Pipeline with the external-tool collaborators
func New(opts Options) (*Pipeline, error) {
	var asm Assembler
	switch opts.Assembler {
	case "", AssemblerImg2pdf:
		asm = assemble.Img2pdf{}
	case AssemblerPDFCPU:
		asm = assemble.PDFCPU{DPI: poppler.DPI}
	default:
		return nil, fmt.Errorf("unknown assembler: %s (must be '%s' or '%s')",
			opts.Assembler, AssemblerImg2pdf, AssemblerPDFCPU)
	}

	inv, err := magick.New()
	if err != nil {
		return nil, err
	}

	return &Pipeline{
		Rasterizer: poppler.Renderer{},
		Inverter:   inv,
		Assembler:  asm,
		Counter:    poppler.Counter{},
		Progress:   opts.Progress,
	}, nil
}

// Convert performs the PDF to dark mode conversion described by opts
func Convert(opts Options) error {
	p, err := New(opts)
	if err != nil {
		return err
	}
	return p.Convert(opts.InputFile, opts.OutputFile)
}

// Convert runs the pipeline on inputPath, writing the result to
// outputPath. Intermediate images live in a temporary directory that
// is removed on every return path.
func (p *Pipeline) Convert(inputPath, outputPath string) error {
	tempDir, err := os.MkdirTemp("", "darkiv-")
	if err != nil {
		return fmt.Errorf("failed to create temp directory: %w", err)
	}
	defer os.RemoveAll(tempDir)

	logrus.Info("extracting PDF pages as images...")
	pages, err := p.Rasterizer.Rasterize(inputPath, tempDir)
	if err != nil {
		return fmt.Errorf("failed to rasterize PDF: %w", err)
	}
	if len(pages) == 0 {
		return ErrNoImages
	}

	// Best-effort lookup, used only to drive the progress display.
	total, known := 0, false
	if p.Counter != nil {
		total, known = p.Counter.PageCount(inputPath)
	}

	logrus.Info("applying dark mode...")
	inverted := make([]string, 0, len(pages))
	for i, page := range pages {
		dst := filepath.Join(filepath.Dir(page), "dark-"+filepath.Base(page))
		if err := p.Inverter.Invert(page, dst); err != nil {
			return fmt.Errorf("failed to invert page %d: %w", i+1, err)
		}
		inverted = append(inverted, dst)
		if p.Progress != nil && known {
			p.Progress(i+1, total)
		}
	}

	logrus.Info("combining inverted pages into PDF...")
	if err := p.Assembler.Assemble(inverted, outputPath); err != nil {
		return fmt.Errorf("failed to assemble PDF: %w", err)
	}

	return nil
}

// DefaultOutputPath derives the output filename from the input:
// "paper.pdf" becomes "paper_darkiv.pdf" in the same directory.
func DefaultOutputPath(inputPath string) string {
	stem := strings.TrimSuffix(inputPath, filepath.Ext(inputPath))
	return stem + "_darkiv.pdf"
}
