// Package preflight verifies that the external tools the pipeline
// depends on are installed before any conversion work starts.
package preflight

import (
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strings"

	"github.com/sirupsen/logrus"
)

// Tool describes one external dependency and how to probe for it
type Tool struct {
	Name       string   // display name
	Candidates []string // binary names to try, first hit wins
	ProbeArgs  []string // harmless arguments, typically a version query
	Install    string   // human-readable installation guidance
}

// Required returns the tools a conversion run needs. The img2pdf
// packer is only required when it is the selected assembler backend.
func Required(assembler string) []Tool {
	tools := []Tool{
		{
			Name:       "pdftocairo",
			Candidates: []string{"pdftocairo"},
			ProbeArgs:  []string{"-v"},
			Install:    "macOS: brew install poppler / Ubuntu: sudo apt install poppler-utils",
		},
		{
			Name:       "ImageMagick",
			Candidates: []string{"magick", "convert"},
			ProbeArgs:  []string{"-version"},
			Install:    "macOS: brew install imagemagick / Ubuntu: sudo apt install imagemagick",
		},
	}

	if assembler != "pdfcpu" {
		tools = append(tools, Tool{
			Name:       "img2pdf",
			Candidates: []string{"img2pdf"},
			ProbeArgs:  []string{"--version"},
			Install:    "macOS: brew install img2pdf / Ubuntu: sudo apt install img2pdf / or: pip install img2pdf",
		})
	}

	return tools
}

// Optional returns tools the pipeline can work without. pdfinfo only
// feeds the progress display.
func Optional() []Tool {
	return []Tool{
		{
			Name:       "pdfinfo",
			Candidates: []string{"pdfinfo"},
			ProbeArgs:  []string{"-v"},
			Install:    "macOS: brew install poppler / Ubuntu: sudo apt install poppler-utils",
		},
	}
}

// Check probes every tool and returns a *MissingError naming the ones
// that could not be invoked. It spawns probe processes but mutates no
// files.
func Check(tools []Tool) error {
	var missing []Tool
	for _, tool := range tools {
		if !tool.Available() {
			missing = append(missing, tool)
		}
	}
	if len(missing) > 0 {
		return &MissingError{Tools: missing}
	}
	return nil
}

// Available reports whether any of the tool's candidate binaries can
// be invoked.
func (t Tool) Available() bool {
	for _, bin := range t.Candidates {
		if probe(bin, t.ProbeArgs) {
			return true
		}
	}
	return false
}

// probe runs the binary with its harmless arguments. A non-zero exit
// still proves the tool exists; only a failure to launch counts as
// missing.
func probe(bin string, args []string) bool {
	if _, err := exec.LookPath(bin); err != nil {
		return false
	}

	cmd := exec.Command(bin, args...)
	cmd.Stdout = io.Discard
	cmd.Stderr = io.Discard

	logrus.Debugf("probing: %s %s", bin, strings.Join(args, " "))
	err := cmd.Run()
	if err == nil {
		return true
	}
	var exitErr *exec.ExitError
	return errors.As(err, &exitErr)
}

// MissingError reports the tools a probe run could not find,
// with installation guidance for each.
type MissingError struct {
	Tools []Tool
}

func (e *MissingError) Error() string {
	var b strings.Builder
	b.WriteString("missing required tools:")
	for _, tool := range e.Tools {
		fmt.Fprintf(&b, "\n  %s - install: %s", tool.Name, tool.Install)
	}
	return b.String()
}
