// Package assemble packs ordered page images into a single PDF.
//
// Two backends exist: Img2pdf shells out to the img2pdf tool, which
// embeds the images losslessly; PDFCPU builds the document in process
// with the pdfcpu library and needs no external packer.
package assemble

import (
	"fmt"
	"os/exec"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/sirupsen/logrus"
)

// Img2pdf assembles a PDF with the external img2pdf tool
type Img2pdf struct{}

// Assemble invokes img2pdf once with all images in page order
func (Img2pdf) Assemble(images []string, dest string) error {
	cmd := exec.Command("img2pdf", img2pdfArgs(images, dest)...)

	logrus.Debugf("running: %s", strings.Join(cmd.Args, " "))
	if output, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("img2pdf failed: %w\nOutput: %s", err, string(output))
	}

	return nil
}

func img2pdfArgs(images []string, dest string) []string {
	args := []string{"--output", dest}
	return append(args, images...)
}

// PDFCPU assembles a PDF in process using pdfcpu's image import
type PDFCPU struct {
	DPI int // image resolution; pdfcpu's default when zero
}

// Assemble imports the images into a new PDF at dest
func (a PDFCPU) Assemble(images []string, dest string) error {
	imp := pdfcpu.DefaultImportConfig()
	if a.DPI > 0 {
		imp.DPI = a.DPI
	}

	logrus.Debugf("importing %d image(s) with pdfcpu", len(images))
	if err := api.ImportImagesFile(images, dest, imp, nil); err != nil {
		return fmt.Errorf("pdfcpu import failed: %w", err)
	}

	return nil
}
