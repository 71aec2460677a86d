// Package magick inverts page images by shelling out to ImageMagick.
package magick

import (
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
)

// Inverter applies the dark mode operation sequence with ImageMagick
type Inverter struct {
	bin string
}

// New locates the ImageMagick binary and returns an Inverter using it
func New() (*Inverter, error) {
	bin, err := find()
	if err != nil {
		return nil, err
	}
	return &Inverter{bin: bin}, nil
}

// find looks for ImageMagick 7's "magick", falling back to the older
// "convert" command name.
func find() (string, error) {
	if path, err := exec.LookPath("magick"); err == nil {
		return path, nil
	}
	if path, err := exec.LookPath("convert"); err == nil {
		return path, nil
	}
	return "", fmt.Errorf("ImageMagick not found. Please install it:\n  macOS: brew install imagemagick\n  Ubuntu: sudo apt install imagemagick")
}

// Invert writes an inverted, opaque copy of src to dst. Colors are
// negated, the background forced to black, and the alpha channel
// flattened away.
func (inv *Inverter) Invert(src, dst string) error {
	cmd := exec.Command(inv.bin, invertArgs(src, dst)...)

	logrus.Debugf("running: %s", strings.Join(cmd.Args, " "))
	if output, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("%s failed: %w\nOutput: %s", filepath.Base(inv.bin), err, string(output))
	}

	return nil
}

func invertArgs(src, dst string) []string {
	return []string{
		src,
		"-negate",
		"-background", "black",
		"-alpha", "remove",
		"-alpha", "off",
		dst,
	}
}
