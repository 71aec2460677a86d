// Package poppler invokes the poppler-utils command line tools:
// pdftocairo for rasterization and pdfinfo for page counts.
package poppler

import (
	"fmt"
	"os/exec"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
)

// DPI is the rendering resolution. It is deliberately not configurable
// so output quality stays predictable.
const DPI = 300

// Renderer rasterizes PDF pages to PNG files with pdftocairo
type Renderer struct{}

// Rasterize renders every page of pdfPath into dir as PNG files and
// returns their paths in page order.
func (Renderer) Rasterize(pdfPath, dir string) ([]string, error) {
	outputPrefix := filepath.Join(dir, "page")

	cmd := exec.Command("pdftocairo",
		"-png",
		"-r", strconv.Itoa(DPI),
		pdfPath,
		outputPrefix,
	)

	logrus.Debugf("running: %s", strings.Join(cmd.Args, " "))
	if output, err := cmd.CombinedOutput(); err != nil {
		return nil, fmt.Errorf("pdftocairo failed: %w\nOutput: %s", err, string(output))
	}

	return collectPages(dir)
}

// collectPages gathers the rendered PNG files and sorts them into page
// order. Sorting is numeric, not lexicographic: pdftocairo only
// zero-pads page numbers up to the document's width, so "page-10.png"
// must not sort before "page-2.png".
func collectPages(dir string) ([]string, error) {
	matches, err := filepath.Glob(filepath.Join(dir, "page-*.png"))
	if err != nil {
		return nil, fmt.Errorf("failed to glob images: %w", err)
	}

	if len(matches) == 0 {
		// Some poppler versions omit the dash for single-page documents
		matches, err = filepath.Glob(filepath.Join(dir, "page*.png"))
		if err != nil {
			return nil, fmt.Errorf("failed to glob images: %w", err)
		}
	}

	sort.Slice(matches, func(i, j int) bool {
		return pageNumber(matches[i]) < pageNumber(matches[j])
	})

	return matches, nil
}

// pageNumber extracts the page number from a filename like "page-07.png"
func pageNumber(filename string) int {
	base := filepath.Base(filename)
	base = strings.TrimPrefix(base, "page-")
	base = strings.TrimPrefix(base, "page")
	base = strings.TrimSuffix(base, ".png")
	num, _ := strconv.Atoi(base)
	return num
}

// Counter reads page counts with pdfinfo
type Counter struct{}

// PageCount queries pdfinfo for the document's page count. Any failure
// (tool missing, non-zero exit, unparseable report) yields (0, false);
// the count is a diagnostic for progress display, never a correctness
// input.
func (Counter) PageCount(pdfPath string) (int, bool) {
	cmd := exec.Command("pdfinfo", pdfPath)
	logrus.Debugf("running: %s", strings.Join(cmd.Args, " "))

	output, err := cmd.Output()
	if err != nil {
		logrus.Debugf("pdfinfo failed: %v", err)
		return 0, false
	}

	return parsePageCount(string(output))
}

// parsePageCount scans a pdfinfo report for the "Pages:" line
func parsePageCount(report string) (int, bool) {
	for _, line := range strings.Split(report, "\n") {
		if !strings.HasPrefix(line, "Pages:") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 2 {
			return 0, false
		}
		num, err := strconv.Atoi(fields[1])
		if err != nil || num < 0 {
			return 0, false
		}
		return num, true
	}
	return 0, false
}
