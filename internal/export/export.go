// =============================================================================
// Invoice Generator - Export and Print Collaborators
// =============================================================================
//
// This module wraps the two OS-level collaborators invoked once per generated
// invoice:
//   - ExportPDF: convert the filled XLSX to an A4 PDF via LibreOffice
//     (soffice --headless --convert-to pdf)
//   - Print: send the filled XLSX to the default printer via CUPS (lp/lpr)
//
// Both are single-attempt and platform-restricted: a missing binary or a
// failed conversion is an error the pipeline records in the invoice's status
// file and moves on. Nothing here ever aborts the run.
//
// =============================================================================

package export

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// ExportPDF converts a filled invoice workbook to a PDF at pdfPath.
//
// LibreOffice names the converted file after the input and writes it into
// the output directory, so pdfPath must share the xlsx file's base name.
// The template's page setup (A4, fit to one page wide) travels with the
// workbook; the converter only renders it.
func ExportPDF(xlsxPath, pdfPath string) error {
	soffice, found := findBinary("soffice")
	if !found {
		return fmt.Errorf("LibreOffice (soffice) not found; PDF export requires LibreOffice installed")
	}

	outDir := filepath.Dir(pdfPath)
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return fmt.Errorf("failed to create PDF output directory: %w", err)
	}

	cmd := exec.Command(soffice,
		"--headless",
		"--convert-to", "pdf",
		"--outdir", outDir,
		xlsxPath,
	)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("soffice conversion failed: %w (%s)", err, strings.TrimSpace(stderr.String()))
	}

	// soffice exits zero on some conversion failures; trust the artifact,
	// not the exit code.
	if _, err := os.Stat(pdfPath); err != nil {
		return fmt.Errorf("soffice produced no PDF at %s", pdfPath)
	}

	return nil
}

// Print sends a filled invoice workbook to the default printer. It prefers
// lp and falls back to lpr, covering both CUPS front-ends.
func Print(xlsxPath string) error {
	binary, found := findBinary("lp")
	if !found {
		binary, found = findBinary("lpr")
	}
	if !found {
		return fmt.Errorf("no print command found (lp/lpr); printing requires CUPS")
	}

	cmd := exec.Command(binary, xlsxPath)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%s failed: %w (%s)", filepath.Base(binary), err, strings.TrimSpace(stderr.String()))
	}

	return nil
}
