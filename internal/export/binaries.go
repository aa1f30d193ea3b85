// =============================================================================
// Invoice Generator - External Binary Discovery
// =============================================================================
//
// PDF export and printing rely on tools installed on the host (LibreOffice,
// CUPS). Discovery order:
//   1. System PATH (works on every OS if the tool is installed normally)
//   2. Well-known OS-specific install locations as a fallback
//
// =============================================================================

package export

import (
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
)

// findBinary searches for an executable on the system PATH first, then
// checks common OS-specific install directories as a fallback.
func findBinary(name string) (string, bool) {
	// On Windows the shell needs the .exe suffix.
	if runtime.GOOS == "windows" && filepath.Ext(name) != ".exe" {
		name = name + ".exe"
	}

	if p, err := exec.LookPath(name); err == nil {
		return p, true
	}

	for _, dir := range defaultDirs() {
		p := filepath.Join(dir, name)
		if _, err := os.Stat(p); err == nil {
			return p, true
		}
	}

	return "", false
}

// defaultDirs returns directories where the external tools are commonly
// installed, for the current OS.
func defaultDirs() []string {
	switch runtime.GOOS {
	case "linux":
		return []string{
			"/usr/bin",
			"/usr/local/bin",
			"/opt/libreoffice/program",
			"/snap/bin",
		}
	case "darwin":
		return []string{
			"/usr/bin",
			"/usr/local/bin",
			"/opt/homebrew/bin",
			"/Applications/LibreOffice.app/Contents/MacOS",
		}
	case "windows":
		return []string{
			`C:\Program Files\LibreOffice\program`,
			`C:\Program Files (x86)\LibreOffice\program`,
		}
	default:
		return nil
	}
}
