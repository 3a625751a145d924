// Package platform opens and reveals files with the host's tools and puts
// text on the terminal clipboard
package platform

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// ErrUnsupportedPlatform is returned where no opener is known
var ErrUnsupportedPlatform = errors.New("unsupported platform")

// System opens files with the platform's default tools
type System struct{}

// OpenInApp opens path in its default application
func (System) OpenInApp(path string) error {
	name, args, err := openCommand(path)
	if err != nil {
		return fmt.Errorf("open %q: %w", path, err)
	}
	return exec.Command(name, args...).Start()
}

// Reveal shows path selected in the file manager
func (System) Reveal(path string) error {
	name, args, err := revealCommand(path)
	if err != nil {
		return fmt.Errorf("reveal %q: %w", path, err)
	}
	return exec.Command(name, args...).Start()
}

// escapeCmd escapes the characters cmd.exe treats specially in start arguments
func escapeCmd(path string) string {
	r := strings.NewReplacer("^", "^^", "&", "^&")
	return r.Replace(path)
}

// releaseFile holds the kernel release, which names Microsoft under WSL
var releaseFile = "/proc/sys/kernel/osrelease"

// isWSL reports whether the process runs under the Windows Subsystem for Linux
func isWSL() bool {
	data, err := os.ReadFile(releaseFile)
	if err != nil {
		return false
	}
	release := strings.ToLower(string(data))
	return strings.Contains(release, "microsoft") || strings.Contains(release, "windows")
}
