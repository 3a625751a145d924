//go:build linux

package platform

import "path/filepath"

// Under WSL the Windows shell owns the desktop, so files go through cmd.exe
func openCommand(path string) (string, []string, error) {
	if isWSL() {
		return "cmd.exe", []string{"/c", "start", "", escapeCmd(path)}, nil
	}
	return "xdg-open", []string{path}, nil
}

// xdg-open has no way to select an item, so the containing folder is opened
func revealCommand(path string) (string, []string, error) {
	if isWSL() {
		return "explorer.exe", []string{"/select," + path}, nil
	}
	return "xdg-open", []string{filepath.Dir(path)}, nil
}
