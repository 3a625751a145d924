//go:build darwin

package platform

func openCommand(path string) (string, []string, error) {
	return "open", []string{path}, nil
}

func revealCommand(path string) (string, []string, error) {
	return "open", []string{"-R", path}, nil
}
