//go:build !windows && !darwin && !linux

package platform

func openCommand(path string) (string, []string, error) {
	return "", nil, ErrUnsupportedPlatform
}

func revealCommand(path string) (string, []string, error) {
	return "", nil, ErrUnsupportedPlatform
}
