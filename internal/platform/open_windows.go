//go:build windows

package platform

func openCommand(path string) (string, []string, error) {
	return "cmd", []string{"/c", "start", "", escapeCmd(path)}, nil
}

// explorer /select,path opens the folder with the item selected
func revealCommand(path string) (string, []string, error) {
	return "explorer", []string{"/select," + path}, nil
}
