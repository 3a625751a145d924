package scanner

import (
	"net/url"
	"path/filepath"
	"strings"
)

// Locator turns an absolute file path into the opaque string a front end
// uses to load and identify the image
type Locator interface {
	Locate(absPath string) string
}

// LocatorFunc adapts a plain function to Locator
type LocatorFunc func(absPath string) string

// Locate calls f
func (f LocatorFunc) Locate(absPath string) string {
	return f(absPath)
}

// FileURI locates images by file:// URL
var FileURI Locator = LocatorFunc(func(absPath string) string {
	p := filepath.ToSlash(absPath)
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	u := url.URL{Scheme: "file", Path: p}
	return u.String()
})
