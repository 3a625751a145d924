package server

import (
	"fmt"
	"strings"
	"sync"

	"github.com/lumipallolabs/imagedive/internal/model"
	"github.com/zeebo/xxh3"
)

// FilesPrefix is the URL path images are served under
const FilesPrefix = "/files/"

// Registry hands out opaque URLs for image files and resolves them back.
// It serves as the scanner's locator, so only files a scan discovered can
// be fetched.
type Registry struct {
	mu      sync.RWMutex
	byToken map[string]string
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{byToken: make(map[string]string)}
}

// Locate registers absPath and returns its URL
func (r *Registry) Locate(absPath string) string {
	token := fmt.Sprintf("%016x", xxh3.HashString(absPath))

	r.mu.Lock()
	r.byToken[token] = absPath
	r.mu.Unlock()

	return FilesPrefix + token
}

// Lookup resolves a token to its file
func (r *Registry) Lookup(token string) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	path, ok := r.byToken[token]
	return path, ok
}

// Retain forgets every file the collection does not contain
func (r *Registry) Retain(coll model.ProjectDirCollection) {
	keep := make(map[string]bool, coll.ImageCount())
	for _, d := range coll.Dirs {
		for _, img := range d.Images {
			keep[strings.TrimPrefix(img.Locator, FilesPrefix)] = true
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	for token := range r.byToken {
		if !keep[token] {
			delete(r.byToken, token)
		}
	}
}

// Len returns the number of registered files
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byToken)
}
