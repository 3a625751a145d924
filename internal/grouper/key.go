package grouper

import (
	"fmt"

	"github.com/zeebo/xxh3"
)

// Kind tells project keys from directory keys
type Kind uint8

const (
	KindProject Kind = iota
	KindDirectory
)

func (k Kind) String() string {
	switch k {
	case KindProject:
		return "project"
	case KindDirectory:
		return "directory"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// Key identifies a project or group across re-scans. It is built only from
// the root base and the directory path, never from position.
type Key struct {
	Kind Kind
	Root string
	Path string
}

// ProjectKey returns the key of the project for a root base
func ProjectKey(base string) Key {
	return Key{Kind: KindProject, Root: base}
}

// DirectoryKey returns the key of the group for path under a root base
func DirectoryKey(base, path string) Key {
	return Key{Kind: KindDirectory, Root: base, Path: path}
}

func (k Key) String() string {
	return k.Kind.String() + ":" + k.Root + ":" + k.Path
}

// ID is a compact hash of the key used when persisting state
func (k Key) ID() uint64 {
	return xxh3.HashString(k.String())
}
