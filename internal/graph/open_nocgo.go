//go:build !cgo

package graph

import "fmt"

// Open returns a MemStore. Persistent storage requires a CGO build.
func Open(dbPath string) (Store, error) {
	if dbPath != "" {
		return nil, fmt.Errorf("persistent store %q requires a CGO-enabled build", dbPath)
	}
	return NewMemStore(), nil
}
