//go:build cgo

package graph

// Open returns a persistent KuzuStore at dbPath, or a MemStore when dbPath
// is empty.
func Open(dbPath string) (Store, error) {
	if dbPath == "" {
		return NewMemStore(), nil
	}
	return NewKuzuFileStore(dbPath)
}
