package store

import (
	"fmt"
	"io"
	"strings"

	"github.com/idilsaglam/crms/internal/store/jsonstore"
	"github.com/idilsaglam/crms/internal/store/memstore"
	"github.com/idilsaglam/crms/internal/store/sqlitestore"
)

const (
	BackendJSON   = "json"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

// Handle is a backend that lives on disk (or not) and must be released.
type Handle interface {
	Backend
	io.Closer
	// Path is the file holding the slot, empty when nothing is on disk.
	Path() string
}

// OpenBackend opens the backend named kind at path. slot only matters
// for sqlite, where several slots can share one database.
func OpenBackend(kind, path, slot string) (Handle, error) {
	switch strings.ToLower(strings.TrimSpace(kind)) {
	case "", BackendJSON:
		return jsonstore.New(path), nil
	case BackendSQLite:
		s, err := sqlitestore.Open(path, slot)
		if err != nil {
			return nil, err
		}
		return s, nil
	case BackendMemory:
		return memstore.New(), nil
	default:
		return nil, fmt.Errorf("unknown backend %q (want json, sqlite or memory)", kind)
	}
}
