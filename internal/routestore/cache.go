package routestore

import (
	"encoding/gob"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/kass/go-route-index/pkg/routeindex"
)

// snapshot is the on-disk form of a cached route: the index itself is never
// serialized directly (the R-tree is rebuilt from scratch on load), only the
// route it was built from plus an identifier — persisting the indexed data
// and re-indexing on load rather than serializing the tree.
type snapshot struct {
	ID    string
	Route routeindex.Route
}

// SaveSnapshot writes route to filename as gob, generating a fresh v4 id if
// id is empty.
func SaveSnapshot(filename, id string, route routeindex.Route) error {
	if id == "" {
		id = uuid.NewString()
	}

	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create snapshot file: %w", err)
	}
	defer file.Close()

	enc := gob.NewEncoder(file)
	if err := enc.Encode(snapshot{ID: id, Route: route}); err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}
	return nil
}

// LoadSnapshotRoute reads back the route previously written by SaveSnapshot,
// without building an index over it.
func LoadSnapshotRoute(filename string) (id string, route routeindex.Route, err error) {
	file, err := os.Open(filename)
	if err != nil {
		return "", nil, fmt.Errorf("failed to open snapshot file: %w", err)
	}
	defer file.Close()

	var snap snapshot
	dec := gob.NewDecoder(file)
	if err := dec.Decode(&snap); err != nil {
		return "", nil, fmt.Errorf("failed to decode snapshot: %w", err)
	}
	return snap.ID, snap.Route, nil
}

// LoadSnapshot reads a route previously written by SaveSnapshot and builds
// a fresh Index over it.
func LoadSnapshot(filename string, opts ...routeindex.IndexOption) (id string, idx *routeindex.Index, err error) {
	id, route, err := LoadSnapshotRoute(filename)
	if err != nil {
		return "", nil, err
	}

	idx, err = routeindex.New(route, opts...)
	if err != nil {
		return "", nil, fmt.Errorf("failed to rebuild index from snapshot: %w", err)
	}
	return id, idx, nil
}
