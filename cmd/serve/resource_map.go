package serve

import (
	"path/filepath"
	"sync"

	"github.com/google/uuid"
)

// resourceMap hands out stable, opaque names for local files referenced by
// documents, so only those files can be served.
type resourceMap struct {
	mu    sync.RWMutex
	bySrc map[string]uuid.UUID
	byDst map[uuid.UUID]string
}

func newResourceMap() *resourceMap {
	return &resourceMap{
		bySrc: make(map[string]uuid.UUID),
		byDst: make(map[uuid.UUID]string),
	}
}

func (r *resourceMap) IDFromPath(srcPath string) (uuid.UUID, error) {
	srcPath, err := filepath.Abs(srcPath)
	if err != nil {
		return uuid.Nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if id, ok := r.bySrc[srcPath]; ok {
		return id, nil
	}

	id, err := uuid.NewRandom()
	if err != nil {
		return uuid.Nil, err
	}

	r.bySrc[srcPath] = id
	r.byDst[id] = srcPath

	return id, nil
}

func (r *resourceMap) PathFromID(id uuid.UUID) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	src, ok := r.byDst[id]
	return src, ok
}
