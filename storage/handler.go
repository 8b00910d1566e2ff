// Package storage implements the entity handler: a content-addressed
// on-disk object store with a concurrent load/store worker pool and a
// weak-eviction in-memory cache.
package storage

import (
	"crypto/sha256"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"golang.org/x/sync/singleflight"

	"github.com/cooolrik/pds-go/cache"
	"github.com/cooolrik/pds-go/models"
	"github.com/cooolrik/pds-go/storage/binary"
)

// EntityHandler is the directory path, registered package records, weak
// entity cache and worker pool backing the store. Construct with
// NewEntityHandler; the zero value is not usable.
type EntityHandler struct {
	dir      string
	packages []models.PackageRecord
	cache    *cache.EntityCache

	loadGroup singleflight.Group
	workers   chan struct{}
}

// NewEntityHandler constructs a handler rooted at dir, consulting packages
// in order to resolve a type tag to a factory, with a worker pool bounded
// to workerCount concurrent async operations.
func NewEntityHandler(dir string, packages []models.PackageRecord, workerCount int) *EntityHandler {
	if workerCount < 1 {
		workerCount = 1
	}
	return &EntityHandler{
		dir:      dir,
		packages: packages,
		cache:    cache.New(),
		workers:  make(chan struct{}, workerCount),
	}
}

// Cache exposes the handler's underlying weak entity cache, mainly for
// tests and diagnostics.
func (h *EntityHandler) Cache() *cache.EntityCache { return h.cache }

func (h *EntityHandler) pathFor(hash [32]byte) string {
	return filepath.Join(h.dir, binary.FormatHash(hash)+".dat")
}

func (h *EntityHandler) newEntity(typeTag string) models.Entity {
	for _, pkg := range h.packages {
		if e := pkg.New(typeTag); e != nil {
			return e
		}
	}
	return nil
}

// AddEntity validates, serializes, content-addresses and durably stores e,
// interning an immutable copy in the cache.
func (h *EntityHandler) AddEntity(e models.Entity) (models.EntityRef, models.Status, error) {
	v := &models.Validator{}
	if !e.Validate(v) {
		return models.EntityRef{}, models.StatusInvalid, fmt.Errorf("%w: %d validation error(s)", models.ErrInvalidInput, v.ErrorCount())
	}

	ws := binary.NewPooledWriteStream(false)
	defer ws.Close()
	sw := binary.NewSectionWriter(ws)
	child, err := sw.BeginSubsection("EntityFile")
	if err != nil {
		return models.EntityRef{}, models.StatusCantWrite, err
	}
	if err := child.WriteString("EntityType", e.TypeTag()); err != nil {
		return models.EntityRef{}, models.StatusCantWrite, err
	}
	if err := e.Write(child); err != nil {
		return models.EntityRef{}, models.StatusCantWrite, err
	}
	if err := sw.EndSubsection(child); err != nil {
		return models.EntityRef{}, models.StatusCantWrite, err
	}

	digest := sha256.Sum256(ws.Bytes())
	ref := models.EntityRefFromHash(digest)

	status := models.StatusOk
	f, err := os.OpenFile(h.pathFor(digest), os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	switch {
	case errors.Is(err, fs.ErrExist):
		status = models.StatusAlreadyExists
	case err != nil:
		return models.EntityRef{}, models.StatusCantOpen, err
	default:
		_, writeErr := f.Write(ws.Bytes())
		closeErr := f.Close()
		if writeErr != nil {
			return models.EntityRef{}, models.StatusCantWrite, writeErr
		}
		if closeErr != nil {
			return models.EntityRef{}, models.StatusCantWrite, closeErr
		}
	}

	own := h.newEntity(e.TypeTag())
	if own == nil {
		return models.EntityRef{}, models.StatusInvalid, fmt.Errorf("%w: no package record recognizes type tag %q", models.ErrFactoryNotRegistered, e.TypeTag())
	}
	own.DeepCopyFrom(e)
	handle, _ := h.cache.Intern(digest, own)
	handle.Release() // AddEntity doesn't keep a handle of its own; release the one Intern assumed we'd retain

	return ref, status, nil
}

// LoadEntity returns a cached handle for ref, loading and verifying the
// on-disk artifact if not already cached.
func (h *EntityHandler) LoadEntity(ref models.EntityRef) (*cache.Handle, models.Status, error) {
	if handle, ok := h.cache.Lookup(ref.Bytes()); ok {
		return handle, models.StatusOk, nil
	}

	data, err := os.ReadFile(h.pathFor(ref.Bytes()))
	if err != nil {
		return nil, models.StatusCantOpen, err
	}
	if len(data) < 32 {
		return nil, models.StatusCantRead, fmt.Errorf("%w: artifact shorter than a hash", models.ErrCorrupted)
	}

	digest := sha256.Sum256(data)
	if digest != ref.Bytes() {
		return nil, models.StatusCorrupted, fmt.Errorf("%w: artifact hash does not match its reference", models.ErrCorrupted)
	}

	rs := binary.NewReadStream(data, false)
	sr := binary.NewSectionReader(rs, rs.Size())
	child, isNull, err := sr.BeginSubsection("EntityFile", false)
	if err != nil {
		return nil, models.StatusCantRead, err
	}
	if isNull {
		return nil, models.StatusCorrupted, fmt.Errorf("%w: EntityFile section is null", models.ErrCorrupted)
	}
	typeTag, err := child.ReadString("EntityType")
	if err != nil {
		return nil, models.StatusCantRead, err
	}
	e := h.newEntity(typeTag)
	if e == nil {
		return nil, models.StatusInvalid, fmt.Errorf("%w: no package record recognizes type tag %q", models.ErrFactoryNotRegistered, typeTag)
	}
	if err := e.Read(child); err != nil {
		return nil, models.StatusCantRead, err
	}
	if err := sr.EndSubsection(child); err != nil {
		return nil, models.StatusCantRead, err
	}

	handle, _ := h.cache.Intern(digest, e)
	return handle, models.StatusOk, nil
}

// UnloadNonReferencedEntities drops every cached entry with no outstanding
// external handle.
func (h *EntityHandler) UnloadNonReferencedEntities() {
	h.cache.UnloadNonReferencedEntities()
}

func (h *EntityHandler) submit(task func()) {
	h.workers <- struct{}{}
	go func() {
		defer func() { <-h.workers }()
		task()
	}()
}

// AddResult is the outcome of an AddEntityAsync call.
type AddResult struct {
	Ref    models.EntityRef
	Status models.Status
	Err    error
}

// AddFuture resolves to an AddResult once the submitted AddEntity call
// completes; cancellation is not supported.
type AddFuture struct{ ch chan AddResult }

// Wait blocks until the future resolves.
func (f *AddFuture) Wait() AddResult { return <-f.ch }

// AddEntityAsync dispatches AddEntity onto the worker pool.
func (h *EntityHandler) AddEntityAsync(e models.Entity) *AddFuture {
	fut := &AddFuture{ch: make(chan AddResult, 1)}
	h.submit(func() {
		ref, status, err := h.AddEntity(e)
		fut.ch <- AddResult{Ref: ref, Status: status, Err: err}
	})
	return fut
}

// LoadResult is the outcome of a LoadEntityAsync call.
type LoadResult struct {
	Handle *cache.Handle
	Status models.Status
	Err    error
}

// LoadFuture resolves to a LoadResult once the submitted LoadEntity call
// completes.
type LoadFuture struct{ ch chan LoadResult }

// Wait blocks until the future resolves.
func (f *LoadFuture) Wait() LoadResult { return <-f.ch }

type loadOutcome struct {
	handle *cache.Handle
	status models.Status
}

// LoadEntityAsync dispatches LoadEntity onto the worker pool. Concurrent
// calls for the same ref are deduplicated via singleflight so the
// underlying file is read at most once; each caller still gets its own
// retained Handle.
func (h *EntityHandler) LoadEntityAsync(ref models.EntityRef) *LoadFuture {
	fut := &LoadFuture{ch: make(chan LoadResult, 1)}
	h.submit(func() {
		ran := false
		res, err, _ := h.loadGroup.Do(ref.Hex(), func() (any, error) {
			ran = true
			handle, status, err := h.LoadEntity(ref)
			return loadOutcome{handle: handle, status: status}, err
		})
		if err != nil {
			fut.ch <- LoadResult{Status: models.StatusCantRead, Err: err}
			return
		}
		oc := res.(loadOutcome)
		// Obtain our own retained handle distinct from whichever goroutine's
		// handle singleflight shared, so every caller's Release is balanced
		// against its own reference rather than a coalesced one. The goroutine
		// that ran the shared load releases the handle LoadEntity gave it.
		own, ok := h.cache.Lookup(ref.Bytes())
		if !ok {
			own = oc.handle
		} else if ran {
			oc.handle.Release()
		}
		fut.ch <- LoadResult{Handle: own, Status: oc.status}
	})
	return fut
}
