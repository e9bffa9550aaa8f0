// Package imageref holds session-scoped in-memory image references.
//
// A Ref is the terminal analogue of a browser object URL: an opaque handle
// to bytes the user supplied, valid until revoked or the process exits.
// Nothing in this package touches the disk.
package imageref

import (
	"encoding/base64"
	"net/url"
	"strings"
	"sync"

	"github.com/google/uuid"

	pkgerrors "github.com/zhubert/sketchlab/internal/errors"
)

// Scheme prefixes every reference created by a Store.
const Scheme = "blob:sketchlab/"

// Ref is an opaque local image reference.
type Ref string

func (r Ref) String() string { return string(r) }

// Blob is the payload behind a reference.
type Blob struct {
	Data      []byte
	MediaType string
}

// Store allocates and resolves references. It is safe for concurrent use.
type Store struct {
	mu    sync.RWMutex
	blobs map[Ref]Blob
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{blobs: make(map[Ref]Blob)}
}

// Create copies data into the store and returns a fresh reference to it.
func (s *Store) Create(data []byte, mediaType string) Ref {
	buf := make([]byte, len(data))
	copy(buf, data)

	ref := Ref(Scheme + uuid.New().String())

	s.mu.Lock()
	defer s.mu.Unlock()
	s.blobs[ref] = Blob{Data: buf, MediaType: mediaType}
	return ref
}

// Resolve returns the blob behind ref.
func (s *Store) Resolve(ref Ref) (Blob, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	b, ok := s.blobs[ref]
	if !ok {
		return Blob{}, pkgerrors.RefNotFound(string(ref))
	}
	return b, nil
}

// Revoke releases ref. Returns false if it was not held.
func (s *Store) Revoke(ref Ref) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.blobs[ref]; !ok {
		return false
	}
	delete(s.blobs, ref)
	return true
}

// Len returns the number of live references.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.blobs)
}

// IsLocal reports whether ref was minted by a Store.
func IsLocal(ref string) bool {
	return strings.HasPrefix(ref, Scheme)
}

// IsDataURI reports whether ref is an inline data: URI.
func IsDataURI(ref string) bool {
	return strings.HasPrefix(ref, "data:")
}

// IsRemote reports whether ref is an http(s) URL.
func IsRemote(ref string) bool {
	return strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://")
}

// DecodeDataURI decodes an RFC 2397 data URI such as
// "data:image/png;base64,iVBOR...".
func DecodeDataURI(ref string) (Blob, error) {
	const op = pkgerrors.Op("imageref.DecodeDataURI")

	if !IsDataURI(ref) {
		return Blob{}, pkgerrors.E(op, pkgerrors.KindInvalid, "not a data URI")
	}
	header, payload, ok := strings.Cut(strings.TrimPrefix(ref, "data:"), ",")
	if !ok {
		return Blob{}, pkgerrors.E(op, pkgerrors.KindMalformed, "data URI has no payload separator")
	}

	mediaType := "text/plain"
	isBase64 := false
	for i, part := range strings.Split(header, ";") {
		switch {
		case i == 0 && part != "":
			mediaType = part
		case part == "base64":
			isBase64 = true
		}
	}

	if isBase64 {
		data, err := base64.StdEncoding.DecodeString(payload)
		if err != nil {
			// Some services omit padding
			data, err = base64.RawStdEncoding.DecodeString(strings.TrimRight(payload, "="))
			if err != nil {
				return Blob{}, pkgerrors.E(op, pkgerrors.KindMalformed, "invalid base64 payload", err)
			}
		}
		return Blob{Data: data, MediaType: mediaType}, nil
	}

	text, err := url.PathUnescape(payload)
	if err != nil {
		return Blob{}, pkgerrors.E(op, pkgerrors.KindMalformed, "invalid percent-encoding", err)
	}
	return Blob{Data: []byte(text), MediaType: mediaType}, nil
}
