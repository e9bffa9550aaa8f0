// Package download saves session image references to disk.
package download

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/patrickmn/go-cache"
	"golang.org/x/sync/errgroup"

	pkgerrors "github.com/zhubert/sketchlab/internal/errors"
	"github.com/zhubert/sketchlab/internal/imageref"
	"github.com/zhubert/sketchlab/internal/logger"
	"github.com/zhubert/sketchlab/internal/studio"
)

const (
	defaultCacheExpiration = 30 * time.Minute
	cacheCleanupInterval   = 1 * time.Hour

	// maxNameAttempts bounds the "name (n).ext" search.
	maxNameAttempts = 1000
)

// Fetcher downloads remote image references.
type Fetcher interface {
	Fetch(ctx context.Context, ref string) ([]byte, string, error)
}

// cached is a fetched remote image.
type cached struct {
	data      []byte
	mediaType string
}

// Saver writes image references into a download directory.
type Saver struct {
	dir     string
	refs    *imageref.Store
	fetcher Fetcher
	cache   *cache.Cache
	log     *slog.Logger
}

// NewSaver creates a saver writing into dir. Local references resolve
// through refs and remote ones through fetcher.
func NewSaver(dir string, refs *imageref.Store, fetcher Fetcher) *Saver {
	return &Saver{
		dir:     dir,
		refs:    refs,
		fetcher: fetcher,
		cache:   cache.New(defaultCacheExpiration, cacheCleanupInterval),
		log:     logger.ComponentLogger("Download"),
	}
}

// Dir returns the download directory.
func (s *Saver) Dir() string {
	return s.dir
}

// ResultNames are the file names used when downloading from the result view.
func ResultNames() (original, generated string) {
	return "original-sketch.png", "generated-image.png"
}

// GalleryNames are the file names used for the gallery entry at index.
func GalleryNames(index int) (original, generated string) {
	return fmt.Sprintf("original-%d.png", index), fmt.Sprintf("generated-%d.png", index)
}

// Resolve returns the bytes behind ref, whichever kind of reference it is.
func (s *Saver) Resolve(ctx context.Context, ref string) ([]byte, string, error) {
	switch {
	case imageref.IsLocal(ref):
		blob, err := s.refs.Resolve(imageref.Ref(ref))
		if err != nil {
			return nil, "", err
		}
		return blob.Data, blob.MediaType, nil

	case imageref.IsDataURI(ref):
		blob, err := imageref.DecodeDataURI(ref)
		if err != nil {
			return nil, "", err
		}
		return blob.Data, blob.MediaType, nil

	case imageref.IsRemote(ref):
		if hit, ok := s.cache.Get(ref); ok {
			c := hit.(cached)
			s.log.Debug("cache hit", "ref", ref)
			return c.data, c.mediaType, nil
		}
		if s.fetcher == nil {
			return nil, "", pkgerrors.E(pkgerrors.Op("download.Resolve"), pkgerrors.KindInvalid, "remote references are not supported")
		}
		data, mediaType, err := s.fetcher.Fetch(ctx, ref)
		if err != nil {
			return nil, "", err
		}
		s.cache.Set(ref, cached{data: data, mediaType: mediaType}, cache.DefaultExpiration)
		return data, mediaType, nil

	default:
		return nil, "", pkgerrors.E(pkgerrors.Op("download.Resolve"), pkgerrors.KindInvalid, fmt.Sprintf("unsupported image reference %q", abbreviate(ref)))
	}
}

// Save writes ref to filename inside the download directory and returns
// the path written. Existing files are never overwritten; a numbered
// variant such as "generated-image (1).png" is used instead.
func (s *Saver) Save(ctx context.Context, ref, filename string) (string, error) {
	data, _, err := s.Resolve(ctx, ref)
	if err != nil {
		return "", pkgerrors.DownloadFailed(filename, err)
	}

	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return "", pkgerrors.DownloadFailed(filename, err)
	}

	f, path, err := createUnique(s.dir, filename)
	if err != nil {
		return "", pkgerrors.DownloadFailed(filename, err)
	}

	if _, err := f.Write(data); err != nil {
		f.Close()
		os.Remove(path)
		return "", pkgerrors.DownloadFailed(filename, err)
	}
	if err := f.Close(); err != nil {
		os.Remove(path)
		return "", pkgerrors.DownloadFailed(filename, err)
	}

	s.log.Info("saved image", "path", path, "bytes", len(data))
	return path, nil
}

// SaveBoth saves the original and generated images of r concurrently.
// Paths are returned in that order.
func (s *Saver) SaveBoth(ctx context.Context, r studio.Result, originalName, generatedName string) ([2]string, error) {
	var paths [2]string
	eg, egCtx := errgroup.WithContext(ctx)

	eg.Go(func() error {
		p, err := s.Save(egCtx, r.OriginalRef.String(), originalName)
		paths[0] = p
		return err
	})
	eg.Go(func() error {
		p, err := s.Save(egCtx, r.GeneratedRef, generatedName)
		paths[1] = p
		return err
	})

	if err := eg.Wait(); err != nil {
		return paths, err
	}
	return paths, nil
}

// createUnique opens a new file for name in dir, numbering it if needed.
func createUnique(dir, name string) (*os.File, string, error) {
	name = filepath.Base(name)
	ext := filepath.Ext(name)
	stem := strings.TrimSuffix(name, ext)

	for i := 0; i < maxNameAttempts; i++ {
		candidate := name
		if i > 0 {
			candidate = fmt.Sprintf("%s (%d)%s", stem, i, ext)
		}
		path := filepath.Join(dir, candidate)
		f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0644)
		if err == nil {
			return f, path, nil
		}
		if !os.IsExist(err) {
			return nil, "", err
		}
	}
	return nil, "", fmt.Errorf("no free file name for %s after %d attempts", name, maxNameAttempts)
}

func abbreviate(ref string) string {
	if len(ref) <= 48 {
		return ref
	}
	return ref[:45] + "..."
}
