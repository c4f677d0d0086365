// Package media loads, scales and renders images for the terminal.
package media

import (
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"log"
	"os"
	"path/filepath"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

// ErrEmptySource is returned when a load is requested for an empty path
var ErrEmptySource = errors.New("empty image source")

// Loader loads and measures images. Implementations must be safe for
// concurrent use: loads run inside tea.Cmd goroutines.
type Loader interface {
	Load(ctx context.Context, src string) (image.Image, error)
}

// Extensions lists the file extensions the default decoders understand
var Extensions = []string{".png", ".jpg", ".jpeg", ".gif", ".bmp", ".webp"}

// IsImage reports whether path has a supported image extension
func IsImage(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range Extensions {
		if ext == e {
			return true
		}
	}
	return false
}

// FileLoader decodes images from the filesystem and keeps the most recently
// used ones in memory
type FileLoader struct {
	baseDir string
	cache   *lru.Cache[string, image.Image]
}

// NewFileLoader creates a loader resolving relative sources against baseDir
func NewFileLoader(baseDir string, cacheSize int) (*FileLoader, error) {
	if cacheSize < 1 {
		cacheSize = 1
	}
	cache, err := lru.New[string, image.Image](cacheSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create image cache: %w", err)
	}
	return &FileLoader{baseDir: baseDir, cache: cache}, nil
}

// Load returns the decoded image for src, from cache when possible
func (l *FileLoader) Load(ctx context.Context, src string) (image.Image, error) {
	if src == "" {
		return nil, ErrEmptySource
	}
	path := l.resolve(src)
	if img, ok := l.cache.Get(path); ok {
		return img, nil
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image %s: %w", src, err)
	}
	defer f.Close()

	img, format, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image %s: %w", src, err)
	}
	log.Printf("media: decoded %s (%s, %dx%d)", src, format, img.Bounds().Dx(), img.Bounds().Dy())

	l.cache.Add(path, img)
	return img, nil
}

// Cached reports whether src is already decoded
func (l *FileLoader) Cached(src string) bool {
	return l.cache.Contains(l.resolve(src))
}

// Purge drops every cached image
func (l *FileLoader) Purge() {
	l.cache.Purge()
}

func (l *FileLoader) resolve(src string) string {
	if filepath.IsAbs(src) || l.baseDir == "" {
		return src
	}
	return filepath.Join(l.baseDir, src)
}

// Ratio returns width/height of img, or 0 when either side is empty
func Ratio(img image.Image) float64 {
	if img == nil {
		return 0
	}
	b := img.Bounds()
	if b.Dx() <= 0 || b.Dy() <= 0 {
		return 0
	}
	return float64(b.Dx()) / float64(b.Dy())
}
