package discovery

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"showreel/internal/domain"
	"showreel/internal/eventbus"
	"showreel/internal/media"
)

// ErrScanInProgress is returned by StartScan while another scan runs
var ErrScanInProgress = errors.New("scan already in progress")

// maxDepth bounds how far below a root the scanner descends
const maxDepth = 5

var skipDirs = map[string]bool{
	"node_modules": true,
	"vendor":       true,
	"dist":         true,
	"build":        true,
	"target":       true,
	"__pycache__":  true,
	"venv":         true,
}

// DiscoveryService finds image files in the filesystem
type DiscoveryService interface {
	StartScan(ctx context.Context, roots []string) error
	StopScan()
}

// discoveryService is the concrete implementation
type discoveryService struct {
	bus        eventbus.EventBus
	mu         sync.Mutex
	isScanning bool
	cancelFunc context.CancelFunc
	wg         sync.WaitGroup
}

// NewDiscoveryService creates a new discovery service that also answers
// ScanRequested events
func NewDiscoveryService(bus eventbus.EventBus) DiscoveryService {
	ds := &discoveryService{
		bus: bus,
	}

	bus.Subscribe(eventbus.EventScanRequested, func(e eventbus.DomainEvent) {
		if event, ok := e.(eventbus.ScanRequestedEvent); ok {
			if err := ds.StartScan(context.Background(), event.Paths); err != nil {
				log.Printf("discovery: %v", err)
			}
		}
	})

	return ds
}

// StartScan walks roots in the background, publishing a MediaDiscovered
// event per image and ScanCompleted at the end
func (ds *discoveryService) StartScan(ctx context.Context, roots []string) error {
	ds.mu.Lock()
	if ds.isScanning {
		ds.mu.Unlock()
		return ErrScanInProgress
	}
	ds.isScanning = true

	scanCtx, cancel := context.WithCancel(ctx)
	ds.cancelFunc = cancel
	ds.mu.Unlock()

	ds.bus.Publish(eventbus.ScanStartedEvent{Paths: roots})

	ds.wg.Add(1)
	go func() {
		defer ds.wg.Done()
		found := 0
		defer func() {
			ds.mu.Lock()
			ds.isScanning = false
			ds.cancelFunc = nil
			ds.mu.Unlock()
			cancel()

			ds.bus.Publish(eventbus.ScanCompletedEvent{FilesFound: found})
		}()

		for _, root := range roots {
			if scanCtx.Err() != nil {
				return
			}
			err := walk(scanCtx, root, func(f domain.MediaFile) {
				ds.bus.Publish(eventbus.MediaDiscoveredEvent{File: f})
				found++
			})
			if err != nil && !errors.Is(err, context.Canceled) {
				log.Printf("Error scanning directory %s: %v", root, err)
				ds.bus.Publish(eventbus.ErrorEvent{
					Message: fmt.Sprintf("Failed to scan %s", root),
					Err:     err,
				})
			}
		}
	}()

	return nil
}

// StopScan cancels any ongoing scan and waits for it to finish
func (ds *discoveryService) StopScan() {
	ds.mu.Lock()
	if ds.cancelFunc != nil {
		ds.cancelFunc()
	}
	ds.mu.Unlock()

	ds.wg.Wait()
}

// Scan synchronously collects the images under root, sorted by path
func Scan(ctx context.Context, root string) ([]domain.MediaFile, error) {
	var files []domain.MediaFile
	err := walk(ctx, root, func(f domain.MediaFile) {
		files = append(files, f)
	})
	sort.Slice(files, func(i, j int) bool { return files[i].Path < files[j].Path })
	return files, err
}

// walk calls found for every image file under root
func walk(ctx context.Context, root string, found func(domain.MediaFile)) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err != nil {
			if path == root {
				return err
			}
			log.Printf("Error walking path %s: %v", path, err)
			return nil
		}

		if d.IsDir() {
			if path == root {
				return nil
			}
			rel, _ := filepath.Rel(root, path)
			if strings.Count(rel, string(filepath.Separator)) >= maxDepth {
				return fs.SkipDir
			}
			name := d.Name()
			if strings.HasPrefix(name, ".") || skipDirs[name] {
				return fs.SkipDir
			}
			return nil
		}

		if !d.Type().IsRegular() || !media.IsImage(path) {
			return nil
		}
		found(domain.MediaFile{
			Path: path,
			Name: d.Name(),
			Dir:  filepath.Dir(path),
		})
		return nil
	})
}
