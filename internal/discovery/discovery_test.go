package discovery

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"showreel/internal/eventbus"
)

func touch(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))
}

func mediaTree(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	touch(t, filepath.Join(root, "b.png"))
	touch(t, filepath.Join(root, "a.JPG"))
	touch(t, filepath.Join(root, "notes.txt"))
	touch(t, filepath.Join(root, "album", "c.webp"))
	touch(t, filepath.Join(root, ".hidden", "d.png"))
	touch(t, filepath.Join(root, "node_modules", "e.png"))
	touch(t, filepath.Join(root, "1", "2", "3", "4", "5", "6", "deep.png"))
	return root
}

func TestScanCollectsImages(t *testing.T) {
	root := mediaTree(t)

	files, err := Scan(context.Background(), root)
	require.NoError(t, err)

	var names []string
	for _, f := range files {
		names = append(names, f.Name)
		assert.Equal(t, filepath.Dir(f.Path), f.Dir)
	}
	assert.Equal(t, []string{"a.JPG", "c.webp", "b.png"}, names)
}

func TestScanMissingRoot(t *testing.T) {
	_, err := Scan(context.Background(), filepath.Join(t.TempDir(), "nope"))
	assert.Error(t, err)
}

func TestScanCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Scan(ctx, mediaTree(t))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestStartScanPublishesEvents(t *testing.T) {
	root := mediaTree(t)
	bus := eventbus.New()
	defer bus.Close()

	var mu sync.Mutex
	var discovered []string
	bus.Subscribe(eventbus.EventMediaDiscovered, func(e eventbus.DomainEvent) {
		mu.Lock()
		defer mu.Unlock()
		discovered = append(discovered, e.(eventbus.MediaDiscoveredEvent).File.Name)
	})
	completed := make(chan int, 1)
	bus.Subscribe(eventbus.EventScanCompleted, func(e eventbus.DomainEvent) {
		completed <- e.(eventbus.ScanCompletedEvent).FilesFound
	})

	ds := NewDiscoveryService(bus)
	require.NoError(t, ds.StartScan(context.Background(), []string{root}))

	select {
	case n := <-completed:
		assert.Equal(t, 3, n)
	case <-time.After(2 * time.Second):
		t.Fatal("scan did not complete")
	}

	assert.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(discovered) == 3
	}, time.Second, 10*time.Millisecond)
	mu.Lock()
	assert.ElementsMatch(t, []string{"a.JPG", "b.png", "c.webp"}, discovered)
	mu.Unlock()
}

func TestStopScanWithoutScan(t *testing.T) {
	bus := eventbus.New()
	defer bus.Close()
	ds := NewDiscoveryService(bus)
	ds.StopScan()
}
