package logic

import (
	"sort"
	"strings"
	"sync"

	"showreel/internal/domain"
)

// MemoryMediaStore is an in-memory implementation of MediaStore
type MemoryMediaStore struct {
	mu    sync.RWMutex
	files map[string]domain.MediaFile
}

// NewMemoryMediaStore creates a new memory-based media store
func NewMemoryMediaStore() *MemoryMediaStore {
	return &MemoryMediaStore{
		files: make(map[string]domain.MediaFile),
	}
}

func (s *MemoryMediaStore) Get(path string) (domain.MediaFile, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	f, ok := s.files[path]
	return f, ok
}

// All returns a sorted copy of the stored files
func (s *MemoryMediaStore) All(mode SortMode) []domain.MediaFile {
	s.mu.RLock()
	result := make([]domain.MediaFile, 0, len(s.files))
	for _, f := range s.files {
		result = append(result, f)
	}
	s.mu.RUnlock()

	sort.Slice(result, func(i, j int) bool {
		a, b := result[i], result[j]
		switch mode {
		case SortByName:
			if an, bn := strings.ToLower(a.Name), strings.ToLower(b.Name); an != bn {
				return an < bn
			}
		case SortByDir:
			if a.Dir != b.Dir {
				return a.Dir < b.Dir
			}
		}
		return a.Path < b.Path
	})
	return result
}

// Add stores file and reports whether it was new
func (s *MemoryMediaStore) Add(file domain.MediaFile) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, exists := s.files[file.Path]
	s.files[file.Path] = file
	return !exists
}

func (s *MemoryMediaStore) Remove(path string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.files, path)
}

func (s *MemoryMediaStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.files)
}

func (s *MemoryMediaStore) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.files = make(map[string]domain.MediaFile)
}

// Paths returns the paths of files in order
func Paths(files []domain.MediaFile) []string {
	out := make([]string, len(files))
	for i, f := range files {
		out[i] = f.Path
	}
	return out
}
