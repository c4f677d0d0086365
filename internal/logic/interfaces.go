package logic

import "showreel/internal/domain"

// MediaStore provides access to discovered images
type MediaStore interface {
	Get(path string) (domain.MediaFile, bool)
	All(mode SortMode) []domain.MediaFile
	Add(file domain.MediaFile) bool
	Remove(path string)
	Len() int
	Reset()
}

// Sort modes
type SortMode int

const (
	SortByPath SortMode = iota
	SortByName
	SortByDir
)

// String returns the label shown in the status bar
func (m SortMode) String() string {
	switch m {
	case SortByName:
		return "name"
	case SortByDir:
		return "dir"
	default:
		return "path"
	}
}

// Next cycles through the sort modes
func (m SortMode) Next() SortMode {
	return (m + 1) % 3
}
