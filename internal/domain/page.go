package domain

import "fmt"

// Window is a validated pagination window derived from the (from, size)
// query pair: from is the zero-based offset of the first element, size the
// page length. Because from must be a multiple of size, the window always
// lands on a whole page boundary.
type Window struct {
	From int
	Size int
}

// NewWindow validates the raw query pair and builds a Window.
// Fails with ErrValidation when from < 0, size < 1, or from is not aligned
// to size.
func NewWindow(from, size int) (Window, error) {
	if from < 0 || size < 1 || from%size != 0 {
		return Window{}, fmt.Errorf("%w: wrong pagination params from=%d, size=%d", ErrValidation, from, size)
	}
	return Window{From: from, Size: size}, nil
}

// Page returns the zero-based page index the window describes.
func (w Window) Page() int {
	return w.From / w.Size
}

// Cut returns the window's slice of items. Out-of-range windows yield an
// empty slice, never an error.
func Cut[T any](items []T, w Window) []T {
	if w.From >= len(items) {
		return []T{}
	}
	end := w.From + w.Size
	if end > len(items) {
		end = len(items)
	}
	return items[w.From:end]
}
