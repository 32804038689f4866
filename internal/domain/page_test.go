package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Nikolas7zip/shareit/internal/domain"
)

func TestNewWindow(t *testing.T) {
	tests := []struct {
		name       string
		from, size int
		wantErr    bool
	}{
		{"first page", 0, 10, false},
		{"aligned offset", 20, 10, false},
		{"size one", 3, 1, false},
		{"negative from", -1, 10, true},
		{"zero size", 0, 0, true},
		{"negative size", 0, -5, true},
		{"unaligned offset", 5, 10, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, err := domain.NewWindow(tt.from, tt.size)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, domain.ErrValidation)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.from, w.From)
			assert.Equal(t, tt.size, w.Size)
		})
	}
}

func TestNewWindow_ErrorNamesParams(t *testing.T) {
	_, err := domain.NewWindow(5, 10)
	require.Error(t, err)
	assert.ErrorContains(t, err, "wrong pagination params from=5, size=10")
}

func TestWindow_Page(t *testing.T) {
	w, err := domain.NewWindow(20, 10)
	require.NoError(t, err)
	assert.Equal(t, 2, w.Page())
}

func TestCut(t *testing.T) {
	items := []int{0, 1, 2, 3, 4, 5, 6}

	tests := []struct {
		name       string
		from, size int
		want       []int
	}{
		{"first page", 0, 3, []int{0, 1, 2}},
		{"middle page", 3, 3, []int{3, 4, 5}},
		{"short last page", 6, 3, []int{6}},
		{"past the end", 9, 3, []int{}},
		{"window wider than input", 0, 100, items},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, err := domain.NewWindow(tt.from, tt.size)
			require.NoError(t, err)
			assert.Equal(t, tt.want, domain.Cut(items, w))
		})
	}
}

func TestCut_EmptyInput(t *testing.T) {
	w, err := domain.NewWindow(0, 10)
	require.NoError(t, err)
	assert.Empty(t, domain.Cut([]string(nil), w))
}
