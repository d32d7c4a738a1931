package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewClampsRequest(t *testing.T) {
	assert.Equal(t, Page{Number: 1, Size: 10}, New(0, 0, 10, 100))
	assert.Equal(t, Page{Number: 3, Size: 100}, New(3, 500, 10, 100))
	assert.Equal(t, Page{Number: 2, Size: 25}, New(2, 25, 10, 100))
}

func TestOffset(t *testing.T) {
	assert.Equal(t, 0, Page{Number: 1, Size: 10}.Offset())
	assert.Equal(t, 20, Page{Number: 3, Size: 10}.Offset())
}

func TestTotalPages(t *testing.T) {
	assert.Equal(t, 0, TotalPages(0, 10))
	assert.Equal(t, 1, TotalPages(10, 10))
	assert.Equal(t, 2, TotalPages(11, 10))
	assert.Equal(t, 4, TotalPages(7, 2))
}

func TestNewPageInfo(t *testing.T) {
	info := NewPageInfo(Page{Number: 5, Size: 10}, 12)
	assert.Equal(t, PageInfo{Total: 12, Page: 5, Limit: 10, TotalPages: 2}, info)
}
