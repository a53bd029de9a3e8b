package dto

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewPostPage(t *testing.T) {
	tests := []struct {
		name     string
		total    int64
		page     int
		perPage  int
		pages    int
		hasNext  bool
		hasPrev  bool
		nextNum  int
		prevNum  int
	}{
		{"empty", 0, 1, 25, 0, false, false, 0, 0},
		{"single page", 3, 1, 25, 1, false, false, 0, 0},
		{"first of three", 7, 1, 3, 3, true, false, 2, 0},
		{"middle", 7, 2, 3, 3, true, true, 3, 1},
		{"last", 7, 3, 3, 3, false, true, 0, 2},
		{"past the end", 7, 5, 3, 3, false, true, 0, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPostPage(nil, tt.total, tt.page, tt.perPage)
			assert.Equal(t, tt.pages, p.Pages)
			assert.Equal(t, tt.hasNext, p.HasNext)
			assert.Equal(t, tt.hasPrev, p.HasPrev)
			assert.Equal(t, tt.nextNum, p.NextNum)
			assert.Equal(t, tt.prevNum, p.PrevNum)
		})
	}
}

func TestLoginRequest_Remember(t *testing.T) {
	for value, want := range map[string]bool{"": false, "y": true, "on": true, "true": true, "false": false, "0": false} {
		r := LoginRequest{RememberMe: value}
		assert.Equal(t, want, r.Remember(), "value %q", value)
	}
}
