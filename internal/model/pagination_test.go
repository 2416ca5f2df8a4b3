package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPageRequestNormalize(t *testing.T) {
	cases := []struct {
		name     string
		in       PageRequest
		page     int
		pageSize int
	}{
		{"zero values get defaults", PageRequest{}, 1, 10},
		{"negative page clamps to 1", PageRequest{Page: -3, PageSize: 20}, 1, 20},
		{"oversized page_size clamps to 100", PageRequest{Page: 2, PageSize: 500}, 2, 100},
		{"valid values pass through", PageRequest{Page: 4, PageSize: 25}, 4, 25},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tc.in.Normalize()
			assert.Equal(t, tc.page, tc.in.Page)
			assert.Equal(t, tc.pageSize, tc.in.PageSize)
		})
	}
}

func TestPageRequestOffset(t *testing.T) {
	p := PageRequest{Page: 3, PageSize: 25}
	assert.Equal(t, 50, p.Offset())

	p = PageRequest{Page: 1, PageSize: 10}
	assert.Equal(t, 0, p.Offset())
}
