package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"chatledger/internal/shared/constants"
)

func TestNormalizePagination(t *testing.T) {
	tests := []struct {
		name         string
		page         int
		pageSize     int
		wantPage     int
		wantPageSize int
	}{
		{"defaults applied", 0, 0, constants.DefaultPage, constants.DefaultPageSize},
		{"negative values", -3, -1, constants.DefaultPage, constants.DefaultPageSize},
		{"within bounds", 2, 50, 2, 50},
		{"page size capped", 1, 1000, 1, constants.MaxPageSize},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NormalizePagination(tt.page, tt.pageSize)
			assert.Equal(t, tt.wantPage, p.Page)
			assert.Equal(t, tt.wantPageSize, p.PageSize)
		})
	}
}

func TestPagination_Offset(t *testing.T) {
	p := NormalizePagination(3, 20)
	assert.Equal(t, 40, p.Offset())
}
