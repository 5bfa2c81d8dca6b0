package entity_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kossodo/merch-api/internal/domain"
	"github.com/kossodo/merch-api/internal/domain/entity"
)

func TestRequestedTotals_PacksPorUnidades(t *testing.T) {
	r := &entity.Request{PackCount: 3, Products: entity.Quantities{"merch_tacos": 2, "merch_gorra": 0}}
	got, err := r.RequestedTotals()
	require.NoError(t, err)
	assert.Equal(t, entity.Quantities{"merch_tacos": 6, "merch_gorra": 0}, got)
}

func TestRequestedTotals_Desborde(t *testing.T) {
	cases := []*entity.Request{
		{PackCount: 1 << 62, Products: entity.Quantities{"merch_tacos": 3}},
		{PackCount: 1 << 62, Products: entity.Quantities{"merch_tacos": 4}},
		{PackCount: 2, Products: entity.Quantities{"merch_tacos": math.MaxInt64}},
		{PackCount: -1, Products: entity.Quantities{"merch_tacos": 1}},
		{PackCount: 1, Products: entity.Quantities{"merch_tacos": -1}},
	}
	for _, r := range cases {
		_, err := r.RequestedTotals()
		assert.ErrorIs(t, err, domain.ErrInvalidInput, "%d × %v", r.PackCount, r.Products)
	}

	r := &entity.Request{PackCount: 1, Products: entity.Quantities{"merch_tacos": math.MaxInt64}}
	got, err := r.RequestedTotals()
	require.NoError(t, err)
	assert.Equal(t, int64(math.MaxInt64), got["merch_tacos"])
}
