package model_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"hotelier/internal/domains/promotion/model"
)

func int64Ptr(v int64) *int64 { return &v }

func TestComputeDiscount(t *testing.T) {
	tests := []struct {
		name       string
		promo      model.Promotion
		baseAmount int64
		want       int64
	}{
		{
			name: "percentage under cap",
			promo: model.Promotion{
				Code:        "WELCOME2024",
				Type:        model.TypePercentage,
				Scope:       model.ScopeAll,
				Value:       10,
				MaxDiscount: int64Ptr(500000),
			},
			baseAmount: 2000000,
			want:       200000,
		},
		{
			name: "percentage hits cap",
			promo: model.Promotion{
				Type:        model.TypePercentage,
				Value:       10,
				MaxDiscount: int64Ptr(500000),
			},
			baseAmount: 10000000,
			want:       500000,
		},
		{
			name: "percentage without cap",
			promo: model.Promotion{
				Type:  model.TypePercentage,
				Value: 25,
			},
			baseAmount: 400000,
			want:       100000,
		},
		{
			name: "fixed amount under base",
			promo: model.Promotion{
				Type:  model.TypeFixedAmount,
				Value: 50000,
			},
			baseAmount: 300000,
			want:       50000,
		},
		{
			name: "fixed amount capped at base",
			promo: model.Promotion{
				Code:  "ROOM50K",
				Type:  model.TypeFixedAmount,
				Scope: model.ScopeRoom,
				Value: 50000,
			},
			baseAmount: 30000,
			want:       30000,
		},
		{
			name: "zero base",
			promo: model.Promotion{
				Type:  model.TypeFixedAmount,
				Value: 50000,
			},
			baseAmount: 0,
			want:       0,
		},
		{
			name: "unknown type",
			promo: model.Promotion{
				Type:  "BOGO",
				Value: 50000,
			},
			baseAmount: 100000,
			want:       0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := model.ComputeDiscount(tt.promo, tt.baseAmount)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestScopeAllows(t *testing.T) {
	assert.True(t, model.ScopeAllows(model.ScopeAll, model.ScopeRoom))
	assert.True(t, model.ScopeAllows(model.ScopeAll, model.ScopeService))
	assert.True(t, model.ScopeAllows(model.ScopeRoom, model.ScopeRoom))
	assert.False(t, model.ScopeAllows(model.ScopeRoom, model.ScopeService))
	assert.False(t, model.ScopeAllows(model.ScopeService, model.ScopeRoom))
}

func TestPromotionActiveAt(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 12, 31, 23, 59, 59, 0, time.UTC)
	disabled := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	promo := model.Promotion{StartDate: start, EndDate: end}

	assert.True(t, promo.ActiveAt(time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)))
	assert.True(t, promo.ActiveAt(start))
	assert.True(t, promo.ActiveAt(end))
	assert.False(t, promo.ActiveAt(start.Add(-time.Second)))
	assert.False(t, promo.ActiveAt(end.Add(time.Second)))

	promo.DisabledAt = &disabled
	assert.False(t, promo.ActiveAt(time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)))
}
