package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LEIBExAC/CarbonNet-sub000/internal/carbon"
)

func TestRecommendThresholds(t *testing.T) {
	tests := []struct {
		name       string
		byCategory map[carbon.Category]float64
		wantCount  int
	}{
		{
			name:       "all quiet yields encouragement",
			byCategory: map[carbon.Category]float64{},
			wantCount:  1,
		},
		{
			name: "transport at threshold does not fire",
			byCategory: map[carbon.Category]float64{
				carbon.CategoryTransportation: TransportThresholdKg,
			},
			wantCount: 1,
		},
		{
			name: "transport above threshold fires",
			byCategory: map[carbon.Category]float64{
				carbon.CategoryTransportation: TransportThresholdKg + 0.01,
			},
			wantCount: len(transportTips),
		},
		{
			name: "any waste at all fires",
			byCategory: map[carbon.Category]float64{
				carbon.CategoryWaste: 0.001,
			},
			wantCount: len(wasteTips),
		},
		{
			name: "every rule fires",
			byCategory: map[carbon.Category]float64{
				carbon.CategoryTransportation: 150,
				carbon.CategoryElectricity:    80,
				carbon.CategoryFood:           45,
				carbon.CategoryWaste:          2,
			},
			wantCount: len(transportTips) + len(electricityTips) + len(foodTips) + len(wasteTips),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tips := Recommend(tt.byCategory)
			assert.Len(t, tips, tt.wantCount)
		})
	}
}

func TestRecommendFixedOrder(t *testing.T) {
	byCategory := map[carbon.Category]float64{
		carbon.CategoryWaste:          5,
		carbon.CategoryTransportation: 200,
		carbon.CategoryElectricity:    90,
	}

	tips := Recommend(byCategory)
	require.Len(t, tips, len(transportTips)+len(electricityTips)+len(wasteTips))

	// Transport tips first, then electricity, then waste.
	assert.Equal(t, transportTips[0], tips[0])
	assert.Equal(t, electricityTips[0], tips[len(transportTips)])
	assert.Equal(t, wasteTips[0], tips[len(transportTips)+len(electricityTips)])
}

func TestRecommendNeverEmpty(t *testing.T) {
	tips := Recommend(nil)
	require.Len(t, tips, 1)
	assert.Equal(t, encouragement, tips[0])
}

func TestRecommendDeterministic(t *testing.T) {
	byCategory := map[carbon.Category]float64{
		carbon.CategoryTransportation: 101,
		carbon.CategoryFood:           31,
	}

	first := Recommend(byCategory)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, Recommend(byCategory))
	}
}
