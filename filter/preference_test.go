package filter

import (
	"math"
	"testing"

	"github.com/NinaSayers/Hybrid-techniques-in-Recommender-Systems/core"
)

func TestPreferenceBuilder_Build(t *testing.T) {
	products := []*core.Product{
		{UniqueID: "p1"},
		{UniqueID: "p2"},
		{UniqueID: "p3"},
	}
	vectors := [][]float64{
		{1, 0, 0},
		{0, 1, 0},
		{0, 0, 1},
	}

	tests := []struct {
		name         string
		weighting    core.Weighting
		interactions []*core.Interaction
		want         []float64
	}{
		{
			name: "purchase outweighs view",
			interactions: []*core.Interaction{
				{UserID: "u1", ProductID: "p1", Kind: core.InteractionPurchase}, // weight 5
				{UserID: "u1", ProductID: "p2", Kind: core.InteractionView},     // weight 2
			},
			want: []float64{5.0 / 7.0, 2.0 / 7.0, 0},
		},
		{
			name: "other users' interactions ignored",
			interactions: []*core.Interaction{
				{UserID: "u1", ProductID: "p1", Kind: core.InteractionLike},
				{UserID: "u2", ProductID: "p3", Kind: core.InteractionPurchase},
			},
			want: []float64{1, 0, 0},
		},
		{
			name: "interactions outside the candidate set ignored",
			interactions: []*core.Interaction{
				{UserID: "u1", ProductID: "p1", Kind: core.InteractionLike},
				{UserID: "u1", ProductID: "gone", Kind: core.InteractionPurchase},
			},
			want: []float64{1, 0, 0},
		},
		{
			name: "unknown kind falls back to default weight",
			interactions: []*core.Interaction{
				{UserID: "u1", ProductID: "p1", Kind: "wishlist"}, // default 1
				{UserID: "u1", ProductID: "p2", Kind: core.InteractionLike},
			},
			want: []float64{1.0 / 4.0, 3.0 / 4.0, 0},
		},
		{
			name:         "no intersection yields nil",
			interactions: []*core.Interaction{{UserID: "u1", ProductID: "gone", Kind: core.InteractionView}},
			want:         nil,
		},
		{
			name:         "no interactions yields nil",
			interactions: nil,
			want:         nil,
		},
		{
			name:      "zero weight sum yields nil",
			weighting: core.CollaborativeWeighting(), // default weight 0
			interactions: []*core.Interaction{
				{UserID: "u1", ProductID: "p1", Kind: "wishlist"},
			},
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			builder := &PreferenceBuilder{Weighting: tt.weighting}
			got := builder.Build("u1", products, vectors, tt.interactions)

			if tt.want == nil {
				if got != nil {
					t.Fatalf("Build() = %v, want nil", got)
				}
				return
			}
			if len(got) != len(tt.want) {
				t.Fatalf("Build() dim = %d, want %d", len(got), len(tt.want))
			}
			for i := range tt.want {
				if math.Abs(got[i]-tt.want[i]) > 1e-9 {
					t.Errorf("Build()[%d] = %v, want %v", i, got[i], tt.want[i])
				}
			}
		})
	}
}
