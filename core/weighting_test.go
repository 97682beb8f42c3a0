package core

import "testing"

func TestWeighting_Weight(t *testing.T) {
	tests := []struct {
		name      string
		weighting Weighting
		kind      string
		want      float64
	}{
		{name: "content view", weighting: ContentWeighting(), kind: InteractionView, want: 2},
		{name: "content like", weighting: ContentWeighting(), kind: InteractionLike, want: 3},
		{name: "content purchase", weighting: ContentWeighting(), kind: InteractionPurchase, want: 5},
		{name: "content unknown kind", weighting: ContentWeighting(), kind: "wishlist", want: 1},
		{name: "collaborative view", weighting: CollaborativeWeighting(), kind: InteractionView, want: 1},
		{name: "collaborative like", weighting: CollaborativeWeighting(), kind: InteractionLike, want: 2},
		{name: "collaborative purchase", weighting: CollaborativeWeighting(), kind: InteractionPurchase, want: 3},
		{name: "collaborative unknown kind", weighting: CollaborativeWeighting(), kind: "wishlist", want: 0},
		{
			name:      "custom scale",
			weighting: Weighting{Weights: map[string]float64{"view": 7}, Default: 0.5},
			kind:      "view",
			want:      7,
		},
		{
			name:      "custom default",
			weighting: Weighting{Weights: map[string]float64{"view": 7}, Default: 0.5},
			kind:      "like",
			want:      0.5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.weighting.Weight(tt.kind); got != tt.want {
				t.Errorf("Weight(%q) = %v, want %v", tt.kind, got, tt.want)
			}
		})
	}
}

func TestWeighting_IsZero(t *testing.T) {
	if !(Weighting{}).IsZero() {
		t.Error("zero value should report IsZero")
	}
	if ContentWeighting().IsZero() {
		t.Error("preset should not report IsZero")
	}
	if (Weighting{Default: 1}).IsZero() {
		t.Error("non-zero default should not report IsZero")
	}
}

func TestContext_EffectiveLimit(t *testing.T) {
	if got := (&Context{Limit: 3}).EffectiveLimit(); got != 3 {
		t.Errorf("EffectiveLimit() = %d, want 3", got)
	}
	if got := (&Context{}).EffectiveLimit(); got != 10 {
		t.Errorf("EffectiveLimit() default = %d, want 10", got)
	}
	if got := (&Context{Limit: -1}).EffectiveLimit(); got != 10 {
		t.Errorf("EffectiveLimit() with negative limit = %d, want 10", got)
	}
}
