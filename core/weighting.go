package core

// Weighting 是交互强度的权重策略：交互类型 -> 数值权重。
//
// 设计要点：
//   - 策略注入而非常量散落：内容过滤与协同过滤历史上使用两套不同的量表，
//     两套都保留为可注入的预设（见 ContentWeighting / CollaborativeWeighting），
//     不做静默统一
//   - 未识别的交互类型取 Default
type Weighting struct {
	Weights map[string]float64
	Default float64
}

// Weight 返回交互类型对应的权重。
func (w Weighting) Weight(kind string) float64 {
	if v, ok := w.Weights[kind]; ok {
		return v
	}
	return w.Default
}

// IsZero 判断策略是否未设置（用于组件内回退到各自的默认预设）。
func (w Weighting) IsZero() bool {
	return w.Weights == nil && w.Default == 0
}

// ContentWeighting 是内容过滤的预设量表：view=2 like=3 purchase=5，其余为 1。
func ContentWeighting() Weighting {
	return Weighting{
		Weights: map[string]float64{
			InteractionView:     2,
			InteractionLike:     3,
			InteractionPurchase: 5,
		},
		Default: 1,
	}
}

// CollaborativeWeighting 是协同过滤的预设量表：view=1 like=2 purchase=3，其余为 0。
// 0 权重表示"未交互"，协同过滤用它区分矩阵中的空单元格。
func CollaborativeWeighting() Weighting {
	return Weighting{
		Weights: map[string]float64{
			InteractionView:     1,
			InteractionLike:     2,
			InteractionPurchase: 3,
		},
		Default: 0,
	}
}
