package filter

import (
	"github.com/charmbracelet/log"

	"github.com/NinaSayers/Hybrid-techniques-in-Recommender-Systems/core"
	"github.com/NinaSayers/Hybrid-techniques-in-Recommender-Systems/vector"
)

// PreferenceBuilder 根据用户的交互历史构建偏好向量：
// 对用户交互过且仍在候选集内的商品，取其向量按交互权重做加权算术平均。
//
// 偏好向量是请求级派生数据，每次请求基于当前候选集现算，不做缓存。
type PreferenceBuilder struct {
	// Weighting 为零值时使用内容过滤预设量表
	Weighting core.Weighting

	// Logger 为 nil 时使用默认 logger
	Logger *log.Logger
}

// Build 计算用户偏好向量。
//
// products 与 vectors 是平行切片：vectors[i] 是 products[i] 的描述文本在
// 当前向量空间中的投影。返回 nil 表示"该用户与候选集没有交集"或权重和
// 非正——这是正常结果而非错误，由调用方决定兜底策略。
func (b *PreferenceBuilder) Build(
	userID string,
	products []*core.Product,
	vectors [][]float64,
	interactions []*core.Interaction,
) []float64 {
	logger := b.Logger
	if logger == nil {
		logger = log.Default()
	}

	weighting := b.Weighting
	if weighting.IsZero() {
		weighting = core.ContentWeighting()
	}

	index := make(map[string]int, len(products))
	for i, p := range products {
		index[p.UniqueID] = i
	}

	var (
		contributing [][]float64
		weights      []float64
	)
	for _, inter := range interactions {
		if inter.UserID != userID {
			continue
		}
		i, ok := index[inter.ProductID]
		if !ok || i >= len(vectors) {
			continue
		}
		contributing = append(contributing, vectors[i])
		weights = append(weights, weighting.Weight(inter.Kind))
	}

	if len(contributing) == 0 {
		logger.Warn("no user interactions with the candidate products were found", "user", userID)
		return nil
	}

	pref := vector.WeightedAverage(contributing, weights)
	if pref == nil {
		// 全部权重为零：没有可用的偏好信号
		logger.Warn("interaction weights sum to zero, no preference vector", "user", userID)
		return nil
	}
	return pref
}
