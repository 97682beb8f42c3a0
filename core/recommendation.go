package core

import "github.com/NinaSayers/Hybrid-techniques-in-Recommender-Systems/pkg/utils"

// RecommendationEntry 是单条推荐结果：商品 ID + 相似度分数。
// Labels 用于解释与观测（来源过滤器、回退标记等），不参与排序。
type RecommendationEntry struct {
	ProductID string
	Score     float64
	Labels    map[string]utils.Label
}

func NewRecommendationEntry(productID string, score float64) *RecommendationEntry {
	return &RecommendationEntry{
		ProductID: productID,
		Score:     score,
		Labels:    make(map[string]utils.Label),
	}
}

// PutLabel 写入 Label；同名 key 按默认 Merge 规则累积。
func (e *RecommendationEntry) PutLabel(key string, lbl utils.Label) {
	if e.Labels == nil {
		e.Labels = make(map[string]utils.Label)
	}
	if old, ok := e.Labels[key]; ok {
		e.Labels[key] = utils.MergeLabel(old, lbl)
		return
	}
	e.Labels[key] = lbl
}

// RecommendationList 是单个过滤器（或整条流水线）的输出。
//
// 不变量：Entries 按 Score 非递增排序；同分时保持候选集原始顺序。
// 单过滤器的输出长度 ≤ Limit，除非该过滤器显式回退到中性兜底集。
type RecommendationList struct {
	UserID  string
	Entries []*RecommendationEntry
	Limit   int
}

// ProductIDs 按序返回结果中的商品 ID，供流水线收窄下一阶段候选集。
func (l *RecommendationList) ProductIDs() []string {
	ids := make([]string, 0, len(l.Entries))
	for _, e := range l.Entries {
		ids = append(ids, e.ProductID)
	}
	return ids
}
