package filter

import (
	"context"
	"sort"

	"github.com/charmbracelet/log"

	"github.com/NinaSayers/Hybrid-techniques-in-Recommender-Systems/core"
	"github.com/NinaSayers/Hybrid-techniques-in-Recommender-Systems/pipeline"
	"github.com/NinaSayers/Hybrid-techniques-in-Recommender-Systems/pkg/utils"
	"github.com/NinaSayers/Hybrid-techniques-in-Recommender-Systems/vector"
)

// ContentBasedFilter 是基于内容的过滤器（Content-Based Filtering）。
//
// 核心思想："用户偏好某些描述特征的商品，推荐描述相似的其他商品"
//
// 算法流程：
//  1. 对当前候选商品的描述文本重新拟合 TF-IDF（向量空间是请求级的，
//     相似度始终相对于当前候选集，不是全局固定模型）
//  2. 用交互权重加权平均得到用户偏好向量
//  3. 偏好向量与每个候选向量算余弦相似度
//  4. 降序排序，剔除用户交互过的商品（任何交互类型都算"已看过"），
//     截断到 limit
//
// 结果不足 limit 条时返回全部剩余，不做填充。
type ContentBasedFilter struct {
	// Interactions 提供用户交互历史
	Interactions core.InteractionStore

	// Weighting 为零值时使用内容过滤预设量表（view=2 like=3 purchase=5，其余 1）
	Weighting core.Weighting

	// NewVectorizer 构造请求级向量化器；为 nil 时使用内置 TF-IDF
	NewVectorizer func() core.Vectorizer

	// Logger 为 nil 时使用默认 logger
	Logger *log.Logger
}

func (f *ContentBasedFilter) Name() string {
	return "filter.content"
}

// Apply 对候选集执行内容过滤。
// 输入无效或无法构建偏好向量时返回 (nil, nil)，由流水线兜底。
func (f *ContentBasedFilter) Apply(ctx context.Context, rctx *core.Context) (*core.RecommendationList, error) {
	logger := f.logger()

	if rctx == nil || len(rctx.Products) == 0 || rctx.UserID == "" {
		logger.Warn("invalid context for content based filtering")
		return nil, nil
	}

	logger.Info("applying content based filtering",
		"user", rctx.UserID, "candidates", len(rctx.Products), "limit", rctx.EffectiveLimit())

	docs := make([]string, len(rctx.Products))
	for i, p := range rctx.Products {
		docs[i] = p.Described()
	}

	vec := f.newVectorizer()
	if err := vec.Fit(docs); err != nil {
		// 向量化退化（空语料/空词表）按"无有效向量"处理，不中断调用方
		logger.Error("fitting the vector space model failed", "err", err)
		return nil, nil
	}
	matrix, err := vec.Transform(docs)
	if err != nil {
		logger.Error("projecting candidate products failed", "err", err)
		return nil, nil
	}

	interactions, err := f.Interactions.GetByUser(ctx, rctx.UserID)
	if err != nil {
		return nil, err
	}

	builder := &PreferenceBuilder{Weighting: f.Weighting, Logger: f.Logger}
	pref := builder.Build(rctx.UserID, rctx.Products, matrix, interactions)
	if pref == nil {
		logger.Info("no valid user vector found", "user", rctx.UserID)
		return nil, nil
	}

	similarities := make([]float64, len(matrix))
	for i, row := range matrix {
		similarities[i] = vector.Cosine(pref, row)
	}

	// 降序排序候选下标；同分保持候选集原始顺序
	order := make([]int, len(similarities))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return similarities[order[a]] > similarities[order[b]]
	})

	interacted := make(map[string]struct{}, len(interactions))
	for _, inter := range interactions {
		interacted[inter.ProductID] = struct{}{}
	}

	limit := rctx.EffectiveLimit()
	entries := make([]*core.RecommendationEntry, 0, limit)
	for _, i := range order {
		if len(entries) >= limit {
			break
		}
		p := rctx.Products[i]
		if _, seen := interacted[p.UniqueID]; seen {
			continue
		}
		entry := core.NewRecommendationEntry(p.UniqueID, similarities[i])
		entry.PutLabel("source", utils.Label{Value: "content_based", Source: "filter"})
		entries = append(entries, entry)
	}

	return &core.RecommendationList{
		UserID:  rctx.UserID,
		Entries: entries,
		Limit:   limit,
	}, nil
}

func (f *ContentBasedFilter) newVectorizer() core.Vectorizer {
	if f.NewVectorizer != nil {
		return f.NewVectorizer()
	}
	return vector.NewTFIDF()
}

func (f *ContentBasedFilter) logger() *log.Logger {
	if f.Logger != nil {
		return f.Logger
	}
	return log.Default()
}

// 确保实现 pipeline.Filter 接口
var _ pipeline.Filter = (*ContentBasedFilter)(nil)
