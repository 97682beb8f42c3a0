// Package recommender 是一个混合推荐引擎：
// 结合商品描述文本相似（基于内容的过滤）与用户行为相似（协同过滤），
// 通过过滤流水线组合成一份最终排序的推荐列表。
//
// 设计要点：
//   - Pipeline-first: 推荐逻辑拆成可组合的过滤器链（内容 → 协同 → 规则...），
//     阶段之间用存活候选集串联，分数逐阶段累积后取平均
//   - 请求级模型: TF-IDF 向量空间与交互矩阵都在请求内重建，不跨请求共享
//   - 永远有结果: 非致命条件（无交互历史、向量退化）降级为中性兜底，
//     只有上游数据访问失败才向调用方传播错误
package recommender

import (
	"context"

	"github.com/NinaSayers/Hybrid-techniques-in-Recommender-Systems/core"
	"github.com/NinaSayers/Hybrid-techniques-in-Recommender-Systems/filter"
	"github.com/NinaSayers/Hybrid-techniques-in-Recommender-Systems/pipeline"
)

// 轻量 facade：便于直接 import 根包使用核心抽象。
type (
	Context            = core.Context
	Product            = core.Product
	Customer           = core.Customer
	Interaction        = core.Interaction
	RecommendationList = core.RecommendationList
	Pipe               = pipeline.Pipe
	Filter             = pipeline.Filter
)

// NewDefaultPipe 构建默认流水线：基于内容的过滤 → 协同过滤。
func NewDefaultPipe(
	products core.ProductStore,
	customers core.CustomerStore,
	interactions core.InteractionStore,
) *pipeline.Pipe {
	return &pipeline.Pipe{
		Filters: []pipeline.Filter{
			&filter.ContentBasedFilter{Interactions: interactions},
			&filter.CollaborativeFilter{Customers: customers, Interactions: interactions},
		},
		Products: products,
	}
}

// Recommend 是推荐引擎的统一入口：对 rctx 运行默认流水线。
// 相同的候选集与交互数据下结果是确定的（可复现）。
func Recommend(
	ctx context.Context,
	products core.ProductStore,
	customers core.CustomerStore,
	interactions core.InteractionStore,
	rctx *core.Context,
) (*core.RecommendationList, error) {
	return NewDefaultPipe(products, customers, interactions).Apply(ctx, rctx)
}
