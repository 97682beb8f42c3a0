package pipeline

import (
	"context"
	"sort"

	"github.com/charmbracelet/log"

	"github.com/NinaSayers/Hybrid-techniques-in-Recommender-Systems/core"
	"github.com/NinaSayers/Hybrid-techniques-in-Recommender-Systems/pkg/utils"
)

// Pipe 把推荐逻辑拆成可组合的过滤器链：按序运行每个过滤器，
// 上一阶段的存活商品构成下一阶段的候选集，逐阶段累积分数。
//
// 组合规则：
//   - 某个过滤器产出空/nil 结果时，Pipe 短路并对当前存活候选集返回
//     中性兜底（每个商品统一记 1 分）——推荐链路必须总能给出可展示的结果
//   - 全部过滤器跑完后，每个商品的多阶段分数取算术平均，按合并分降序排序；
//     同分按商品 ID 升序，保证输出可复现
//   - Pipe 层不做 limit 截断，调用方按需切片
type Pipe struct {
	Filters []Filter

	// Products 用于把存活商品 ID 还原为完整商品记录，作为下一阶段的输入。
	// 为 nil 时直接在当前候选集内收窄。
	Products core.ProductStore

	// Logger 为 nil 时使用默认 logger
	Logger *log.Logger
}

func (p *Pipe) Name() string { return "pipeline.pipe" }

// Apply 对 rctx 依次运行全部过滤器并合并结果。
func (p *Pipe) Apply(ctx context.Context, rctx *core.Context) (*core.RecommendationList, error) {
	logger := p.logger()

	if rctx == nil || len(rctx.Products) == 0 {
		logger.Warn("empty context, nothing to recommend")
		return &core.RecommendationList{Entries: []*core.RecommendationEntry{}}, nil
	}

	cur := rctx.Products

	// 空过滤器列表：恒等行为，候选集原样返回并带中性分
	if len(p.Filters) == 0 {
		return neutralList(rctx.UserID, cur, 0, "pipeline.identity"), nil
	}

	logger.Info("applying filters in sequence", "filters", len(p.Filters), "user", rctx.UserID)

	scores := make(map[string][]float64)
	merged := make(map[string]*core.RecommendationEntry)

	for _, f := range p.Filters {
		rctx.Products = cur

		result, err := f.Apply(ctx, rctx)
		if err != nil {
			return nil, err
		}
		if result == nil || len(result.Entries) == 0 {
			logger.Warn("no recommendations from filter, falling back to neutral scores", "filter", f.Name())
			return neutralList(rctx.UserID, cur, 0, "pipeline.fallback"), nil
		}

		for _, e := range result.Entries {
			scores[e.ProductID] = append(scores[e.ProductID], e.Score)
			if prev, ok := merged[e.ProductID]; ok {
				for k, lbl := range e.Labels {
					prev.PutLabel(k, lbl)
				}
			} else {
				entry := core.NewRecommendationEntry(e.ProductID, 0)
				for k, lbl := range e.Labels {
					entry.PutLabel(k, lbl)
				}
				merged[e.ProductID] = entry
			}
		}

		cur, err = p.narrow(ctx, cur, result)
		if err != nil {
			return nil, err
		}
	}

	// 多阶段分数取算术平均
	final := make([]*core.RecommendationEntry, 0, len(scores))
	for productID, stageScores := range scores {
		var sum float64
		for _, s := range stageScores {
			sum += s
		}
		entry := merged[productID]
		entry.Score = sum / float64(len(stageScores))
		final = append(final, entry)
	}

	sort.Slice(final, func(i, j int) bool {
		if final[i].Score != final[j].Score {
			return final[i].Score > final[j].Score
		}
		return final[i].ProductID < final[j].ProductID
	})

	return &core.RecommendationList{
		UserID:  rctx.UserID,
		Entries: final,
		Limit:   rctx.Limit,
	}, nil
}

// narrow 把本阶段结果收窄为下一阶段的候选商品列表，保持结果顺序。
func (p *Pipe) narrow(ctx context.Context, cur []*core.Product, result *core.RecommendationList) ([]*core.Product, error) {
	next := make([]*core.Product, 0, len(result.Entries))

	if p.Products == nil {
		byID := make(map[string]*core.Product, len(cur))
		for _, prod := range cur {
			byID[prod.UniqueID] = prod
		}
		for _, e := range result.Entries {
			if prod, ok := byID[e.ProductID]; ok {
				next = append(next, prod)
			}
		}
		return next, nil
	}

	for _, e := range result.Entries {
		prod, err := p.Products.GetByID(ctx, e.ProductID)
		if err != nil {
			if core.IsStoreNotFound(err) {
				p.logger().Warn("recommended product vanished from store", "product", e.ProductID)
				continue
			}
			return nil, err
		}
		next = append(next, prod)
	}
	return next, nil
}

func (p *Pipe) logger() *log.Logger {
	if p.Logger != nil {
		return p.Logger
	}
	return log.Default()
}

// neutralList 对 products 生成统一中性分（1）的结果集。
// max > 0 时截断到 max 条。
func neutralList(userID string, products []*core.Product, max int, source string) *core.RecommendationList {
	n := len(products)
	if max > 0 && n > max {
		n = max
	}
	entries := make([]*core.RecommendationEntry, 0, n)
	for _, prod := range products[:n] {
		entry := core.NewRecommendationEntry(prod.UniqueID, 1)
		entry.PutLabel("source", utils.Label{Value: source, Source: "pipeline"})
		entries = append(entries, entry)
	}
	return &core.RecommendationList{UserID: userID, Entries: entries}
}
