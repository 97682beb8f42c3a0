package filter

import (
	"context"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/NinaSayers/Hybrid-techniques-in-Recommender-Systems/core"
	"github.com/NinaSayers/Hybrid-techniques-in-Recommender-Systems/pipeline"
	"github.com/NinaSayers/Hybrid-techniques-in-Recommender-Systems/pkg/dsl"
	"github.com/NinaSayers/Hybrid-techniques-in-Recommender-Systems/pkg/utils"
)

// RuleFilter 是基于 CEL 表达式的候选收窄过滤器：只保留命中表达式的商品，
// 输出中性分（1），不改变排序信号。通常放在打分过滤器之前，用业务规则
// 缩小候选集（如 `product.category == "Toys" && product.stock > 0`）。
//
// 表达式在首次 Apply 时编译一次，后续复用。
type RuleFilter struct {
	// Expression 是对候选商品求值的 CEL 表达式，必须返回 bool
	Expression string

	// Logger 为 nil 时使用默认 logger
	Logger *log.Logger

	once    sync.Once
	eval    *dsl.Eval
	evalErr error
}

func (f *RuleFilter) Name() string {
	return "filter.rule"
}

// Apply 按表达式收窄候选集；表达式编译失败视为配置错误并传播。
// 单个商品求值失败时跳过该商品，不中断整体流程。
func (f *RuleFilter) Apply(ctx context.Context, rctx *core.Context) (*core.RecommendationList, error) {
	logger := f.logger()

	if rctx == nil || len(rctx.Products) == 0 {
		logger.Warn("invalid context for rule filtering")
		return nil, nil
	}

	f.once.Do(func() {
		f.eval, f.evalErr = dsl.NewEval(f.Expression)
	})
	if f.evalErr != nil {
		return nil, f.evalErr
	}

	entries := make([]*core.RecommendationEntry, 0, len(rctx.Products))
	for _, p := range rctx.Products {
		ok, err := f.eval.Match(p)
		if err != nil {
			logger.Warn("rule evaluation failed for product, skipping", "product", p.UniqueID, "err", err)
			continue
		}
		if !ok {
			continue
		}
		entry := core.NewRecommendationEntry(p.UniqueID, 1)
		entry.PutLabel("source", utils.Label{Value: "rule", Source: "filter"})
		entries = append(entries, entry)
	}

	logger.Info("rule filter applied",
		"expression", f.Expression, "in", len(rctx.Products), "out", len(entries))

	return &core.RecommendationList{
		UserID:  rctx.UserID,
		Entries: entries,
		Limit:   rctx.EffectiveLimit(),
	}, nil
}

func (f *RuleFilter) logger() *log.Logger {
	if f.Logger != nil {
		return f.Logger
	}
	return log.Default()
}

// 确保实现 pipeline.Filter 接口
var _ pipeline.Filter = (*RuleFilter)(nil)
