package config

import (
	"fmt"

	"github.com/NinaSayers/Hybrid-techniques-in-Recommender-Systems/core"
	"github.com/NinaSayers/Hybrid-techniques-in-Recommender-Systems/filter"
	"github.com/NinaSayers/Hybrid-techniques-in-Recommender-Systems/pipeline"
	"github.com/NinaSayers/Hybrid-techniques-in-Recommender-Systems/pkg/conv"
)

// Stores 是构建过滤器所需的存储依赖集合。
// 过滤器的算法参数来自 YAML，存储依赖来自代码注入。
type Stores struct {
	Products     core.ProductStore
	Customers    core.CustomerStore
	Interactions core.InteractionStore
}

// DefaultFactory 返回包含全部内置过滤器构建器的工厂。
//
// 支持的类型与配置项：
//   - filter.content：weights（map）、default_weight
//   - filter.collaborative：weights（map）、default_weight、neutral_cap、max_concurrent
//   - filter.rule：expression（必填，CEL 表达式）
func DefaultFactory(s Stores) *pipeline.FilterFactory {
	factory := pipeline.NewFilterFactory()
	factory.Register("filter.content", buildContentFilter(s))
	factory.Register("filter.collaborative", buildCollaborativeFilter(s))
	factory.Register("filter.rule", buildRuleFilter)
	return factory
}

// BuildPipe 按配置构建流水线并接好存储依赖。
func BuildPipe(cfg *pipeline.Config, s Stores) (*pipeline.Pipe, error) {
	pipe, err := cfg.BuildPipe(DefaultFactory(s))
	if err != nil {
		return nil, err
	}
	pipe.Products = s.Products
	return pipe, nil
}

func buildContentFilter(s Stores) pipeline.FilterBuilder {
	return func(config map[string]any) (pipeline.Filter, error) {
		return &filter.ContentBasedFilter{
			Interactions: s.Interactions,
			Weighting:    weightingFromConfig(config),
		}, nil
	}
}

func buildCollaborativeFilter(s Stores) pipeline.FilterBuilder {
	return func(config map[string]any) (pipeline.Filter, error) {
		return &filter.CollaborativeFilter{
			Customers:     s.Customers,
			Interactions:  s.Interactions,
			Weighting:     weightingFromConfig(config),
			NeutralCap:    conv.ConfigGetInt(config, "neutral_cap", 0),
			MaxConcurrent: conv.ConfigGetInt(config, "max_concurrent", 0),
		}, nil
	}
}

func buildRuleFilter(config map[string]any) (pipeline.Filter, error) {
	expression := conv.ConfigGet[string](config, "expression", "")
	if expression == "" {
		return nil, fmt.Errorf("rule filter requires an expression")
	}
	return &filter.RuleFilter{Expression: expression}, nil
}

// weightingFromConfig 从配置读取权重策略；未配置时返回零值，
// 由过滤器回退到各自的预设量表。
func weightingFromConfig(config map[string]any) core.Weighting {
	weightsMap, ok := config["weights"].(map[string]any)
	if !ok {
		return core.Weighting{}
	}
	return core.Weighting{
		Weights: conv.MapToFloat64(weightsMap),
		Default: conv.ConfigGet[float64](config, "default_weight", 0),
	}
}
