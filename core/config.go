package core

import "time"

// RecommenderConfig 是推荐相关的配置接口，用于提供默认值。
type RecommenderConfig interface {
	// DefaultLimit 返回默认的推荐结果数上限
	DefaultLimit() int

	// NeutralFallbackCap 返回中性兜底结果的固定上限
	NeutralFallbackCap() int

	// DataAccessTimeout 返回数据访问边界的默认超时时间
	DataAccessTimeout() time.Duration
}

// DefaultRecommenderConfig 是默认的配置实现。
type DefaultRecommenderConfig struct{}

func (c *DefaultRecommenderConfig) DefaultLimit() int {
	return 10
}

func (c *DefaultRecommenderConfig) NeutralFallbackCap() int {
	return 50
}

func (c *DefaultRecommenderConfig) DataAccessTimeout() time.Duration {
	return 2 * time.Second
}

var defaultConfig RecommenderConfig = &DefaultRecommenderConfig{}
