package pipeline

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config 是过滤流水线的配置结构（YAML）。
type Config struct {
	Pipeline struct {
		Name    string         `yaml:"name"`
		Filters []FilterConfig `yaml:"filters"`
	} `yaml:"pipeline"`
}

// FilterConfig 是单个过滤器的配置。
type FilterConfig struct {
	Type   string         `yaml:"type"`   // filter.content / filter.collaborative / filter.rule
	Config map[string]any `yaml:"config"` // 过滤器特定配置
}

// LoadFromYAML 从 YAML 文件加载流水线配置。
func LoadFromYAML(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}
	return ParseYAML(data)
}

// ParseYAML 从 YAML 字节解析流水线配置。
func ParseYAML(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}
	return &cfg, nil
}

// BuildPipe 根据配置构建 Pipe。过滤器按配置中的顺序组装。
// 注意：factory 在独立的 config 包中装配，避免循环依赖。
func (c *Config) BuildPipe(factory *FilterFactory) (*Pipe, error) {
	filters := make([]Filter, 0, len(c.Pipeline.Filters))

	for _, fc := range c.Pipeline.Filters {
		f, err := factory.Build(fc.Type, fc.Config)
		if err != nil {
			return nil, fmt.Errorf("build filter %s: %w", fc.Type, err)
		}
		filters = append(filters, f)
	}

	return &Pipe{Filters: filters}, nil
}

// FilterBuilder 根据配置构建一个过滤器。
type FilterBuilder func(config map[string]any) (Filter, error)

// FilterFactory 用于根据配置构建过滤器实例。
type FilterFactory struct {
	builders map[string]FilterBuilder
	types    []string // 注册顺序，用于错误提示
}

func NewFilterFactory() *FilterFactory {
	return &FilterFactory{
		builders: make(map[string]FilterBuilder),
	}
}

// Register 注册一种过滤器的构建逻辑。
func (f *FilterFactory) Register(filterType string, builder FilterBuilder) {
	if filterType == "" || builder == nil {
		return
	}
	if _, ok := f.builders[filterType]; !ok {
		f.types = append(f.types, filterType)
	}
	f.builders[filterType] = builder
}

// SupportedTypes 返回已注册的过滤器类型列表（注册顺序）。
func (f *FilterFactory) SupportedTypes() []string {
	out := make([]string, len(f.types))
	copy(out, f.types)
	return out
}

// Build 根据类型和配置构建过滤器。
func (f *FilterFactory) Build(filterType string, config map[string]any) (Filter, error) {
	builder, ok := f.builders[filterType]
	if !ok {
		return nil, fmt.Errorf("unknown filter type %q (supported: %v)", filterType, f.SupportedTypes())
	}
	return builder(config)
}
