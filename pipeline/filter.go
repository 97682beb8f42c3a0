package pipeline

import (
	"context"

	"github.com/NinaSayers/Hybrid-techniques-in-Recommender-Systems/core"
)

// Filter 是过滤器的统一能力契约：对当前候选集打分并产出一份排序结果。
// Pipe 持有的是这个接口的有序列表，而不是具体过滤器类型。
//
// 返回约定：
//   - (list, nil)：正常结果，Entries 按分数非递增排序
//   - (nil, nil)：本过滤器无法产出有效结果（输入无效 / 无个性化可能），
//     由 Pipe 负责兜底，不视为错误
//   - (nil, err)：上游数据访问失败，原样向调用方传播
type Filter interface {
	// Name 返回过滤器名称（用于日志与结果标注）
	Name() string

	// Apply 对 rctx 的候选集执行过滤与打分
	Apply(ctx context.Context, rctx *core.Context) (*core.RecommendationList, error)
}
