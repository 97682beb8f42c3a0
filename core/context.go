package core

// Context 承载一次推荐请求的输入，贯穿整个过滤流水线透传。
//
// Products 是当前候选商品集：流水线在阶段之间会用上一阶段的存活商品
// 替换它，除此之外各组件不修改 Context。
type Context struct {
	Products []*Product
	UserID   string
	Limit    int
}

// EffectiveLimit 返回生效的结果上限；未设置时取默认配置。
func (rctx *Context) EffectiveLimit() int {
	if rctx.Limit > 0 {
		return rctx.Limit
	}
	return defaultConfig.DefaultLimit()
}
