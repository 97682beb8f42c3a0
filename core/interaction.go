package core

import "time"

// 交互类型。未在列表中的类型按各权重策略的默认值处理。
const (
	InteractionView     = "view"
	InteractionLike     = "like"
	InteractionPurchase = "purchase"
)

// Interaction 是用户与商品的一次交互记录。
// 复合主键为 (UserID, ProductID, Timestamp)：同一用户可以对同一商品
// 产生多条不同时间的交互。对推荐链路只读。
type Interaction struct {
	UserID    string
	ProductID string
	Kind      string
	Timestamp time.Time
	Note      string
}
