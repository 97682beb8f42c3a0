package core

// Customer 是用户实体。推荐链路只读取 CustomerID 用于定位交互矩阵的行，
// 其余属性供上层展示/画像使用。
type Customer struct {
	CustomerID string
	Age        int
	Gender     string
	Location   string
}
