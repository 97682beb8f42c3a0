package core

import "fmt"

// Product 是推荐链路中的商品实体：只读输入，描述文本是向量化的最小单元。
type Product struct {
	UniqueID      string
	Name          string
	Brand         string
	Category      string
	About         string
	Specification string

	// 以下为展示/规则过滤用的附加属性，不参与向量化
	SellingPrice float64
	Color        string
	Stock        int
}

// Described 返回商品的描述文本，作为向量化输入。
// 拼接顺序固定（名称、介绍、类目、品牌、规格），同一商品多次调用结果一致，
// 保证相似度计算可复现。
func (p *Product) Described() string {
	return fmt.Sprintf("%s %s %s %s %s", p.Name, p.About, p.Category, p.Brand, p.Specification)
}
