package core

// Vectorizer 是文本向量化能力的领域接口（fit/transform 契约）。
//
// 契约：
//   - Fit 在一批文档上建立词表与权重；Transform 使用"最近一次 Fit"的词表
//     把文档投影到同一坐标空间
//   - 确定性：相同的文档序列必须产出相同的向量（无随机初始化），
//     这是 recommend 幂等性的前提
//   - Fit 对空文档集或全零词表返回错误
//
// 实现：
//   - vector.TFIDF 实现此接口（带英文停用词过滤的 TF-IDF）
type Vectorizer interface {
	// Fit 在 docs 上建立向量空间
	Fit(docs []string) error

	// Transform 把 docs 投影到已拟合的向量空间
	Transform(docs []string) ([][]float64, error)
}
