package vector

import (
	"math"
	"strings"
	"unicode"

	"github.com/NinaSayers/Hybrid-techniques-in-Recommender-Systems/core"
)

// TFIDF 是带英文停用词过滤的 TF-IDF 向量化器，实现 core.Vectorizer。
//
// 设计要点：
//   - fit/transform 契约：Fit 建立词表与 IDF，Transform 投影到同一坐标空间
//   - 确定性：词表下标按词条在文档序列中的首次出现顺序分配，不依赖 map
//     迭代顺序；相同的文档序列必然产出相同的向量
//   - 行向量做 L2 归一化，余弦相似度退化为点积，且 sim(v, v) == 1
//   - 请求级生命周期：每次推荐请求重新 Fit 当前候选集，不跨请求缓存
type TFIDF struct {
	// StopWords 是停用词表；nil 时使用内置英文停用词表
	StopWords map[string]struct{}

	vocab  map[string]int // 词条 -> 向量下标
	terms  []string       // 向量下标 -> 词条（首次出现顺序）
	idf    []float64
	fitted bool
}

func NewTFIDF() *TFIDF {
	return &TFIDF{}
}

var errNotFitted = core.NewDomainError(core.ModuleVector, core.ErrorCodeInvalidInput, "vector: transform called before fit")

// Fit 在 docs 上建立词表与 IDF。
// 空文档集返回 ErrEmptyCorpus；停用词过滤后词表为空返回 ErrEmptyVocabulary。
func (t *TFIDF) Fit(docs []string) error {
	if len(docs) == 0 {
		return core.ErrEmptyCorpus
	}

	stop := t.StopWords
	if stop == nil {
		stop = EnglishStopWords
	}

	vocab := make(map[string]int)
	terms := make([]string, 0)
	df := make(map[string]int)

	for _, doc := range docs {
		tokens := tokenize(doc, stop)
		seen := make(map[string]struct{}, len(tokens))
		for _, tok := range tokens {
			if _, ok := vocab[tok]; !ok {
				vocab[tok] = len(terms)
				terms = append(terms, tok)
			}
			if _, ok := seen[tok]; !ok {
				seen[tok] = struct{}{}
				df[tok]++
			}
		}
	}

	if len(terms) == 0 {
		return core.ErrEmptyVocabulary
	}

	n := float64(len(docs))
	idf := make([]float64, len(terms))
	for i, term := range terms {
		// 平滑 IDF：log((1+n)/(1+df)) + 1，词表内词条权重恒为正
		idf[i] = math.Log((1+n)/(1+float64(df[term]))) + 1
	}

	t.vocab = vocab
	t.terms = terms
	t.idf = idf
	t.fitted = true
	return nil
}

// Transform 把 docs 投影到已拟合的向量空间；词表外的词条被忽略。
func (t *TFIDF) Transform(docs []string) ([][]float64, error) {
	if !t.fitted {
		return nil, errNotFitted
	}

	stop := t.StopWords
	if stop == nil {
		stop = EnglishStopWords
	}

	out := make([][]float64, len(docs))
	for i, doc := range docs {
		vec := make([]float64, len(t.terms))
		tokens := tokenize(doc, stop)
		if len(tokens) > 0 {
			for _, tok := range tokens {
				if idx, ok := t.vocab[tok]; ok {
					vec[idx]++
				}
			}
			total := float64(len(tokens))
			for idx := range vec {
				if vec[idx] > 0 {
					vec[idx] = (vec[idx] / total) * t.idf[idx]
				}
			}
			normalize(vec)
		}
		out[i] = vec
	}
	return out, nil
}

// FitTransform 在 docs 上 Fit 后立刻 Transform 同一批文档。
func (t *TFIDF) FitTransform(docs []string) ([][]float64, error) {
	if err := t.Fit(docs); err != nil {
		return nil, err
	}
	return t.Transform(docs)
}

// VocabularySize 返回已拟合词表的大小（未拟合时为 0）。
func (t *TFIDF) VocabularySize() int {
	return len(t.terms)
}

// tokenize 切词：小写化，按非字母数字切分，丢弃单字符词条与停用词。
func tokenize(doc string, stop map[string]struct{}) []string {
	fields := strings.FieldsFunc(strings.ToLower(doc), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		if len(f) < 2 {
			continue
		}
		if _, ok := stop[f]; ok {
			continue
		}
		tokens = append(tokens, f)
	}
	return tokens
}

// normalize 把向量原地 L2 归一化；零向量保持不变。
func normalize(vec []float64) {
	var sum float64
	for _, v := range vec {
		sum += v * v
	}
	if sum == 0 {
		return
	}
	norm := math.Sqrt(sum)
	for i := range vec {
		vec[i] /= norm
	}
}

// 确保 TFIDF 实现了 core.Vectorizer 接口
var _ core.Vectorizer = (*TFIDF)(nil)
