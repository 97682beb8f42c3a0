package filter

import (
	"context"
	"sort"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/NinaSayers/Hybrid-techniques-in-Recommender-Systems/core"
	"github.com/NinaSayers/Hybrid-techniques-in-Recommender-Systems/pipeline"
	"github.com/NinaSayers/Hybrid-techniques-in-Recommender-Systems/pkg/utils"
	"github.com/NinaSayers/Hybrid-techniques-in-Recommender-Systems/vector"
)

// CollaborativeFilter 是基于用户的协同过滤器（User-based Collaborative Filtering）。
//
// 核心思想："兴趣相似的用户，喜欢相似的商品"
//
// 算法流程：
//  1. 构建用户×候选商品交互矩阵：行 = 全部已知用户，列 = 候选商品
//     （固定稳定顺序）；单元格 = 该用户对该商品交互权重的最大值，无交互为 0
//  2. 目标用户行与其余各行算余弦相似度，邻居按相似度降序排序
//     （同分按用户 ID 升序，保证可复现）
//  3. 从最相似邻居开始：邻居交互过（权重 > 0）而目标用户未交互（权重 == 0）
//     的商品，累加 邻居权重 × (邻居相似度 / 最大邻居相似度)
//  4. 累加分降序排序，按最大累加分归一化到 [0,1]，截断到 limit
//
// 目标用户无交互记录或不在用户表中时，返回中性兜底：每个候选商品统一
// 记 1 分，截断到固定上限（50）——表示"无个性化可能"，而不是失败。
//
// 矩阵是请求级的，每次请求全量重建，代价 O(users×products)，只适用于
// 小规模数据；矩阵行的拉取在数据访问边界并发执行，打分本身保持同步。
type CollaborativeFilter struct {
	// Customers 提供全部已知用户（顺序即矩阵行序）
	Customers core.CustomerStore

	// Interactions 提供各用户的交互历史
	Interactions core.InteractionStore

	// Weighting 为零值时使用协同过滤预设量表（view=1 like=2 purchase=3，其余 0）
	Weighting core.Weighting

	// NeutralCap 是中性兜底结果的上限；<= 0 时取默认配置（50）
	NeutralCap int

	// MaxConcurrent 是矩阵行拉取的最大并发数；<= 0 时默认 8
	MaxConcurrent int

	// Logger 为 nil 时使用默认 logger
	Logger *log.Logger
}

func (f *CollaborativeFilter) Name() string {
	return "filter.collaborative"
}

// Apply 对候选集执行协同过滤。除上游数据访问失败外总是返回结果。
func (f *CollaborativeFilter) Apply(ctx context.Context, rctx *core.Context) (*core.RecommendationList, error) {
	logger := f.logger()

	if rctx == nil || rctx.UserID == "" {
		logger.Warn("invalid context for collaborative filtering")
		return nil, nil
	}

	logger.Info("applying collaborative filtering",
		"user", rctx.UserID, "candidates", len(rctx.Products), "limit", rctx.EffectiveLimit())

	targetInteractions, err := f.Interactions.GetByUser(ctx, rctx.UserID)
	if err != nil {
		return nil, err
	}
	if len(targetInteractions) == 0 {
		logger.Warn("no interactions found for user, returning neutral recommendations", "user", rctx.UserID)
		return f.neutralFallback(rctx), nil
	}

	customers, err := f.Customers.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	matrix, err := f.buildInteractionMatrix(ctx, customers, rctx.Products)
	if err != nil {
		return nil, err
	}

	targetIndex := -1
	for i, c := range customers {
		if c.CustomerID == rctx.UserID {
			targetIndex = i
			break
		}
	}
	if targetIndex < 0 {
		logger.Warn("user not found in the interaction matrix, returning neutral recommendations", "user", rctx.UserID)
		return f.neutralFallback(rctx), nil
	}

	neighbors := f.rankNeighbors(customers, matrix, targetIndex)
	scores, touched := f.accumulateScores(matrix, targetIndex, neighbors)

	return f.rankProducts(rctx, scores, touched), nil
}

// buildInteractionMatrix 构建用户×候选商品交互矩阵。
// 行序 = customers 顺序，列序 = 候选商品顺序。同一 (用户, 商品) 存在多条
// 交互时取权重最大值。行的拉取并发执行（有界），结果按行下标写回，
// 不影响确定性。
func (f *CollaborativeFilter) buildInteractionMatrix(
	ctx context.Context,
	customers []*core.Customer,
	products []*core.Product,
) ([][]float64, error) {
	weighting := f.Weighting
	if weighting.IsZero() {
		weighting = core.CollaborativeWeighting()
	}

	colIndex := make(map[string]int, len(products))
	for j, p := range products {
		colIndex[p.UniqueID] = j
	}

	maxConcurrent := f.MaxConcurrent
	if maxConcurrent <= 0 {
		maxConcurrent = 8
	}

	matrix := make([][]float64, len(customers))
	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(maxConcurrent)

	for i, c := range customers {
		i, c := i, c
		eg.Go(func() error {
			interactions, err := f.Interactions.GetByUser(egCtx, c.CustomerID)
			if err != nil {
				return err
			}
			row := make([]float64, len(products))
			for _, inter := range interactions {
				j, ok := colIndex[inter.ProductID]
				if !ok {
					continue
				}
				if w := weighting.Weight(inter.Kind); w > row[j] {
					row[j] = w
				}
			}
			matrix[i] = row
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return matrix, nil
}

type neighbor struct {
	index      int
	userID     string
	similarity float64
}

// rankNeighbors 计算目标行与其余各行的余弦相似度并降序排序。
// 全零行的相似度定义为 0（见 vector.Cosine）；同分按用户 ID 升序。
func (f *CollaborativeFilter) rankNeighbors(
	customers []*core.Customer,
	matrix [][]float64,
	targetIndex int,
) []neighbor {
	target := matrix[targetIndex]
	neighbors := make([]neighbor, 0, len(matrix)-1)
	for i, row := range matrix {
		if i == targetIndex {
			continue
		}
		neighbors = append(neighbors, neighbor{
			index:      i,
			userID:     customers[i].CustomerID,
			similarity: vector.Cosine(target, row),
		})
	}

	sort.Slice(neighbors, func(a, b int) bool {
		if neighbors[a].similarity != neighbors[b].similarity {
			return neighbors[a].similarity > neighbors[b].similarity
		}
		return neighbors[a].userID < neighbors[b].userID
	})
	return neighbors
}

// accumulateScores 从最相似邻居开始累加候选商品分数：
// score[j] += 邻居权重 × (邻居相似度 / 最大邻居相似度)，
// 只计入邻居交互过而目标用户未交互的商品。
func (f *CollaborativeFilter) accumulateScores(
	matrix [][]float64,
	targetIndex int,
	neighbors []neighbor,
) (scores []float64, touched []bool) {
	target := matrix[targetIndex]
	scores = make([]float64, len(target))
	touched = make([]bool, len(target))

	var maxSimilarity float64
	if len(neighbors) > 0 {
		maxSimilarity = neighbors[0].similarity
	}

	for _, nb := range neighbors {
		normalized := 0.0
		if maxSimilarity != 0 {
			normalized = nb.similarity / maxSimilarity
		}
		for j, w := range matrix[nb.index] {
			if w > 0 && target[j] == 0 {
				scores[j] += w * normalized
				touched[j] = true
			}
		}
	}
	return scores, touched
}

// rankProducts 把累加分转成排序结果：降序排序（同分按候选列序），
// 按最大累加分归一化到 [0,1]，截断到 limit。
func (f *CollaborativeFilter) rankProducts(rctx *core.Context, scores []float64, touched []bool) *core.RecommendationList {
	cols := make([]int, 0, len(scores))
	var maxScore float64
	for j, ok := range touched {
		if !ok {
			continue
		}
		cols = append(cols, j)
		if scores[j] > maxScore {
			maxScore = scores[j]
		}
	}

	sort.SliceStable(cols, func(a, b int) bool {
		return scores[cols[a]] > scores[cols[b]]
	})

	limit := rctx.EffectiveLimit()
	if len(cols) > limit {
		cols = cols[:limit]
	}

	entries := make([]*core.RecommendationEntry, 0, len(cols))
	for _, j := range cols {
		score := 0.0
		if maxScore != 0 {
			score = scores[j] / maxScore
		}
		entry := core.NewRecommendationEntry(rctx.Products[j].UniqueID, score)
		entry.PutLabel("source", utils.Label{Value: "collaborative", Source: "filter"})
		entries = append(entries, entry)
	}

	return &core.RecommendationList{
		UserID:  rctx.UserID,
		Entries: entries,
		Limit:   limit,
	}
}

// neutralFallback 生成"无个性化可能"的中性兜底：每个候选商品统一记 1 分，
// 截断到固定上限。
func (f *CollaborativeFilter) neutralFallback(rctx *core.Context) *core.RecommendationList {
	neutralCap := f.NeutralCap
	if neutralCap <= 0 {
		neutralCap = (&core.DefaultRecommenderConfig{}).NeutralFallbackCap()
	}

	n := len(rctx.Products)
	if n > neutralCap {
		n = neutralCap
	}
	entries := make([]*core.RecommendationEntry, 0, n)
	for _, p := range rctx.Products[:n] {
		entry := core.NewRecommendationEntry(p.UniqueID, 1)
		entry.PutLabel("source", utils.Label{Value: "collaborative_fallback", Source: "filter"})
		entries = append(entries, entry)
	}
	return &core.RecommendationList{
		UserID:  rctx.UserID,
		Entries: entries,
		Limit:   rctx.EffectiveLimit(),
	}
}

func (f *CollaborativeFilter) logger() *log.Logger {
	if f.Logger != nil {
		return f.Logger
	}
	return log.Default()
}

// 确保实现 pipeline.Filter 接口
var _ pipeline.Filter = (*CollaborativeFilter)(nil)
