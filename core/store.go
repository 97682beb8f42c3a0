package core

import "context"

// 存储的领域接口。
//
// 设计原则：
//   - 定义在领域层（core），由基础设施层（store）实现
//   - 遵循依赖倒置原则：领域层定义接口，基础设施层实现接口
//   - 推荐链路对存储只读（快照语义）；唯一的写路径是交互落库，
//     发生在打分路径之外
//
// 实现：
//   - store.Memory 聚合三个接口的内存实现（测试/开发/原型）
//   - store.Redis 聚合三个接口的 Redis 实现（生产常用）

// ProductStore 是商品存储接口。
type ProductStore interface {
	// GetAll 获取全部商品（顺序稳定，候选集顺序是排序 tie-break 的依据）
	GetAll(ctx context.Context) ([]*Product, error)

	// GetByID 按 ID 获取商品；不存在时返回 ErrStoreNotFound
	GetByID(ctx context.Context, id string) (*Product, error)

	// GetAllPaginated 分页获取商品，page 从 1 开始
	GetAllPaginated(ctx context.Context, page, pageSize int) ([]*Product, error)
}

// CustomerStore 是用户存储接口。
type CustomerStore interface {
	// GetAll 获取全部用户（顺序稳定，决定交互矩阵的行序）
	GetAll(ctx context.Context) ([]*Customer, error)

	// GetByID 按 ID 获取用户；不存在时返回 ErrStoreNotFound
	GetByID(ctx context.Context, id string) (*Customer, error)
}

// InteractionStore 是交互存储接口。
type InteractionStore interface {
	// GetByUser 获取某用户的全部交互记录
	GetByUser(ctx context.Context, userID string) ([]*Interaction, error)

	// Create 写入一条交互记录（时间戳由实现填充为当前时间）
	Create(ctx context.Context, userID, productID, kind, note string) error
}
