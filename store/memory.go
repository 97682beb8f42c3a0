package store

import (
	"context"
	"sync"
	"time"

	"github.com/NinaSayers/Hybrid-techniques-in-Recommender-Systems/core"
)

// Memory 是内存实现的存储三件套，用于测试/开发/原型。
// 进程重启后数据丢失。GetAll 的返回顺序是写入顺序（稳定），
// 候选集与交互矩阵的行列序都依赖这个稳定性。
type Memory struct {
	Products     *MemoryProducts
	Customers    *MemoryCustomers
	Interactions *MemoryInteractions
}

func NewMemory() *Memory {
	return &Memory{
		Products:     NewMemoryProducts(),
		Customers:    NewMemoryCustomers(),
		Interactions: NewMemoryInteractions(),
	}
}

// MemoryProducts 实现 core.ProductStore。
type MemoryProducts struct {
	mu    sync.RWMutex
	byID  map[string]*core.Product
	order []string
}

func NewMemoryProducts() *MemoryProducts {
	return &MemoryProducts{byID: make(map[string]*core.Product)}
}

// Add 写入商品（种子数据/测试用）。重复 ID 覆盖旧值，保持原顺序。
func (m *MemoryProducts) Add(products ...*core.Product) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range products {
		if _, ok := m.byID[p.UniqueID]; !ok {
			m.order = append(m.order, p.UniqueID)
		}
		m.byID[p.UniqueID] = p
	}
}

func (m *MemoryProducts) GetAll(ctx context.Context) ([]*core.Product, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*core.Product, 0, len(m.order))
	for _, id := range m.order {
		out = append(out, m.byID[id])
	}
	return out, nil
}

func (m *MemoryProducts) GetByID(ctx context.Context, id string) (*core.Product, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, ok := m.byID[id]
	if !ok {
		return nil, core.ErrStoreNotFound
	}
	return p, nil
}

func (m *MemoryProducts) GetAllPaginated(ctx context.Context, page, pageSize int) ([]*core.Product, error) {
	if page < 1 || pageSize < 1 {
		return nil, core.NewDomainError(core.ModuleStore, core.ErrorCodeInvalidInput, "store: page and pageSize must be >= 1")
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	start := (page - 1) * pageSize
	if start >= len(m.order) {
		return []*core.Product{}, nil
	}
	end := start + pageSize
	if end > len(m.order) {
		end = len(m.order)
	}

	out := make([]*core.Product, 0, end-start)
	for _, id := range m.order[start:end] {
		out = append(out, m.byID[id])
	}
	return out, nil
}

// MemoryCustomers 实现 core.CustomerStore。
type MemoryCustomers struct {
	mu    sync.RWMutex
	byID  map[string]*core.Customer
	order []string
}

func NewMemoryCustomers() *MemoryCustomers {
	return &MemoryCustomers{byID: make(map[string]*core.Customer)}
}

// Add 写入用户（种子数据/测试用）。
func (m *MemoryCustomers) Add(customers ...*core.Customer) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, c := range customers {
		if _, ok := m.byID[c.CustomerID]; !ok {
			m.order = append(m.order, c.CustomerID)
		}
		m.byID[c.CustomerID] = c
	}
}

func (m *MemoryCustomers) GetAll(ctx context.Context) ([]*core.Customer, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*core.Customer, 0, len(m.order))
	for _, id := range m.order {
		out = append(out, m.byID[id])
	}
	return out, nil
}

func (m *MemoryCustomers) GetByID(ctx context.Context, id string) (*core.Customer, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	c, ok := m.byID[id]
	if !ok {
		return nil, core.ErrStoreNotFound
	}
	return c, nil
}

// MemoryInteractions 实现 core.InteractionStore。
type MemoryInteractions struct {
	mu     sync.RWMutex
	byUser map[string][]*core.Interaction
}

func NewMemoryInteractions() *MemoryInteractions {
	return &MemoryInteractions{byUser: make(map[string][]*core.Interaction)}
}

// Add 写入带显式时间戳的交互记录（种子数据/测试用）。
func (m *MemoryInteractions) Add(interactions ...*core.Interaction) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, inter := range interactions {
		m.byUser[inter.UserID] = append(m.byUser[inter.UserID], inter)
	}
}

func (m *MemoryInteractions) GetByUser(ctx context.Context, userID string) ([]*core.Interaction, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	src := m.byUser[userID]
	out := make([]*core.Interaction, len(src))
	copy(out, src)
	return out, nil
}

func (m *MemoryInteractions) Create(ctx context.Context, userID, productID, kind, note string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.byUser[userID] = append(m.byUser[userID], &core.Interaction{
		UserID:    userID,
		ProductID: productID,
		Kind:      kind,
		Timestamp: time.Now(),
		Note:      note,
	})
	return nil
}

// 确保实现领域接口
var (
	_ core.ProductStore     = (*MemoryProducts)(nil)
	_ core.CustomerStore    = (*MemoryCustomers)(nil)
	_ core.InteractionStore = (*MemoryInteractions)(nil)
)
