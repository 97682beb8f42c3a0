package store

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/NinaSayers/Hybrid-techniques-in-Recommender-Systems/core"
)

// Redis 是 Redis 实现的存储三件套，生产环境常用。
//
// 存储布局：
//   - 商品：{prefix}:product:{id} = JSON；{prefix}:products = ID 的 JSON 数组（写入顺序）
//   - 用户：{prefix}:customer:{id} = JSON；{prefix}:customers = ID 的 JSON 数组
//   - 交互：{prefix}:interactions:{userID} = JSON 记录的 List（RPUSH 追加）
type Redis struct {
	client *redis.Client
	prefix string

	Products     *RedisProducts
	Customers    *RedisCustomers
	Interactions *RedisInteractions
}

func NewRedis(addr string, db int, prefix string) (*Redis, error) {
	client := redis.NewClient(&redis.Options{
		Addr: addr,
		DB:   db,
	})
	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, err
	}
	if prefix == "" {
		prefix = "rec"
	}

	r := &Redis{client: client, prefix: prefix}
	r.Products = &RedisProducts{client: client, prefix: prefix}
	r.Customers = &RedisCustomers{client: client, prefix: prefix}
	r.Interactions = &RedisInteractions{client: client, prefix: prefix}
	return r, nil
}

func (r *Redis) Close() error {
	return r.client.Close()
}

// RedisProducts 实现 core.ProductStore。
type RedisProducts struct {
	client *redis.Client
	prefix string
}

func (s *RedisProducts) productKey(id string) string { return s.prefix + ":product:" + id }
func (s *RedisProducts) indexKey() string            { return s.prefix + ":products" }

// Add 写入商品并把 ID 追加到索引（种子数据/后台导入用）。
func (s *RedisProducts) Add(ctx context.Context, products ...*core.Product) error {
	ids, err := s.index(ctx)
	if err != nil {
		return err
	}
	known := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		known[id] = struct{}{}
	}

	pipe := s.client.Pipeline()
	for _, p := range products {
		data, err := json.Marshal(p)
		if err != nil {
			return err
		}
		pipe.Set(ctx, s.productKey(p.UniqueID), data, 0)
		if _, ok := known[p.UniqueID]; !ok {
			known[p.UniqueID] = struct{}{}
			ids = append(ids, p.UniqueID)
		}
	}
	indexData, err := json.Marshal(ids)
	if err != nil {
		return err
	}
	pipe.Set(ctx, s.indexKey(), indexData, 0)
	_, err = pipe.Exec(ctx)
	return err
}

func (s *RedisProducts) index(ctx context.Context) ([]string, error) {
	data, err := s.client.Get(ctx, s.indexKey()).Bytes()
	if err == redis.Nil {
		return []string{}, nil
	}
	if err != nil {
		return nil, err
	}
	var ids []string
	if err := json.Unmarshal(data, &ids); err != nil {
		return nil, err
	}
	return ids, nil
}

func (s *RedisProducts) GetAll(ctx context.Context) ([]*core.Product, error) {
	ids, err := s.index(ctx)
	if err != nil {
		return nil, err
	}
	return s.fetch(ctx, ids)
}

func (s *RedisProducts) GetByID(ctx context.Context, id string) (*core.Product, error) {
	data, err := s.client.Get(ctx, s.productKey(id)).Bytes()
	if err == redis.Nil {
		return nil, core.ErrStoreNotFound
	}
	if err != nil {
		return nil, err
	}
	var p core.Product
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *RedisProducts) GetAllPaginated(ctx context.Context, page, pageSize int) ([]*core.Product, error) {
	if page < 1 || pageSize < 1 {
		return nil, core.NewDomainError(core.ModuleStore, core.ErrorCodeInvalidInput, "store: page and pageSize must be >= 1")
	}

	ids, err := s.index(ctx)
	if err != nil {
		return nil, err
	}

	start := (page - 1) * pageSize
	if start >= len(ids) {
		return []*core.Product{}, nil
	}
	end := start + pageSize
	if end > len(ids) {
		end = len(ids)
	}
	return s.fetch(ctx, ids[start:end])
}

// fetch 按 ID 批量拉取商品（MGET 减少网络往返），保持 ids 顺序。
func (s *RedisProducts) fetch(ctx context.Context, ids []string) ([]*core.Product, error) {
	if len(ids) == 0 {
		return []*core.Product{}, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = s.productKey(id)
	}
	vals, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, err
	}

	out := make([]*core.Product, 0, len(ids))
	for _, v := range vals {
		str, ok := v.(string)
		if !ok {
			continue // 索引里有但实体已删除
		}
		var p core.Product
		if err := json.Unmarshal([]byte(str), &p); err != nil {
			return nil, err
		}
		out = append(out, &p)
	}
	return out, nil
}

// RedisCustomers 实现 core.CustomerStore。
type RedisCustomers struct {
	client *redis.Client
	prefix string
}

func (s *RedisCustomers) customerKey(id string) string { return s.prefix + ":customer:" + id }
func (s *RedisCustomers) indexKey() string             { return s.prefix + ":customers" }

// Add 写入用户并把 ID 追加到索引。
func (s *RedisCustomers) Add(ctx context.Context, customers ...*core.Customer) error {
	data, err := s.client.Get(ctx, s.indexKey()).Bytes()
	var ids []string
	if err == nil {
		if err := json.Unmarshal(data, &ids); err != nil {
			return err
		}
	} else if err != redis.Nil {
		return err
	}

	known := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		known[id] = struct{}{}
	}

	pipe := s.client.Pipeline()
	for _, c := range customers {
		payload, err := json.Marshal(c)
		if err != nil {
			return err
		}
		pipe.Set(ctx, s.customerKey(c.CustomerID), payload, 0)
		if _, ok := known[c.CustomerID]; !ok {
			known[c.CustomerID] = struct{}{}
			ids = append(ids, c.CustomerID)
		}
	}
	indexData, err := json.Marshal(ids)
	if err != nil {
		return err
	}
	pipe.Set(ctx, s.indexKey(), indexData, 0)
	_, err = pipe.Exec(ctx)
	return err
}

func (s *RedisCustomers) GetAll(ctx context.Context) ([]*core.Customer, error) {
	data, err := s.client.Get(ctx, s.indexKey()).Bytes()
	if err == redis.Nil {
		return []*core.Customer{}, nil
	}
	if err != nil {
		return nil, err
	}
	var ids []string
	if err := json.Unmarshal(data, &ids); err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return []*core.Customer{}, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = s.customerKey(id)
	}
	vals, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, err
	}

	out := make([]*core.Customer, 0, len(ids))
	for _, v := range vals {
		str, ok := v.(string)
		if !ok {
			continue
		}
		var c core.Customer
		if err := json.Unmarshal([]byte(str), &c); err != nil {
			return nil, err
		}
		out = append(out, &c)
	}
	return out, nil
}

func (s *RedisCustomers) GetByID(ctx context.Context, id string) (*core.Customer, error) {
	data, err := s.client.Get(ctx, s.customerKey(id)).Bytes()
	if err == redis.Nil {
		return nil, core.ErrStoreNotFound
	}
	if err != nil {
		return nil, err
	}
	var c core.Customer
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, err
	}
	return &c, nil
}

// RedisInteractions 实现 core.InteractionStore。
type RedisInteractions struct {
	client *redis.Client
	prefix string
}

func (s *RedisInteractions) userKey(userID string) string {
	return s.prefix + ":interactions:" + userID
}

func (s *RedisInteractions) GetByUser(ctx context.Context, userID string) ([]*core.Interaction, error) {
	vals, err := s.client.LRange(ctx, s.userKey(userID), 0, -1).Result()
	if err != nil {
		return nil, err
	}

	out := make([]*core.Interaction, 0, len(vals))
	for _, v := range vals {
		var inter core.Interaction
		if err := json.Unmarshal([]byte(v), &inter); err != nil {
			return nil, err
		}
		out = append(out, &inter)
	}
	return out, nil
}

func (s *RedisInteractions) Create(ctx context.Context, userID, productID, kind, note string) error {
	data, err := json.Marshal(&core.Interaction{
		UserID:    userID,
		ProductID: productID,
		Kind:      kind,
		Timestamp: time.Now(),
		Note:      note,
	})
	if err != nil {
		return err
	}
	return s.client.RPush(ctx, s.userKey(userID), data).Err()
}

// 确保实现领域接口
var (
	_ core.ProductStore     = (*RedisProducts)(nil)
	_ core.CustomerStore    = (*RedisCustomers)(nil)
	_ core.InteractionStore = (*RedisInteractions)(nil)
)
