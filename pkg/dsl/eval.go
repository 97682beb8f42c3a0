package dsl

import (
	"fmt"
	"sync"

	"github.com/google/cel-go/cel"

	"github.com/NinaSayers/Hybrid-techniques-in-Recommender-Systems/core"
)

var (
	// celEnv 是全局的 CEL 环境，线程安全，可复用
	celEnv     *cel.Env
	celEnvOnce sync.Once
	celEnvErr  error
)

// initCELEnv 初始化 CEL 环境，定义变量
func initCELEnv() (*cel.Env, error) {
	return cel.NewEnv(
		cel.Variable("product", cel.DynType),
	)
}

// getCELEnv 获取或创建 CEL 环境
func getCELEnv() (*cel.Env, error) {
	celEnvOnce.Do(func() {
		celEnv, celEnvErr = initCELEnv()
	})
	return celEnv, celEnvErr
}

// Eval 是候选商品规则表达式的解释器，使用 CEL (Common Expression Language) 实现。
//
// 表达式语法（CEL 标准语法）：
//   - 基础：product.category == "Toys" / product.brand != "Acme"
//   - 数值：product.stock > 0
//   - 逻辑：product.category == "Toys" && product.stock > 10
//   - 包含：product.name.contains("LEGO")
//
// 表达式编译一次后可对多个商品重复求值。
type Eval struct {
	prg cel.Program
}

// NewEval 编译表达式并返回解释器。表达式必须求值为 bool。
func NewEval(expression string) (*Eval, error) {
	env, err := getCELEnv()
	if err != nil {
		return nil, fmt.Errorf("init cel env: %w", err)
	}

	ast, issues := env.Compile(expression)
	if issues != nil && issues.Err() != nil {
		return nil, fmt.Errorf("compile expression %q: %w", expression, issues.Err())
	}

	prg, err := env.Program(ast)
	if err != nil {
		return nil, fmt.Errorf("build program: %w", err)
	}

	return &Eval{prg: prg}, nil
}

// Match 对单个商品求值表达式，返回是否命中。
func (e *Eval) Match(p *core.Product) (bool, error) {
	if p == nil {
		return false, nil
	}

	out, _, err := e.prg.Eval(map[string]any{
		"product": productVars(p),
	})
	if err != nil {
		return false, fmt.Errorf("eval expression: %w", err)
	}

	b, ok := out.Value().(bool)
	if !ok {
		return false, fmt.Errorf("expression result is %T, want bool", out.Value())
	}
	return b, nil
}

// productVars 把商品实体展开为表达式可见的属性表。
func productVars(p *core.Product) map[string]any {
	return map[string]any{
		"unique_id":     p.UniqueID,
		"name":          p.Name,
		"brand":         p.Brand,
		"category":      p.Category,
		"about":         p.About,
		"specification": p.Specification,
		"selling_price": p.SellingPrice,
		"color":         p.Color,
		"stock":         p.Stock,
	}
}
