package core

// DomainError 是领域层的统一错误类型。
//
// 设计原则：
//   - 所有领域层错误都使用此类型，提供错误代码（Code）和消息（Message）
//   - 非致命条件（无个性化可能、向量退化）不走 error，而是返回 nil 结果
//     并降级为中性兜底；error 只表达上游数据访问层的真实失败
type DomainError struct {
	Code    string
	Message string
	Module  string
}

func (e *DomainError) Error() string {
	return e.Message
}

// GetDomainError 获取 DomainError，如果不是则返回 nil。
func GetDomainError(err error) *DomainError {
	if err == nil {
		return nil
	}
	if domainErr, ok := err.(*DomainError); ok {
		return domainErr
	}
	return nil
}

// NewDomainError 创建新的领域错误。
func NewDomainError(module, code, message string) *DomainError {
	return &DomainError{
		Module:  module,
		Code:    code,
		Message: message,
	}
}

// 错误代码常量
const (
	ErrorCodeNotFound      = "NOT_FOUND"
	ErrorCodeInvalidInput  = "INVALID_INPUT"
	ErrorCodeInternalError = "INTERNAL_ERROR"
)

// 模块名称常量
const (
	ModuleStore    = "store"
	ModuleVector   = "vector"
	ModuleFilter   = "filter"
	ModulePipeline = "pipeline"
)

// Store 错误定义
var (
	// ErrStoreNotFound 表示实体不存在
	ErrStoreNotFound = NewDomainError(ModuleStore, ErrorCodeNotFound, "store: entity not found")
)

// Vector 错误定义
var (
	// ErrEmptyCorpus 表示 Fit 的文档集为空
	ErrEmptyCorpus = NewDomainError(ModuleVector, ErrorCodeInvalidInput, "vector: empty document corpus")

	// ErrEmptyVocabulary 表示停用词过滤后词表为空，无法建立向量空间
	ErrEmptyVocabulary = NewDomainError(ModuleVector, ErrorCodeInvalidInput, "vector: empty vocabulary after stop-word filtering")
)

// IsNotFound 检查错误是否为 NOT_FOUND。
func IsNotFound(err error) bool {
	if domainErr := GetDomainError(err); domainErr != nil {
		return domainErr.Code == ErrorCodeNotFound
	}
	return false
}

// IsStoreNotFound 检查错误是否为存储层的实体不存在。
func IsStoreNotFound(err error) bool {
	if domainErr := GetDomainError(err); domainErr != nil {
		return domainErr.Module == ModuleStore && domainErr.Code == ErrorCodeNotFound
	}
	return false
}

// IsInvalidInput 检查错误是否为输入无效。
func IsInvalidInput(err error) bool {
	if domainErr := GetDomainError(err); domainErr != nil {
		return domainErr.Code == ErrorCodeInvalidInput
	}
	return false
}
