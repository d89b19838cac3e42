package core

// DomainError 是领域层的统一错误类型。
//
// 设计原则：
//   - 所有领域层错误都使用此类型
//   - 提供错误代码（Code）和消息（Message）
//   - 四类业务错误（用户不存在/参数非法/存储不可用/模型失败）必须保持
//     可区分，边界层据此映射为不同的响应，禁止折叠为单一的通用错误
type DomainError struct {
	Code    string // 错误代码（如 "USER_NOT_FOUND", "INVALID_PARAMS"）
	Message string // 错误消息
	Module  string // 模块名称（如 "store", "cache", "model"）
}

func (e *DomainError) Error() string {
	return e.Message
}

// GetDomainError 获取 DomainError，如果不是则返回 nil
func GetDomainError(err error) *DomainError {
	if err == nil {
		return nil
	}
	if domainErr, ok := err.(*DomainError); ok {
		return domainErr
	}
	return nil
}

// NewDomainError 创建新的领域错误
func NewDomainError(module, code, message string) *DomainError {
	return &DomainError{
		Module:  module,
		Code:    code,
		Message: message,
	}
}

// 错误代码常量
const (
	ErrorCodeNotFound      = "NOT_FOUND"      // key / 记录不存在（存储层）
	ErrorCodeUserNotFound  = "USER_NOT_FOUND" // 用户在缓存与持久存储中都不存在
	ErrorCodeInvalidParams = "INVALID_PARAMS" // 请求参数非法（经纬度越界/非有限值等）
	ErrorCodeUnavailable   = "UNAVAILABLE"    // 持久存储不可达（瞬态，边界层可重试）
	ErrorCodeModelFailure  = "MODEL_FAILURE"  // 模型维度不匹配或推理失败（配置缺陷，不可重试）
	ErrorCodeInternalError = "INTERNAL_ERROR" // 内部错误
)

// 模块名称常量
const (
	ModuleStore   = "store"   // 持久存储模块
	ModuleCache   = "cache"   // 特征缓存模块
	ModuleGeo     = "geo"     // 空间索引模块
	ModuleModel   = "model"   // 相似度模型模块
	ModuleService = "service" // 推荐服务模块
)

// 领域错误哨兵值。
// 注意：判定请使用 IsXXX 辅助函数（按 Code 判定），不要用 == 比较，
// 适配层可能构造携带上下文信息的同码错误。
var (
	// ErrCacheNotFound 表示缓存 key 不存在（正常的 miss，不是故障）
	ErrCacheNotFound = NewDomainError(ModuleCache, ErrorCodeNotFound, "cache: key not found")

	// ErrUserNotFound 表示用户在缓存与持久存储中都查不到
	ErrUserNotFound = NewDomainError(ModuleStore, ErrorCodeUserNotFound, "store: user not found")

	// ErrInvalidParams 表示请求参数非法，任何管道工作开始前立即返回
	ErrInvalidParams = NewDomainError(ModuleService, ErrorCodeInvalidParams, "service: invalid parameters")

	// ErrStoreUnavailable 表示持久存储不可达
	ErrStoreUnavailable = NewDomainError(ModuleStore, ErrorCodeUnavailable, "store: unavailable")

	// ErrModelFailure 表示模型维度不匹配或推理异常
	ErrModelFailure = NewDomainError(ModuleModel, ErrorCodeModelFailure, "model: inference failure")
)

func hasCode(err error, code string) bool {
	if err == nil {
		return false
	}
	if domainErr := GetDomainError(err); domainErr != nil {
		return domainErr.Code == code
	}
	return false
}

// IsNotFound 检查错误是否为存储层 key 不存在
func IsNotFound(err error) bool {
	return hasCode(err, ErrorCodeNotFound)
}

// IsUserNotFound 检查错误是否为用户不存在
func IsUserNotFound(err error) bool {
	return hasCode(err, ErrorCodeUserNotFound)
}

// IsInvalidParams 检查错误是否为参数非法
func IsInvalidParams(err error) bool {
	return hasCode(err, ErrorCodeInvalidParams)
}

// IsStoreUnavailable 检查错误是否为存储不可达
func IsStoreUnavailable(err error) bool {
	return hasCode(err, ErrorCodeUnavailable)
}

// IsModelFailure 检查错误是否为模型失败
func IsModelFailure(err error) bool {
	return hasCode(err, ErrorCodeModelFailure)
}
