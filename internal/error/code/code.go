package code

// HTTP状态码.
const (
	// StatusOK - 200: 成功.
	StatusOK = 200
	// StatusCreated - 201: 已创建.
	StatusCreated = 201
	// StatusNoContent - 204: 无内容.
	StatusNoContent = 204
	// StatusBadRequest - 400: 请求参数错误.
	StatusBadRequest = 400
	// StatusUnauthorized - 401: 未授权.
	StatusUnauthorized = 401
	// StatusForbidden - 403: 禁止访问.
	StatusForbidden = 403
	// StatusNotFound - 404: 资源不存在.
	StatusNotFound = 404
	// StatusConflict - 409: 状态冲突.
	StatusConflict = 409
	// StatusTooManyRequests - 429: 请求过多.
	StatusTooManyRequests = 429
	// StatusInternalServerError - 500: 服务器内部错误.
	StatusInternalServerError = 500
	// StatusServiceUnavailable - 503: 服务不可用.
	StatusServiceUnavailable = 503
)

// 通用错误码 (100xxx).
const (
	// ErrSuccess - 200: 成功.
	ErrSuccess int = iota + 100000
	// ErrUnknown - 500: 未知错误.
	ErrUnknown
	// ErrBind - 400: 请求参数绑定错误.
	ErrBind
	// ErrValidation - 400: 请求参数验证错误.
	ErrValidation
	// ErrTokenInvalid - 401: 令牌无效.
	ErrTokenInvalid
	// ErrTooManyRequests - 429: 请求频率过高.
	ErrTooManyRequests
	// ErrInvalidCredentials - 401: 用户名或密码错误.
	ErrInvalidCredentials
	// ErrInvalidID - 400: 路径ID无效.
	ErrInvalidID
)

// 餐厅相关错误码 (101xxx).
const (
	// ErrRestaurantNotFound - 404: 餐厅不存在.
	ErrRestaurantNotFound int = iota + 101000
	// ErrRestaurantInvalid - 400: 餐厅信息无效.
	ErrRestaurantInvalid
)

// 评价相关错误码 (102xxx).
const (
	// ErrReviewInvalid - 400: 评价无效.
	ErrReviewInvalid int = iota + 102000
	// ErrReviewSortInvalid - 400: 排序参数无效.
	ErrReviewSortInvalid
)

// 预订相关错误码 (103xxx).
const (
	// ErrReservationNotFound - 404: 预订不存在.
	ErrReservationNotFound int = iota + 103000
	// ErrReservationCompleted - 409: 预订已完成.
	ErrReservationCompleted
	// ErrReservationDateInvalid - 400: 日期无效.
	ErrReservationDateInvalid
	// ErrPartySizeExceeded - 400: 人数超过上限.
	ErrPartySizeExceeded
)

// 礼品卡相关错误码 (104xxx).
const (
	// ErrGiftCardNotFound - 404: 礼品卡不存在.
	ErrGiftCardNotFound int = iota + 104000
	// ErrGiftCardInactive - 400: 礼品卡已失效.
	ErrGiftCardInactive
	// ErrGiftCardExpired - 400: 礼品卡已过期.
	ErrGiftCardExpired
	// ErrInsufficientBalance - 400: 余额不足.
	ErrInsufficientBalance
	// ErrGiftCardAmountInvalid - 400: 金额无效.
	ErrGiftCardAmountInvalid
	// ErrCodeGeneration - 500: 兑换码生成失败.
	ErrCodeGeneration
)

// 数据库相关错误码 (105xxx).
const (
	// ErrDatabase - 500: 数据库错误.
	ErrDatabase int = iota + 105000
	// ErrRecordNotFound - 404: 记录不存在.
	ErrRecordNotFound
	// ErrConnectionFailed - 503: 连接失败.
	ErrConnectionFailed
)
