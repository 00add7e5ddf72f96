package code

// 错误码消息映射
var codeMessageMap = map[int]string{
	// 通用错误码
	ErrSuccess:            "success",
	ErrUnknown:            "internal server error",
	ErrBind:               "malformed request body",
	ErrValidation:         "validation failed",
	ErrTokenInvalid:       "invalid or expired token",
	ErrTooManyRequests:    "too many requests, please slow down",
	ErrInvalidCredentials: "invalid username or password",
	ErrInvalidID:          "invalid id",

	// 餐厅相关错误码
	ErrRestaurantNotFound: "restaurant not found",
	ErrRestaurantInvalid:  "invalid restaurant",

	// 评价相关错误码
	ErrReviewInvalid:     "invalid review",
	ErrReviewSortInvalid: "sort must be one of newest, oldest, highest, lowest",

	// 预订相关错误码
	ErrReservationNotFound:    "reservation not found",
	ErrReservationCompleted:   "reservation is already completed",
	ErrReservationDateInvalid: "invalid date",
	ErrPartySizeExceeded:      "party size exceeds the restaurant maximum",

	// 礼品卡相关错误码
	ErrGiftCardNotFound:      "gift card not found",
	ErrGiftCardInactive:      "gift card is no longer active",
	ErrGiftCardExpired:       "gift card has expired",
	ErrInsufficientBalance:   "insufficient balance",
	ErrGiftCardAmountInvalid: "invalid amount",
	ErrCodeGeneration:        "could not generate a gift card code",

	// 数据库相关错误码
	ErrDatabase:         "database error",
	ErrRecordNotFound:   "record not found",
	ErrConnectionFailed: "connection failed",
}

// 错误码HTTP状态码映射
var codeStatusMap = map[int]int{
	// 通用错误码
	ErrSuccess:            StatusOK,
	ErrUnknown:            StatusInternalServerError,
	ErrBind:               StatusBadRequest,
	ErrValidation:         StatusBadRequest,
	ErrTokenInvalid:       StatusUnauthorized,
	ErrTooManyRequests:    StatusTooManyRequests,
	ErrInvalidCredentials: StatusUnauthorized,
	ErrInvalidID:          StatusBadRequest,

	// 餐厅相关错误码
	ErrRestaurantNotFound: StatusNotFound,
	ErrRestaurantInvalid:  StatusBadRequest,

	// 评价相关错误码
	ErrReviewInvalid:     StatusBadRequest,
	ErrReviewSortInvalid: StatusBadRequest,

	// 预订相关错误码
	ErrReservationNotFound:    StatusNotFound,
	ErrReservationCompleted:   StatusConflict,
	ErrReservationDateInvalid: StatusBadRequest,
	ErrPartySizeExceeded:      StatusBadRequest,

	// 礼品卡相关错误码
	ErrGiftCardNotFound:      StatusNotFound,
	ErrGiftCardInactive:      StatusBadRequest,
	ErrGiftCardExpired:       StatusBadRequest,
	ErrInsufficientBalance:   StatusBadRequest,
	ErrGiftCardAmountInvalid: StatusBadRequest,
	ErrCodeGeneration:        StatusInternalServerError,

	// 数据库相关错误码
	ErrDatabase:         StatusInternalServerError,
	ErrRecordNotFound:   StatusNotFound,
	ErrConnectionFailed: StatusServiceUnavailable,
}

// GetMessage 获取错误码对应的消息
func GetMessage(code int) string {
	if msg, ok := codeMessageMap[code]; ok {
		return msg
	}
	return "unknown error"
}

// GetStatus 获取错误码对应的HTTP状态码
func GetStatus(code int) int {
	if status, ok := codeStatusMap[code]; ok {
		return status
	}
	return StatusInternalServerError
}
