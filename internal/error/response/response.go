package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/aid4sure/VeganEcosystem/internal/error/code"
)

// Response 定义统一的错误响应格式
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// FieldError 单个字段的校验错误，Field 为 JSON 路径
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationData 校验失败时的 data 字段
type ValidationData struct {
	Errors []FieldError `json:"errors"`
}

// Success 成功响应，直接返回资源本身
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, data)
}

// Created 创建成功响应
func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, data)
}

// NoContent 无内容响应
func NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// Fail 失败响应
func Fail(c *gin.Context, errorCode int, data interface{}) {
	FailWithMessage(c, errorCode, code.GetMessage(errorCode), data)
}

// FailWithMessage 失败响应（自定义消息）
func FailWithMessage(c *gin.Context, errorCode int, message string, data interface{}) {
	c.AbortWithStatusJSON(code.GetStatus(errorCode), Response{
		Code:    errorCode,
		Message: message,
		Data:    data,
	})
}

// FailWithStatus 失败响应（覆盖业务码默认的 HTTP 状态码）
func FailWithStatus(c *gin.Context, status, errorCode int, data interface{}) {
	c.AbortWithStatusJSON(status, Response{
		Code:    errorCode,
		Message: code.GetMessage(errorCode),
		Data:    data,
	})
}

// ValidationFailed 字段校验错误响应
func ValidationFailed(c *gin.Context, errorCode int, errs ...FieldError) {
	if errs == nil {
		errs = []FieldError{}
	}
	Fail(c, errorCode, ValidationData{Errors: errs})
}

// ParamError 单字段参数错误响应
func ParamError(c *gin.Context, field, message string) {
	ValidationFailed(c, code.ErrValidation, FieldError{Field: field, Message: message})
}

// ServerError 服务器错误响应
func ServerError(c *gin.Context) {
	Fail(c, code.ErrUnknown, nil)
}

// Unauthorized 未授权响应
func Unauthorized(c *gin.Context) {
	Fail(c, code.ErrTokenInvalid, nil)
}
