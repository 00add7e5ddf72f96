package controllers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"reflect"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/aid4sure/VeganEcosystem/internal/app/middleware"
	"github.com/aid4sure/VeganEcosystem/internal/domain/services"
	"github.com/aid4sure/VeganEcosystem/internal/error/code"
	"github.com/aid4sure/VeganEcosystem/internal/error/response"
	Logger "github.com/aid4sure/VeganEcosystem/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var registerTagNameOnce sync.Once

// useJSONFieldNames 让校验错误使用 JSON 字段名
func useJSONFieldNames() {
	registerTagNameOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name == "" {
				return fld.Name
			}
			return name
		})
	})
}

// bindJSON 绑定并校验请求体，失败时写入错误响应并返回 false
func bindJSON(c *gin.Context, req interface{}) bool {
	useJSONFieldNames()

	err := c.ShouldBindJSON(req)
	if err == nil {
		return true
	}

	var validationErrs validator.ValidationErrors
	var typeErr *json.UnmarshalTypeError
	var syntaxErr *json.SyntaxError
	switch {
	case errors.As(err, &validationErrs):
		response.ValidationFailed(c, code.ErrValidation, fieldErrors(validationErrs)...)
	case errors.As(err, &typeErr):
		field := typeErr.Field
		if field == "" {
			field = "body"
		}
		response.ValidationFailed(c, code.ErrValidation, response.FieldError{
			Field:   field,
			Message: fmt.Sprintf("must be of type %s", typeErr.Type.String()),
		})
	case errors.As(err, &syntaxErr), errors.Is(err, io.EOF), errors.Is(err, io.ErrUnexpectedEOF):
		response.FailWithMessage(c, code.ErrBind, "request body must be valid JSON", nil)
	default:
		var timeErr *time.ParseError
		if errors.As(err, &timeErr) {
			response.ParamError(c, "date", "must be an RFC3339 timestamp")
			return false
		}
		response.FailWithMessage(c, code.ErrBind, err.Error(), nil)
	}
	return false
}

// fieldErrors 将 validator 错误转换为 JSON 路径和可读消息
func fieldErrors(errs validator.ValidationErrors) []response.FieldError {
	out := make([]response.FieldError, 0, len(errs))
	for _, fe := range errs {
		out = append(out, response.FieldError{
			Field:   fieldPath(fe),
			Message: fieldMessage(fe),
		})
	}
	return out
}

// fieldPath 去掉顶层结构体名，保留嵌套路径
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}

func fieldMessage(fe validator.FieldError) string {
	isString := fe.Kind() == reflect.String
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "url":
		return "must be a valid URL"
	case "min", "gte":
		if isString {
			return fmt.Sprintf("must be at least %s characters", fe.Param())
		}
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max", "lte":
		if isString {
			return fmt.Sprintf("must be at most %s characters", fe.Param())
		}
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "oneof":
		return fmt.Sprintf("must be one of %s", fe.Param())
	default:
		return fmt.Sprintf("failed on %s", fe.Tag())
	}
}

// parseID 解析路径中的正整数ID
func parseID(c *gin.Context, param string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(param), 10, 64)
	if err != nil || id == 0 {
		response.ValidationFailed(c, code.ErrInvalidID, response.FieldError{
			Field:   param,
			Message: "must be a positive integer",
		})
		return 0, false
	}
	return uint(id), true
}

// parseDay 解析日期路径参数，支持 YYYY-MM-DD（按 loc 解释）和 RFC3339
func parseDay(value string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.UTC
	}
	if t, err := time.ParseInLocation("2006-01-02", value, loc); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, value)
}

// handleServiceError 将领域错误映射为业务错误码，未知错误记录日志后返回 500
func handleServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrRestaurantNotFound):
		response.Fail(c, code.ErrRestaurantNotFound, nil)
	case errors.Is(err, services.ErrInvalidRestaurant):
		response.FailWithMessage(c, code.ErrRestaurantInvalid, err.Error(), nil)
	case errors.Is(err, services.ErrInvalidReview):
		response.FailWithMessage(c, code.ErrReviewInvalid, err.Error(), nil)
	case errors.Is(err, services.ErrInvalidSort):
		response.ValidationFailed(c, code.ErrReviewSortInvalid, response.FieldError{
			Field:   "sort",
			Message: code.GetMessage(code.ErrReviewSortInvalid),
		})
	case errors.Is(err, services.ErrReservationNotFound):
		response.Fail(c, code.ErrReservationNotFound, nil)
	case errors.Is(err, services.ErrReservationCompleted):
		response.Fail(c, code.ErrReservationCompleted, nil)
	case errors.Is(err, services.ErrGiftCardNotFound):
		response.Fail(c, code.ErrGiftCardNotFound, nil)
	case errors.Is(err, services.ErrGiftCardInactive):
		response.Fail(c, code.ErrGiftCardInactive, nil)
	case errors.Is(err, services.ErrGiftCardExpired):
		response.Fail(c, code.ErrGiftCardExpired, nil)
	case errors.Is(err, services.ErrInsufficientBalance):
		response.Fail(c, code.ErrInsufficientBalance, nil)
	case errors.Is(err, services.ErrInvalidAmount):
		response.ValidationFailed(c, code.ErrGiftCardAmountInvalid, response.FieldError{
			Field:   "amount",
			Message: err.Error(),
		})
	case errors.Is(err, services.ErrCodeGeneration):
		Logger.Error("[%s] %s %s: %v", middleware.GetRequestID(c), c.Request.Method, c.Request.URL.Path, err)
		response.Fail(c, code.ErrCodeGeneration, nil)
	default:
		Logger.Error("[%s] %s %s: %v", middleware.GetRequestID(c), c.Request.Method, c.Request.URL.Path, err)
		response.Fail(c, code.ErrUnknown, nil)
	}
}
