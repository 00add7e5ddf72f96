package controllers

import (
	"github.com/aid4sure/VeganEcosystem/internal/app/middleware"
	"github.com/aid4sure/VeganEcosystem/internal/domain/services"
	"github.com/aid4sure/VeganEcosystem/internal/domain/services/container"
	"github.com/aid4sure/VeganEcosystem/internal/error/code"
	"github.com/aid4sure/VeganEcosystem/internal/error/response"
	Logger "github.com/aid4sure/VeganEcosystem/pkg/logger"

	"github.com/gin-gonic/gin"
)

// InterfaceJWTController 定义认证控制器接口
type InterfaceJWTController interface {
	Login()
	Logout()
}

// JWTController 处理身份验证请求
type JWTController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewJWTController 创建一个新的认证控制器
func NewJWTController(ctx *gin.Context, container *container.ServiceContainer) *JWTController {
	return &JWTController{
		Ctx:       ctx,
		Container: container,
	}
}

// LoginRequest 表示登录请求
type LoginRequest struct {
	Username string `json:"username" binding:"required" example:"admin"`
	Password string `json:"password" binding:"required" example:"admin123"`
}

// HandleJWTFunc 返回一个处理JWT认证请求的Gin处理函数
func HandleJWTFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewJWTController(ctx, container)

		switch method {
		case "login":
			controller.Login()
		case "logout":
			controller.Logout()
		default:
			response.FailWithMessage(ctx, code.ErrBind, "无效的方法", nil)
		}
	}
}

// Login 处理管理员登录
// @Summary      Admin login
// @Description  Exchange admin credentials for a signed, time-bound bearer token
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        request  body      LoginRequest  true  "Login request parameters"
// @Success      200      {object}  services.LoginResult
// @Failure      400      {object}  response.Response
// @Failure      401      {object}  response.Response
// @Failure      500      {object}  response.Response
// @Router       /auth/login [post]
func (c *JWTController) Login() {
	var req LoginRequest
	if !bindJSON(c.Ctx, &req) {
		return
	}

	jwtService := c.Container.GetService("jwt").(services.InterfaceJWTService)
	result, err := jwtService.Login(c.Ctx.Request.Context(), req.Username, req.Password)
	if err != nil {
		handleServiceError(c.Ctx, err)
		return
	}
	if result == nil {
		Logger.Warning("[%s] 管理员登录失败: %s", middleware.GetRequestID(c.Ctx), req.Username)
		response.Fail(c.Ctx, code.ErrInvalidCredentials, nil)
		return
	}

	response.Success(c.Ctx, result)
}

// Logout 注销当前令牌
// @Summary      Admin logout
// @Description  Revoke the bearer token until it expires
// @Tags         Auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]string
// @Failure      401  {object}  response.Response
// @Router       /auth/logout [post]
func (c *JWTController) Logout() {
	jwtService := c.Container.GetService("jwt").(services.InterfaceJWTService)
	token := c.Ctx.GetString(middleware.ContextTokenKey)
	if err := jwtService.Logout(c.Ctx.Request.Context(), token); err != nil {
		handleServiceError(c.Ctx, err)
		return
	}

	response.Success(c.Ctx, gin.H{"message": "logged out"})
}
