package controllers

import (
	"errors"
	"net/http"

	"github.com/aid4sure/VeganEcosystem/internal/domain/services"
	"github.com/aid4sure/VeganEcosystem/internal/domain/services/container"
	"github.com/aid4sure/VeganEcosystem/internal/error/code"
	"github.com/aid4sure/VeganEcosystem/internal/error/response"

	"github.com/gin-gonic/gin"
)

// InterfaceGiftCardController 定义礼品卡控制器接口
type InterfaceGiftCardController interface {
	IssueGiftCard()
	GetGiftCard()
	RedeemGiftCard()
}

// GiftCardController 处理礼品卡相关的请求
type GiftCardController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewGiftCardController 创建一个新的礼品卡控制器
func NewGiftCardController(ctx *gin.Context, container *container.ServiceContainer) *GiftCardController {
	return &GiftCardController{
		Ctx:       ctx,
		Container: container,
	}
}

// IssueGiftCardRequest 购买礼品卡请求
type IssueGiftCardRequest struct {
	Amount int64 `json:"amount" binding:"required,min=10,max=1000" example:"100"`
}

// RedeemGiftCardRequest 兑换礼品卡请求，金额可以为 0
type RedeemGiftCardRequest struct {
	Amount *int64 `json:"amount" binding:"required,min=0" example:"40"`
}

// HandleGiftCardFunc 返回一个处理礼品卡请求的Gin处理函数
func HandleGiftCardFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewGiftCardController(ctx, container)

		switch method {
		case "issueGiftCard":
			controller.IssueGiftCard()
		case "getGiftCard":
			controller.GetGiftCard()
		case "redeemGiftCard":
			controller.RedeemGiftCard()
		default:
			response.FailWithMessage(ctx, code.ErrBind, "无效的方法", nil)
		}
	}
}

func (c *GiftCardController) service() services.InterfaceGiftCardService {
	return c.Container.GetService("gift_card").(services.InterfaceGiftCardService)
}

// IssueGiftCard 购买礼品卡
// @Summary      Issue gift card
// @Description  Issue a card worth 10 to 1000, valid for one year
// @Tags         GiftCard
// @Accept       json
// @Produce      json
// @Param        request  body      IssueGiftCardRequest  true  "Amount"
// @Success      201      {object}  models.GiftCard
// @Failure      400      {object}  response.Response
// @Failure      500      {object}  response.Response
// @Router       /gift-cards [post]
func (c *GiftCardController) IssueGiftCard() {
	var req IssueGiftCardRequest
	if !bindJSON(c.Ctx, &req) {
		return
	}

	card, err := c.service().Issue(c.Ctx.Request.Context(), req.Amount)
	if err != nil {
		handleServiceError(c.Ctx, err)
		return
	}
	response.Created(c.Ctx, card)
}

// GetGiftCard 查询礼品卡
// @Summary      Get gift card
// @Description  Look a card up by its code (case-insensitive)
// @Tags         GiftCard
// @Produce      json
// @Param        code  path      string  true  "Gift card code"
// @Success      200   {object}  models.GiftCard
// @Failure      404   {object}  response.Response
// @Router       /gift-cards/{code} [get]
func (c *GiftCardController) GetGiftCard() {
	card, err := c.service().Lookup(c.Ctx.Request.Context(), c.Ctx.Param("code"))
	if err != nil {
		handleServiceError(c.Ctx, err)
		return
	}
	response.Success(c.Ctx, card)
}

// RedeemGiftCard 兑换礼品卡
// @Summary      Redeem gift card
// @Description  Deduct amount from the balance. Every failure is a 400; not-found, inactive, expired and insufficient-balance carry distinct codes.
// @Tags         GiftCard
// @Accept       json
// @Produce      json
// @Param        code     path      string                 true  "Gift card code"
// @Param        request  body      RedeemGiftCardRequest  true  "Amount"
// @Success      200      {object}  models.GiftCard
// @Failure      400      {object}  response.Response
// @Router       /gift-cards/{code}/redeem [post]
func (c *GiftCardController) RedeemGiftCard() {
	var req RedeemGiftCardRequest
	if !bindJSON(c.Ctx, &req) {
		return
	}

	card, err := c.service().Redeem(c.Ctx.Request.Context(), c.Ctx.Param("code"), *req.Amount)
	if errors.Is(err, services.ErrGiftCardNotFound) {
		// 兑换失败统一返回 400，由业务码区分原因
		response.FailWithStatus(c.Ctx, http.StatusBadRequest, code.ErrGiftCardNotFound, nil)
		return
	}
	if err != nil {
		handleServiceError(c.Ctx, err)
		return
	}
	response.Success(c.Ctx, card)
}
