package controllers

import (
	"github.com/aid4sure/VeganEcosystem/internal/domain/models"
	"github.com/aid4sure/VeganEcosystem/internal/domain/services"
	"github.com/aid4sure/VeganEcosystem/internal/domain/services/container"
	"github.com/aid4sure/VeganEcosystem/internal/error/code"
	"github.com/aid4sure/VeganEcosystem/internal/error/response"

	"github.com/gin-gonic/gin"
)

// InterfaceReviewController 定义评价控制器接口
type InterfaceReviewController interface {
	ListReviews()
	GetReviewSummary()
	CreateReview()
}

// ReviewController 处理评价相关的请求
type ReviewController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewReviewController 创建一个新的评价控制器
func NewReviewController(ctx *gin.Context, container *container.ServiceContainer) *ReviewController {
	return &ReviewController{
		Ctx:       ctx,
		Container: container,
	}
}

// CreateReviewRequest 创建评价请求
type CreateReviewRequest struct {
	RestaurantID uint   `json:"restaurantId" binding:"required,min=1" example:"1"`
	Rating       int    `json:"rating" binding:"required,min=1,max=5" example:"5"`
	Comment      string `json:"comment" binding:"required,min=10,max=500" example:"Amazing seasonal bowls and friendly staff."`
}

// HandleReviewFunc 返回一个处理评价请求的Gin处理函数
func HandleReviewFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewReviewController(ctx, container)

		switch method {
		case "listReviews":
			controller.ListReviews()
		case "getReviewSummary":
			controller.GetReviewSummary()
		case "createReview":
			controller.CreateReview()
		default:
			response.FailWithMessage(ctx, code.ErrBind, "无效的方法", nil)
		}
	}
}

func (c *ReviewController) service() services.InterfaceReviewService {
	return c.Container.GetService("review").(services.InterfaceReviewService)
}

// ListReviews 获取餐厅评价
// @Summary      List reviews
// @Description  Reviews of a restaurant. sort is one of newest (default), oldest, highest, lowest.
// @Tags         Review
// @Produce      json
// @Param        id    path      int     true   "Restaurant ID"
// @Param        sort  query     string  false  "Sort order"  Enums(newest, oldest, highest, lowest)
// @Success      200   {array}   models.Review
// @Failure      400   {object}  response.Response
// @Router       /restaurants/{id}/reviews [get]
func (c *ReviewController) ListReviews() {
	id, ok := parseID(c.Ctx, "id")
	if !ok {
		return
	}

	order, err := services.ParseReviewSort(c.Ctx.Query("sort"))
	if err != nil {
		handleServiceError(c.Ctx, err)
		return
	}

	reviews, err := c.service().ListFor(c.Ctx.Request.Context(), id, order)
	if err != nil {
		handleServiceError(c.Ctx, err)
		return
	}
	response.Success(c.Ctx, reviews)
}

// GetReviewSummary 获取评分汇总
// @Summary      Review summary
// @Description  Review count, average rating rounded to one decimal and the star distribution
// @Tags         Review
// @Produce      json
// @Param        id   path      int  true  "Restaurant ID"
// @Success      200  {object}  models.ReviewSummary
// @Failure      400  {object}  response.Response
// @Router       /restaurants/{id}/reviews/summary [get]
func (c *ReviewController) GetReviewSummary() {
	id, ok := parseID(c.Ctx, "id")
	if !ok {
		return
	}

	summary, err := c.service().Summary(c.Ctx.Request.Context(), id)
	if err != nil {
		handleServiceError(c.Ctx, err)
		return
	}
	response.Success(c.Ctx, summary)
}

// CreateReview 创建评价
// @Summary      Create review
// @Description  Rating 1-5 and a comment of 10 to 500 characters
// @Tags         Review
// @Accept       json
// @Produce      json
// @Param        request  body      CreateReviewRequest  true  "Review"
// @Success      201      {object}  models.Review
// @Failure      400      {object}  response.Response
// @Router       /reviews [post]
func (c *ReviewController) CreateReview() {
	var req CreateReviewRequest
	if !bindJSON(c.Ctx, &req) {
		return
	}

	review, err := c.service().Create(c.Ctx.Request.Context(), &models.Review{
		RestaurantID: req.RestaurantID,
		Rating:       req.Rating,
		Comment:      req.Comment,
	})
	if err != nil {
		handleServiceError(c.Ctx, err)
		return
	}
	response.Created(c.Ctx, review)
}
