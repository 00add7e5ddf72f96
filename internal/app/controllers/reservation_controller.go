package controllers

import (
	"errors"
	"fmt"
	"time"

	"github.com/aid4sure/VeganEcosystem/internal/domain/models"
	"github.com/aid4sure/VeganEcosystem/internal/domain/services"
	"github.com/aid4sure/VeganEcosystem/internal/domain/services/container"
	"github.com/aid4sure/VeganEcosystem/internal/error/code"
	"github.com/aid4sure/VeganEcosystem/internal/error/response"

	"github.com/gin-gonic/gin"
)

// InterfaceReservationController 定义预订控制器接口
type InterfaceReservationController interface {
	CreateReservation()
	ListReservations()
	CancelReservation()
}

// ReservationController 处理预订相关的请求
type ReservationController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewReservationController 创建一个新的预订控制器
func NewReservationController(ctx *gin.Context, container *container.ServiceContainer) *ReservationController {
	return &ReservationController{
		Ctx:       ctx,
		Container: container,
	}
}

// CreateReservationRequest 创建预订请求
type CreateReservationRequest struct {
	RestaurantID uint      `json:"restaurantId" binding:"required,min=1" example:"1"`
	Date         time.Time `json:"date" binding:"required" example:"2030-06-01T19:30:00Z"`
	PartySize    int       `json:"partySize" binding:"required,min=1" example:"4"`
	Name         string    `json:"name" binding:"required,min=1,max=255" example:"Alex Green"`
	Email        string    `json:"email" binding:"required,email" example:"alex@example.com"`
	Phone        string    `json:"phone" binding:"required,min=10,max=50" example:"5035550100"`
}

// HandleReservationFunc 返回一个处理预订请求的Gin处理函数
func HandleReservationFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewReservationController(ctx, container)

		switch method {
		case "createReservation":
			controller.CreateReservation()
		case "listReservations":
			controller.ListReservations()
		case "cancelReservation":
			controller.CancelReservation()
		default:
			response.FailWithMessage(ctx, code.ErrBind, "无效的方法", nil)
		}
	}
}

func (c *ReservationController) service() services.InterfaceReservationService {
	return c.Container.GetService("reservation").(services.InterfaceReservationService)
}

// CreateReservation 创建预订
// @Summary      Create reservation
// @Description  The date must be in the future and partySize may not exceed the restaurant's maxPartySize. Slots are not checked for availability.
// @Tags         Reservation
// @Accept       json
// @Produce      json
// @Param        request  body      CreateReservationRequest  true  "Reservation"
// @Success      201      {object}  models.Reservation
// @Failure      400      {object}  response.Response
// @Router       /reservations [post]
func (c *ReservationController) CreateReservation() {
	var req CreateReservationRequest
	if !bindJSON(c.Ctx, &req) {
		return
	}

	if !req.Date.After(time.Now()) {
		response.ValidationFailed(c.Ctx, code.ErrReservationDateInvalid, response.FieldError{
			Field:   "date",
			Message: "must be in the future",
		})
		return
	}

	ctx := c.Ctx.Request.Context()
	restaurantService := c.Container.GetService("restaurant").(services.InterfaceRestaurantService)
	restaurant, err := restaurantService.Get(ctx, req.RestaurantID)
	if errors.Is(err, services.ErrRestaurantNotFound) {
		response.ValidationFailed(c.Ctx, code.ErrValidation, response.FieldError{
			Field:   "restaurantId",
			Message: "restaurant does not exist",
		})
		return
	}
	if err != nil {
		handleServiceError(c.Ctx, err)
		return
	}

	maxPartySize := restaurant.MaxPartySize
	if maxPartySize <= 0 {
		maxPartySize = models.DefaultMaxPartySize
	}
	if req.PartySize > maxPartySize {
		response.ValidationFailed(c.Ctx, code.ErrPartySizeExceeded, response.FieldError{
			Field:   "partySize",
			Message: fmt.Sprintf("must be at most %d", maxPartySize),
		})
		return
	}

	reservation, err := c.service().Create(ctx, &models.Reservation{
		RestaurantID: req.RestaurantID,
		Date:         req.Date,
		PartySize:    req.PartySize,
		Name:         req.Name,
		Email:        req.Email,
		Phone:        req.Phone,
	})
	if err != nil {
		handleServiceError(c.Ctx, err)
		return
	}
	response.Created(c.Ctx, reservation)
}

// ListReservations 获取餐厅某天的预订
// @Summary      List reservations for a day
// @Description  Admin only. date is YYYY-MM-DD in the server time zone or an RFC3339 timestamp; the time of day is ignored.
// @Tags         Reservation
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int     true  "Restaurant ID"
// @Param        date  path      string  true  "Day"
// @Success      200   {array}   models.Reservation
// @Failure      400   {object}  response.Response
// @Failure      401   {object}  response.Response
// @Router       /restaurants/{id}/reservations/{date} [get]
func (c *ReservationController) ListReservations() {
	id, ok := parseID(c.Ctx, "id")
	if !ok {
		return
	}

	day, err := parseDay(c.Ctx.Param("date"), c.Container.Config().Location)
	if err != nil {
		response.ValidationFailed(c.Ctx, code.ErrReservationDateInvalid, response.FieldError{
			Field:   "date",
			Message: "must be YYYY-MM-DD or an RFC3339 timestamp",
		})
		return
	}

	reservations, err := c.service().ListFor(c.Ctx.Request.Context(), id, day)
	if err != nil {
		handleServiceError(c.Ctx, err)
		return
	}
	response.Success(c.Ctx, reservations)
}

// CancelReservation 取消预订
// @Summary      Cancel reservation
// @Description  Cancelling twice succeeds. Completed reservations cannot be cancelled.
// @Tags         Reservation
// @Produce      json
// @Param        id   path      int  true  "Reservation ID"
// @Success      200  {object}  models.Reservation
// @Failure      400  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Failure      409  {object}  response.Response
// @Router       /reservations/{id}/cancel [post]
func (c *ReservationController) CancelReservation() {
	id, ok := parseID(c.Ctx, "id")
	if !ok {
		return
	}

	reservation, err := c.service().Cancel(c.Ctx.Request.Context(), id)
	if err != nil {
		handleServiceError(c.Ctx, err)
		return
	}
	response.Success(c.Ctx, reservation)
}
