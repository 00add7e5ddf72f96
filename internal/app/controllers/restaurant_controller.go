package controllers

import (
	"github.com/aid4sure/VeganEcosystem/internal/domain/models"
	"github.com/aid4sure/VeganEcosystem/internal/domain/services"
	"github.com/aid4sure/VeganEcosystem/internal/domain/services/container"
	"github.com/aid4sure/VeganEcosystem/internal/error/code"
	"github.com/aid4sure/VeganEcosystem/internal/error/response"

	"github.com/gin-gonic/gin"
)

// InterfaceRestaurantController 定义餐厅控制器接口
type InterfaceRestaurantController interface {
	ListRestaurants()
	GetRestaurant()
	SearchRestaurants()
	GetTimeSlots()
	CreateRestaurant()
	UpdateRestaurant()
	DeleteRestaurant()
}

// RestaurantController 处理餐厅目录相关的请求
type RestaurantController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewRestaurantController 创建一个新的餐厅控制器
func NewRestaurantController(ctx *gin.Context, container *container.ServiceContainer) *RestaurantController {
	return &RestaurantController{
		Ctx:       ctx,
		Container: container,
	}
}

// RestaurantRequest 创建餐厅请求
type RestaurantRequest struct {
	Name               string   `json:"name" binding:"required,min=1,max=255" example:"Green Earth Kitchen"`
	Description        string   `json:"description" binding:"required,min=10" example:"Farm-to-table vegan restaurant focusing on seasonal ingredients."`
	Address            string   `json:"address" binding:"required,min=1,max=255" example:"123 Green Street, Portland, OR"`
	Hours              string   `json:"hours" binding:"required" example:"Mon-Sun: 11:00 AM - 10:00 PM"`
	ImageURL           string   `json:"imageUrl" binding:"required" example:"https://images.example.com/green-earth.jpg"`
	Latitude           *float64 `json:"latitude" binding:"required,gte=-90,lte=90" example:"45.5155"`
	Longitude          *float64 `json:"longitude" binding:"required,gte=-180,lte=180" example:"-122.6789"`
	SustainabilityInfo string   `json:"sustainabilityInfo" binding:"required" example:"Zero-waste kitchen, locally sourced produce"`
	Menu               string   `json:"menu" binding:"required" example:"Seasonal Buddha Bowl, Cashew Mac"`
	Type               string   `json:"type" binding:"required,max=100" example:"Restaurant"`
	MaxPartySize       int      `json:"maxPartySize" binding:"omitempty,min=1,max=100" example:"10"`
	TimeSlotInterval   int      `json:"timeSlotInterval" binding:"omitempty,min=5,max=240" example:"30"`
}

// UpdateRestaurantRequest 更新餐厅请求，未提供的字段保持原值
type UpdateRestaurantRequest struct {
	Name               *string  `json:"name" binding:"omitempty,min=1,max=255"`
	Description        *string  `json:"description" binding:"omitempty,min=10"`
	Address            *string  `json:"address" binding:"omitempty,min=1,max=255"`
	Hours              *string  `json:"hours" binding:"omitempty,min=1"`
	ImageURL           *string  `json:"imageUrl" binding:"omitempty,min=1"`
	Latitude           *float64 `json:"latitude" binding:"omitempty,gte=-90,lte=90"`
	Longitude          *float64 `json:"longitude" binding:"omitempty,gte=-180,lte=180"`
	SustainabilityInfo *string  `json:"sustainabilityInfo" binding:"omitempty,min=1"`
	Menu               *string  `json:"menu" binding:"omitempty,min=1"`
	Type               *string  `json:"type" binding:"omitempty,min=1,max=100"`
	MaxPartySize       *int     `json:"maxPartySize" binding:"omitempty,min=1,max=100"`
	TimeSlotInterval   *int     `json:"timeSlotInterval" binding:"omitempty,min=5,max=240"`
}

// toModel 转换为餐厅模型
func (r *RestaurantRequest) toModel() *models.Restaurant {
	return &models.Restaurant{
		Name:               r.Name,
		Description:        r.Description,
		Address:            r.Address,
		Hours:              r.Hours,
		ImageURL:           r.ImageURL,
		Latitude:           *r.Latitude,
		Longitude:          *r.Longitude,
		SustainabilityInfo: r.SustainabilityInfo,
		Menu:               r.Menu,
		Type:               r.Type,
		MaxPartySize:       r.MaxPartySize,
		TimeSlotInterval:   r.TimeSlotInterval,
	}
}

// applyTo 将提供的字段合并到已有餐厅
func (r *UpdateRestaurantRequest) applyTo(restaurant *models.Restaurant) {
	if r.Name != nil {
		restaurant.Name = *r.Name
	}
	if r.Description != nil {
		restaurant.Description = *r.Description
	}
	if r.Address != nil {
		restaurant.Address = *r.Address
	}
	if r.Hours != nil {
		restaurant.Hours = *r.Hours
	}
	if r.ImageURL != nil {
		restaurant.ImageURL = *r.ImageURL
	}
	if r.Latitude != nil {
		restaurant.Latitude = *r.Latitude
	}
	if r.Longitude != nil {
		restaurant.Longitude = *r.Longitude
	}
	if r.SustainabilityInfo != nil {
		restaurant.SustainabilityInfo = *r.SustainabilityInfo
	}
	if r.Menu != nil {
		restaurant.Menu = *r.Menu
	}
	if r.Type != nil {
		restaurant.Type = *r.Type
	}
	if r.MaxPartySize != nil {
		restaurant.MaxPartySize = *r.MaxPartySize
	}
	if r.TimeSlotInterval != nil {
		restaurant.TimeSlotInterval = *r.TimeSlotInterval
	}
}

// HandleRestaurantFunc 返回一个处理餐厅请求的Gin处理函数
func HandleRestaurantFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewRestaurantController(ctx, container)

		switch method {
		case "listRestaurants":
			controller.ListRestaurants()
		case "getRestaurant":
			controller.GetRestaurant()
		case "searchRestaurants":
			controller.SearchRestaurants()
		case "getTimeSlots":
			controller.GetTimeSlots()
		case "createRestaurant":
			controller.CreateRestaurant()
		case "updateRestaurant":
			controller.UpdateRestaurant()
		case "deleteRestaurant":
			controller.DeleteRestaurant()
		default:
			response.FailWithMessage(ctx, code.ErrBind, "无效的方法", nil)
		}
	}
}

func (c *RestaurantController) service() services.InterfaceRestaurantService {
	return c.Container.GetService("restaurant").(services.InterfaceRestaurantService)
}

// ListRestaurants 获取餐厅列表
// @Summary      List restaurants
// @Description  Return every restaurant in the directory ordered by id. A non-empty q filters by name and description.
// @Tags         Restaurant
// @Produce      json
// @Param        q    query     string  false  "Search text"
// @Success      200  {array}   models.Restaurant
// @Failure      500  {object}  response.Response
// @Router       /restaurants [get]
func (c *RestaurantController) ListRestaurants() {
	var (
		restaurants []models.Restaurant
		err         error
	)
	if q := c.Ctx.Query("q"); q != "" {
		restaurants, err = c.service().Search(c.Ctx.Request.Context(), q)
	} else {
		restaurants, err = c.service().List(c.Ctx.Request.Context())
	}
	if err != nil {
		handleServiceError(c.Ctx, err)
		return
	}
	response.Success(c.Ctx, restaurants)
}

// GetRestaurant 获取餐厅详情
// @Summary      Get restaurant
// @Description  Return a single restaurant by id
// @Tags         Restaurant
// @Produce      json
// @Param        id   path      int  true  "Restaurant ID"
// @Success      200  {object}  models.Restaurant
// @Failure      400  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /restaurants/{id} [get]
func (c *RestaurantController) GetRestaurant() {
	id, ok := parseID(c.Ctx, "id")
	if !ok {
		return
	}

	restaurant, err := c.service().Get(c.Ctx.Request.Context(), id)
	if err != nil {
		handleServiceError(c.Ctx, err)
		return
	}
	response.Success(c.Ctx, restaurant)
}

// SearchRestaurants 搜索餐厅
// @Summary      Search restaurants
// @Description  Case-insensitive substring match on name or description
// @Tags         Restaurant
// @Produce      json
// @Param        q    path      string  true  "Search text"
// @Success      200  {array}   models.Restaurant
// @Failure      500  {object}  response.Response
// @Router       /restaurants/search/{q} [get]
func (c *RestaurantController) SearchRestaurants() {
	restaurants, err := c.service().Search(c.Ctx.Request.Context(), c.Ctx.Param("q"))
	if err != nil {
		handleServiceError(c.Ctx, err)
		return
	}
	response.Success(c.Ctx, restaurants)
}

// GetTimeSlots 获取餐厅可选时段
// @Summary      Reservation time slots
// @Description  "HH:MM" slots from 11:00 to 22:00 stepped by the restaurant's slot interval. Does not check availability.
// @Tags         Restaurant
// @Produce      json
// @Param        id   path      int  true  "Restaurant ID"
// @Success      200  {array}   string
// @Failure      400  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /restaurants/{id}/time-slots [get]
func (c *RestaurantController) GetTimeSlots() {
	id, ok := parseID(c.Ctx, "id")
	if !ok {
		return
	}

	restaurant, err := c.service().Get(c.Ctx.Request.Context(), id)
	if err != nil {
		handleServiceError(c.Ctx, err)
		return
	}

	reservationService := c.Container.GetService("reservation").(services.InterfaceReservationService)
	response.Success(c.Ctx, reservationService.TimeSlots(restaurant.TimeSlotInterval))
}

// CreateRestaurant 创建餐厅
// @Summary      Create restaurant
// @Description  Admin only. maxPartySize defaults to 10 and timeSlotInterval to 30 when omitted.
// @Tags         Restaurant
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body      RestaurantRequest  true  "Restaurant"
// @Success      201      {object}  models.Restaurant
// @Failure      400      {object}  response.Response
// @Failure      401      {object}  response.Response
// @Router       /restaurants [post]
func (c *RestaurantController) CreateRestaurant() {
	var req RestaurantRequest
	if !bindJSON(c.Ctx, &req) {
		return
	}

	restaurant, err := c.service().Create(c.Ctx.Request.Context(), req.toModel())
	if err != nil {
		handleServiceError(c.Ctx, err)
		return
	}
	response.Created(c.Ctx, restaurant)
}

// UpdateRestaurant 更新餐厅
// @Summary      Update restaurant
// @Description  Admin only. Fields left out of the body keep their current value.
// @Tags         Restaurant
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      int                      true  "Restaurant ID"
// @Param        request  body      UpdateRestaurantRequest  true  "Fields to change"
// @Success      200      {object}  models.Restaurant
// @Failure      400      {object}  response.Response
// @Failure      401      {object}  response.Response
// @Failure      404      {object}  response.Response
// @Router       /restaurants/{id} [patch]
func (c *RestaurantController) UpdateRestaurant() {
	id, ok := parseID(c.Ctx, "id")
	if !ok {
		return
	}

	var req UpdateRestaurantRequest
	if !bindJSON(c.Ctx, &req) {
		return
	}

	ctx := c.Ctx.Request.Context()
	restaurant, err := c.service().Get(ctx, id)
	if err != nil {
		handleServiceError(c.Ctx, err)
		return
	}
	req.applyTo(restaurant)

	updated, err := c.service().Update(ctx, id, restaurant)
	if err != nil {
		handleServiceError(c.Ctx, err)
		return
	}
	response.Success(c.Ctx, updated)
}

// DeleteRestaurant 删除餐厅
// @Summary      Delete restaurant
// @Description  Admin only. Reviews and reservations of the restaurant are kept.
// @Tags         Restaurant
// @Security     BearerAuth
// @Param        id   path  int  true  "Restaurant ID"
// @Success      204  "No Content"
// @Failure      400  {object}  response.Response
// @Failure      401  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /restaurants/{id} [delete]
func (c *RestaurantController) DeleteRestaurant() {
	id, ok := parseID(c.Ctx, "id")
	if !ok {
		return
	}

	if err := c.service().Delete(c.Ctx.Request.Context(), id); err != nil {
		handleServiceError(c.Ctx, err)
		return
	}
	response.NoContent(c.Ctx)
}
