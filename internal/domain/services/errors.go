package services

import "errors"

// 领域错误，由控制器映射为业务错误码
var (
	ErrRestaurantNotFound   = errors.New("restaurant not found")
	ErrInvalidRestaurant    = errors.New("invalid restaurant")
	ErrInvalidReview        = errors.New("invalid review")
	ErrInvalidSort          = errors.New("invalid sort option")
	ErrReservationNotFound  = errors.New("reservation not found")
	ErrReservationCompleted = errors.New("reservation already completed")
	ErrGiftCardNotFound     = errors.New("gift card not found")
	ErrGiftCardInactive     = errors.New("gift card is inactive")
	ErrGiftCardExpired      = errors.New("gift card has expired")
	ErrInsufficientBalance  = errors.New("insufficient balance")
	ErrInvalidAmount        = errors.New("invalid amount")
	ErrCodeGeneration       = errors.New("could not generate a unique gift card code")
)
