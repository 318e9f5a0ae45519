package booking

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes регистрирует все маршруты для бронирований
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	bookings := rg.Group("/bookings")
	{
		bookings.GET("", h.ListBookings)
		bookings.POST("", h.CreateBooking)
		bookings.GET("/:id", h.GetBooking)

		// Booking lifecycle management
		bookings.PUT("/:id/status", h.UpdateBookingStatus)
		bookings.PUT("/:id/cancel", h.CancelBooking)
	}
}
