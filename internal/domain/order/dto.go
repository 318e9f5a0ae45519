package order

import "anilink/internal/cache"

type CreateItem struct {
	ProductID string  `json:"productId" binding:"required"`
	Quantity  int     `json:"quantity" binding:"required,min=1"`
	Price     float64 `json:"price" binding:"gte=0"`
}

type CreateOrderRequest struct {
	Items            []CreateItem `json:"items" binding:"required,min=1,dive"`
	DeliveryType     string       `json:"deliveryType" binding:"required"`
	DeliveryAddress  string       `json:"deliveryAddress,omitempty"`
	DeliveryDistrict string       `json:"deliveryDistrict,omitempty"`
}

type SellerStatusRequest struct {
	Status string `json:"status" binding:"required" validate:"oneof=confirmed packed dispatched delivered"`
}

// View is an order plus the actions the owner is offered.
type View struct {
	Order
	CanCancel bool `json:"canCancel"`
}

func NewView(o Order) View {
	return View{Order: o, CanCancel: CanCancel(o.Status)}
}

type ListResponse struct {
	Orders []View     `json:"orders"`
	Meta   cache.Meta `json:"meta"`
}

type DetailResponse struct {
	Order View       `json:"order"`
	Meta  cache.Meta `json:"meta"`
}

type SellerListResponse struct {
	Orders []SellerOrder `json:"orders"`
	Meta   cache.Meta    `json:"meta"`
}
