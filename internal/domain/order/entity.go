package order

import "strings"

// Status is the lowercase order status used by the marketplace backend.
type Status string

const (
	StatusPending    Status = "pending"
	StatusConfirmed  Status = "confirmed"
	StatusPacked     Status = "packed"
	StatusDispatched Status = "dispatched"
	StatusDelivered  Status = "delivered"
	StatusCancelled  Status = "cancelled"
)

var AllStatuses = []Status{StatusPending, StatusConfirmed, StatusPacked, StatusDispatched, StatusDelivered, StatusCancelled}

// SellerStatuses are the statuses a seller may move an order to.
var SellerStatuses = []Status{StatusConfirmed, StatusPacked, StatusDispatched, StatusDelivered}

func normalize(s string) Status {
	return Status(strings.ToLower(strings.TrimSpace(s)))
}

// CanCancel reports whether the owner is offered a cancel action. The backend
// has the final say.
func CanCancel(status string) bool {
	s := normalize(status)
	return s == StatusPending || s == StatusConfirmed
}

// IsSellerSettable reports whether a seller may set status.
func IsSellerSettable(status string) bool {
	s := normalize(status)
	for _, allowed := range SellerStatuses {
		if s == allowed {
			return true
		}
	}
	return false
}

// IsKnownStatus reports whether status is one of AllStatuses.
func IsKnownStatus(status string) bool {
	s := normalize(status)
	for _, known := range AllStatuses {
		if s == known {
			return true
		}
	}
	return false
}

type Item struct {
	ProductID       string  `json:"productId"`
	ProductTitle    string  `json:"productTitle"`
	Price           float64 `json:"price"`
	Quantity        int     `json:"quantity"`
	ProductImageURL string  `json:"productImageUrl,omitempty"`
}

// Order is the buyer-side order DTO.
type Order struct {
	ID               string  `json:"id"`
	Items            []Item  `json:"items"`
	TotalAmount      float64 `json:"totalAmount"`
	DeliveryType     string  `json:"deliveryType"`
	DeliveryAddress  string  `json:"deliveryAddress,omitempty"`
	DeliveryDistrict string  `json:"deliveryDistrict,omitempty"`
	Status           string  `json:"status"`
	SellerID         string  `json:"sellerId,omitempty"`
	SellerName       string  `json:"sellerName,omitempty"`
	SellerPhone      string  `json:"sellerPhone,omitempty"`
	SellerEmail      string  `json:"sellerEmail,omitempty"`
	CreatedAt        string  `json:"createdAt,omitempty"`
	UpdatedAt        string  `json:"updatedAt,omitempty"`
}

type SellerItem struct {
	ID          string  `json:"id"`
	ProductID   string  `json:"productId,omitempty"`
	ProductName string  `json:"productName,omitempty"`
	UnitPrice   float64 `json:"unitPrice"`
	Quantity    int     `json:"quantity"`
	Subtotal    float64 `json:"subtotal"`
}

// SellerOrder is an order containing the seller's products.
type SellerOrder struct {
	ID              string       `json:"id"`
	Status          string       `json:"status"`
	TotalAmount     float64      `json:"totalAmount"`
	DeliveryAddress string       `json:"deliveryAddress,omitempty"`
	CreatedAt       string       `json:"createdAt,omitempty"`
	UpdatedAt       string       `json:"updatedAt,omitempty"`
	Items           []SellerItem `json:"items"`
}
