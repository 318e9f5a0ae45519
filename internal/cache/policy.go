package cache

// Mutation names a backend write that changes authoritative state.
type Mutation string

const (
	CreateBooking            Mutation = "create-booking"
	CancelBooking            Mutation = "cancel-booking"
	UpdateBookingStatus      Mutation = "update-booking-status"
	CreateOrder              Mutation = "create-order"
	CancelOrder              Mutation = "cancel-order"
	UpdateSellerOrderStatus  Mutation = "update-seller-order-status"
	CreateAnimal             Mutation = "create-animal"
	CreateCase               Mutation = "create-case"
	CloseCase                Mutation = "close-case"
	CreateSellerProduct      Mutation = "create-seller-product"
	UpdateSellerProduct      Mutation = "update-seller-product"
	MarkNotificationRead     Mutation = "mark-notification-read"
	MarkAllNotificationsRead Mutation = "mark-all-notifications-read"
)

// Mutations lists every mutation in table order.
var Mutations = []Mutation{
	CreateBooking, CancelBooking, UpdateBookingStatus,
	CreateOrder, CancelOrder, UpdateSellerOrderStatus,
	CreateAnimal,
	CreateCase, CloseCase,
	CreateSellerProduct, UpdateSellerProduct,
	MarkNotificationRead, MarkAllNotificationsRead,
}

// stale is one row cell: a whole collection, or the detail entry of the
// mutated resource when detail is set.
type stale struct {
	collection Collection
	detail     bool
}

func all(c Collection) stale    { return stale{collection: c} }
func detail(c Collection) stale { return stale{collection: c, detail: true} }

var (
	bookingWrite = []stale{all(Bookings), detail(Bookings), all(Notifications)}
	orderWrite   = []stale{all(Orders), detail(Orders), all(SellerOrders), all(Notifications)}
	caseWrite    = []stale{all(Cases), detail(Cases), all(Animals), all(Notifications)}
	productWrite = []stale{all(SellerProducts), all(MarketplaceProducts)}
	readWrite    = []stale{all(Notifications)}
)

var invalidationTable = map[Mutation][]stale{
	CreateBooking:            bookingWrite,
	CancelBooking:            bookingWrite,
	UpdateBookingStatus:      bookingWrite,
	CreateOrder:              orderWrite,
	CancelOrder:              orderWrite,
	UpdateSellerOrderStatus:  {all(SellerOrders), detail(Orders), all(Notifications)},
	CreateAnimal:             {all(Animals), detail(Animals), all(Cases)},
	CreateCase:               caseWrite,
	CloseCase:                caseWrite,
	CreateSellerProduct:      productWrite,
	UpdateSellerProduct:      productWrite,
	MarkNotificationRead:     readWrite,
	MarkAllNotificationsRead: readWrite,
}

// Invalidations returns the targets a successful mutation of resource id makes
// stale. Detail targets are omitted when id is empty; unknown mutations
// invalidate nothing.
func Invalidations(m Mutation, id string) []Target {
	row := invalidationTable[m]
	out := make([]Target, 0, len(row))
	for _, s := range row {
		if s.detail {
			if id == "" {
				continue
			}
			out = append(out, Target{Collection: s.collection, ID: id})
			continue
		}
		out = append(out, Target{Collection: s.collection})
	}
	return out
}
