package cache

import (
	"net/url"
	"strings"
)

// Collection names a family of cached query results.
type Collection string

const (
	Bookings            Collection = "bookings"
	Orders              Collection = "orders"
	SellerOrders        Collection = "seller-orders"
	Notifications       Collection = "notifications"
	Animals             Collection = "animals"
	Cases               Collection = "cases"
	SellerProducts      Collection = "seller-products"
	MarketplaceProducts Collection = "marketplace-products"
)

var Collections = []Collection{
	Bookings, Orders, SellerOrders, Notifications, Animals, Cases, SellerProducts, MarketplaceProducts,
}

// Key identifies one cached result: a list (optionally filtered) or a single
// resource detail.
type Key struct {
	Collection Collection
	ID         string
	Params     string
}

// ListKey keys a list read. Empty filter values are dropped so that
// "?status=" and no filter share one entry.
func ListKey(c Collection, params url.Values) Key {
	clean := url.Values{}
	for k, vs := range params {
		for _, v := range vs {
			if strings.TrimSpace(v) != "" {
				clean.Add(k, v)
			}
		}
	}
	return Key{Collection: c, Params: clean.Encode()}
}

// DetailKey keys a single-resource read.
func DetailKey(c Collection, id string) Key {
	return Key{Collection: c, ID: id}
}

func (k Key) String() string {
	s := string(k.Collection)
	if k.ID != "" {
		s += "[" + k.ID + "]"
	}
	if k.Params != "" {
		s += "?" + k.Params
	}
	return s
}

// Target selects the entries an invalidation applies to. An empty ID selects
// every entry of the collection, filtered lists and details included.
type Target struct {
	Collection Collection `json:"collection" yaml:"collection"`
	ID         string     `json:"id,omitempty" yaml:"id,omitempty"`
}

func (t Target) matches(k Key) bool {
	if k.Collection != t.Collection {
		return false
	}
	return t.ID == "" || t.ID == k.ID
}

func (t Target) String() string {
	if t.ID == "" {
		return string(t.Collection)
	}
	return string(t.Collection) + "[" + t.ID + "]"
}
