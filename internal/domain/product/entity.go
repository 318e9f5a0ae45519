package product

// SellerProduct is a listing as its seller sees it.
type SellerProduct struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description *string  `json:"description,omitempty"`
	Category    string   `json:"category"`
	Price       float64  `json:"price"`
	ImageURLs   []string `json:"imageUrls,omitempty"`
	Stock       int      `json:"stock"`
	IsActive    bool     `json:"is_active"`
	IsVerified  bool     `json:"is_verified"`
	Recommended bool     `json:"recommended"`
	CreatedAt   string   `json:"createdAt,omitempty"`
}

// MarketplaceProduct is a listing as buyers see it.
type MarketplaceProduct struct {
	ID             string   `json:"id"`
	Title          string   `json:"title"`
	Category       string   `json:"category"`
	Price          float64  `json:"price"`
	Description    *string  `json:"description,omitempty"`
	ImageURLs      []string `json:"imageUrls,omitempty"`
	SellerID       string   `json:"sellerId"`
	SellerName     string   `json:"sellerName,omitempty"`
	SellerLocation string   `json:"sellerLocation,omitempty"`
	SellerDistance *float64 `json:"sellerDistance,omitempty"`
	Stock          int      `json:"stock"`
	IsVerified     bool     `json:"isVerified"`
	Rating         *float64 `json:"rating,omitempty"`
	ReviewCount    int      `json:"reviewCount"`
	CreatedAt      string   `json:"createdAt,omitempty"`
}

func (p *MarketplaceProduct) InStock() bool { return p.Stock > 0 }
