package model

// Listing is a single marketplace product record. UpdatedAtMS is assigned by
// the server on every successful write and strictly increases per listing so
// recency ordering is a total order.
type Listing struct {
	ID            string `gorm:"primaryKey;size:64" json:"id"`
	Name          string `gorm:"size:120;not null" json:"name"`
	Category      string `gorm:"size:64;not null" json:"category"`
	Price         int64  `gorm:"not null" json:"price"`
	Description   string `gorm:"type:text;not null" json:"description"`
	Condition     string `gorm:"size:64;not null" json:"condition"`
	Negotiable    bool   `gorm:"not null" json:"negotiable"`
	Location      string `gorm:"size:120;not null" json:"location"`
	PaymentOption string `gorm:"size:64;not null" json:"paymentOption"`
	SellerContact string `gorm:"size:64;not null" json:"sellerContact"`
	SellerID      string `gorm:"size:64;not null;index" json:"sellerId"`
	ImageRef      string `gorm:"size:512;not null" json:"imageRef"`
	UpdatedAtMS   int64  `gorm:"not null;index" json:"updatedAt"`
}

func (Listing) TableName() string {
	return "listings"
}
