package models

import "time"

// Item is a food concept shared by every vendor that offers it.
type Item struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"name"`
	NameKey   string    `gorm:"type:varchar(255);index;not null;default:''" json:"-"`
	Calories  int       `gorm:"not null;default:0" json:"calories"`
	CreatedAt time.Time `json:"created_at"`
}

// Dish is a vendor's offer of an item at a price. A vendor offers an item at
// most once.
type Dish struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	ItemID    uint      `gorm:"not null;uniqueIndex:idx_dish_item_vendor" json:"item_id"`
	Item      Item      `gorm:"foreignKey:ItemID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"`
	VendorID  uint      `gorm:"not null;uniqueIndex:idx_dish_item_vendor;index" json:"vendor_id"`
	Vendor    Vendor    `gorm:"foreignKey:VendorID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"`
	Price     float64   `gorm:"type:decimal(10,2);not null" json:"price"`
	CreatedAt time.Time `json:"created_at"`
}
