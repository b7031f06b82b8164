package models

import "time"

// User is a customer account. Password holds a bcrypt hash, never the
// plaintext the client sent.
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Username  string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"username"`
	Password  string    `gorm:"type:varchar(255);not null" json:"-"`
	Fullname  string    `gorm:"type:varchar(255);not null" json:"fullname"`
	Phone     string    `gorm:"type:varchar(50);not null" json:"phone"`
	CreatedAt time.Time `json:"created_at"`
}

// Admin manages one vendor. Several admins may share a vendor.
type Admin struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Username  string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"username"`
	Password  string    `gorm:"type:varchar(255);not null" json:"-"`
	VendorID  uint      `gorm:"not null;index" json:"vendor_id"`
	Vendor    Vendor    `gorm:"foreignKey:VendorID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"`
	CreatedAt time.Time `json:"created_at"`
}
