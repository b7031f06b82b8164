package models

// OrderLine is one (dish, quantity) entry of an order. The same dish may
// appear on several lines of one order.
type OrderLine struct {
	ID       uint `gorm:"primaryKey" json:"-"`
	OrderID  uint `gorm:"not null;index" json:"order_id"`
	DishID   uint `gorm:"not null;index" json:"dish_id"`
	Dish     Dish `gorm:"foreignKey:DishID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"`
	Quantity int  `gorm:"not null" json:"quantity"`
	// Cancelled is the epoch second the line was cancelled at, 0 while active.
	Cancelled int64 `gorm:"not null;default:0" json:"cancelled"`
}

func (OrderLine) TableName() string {
	return "orderlist"
}
