package models

import (
	"encoding/json"
	"fmt"
)

// The listing rows below travel over the API as JSON arrays (tuples), in the
// column order of their fields.

// VendorRow is one (id, name, address) vendor listing.
type VendorRow struct {
	ID      uint
	Name    string
	Address string
}

// DishRow is one (id, item, vendor, price) dish listing.
type DishRow struct {
	ID     uint
	Item   string
	Vendor string
	Price  float64
}

// UserOrderRow is one order line as seen by the customer who placed it.
type UserOrderRow struct {
	OrderID   uint
	Timestamp int64
	Item      string
	Vendor    string
	Price     float64
	Quantity  int
}

// VendorOrderRow is one order line as seen by the vendor that received it.
type VendorOrderRow struct {
	OrderID   uint
	Timestamp int64
	Customer  string
	Item      string
	Quantity  int
}

// UserData is the public profile of a user.
type UserData struct {
	Username string
	Fullname string
	Phone    string
}

// AdminLogin is what a successful admin login yields.
type AdminLogin struct {
	AdminID  uint
	VendorID uint
}

func (r VendorRow) MarshalJSON() ([]byte, error) {
	return json.Marshal([]any{r.ID, r.Name, r.Address})
}

func (r *VendorRow) UnmarshalJSON(data []byte) error {
	return unmarshalTuple(data, &r.ID, &r.Name, &r.Address)
}

func (r DishRow) MarshalJSON() ([]byte, error) {
	return json.Marshal([]any{r.ID, r.Item, r.Vendor, r.Price})
}

func (r *DishRow) UnmarshalJSON(data []byte) error {
	return unmarshalTuple(data, &r.ID, &r.Item, &r.Vendor, &r.Price)
}

func (r UserOrderRow) MarshalJSON() ([]byte, error) {
	return json.Marshal([]any{r.OrderID, r.Timestamp, r.Item, r.Vendor, r.Price, r.Quantity})
}

func (r *UserOrderRow) UnmarshalJSON(data []byte) error {
	return unmarshalTuple(data, &r.OrderID, &r.Timestamp, &r.Item, &r.Vendor, &r.Price, &r.Quantity)
}

func (r VendorOrderRow) MarshalJSON() ([]byte, error) {
	return json.Marshal([]any{r.OrderID, r.Timestamp, r.Customer, r.Item, r.Quantity})
}

func (r *VendorOrderRow) UnmarshalJSON(data []byte) error {
	return unmarshalTuple(data, &r.OrderID, &r.Timestamp, &r.Customer, &r.Item, &r.Quantity)
}

func (d UserData) MarshalJSON() ([]byte, error) {
	return json.Marshal([]any{d.Username, d.Fullname, d.Phone})
}

func (d *UserData) UnmarshalJSON(data []byte) error {
	return unmarshalTuple(data, &d.Username, &d.Fullname, &d.Phone)
}

func (a AdminLogin) MarshalJSON() ([]byte, error) {
	return json.Marshal([]any{a.AdminID, a.VendorID})
}

func (a *AdminLogin) UnmarshalJSON(data []byte) error {
	return unmarshalTuple(data, &a.AdminID, &a.VendorID)
}

func unmarshalTuple(data []byte, fields ...any) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if len(raw) != len(fields) {
		return fmt.Errorf("expected a tuple of %d values, got %d", len(fields), len(raw))
	}
	for i, f := range fields {
		if err := json.Unmarshal(raw[i], f); err != nil {
			return fmt.Errorf("tuple element %d: %w", i, err)
		}
	}
	return nil
}
