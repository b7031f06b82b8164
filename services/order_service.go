package services

import (
	"strconv"

	"github.com/yeremiapane/resteasy/database"
	"github.com/yeremiapane/resteasy/models"
)

// OrderService records checkouts and lists them back per user or vendor.
type OrderService struct {
	store *database.Store
}

func NewOrderService(store *database.Store) *OrderService {
	return &OrderService{store: store}
}

// LineRequest is one cart entry at checkout.
type LineRequest struct {
	DishID   uint
	Quantity int
}

// PlaceOrder creates the order row and attaches every line in a single
// transaction. If any line fails nothing is kept.
func (s *OrderService) PlaceOrder(uid uint, ts int64, lines []LineRequest) (uint, error) {
	if len(lines) == 0 {
		return 0, &database.ValidationError{Field: "lines", Message: "an order needs at least one line"}
	}
	for _, l := range lines {
		if l.Quantity < 1 {
			return 0, &database.ValidationError{Field: "quantity", Message: "must be a positive integer"}
		}
	}

	var oid uint
	err := s.store.Transaction(func(tx *database.Store) error {
		var err error
		if oid, err = tx.AddOrder(uid, ts); err != nil {
			return err
		}
		for _, l := range lines {
			if err := tx.AddOrderDish(oid, l.DishID, l.Quantity); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return oid, nil
}

// AddOrder creates an order without lines; see AddOrderLine.
func (s *OrderService) AddOrder(uid uint, ts int64) (uint, error) {
	return s.store.AddOrder(uid, ts)
}

func (s *OrderService) AddOrderLine(oid, did uint, qty int) error {
	return s.store.AddOrderDish(oid, did, qty)
}

func (s *OrderService) CancelLine(oid, did uint, ts int64) error {
	return s.store.CancelOrderDish(oid, did, ts)
}

func (s *OrderService) DeleteOrder(oid uint) error {
	return s.store.DelOrder(oid)
}

func (s *OrderService) ListForUser(uid uint) ([]models.UserOrderRow, error) {
	return s.store.ListOrdersByUser(uid)
}

func (s *OrderService) ListForVendor(vid uint) ([]models.VendorOrderRow, error) {
	return s.store.ListOrdersByVendor(vid)
}

// UserOrder is one order with its lines, as a customer sees it.
type UserOrder struct {
	OrderID   uint
	Timestamp int64
	Lines     []models.UserOrderRow
}

// Total is the sum of price times quantity over the lines.
func (o UserOrder) Total() float64 {
	var total float64
	for _, l := range o.Lines {
		total += l.Price * float64(l.Quantity)
	}
	return total
}

// GroupUserOrders splits rows into orders wherever the order id changes.
// Rows must already be ordered by order id, as the store returns them.
func GroupUserOrders(rows []models.UserOrderRow) []UserOrder {
	var orders []UserOrder
	for _, r := range rows {
		if n := len(orders); n == 0 || orders[n-1].OrderID != r.OrderID {
			orders = append(orders, UserOrder{OrderID: r.OrderID, Timestamp: r.Timestamp})
		}
		last := &orders[len(orders)-1]
		last.Lines = append(last.Lines, r)
	}
	return orders
}

// VendorOrder is one order as a vendor sees it: only that vendor's lines.
type VendorOrder struct {
	OrderID   uint
	Timestamp int64
	Customer  string
	Lines     []models.VendorOrderRow
}

// GroupVendorOrders is GroupUserOrders for vendor rows.
func GroupVendorOrders(rows []models.VendorOrderRow) []VendorOrder {
	var orders []VendorOrder
	for _, r := range rows {
		if n := len(orders); n == 0 || orders[n-1].OrderID != r.OrderID {
			orders = append(orders, VendorOrder{OrderID: r.OrderID, Timestamp: r.Timestamp, Customer: r.Customer})
		}
		last := &orders[len(orders)-1]
		last.Lines = append(last.Lines, r)
	}
	return orders
}

func idString(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}
