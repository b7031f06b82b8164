package database

import (
	"fmt"

	"github.com/yeremiapane/resteasy/models"
)

// AddOrder creates an empty order for user uid placed at ts (epoch seconds).
func (s *Store) AddOrder(uid uint, ts int64) (uint, error) {
	order := models.Order{UserID: uid, Timestamp: ts}
	err := s.Transaction(func(tx *Store) error {
		if n, err := tx.count(&models.User{}, "id = ?", uid); err != nil {
			return err
		} else if n == 0 {
			return &ReferentialError{Entity: "user", Key: idKey(uid)}
		}
		return tx.db.Create(&order).Error
	})
	if err != nil {
		if IsForeignKeyViolation(err) {
			return 0, &ReferentialError{Entity: "user", Key: idKey(uid)}
		}
		return 0, err
	}
	return order.ID, nil
}

// AddOrderDish appends a line for qty portions of dish did to order oid.
// The quantity is stored as given; bounds are the caller's concern.
func (s *Store) AddOrderDish(oid, did uint, qty int) error {
	err := s.Transaction(func(tx *Store) error {
		if n, err := tx.count(&models.Order{}, "id = ?", oid); err != nil {
			return err
		} else if n == 0 {
			return &ReferentialError{Entity: "order", Key: idKey(oid)}
		}
		if n, err := tx.count(&models.Dish{}, "id = ?", did); err != nil {
			return err
		} else if n == 0 {
			return &ReferentialError{Entity: "dish", Key: idKey(did)}
		}
		return tx.db.Create(&models.OrderLine{OrderID: oid, DishID: did, Quantity: qty}).Error
	})
	if IsForeignKeyViolation(err) {
		return &ReferentialError{Entity: "order line", Key: fmt.Sprintf("%d,%d", oid, did), Reason: "order or dish does not exist"}
	}
	return err
}

// CancelOrderDish marks the active lines of dish did in order oid as
// cancelled at ts.
func (s *Store) CancelOrderDish(oid, did uint, ts int64) error {
	res := s.db.Model(&models.OrderLine{}).
		Where("order_id = ? AND dish_id = ? AND cancelled = 0", oid, did).
		Update("cancelled", ts)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return &NotFoundError{Entity: "order line", Key: fmt.Sprintf("%d,%d", oid, did)}
	}
	return nil
}

// DelOrder removes an order together with its lines.
func (s *Store) DelOrder(oid uint) error {
	return s.Transaction(func(tx *Store) error {
		if err := tx.db.Where("order_id = ?", oid).Delete(&models.OrderLine{}).Error; err != nil {
			return err
		}
		res := tx.db.Delete(&models.Order{}, oid)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return &NotFoundError{Entity: "order", Key: idKey(oid)}
		}
		return nil
	})
}

// ListOrdersByUser returns the active lines of every order user uid placed,
// ordered by order id and then by the order the lines were added in. Rows of
// one order are therefore contiguous.
func (s *Store) ListOrdersByUser(uid uint) ([]models.UserOrderRow, error) {
	rows := []models.UserOrderRow{}
	err := s.db.Table("orderlist").
		Select("orders.id AS order_id, orders.timestamp AS timestamp, items.name AS item, "+
			"vendors.name AS vendor, dishes.price AS price, orderlist.quantity AS quantity").
		Joins("INNER JOIN orders ON orders.id = orderlist.order_id").
		Joins("INNER JOIN dishes ON dishes.id = orderlist.dish_id").
		Joins("INNER JOIN items ON items.id = dishes.item_id").
		Joins("INNER JOIN vendors ON vendors.id = dishes.vendor_id").
		Where("orders.user_id = ? AND orderlist.cancelled = 0", uid).
		Order("orders.id, orderlist.id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// ListOrdersByVendor returns the active lines for dishes of vendor vid,
// grouped contiguously by order id like ListOrdersByUser.
func (s *Store) ListOrdersByVendor(vid uint) ([]models.VendorOrderRow, error) {
	rows := []models.VendorOrderRow{}
	err := s.db.Table("orderlist").
		Select("orders.id AS order_id, orders.timestamp AS timestamp, users.fullname AS customer, "+
			"items.name AS item, orderlist.quantity AS quantity").
		Joins("INNER JOIN orders ON orders.id = orderlist.order_id").
		Joins("INNER JOIN users ON users.id = orders.user_id").
		Joins("INNER JOIN dishes ON dishes.id = orderlist.dish_id").
		Joins("INNER JOIN items ON items.id = dishes.item_id").
		Where("dishes.vendor_id = ? AND orderlist.cancelled = 0", vid).
		Order("orders.id, orderlist.id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// OrderExists reports whether order oid exists.
func (s *Store) OrderExists(oid uint) (bool, error) {
	n, err := s.count(&models.Order{}, "id = ?", oid)
	return n > 0, err
}
