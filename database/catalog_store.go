package database

import (
	"fmt"
	"strings"

	"github.com/yeremiapane/resteasy/models"
	"gorm.io/gorm"
)

// containsPattern builds a LIKE pattern matching any search key that
// contains the folded s. Wildcards in s are matched literally, using '!' as
// the escape character.
func containsPattern(s string) string {
	r := strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")
	return "%" + r.Replace(models.SearchKey(s)) + "%"
}

// containsClause matches the search key column kept next to a name.
func containsClause(column string) string {
	return column + " LIKE ? ESCAPE '!'"
}

// --- vendors ---

func (s *Store) GetVID(name string) (uint, error) {
	id, found, err := s.findID(&models.Vendor{}, "name = ?", name)
	if err != nil {
		return 0, err
	}
	if !found {
		return 0, &NotFoundError{Entity: "vendor", Key: name}
	}
	return id, nil
}

func (s *Store) VendorExists(name string) (bool, error) {
	_, found, err := s.findID(&models.Vendor{}, "name = ?", name)
	return found, err
}

func (s *Store) AddVendor(name, address string) (uint, error) {
	if err := required("name", name); err != nil {
		return 0, err
	}
	if err := required("address", address); err != nil {
		return 0, err
	}
	vendor := models.Vendor{Name: name, NameKey: models.SearchKey(name), Address: address}
	if err := s.db.Create(&vendor).Error; err != nil {
		if IsUniqueViolation(err) {
			return 0, &AlreadyExistsError{Entity: "vendor", Key: name}
		}
		return 0, err
	}
	return vendor.ID, nil
}

// DelVendor removes a vendor that no dish or admin refers to.
func (s *Store) DelVendor(name string) error {
	return s.Transaction(func(tx *Store) error {
		vid, err := tx.GetVID(name)
		if err != nil {
			return err
		}
		for _, ref := range []struct {
			model  any
			reason string
		}{
			{&models.Dish{}, "vendor still offers dishes"},
			{&models.Admin{}, "vendor still has admins"},
		} {
			n, err := tx.count(ref.model, "vendor_id = ?", vid)
			if err != nil {
				return err
			}
			if n > 0 {
				return &ReferentialError{Entity: "vendor", Key: name, Reason: ref.reason}
			}
		}
		if err := tx.db.Delete(&models.Vendor{}, vid).Error; err != nil {
			if IsForeignKeyViolation(err) {
				return &ReferentialError{Entity: "vendor", Key: name, Reason: "vendor is still referenced"}
			}
			return err
		}
		return nil
	})
}

// VendorIDExists reports whether a vendor with id vid exists.
func (s *Store) VendorIDExists(vid uint) (bool, error) {
	n, err := s.count(&models.Vendor{}, "id = ?", vid)
	return n > 0, err
}

// ListVendors returns vendors whose name contains substr, case-insensitively,
// in id order. An empty substr lists every vendor.
func (s *Store) ListVendors(substr string) ([]models.VendorRow, error) {
	rows := []models.VendorRow{}
	q := s.db.Model(&models.Vendor{}).Select("id, name, address")
	if substr != "" {
		q = q.Where(containsClause("name_key"), containsPattern(substr))
	}
	if err := q.Order("id").Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// --- items ---

func (s *Store) GetIID(name string) (uint, error) {
	id, found, err := s.findID(&models.Item{}, "name = ?", name)
	if err != nil {
		return 0, err
	}
	if !found {
		return 0, &NotFoundError{Entity: "item", Key: name}
	}
	return id, nil
}

func (s *Store) ItemExists(name string) (bool, error) {
	_, found, err := s.findID(&models.Item{}, "name = ?", name)
	return found, err
}

// AddItem returns the id of the item called name, creating it if needed.
// Items are shared between vendors, so an existing name is not an error and
// its calories are left untouched.
func (s *Store) AddItem(name string, calories int) (uint, error) {
	if err := required("name", name); err != nil {
		return 0, err
	}
	if calories < 0 {
		return 0, &ValidationError{Field: "calories", Message: "must not be negative"}
	}
	if id, found, err := s.findID(&models.Item{}, "name = ?", name); err != nil || found {
		return id, err
	}
	item := models.Item{Name: name, NameKey: models.SearchKey(name), Calories: calories}
	if err := s.db.Create(&item).Error; err != nil {
		if !IsUniqueViolation(err) {
			return 0, err
		}
		// Lost an insert race; the other writer's row wins.
		return s.GetIID(name)
	}
	return item.ID, nil
}

func (s *Store) DelItem(name string) error {
	return s.Transaction(func(tx *Store) error {
		iid, err := tx.GetIID(name)
		if err != nil {
			return err
		}
		n, err := tx.count(&models.Dish{}, "item_id = ?", iid)
		if err != nil {
			return err
		}
		if n > 0 {
			return &ReferentialError{Entity: "item", Key: name, Reason: "item is still offered by vendors"}
		}
		return tx.db.Delete(&models.Item{}, iid).Error
	})
}

// --- dishes ---

func dishKey(iid, vid uint) string {
	return fmt.Sprintf("%d,%d", iid, vid)
}

func (s *Store) GetDID(iid, vid uint) (uint, error) {
	id, found, err := s.findID(&models.Dish{}, "item_id = ? AND vendor_id = ?", iid, vid)
	if err != nil {
		return 0, err
	}
	if !found {
		return 0, &NotFoundError{Entity: "dish", Key: dishKey(iid, vid)}
	}
	return id, nil
}

func (s *Store) DishExists(iid, vid uint) (bool, error) {
	_, found, err := s.findID(&models.Dish{}, "item_id = ? AND vendor_id = ?", iid, vid)
	return found, err
}

// AddDish records that vendor vid offers item iid at price.
func (s *Store) AddDish(iid, vid uint, price float64) (uint, error) {
	if price < 0 {
		return 0, &ValidationError{Field: "price", Message: "must not be negative"}
	}
	dish := models.Dish{ItemID: iid, VendorID: vid, Price: price}
	err := s.Transaction(func(tx *Store) error {
		if n, err := tx.count(&models.Item{}, "id = ?", iid); err != nil {
			return err
		} else if n == 0 {
			return &ReferentialError{Entity: "item", Key: idKey(iid)}
		}
		if n, err := tx.count(&models.Vendor{}, "id = ?", vid); err != nil {
			return err
		} else if n == 0 {
			return &ReferentialError{Entity: "vendor", Key: idKey(vid)}
		}
		return tx.db.Create(&dish).Error
	})
	switch {
	case err == nil:
		return dish.ID, nil
	case IsUniqueViolation(err):
		return 0, &AlreadyExistsError{Entity: "dish", Key: dishKey(iid, vid)}
	case IsForeignKeyViolation(err):
		return 0, &ReferentialError{Entity: "dish", Key: dishKey(iid, vid), Reason: "item or vendor does not exist"}
	default:
		return 0, err
	}
}

func (s *Store) DelDish(iid, vid uint) error {
	return s.Transaction(func(tx *Store) error {
		did, err := tx.GetDID(iid, vid)
		if err != nil {
			return err
		}
		n, err := tx.count(&models.OrderLine{}, "dish_id = ?", did)
		if err != nil {
			return err
		}
		if n > 0 {
			return &ReferentialError{Entity: "dish", Key: dishKey(iid, vid), Reason: "dish appears in orders"}
		}
		return tx.db.Delete(&models.Dish{}, did).Error
	})
}

func (s *Store) dishListing() *gorm.DB {
	return s.db.Table("dishes").
		Select("dishes.id AS id, items.name AS item, vendors.name AS vendor, dishes.price AS price").
		Joins("INNER JOIN items ON items.id = dishes.item_id").
		Joins("INNER JOIN vendors ON vendors.id = dishes.vendor_id")
}

// ListDishesByName returns dishes whose item name contains substr,
// case-insensitively, in dish id order.
func (s *Store) ListDishesByName(substr string) ([]models.DishRow, error) {
	rows := []models.DishRow{}
	q := s.dishListing()
	if substr != "" {
		q = q.Where(containsClause("items.name_key"), containsPattern(substr))
	}
	if err := q.Order("dishes.id").Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// ListDishesByVendor returns the dishes vendor vid offers, in dish id order.
func (s *Store) ListDishesByVendor(vid uint) ([]models.DishRow, error) {
	rows := []models.DishRow{}
	err := s.dishListing().Where("dishes.vendor_id = ?", vid).Order("dishes.id").Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
