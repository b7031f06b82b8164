package services

import (
	"errors"
	"strings"

	"github.com/yeremiapane/resteasy/database"
	"github.com/yeremiapane/resteasy/models"
)

// CatalogService turns the names people type into catalog ids and searches
// vendors and dishes.
type CatalogService struct {
	store *database.Store
}

func NewCatalogService(store *database.Store) *CatalogService {
	return &CatalogService{store: store}
}

func (s *CatalogService) ResolveVendor(name string) (uint, error) {
	return s.store.GetVID(name)
}

func (s *CatalogService) ResolveItem(name string) (uint, error) {
	return s.store.GetIID(name)
}

// ResolveDish finds the dish through which vendor sells item. The three
// failure cases stay distinguishable: a NotFoundError with Entity "item",
// "vendor" or "offer".
func (s *CatalogService) ResolveDish(item, vendor string) (uint, error) {
	iid, err := s.store.GetIID(item)
	if err != nil {
		return 0, err
	}
	vid, err := s.store.GetVID(vendor)
	if err != nil {
		return 0, err
	}
	did, err := s.store.GetDID(iid, vid)
	if errors.Is(err, database.ErrNotFound) {
		return 0, database.OfferNotFound(item, vendor)
	}
	return did, err
}

// SearchVendors lists vendors whose name contains text, ignoring case.
func (s *CatalogService) SearchVendors(text string) ([]models.VendorRow, error) {
	return s.store.ListVendors(strings.TrimSpace(text))
}

// SearchDishes lists dishes whose item name contains text, ignoring case.
func (s *CatalogService) SearchDishes(text string) ([]models.DishRow, error) {
	return s.store.ListDishesByName(strings.TrimSpace(text))
}

func (s *CatalogService) ListDishesForVendor(vid uint) ([]models.DishRow, error) {
	ok, err := s.store.VendorIDExists(vid)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, &database.NotFoundError{Entity: "vendor", Key: idString(vid)}
	}
	return s.store.ListDishesByVendor(vid)
}

func (s *CatalogService) AddVendor(name, address string) (uint, error) {
	return s.store.AddVendor(name, address)
}

func (s *CatalogService) AddItem(name string, calories int) (uint, error) {
	return s.store.AddItem(name, calories)
}

// AddDish makes vendor offer item at price. The vendor must exist; the item
// joins the shared vocabulary if it is new.
func (s *CatalogService) AddDish(item, vendor string, price float64) (uint, error) {
	var did uint
	err := s.store.Transaction(func(tx *database.Store) error {
		vid, err := tx.GetVID(vendor)
		if err != nil {
			return err
		}
		iid, err := tx.AddItem(item, 0)
		if err != nil {
			return err
		}
		did, err = tx.AddDish(iid, vid, price)
		return err
	})
	return did, err
}

// MenuEntry is one dish of a vendor menu.
type MenuEntry struct {
	Item  string
	Price float64
}

// VendorMenu describes a new vendor, its first admin and its dishes.
type VendorMenu struct {
	Name          string
	Address       string
	AdminUsername string
	AdminPassword string
	Dishes        []MenuEntry
}

// AddVendorWithMenu registers a vendor, its admin and every dish of its menu
// in one transaction: either all of it is stored or none of it.
func (s *CatalogService) AddVendorWithMenu(menu VendorMenu) (uint, error) {
	var vid uint
	err := s.store.Transaction(func(tx *database.Store) error {
		var err error
		if vid, err = tx.AddVendor(menu.Name, menu.Address); err != nil {
			return err
		}
		if _, err = tx.AddAdmin(menu.AdminUsername, menu.AdminPassword, vid); err != nil {
			return err
		}
		for _, d := range menu.Dishes {
			iid, err := tx.AddItem(d.Item, 0)
			if err != nil {
				return err
			}
			if _, err := tx.AddDish(iid, vid, d.Price); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return vid, nil
}
