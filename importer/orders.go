package importer

import (
	"fmt"
	"io"
	"strconv"

	"github.com/yeremiapane/resteasy/database"
	"github.com/yeremiapane/resteasy/services"
	"github.com/yeremiapane/resteasy/utils"
)

// ImportOrders places every "item,vendor,quantity" row of r as one order for
// username, stamped with the import time. Every row is resolved before
// anything is written, so an unknown item, vendor or offer leaves the store
// untouched.
func (im *Importer) ImportOrders(r io.Reader, username string) (uint, error) {
	uid, err := im.Accounts.GetUID(username)
	if err != nil {
		return 0, fmt.Errorf("invalid user: %w", err)
	}

	records, err := readRecords(r, ',')
	if err != nil {
		return 0, err
	}
	if len(records) == 0 {
		return 0, &database.ValidationError{Field: "input", Message: "contains no order lines"}
	}

	lines := make([]services.LineRequest, 0, len(records))
	for _, rec := range records {
		if err := rec.expect(3); err != nil {
			return 0, err
		}
		item, vendor := rec.fields[0], rec.fields[1]
		qty, err := strconv.Atoi(rec.fields[2])
		if err != nil || qty < 1 || qty > im.MaxQuantity {
			return 0, &LineError{Line: rec.line, Err: &database.ValidationError{
				Field:   "quantity",
				Message: fmt.Sprintf("must be an integer between 1 and %d, got %q", im.MaxQuantity, rec.fields[2]),
			}}
		}
		did, err := im.Catalog.ResolveDish(item, vendor)
		if err != nil {
			return 0, &LineError{Line: rec.line, Err: err}
		}
		lines = append(lines, services.LineRequest{DishID: did, Quantity: qty})
	}

	oid, err := im.Orders.PlaceOrder(uid, im.Now().Unix(), lines)
	if err != nil {
		return 0, err
	}
	utils.InfoLogger.Printf("Order %d placed for %q with %d lines", oid, username, len(lines))
	return oid, nil
}
