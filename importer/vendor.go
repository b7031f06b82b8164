package importer

import (
	"io"

	"github.com/yeremiapane/resteasy/database"
	"github.com/yeremiapane/resteasy/services"
	"github.com/yeremiapane/resteasy/utils"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// ParseVendor reads a vendor file: a "name;address;admin-username;admin-password"
// line followed by "item;price" lines. Names, address and items are
// title-cased; credentials are kept as typed.
func ParseVendor(r io.Reader) (services.VendorMenu, error) {
	var menu services.VendorMenu
	records, err := readRecords(r, ';')
	if err != nil {
		return menu, err
	}
	if len(records) == 0 {
		return menu, &database.ValidationError{Field: "input", Message: "missing vendor line"}
	}

	title := cases.Title(language.English)
	head := records[0]
	if err := head.expect(4); err != nil {
		return menu, err
	}
	menu.Name = title.String(head.fields[0])
	menu.Address = title.String(head.fields[1])
	menu.AdminUsername = head.fields[2]
	menu.AdminPassword = head.fields[3]

	for _, rec := range records[1:] {
		if err := rec.expect(2); err != nil {
			return menu, err
		}
		price, err := utils.ParseFloat("price", rec.fields[1])
		if err != nil {
			return menu, &LineError{Line: rec.line, Err: err}
		}
		menu.Dishes = append(menu.Dishes, services.MenuEntry{Item: title.String(rec.fields[0]), Price: price})
	}
	return menu, nil
}

// ImportVendor stores the vendor of r with its admin and menu, all or
// nothing.
func (im *Importer) ImportVendor(r io.Reader) (uint, error) {
	menu, err := ParseVendor(r)
	if err != nil {
		return 0, err
	}
	vid, err := im.Catalog.AddVendorWithMenu(menu)
	if err != nil {
		return 0, err
	}
	utils.InfoLogger.Printf("Vendor %q added with id %d and %d dishes", menu.Name, vid, len(menu.Dishes))
	return vid, nil
}
