package controllers_test

import (
	"net/http"
	"net/url"
	"strconv"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yeremiapane/resteasy/models"
)

func addVendor(t *testing.T, r *gin.Engine, name, address string) uint {
	t.Helper()
	var vid uint
	call(t, r, "add-vendor", url.Values{"name": {name}, "address": {address}}, &vid)
	return vid
}

func addDish(t *testing.T, r *gin.Engine, item, vendor, price string) uint {
	t.Helper()
	var did uint
	call(t, r, "add-dish", url.Values{"item": {item}, "vendor": {vendor}, "price": {price}}, &did)
	return did
}

func TestMenuEndpoints(t *testing.T) {
	r, _ := setupAPI(t)

	pizza := addVendor(t, r, "Pizza Place", "1 Main St")
	curry := addVendor(t, r, "Curry House", "2 Side St")

	w := get(r, "add-vendor", url.Values{"name": {"Pizza Place"}, "address": {"elsewhere"}})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var vid uint
	call(t, r, "get-vid", url.Values{"name": {"Curry House"}}, &vid)
	assert.Equal(t, curry, vid)

	var first, again uint
	call(t, r, "add-item", url.Values{"name": {"Margherita"}, "calories": {"800"}}, &first)
	call(t, r, "add-item", url.Values{"name": {"Margherita"}, "calories": {"1"}}, &again)
	assert.Equal(t, first, again)

	did := addDish(t, r, "Margherita", "Pizza Place", "12.50")
	addDish(t, r, "Chicken Curry", "Curry House", "11.25")

	w = get(r, "add-dish", url.Values{"item": {"Margherita"}, "vendor": {"Pizza Place"}, "price": {"9"}})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	w = get(r, "add-dish", url.Values{"item": {"Margherita"}, "vendor": {"Nowhere"}, "price": {"9"}})
	assert.Equal(t, http.StatusNotFound, w.Code)

	var vendors []models.VendorRow
	call(t, r, "list-vendors", nil, &vendors)
	assert.Equal(t, []models.VendorRow{
		{ID: pizza, Name: "Pizza Place", Address: "1 Main St"},
		{ID: curry, Name: "Curry House", Address: "2 Side St"},
	}, vendors)

	call(t, r, "list-vendors-by-name", url.Values{"name": {"curry"}}, &vendors)
	require.Len(t, vendors, 1)
	assert.Equal(t, curry, vendors[0].ID)

	var dishes []models.DishRow
	call(t, r, "list-dishes-by-vendor", url.Values{"vid": {strconv.Itoa(int(pizza))}}, &dishes)
	assert.Equal(t, []models.DishRow{{ID: did, Item: "Margherita", Vendor: "Pizza Place", Price: 12.5}}, dishes)

	w = get(r, "list-dishes-by-vendor", url.Values{"vid": {"999"}})
	assert.Equal(t, http.StatusNotFound, w.Code)

	// A known vendor with nothing on the menu is not a miss.
	empty := addVendor(t, r, "Empty Kitchen", "3 Back St")
	w = get(r, "list-dishes-by-vendor", url.Values{"vid": {strconv.Itoa(int(empty))}})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "[]", w.Body.String())

	call(t, r, "list-dishes-by-name", url.Values{"name": {"CURRY"}}, &dishes)
	require.Len(t, dishes, 1)
	assert.Equal(t, "Curry House", dishes[0].Vendor)

	// Empty results are JSON arrays, never null.
	w = get(r, "list-dishes-by-name", url.Values{"name": {"sushi"}})
	assert.Equal(t, "[]", w.Body.String())
}

func TestGetDIDMessages(t *testing.T) {
	r, _ := setupAPI(t)
	addVendor(t, r, "Pizza Place", "1 Main St")
	addVendor(t, r, "Curry House", "2 Side St")
	did := addDish(t, r, "Margherita", "Pizza Place", "12.5")
	addDish(t, r, "Chicken Curry", "Curry House", "11")

	var got uint
	call(t, r, "get-did", url.Values{"item": {"Margherita"}, "vendor": {"Pizza Place"}}, &got)
	assert.Equal(t, did, got)

	tests := []struct {
		item, vendor, message string
	}{
		{"Sushi", "Pizza Place", "could not find item 'Sushi'"},
		{"Margherita", "Sushi Bar", "could not find vendor 'Sushi Bar'"},
		{"Chicken Curry", "Pizza Place", "vendor 'Pizza Place' does not offer dish 'Chicken Curry'"},
	}
	for _, tt := range tests {
		w := get(r, "get-did", url.Values{"item": {tt.item}, "vendor": {tt.vendor}})
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, tt.message, errorMessage(t, w))
	}
}

func TestAdminEndpoints(t *testing.T) {
	r, _ := setupAPI(t)
	vid := addVendor(t, r, "Pizza Place", "1 Main St")

	w := get(r, "add-admin", url.Values{"username": {"boss"}, "password": {"pw"}, "vid": {"999"}})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	call(t, r, "add-admin", url.Values{"username": {"boss"}, "password": {"pw"}, "vid": {strconv.Itoa(int(vid))}}, nil)

	var login models.AdminLogin
	call(t, r, "login-admin", url.Values{"username": {"boss"}, "password": {"pw"}}, &login)
	assert.Equal(t, vid, login.VendorID)
	assert.NotZero(t, login.AdminID)

	w = get(r, "login-admin", url.Values{"username": {"boss"}, "password": {"bad"}})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	call(t, r, "del-admin", url.Values{"username": {"boss"}}, nil)
	w = get(r, "del-admin", url.Values{"username": {"boss"}})
	assert.Equal(t, http.StatusNotFound, w.Code)
}
