package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yeremiapane/resteasy/config"
	"github.com/yeremiapane/resteasy/importer"
	"github.com/yeremiapane/resteasy/internal/testdb"
	"github.com/yeremiapane/resteasy/models"
	"github.com/yeremiapane/resteasy/router"
	"github.com/yeremiapane/resteasy/services"
	"github.com/yeremiapane/resteasy/utils"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	utils.InitLogger()
	os.Exit(m.Run())
}

// TestEndToEndIntegration menguji flow utama:
// 0. Import vendor + menu dan user dari file batch
// 1. Customer login, cari dish, place order
// 2. Customer melihat order miliknya
// 3. Admin vendor login dan melihat order masuk
// 4. Cancel satu baris, lalu hapus order
func TestEndToEndIntegration(t *testing.T) {
	store := testdb.Store(t)
	im := importer.New(store, 9)
	im.Now = func() time.Time { return time.Unix(1700000000, 0) }

	_, err := im.ImportVendor(strings.NewReader("pizza place;1 main st;pp-admin;pw\nmargherita;12.50\ngarlic bread;4\n"))
	require.NoError(t, err)
	_, err = im.ImportVendor(strings.NewReader("curry house;2 side st;ch-admin;pw\nchicken curry;11.25\nmargherita;10\n"))
	require.NoError(t, err)
	stats, err := im.ImportUsers(strings.NewReader("alice,secret,Alice A,555-0100\n"), importer.ActionAdd)
	require.NoError(t, err)
	require.Equal(t, 1, stats.Done)

	r := router.SetupRouter(store, &config.Config{MaxQuantity: 9, LoginRatePerMinute: 100, RateLimitPerSecond: 100})

	var uid uint
	apiCall(t, r, "login-user", url.Values{"username": {"alice"}, "password": {"secret"}}, &uid)

	var dishes []models.DishRow
	apiCall(t, r, "list-dishes-by-name", url.Values{"name": {"margherita"}}, &dishes)
	require.Len(t, dishes, 2)
	assert.Equal(t, "Pizza Place", dishes[0].Vendor)
	assert.Equal(t, "Curry House", dishes[1].Vendor)

	var bread uint
	apiCall(t, r, "get-did", url.Values{"item": {"Garlic Bread"}, "vendor": {"Pizza Place"}}, &bread)

	var oid uint
	apiCall(t, r, "place-order", url.Values{
		"uid":       {fmt.Sprint(uid)},
		"timestamp": {"1700000100"},
		"lines":     {fmt.Sprintf("%d:2,%d:1,%d:1", dishes[0].ID, dishes[1].ID, bread)},
	}, &oid)

	// A second order comes in through the batch importer.
	_, err = im.ImportOrders(strings.NewReader("Chicken Curry,Curry House,3\n"), "alice")
	require.NoError(t, err)

	var rows []models.UserOrderRow
	apiCall(t, r, "list-order-by-uid", url.Values{"uid": {fmt.Sprint(uid)}}, &rows)
	orders := services.GroupUserOrders(rows)
	require.Len(t, orders, 2)
	assert.Equal(t, oid, orders[0].OrderID)
	assert.Equal(t, 39.0, orders[0].Total())
	assert.Equal(t, 33.75, orders[1].Total())

	var login models.AdminLogin
	apiCall(t, r, "login-admin", url.Values{"username": {"ch-admin"}, "password": {"pw"}}, &login)

	var vendorRows []models.VendorOrderRow
	apiCall(t, r, "list-order-by-vid", url.Values{"vid": {fmt.Sprint(login.VendorID)}}, &vendorRows)
	vendorOrders := services.GroupVendorOrders(vendorRows)
	require.Len(t, vendorOrders, 2)
	assert.Equal(t, "Alice A", vendorOrders[0].Customer)
	assert.Equal(t, "Margherita", vendorOrders[0].Lines[0].Item)
	assert.Equal(t, 3, vendorOrders[1].Lines[0].Quantity)

	apiCall(t, r, "cancel-order-dish", url.Values{
		"oid": {fmt.Sprint(oid)}, "did": {fmt.Sprint(dishes[1].ID)}, "timestamp": {"1700000200"},
	}, nil)
	apiCall(t, r, "list-order-by-vid", url.Values{"vid": {fmt.Sprint(login.VendorID)}}, &vendorRows)
	assert.Len(t, vendorRows, 1)

	apiCall(t, r, "del-order", url.Values{"oid": {fmt.Sprint(oid)}}, nil)
	apiCall(t, r, "list-order-by-uid", url.Values{"uid": {fmt.Sprint(uid)}}, &rows)
	assert.Len(t, rows, 1)
}

func apiCall(t *testing.T, r *gin.Engine, endpoint string, params url.Values, out any) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/"+endpoint+"?"+params.Encode(), nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code, "%s: %s", endpoint, w.Body.String())
	if out != nil {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), out))
	}
}
