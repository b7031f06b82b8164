package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/resteasy/services"
	"github.com/yeremiapane/resteasy/utils"
)

// MenuController serves vendors, items and dishes.
type MenuController struct {
	Catalog *services.CatalogService
}

func NewMenuController(catalog *services.CatalogService) *MenuController {
	return &MenuController{Catalog: catalog}
}

// ListVendors -> semua vendor
func (mc *MenuController) ListVendors(c *gin.Context) {
	if _, err := utils.QueryParams(c); err != nil {
		respondErr(c, err)
		return
	}
	vendors, err := mc.Catalog.SearchVendors("")
	if err != nil {
		respondErr(c, err)
		return
	}
	utils.RespondValue(c, http.StatusOK, vendors)
}

func (mc *MenuController) ListVendorsByName(c *gin.Context) {
	params, err := utils.QueryParams(c, "name")
	if err != nil {
		respondErr(c, err)
		return
	}
	vendors, err := mc.Catalog.SearchVendors(params[0])
	if err != nil {
		respondErr(c, err)
		return
	}
	utils.RespondValue(c, http.StatusOK, vendors)
}

func (mc *MenuController) GetVID(c *gin.Context) {
	params, err := utils.QueryParams(c, "name")
	if err != nil {
		respondErr(c, err)
		return
	}
	vid, err := mc.Catalog.ResolveVendor(params[0])
	if err != nil {
		respondErr(c, err)
		return
	}
	utils.RespondValue(c, http.StatusOK, vid)
}

func (mc *MenuController) AddVendor(c *gin.Context) {
	params, err := utils.QueryParams(c, "name", "address")
	if err != nil {
		respondErr(c, err)
		return
	}
	vid, err := mc.Catalog.AddVendor(params[0], params[1])
	if err != nil {
		respondErr(c, err)
		return
	}
	utils.InfoLogger.Printf("New vendor registered: %s (id=%d)", params[0], vid)
	utils.RespondValue(c, http.StatusOK, vid)
}

// AddItem returns the item id, creating the item only if the name is new.
func (mc *MenuController) AddItem(c *gin.Context) {
	params, err := utils.QueryParams(c, "name", "calories")
	if err != nil {
		respondErr(c, err)
		return
	}
	calories, err := strconv.Atoi(params[1])
	if err != nil {
		respondErr(c, &utils.ParamError{Message: "invalid calories '" + params[1] + "'"})
		return
	}
	iid, err := mc.Catalog.AddItem(params[0], calories)
	if err != nil {
		respondErr(c, err)
		return
	}
	utils.RespondValue(c, http.StatusOK, iid)
}

func (mc *MenuController) AddDish(c *gin.Context) {
	params, err := utils.QueryParams(c, "item", "vendor", "price")
	if err != nil {
		respondErr(c, err)
		return
	}
	price, err := utils.ParseFloat("price", params[2])
	if err != nil {
		respondErr(c, err)
		return
	}
	did, err := mc.Catalog.AddDish(params[0], params[1], price)
	if err != nil {
		respondErr(c, err)
		return
	}
	utils.RespondValue(c, http.StatusOK, did)
}

// GetDID resolves (item, vendor) names to a dish id.
func (mc *MenuController) GetDID(c *gin.Context) {
	params, err := utils.QueryParams(c, "item", "vendor")
	if err != nil {
		respondErr(c, err)
		return
	}
	did, err := mc.Catalog.ResolveDish(params[0], params[1])
	if err != nil {
		respondErr(c, err)
		return
	}
	utils.RespondValue(c, http.StatusOK, did)
}

func (mc *MenuController) ListDishesByVendor(c *gin.Context) {
	params, err := utils.QueryParams(c, "vid")
	if err != nil {
		respondErr(c, err)
		return
	}
	vid, err := utils.ParseID("vid", params[0])
	if err != nil {
		respondErr(c, err)
		return
	}
	dishes, err := mc.Catalog.ListDishesForVendor(vid)
	if err != nil {
		respondErr(c, err)
		return
	}
	utils.RespondValue(c, http.StatusOK, dishes)
}

func (mc *MenuController) ListDishesByName(c *gin.Context) {
	params, err := utils.QueryParams(c, "name")
	if err != nil {
		respondErr(c, err)
		return
	}
	dishes, err := mc.Catalog.SearchDishes(params[0])
	if err != nil {
		respondErr(c, err)
		return
	}
	utils.RespondValue(c, http.StatusOK, dishes)
}
