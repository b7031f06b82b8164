package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/resteasy/services"
	"github.com/yeremiapane/resteasy/utils"
)

type OrderController struct {
	Orders *services.OrderService
}

func NewOrderController(orders *services.OrderService) *OrderController {
	return &OrderController{Orders: orders}
}

// AddOrder -> buat order kosong, kembalikan order id
func (oc *OrderController) AddOrder(c *gin.Context) {
	params, err := utils.QueryParams(c, "uid", "timestamp")
	if err != nil {
		respondErr(c, err)
		return
	}
	uid, err := utils.ParseID("uid", params[0])
	if err != nil {
		respondErr(c, err)
		return
	}
	ts, err := utils.ParseInt("timestamp", params[1])
	if err != nil {
		respondErr(c, err)
		return
	}
	oid, err := oc.Orders.AddOrder(uid, ts)
	if err != nil {
		respondErr(c, err)
		return
	}
	utils.RespondValue(c, http.StatusOK, oid)
}

var errOrderDish = errors.New("failed to order dish")

// AddOrderDish attaches one line to an existing order. Store failures are
// reported as a server error.
func (oc *OrderController) AddOrderDish(c *gin.Context) {
	params, err := utils.QueryParams(c, "oid", "did", "quantity")
	if err != nil {
		respondErr(c, err)
		return
	}
	oid, err := utils.ParseID("oid", params[0])
	if err != nil {
		respondErr(c, err)
		return
	}
	did, err := utils.ParseID("did", params[1])
	if err != nil {
		respondErr(c, err)
		return
	}
	qty, err := strconv.Atoi(params[2])
	if err != nil {
		respondErr(c, &utils.ParamError{Message: "invalid quantity '" + params[2] + "'"})
		return
	}
	if err := oc.Orders.AddOrderLine(oid, did, qty); err != nil {
		utils.ErrorLogger.Printf("add-order-dish oid=%d did=%d: %v", oid, did, err)
		utils.RespondError(c, http.StatusInternalServerError, fmt.Errorf("%w: %v", errOrderDish, err))
		return
	}
	utils.RespondValue(c, http.StatusOK, ok)
}

// parseLines reads "did:qty,did:qty" into line requests.
func parseLines(value string) ([]services.LineRequest, error) {
	var lines []services.LineRequest
	for _, part := range strings.Split(value, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		didStr, qtyStr, found := strings.Cut(part, ":")
		if !found {
			return nil, &utils.ParamError{Message: fmt.Sprintf("invalid line '%s', want dish:quantity", part)}
		}
		did, err := utils.ParseID("dish", didStr)
		if err != nil {
			return nil, err
		}
		qty, err := strconv.Atoi(strings.TrimSpace(qtyStr))
		if err != nil {
			return nil, &utils.ParamError{Message: fmt.Sprintf("invalid quantity in line '%s'", part)}
		}
		lines = append(lines, services.LineRequest{DishID: did, Quantity: qty})
	}
	return lines, nil
}

// PlaceOrder creates an order and all of its lines atomically.
func (oc *OrderController) PlaceOrder(c *gin.Context) {
	params, err := utils.QueryParams(c, "uid", "timestamp", "lines")
	if err != nil {
		respondErr(c, err)
		return
	}
	uid, err := utils.ParseID("uid", params[0])
	if err != nil {
		respondErr(c, err)
		return
	}
	ts, err := utils.ParseInt("timestamp", params[1])
	if err != nil {
		respondErr(c, err)
		return
	}
	lines, err := parseLines(params[2])
	if err != nil {
		respondErr(c, err)
		return
	}
	oid, err := oc.Orders.PlaceOrder(uid, ts, lines)
	if err != nil {
		respondErr(c, err)
		return
	}
	utils.InfoLogger.Printf("Order placed: id=%d user=%d lines=%d", oid, uid, len(lines))
	utils.RespondValue(c, http.StatusOK, oid)
}

func (oc *OrderController) CancelOrderDish(c *gin.Context) {
	params, err := utils.QueryParams(c, "oid", "did", "timestamp")
	if err != nil {
		respondErr(c, err)
		return
	}
	oid, err := utils.ParseID("oid", params[0])
	if err != nil {
		respondErr(c, err)
		return
	}
	did, err := utils.ParseID("did", params[1])
	if err != nil {
		respondErr(c, err)
		return
	}
	ts, err := utils.ParseInt("timestamp", params[2])
	if err != nil {
		respondErr(c, err)
		return
	}
	if err := oc.Orders.CancelLine(oid, did, ts); err != nil {
		respondErr(c, err)
		return
	}
	utils.RespondValue(c, http.StatusOK, ok)
}

func (oc *OrderController) DelOrder(c *gin.Context) {
	params, err := utils.QueryParams(c, "oid")
	if err != nil {
		respondErr(c, err)
		return
	}
	oid, err := utils.ParseID("oid", params[0])
	if err != nil {
		respondErr(c, err)
		return
	}
	if err := oc.Orders.DeleteOrder(oid); err != nil {
		respondErr(c, err)
		return
	}
	utils.RespondValue(c, http.StatusOK, ok)
}

// ListByUser -> baris order milik user
func (oc *OrderController) ListByUser(c *gin.Context) {
	params, err := utils.QueryParams(c, "uid")
	if err != nil {
		respondErr(c, err)
		return
	}
	uid, err := utils.ParseID("uid", params[0])
	if err != nil {
		respondErr(c, err)
		return
	}
	rows, err := oc.Orders.ListForUser(uid)
	if err != nil {
		respondErr(c, err)
		return
	}
	utils.RespondValue(c, http.StatusOK, rows)
}

// ListByVendor -> baris order untuk dish milik vendor
func (oc *OrderController) ListByVendor(c *gin.Context) {
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
	rows, err := oc.Orders.ListForVendor(vid)
	if err != nil {
		respondErr(c, err)
		return
	}
	utils.RespondValue(c, http.StatusOK, rows)
}
