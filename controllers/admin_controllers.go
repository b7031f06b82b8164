package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/resteasy/services"
	"github.com/yeremiapane/resteasy/utils"
)

type AdminController struct {
	Accounts *services.AccountService
}

func NewAdminController(accounts *services.AccountService) *AdminController {
	return &AdminController{Accounts: accounts}
}

func (ac *AdminController) AddAdmin(c *gin.Context) {
	params, err := utils.QueryParams(c, "username", "password", "vid")
	if err != nil {
		respondErr(c, err)
		return
	}
	vid, err := utils.ParseID("vid", params[2])
	if err != nil {
		respondErr(c, err)
		return
	}
	if _, err := ac.Accounts.AddAdmin(params[0], params[1], vid); err != nil {
		respondErr(c, err)
		return
	}
	utils.InfoLogger.Printf("New admin registered: %s (vendor=%d)", params[0], vid)
	utils.RespondValue(c, http.StatusOK, ok)
}

func (ac *AdminController) DelAdmin(c *gin.Context) {
	params, err := utils.QueryParams(c, "username")
	if err != nil {
		respondErr(c, err)
		return
	}
	if err := ac.Accounts.DeleteAdmin(params[0]); err != nil {
		respondErr(c, err)
		return
	}
	utils.RespondValue(c, http.StatusOK, ok)
}

// Login -> (admin id, vendor id)
func (ac *AdminController) Login(c *gin.Context) {
	params, err := utils.QueryParams(c, "username", "password")
	if err != nil {
		respondErr(c, err)
		return
	}
	login, err := ac.Accounts.LoginAdmin(params[0], params[1])
	if err != nil {
		respondLoginErr(c, err)
		return
	}
	utils.RespondValue(c, http.StatusOK, login)
}
