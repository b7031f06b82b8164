package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/resteasy/services"
	"github.com/yeremiapane/resteasy/utils"
)

type UserController struct {
	Accounts *services.AccountService
}

func NewUserController(accounts *services.AccountService) *UserController {
	return &UserController{Accounts: accounts}
}

// GetUID -> id user berdasarkan username
func (uc *UserController) GetUID(c *gin.Context) {
	params, err := utils.QueryParams(c, "username")
	if err != nil {
		respondErr(c, err)
		return
	}
	uid, err := uc.Accounts.GetUID(params[0])
	if err != nil {
		respondErr(c, err)
		return
	}
	utils.RespondValue(c, http.StatusOK, uid)
}

func (uc *UserController) UserExists(c *gin.Context) {
	params, err := utils.QueryParams(c, "username")
	if err != nil {
		respondErr(c, err)
		return
	}
	exists, err := uc.Accounts.UserExists(params[0])
	if err != nil {
		respondErr(c, err)
		return
	}
	utils.RespondValue(c, http.StatusOK, exists)
}

// AddUser registers a new user.
func (uc *UserController) AddUser(c *gin.Context) {
	params, err := utils.QueryParams(c, "username", "password", "fullname", "phone")
	if err != nil {
		respondErr(c, err)
		return
	}
	uid, err := uc.Accounts.AddUser(params[0], params[1], params[2], params[3])
	if err != nil {
		respondErr(c, err)
		return
	}
	utils.InfoLogger.Printf("New user registered: %s (id=%d)", params[0], uid)
	utils.RespondValue(c, http.StatusOK, ok)
}

func (uc *UserController) DelUser(c *gin.Context) {
	params, err := utils.QueryParams(c, "username")
	if err != nil {
		respondErr(c, err)
		return
	}
	if err := uc.Accounts.DeleteUser(params[0]); err != nil {
		respondErr(c, err)
		return
	}
	utils.InfoLogger.Printf("User deleted: %s", params[0])
	utils.RespondValue(c, http.StatusOK, ok)
}

// Login returns the user id. Wrong username and wrong password look the same.
func (uc *UserController) Login(c *gin.Context) {
	params, err := utils.QueryParams(c, "username", "password")
	if err != nil {
		respondErr(c, err)
		return
	}
	uid, err := uc.Accounts.LoginUser(params[0], params[1])
	if err != nil {
		respondLoginErr(c, err)
		return
	}
	utils.RespondValue(c, http.StatusOK, uid)
}

// UserData -> (username, fullname, phone)
func (uc *UserController) UserData(c *gin.Context) {
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
	data, err := uc.Accounts.UserData(uid)
	if err != nil {
		respondErr(c, err)
		return
	}
	utils.RespondValue(c, http.StatusOK, data)
}
