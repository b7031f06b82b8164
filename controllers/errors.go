package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/resteasy/database"
	"github.com/yeremiapane/resteasy/utils"
)

var errInternal = errors.New("internal server error")

// statusFor maps store and request errors to HTTP status codes.
func statusFor(err error) int {
	var paramErr *utils.ParamError
	switch {
	case errors.As(err, &paramErr), errors.Is(err, database.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, database.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, database.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, database.ErrAlreadyExists), errors.Is(err, database.ErrReferential):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// respondErr writes err with its mapped status. Unclassified errors are
// logged and reported without their details.
func respondErr(c *gin.Context, err error) {
	code := statusFor(err)
	if code == http.StatusInternalServerError {
		utils.ErrorLogger.Printf("%s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		err = errInternal
	}
	utils.RespondError(c, code, err)
}

// respondLoginErr hides every credential failure behind one 401 response.
func respondLoginErr(c *gin.Context, err error) {
	if errors.Is(err, database.ErrInvalidCredentials) {
		utils.RespondError(c, http.StatusUnauthorized, database.ErrInvalidCredentials)
		return
	}
	respondErr(c, err)
}

const ok = "OK"
