package controllers_test

import (
	"net/http"
	"net/url"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/yeremiapane/resteasy/models"
)

func TestUserEndpoints(t *testing.T) {
	r, _ := setupAPI(t)

	var status string
	call(t, r, "add-user", url.Values{
		"username": {"alice"}, "password": {"secret"}, "fullname": {"Alice A"}, "phone": {"555"},
	}, &status)
	assert.Equal(t, "OK", status)

	w := get(r, "add-user", url.Values{
		"username": {"alice"}, "password": {"x"}, "fullname": {"Other"}, "phone": {"1"},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "user 'alice' already exists", errorMessage(t, w))

	var exists bool
	call(t, r, "user-exists", url.Values{"username": {"alice"}}, &exists)
	assert.True(t, exists)
	call(t, r, "user-exists", url.Values{"username": {"bob"}}, &exists)
	assert.False(t, exists)

	var uid uint
	call(t, r, "get-uid", url.Values{"username": {"alice"}}, &uid)
	assert.NotZero(t, uid)

	w = get(r, "get-uid", url.Values{"username": {"bob"}})
	assert.Equal(t, http.StatusNotFound, w.Code)

	var loginUID uint
	call(t, r, "login-user", url.Values{"username": {"alice"}, "password": {"secret"}}, &loginUID)
	assert.Equal(t, uid, loginUID)

	var data models.UserData
	call(t, r, "user-data", url.Values{"uid": {strconv.Itoa(int(uid))}}, &data)
	assert.Equal(t, models.UserData{Username: "alice", Fullname: "Alice A", Phone: "555"}, data)

	w = get(r, "user-data", url.Values{"uid": {"999"}})
	assert.Equal(t, http.StatusNotFound, w.Code)

	call(t, r, "del-user", url.Values{"username": {"alice"}}, &status)
	w = get(r, "del-user", url.Values{"username": {"alice"}})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestLoginFailuresLookAlike(t *testing.T) {
	r, _ := setupAPI(t)
	call(t, r, "add-user", url.Values{
		"username": {"alice"}, "password": {"secret"}, "fullname": {"Alice"}, "phone": {"1"},
	}, nil)

	wrongPassword := get(r, "login-user", url.Values{"username": {"alice"}, "password": {"nope"}})
	unknownUser := get(r, "login-user", url.Values{"username": {"mallory"}, "password": {"secret"}})

	assert.Equal(t, http.StatusUnauthorized, wrongPassword.Code)
	assert.Equal(t, wrongPassword.Code, unknownUser.Code)
	assert.Equal(t, wrongPassword.Body.String(), unknownUser.Body.String())
	assert.Equal(t, "incorrect username and/or password", errorMessage(t, wrongPassword))
}

func TestQueryParamValidation(t *testing.T) {
	r, _ := setupAPI(t)

	tests := []struct {
		name     string
		endpoint string
		query    string
		message  string
	}{
		{"missing", "get-uid", "", "missing parameter 'username'"},
		{"unexpected", "get-uid", "username=a&extra=1", "unexpected parameter 'extra'"},
		{"repeated", "get-uid", "username=a&username=b", "parameter 'username' given more than once"},
		{"no params allowed", "list-vendors", "name=x", "unexpected parameter 'name'"},
		{"bad id", "user-data", "uid=abc", "invalid uid 'abc'"},
		{"zero id", "list-order-by-uid", "uid=0", "invalid uid '0'"},
		{"bad price", "add-dish", "item=a&vendor=b&price=NaN", "invalid price 'NaN'"},
		{"bad lines", "place-order", "uid=1&timestamp=1&lines=7", "invalid line '7', want dish:quantity"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := get(r, tt.endpoint+"?"+tt.query, nil)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, tt.message, errorMessage(t, w))
		})
	}
}

func TestPing(t *testing.T) {
	r, _ := setupAPI(t)
	var pong string
	call(t, r, "ping", nil, &pong)
	assert.Equal(t, "OK", pong)
}
