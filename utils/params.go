package utils

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

// ParamError is a malformed, missing or unexpected query parameter.
type ParamError struct {
	Message string
}

func (e *ParamError) Error() string { return e.Message }

// QueryParams returns the values of the named query parameters, in order.
// Every name must be present and no other parameter may be.
func QueryParams(c *gin.Context, names ...string) ([]string, error) {
	query := c.Request.URL.Query()
	allowed := make(map[string]bool, len(names))
	for _, n := range names {
		allowed[n] = true
	}
	for arg := range query {
		if !allowed[arg] {
			return nil, &ParamError{Message: fmt.Sprintf("unexpected parameter '%s'", arg)}
		}
	}

	values := make([]string, 0, len(names))
	for _, n := range names {
		v, ok := query[n]
		if !ok || len(v) == 0 {
			return nil, &ParamError{Message: fmt.Sprintf("missing parameter '%s'", n)}
		}
		if len(v) > 1 {
			return nil, &ParamError{Message: fmt.Sprintf("parameter '%s' given more than once", n)}
		}
		values = append(values, v[0])
	}
	return values, nil
}

// ParseID parses a positive integer id parameter.
func ParseID(name, value string) (uint, error) {
	id, err := strconv.ParseUint(strings.TrimSpace(value), 10, 32)
	if err != nil || id == 0 {
		return 0, &ParamError{Message: fmt.Sprintf("invalid %s '%s'", name, value)}
	}
	return uint(id), nil
}

// ParseInt parses an integer parameter.
func ParseInt(name, value string) (int64, error) {
	n, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64)
	if err != nil {
		return 0, &ParamError{Message: fmt.Sprintf("invalid %s '%s'", name, value)}
	}
	return n, nil
}

// ParseFloat parses a decimal parameter such as a price.
func ParseFloat(name, value string) (float64, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, &ParamError{Message: fmt.Sprintf("invalid %s '%s'", name, value)}
	}
	return f, nil
}
