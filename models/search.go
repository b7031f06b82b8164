package models

import "golang.org/x/text/cases"

// SearchKey folds s for case-insensitive substring matching. Names and
// queries must both pass through it before they are compared.
func SearchKey(s string) string {
	return cases.Fold().String(s)
}
