package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/yeremiapane/resteasy/utils"
)

// table prints a header framed by dashed rules and returns the closing rule.
func (s *Session) table(header string) string {
	rule := strings.Repeat("-", len(header))
	s.Println(rule)
	s.Println(header)
	s.Println(rule)
	return rule
}

// placedAt renders an order timestamp the way the order screens show it.
func placedAt(ts int64) string {
	t := time.Unix(ts, 0).Local()
	return fmt.Sprintf("%s at %s", t.Format("2006-01-02"), t.Format("15:04:05"))
}

func price(v float64) string {
	return utils.FormatPrice(v)
}
