package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/yeremiapane/resteasy/models"
	"github.com/yeremiapane/resteasy/services"
)

// AdminAPI is the part of the API the admin app uses.
type AdminAPI interface {
	LoginAdmin(ctx context.Context, username, password string) (models.AdminLogin, error)
	ListOrdersByVendor(ctx context.Context, vid uint) ([]models.VendorOrderRow, error)
}

// Admin is the state of one admin app run.
type Admin struct {
	api AdminAPI
	s   *Session

	username string
	login    models.AdminLogin
}

func NewAdmin(api AdminAPI, s *Session) *Admin {
	return &Admin{api: api, s: s}
}

func (a *Admin) Run() error {
	return Loop(a.s, a.header, a.menu)
}

func (a *Admin) LoggedIn() bool { return a.login.AdminID != 0 }

func (a *Admin) header() {
	a.s.Clear()
	name := a.username
	if name == "" {
		name = "Guest"
	}
	a.s.Printf("\n>>> RestEasy Admin | %s\n", name)
}

func (a *Admin) menu() []Action {
	if !a.LoggedIn() {
		return []Action{
			{"Login", a.Login},
			{"Quit", quit},
		}
	}
	return []Action{
		{"View all of your orders.", a.ViewAllOrders},
		{"View your orders on a specific date.", a.ViewOrdersOnDate},
		{"Logout.", a.Logout},
		{"Quit", quit},
	}
}

func (a *Admin) Login() error {
	a.header()
	a.s.Println("\nEnter your credentials to login.")
	username, err := a.s.Input("username: ")
	if err != nil {
		return err
	}
	if username == "" {
		a.s.Println("*** Error: Username cannot be blank/empty.")
		return a.s.Pause("\nPress <Enter> to return to main menu: ")
	}
	password, err := a.s.Password("password: ")
	if err != nil {
		return err
	}

	login, err := a.api.LoginAdmin(a.s.Ctx, username, password)
	if err != nil {
		a.s.Println("Login failed.")
	} else {
		a.username, a.login = username, login
		a.s.Printf("Welcome, %s!\n", username)
	}
	return a.s.Pause("\nPress <Enter> to return to main menu: ")
}

func (a *Admin) Logout() error {
	a.username, a.login = "", models.AdminLogin{}
	return nil
}

func (a *Admin) ViewAllOrders() error {
	return a.showOrders(func(services.VendorOrder) bool { return true })
}

// ViewOrdersOnDate asks for a YYYY-MM-DD day (local time) and shows the
// orders placed on it.
func (a *Admin) ViewOrdersOnDate() error {
	a.s.Println("\nEnter the date as YYYY-MM-DD.")
	a.s.Println("Or just press <Enter> for today.")
	answer, err := a.s.Input("Date: ")
	if err != nil {
		return err
	}

	day := a.s.Now()
	if answer = strings.TrimSpace(answer); answer != "" {
		day, err = time.ParseInLocation("2006-01-02", answer, time.Local)
		if err != nil {
			a.s.Println("Sorry, that is not a valid date.")
			return a.s.Pause("\nPress <Enter> to return to main menu: ")
		}
	}
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.Local)
	end := start.AddDate(0, 0, 1)

	return a.showOrders(func(o services.VendorOrder) bool {
		t := time.Unix(o.Timestamp, 0)
		return !t.Before(start) && t.Before(end)
	})
}

func (a *Admin) showOrders(keep func(services.VendorOrder) bool) error {
	rows, err := a.api.ListOrdersByVendor(a.s.Ctx, a.login.VendorID)
	if err != nil {
		a.s.Println("Failed to fetch orders.")
		return a.s.Pause("\nPress <Enter> to return to main menu: ")
	}

	shown := 0
	for _, o := range services.GroupVendorOrders(rows) {
		if !keep(o) {
			continue
		}
		shown++
		a.s.Printf("\n%5d. Order placed on %s by %s\n", shown, placedAt(o.Timestamp), o.Customer)
		rule := a.s.table(fmt.Sprintf("%5s  %-25s%-3s", "#", "Item", "Qty"))
		for i, l := range o.Lines {
			a.s.Printf("%5d. %-25s%3d\n", i+1, l.Item, l.Quantity)
		}
		a.s.Println(rule)
	}
	if shown == 0 {
		a.s.Println("\nNo orders have been placed against your restaurant.")
	}
	return a.s.Pause("\nPress <Enter> to return to main menu: ")
}
