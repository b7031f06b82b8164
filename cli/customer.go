package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/yeremiapane/resteasy/client"
	"github.com/yeremiapane/resteasy/models"
	"github.com/yeremiapane/resteasy/services"
)

// CustomerAPI is the part of the API the customer app uses.
type CustomerAPI interface {
	UserExists(ctx context.Context, username string) (bool, error)
	AddUser(ctx context.Context, username, password, fullname, phone string) error
	LoginUser(ctx context.Context, username, password string) (uint, error)
	UserData(ctx context.Context, uid uint) (models.UserData, error)
	SearchVendors(ctx context.Context, name string) ([]models.VendorRow, error)
	SearchDishes(ctx context.Context, name string) ([]models.DishRow, error)
	ListDishesByVendor(ctx context.Context, vid uint) ([]models.DishRow, error)
	PlaceOrder(ctx context.Context, uid uint, ts int64, lines []client.Line) (uint, error)
	ListOrdersByUser(ctx context.Context, uid uint) ([]models.UserOrderRow, error)
}

// CartLine is a dish picked by the customer with its portion count.
type CartLine struct {
	Dish     models.DishRow
	Quantity int
}

// Customer is the state of one customer app run.
type Customer struct {
	api CustomerAPI
	s   *Session

	uid  uint
	user models.UserData
	cart []CartLine
}

func NewCustomer(api CustomerAPI, s *Session) *Customer {
	return &Customer{api: api, s: s}
}

// Run drives the customer app until the user quits.
func (c *Customer) Run() error {
	return Loop(c.s, c.header, c.menu)
}

func (c *Customer) LoggedIn() bool { return c.uid != 0 }

func (c *Customer) Cart() []CartLine { return c.cart }

func (c *Customer) header() {
	c.s.Clear()
	name := c.user.Fullname
	if name == "" {
		name = "Guest"
	}
	c.s.Printf("\n>>> RestEasy | %s\n", name)
}

func (c *Customer) menu() []Action {
	if !c.LoggedIn() {
		return []Action{
			{"Signup [If you do not have login credentials.]", c.Signup},
			{"Login  [If you already signed up.]", c.Login},
			{"Quit", quit},
		}
	}
	return []Action{
		{"Search vendors by name.", c.SearchVendors},
		{"Search dishes by name.", c.SearchDishes},
		{"View cart.  (And optionally place the order.)", c.ViewCart},
		{"View orders placed by you.", c.ViewOrders},
		{"Logout.", c.Logout},
		{"Quit", quit},
	}
}

func (c *Customer) Login() error {
	c.header()
	c.s.Println("\nEnter your credentials to login.")
	username, err := c.s.Input("username: ")
	if err != nil {
		return err
	}
	if username == "" {
		c.s.Println("*** Error: Username cannot be blank/empty.")
		return c.s.Pause("\nPress <Enter> to return to main menu: ")
	}
	password, err := c.s.Password("password: ")
	if err != nil {
		return err
	}

	uid, err := c.api.LoginUser(c.s.Ctx, username, password)
	if err == nil {
		var data models.UserData
		if data, err = c.api.UserData(c.s.Ctx, uid); err == nil {
			c.uid, c.user, c.cart = uid, data, nil
			c.s.Printf("Welcome, %s!\n", data.Fullname)
		}
	}
	if err != nil {
		c.s.Println("Login failed.")
	}
	return c.s.Pause("\nPress <Enter> to return to main menu: ")
}

func (c *Customer) Logout() error {
	c.uid, c.user, c.cart = 0, models.UserData{}, nil
	return nil
}

// Signup collects a new account step by step. An empty answer at any step
// returns to the main menu.
func (c *Customer) Signup() error {
	c.header()
	c.s.Println("\nSign up for a new account.")

	var username string
	for {
		c.s.Println("\nEnter the username for your account.")
		c.s.Println("Or just press <Enter> to return to the main menu.")
		var err error
		if username, err = c.s.Input("username: "); err != nil || username == "" {
			return err
		}
		taken, err := c.api.UserExists(c.s.Ctx, username)
		if err != nil {
			c.s.Printf("Could not check that username: %v\n", err)
			return c.s.Pause("\nPress <Enter> to return to main menu: ")
		}
		if !taken {
			break
		}
		c.s.Println("Sorry, that username is already taken.  Try again.")
	}

	var password string
	for {
		c.s.Println("\nEnter the password.")
		c.s.Println("Or just press <Enter> to return to the main menu.")
		var err error
		if password, err = c.s.Password("password: "); err != nil || password == "" {
			return err
		}
		confirm, err := c.s.Password("confirm password: ")
		if err != nil {
			return err
		}
		if confirm == password {
			break
		}
		c.s.Println("Passwords do not match; please try again.")
	}

	c.s.Println("\nEnter your full name.")
	c.s.Println("Or just press <Enter> to return to the main menu.")
	fullname, err := c.s.Input("fullname: ")
	if err != nil || fullname == "" {
		return err
	}

	c.s.Println("\nEnter your phone number.")
	c.s.Println("Or just press <Enter> to return to the main menu.")
	phone, err := c.s.Input("phone number: ")
	if err != nil || phone == "" {
		return err
	}

	if err := c.api.AddUser(c.s.Ctx, username, password, fullname, phone); err != nil {
		c.s.Printf("Signup failed: %v\n", err)
	} else {
		c.s.Println("Signup successful!")
	}
	return c.s.Pause("\nPress <Enter> to return to main menu: ")
}

func (c *Customer) SearchVendors() error {
	c.header()
	c.s.Println("\nEnter full/partial name of vendor(s).")
	c.s.Println("Or just press <Enter> to return to main menu.")
	name, err := c.s.Input("Vendor name: ")
	if err != nil || strings.TrimSpace(name) == "" {
		return err
	}

	vendors, err := c.api.SearchVendors(c.s.Ctx, name)
	if err != nil {
		c.s.Printf("\nSearch failed: %v\n", err)
		return c.s.Pause("Press <Enter> to return to main menu: ")
	}
	if len(vendors) == 0 {
		c.s.Println("\nNo matching vendors found.")
		return c.s.Pause("Press <Enter> to return to main menu: ")
	}

	c.s.Printf("\nMatching vendors:\n\n")
	rule := c.s.table(fmt.Sprintf("%5s  %-25s%-30s", "#", "Name", "Address"))
	for i, v := range vendors {
		c.s.Printf("%5d. %-25s%-30s\n", i+1, v.Name, v.Address)
	}
	c.s.Println(rule)

	c.s.Println("\nSelect a vendor to list its dishes.")
	c.s.Println("Or just press <Enter> to return to previous menu.")
	n, err := c.s.ReadChoice(len(vendors), "Vendor to list: ", 0)
	if err != nil || n == 0 {
		return err
	}
	return c.vendorDishes(vendors[n-1])
}

func (c *Customer) vendorDishes(v models.VendorRow) error {
	c.header()
	dishes, err := c.api.ListDishesByVendor(c.s.Ctx, v.ID)
	if err != nil {
		c.s.Printf("\nCould not list dishes: %v\n", err)
		return c.s.Pause("Press <Enter> to return to main menu: ")
	}
	if len(dishes) == 0 {
		c.s.Println("\nNo dishes found.")
		return c.s.Pause("Press <Enter> to return to main menu: ")
	}

	c.s.Printf("\nDishes offered by \"%s\":\n\n", v.Name)
	rule := c.s.table(fmt.Sprintf("%5s  %-25s%10s", "#", "Item", "Price"))
	for i, d := range dishes {
		c.s.Printf("%5d. %-25s%10s\n", i+1, d.Item, price(d.Price))
	}
	c.s.Println(rule)
	return c.pickDishes(dishes)
}

func (c *Customer) SearchDishes() error {
	c.header()
	c.s.Println("\nEnter full/partial name of dishes.")
	c.s.Println("Or just press <Enter> to return to main menu.")
	name, err := c.s.Input("Dish name: ")
	if err != nil || strings.TrimSpace(name) == "" {
		return err
	}

	dishes, err := c.api.SearchDishes(c.s.Ctx, name)
	if err != nil {
		c.s.Printf("\nSearch failed: %v\n", err)
		return c.s.Pause("Press <Enter> to return to main menu: ")
	}
	if len(dishes) == 0 {
		c.s.Println("\nNo matching dishes found.")
		return c.s.Pause("Press <Enter> to return to main menu: ")
	}

	c.s.Println("\nMatching dishes:")
	rule := c.s.table(fmt.Sprintf("%5s  %-25s%-20s%10s", "#", "Item", "Vendor", "Price"))
	for i, d := range dishes {
		c.s.Printf("%5d. %-25s%-20s%10s\n", i+1, d.Item, d.Vendor, price(d.Price))
	}
	c.s.Println(rule)
	return c.pickDishes(dishes)
}

// pickDishes adds dishes to the cart until the user presses <Enter>.
func (c *Customer) pickDishes(dishes []models.DishRow) error {
	for {
		c.s.Println("\nSelect a dish to add it to the cart.")
		c.s.Println("Or just press <Enter> to return to previous menu.")
		n, err := c.s.ReadChoice(len(dishes), "Dish to select: ", 0)
		if err != nil || n == 0 {
			return err
		}
		dish := dishes[n-1]

		c.s.Printf("\nEnter the repeat-count (max %d) for \"%s\".\n", c.s.MaxQuantity, dish.Item)
		c.s.Println("Or just press <Enter> to order one portion of it.")
		qty, err := c.s.ReadChoice(c.s.MaxQuantity, "Number of portions to order: ", 1)
		if err != nil {
			return err
		}
		c.cart = append(c.cart, CartLine{Dish: dish, Quantity: qty})
	}
}

// lineRow is one row of a dish table with quantities.
type lineRow struct {
	item, vendor string
	price        float64
	qty          int
}

func (c *Customer) listLines(rows []lineRow) {
	header := fmt.Sprintf("%5s  %-25s%-20s%10s%5s%10s", "#", "Item", "Vendor", "Price", "Qty", "Totals")
	rule := c.s.table(header)
	var total float64
	for i, r := range rows {
		sub := r.price * float64(r.qty)
		c.s.Printf("%5d. %-25s%-20s%10s%5d%10s\n", i+1, r.item, r.vendor, price(r.price), r.qty, price(sub))
		total += sub
	}
	c.s.Println(rule)
	c.s.Printf("%*s%10s\n", len(header)-10, "Net price: ", price(total))
	c.s.Println(rule)
}

func (c *Customer) ViewCart() error {
	c.header()
	if len(c.cart) == 0 {
		c.s.Println("\nNo entries found in cart.")
		return c.s.Pause("Press <Enter> to return to main menu: ")
	}

	c.s.Println("\nCart entries:")
	rows := make([]lineRow, 0, len(c.cart))
	for _, l := range c.cart {
		rows = append(rows, lineRow{l.Dish.Item, l.Dish.Vendor, l.Dish.Price, l.Quantity})
	}
	c.listLines(rows)

	c.s.Println("\nEnter \"y|yes\" to place the order.")
	c.s.Println("Or just press <Enter> to return to main menu.")
	answer, err := c.s.Input("Place order?  Enter \"y|yes\" to confirm: ")
	if err != nil {
		return err
	}
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return c.PlaceOrder()
	}
	return nil
}

// PlaceOrder submits the cart as one order and empties it on success.
func (c *Customer) PlaceOrder() error {
	lines := make([]client.Line, 0, len(c.cart))
	for _, l := range c.cart {
		lines = append(lines, client.Line{DishID: l.Dish.ID, Quantity: l.Quantity})
	}
	// Fractions of a second are dropped.
	ts := c.s.Now().Unix()
	if _, err := c.api.PlaceOrder(c.s.Ctx, c.uid, ts, lines); err != nil {
		c.s.Printf("Failed to place order: %v\n", err)
	} else {
		c.cart = nil
		c.s.Println("Order placed successfully!")
	}
	return c.s.Pause("Press <Enter> to return to main menu: ")
}

func (c *Customer) ViewOrders() error {
	c.header()
	rows, err := c.api.ListOrdersByUser(c.s.Ctx, c.uid)
	switch {
	case err != nil:
		c.s.Println("\nFailed to fetch your orders.")
	case len(rows) == 0:
		c.s.Println("\nCould not find any orders placed by you.")
	default:
		c.s.Println("\nOrders placed by you:")
		for i, o := range services.GroupUserOrders(rows) {
			c.s.Printf("\n%5d. Order placed on %s\n", i+1, placedAt(o.Timestamp))
			lines := make([]lineRow, 0, len(o.Lines))
			for _, l := range o.Lines {
				lines = append(lines, lineRow{l.Item, l.Vendor, l.Price, l.Quantity})
			}
			c.listLines(lines)
		}
	}
	return c.s.Pause("\nPress <Enter> to return to main menu: ")
}
