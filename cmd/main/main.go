package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"stylesphere/storefront/internal/client"
	"stylesphere/storefront/internal/config"
	"stylesphere/storefront/internal/container"
	"stylesphere/storefront/internal/service"
	"stylesphere/storefront/internal/session"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/pflag"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	app, err := container.New(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize container: %v", err)
	}
	defer app.Close()

	ctx := context.Background()

	// Check the stored credential before any route runs
	app.Guard.Init(ctx)

	command := "browse"
	args := os.Args[1:]
	if len(args) > 0 && !strings.HasPrefix(args[0], "-") {
		command = args[0]
		args = args[1:]
	}

	if err := run(ctx, app, command, args); err != nil {
		var ve *client.ValidationError
		if errors.As(err, &ve) {
			log.Fatalf("Invalid input: %v", ve)
		}
		log.Fatalf("Command %s failed: %v", command, err)
	}
}

func run(ctx context.Context, app *container.Container, command string, args []string) error {
	switch command {
	case "browse":
		return runBrowse(ctx, app, args)
	case "shop":
		return runShop(ctx, app)
	case "categories":
		return runCategories(ctx, app)
	case "product":
		return runProduct(ctx, app, args)
	case "cart-add":
		return runCartAdd(ctx, app, args)
	case "login":
		return runLogin(ctx, app, args)
	case "signup":
		return runSignup(ctx, app, args)
	case "logout":
		app.Service.Logout(ctx)
		return nil
	case "theme":
		return runTheme(ctx, app, args)
	default:
		usage()
		return fmt.Errorf("unknown command %q", command)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `Usage: storefront <command> [flags]

Commands:
  browse      list products with filters and sorting (default)
  shop        interactive listing session
  categories  list categories
  product     show one product
  cart-add    add a product to the cart (requires login)
  login       log in and store the session
  signup      register a new account
  logout      drop the stored session
  theme       show or change the theme preference`)
}

// requireRoute applies the guard's route decision before a gated command runs
func requireRoute(app *container.Container, requireAuth bool) error {
	switch app.Guard.Authorize(requireAuth) {
	case session.DecisionAllow:
		return nil
	case session.DecisionLoading:
		return errors.New("session check still in progress, try again")
	case session.DecisionRedirectLogin:
		return errors.New("please log in first (storefront login)")
	default:
		return errors.New("already logged in")
	}
}

func runBrowse(ctx context.Context, app *container.Container, args []string) error {
	flags := pflag.NewFlagSet("browse", pflag.ContinueOnError)
	search := flags.String("search", "", "search text")
	categories := flags.StringSlice("category", nil, "category filter, repeatable")
	size := flags.String("size", "", "size filter (XS..XXL)")
	sortBy := flags.String("sort", "name-asc", "sort key: name-asc|name-desc|price-asc|price-desc|newest|oldest")
	page := flags.Int("page", 1, "page number")
	minPrice := flags.Float64("min-price", -1, "minimum price, -1 for unbounded")
	maxPrice := flags.Float64("max-price", -1, "maximum price, -1 for unbounded")
	if err := flags.Parse(args); err != nil {
		return err
	}

	opts := service.BrowseOptions{
		Search:     *search,
		Categories: *categories,
		Size:       *size,
		Sort:       *sortBy,
		Page:       *page,
	}
	if *minPrice >= 0 {
		opts.MinPrice = minPrice
	}
	if *maxPrice >= 0 {
		opts.MaxPrice = maxPrice
	}

	result, _, err := app.Service.BrowseListing(ctx, opts)
	if err != nil {
		fmt.Println("Something went wrong loading products. Please try again.")
		return err
	}

	printListing(result)
	return nil
}

func runCategories(ctx context.Context, app *container.Container) error {
	categories, err := app.Client.ListCategories(ctx)
	if err != nil {
		return err
	}
	for _, c := range categories {
		fmt.Printf("%4d  %-20s %s\n", c.ID, c.CategoryName, c.Description)
	}
	return nil
}

func runProduct(ctx context.Context, app *container.Container, args []string) error {
	flags := pflag.NewFlagSet("product", pflag.ContinueOnError)
	id := flags.Int("id", 0, "product id")
	size := flags.String("size", "", "selected size")
	if err := flags.Parse(args); err != nil {
		return err
	}
	if *id < 1 {
		return &client.ValidationError{Field: "id", Message: "product id is required"}
	}

	view, err := app.Service.ShowProduct(ctx, *id, *size)
	if err != nil {
		return err
	}
	printProduct(view)
	return nil
}

func runCartAdd(ctx context.Context, app *container.Container, args []string) error {
	if err := requireRoute(app, true); err != nil {
		return err
	}

	flags := pflag.NewFlagSet("cart-add", pflag.ContinueOnError)
	id := flags.Int("product", 0, "product id")
	size := flags.String("size", "", "size")
	quantity := flags.Int("quantity", 1, "quantity")
	if err := flags.Parse(args); err != nil {
		return err
	}
	if *id < 1 {
		return &client.ValidationError{Field: "product", Message: "product id is required"}
	}

	line, err := app.Service.AddToCart(ctx, *id, *size, *quantity)
	if err != nil {
		return err
	}
	fmt.Printf("Added to cart: product %d size %s x%d, %s (after %s discount)\n",
		line.ProductID, line.Size, line.Quantity, formatPrice(line.FinalPrice), formatPrice(line.Discount))
	return nil
}

func runLogin(ctx context.Context, app *container.Container, args []string) error {
	if err := requireRoute(app, false); err != nil {
		return err
	}

	flags := pflag.NewFlagSet("login", pflag.ContinueOnError)
	email := flags.String("email", "", "email address")
	password := flags.String("password", "", "password")
	if err := flags.Parse(args); err != nil {
		return err
	}

	user, err := app.Service.Login(ctx, *email, *password)
	if err != nil {
		return err
	}
	fmt.Printf("Welcome back, %s!\n", user.FullName)
	return nil
}

func runSignup(ctx context.Context, app *container.Container, args []string) error {
	if err := requireRoute(app, false); err != nil {
		return err
	}

	flags := pflag.NewFlagSet("signup", pflag.ContinueOnError)
	form := client.SignupForm{}
	flags.StringVar(&form.FirstName, "first-name", "", "first name")
	flags.StringVar(&form.LastName, "last-name", "", "last name")
	flags.StringVar(&form.Email, "email", "", "email address")
	flags.StringVar(&form.Password, "password", "", "password")
	flags.StringVar(&form.ConfirmPassword, "confirm-password", "", "password confirmation")
	flags.StringVar(&form.Phone, "phone", "", "10-digit phone number (optional)")
	if err := flags.Parse(args); err != nil {
		return err
	}

	message, err := app.Service.Signup(ctx, form)
	if err != nil {
		return err
	}
	if message == "" {
		message = "Account created, you can log in now."
	}
	fmt.Println(message)
	return nil
}

func runTheme(ctx context.Context, app *container.Container, args []string) error {
	flags := pflag.NewFlagSet("theme", pflag.ContinueOnError)
	set := flags.String("set", "", "set theme: light|dark")
	if err := flags.Parse(args); err != nil {
		return err
	}

	if *set != "" {
		if err := app.Service.SetTheme(ctx, *set); err != nil {
			return err
		}
	}
	fmt.Printf("Theme: %s\n", app.Service.Theme(ctx))
	return nil
}
