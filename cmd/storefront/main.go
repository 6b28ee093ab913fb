package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/glutt28/ecommerce-prototype/internal/client"
	"github.com/glutt28/ecommerce-prototype/internal/config"
	"github.com/glutt28/ecommerce-prototype/internal/storefront/cart"
	"github.com/glutt28/ecommerce-prototype/internal/storefront/catalog"
	"github.com/glutt28/ecommerce-prototype/internal/storefront/filter"
	"github.com/glutt28/ecommerce-prototype/internal/storefront/localstore"
	"github.com/glutt28/ecommerce-prototype/internal/storefront/session"
)

const usage = `Usage: storefront <command> [flags]

Commands:
  products    list products (-category, -search, -sort, -min-price, -max-price, -min-rating)
  categories  list categories
  cart        show the cart
  add         add a product (add <product-id> [quantity])
  remove      remove a product (remove <product-id>)
  set         set a quantity (set <product-id> <quantity>)
  clear       empty the cart
  login       sign in (login <username>)
  logout      sign out
  profile     show the signed-in user
`

type app struct {
	api     *client.Client
	cart    *cart.Store
	session *session.Store
}

func main() {
	log.SetFlags(0)

	cfg, err := config.LoadStorefront()
	if err != nil {
		log.Fatalf("[Storefront] Failed to load configuration: %v", err)
	}

	dataDir := cfg.DataDir
	if dataDir == "" {
		base, err := os.UserConfigDir()
		if err != nil {
			log.Fatalf("[Storefront] Failed to locate config dir: %v", err)
		}
		dataDir = filepath.Join(base, "storefront")
	}

	local, err := localstore.Open(dataDir)
	if err != nil {
		log.Fatalf("[Storefront] %v", err)
	}

	api := client.New(cfg.APIBaseURL)
	cartStore := cart.NewStore(local, api)
	sessionStore := session.NewStore(local, api, cartStore)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	sessionStore.Load()
	cartStore.Initialize(ctx)

	a := &app{api: api, cart: cartStore, session: sessionStore}

	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	switch os.Args[1] {
	case "products":
		err = a.listProducts(ctx, os.Args[2:])
	case "categories":
		err = a.listCategories(ctx)
	case "cart":
		a.showCart()
	case "add":
		err = a.addToCart(ctx, os.Args[2:])
	case "remove":
		err = a.removeFromCart(os.Args[2:])
	case "set":
		err = a.setQuantity(os.Args[2:])
	case "clear":
		a.cart.Clear()
		fmt.Println("Cart cleared")
	case "login":
		err = a.login(ctx, os.Args[2:])
	case "logout":
		a.session.Logout()
		fmt.Println("Signed out")
	case "profile":
		err = a.profile(ctx)
	default:
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	// Drain in-flight remote cart syncs before the process exits.
	cartStore.Wait()

	if err != nil {
		log.Fatalf("[Storefront] %v", err)
	}
}

func (a *app) listProducts(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("products", flag.ExitOnError)
	category := fs.String("category", "", "filter by category")
	search := fs.String("search", "", "search in title and description")
	sortKey := fs.String("sort", "default", "default, price-asc, price-desc, rating-desc or name-asc")
	minPrice := fs.Float64("min-price", -1, "minimum price")
	maxPrice := fs.Float64("max-price", -1, "maximum price")
	minRating := fs.Float64("min-rating", 0, "minimum rating (0-5)")
	fs.Parse(args)

	cat, err := catalog.Load(ctx, a.api)
	if err != nil {
		return err
	}

	// Unset price flags fall back to the observed catalog bounds.
	lo, hi, ok := cat.PriceBounds()
	if !ok {
		fmt.Println("No products available")
		return nil
	}
	if *minPrice >= 0 {
		lo = *minPrice
	}
	if *maxPrice >= 0 {
		hi = *maxPrice
	}

	spec := filter.Spec{
		SearchText: *search,
		Category:   *category,
		PriceMin:   lo,
		PriceMax:   hi,
		MinRating:  *minRating,
		SortKey:    filter.SortKey(*sortKey),
	}
	products, err := filter.Apply(cat.Products(), spec)
	if err != nil {
		return err
	}

	if len(products) == 0 {
		fmt.Println("No products found")
		return nil
	}
	for _, p := range products {
		fmt.Printf("%4d  %-40s  %10.2f  %.1f★ (%d)  %s\n",
			p.ID, truncate(p.Title, 40), p.Price, p.Rating.Rate, p.Rating.Count, p.Category)
	}
	return nil
}

func (a *app) listCategories(ctx context.Context) error {
	categories, err := a.api.Categories(ctx)
	if err != nil {
		return err
	}
	for _, c := range categories {
		fmt.Println(c)
	}
	return nil
}

func (a *app) showCart() {
	items := a.cart.Items()
	if len(items) == 0 {
		fmt.Println("Cart is empty")
		return
	}
	for _, item := range items {
		fmt.Printf("%4d  %-40s  %3d x %10.2f = %10.2f\n",
			item.ProductID, truncate(item.Title, 40), item.Quantity, item.Price,
			item.Price*float64(item.Quantity))
	}
	fmt.Printf("\nTotal: %.2f (%d items)\n", a.cart.TotalPrice(), a.cart.TotalItemCount())
}

func (a *app) addToCart(ctx context.Context, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: add <product-id> [quantity]")
	}
	id, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid product id %q", args[0])
	}
	quantity := 1
	if len(args) > 1 {
		quantity, err = strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("invalid quantity %q", args[1])
		}
	}

	product, err := a.api.ProductByID(ctx, id)
	if err != nil {
		return err
	}
	if err := a.cart.AddItem(product, quantity); err != nil {
		return err
	}
	fmt.Printf("Added %dx %s\n", quantity, product.Title)
	return nil
}

func (a *app) removeFromCart(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: remove <product-id>")
	}
	id, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid product id %q", args[0])
	}
	a.cart.RemoveItem(id)
	fmt.Println("Removed")
	return nil
}

func (a *app) setQuantity(args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("usage: set <product-id> <quantity>")
	}
	id, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid product id %q", args[0])
	}
	quantity, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("invalid quantity %q", args[1])
	}
	a.cart.UpdateQuantity(id, quantity)
	fmt.Println("Updated")
	return nil
}

func (a *app) login(ctx context.Context, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: login <username>")
	}
	fmt.Print("Password: ")
	reader := bufio.NewReader(os.Stdin)
	password, err := reader.ReadString('\n')
	if err != nil {
		return fmt.Errorf("failed to read password: %w", err)
	}

	id, err := a.session.Login(ctx, args[0], strings.TrimSpace(password))
	if err != nil {
		return err
	}
	fmt.Printf("Signed in as %s (user %d)\n", id.Username, id.ID)
	return nil
}

func (a *app) profile(ctx context.Context) error {
	user, err := a.session.Profile(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("ID:       %d\nUsername: %s\nEmail:    %s\n", user.ID, user.Username, user.Email)
	return nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-3] + "..."
}
