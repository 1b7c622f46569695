// Command catalog runs the catalog API against an in-memory store seeded with demo
// burgers and posts, for storefront development without MongoDB.
package main

import (
	"context"
	"flag"
	"os"

	"github.com/burgerboots/catalog/internal/catalog/service"
	"github.com/burgerboots/catalog/internal/config"
	"github.com/burgerboots/catalog/internal/server"
	"github.com/burgerboots/catalog/pkg/logger"
)

func main() {
	noSeed := flag.Bool("no-seed", false, "start with empty product and blog lists")
	flag.Parse()

	logger.Init(os.Getenv("LOG_LEVEL"))
	if os.Getenv("CATALOG_STORE") == "" {
		_ = os.Setenv("CATALOG_STORE", "memory")
	}
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatalf("failed to load config: %v", err)
	}

	ctx := context.Background()
	srv, err := server.New(ctx, cfg, server.Options{})
	if err != nil {
		logger.Fatalf("failed to build server: %v", err)
	}
	defer srv.Close(ctx)

	if !*noSeed {
		n, err := seed(ctx, srv.Products, srv.Blogs)
		if err != nil {
			logger.Fatalf("seeding failed: %v", err)
		}
		logger.Infof("seeded %d demo records", n)
	}

	httpSrv := srv.HTTPServer()
	logger.Infof("catalog dev server listening on %s", httpSrv.Addr)
	if err := httpSrv.ListenAndServe(); err != nil {
		logger.Fatalf("server failed: %v", err)
	}
}

func strp(s string) *string { return &s }

// seed inserts the demo menu and a few posts through the services so every record
// passes the same validation as API input.
func seed(ctx context.Context, products *service.ProductService, blogs *service.BlogService) (int, error) {
	menu := []struct {
		name, category, description string
		price                       float64
		qty                         int
	}{
		{"Classic Burger", "Burgers", "Beef patty, cheddar, lettuce, tomato", 8.99, 50},
		{"Bacon Burger", "Burgers", "Smoked bacon and house sauce", 10.49, 40},
		{"Veggie Burger", "Burgers", "Black bean patty with avocado", 9.29, 30},
		{"Chicken Burger", "Burgers", "Crispy chicken and slaw", 9.79, 35},
		{"Fries", "Sides", "Hand cut, sea salt", 3.49, 100},
		{"Onion Rings", "Sides", "Beer battered", 4.29, 60},
		{"Chocolate Shake", "Drinks", "Thick and cold", 4.99, 25},
	}
	n := 0
	for _, m := range menu {
		price, qty := m.price, m.qty
		if _, err := products.Create(ctx, service.ProductInput{
			Name: strp(m.name), Price: &price, Quantity: &qty,
			Description: strp(m.description), Category: strp(m.category),
		}); err != nil {
			return n, err
		}
		n++
	}

	posts := []service.BlogInput{
		{Title: strp("Our spice guide"), Body: strp("How we balance heat in the house sauce."), Category: strp("Food"), Tags: &[]string{"spice", "sauce"}},
		{Title: strp("Burger road trip"), Body: strp("Five cities, forty burgers."), Category: strp("Travel"), Tags: &[]string{"road"}},
		{Title: strp("Grilling at home"), Body: strp("Cast iron or grill grate?"), Category: strp("Cooking")},
	}
	for _, p := range posts {
		if _, err := blogs.Create(ctx, p); err != nil {
			return n, err
		}
		n++
	}
	return n, nil
}
