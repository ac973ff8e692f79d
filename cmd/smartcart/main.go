package main

import (
	"context"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"github.com/prince9318/smartcart-client/internal/api"
	"github.com/prince9318/smartcart-client/internal/cart"
	"github.com/prince9318/smartcart-client/internal/config"
	"github.com/prince9318/smartcart-client/internal/domain"
	"github.com/prince9318/smartcart-client/internal/pages"
	"github.com/prince9318/smartcart-client/internal/payment"
	"github.com/prince9318/smartcart-client/internal/session"
	"github.com/prince9318/smartcart-client/internal/snapshot"
	"github.com/prince9318/smartcart-client/internal/stocksync"
)

func main() {
	log := logrus.New()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	if level, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		log.SetLevel(level)
	}

	// Interrupt cancels whatever flow is running; a checkout waiting
	// on the hosted page treats that as abandoning the payment.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	snap, err := snapshot.NewSQLiteStore(cfg.StatePath)
	if err != nil {
		log.Fatalf("failed to open state store: %v", err)
	}
	defer snap.Close()

	sessionStore := session.NewStore(snap)
	if err := sessionStore.Restore(ctx); err != nil {
		log.Fatalf("failed to restore session: %v", err)
	}

	cartStore, err := cart.NewStore(ctx, snap, log)
	if err != nil {
		log.Fatalf("failed to restore cart: %v", err)
	}

	client := api.NewClient(cfg.APIURL, cfg.RequestTimeout, sessionStore)
	refresher := stocksync.NewRefresher(cartStore, client, log)
	widget := payment.NewWidget(log)

	out := os.Stdout
	productsPage := pages.NewProducts(client, cartStore, out)
	cartPage := pages.NewCart(cartStore, refresher, out)
	checkoutPage := pages.NewCheckout(client, cartStore, widget, refresher,
		cfg.StoreName, cfg.ThemeColor, cfg.RefreshInterval, out)
	ordersPage := pages.NewOrders(client, out)
	authPage := pages.NewAuth(client, sessionStore, out)
	adminPage := pages.NewAdmin(client, sessionStore, out)

	app := &cli.App{
		Name:  "smartcart",
		Usage: "terminal storefront client",
		Commands: []*cli.Command{
			{
				Name:    "products",
				Aliases: []string{"browse"},
				Usage:   "browse the catalog",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "search", Aliases: []string{"q"}, Usage: "filter products"},
				},
				Action: func(c *cli.Context) error {
					return productsPage.List(c.Context, c.String("search"))
				},
			},
			{
				Name:  "cart",
				Usage: "manage the cart",
				Subcommands: []*cli.Command{
					{
						Name:  "show",
						Usage: "show cart lines and total",
						Action: func(c *cli.Context) error {
							return cartPage.Show(c.Context)
						},
					},
					{
						Name:      "add",
						Usage:     "add one unit of a product",
						ArgsUsage: "<product-id>",
						Action: func(c *cli.Context) error {
							if c.NArg() != 1 {
								return cli.Exit("usage: smartcart cart add <product-id>", 2)
							}
							return productsPage.Add(c.Context, c.Args().First())
						},
					},
					{
						Name:      "qty",
						Usage:     "set a line's quantity (clamped to stock)",
						ArgsUsage: "<product-id> <quantity>",
						Action: func(c *cli.Context) error {
							if c.NArg() != 2 {
								return cli.Exit("usage: smartcart cart qty <product-id> <quantity>", 2)
							}
							qty, err := strconv.Atoi(c.Args().Get(1))
							if err != nil {
								return cli.Exit("quantity must be an integer", 2)
							}
							return cartPage.SetQuantity(c.Context, c.Args().First(), qty)
						},
					},
					{
						Name:      "remove",
						Usage:     "remove a line",
						ArgsUsage: "<product-id>",
						Action: func(c *cli.Context) error {
							if c.NArg() != 1 {
								return cli.Exit("usage: smartcart cart remove <product-id>", 2)
							}
							return cartPage.Remove(c.Context, c.Args().First())
						},
					},
					{
						Name:  "clear",
						Usage: "empty the cart",
						Action: func(c *cli.Context) error {
							return cartPage.Clear(c.Context)
						},
					},
				},
				Action: func(c *cli.Context) error {
					return cartPage.Show(c.Context)
				},
			},
			{
				Name:  "checkout",
				Usage: "place the order and pay via the hosted checkout",
				Action: func(c *cli.Context) error {
					return checkoutPage.Run(c.Context)
				},
			},
			{
				Name:  "orders",
				Usage: "show your order history",
				Action: func(c *cli.Context) error {
					return ordersPage.List(c.Context)
				},
			},
			{
				Name:  "register",
				Usage: "create an account",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "name", Required: true},
					&cli.StringFlag{Name: "email", Required: true},
					&cli.StringFlag{Name: "password", Required: true},
				},
				Action: func(c *cli.Context) error {
					return authPage.Register(c.Context, c.String("name"), c.String("email"), c.String("password"))
				},
			},
			{
				Name:  "login",
				Usage: "sign in",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "email", Required: true},
					&cli.StringFlag{Name: "password", Required: true},
				},
				Action: func(c *cli.Context) error {
					return authPage.Login(c.Context, c.String("email"), c.String("password"))
				},
			},
			{
				Name:  "logout",
				Usage: "sign out and clear the stored session",
				Action: func(c *cli.Context) error {
					return authPage.Logout(c.Context)
				},
			},
			{
				Name:  "whoami",
				Usage: "show the signed-in user",
				Action: func(c *cli.Context) error {
					return authPage.Whoami(c.Context)
				},
			},
			{
				Name:  "admin",
				Usage: "store management (admin role)",
				Subcommands: []*cli.Command{
					{
						Name:  "products",
						Usage: "manage the catalog",
						Subcommands: []*cli.Command{
							{
								Name:  "add",
								Usage: "create a product",
								Flags: productFlags(),
								Action: func(c *cli.Context) error {
									return adminPage.CreateProduct(c.Context, productInput(c))
								},
							},
							{
								Name:      "update",
								Usage:     "update a product",
								ArgsUsage: "<product-id>",
								Flags:     productFlags(),
								Action: func(c *cli.Context) error {
									if c.NArg() != 1 {
										return cli.Exit("usage: smartcart admin products update <product-id>", 2)
									}
									return adminPage.UpdateProduct(c.Context, c.Args().First(), productInput(c))
								},
							},
							{
								Name:      "delete",
								Usage:     "delete a product",
								ArgsUsage: "<product-id>",
								Action: func(c *cli.Context) error {
									if c.NArg() != 1 {
										return cli.Exit("usage: smartcart admin products delete <product-id>", 2)
									}
									return adminPage.DeleteProduct(c.Context, c.Args().First())
								},
							},
						},
					},
					{
						Name:  "orders",
						Usage: "manage orders",
						Subcommands: []*cli.Command{
							{
								Name:  "list",
								Usage: "list all customers' orders",
								Action: func(c *cli.Context) error {
									return adminPage.ListAllOrders(c.Context)
								},
							},
							{
								Name:      "status",
								Usage:     "set an order's status",
								ArgsUsage: "<order-id> <status>",
								Action: func(c *cli.Context) error {
									if c.NArg() != 2 {
										return cli.Exit("usage: smartcart admin orders status <order-id> <status>", 2)
									}
									return adminPage.SetOrderStatus(c.Context, c.Args().First(), domain.OrderStatus(c.Args().Get(1)))
								},
							},
						},
					},
				},
			},
		},
	}

	if err := app.RunContext(ctx, os.Args); err != nil {
		log.Fatal(err)
	}
}

func productFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "title", Required: true},
		&cli.Float64Flag{Name: "price", Required: true},
		&cli.StringFlag{Name: "description"},
		&cli.StringFlag{Name: "image"},
		&cli.IntFlag{Name: "stock"},
	}
}

func productInput(c *cli.Context) api.ProductInput {
	return api.ProductInput{
		Title:       c.String("title"),
		Price:       c.Float64("price"),
		Description: c.String("description"),
		Image:       c.String("image"),
		Stock:       c.Int("stock"),
	}
}
