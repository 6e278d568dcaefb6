// cmd/sync/main.go
//
// One-shot sync runner: drains the Trier list endpoints into the local
// database without starting the HTTP server. Useful for cron jobs and
// first-time backfills.
package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/farmaponte/trier-integration/internal/repository/postgres"
	"github.com/farmaponte/trier-integration/internal/service"
	"github.com/farmaponte/trier-integration/internal/trier"
	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"
)

func commonFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:     "db-url",
			Usage:    "Database connection string",
			Required: true,
			EnvVars:  []string{"DATABASE_URL"},
		},
		&cli.StringFlag{
			Name:     "base-url",
			Usage:    "Trier API base URL",
			Required: true,
			EnvVars:  []string{"TRIER_BASE_URL"},
		},
		&cli.StringFlag{
			Name:     "token",
			Usage:    "Trier API bearer token",
			Required: true,
			EnvVars:  []string{"TRIER_TOKEN"},
		},
		&cli.IntFlag{
			Name:    "page-size",
			Usage:   "Records fetched per page",
			Value:   trier.DefaultPageSize,
			EnvVars: []string{"TRIER_PAGE_SIZE"},
		},
		&cli.IntFlag{
			Name:    "timeout",
			Usage:   "Trier request timeout in seconds",
			Value:   30,
			EnvVars: []string{"TRIER_TIMEOUT_SECONDS"},
		},
	}
}

func newSyncService(c *cli.Context) (*service.SyncService, *postgres.DB, error) {
	db, err := postgres.Open("pgx", c.String("db-url"))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.EnsureSchema(c.Context); err != nil {
		db.Close()
		return nil, nil, err
	}

	client := trier.NewClient(
		c.String("base-url"),
		c.String("token"),
		time.Duration(c.Int("timeout"))*time.Second,
	)

	svc := service.NewSyncService(
		client,
		postgres.NewProdutoRepository(db),
		postgres.NewEstoqueRepository(db),
		postgres.NewVendaRepository(db),
		c.Int("page-size"),
	)
	return svc, db, nil
}

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("warning: could not load .env file: %v", err)
	}

	app := &cli.App{
		Name:  "trier-sync",
		Usage: "Sync Trier ERP data into the local database",
		Commands: []*cli.Command{
			{
				Name:  "produtos",
				Usage: "Sync the product catalog",
				Flags: commonFlags(),
				Action: func(c *cli.Context) error {
					svc, db, err := newSyncService(c)
					if err != nil {
						return err
					}
					defer db.Close()

					result, err := svc.SyncProdutos(c.Context, 0)
					if err != nil {
						return fmt.Errorf("sync produtos: %w", err)
					}
					log.Printf("produtos: %d records processed", result.RegistrosProcessados)
					return nil
				},
			},
			{
				Name:  "estoque",
				Usage: "Sync stock levels",
				Flags: append(commonFlags(),
					&cli.StringFlag{
						Name:  "codigo-produto",
						Usage: "Restrict the sync to one product code",
					},
				),
				Action: func(c *cli.Context) error {
					svc, db, err := newSyncService(c)
					if err != nil {
						return err
					}
					defer db.Close()

					result, err := svc.SyncEstoque(c.Context, c.String("codigo-produto"), 0)
					if err != nil {
						return fmt.Errorf("sync estoque: %w", err)
					}
					log.Printf("estoque: %d records processed", result.RegistrosProcessados)
					return nil
				},
			},
			{
				Name:  "vendas",
				Usage: "Sync sales",
				Flags: append(commonFlags(),
					&cli.StringFlag{
						Name:  "data-inicial",
						Usage: "First emission date (YYYY-MM-DD)",
					},
					&cli.StringFlag{
						Name:  "data-final",
						Usage: "Last emission date (YYYY-MM-DD)",
					},
				),
				Action: func(c *cli.Context) error {
					svc, db, err := newSyncService(c)
					if err != nil {
						return err
					}
					defer db.Close()

					result, err := svc.SyncVendas(c.Context, c.String("data-inicial"), c.String("data-final"), 0)
					if err != nil {
						return fmt.Errorf("sync vendas: %w", err)
					}
					log.Printf("vendas: %d records processed", result.RegistrosProcessados)
					return nil
				},
			},
			{
				Name:  "all",
				Usage: "Sync produtos, estoque and vendas in sequence",
				Flags: commonFlags(),
				Action: func(c *cli.Context) error {
					svc, db, err := newSyncService(c)
					if err != nil {
						return err
					}
					defer db.Close()

					produtos, err := svc.SyncProdutos(c.Context, 0)
					if err != nil {
						return fmt.Errorf("sync produtos: %w", err)
					}
					estoque, err := svc.SyncEstoque(c.Context, "", 0)
					if err != nil {
						return fmt.Errorf("sync estoque: %w", err)
					}
					vendas, err := svc.SyncVendas(c.Context, "", "", 0)
					if err != nil {
						return fmt.Errorf("sync vendas: %w", err)
					}
					log.Printf("done: produtos=%d estoque=%d vendas=%d",
						produtos.RegistrosProcessados,
						estoque.RegistrosProcessados,
						vendas.RegistrosProcessados,
					)
					return nil
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
