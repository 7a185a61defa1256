package main

import (
	"os"

	"Recipe-Share-Backend/cmd/config"
	migration "Recipe-Share-Backend/cmd/database/migrate"
	"Recipe-Share-Backend/cmd/database/seed"
	"Recipe-Share-Backend/internal/utils"
	"Recipe-Share-Backend/pkg/like"
	"Recipe-Share-Backend/pkg/log"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func main() {
	cliApp := &cli.App{
		Name:  "recipe-share",
		Usage: "recipe sharing API",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Usage:   "path to the YAML config file",
				Value:   utils.DefaultConfigPath,
				EnvVars: []string{"APP_CONFIG"},
			},
		},
		Before: func(ctx *cli.Context) error {
			if err := utils.LoadConfig(ctx.String("config")); err != nil {
				return err
			}
			log.Init(utils.GetConfig("LOG_LEVEL"))
			return nil
		},
		DefaultCommand: "serve",
		Commands: []*cli.Command{
			{
				Name:  "serve",
				Usage: "start http server",
				Action: func(ctx *cli.Context) error {
					db, err := config.ConnectDB()
					if err != nil {
						return err
					}
					app, err := config.NewApp(ctx.Context, db)
					if err != nil {
						return err
					}
					return config.Run(ctx.Context, app, ":"+utils.GetConfig("APP_PORT"))
				},
			},
			{
				Name:  "migrate",
				Usage: "create or update the database schema",
				Action: func(ctx *cli.Context) error {
					return withDB(func(db *gorm.DB) error {
						return migration.Migrate(db)
					})
				},
			},
			{
				Name:  "seed",
				Usage: "load demo users and recipes",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "reset", Usage: "delete all existing data first"},
				},
				Action: func(ctx *cli.Context) error {
					return withDB(func(db *gorm.DB) error {
						return seed.Seed(ctx.Context, db, ctx.Bool("reset"))
					})
				},
			},
			{
				Name:  "recount-likes",
				Usage: "recompute every recipe like counter from the stored likes",
				Action: func(ctx *cli.Context) error {
					return withDB(func(db *gorm.DB) error {
						_, err := like.NewLikeService(like.NewLikeRepository(db)).RecountLikes(ctx.Context)
						return err
					})
				},
			},
		},
	}
	if err := cliApp.Run(os.Args); err != nil {
		log.L.Fatal("command failed", zap.Error(err))
	}
}

func withDB(fn func(db *gorm.DB) error) error {
	db, err := config.ConnectDB()
	if err != nil {
		return err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()
	return fn(db)
}
