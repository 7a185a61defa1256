package migration

import (
	"fmt"

	"Recipe-Share-Backend/entities"
	"Recipe-Share-Backend/pkg/log"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	// uuid_generate_v4() backs every primary key default
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`).Error; err != nil {
		return fmt.Errorf("create uuid-ossp extension: %w", err)
	}

	tables := []any{
		&entities.User{},
		&entities.Recipe{},
		&entities.RecipeImage{},
		&entities.RecipeLike{},
	}
	for _, table := range tables {
		if err := db.AutoMigrate(table); err != nil {
			return fmt.Errorf("migrate %T: %w", table, err)
		}
	}

	log.L.Info("database migration complete", zap.Int("tables", len(tables)))
	return nil
}
