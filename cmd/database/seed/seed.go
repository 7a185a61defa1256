package seed

import (
	"context"
	"fmt"
	"time"

	"Recipe-Share-Backend/entities"
	"Recipe-Share-Backend/internal/utils"
	"Recipe-Share-Backend/pkg/log"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type (
	seedUser struct {
		Username string
		Password string
	}

	seedRecipe struct {
		Title        string
		Description  string
		Ingredients  string
		Instructions string
		Category     string
		ImageURL     string
	}
)

const unsplash = "?q=80&w=2070&auto=format&fit=crop"

// Users log in with the listed password; emails are <username>@example.com.
var Users = []seedUser{
	{"alice", "alice123"},
	{"bob", "bob123"},
	{"charlie", "charlie123"},
	{"diana", "diana123"},
	{"edward", "edward123"},
	{"fiona", "fiona123"},
	{"george", "george123"},
	{"hannah", "hannah123"},
	{"ian", "ian123"},
	{"julia", "julia123"},
}

// Recipes are assigned to Users round robin. Some categories are outside the accepted set on
// purpose: the set is only enforced when a recipe is created through the API.
var Recipes = []seedRecipe{
	{"Tarta de espinaca", "Tarta rica y saludable, ideal para cualquier comida.", "espinaca, huevo, queso",
		"Lavar y cocinar la espinaca.\nBatir los huevos y mezclarlos con el queso.\nAgregar la espinaca cocida.\nColocar en una masa y hornear 40 minutos.",
		"Saludable", "https://images.unsplash.com/photo-1733154507491-df341f482669" + unsplash},
	{"Galletitas de avena", "Perfectas para el desayuno o merienda dulce.", "avena, banana, miel",
		"Pisar la banana.\nMezclar con avena y miel.\nFormar bolitas.\nHornear 20 minutos.",
		"Desayuno", "https://images.unsplash.com/photo-1645258751218-1a1ddb1630dc" + unsplash},
	{"Sopa de lentejas", "Ideal para el invierno, reconfortante y nutritiva.", "lentejas, zanahoria, cebolla",
		"Cortar la zanahoria y cebolla.\nRehogar en una olla.\nAgregar lentejas y agua.\nHervir 45 minutos.",
		"Salado", "https://images.unsplash.com/photo-1552298013-de2af4b94854" + unsplash},
	{"Pizza casera", "Clásico de domingo, casera y deliciosa.", "harina, levadura, tomate, queso",
		"Amasar la harina con levadura y agua.\nDejar levar 1 hora.\nEstirar la masa y agregar salsa de tomate.\nAgregar queso.\nHornear 30 minutos.",
		"Salado", "https://images.unsplash.com/photo-1513104890138-7c749659a591" + unsplash},
	{"Ensalada de quinoa", "Fresca y rápida, ideal para un almuerzo ligero.", "quinoa, tomate, pepino, limón",
		"Hervir la quinoa 15 minutos.\nPicar el tomate y el pepino.\nMezclar todo con jugo de limón.\nServir fría.",
		"Saludable", "https://images.unsplash.com/photo-1623428187969-5da2dcea5ebf" + unsplash},
	{"Brownies", "Postre chocolatoso para los más golosos.", "chocolate, azúcar, huevos, harina",
		"Derretir el chocolate.\nBatir los huevos con azúcar.\nMezclar todo con la harina.\nHornear 25 minutos.",
		"Dulce", "https://images.unsplash.com/photo-1629856428041-6f9721807b05" + unsplash},
	{"Tortilla de papas", "Clásico español para cualquier momento.", "papa, huevo, cebolla",
		"Cortar y freír las papas.\nBatir los huevos.\nMezclar con cebolla y papas.\nCocinar en sartén.",
		"Salado", "https://images.unsplash.com/photo-1639669794539-952631b44515" + unsplash},
	{"Wok de verduras", "Rápido y sano para una comida ligera.", "zanahoria, brócoli, salsa soja",
		"Cortar las verduras.\nSaltear en sartén caliente con salsa de soja.\nServir caliente.",
		"Saludable", "https://plus.unsplash.com/premium_photo-1664478238082-3df93e48c491" + unsplash},
	{"Empanadas", "Ideales para compartir en reuniones.", "carne, cebolla, masa",
		"Cocinar la carne con cebolla.\nRellenar las tapas de empanadas.\nCerrar y hornear 20 minutos.",
		"Salado", "https://images.unsplash.com/photo-1646314230198-e27c375e1a2a" + unsplash},
	{"Pan de banana", "Aprovechar bananas maduras en un pan dulce.", "banana, harina, huevo",
		"Pisar las bananas.\nMezclar con huevo y harina.\nColocar en molde.\nHornear 40 minutos.",
		"Dulce", "https://images.unsplash.com/photo-1632931057819-4eefffa8e007" + unsplash},
	{"Arroz con leche", "Postre tradicional, cremoso y delicioso.", "arroz, leche, azúcar, canela",
		"Hervir el arroz con leche.\nAgregar azúcar y canela.\nCocinar 40 minutos hasta espesar.",
		"Dulce", "https://images.unsplash.com/photo-1590055619273-44b5b6ce52e8" + unsplash},
	{"Berenjenas al escabeche", "Para picadas y entradas frescas.", "berenjena, vinagre, ajo",
		"Cortar y hervir las berenjenas.\nPreparar mezcla con vinagre y ajo.\nMacerar todo en frasco.",
		"Salado", "https://images.unsplash.com/photo-1602141901597-dd9e5e5ae5b4" + unsplash},
	{"Fideos con salsa", "Rápido y rendidor para cualquier día.", "fideos, tomate, ajo",
		"Hervir los fideos.\nPreparar salsa con tomate y ajo.\nMezclar todo y servir.",
		"Salado", "https://images.unsplash.com/photo-1612929633738-8fe44f7ec841" + unsplash},
	{"Milanesas de soja", "Opción vegetariana y nutritiva.", "soja texturizada, pan rallado",
		"Hidratar la soja.\nFormar medallones.\nRebozar y hornear 25 minutos.",
		"Salado", "https://plus.unsplash.com/premium_photo-1664472757995-3260cd26e477" + unsplash},
	{"Tarta de zapallitos", "Tarta liviana y sabrosa para cualquier momento.", "zapallitos, cebolla, huevo",
		"Saltear zapallitos y cebolla.\nBatir huevos.\nMezclar todo y volcar en masa.\nHornear 40 minutos.",
		"Salado", "https://media.istockphoto.com/id/497616623/es/foto/quiche-de-vegetarianas.webp"},
}

// Seed loads the demo users and recipes. Without reset it does nothing when users already
// exist; with reset every user, recipe, image and like is removed first.
func Seed(ctx context.Context, db *gorm.DB, reset bool) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if reset {
			if err := clearAll(tx); err != nil {
				return err
			}
		} else {
			var count int64
			if err := tx.Model(&entities.User{}).Count(&count).Error; err != nil {
				return fmt.Errorf("count users: %w", err)
			}
			if count > 0 {
				log.L.Info("seed skipped, database is not empty", zap.Int64("users", count))
				return nil
			}
		}

		profileImage := utils.GetConfig("DEFAULT_PROFILE_IMAGE")
		users := make([]*entities.User, 0, len(Users))
		for _, u := range Users {
			hashed, err := utils.HashPassword(u.Password)
			if err != nil {
				return fmt.Errorf("hash password for %s: %w", u.Username, err)
			}
			users = append(users, &entities.User{
				ID:             uuid.New(),
				Username:       u.Username,
				Email:          u.Username + "@example.com",
				HashedPassword: hashed,
				ProfileImage:   profileImage,
			})
		}
		if err := tx.Create(&users).Error; err != nil {
			return fmt.Errorf("create users: %w", err)
		}

		// spaced creation times keep the newest-first listing stable
		base := time.Now().Add(-time.Duration(len(Recipes)) * time.Minute)
		recipes := make([]*entities.Recipe, 0, len(Recipes))
		for i, r := range Recipes {
			category := r.Category
			createdAt := base.Add(time.Duration(i) * time.Minute)
			recipes = append(recipes, &entities.Recipe{
				ID:           uuid.New(),
				UserID:       users[i%len(users)].ID,
				Title:        r.Title,
				Description:  r.Description,
				Ingredients:  r.Ingredients,
				Instructions: r.Instructions,
				Category:     &category,
				Images: []*entities.RecipeImage{
					{ID: uuid.New(), ImageURL: r.ImageURL, CreatedAt: createdAt},
				},
				Timestamp: entities.Timestamp{CreatedAt: createdAt, UpdatedAt: createdAt},
			})
		}
		if err := tx.Create(&recipes).Error; err != nil {
			return fmt.Errorf("create recipes: %w", err)
		}

		log.L.Info("seed complete", zap.Int("users", len(users)), zap.Int("recipes", len(recipes)))
		return nil
	})
}

func clearAll(tx *gorm.DB) error {
	for _, table := range []any{
		&entities.RecipeLike{},
		&entities.RecipeImage{},
		&entities.Recipe{},
		&entities.User{},
	} {
		if err := tx.Where("1 = 1").Delete(table).Error; err != nil {
			return fmt.Errorf("clear %T: %w", table, err)
		}
	}
	return nil
}
