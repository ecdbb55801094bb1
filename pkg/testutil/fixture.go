package testutil

import (
	"context"

	"github.com/pandamarket/backend/internal/entity"
	"github.com/pandamarket/backend/internal/repository"
)

// Fixed rows every fixture database starts with. Tests reference these by
// name instead of re-creating their own world each time.
var (
	User1 = entity.User{
		Base:     entity.Base{ID: "user1"},
		Email:    "user1@example.com",
		Nickname: "User One",
	}

	User2 = entity.User{
		Base:     entity.Base{ID: "user2"},
		Email:    "user2@example.com",
		Nickname: "User Two",
	}

	User3 = entity.User{
		Base:     entity.Base{ID: "user3"},
		Email:    "user3@example.com",
		Nickname: "User Three",
	}

	Article1 = entity.Article{
		Base:    entity.Base{ID: "user1_article1"},
		UserID:  User1.ID,
		Title:   "Selling a used keyboard",
		Content: "Lightly used, works fine.",
	}

	Product1 = entity.Product{
		Base:        entity.Base{ID: "user1_product1"},
		UserID:      User1.ID,
		Name:        "Mechanical keyboard",
		Description: "Brown switches, barely used.",
		Price:       50000,
		Tags:        entity.Array[string]{"keyboard", "electronics"},
	}

	// Product1 is favorited by user2 and user3, so a price change on it
	// fans out to both of them.
	Favorite1 = entity.Favorite{UserID: User2.ID, ProductID: Product1.ID}
	Favorite2 = entity.Favorite{UserID: User3.ID, ProductID: Product1.ID}
)

func CreateFixtureDb(ctx context.Context) {
	insertUsers(ctx)
	insertArticles(ctx)
	insertProducts(ctx)
	insertFavorites(ctx)
}

func insertUsers(ctx context.Context) {
	userRepo := repository.NewUserRepository()
	for _, user := range []entity.User{User1, User2, User3} {
		record := user
		if err := userRepo.Create(ctx, &record); err != nil {
			panic(err)
		}
	}
}

func insertArticles(ctx context.Context) {
	articleRepo := repository.NewArticleRepository()
	record := Article1
	if err := articleRepo.Create(ctx, &record); err != nil {
		panic(err)
	}
}

func insertProducts(ctx context.Context) {
	productRepo := repository.NewProductRepository()
	record := Product1
	if err := productRepo.Create(ctx, &record); err != nil {
		panic(err)
	}
}

func insertFavorites(ctx context.Context) {
	favoriteRepo := repository.NewFavoriteRepository()
	for _, favorite := range []entity.Favorite{Favorite1, Favorite2} {
		record := favorite
		if err := favoriteRepo.Create(ctx, &record); err != nil {
			panic(err)
		}
	}
}
