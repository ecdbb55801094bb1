package model

import (
	"time"

	"github.com/pandamarket/backend/internal/entity"
)

func formatTime(t time.Time) string {
	return t.Format(time.RFC3339Nano)
}

func ConvertUser(user *entity.User) User {
	if user == nil {
		return User{}
	}

	return User{
		ID:        user.ID,
		CreatedAt: formatTime(user.CreatedAt),
		Email:     user.Email,
		Nickname:  user.Nickname,
		AvatarURL: user.AvatarURL,
	}
}

func ConvertShortUser(user *entity.User) ShortUser {
	if user == nil {
		return ShortUser{}
	}

	return ShortUser{
		ID:        user.ID,
		Nickname:  user.Nickname,
		AvatarURL: user.AvatarURL,
	}
}

func ConvertArticle(article *entity.Article, likeCount int64, isLiked bool) Article {
	if article == nil {
		return Article{}
	}

	return Article{
		ID:        article.ID,
		CreatedAt: formatTime(article.CreatedAt),
		UpdatedAt: formatTime(article.UpdatedAt),
		User:      ConvertShortUser(&article.User),
		Title:     article.Title,
		Content:   article.Content,
		LikeCount: likeCount,
		IsLiked:   isLiked,
	}
}

func ConvertProduct(product *entity.Product, favoriteCount int64, isFavorited bool) Product {
	if product == nil {
		return Product{}
	}

	return Product{
		ID:            product.ID,
		CreatedAt:     formatTime(product.CreatedAt),
		UpdatedAt:     formatTime(product.UpdatedAt),
		User:          ConvertShortUser(&product.User),
		Name:          product.Name,
		Description:   product.Description,
		Price:         product.Price,
		Tags:          product.Tags,
		Images:        product.Images,
		FavoriteCount: favoriteCount,
		IsFavorited:   isFavorited,
	}
}

func ConvertComment(comment *entity.Comment) Comment {
	if comment == nil {
		return Comment{}
	}

	return Comment{
		ID:        comment.ID,
		CreatedAt: formatTime(comment.CreatedAt),
		User:      ConvertShortUser(&comment.User),
		Content:   comment.Content,
	}
}

func ConvertNotification(notification *entity.Notification) Notification {
	if notification == nil {
		return Notification{}
	}

	return Notification{
		ID:        notification.ID,
		CreatedAt: formatTime(notification.CreatedAt),
		UserID:    notification.UserID,
		Message:   notification.Message,
		IsRead:    notification.IsRead,
	}
}
