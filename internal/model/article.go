package model

type Article struct {
	ID        string    `json:"id"`
	CreatedAt string    `json:"created_at"`
	UpdatedAt string    `json:"updated_at"`
	User      ShortUser `json:"user"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	LikeCount int64     `json:"like_count"`
	IsLiked   bool      `json:"is_liked"`
}

type CreateArticleRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

type CreateArticleResponse struct {
	Article Article `json:"article"`
}

type GetArticleRequest struct {
	ID string `uri:"id"`
}

type GetArticleResponse struct {
	Article Article `json:"article"`
}

type GetArticlesRequest struct {
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
	OrderBy  string `form:"order_by"`
	Keyword  string `form:"keyword"`
}

type GetArticlesResponse struct {
	Articles   []Article `json:"articles"`
	TotalCount int64     `json:"total_count"`
}

type UpdateArticleRequest struct {
	ID      string `uri:"id"`
	Title   string `json:"title"`
	Content string `json:"content"`
}

type UpdateArticleResponse struct {
	Article Article `json:"article"`
}

type DeleteArticleRequest struct {
	ID string `uri:"id"`
}

type DeleteArticleResponse struct{}

type LikeArticleRequest struct {
	ID string `uri:"id"`
}

type LikeArticleResponse struct{}

type UnlikeArticleRequest struct {
	ID string `uri:"id"`
}

type UnlikeArticleResponse struct{}
