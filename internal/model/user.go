package model

type User struct {
	ID        string `json:"id"`
	CreatedAt string `json:"created_at"`
	Email     string `json:"email,omitempty"`
	Nickname  string `json:"nickname"`
	AvatarURL string `json:"avatar_url"`
}

// ShortUser is the author shape embedded in posts and comments.
type ShortUser struct {
	ID        string `json:"id"`
	Nickname  string `json:"nickname"`
	AvatarURL string `json:"avatar_url"`
}

type GetMeRequest struct{}

type GetMeResponse struct {
	User User `json:"user"`
}

type UpdateMeRequest struct {
	Nickname  string `json:"nickname"`
	AvatarURL string `json:"avatar_url"`
}

type UpdateMeResponse struct {
	User User `json:"user"`
}

type UpdatePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

type UpdatePasswordResponse struct{}

type GetMyProductsRequest struct {
	Page     int `form:"page"`
	PageSize int `form:"page_size"`
}

type GetMyProductsResponse struct {
	Products   []Product `json:"products"`
	TotalCount int64     `json:"total_count"`
}

type GetMyFavoritesRequest struct {
	Page     int `form:"page"`
	PageSize int `form:"page_size"`
}

type GetMyFavoritesResponse struct {
	Products   []Product `json:"products"`
	TotalCount int64     `json:"total_count"`
}
