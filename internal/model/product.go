package model

type Product struct {
	ID            string    `json:"id"`
	CreatedAt     string    `json:"created_at"`
	UpdatedAt     string    `json:"updated_at"`
	User          ShortUser `json:"user"`
	Name          string    `json:"name"`
	Description   string    `json:"description"`
	Price         int64     `json:"price"`
	Tags          []string  `json:"tags"`
	Images        []string  `json:"images"`
	FavoriteCount int64     `json:"favorite_count"`
	IsFavorited   bool      `json:"is_favorited"`
}

type CreateProductRequest struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Price       int64    `json:"price"`
	Tags        []string `json:"tags"`
	Images      []string `json:"images"`
}

type CreateProductResponse struct {
	Product Product `json:"product"`
}

type GetProductRequest struct {
	ID string `uri:"id"`
}

type GetProductResponse struct {
	Product Product `json:"product"`
}

type GetProductsRequest struct {
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
	OrderBy  string `form:"order_by"`
	Keyword  string `form:"keyword"`
}

type GetProductsResponse struct {
	Products   []Product `json:"products"`
	TotalCount int64     `json:"total_count"`
}

type UpdateProductRequest struct {
	ID          string   `uri:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Price       *int64   `json:"price"`
	Tags        []string `json:"tags"`
	Images      []string `json:"images"`
}

type UpdateProductResponse struct {
	Product Product `json:"product"`
}

type DeleteProductRequest struct {
	ID string `uri:"id"`
}

type DeleteProductResponse struct{}

type FavoriteProductRequest struct {
	ID string `uri:"id"`
}

type FavoriteProductResponse struct{}

type UnfavoriteProductRequest struct {
	ID string `uri:"id"`
}

type UnfavoriteProductResponse struct{}
