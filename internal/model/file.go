package model

type UploadImageRequest struct{}

type UploadImageResponse struct {
	URL string `json:"url"`
}
