package domain

import (
	"context"

	"github.com/pandamarket/backend/internal/common"
	"github.com/pandamarket/backend/internal/model"
	"github.com/pandamarket/backend/pkg/storage"
)

type FileDomain interface {
	UploadImage(ctx context.Context, req *model.UploadImageRequest) (*model.UploadImageResponse, error)
}

type fileDomain struct {
	storage storage.Storage
}

func NewFileDomain(storage storage.Storage) *fileDomain {
	return &fileDomain{storage: storage}
}

func (d *fileDomain) UploadImage(
	ctx context.Context, req *model.UploadImageRequest,
) (*model.UploadImageResponse, error) {
	resp, err := common.ProcessImage(ctx, d.storage, "image")
	if err != nil {
		return nil, err
	}

	return &model.UploadImageResponse{URL: resp.Url}, nil
}
