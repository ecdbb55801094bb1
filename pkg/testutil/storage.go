package testutil

import (
	"context"

	"github.com/pandamarket/backend/pkg/storage"
)

type MockStorage struct {
	UploadFunc func(ctx context.Context, object *storage.UploadObject) (*storage.UploadResponse, error)
}

func (m *MockStorage) Upload(
	ctx context.Context, object *storage.UploadObject,
) (*storage.UploadResponse, error) {
	if m.UploadFunc != nil {
		return m.UploadFunc(ctx, object)
	}

	return &storage.UploadResponse{
		Url:      "https://storage.example.com/" + object.FileName,
		FileName: object.FileName,
	}, nil
}

func (m *MockStorage) BulkUpload(
	ctx context.Context, objects []*storage.UploadObject,
) ([]*storage.UploadResponse, error) {
	responses := make([]*storage.UploadResponse, 0, len(objects))
	for _, object := range objects {
		resp, err := m.Upload(ctx, object)
		if err != nil {
			return nil, err
		}

		responses = append(responses, resp)
	}

	return responses, nil
}
