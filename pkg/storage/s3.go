package storage

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
	"github.com/google/uuid"
	"github.com/pandamarket/backend/config"
)

// Uploaded objects are immutable (every upload gets a fresh key), so clients
// and CDNs may cache them for a day.
const cacheControl = "public, max-age=86400"

type s3Storage struct {
	uploader *s3manager.Uploader
	cfg      config.S3Configs
}

func NewS3Storage(cfg config.S3Configs) Storage {
	session, _ := session.NewSession(&aws.Config{
		Region:           aws.String(cfg.Region),
		Credentials:      credentials.NewStaticCredentials(cfg.AccessKey, cfg.SecretKey, ""),
		Endpoint:         aws.String(cfg.Endpoint),
		S3ForcePathStyle: aws.Bool(true),
		DisableSSL:       aws.Bool(cfg.SSLDisabled),
	})

	return &s3Storage{
		uploader: s3manager.NewUploader(session),
		cfg:      cfg,
	}
}

// objectKey partitions uploads by month and prepends a random id. The user
// supplied file name is reduced to its base name so it cannot carry path
// separators into the key.
func (s *s3Storage) objectKey(object *UploadObject) string {
	return fmt.Sprintf("%s/%s/%s-%s",
		object.Prefix,
		time.Now().UTC().Format("2006-01"),
		uuid.NewString(),
		path.Base(object.FileName),
	)
}

func (s *s3Storage) publicURL(bucket, key string) string {
	return fmt.Sprintf("%s/%s/%s", s.cfg.PublicEndpoint, bucket, key)
}

func (s *s3Storage) uploadInput(object *UploadObject, key string) *s3manager.UploadInput {
	return &s3manager.UploadInput{
		Bucket:       aws.String(object.Bucket),
		Key:          aws.String(key),
		Body:         bytes.NewReader(object.Data),
		ACL:          aws.String("public-read"),
		ContentType:  aws.String(object.Mime),
		CacheControl: aws.String(cacheControl),
	}
}

func (s *s3Storage) Upload(ctx context.Context, object *UploadObject) (*UploadResponse, error) {
	key := s.objectKey(object)
	if _, err := s.uploader.UploadWithContext(ctx, s.uploadInput(object, key)); err != nil {
		return nil, fmt.Errorf("cannot upload %s to bucket %s: %w", key, object.Bucket, err)
	}

	return &UploadResponse{
		Url:      s.publicURL(object.Bucket, key),
		FileName: key,
	}, nil
}

func (s *s3Storage) BulkUpload(ctx context.Context, objects []*UploadObject) ([]*UploadResponse, error) {
	batch := make([]s3manager.BatchUploadObject, 0, len(objects))
	out := make([]*UploadResponse, 0, len(objects))
	for _, object := range objects {
		key := s.objectKey(object)
		batch = append(batch, s3manager.BatchUploadObject{
			Object: s.uploadInput(object, key),
		})
		out = append(out, &UploadResponse{
			Url:      s.publicURL(object.Bucket, key),
			FileName: key,
		})
	}

	if err := s.uploader.UploadWithIterator(ctx, &s3manager.UploadObjectsIterator{
		Objects: batch,
	}); err != nil {
		return nil, err
	}

	return out, nil
}
