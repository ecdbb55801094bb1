package common

import (
	"bytes"
	"context"
	"image"
	"image/jpeg"
	"image/png"
	"io"

	"github.com/nfnt/resize"
	"github.com/pandamarket/backend/pkg/errorx"
	"github.com/pandamarket/backend/pkg/storage"
	"github.com/pandamarket/backend/pkg/xcontext"
)

// maxImageWidth is the width images are downscaled to before upload.
const maxImageWidth = 1024

// ProcessImage reads the named multipart file from the current request,
// validates it is a png or jpeg within the size limit, downscales oversized
// images and uploads the result.
func ProcessImage(ctx context.Context, store storage.Storage, name string) (*storage.UploadResponse, error) {
	cfg := xcontext.Configs(ctx)
	req := xcontext.HTTPRequest(ctx)

	if err := req.ParseMultipartForm(cfg.File.MaxSize); err != nil {
		return nil, errorx.New(errorx.BadRequest, "Request must be multipart form")
	}

	file, header, err := req.FormFile(name)
	if err != nil {
		return nil, errorx.New(errorx.BadRequest, "Cannot read the %s file", name)
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, cfg.File.MaxSize+1))
	if err != nil {
		return nil, errorx.New(errorx.BadRequest, "Cannot read the %s file", name)
	}

	if int64(len(data)) > cfg.File.MaxSize {
		return nil, errorx.New(errorx.BadRequest, "The image is too large")
	}

	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, errorx.New(errorx.BadRequest, "Invalid image")
	}

	if format != "png" && format != "jpeg" {
		return nil, errorx.New(errorx.BadRequest, "Only png and jpeg images are accepted")
	}

	if img.Bounds().Dx() > maxImageWidth {
		img = resize.Resize(maxImageWidth, 0, img, resize.Lanczos3)

		var buf bytes.Buffer
		switch format {
		case "png":
			err = png.Encode(&buf, img)
		default:
			err = jpeg.Encode(&buf, img, nil)
		}
		if err != nil {
			return nil, errorx.New(errorx.Internal, "Cannot process the image")
		}

		data = buf.Bytes()
	}

	resp, err := store.Upload(ctx, &storage.UploadObject{
		Bucket:   cfg.File.ImageBucket,
		Prefix:   "images",
		FileName: header.Filename,
		Mime:     "image/" + format,
		Data:     data,
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot upload image: %v", err)
		return nil, errorx.Unknown
	}

	return resp, nil
}
