package media

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/chai2010/webp"
	"golang.org/x/image/draw"
)

const (
	maxWidth    = 1280
	webpQuality = 82
)

var ErrUnsupportedImage = errors.New("media: unsupported image format")

// Uploader re-encodes catalog photos to webp and stores them in S3.
type Uploader struct {
	client  *s3.Client
	bucket  string
	baseURL string
}

func NewUploader(region, accessKey, secretKey, bucket, baseURL string) *Uploader {
	client := s3.New(s3.Options{
		Region:      region,
		Credentials: credentials.NewStaticCredentialsProvider(accessKey, secretKey, ""),
	})

	return &Uploader{
		client:  client,
		bucket:  bucket,
		baseURL: baseURL,
	}
}

func (u *Uploader) Configured() bool {
	return u.bucket != ""
}

// UploadServicePhoto decodes, downsizes and webp-encodes the photo,
// then uploads it under the given key. Returns the public URL.
func (u *Uploader) UploadServicePhoto(
	ctx context.Context,
	key string,
	raw []byte,
) (string, error) {

	src, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return "", ErrUnsupportedImage
	}

	src = downscale(src)

	var buf bytes.Buffer
	if err := webp.Encode(&buf, src, &webp.Options{Quality: webpQuality}); err != nil {
		return "", fmt.Errorf("media: webp encode: %w", err)
	}

	_, err = u.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(u.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(buf.Bytes()),
		ContentType: aws.String("image/webp"),
	})
	if err != nil {
		return "", fmt.Errorf("media: s3 put: %w", err)
	}

	return fmt.Sprintf("%s/%s", u.baseURL, key), nil
}

func downscale(src image.Image) image.Image {
	bounds := src.Bounds()
	if bounds.Dx() <= maxWidth {
		return src
	}

	scale := float64(maxWidth) / float64(bounds.Dx())
	h := int(float64(bounds.Dy()) * scale)

	dst := image.NewRGBA(image.Rect(0, 0, maxWidth, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, bounds, draw.Over, nil)
	return dst
}
