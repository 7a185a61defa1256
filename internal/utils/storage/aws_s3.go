package storage

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"path"
	"strings"

	"Recipe-Share-Backend/domain"
	"Recipe-Share-Backend/internal/utils"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/gabriel-vasile/mimetype"
)

var AllowImage = []string{
	"image/jpeg",
	"image/png",
	"image/webp",
	"image/avif",
	"image/gif",
}

type (
	AwsS3 interface {
		Enabled() bool
		UploadFile(ctx context.Context, fileName string, file *multipart.FileHeader, folder string, allowTypes ...string) (string, error)
		DeleteFile(ctx context.Context, objectKey string) error
		GetPublicLinkKey(objectKey string) string
		GetObjectKeyFromLink(link string) string
	}

	awsS3 struct {
		client     *s3.Client
		bucket     string
		publicBase string
	}
)

// NewAwsS3 builds the S3 client from config. Without AWS_S3_BUCKET the returned storage is
// disabled: uploads fail with domain.ErrStorageUnavailable and nothing is ever deleted.
func NewAwsS3(ctx context.Context) (AwsS3, error) {
	bucket := utils.GetConfig("AWS_S3_BUCKET")
	if bucket == "" {
		return &awsS3{}, nil
	}
	region := utils.GetConfig("AWS_S3_REGION")
	endpoint := strings.TrimRight(utils.GetConfig("AWS_S3_ENDPOINT"), "/")

	opts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(region)}
	if ak := utils.GetConfig("AWS_ACCESS_KEY"); ak != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(ak, utils.GetConfig("AWS_SECRET_KEY"), ""),
		))
	}
	cfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
			o.UsePathStyle = true
		}
	})

	publicBase := fmt.Sprintf("https://%s.s3.%s.amazonaws.com", bucket, region)
	if endpoint != "" {
		publicBase = fmt.Sprintf("%s/%s", endpoint, bucket)
	}

	return &awsS3{
		client:     client,
		bucket:     bucket,
		publicBase: publicBase,
	}, nil
}

func (s *awsS3) Enabled() bool {
	return s.client != nil
}

// UploadFile stores file under folder/fileName plus the extension of its sniffed content type
// and returns the object key. Content not matching allowTypes is rejected before upload.
func (s *awsS3) UploadFile(ctx context.Context, fileName string, file *multipart.FileHeader, folder string, allowTypes ...string) (string, error) {
	if !s.Enabled() {
		return "", domain.ErrStorageUnavailable
	}

	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	mtype, err := mimetype.DetectReader(src)
	if err != nil {
		return "", err
	}
	if !isAllowed(mtype, allowTypes) {
		return "", domain.ErrFileTypeNotAllowed
	}
	if _, err := src.Seek(0, io.SeekStart); err != nil {
		return "", err
	}

	objectKey := path.Join(folder, fileName+mtype.Extension())
	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(objectKey),
		Body:          src,
		ContentLength: aws.Int64(file.Size),
		ContentType:   aws.String(mtype.String()),
	})
	if err != nil {
		return "", fmt.Errorf("put object %s: %w", objectKey, err)
	}
	return objectKey, nil
}

func (s *awsS3) DeleteFile(ctx context.Context, objectKey string) error {
	if !s.Enabled() || objectKey == "" {
		return nil
	}
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(objectKey),
	})
	return err
}

func (s *awsS3) GetPublicLinkKey(objectKey string) string {
	return s.publicBase + "/" + objectKey
}

// GetObjectKeyFromLink returns "" for links that do not point into this bucket,
// e.g. image URLs supplied by clients.
func (s *awsS3) GetObjectKeyFromLink(link string) string {
	if !s.Enabled() {
		return ""
	}
	key, ok := strings.CutPrefix(link, s.publicBase+"/")
	if !ok {
		return ""
	}
	return key
}

func isAllowed(mtype *mimetype.MIME, allowTypes []string) bool {
	if len(allowTypes) == 0 {
		return true
	}
	for _, t := range allowTypes {
		if mtype.Is(t) {
			return true
		}
	}
	return false
}
