package file_store

import (
	"io"
	"os"
	"path/filepath"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
	"github.com/google/uuid"
)

type S3UploadStore struct {
	bucket    string
	urlPrefix string
	uploader  *s3manager.Uploader
}

// NewS3UploadStore uploads into the given bucket. Served URLs are prefixed
// with UPLOAD_URL_PREFIX (a CDN domain in front of the bucket).
func NewS3UploadStore(bucket string) (*S3UploadStore, error) {
	sess, err := session.NewSession(&aws.Config{
		Region: aws.String(os.Getenv("AWS_REGION")),
	})
	if err != nil {
		return nil, err
	}

	return &S3UploadStore{
		bucket:    bucket,
		urlPrefix: os.Getenv("UPLOAD_URL_PREFIX"),
		uploader:  s3manager.NewUploader(sess),
	}, nil
}

// Keys are random, the original file name only contributes its extension.
func keyFromFileName(fileName string) string {
	return uuid.New().String() + filepath.Ext(fileName)
}

func (s *S3UploadStore) Store(r io.Reader, fileName string) (string, error) {
	key := keyFromFileName(fileName)
	_, err := s.uploader.Upload(&s3manager.UploadInput{
		ACL:    aws.String("public-read"),
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
		Body:   r,
	})
	if err != nil {
		return "", err
	}
	return key, nil
}

func (s *S3UploadStore) GetUrlFromKey(key string) string {
	return s.urlPrefix + key
}

func (s *S3UploadStore) CleanUp() {
	// do nothing for s3
}
