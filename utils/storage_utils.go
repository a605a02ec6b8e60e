package utils

import (
	"bytes"
	"fmt"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
)

// S3Storage uploads listing photos to an S3-compatible object store.
type S3Storage struct {
	client   *s3.S3
	bucket   string
	endpoint string
}

func NewS3Storage(accessKey, secretKey, bucket, region, endpoint string) (*S3Storage, error) {
	sess, err := session.NewSession(&aws.Config{
		Region:   aws.String(region),
		Endpoint: aws.String(endpoint),
		Credentials: credentials.NewStaticCredentials(
			accessKey, secretKey, "",
		),
	})
	if err != nil {
		return nil, err
	}
	return &S3Storage{client: s3.New(sess), bucket: bucket, endpoint: endpoint}, nil
}

// UploadFile stores a photo under folder/fileName and returns its public URL.
func (s *S3Storage) UploadFile(file []byte, fileName, folder, contentType string) (string, error) {
	filePath := fmt.Sprintf("%s/%s", folder, fileName)

	_, err := s.client.PutObject(&s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(filePath),
		Body:          bytes.NewReader(file),
		ContentLength: aws.Int64(int64(len(file))),
		ContentType:   aws.String(contentType),
		ACL:           aws.String("public-read"),
	})
	if err != nil {
		return "", fmt.Errorf("unable to upload file to S3: %v", err)
	}

	return fmt.Sprintf("%s/%s/%s", s.endpoint, s.bucket, filePath), nil
}

// DeleteFile removes a previously uploaded photo.
func (s *S3Storage) DeleteFile(fileName, folder string) error {
	filePath := fmt.Sprintf("%s/%s", folder, fileName)

	_, err := s.client.DeleteObject(&s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(filePath),
	})
	if err != nil {
		return fmt.Errorf("unable to delete file from S3: %v", err)
	}
	return nil
}
