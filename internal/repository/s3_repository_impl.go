package repository

import (
	"context"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awss3 "github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/zerolog/log"
)

type S3ObjectStorageRepositoryImpl struct {
	client  *awss3.Client
	bucket  string
	baseURL string
}

func CreateNewS3ObjectStorageRepository(client *awss3.Client, bucket string, baseURL string) ObjectStorageRepository {
	return &S3ObjectStorageRepositoryImpl{
		client:  client,
		bucket:  bucket,
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

func (r *S3ObjectStorageRepositoryImpl) UploadFile(ctx context.Context, key string, contentType string, body io.Reader) (location string, err error) {
	_, err = r.client.PutObject(ctx, &awss3.PutObjectInput{
		Bucket:      aws.String(r.bucket),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "UploadFile").Msg("")
		return
	}

	return r.baseURL + "/" + strings.TrimLeft(key, "/"), nil
}
