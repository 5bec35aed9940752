package s3

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awscfg "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	awss3 "github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/shopsphere/catalog-service/config"
)

func CreateS3Client(conf config.S3Config) (*awss3.Client, error) {
	opts := []func(*awscfg.LoadOptions) error{
		awscfg.WithRegion(conf.Region),
	}

	// Static credentials (required for MinIO / R2 / Spaces)
	if conf.AccessKey != "" && conf.SecretKey != "" {
		opts = append(opts, awscfg.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(conf.AccessKey, conf.SecretKey, ""),
		))
	}

	cfg, err := awscfg.LoadDefaultConfig(context.Background(), opts...)
	if err != nil {
		return nil, fmt.Errorf("loading AWS config: %w", err)
	}

	clientOpts := []func(*awss3.Options){}
	if conf.Endpoint != "" {
		clientOpts = append(clientOpts, func(o *awss3.Options) {
			o.BaseEndpoint = aws.String(conf.Endpoint)
			o.UsePathStyle = true // required for MinIO
		})
	}

	return awss3.NewFromConfig(cfg, clientOpts...), nil
}

// BucketURL resolves the public base URL objects are served from.
func BucketURL(conf config.S3Config) string {
	if conf.BaseURL != "" {
		return conf.BaseURL
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com", conf.Bucket, conf.Region)
}
