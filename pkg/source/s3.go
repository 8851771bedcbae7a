package source

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/smithy-go"
	"github.com/zhengshuai-xiao/xdump/internal"
)

// ObjectGetter is the part of the S3 API needed to stream an object.
type ObjectGetter interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// ParseS3Location splits "s3://bucket/key" into bucket and key.
func ParseS3Location(location string) (bucket, key string, err error) {
	rest, ok := strings.CutPrefix(location, S3Scheme)
	if !ok {
		return "", "", fmt.Errorf("%s is not an s3 location", location)
	}
	bucket, key, _ = strings.Cut(rest, "/")
	if bucket == "" || key == "" {
		return "", "", fmt.Errorf("invalid s3 location %s, expected s3://bucket/key", location)
	}
	return bucket, key, nil
}

// NewS3Client builds a path-style S3 client. Static credentials are used when
// both keys are set, otherwise the default AWS credential chain applies.
func NewS3Client(ctx context.Context, conf *internal.Config) (ObjectGetter, error) {
	region := conf.Region
	if region == "" {
		region = internal.DefaultRegion
	}
	opts := []func(*config.LoadOptions) error{
		config.WithRegion(region),
		config.WithLogger(logger),
	}
	if conf.AccessKey != "" && conf.SecretKey != "" {
		opts = append(opts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(conf.AccessKey, conf.SecretKey, "")))
	}

	cfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	return s3.NewFromConfig(cfg, func(o *s3.Options) {
		// endpoint must contain the scheme, e.g. http://127.0.0.1:9000
		if conf.Endpoint != "" {
			o.BaseEndpoint = aws.String(conf.Endpoint)
		}
		o.UsePathStyle = true
	}), nil
}

func isInvalidRange(err error) bool {
	var apiErr smithy.APIError
	return errors.As(err, &apiErr) && apiErr.ErrorCode() == "InvalidRange"
}

// openS3 streams the object body. When ranged is set and a length limit is
// given, only the dumped prefix is requested.
func (o *Opener) openS3(ctx context.Context, conf *internal.Config, ranged bool) (*Source, error) {
	bucket, key, err := ParseS3Location(conf.Location)
	if err != nil {
		return nil, err
	}
	client, err := o.NewS3Client(ctx, conf)
	if err != nil {
		return nil, err
	}

	input := &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	}
	if ranged && conf.Length > 0 {
		input.Range = aws.String(fmt.Sprintf("bytes=0-%d", conf.Length-1))
	}

	resp, err := client.GetObject(ctx, input)
	if err != nil && input.Range != nil && isInvalidRange(err) {
		// an empty object has no byte 0 to start a range at
		logger.Debugf("range %s rejected for %s/%s, fetching whole object", aws.ToString(input.Range), bucket, key)
		input.Range = nil
		resp, err = client.GetObject(ctx, input)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get object %s/%s: %w", bucket, key, err)
	}
	logger.Debugf("streaming s3 object %s/%s, range %s", bucket, key, aws.ToString(input.Range))

	size := int64(-1)
	if resp.ContentLength != nil {
		size = *resp.ContentLength
	}
	return &Source{Reader: resp.Body, closers: []io.Closer{resp.Body}, Size: size}, nil
}
