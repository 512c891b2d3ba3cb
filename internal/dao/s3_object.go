package dao

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	awsv2 "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/gridform/gridform/internal/aws"
	"github.com/gridform/gridform/internal/model1"
)

func init() {
	RegisterOpener(S3Scheme, openS3)
}

// S3API is the part of the S3 client a dataset needs.
type S3API interface {
	GetObject(context.Context, *s3.GetObjectInput, ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	PutObject(context.Context, *s3.PutObjectInput, ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Object is a dataset stored as one YAML or JSON S3 object.
type S3Object struct {
	api    S3API
	bucket string
	key    string
	codec  Codec
	mx     sync.Mutex
}

var _ Dataset = (*S3Object)(nil)

// NewS3Object returns an S3 backed dataset.
func NewS3Object(api S3API, bucket, key string) (*S3Object, error) {
	c, err := CodecFor(key)
	if err != nil {
		return nil, err
	}

	return &S3Object{
		api:    api,
		bucket: bucket,
		key:    key,
		codec:  c,
	}, nil
}

func openS3(ctx context.Context, location string, f Factory) (Dataset, error) {
	bucket, key, err := parseObjectPath(strings.TrimPrefix(location, S3Scheme+"://"))
	if err != nil {
		return nil, err
	}
	if f == nil {
		return nil, errors.New("no AWS client configured")
	}
	client, err := f.S3(ctx, "")
	if err != nil {
		return nil, err
	}

	return NewS3Object(client, bucket, key)
}

// Location returns the dataset address.
func (s *S3Object) Location() string {
	return S3Scheme + "://" + s.bucket + "/" + s.key
}

// Load reads every record. A missing object is an empty dataset.
func (s *S3Object) Load(ctx context.Context) ([]model1.Record, error) {
	s.mx.Lock()
	defer s.mx.Unlock()

	doc, err := s.download(ctx)
	if err != nil {
		return nil, err
	}
	return doc.Records, nil
}

// Save writes the records.
func (s *S3Object) Save(ctx context.Context, rr []model1.Record) ([]model1.Record, error) {
	s.mx.Lock()
	defer s.mx.Unlock()

	doc, err := s.download(ctx)
	if err != nil {
		return nil, err
	}
	doc.Records = assignKeys(rr)
	if err := s.upload(ctx, doc); err != nil {
		return nil, err
	}
	return cloneRecords(doc.Records), nil
}

// Delete removes records by key.
func (s *S3Object) Delete(ctx context.Context, keys []string) (string, error) {
	s.mx.Lock()
	defer s.mx.Unlock()

	doc, err := s.download(ctx)
	if err != nil {
		return "", err
	}
	var n int
	doc.Records, n = removeKeys(doc.Records, keys)
	if n == 0 {
		return "", nil
	}
	if err := s.upload(ctx, doc); err != nil {
		return "", err
	}
	return deletedMsg(n), nil
}

func (s *S3Object) download(ctx context.Context) (Document, error) {
	input := &s3.GetObjectInput{
		Bucket: awsv2.String(s.bucket),
		Key:    awsv2.String(s.key),
	}

	output, err := s.api.GetObject(ctx, input)
	if err != nil {
		var nsk *types.NoSuchKey
		if errors.As(err, &nsk) {
			return Document{}, nil
		}
		return Document{}, aws.WrapAWSError(err, "get object")
	}
	defer output.Body.Close()

	bb, err := io.ReadAll(output.Body)
	if err != nil {
		return Document{}, fmt.Errorf("failed to read object data: %w", err)
	}
	return s.codec.Decode(bb)
}

func (s *S3Object) upload(ctx context.Context, doc Document) error {
	bb, err := s.codec.Encode(doc)
	if err != nil {
		return err
	}
	input := &s3.PutObjectInput{
		Bucket: awsv2.String(s.bucket),
		Key:    awsv2.String(s.key),
		Body:   bytes.NewReader(bb),
	}

	if _, err := s.api.PutObject(ctx, input); err != nil {
		return aws.WrapAWSError(err, "put object")
	}
	return nil
}

// parseObjectPath parses a path in the format "bucket/key".
func parseObjectPath(path string) (bucket, key string, err error) {
	parts := strings.SplitN(path, "/", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("invalid path format, expected 'bucket/key', got: %s", path)
	}
	return parts[0], parts[1], nil
}
