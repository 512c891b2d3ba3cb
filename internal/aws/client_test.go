package aws_test

import (
	"errors"
	"testing"

	"github.com/aws/smithy-go"
	"github.com/gridform/gridform/internal/aws"
	"github.com/stretchr/testify/assert"
)

func TestWrapAWSError(t *testing.T) {
	assert.NoError(t, aws.WrapAWSError(nil, "get"))

	err := aws.WrapAWSError(&smithy.GenericAPIError{Code: "NoSuchKey", Message: "gone"}, "get s3://b/k")
	assert.ErrorIs(t, err, aws.ErrNotFound)

	err = aws.WrapAWSError(&smithy.GenericAPIError{Code: "ExpiredToken"}, "put")
	assert.ErrorIs(t, err, aws.ErrExpiredCredentials)

	err = aws.WrapAWSError(&smithy.GenericAPIError{Code: "SlowDown", Message: "easy"}, "put")
	assert.EqualError(t, err, "put failed: easy (SlowDown)")

	boom := errors.New("boom")
	assert.ErrorIs(t, aws.WrapAWSError(boom, "put"), boom)
}

func TestNewClientRegion(t *testing.T) {
	c := aws.NewClient(aws.ClientConfig{Profile: "dev", Region: "eu-north-1"})
	assert.Equal(t, "eu-north-1", c.Region())
	assert.Equal(t, "dev", c.Profile())
}
