package aws

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/smithy-go"
)

// DefaultRegion is used when neither flags, environment nor profile name a region.
const DefaultRegion = "us-east-1"

type Error string

const (
	ErrNoCredentials      = Error("no AWS credentials found")
	ErrExpiredCredentials = Error("AWS credentials have expired")
	ErrNotFound           = Error("no such S3 object")
	ErrInvalidRegion      = Error("invalid AWS region")
)

func (e Error) Error() string {
	return string(e)
}

type ClientConfig struct {
	Profile string
	Region  string
	Timeout time.Duration
}

// Client hands out S3 clients per region for the configured profile.
type Client struct {
	config  ClientConfig
	clients map[string]*s3.Client
	mx      sync.RWMutex
}

// NewClient returns a new client. A blank region is resolved from the
// environment and the shared profile config.
func NewClient(cfg ClientConfig) *Client {
	if cfg.Region == "" {
		cfg.Region = ResolveRegion("", cfg.Profile)
	}

	return &Client{
		config:  cfg,
		clients: make(map[string]*s3.Client),
	}
}

// Profile returns the active AWS profile.
func (c *Client) Profile() string {
	c.mx.RLock()
	defer c.mx.RUnlock()
	return c.config.Profile
}

// Region returns the active AWS region.
func (c *Client) Region() string {
	c.mx.RLock()
	defer c.mx.RUnlock()
	return c.config.Region
}

// S3 returns an S3 client for the given region, or the active one when blank.
func (c *Client) S3(ctx context.Context, region string) (*s3.Client, error) {
	c.mx.RLock()
	if region == "" {
		region = c.config.Region
	}
	if cl, ok := c.clients[region]; ok {
		c.mx.RUnlock()
		return cl, nil
	}
	c.mx.RUnlock()

	c.mx.Lock()
	defer c.mx.Unlock()

	if cl, ok := c.clients[region]; ok {
		return cl, nil
	}
	cl, err := c.newS3(ctx, region)
	if err != nil {
		return nil, err
	}
	c.clients[region] = cl

	return cl, nil
}

func (c *Client) newS3(ctx context.Context, region string) (*s3.Client, error) {
	if c.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.config.Timeout)
		defer cancel()
	}

	opts := []func(*config.LoadOptions) error{config.WithRegion(region)}
	if c.config.Profile != "" {
		opts = append(opts, config.WithSharedConfigProfile(c.config.Profile))
	}
	cfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, WrapAWSError(err, "load AWS config")
	}

	return s3.NewFromConfig(cfg), nil
}

// Reset drops every cached client.
func (c *Client) Reset() {
	c.mx.Lock()
	defer c.mx.Unlock()
	c.clients = make(map[string]*s3.Client)
}

// WrapAWSError wraps AWS SDK errors with additional context.
func WrapAWSError(err error, operation string) error {
	if err == nil {
		return nil
	}

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "AccessDenied", "AccessDeniedException":
			return fmt.Errorf("access denied for %s: %w", operation, err)
		case "ExpiredToken", "ExpiredTokenException":
			return fmt.Errorf("%w: %s", ErrExpiredCredentials, operation)
		case "NoSuchKey", "NotFound":
			return fmt.Errorf("%w: %s", ErrNotFound, operation)
		case "InvalidClientTokenId":
			return fmt.Errorf("%w: %s", ErrNoCredentials, operation)
		default:
			return fmt.Errorf("%s failed: %s (%s)", operation, apiErr.ErrorMessage(), apiErr.ErrorCode())
		}
	}

	return fmt.Errorf("%s failed: %w", operation, err)
}
