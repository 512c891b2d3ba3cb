package dao

import (
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/service/s3"
)

const (
	// MemScheme addresses in-memory datasets.
	MemScheme = "mem"

	// S3Scheme addresses S3 object datasets.
	S3Scheme = "s3"
)

// Factory provides the clients remote datasets need.
type Factory interface {
	S3(ctx context.Context, region string) (*s3.Client, error)
}

// Opener opens a dataset for a location.
type Opener func(ctx context.Context, location string, f Factory) (Dataset, error)

// openers holds all registered dataset schemes.
var openers = make(map[string]Opener)

func init() {
	RegisterOpener(MemScheme, func(_ context.Context, location string, _ Factory) (Dataset, error) {
		name := strings.TrimPrefix(location, MemScheme+"://")
		if name == "" || name == "sample" {
			return NewMemory("sample", SampleRecords()), nil
		}
		return NewMemory(name, nil), nil
	})
}

// RegisterOpener adds a dataset scheme to the registry.
func RegisterOpener(scheme string, o Opener) {
	openers[scheme] = o
}

// Open opens the dataset at location. Locations without a registered
// scheme are local files; a blank location is the sample dataset.
func Open(ctx context.Context, location string, f Factory) (Dataset, error) {
	if location == "" {
		location = MemScheme + "://sample"
	}
	if scheme, _, ok := strings.Cut(location, "://"); ok {
		o, ok := openers[scheme]
		if !ok {
			return nil, fmt.Errorf("no dataset for scheme: %s", scheme)
		}
		return o(ctx, location, f)
	}

	return NewFile(location)
}
