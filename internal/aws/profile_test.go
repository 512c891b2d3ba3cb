package aws_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/gridform/gridform/internal/aws"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const awsConfig = `[default]
region = eu-west-1

[profile dev]
region = ap-south-1

[profile bare]
output = json
`

func TestProfileRegion(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config")
	require.NoError(t, os.WriteFile(path, []byte(awsConfig), 0600))

	uu := map[string]struct {
		profile, e string
	}{
		"default":  {profile: "", e: "eu-west-1"},
		"named":    {profile: "dev", e: "ap-south-1"},
		"noRegion": {profile: "bare", e: ""},
		"missing":  {profile: "zorg", e: ""},
	}

	for k := range uu {
		u := uu[k]
		t.Run(k, func(t *testing.T) {
			r, err := aws.ProfileRegion(path, u.profile)
			require.NoError(t, err)
			assert.Equal(t, u.e, r)
		})
	}
}

func TestProfileRegionNoFile(t *testing.T) {
	r, err := aws.ProfileRegion(filepath.Join(t.TempDir(), "nope"), "dev")
	require.NoError(t, err)
	assert.Empty(t, r)
}

func TestResolveRegion(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config")
	require.NoError(t, os.WriteFile(path, []byte(awsConfig), 0600))
	t.Setenv("AWS_CONFIG_FILE", path)
	t.Setenv("AWS_REGION", "")
	t.Setenv("AWS_DEFAULT_REGION", "")
	t.Setenv("AWS_PROFILE", "")

	assert.Equal(t, "us-west-2", aws.ResolveRegion("us-west-2", "dev"))
	assert.Equal(t, "ap-south-1", aws.ResolveRegion("", "dev"))
	assert.Equal(t, aws.DefaultRegion, aws.ResolveRegion("", "bare"))

	t.Setenv("AWS_REGION", "ca-central-1")
	assert.Equal(t, "ca-central-1", aws.ResolveRegion("", "dev"))
}
