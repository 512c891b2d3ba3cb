package aws

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/ini.v1"
)

// ConfigPath returns the shared AWS config file location.
func ConfigPath() string {
	if p := os.Getenv("AWS_CONFIG_FILE"); p != "" {
		return p
	}
	return filepath.Join(expandHomeDir("~"), ".aws", "config")
}

// ProfileRegion reads the region of a profile from an AWS config file. A
// missing file or profile yields an empty region.
func ProfileRegion(path, profile string) (string, error) {
	if profile == "" {
		profile = "default"
	}
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return "", nil
	} else if err != nil {
		return "", fmt.Errorf("failed to access config file: %w", err)
	}

	configFile, err := ini.Load(path)
	if err != nil {
		return "", fmt.Errorf("failed to load config file: %w", err)
	}

	name := "profile " + profile
	if profile == "default" {
		name = "default"
	}
	section, err := configFile.GetSection(name)
	if err != nil {
		return "", nil
	}
	if !section.HasKey("region") {
		return "", nil
	}

	return section.Key("region").String(), nil
}

// ResolveRegion picks the region by precedence: explicit, AWS_REGION,
// AWS_DEFAULT_REGION, profile config, DefaultRegion.
func ResolveRegion(explicit, profile string) string {
	if explicit != "" {
		return explicit
	}
	for _, env := range []string{"AWS_REGION", "AWS_DEFAULT_REGION"} {
		if r := os.Getenv(env); r != "" {
			return r
		}
	}
	if profile == "" {
		profile = os.Getenv("AWS_PROFILE")
	}
	if r, err := ProfileRegion(ConfigPath(), profile); err == nil && r != "" {
		return r
	}

	return DefaultRegion
}

func expandHomeDir(path string) string {
	if strings.HasPrefix(path, "~") {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(homeDir, strings.TrimPrefix(path, "~"))
	}
	return path
}
