package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/bstardust/cloud-file-uploader/pkg/common"
	"github.com/spf13/viper"
)

// Provider names a storage backend. It is always the name of the INI
// section the backend is configured in.
type Provider string

const (
	ProviderS3  Provider = "s3"
	ProviderGCS Provider = "gcs"
)

// Section is the flat key/value view of one provider section. Required-key
// validation is deferred to provider construction so that a partially filled
// section only fails when it is actually selected.
type Section map[string]string

// Get returns the value for key, or "" when the key is absent.
func (s Section) Get(key string) string {
	return s[key]
}

// Extensions returns the section's extension allow-list as a normalized set.
func (s Section) Extensions() map[string]struct{} {
	return ParseExtensions(s.Get("extensions"))
}

// Config represents the parsed configuration file. A nil section means the
// section is absent from the file.
type Config struct {
	Path string
	S3   Section
	GCS  Section
}

// Load reads and parses the INI configuration file at path. A missing,
// unreadable or malformed file is a fatal ConfigError.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("ini")

	if err := v.ReadInConfig(); err != nil {
		return nil, common.NewConfigError(path, err)
	}

	return &Config{
		Path: path,
		S3:   section(v, string(ProviderS3)),
		GCS:  section(v, string(ProviderGCS)),
	}, nil
}

func section(v *viper.Viper, name string) Section {
	if !v.IsSet(name) {
		return nil
	}

	sec := Section{}
	for key, value := range v.GetStringMapString(name) {
		sec[key] = value
	}

	return sec
}

// Select resolves which provider section to use for this run. With an
// explicit provider the named section must be present. Without one, exactly
// one section must be present in the file; a file carrying both [s3] and
// [gcs] requires the caller to choose.
func (c *Config) Select(provider string) (Provider, Section, error) {
	switch Provider(strings.ToLower(provider)) {
	case ProviderS3:
		if c.S3 == nil {
			return "", nil, common.NewConfigError(c.Path, errors.New("section [s3] not found"))
		}
		return ProviderS3, c.S3, nil
	case ProviderGCS:
		if c.GCS == nil {
			return "", nil, common.NewConfigError(c.Path, errors.New("section [gcs] not found"))
		}
		return ProviderGCS, c.GCS, nil
	case "":
	default:
		return "", nil, common.NewConfigError(c.Path, fmt.Errorf("unknown provider %q (expected s3 or gcs)", provider))
	}

	switch {
	case c.S3 != nil && c.GCS != nil:
		return "", nil, common.NewConfigError(c.Path, errors.New("both [s3] and [gcs] sections present, select one with --provider"))
	case c.S3 != nil:
		return ProviderS3, c.S3, nil
	case c.GCS != nil:
		return ProviderGCS, c.GCS, nil
	default:
		return "", nil, common.NewConfigError(c.Path, errors.New("no [s3] or [gcs] section found"))
	}
}

// ParseExtensions splits a comma-separated extension list into a set.
// Entries are trimmed, lowercased and stripped of a leading dot; empty
// entries are dropped. An empty value yields an empty set, which matches
// no files.
func ParseExtensions(raw string) map[string]struct{} {
	exts := make(map[string]struct{})

	for _, part := range strings.Split(raw, ",") {
		ext := strings.ToLower(strings.TrimSpace(part))
		ext = strings.TrimPrefix(ext, ".")
		if ext == "" {
			continue
		}
		exts[ext] = struct{}{}
	}

	return exts
}
