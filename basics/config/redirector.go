package config

import (
	"errors"
	"fmt"
	"net/url"
	"time"
)

// Redirector defines configuration for the redirector process
type Redirector struct {
	SourceURL     string
	BindAddress   string
	StatusAddress string
	Timeout       time.Duration
	ChunkSize     int
}

type redirectorFile struct {
	SourceURL     string       `yaml:"source_url"`
	BindAddress   string       `yaml:"bind_address"`
	StatusAddress string       `yaml:"status_address"`
	Timeout       yamlDuration `yaml:"timeout"`
	ChunkSize     int          `yaml:"chunk_size"`
}

func DefaultRedirector() Redirector {
	return Redirector{
		BindAddress: fmt.Sprintf("0.0.0.0:%s", DefaultPort),
		ChunkSize:   DefaultChunkSize,
	}
}

// LoadRedirectorFile loads the YAML file over the defaults
func LoadRedirectorFile(path string) (Redirector, error) {
	var f redirectorFile
	if err := readFile(path, &f); err != nil {
		return Redirector{}, err
	}

	return DefaultRedirector().Merge(Redirector{
		SourceURL:     f.SourceURL,
		BindAddress:   f.BindAddress,
		StatusAddress: f.StatusAddress,
		Timeout:       f.Timeout.Duration,
		ChunkSize:     f.ChunkSize,
	}), nil
}

// LoadFromEnv reads SOURCE_URL, BIND_ADDRESS, STATUS_BIND_ADDRESS, IO_TIMEOUT and CHUNK_SIZE
func (c *Redirector) LoadFromEnv() error {
	envString("SOURCE_URL", &c.SourceURL)
	envString("BIND_ADDRESS", &c.BindAddress)
	envString("STATUS_BIND_ADDRESS", &c.StatusAddress)

	if err := envDuration("IO_TIMEOUT", &c.Timeout); err != nil {
		return err
	}
	return envInt("CHUNK_SIZE", &c.ChunkSize)
}

// Merge merges override values into c, zero values in override are ignored
func (c Redirector) Merge(override Redirector) Redirector {
	if len(override.SourceURL) > 0 {
		c.SourceURL = override.SourceURL
	}
	if len(override.BindAddress) > 0 {
		c.BindAddress = override.BindAddress
	}
	if len(override.StatusAddress) > 0 {
		c.StatusAddress = override.StatusAddress
	}
	if override.Timeout != 0 {
		c.Timeout = override.Timeout
	}
	if override.ChunkSize != 0 {
		c.ChunkSize = override.ChunkSize
	}
	return c
}

func (c *Redirector) Validate() error {
	if len(c.SourceURL) == 0 {
		return errors.New("config: source url is required")
	}
	u, err := url.Parse(c.SourceURL)
	if err != nil {
		return fmt.Errorf("config: source url is not valid: %w", err)
	}
	if len(u.Scheme) == 0 {
		return errors.New("config: source url should define a scheme")
	}
	if len(c.BindAddress) == 0 {
		return errors.New("config: bind address is required")
	}
	c.BindAddress = NormalizeAddress(c.BindAddress)
	if c.Timeout < 0 {
		return errors.New("config: timeout can not be negative")
	}
	if c.ChunkSize <= 0 {
		return errors.New("config: chunk size must be positive")
	}
	return nil
}
