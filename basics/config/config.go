package config

import (
	"fmt"
	"os"
	"regexp"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	DefaultPort      = "4444"
	DefaultChunkSize = 1024 * 1024 // 1mb
)

var portPattern = regexp.MustCompile(`:\d{1,5}$`)

// LoadDotEnv loads .env from the working directory when it exists
func LoadDotEnv() {
	_ = godotenv.Load()
}

// NormalizeAddress appends the default port when the address does not define one
func NormalizeAddress(address string) string {
	if portPattern.MatchString(address) {
		return address
	}
	return fmt.Sprintf("%s:%s", address, DefaultPort)
}

func readFile(path string, out interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, out); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}

func envDuration(name string, target *time.Duration) error {
	v := os.Getenv(name)
	if len(v) == 0 {
		return nil
	}

	d, err := time.ParseDuration(v)
	if err != nil {
		return fmt.Errorf("parse %s: %w", name, err)
	}
	*target = d
	return nil
}

func envInt(name string, target *int) error {
	v := os.Getenv(name)
	if len(v) == 0 {
		return nil
	}

	n, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("parse %s: %w", name, err)
	}
	*target = n
	return nil
}

func envBool(name string, target *bool) error {
	v := os.Getenv(name)
	if len(v) == 0 {
		return nil
	}

	b, err := strconv.ParseBool(v)
	if err != nil {
		return fmt.Errorf("parse %s: %w", name, err)
	}
	*target = b
	return nil
}

func envString(name string, target *string) {
	if v := os.Getenv(name); len(v) > 0 {
		*target = v
	}
}

// yamlDuration accepts Go duration strings in YAML files. Ex: 30s
type yamlDuration struct {
	time.Duration
}

func (d *yamlDuration) UnmarshalYAML(value *yaml.Node) error {
	if len(value.Value) == 0 {
		return nil
	}

	parsed, err := time.ParseDuration(value.Value)
	if err != nil {
		return err
	}
	d.Duration = parsed
	return nil
}
