package config

import (
	"errors"
	"time"
)

// Receiver defines configuration for the receiver process
type Receiver struct {
	RedirectorAddress string
	Directory         string
	Timeout           time.Duration
	ChunkSize         int
	SyncWrites        bool
}

type receiverFile struct {
	RedirectorAddress string       `yaml:"redirector_address"`
	Directory         string       `yaml:"directory"`
	Timeout           yamlDuration `yaml:"timeout"`
	ChunkSize         int          `yaml:"chunk_size"`
	SyncWrites        bool         `yaml:"sync_writes"`
}

func DefaultReceiver() Receiver {
	return Receiver{
		Directory: "./",
		ChunkSize: DefaultChunkSize,
	}
}

// LoadReceiverFile loads the YAML file over the defaults
func LoadReceiverFile(path string) (Receiver, error) {
	var f receiverFile
	if err := readFile(path, &f); err != nil {
		return Receiver{}, err
	}

	return DefaultReceiver().Merge(Receiver{
		RedirectorAddress: f.RedirectorAddress,
		Directory:         f.Directory,
		Timeout:           f.Timeout.Duration,
		ChunkSize:         f.ChunkSize,
		SyncWrites:        f.SyncWrites,
	}), nil
}

// LoadFromEnv reads REDIRECTOR_ADDRESS, TARGET_PATH, IO_TIMEOUT, CHUNK_SIZE and SYNC_WRITES
func (c *Receiver) LoadFromEnv() error {
	envString("REDIRECTOR_ADDRESS", &c.RedirectorAddress)
	envString("TARGET_PATH", &c.Directory)

	if err := envDuration("IO_TIMEOUT", &c.Timeout); err != nil {
		return err
	}
	if err := envInt("CHUNK_SIZE", &c.ChunkSize); err != nil {
		return err
	}
	return envBool("SYNC_WRITES", &c.SyncWrites)
}

// Merge merges override values into c, zero values in override are ignored
func (c Receiver) Merge(override Receiver) Receiver {
	if len(override.RedirectorAddress) > 0 {
		c.RedirectorAddress = override.RedirectorAddress
	}
	if len(override.Directory) > 0 {
		c.Directory = override.Directory
	}
	if override.Timeout != 0 {
		c.Timeout = override.Timeout
	}
	if override.ChunkSize != 0 {
		c.ChunkSize = override.ChunkSize
	}
	if override.SyncWrites {
		c.SyncWrites = override.SyncWrites
	}
	return c
}

func (c *Receiver) Validate() error {
	if len(c.RedirectorAddress) == 0 {
		return errors.New("config: redirector address is required")
	}
	c.RedirectorAddress = NormalizeAddress(c.RedirectorAddress)
	if len(c.Directory) == 0 {
		return errors.New("config: directory is required")
	}
	if c.Timeout < 0 {
		return errors.New("config: timeout can not be negative")
	}
	if c.ChunkSize <= 0 {
		return errors.New("config: chunk size must be positive")
	}
	return nil
}
