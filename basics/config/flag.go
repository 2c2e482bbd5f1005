package config

import (
	"fmt"
	"time"
)

// DurationFlag is a flag.Value that rejects negative durations
type DurationFlag struct {
	time.Duration
}

func (d *DurationFlag) String() string {
	if d == nil {
		return ""
	}
	return d.Duration.String()
}

func (d *DurationFlag) Set(value string) error {
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return fmt.Errorf("duration is not valid")
	}
	if parsed < 0 {
		return fmt.Errorf("duration can not be negative")
	}
	d.Duration = parsed
	return nil
}
