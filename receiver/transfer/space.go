package transfer

import (
	"context"

	"github.com/shirou/gopsutil/v3/disk"
)

// freeSpace reports the available bytes of the volume holding dir
func freeSpace(ctx context.Context, dir string) (uint64, error) {
	usage, err := disk.UsageWithContext(ctx, dir)
	if err != nil {
		return 0, err
	}
	return usage.Free, nil
}
