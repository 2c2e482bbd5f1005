package common

import (
	"fmt"
	"math"
	"math/bits"
	"strconv"
	"time"
)

// TotalSize saturates at math.MaxUint64 and applies the floor of 1
func TotalSize(offset uint64, remaining uint64) uint64 {
	if remaining > math.MaxUint64-offset {
		return math.MaxUint64
	}
	total := offset + remaining
	if total == 0 {
		return 1
	}
	return total
}

func Percentage(transferred uint64, total uint64) uint64 {
	if total == 0 {
		total = 1
	}
	hi, lo := bits.Mul64(transferred, 100)
	if hi >= total {
		return math.MaxUint64
	}
	quotient, _ := bits.Div64(hi, lo, total)
	return quotient
}

// Throughput is bytes per second over the elapsed duration
func Throughput(bytes uint64, elapsed time.Duration) uint64 {
	seconds := elapsed.Seconds()
	if seconds <= 0 {
		return 0
	}
	return uint64(float64(bytes) / seconds)
}

func SizeToString(size uint64) string {
	calculatedSize := size
	divideCount := 0
	for {
		calculatedSizeString := strconv.FormatUint(calculatedSize, 10)
		if len(calculatedSizeString) < 6 {
			break
		}
		calculatedSize /= 1024
		divideCount++
	}

	switch divideCount {
	case 0:
		return fmt.Sprintf("%sb", strconv.FormatUint(calculatedSize, 10))
	case 1:
		return fmt.Sprintf("%skb", strconv.FormatUint(calculatedSize, 10))
	case 2:
		return fmt.Sprintf("%smb", strconv.FormatUint(calculatedSize, 10))
	case 3:
		return fmt.Sprintf("%sgb", strconv.FormatUint(calculatedSize, 10))
	case 4:
		return fmt.Sprintf("%stb", strconv.FormatUint(calculatedSize, 10))
	case 5:
		return fmt.Sprintf("%spb", strconv.FormatUint(calculatedSize, 10))
	}

	return "N/A"
}
