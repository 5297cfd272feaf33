package service

import (
	"context"
	"fmt"

	"github.com/shirou/gopsutil/v3/load"
	"github.com/shirou/gopsutil/v3/mem"

	"github.com/noah-isme/placement-analytics-api/internal/models"
)

// HostStats samples memory and load of the machine serving analytics.
func HostStats(ctx context.Context) (models.HostStats, error) {
	vmem, err := mem.VirtualMemoryWithContext(ctx)
	if err != nil {
		return models.HostStats{}, fmt.Errorf("read memory stats: %w", err)
	}
	stats := models.HostStats{
		MemoryTotalBytes:  vmem.Total,
		MemoryUsedBytes:   vmem.Used,
		MemoryUsedPercent: vmem.UsedPercent,
	}
	// load averages are unavailable on some platforms
	if avg, err := load.AvgWithContext(ctx); err == nil {
		stats.Load1, stats.Load5, stats.Load15 = avg.Load1, avg.Load5, avg.Load15
	}
	return stats, nil
}
