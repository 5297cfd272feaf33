package service

import (
	"context"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHostStats(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("host sampling is exercised on linux only")
	}
	stats, err := HostStats(context.Background())
	require.NoError(t, err)
	assert.NotZero(t, stats.MemoryTotalBytes)
	assert.LessOrEqual(t, stats.MemoryUsedBytes, stats.MemoryTotalBytes)
}
