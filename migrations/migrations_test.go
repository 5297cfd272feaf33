package migrations

import (
	"errors"
	"io"
	"io/fs"
	"testing"

	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEveryMigrationHasUpAndDown(t *testing.T) {
	driver, err := iofs.New(FS, ".")
	require.NoError(t, err)
	defer driver.Close() //nolint:errcheck

	version, err := driver.First()
	require.NoError(t, err)

	var versions []uint
	for {
		versions = append(versions, version)

		up, _, err := driver.ReadUp(version)
		require.NoError(t, err, "version %d up", version)
		body, err := io.ReadAll(up)
		require.NoError(t, err)
		assert.NotEmpty(t, body)
		_ = up.Close()

		down, _, err := driver.ReadDown(version)
		require.NoError(t, err, "version %d down", version)
		_ = down.Close()

		next, err := driver.Next(version)
		if errors.Is(err, fs.ErrNotExist) {
			break
		}
		require.NoError(t, err)
		version = next
	}

	assert.Equal(t, []uint{1, 2}, versions)
}
