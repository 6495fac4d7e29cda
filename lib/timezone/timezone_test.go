package timezone

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLocation(t *testing.T) {
	instant := time.Date(2024, time.July, 1, 12, 0, 0, 0, time.UTC)
	name, offset := instant.In(Location).Zone()
	require.Equal(t, "EEST", name)
	require.Equal(t, 3*60*60, offset)

	winter := time.Date(2024, time.January, 1, 12, 0, 0, 0, time.UTC)
	name, offset = winter.In(Location).Zone()
	require.Equal(t, "EET", name)
	require.Equal(t, 2*60*60, offset)
}
