package telemetry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

// a deferred Shutdown must be a no-op when setup was skipped because
// no telemetry.json5 was found
func TestShutdownWithoutSetup(t *testing.T) {
	require.NoError(t, Telemetry{}.Shutdown(context.Background()))
}
