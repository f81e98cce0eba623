package main

import (
	"context"
	"os"

	"github.com/codeman8806/thecharmedcardinal.com/cmd/cardinal-cli/commands"
	"github.com/codeman8806/thecharmedcardinal.com/lib/osutil"
	"github.com/codeman8806/thecharmedcardinal.com/lib/telemetry"
)

func main() {
	ctx := osutil.SignalContext()

	tel, err := telemetry.SetupFromEnv(ctx, "cardinal-cli")
	if err != nil && !os.IsNotExist(err) {
		osutil.Fatal("failed to setup telemetry", err)
	}
	defer tel.Shutdown(context.Background())
	telemetry.InstrumentPerfStats(ctx)

	commands.ExecuteContext(ctx)
}
