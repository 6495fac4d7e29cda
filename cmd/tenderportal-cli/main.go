package main

import (
	"tenderportal-backend/cmd/tenderportal-cli/commands"
	"tenderportal-backend/lib/telemetry"
	"tenderportal-backend/lib/util/serviceutil"
)

func main() {
	ctx := serviceutil.SignalContext()

	telemetry.SetupFromEnv(ctx, "tenderportal-cli")
	telemetry.InitSlog(true)
	telemetry.InstrumentPerfStats(ctx)

	commands.ExecuteContext(ctx)
}
