package tenderportal

import (
	"tenderportal-backend/lib/restyutil"
	"tenderportal-backend/lib/telemetry"
)

var tracer = telemetry.Tracer("tenderportal.lib.scrapers.tenderportal")
var restyInstrumentOutput restyutil.InstrumentOutput

// SetRestyInstrumentOutput enables request/response dumps for clients
// created after the call. Debugging the redirect-only protocol is hopeless
// without them.
func SetRestyInstrumentOutput(out restyutil.InstrumentOutput) {
	restyInstrumentOutput = out
}
