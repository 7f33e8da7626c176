package main

import (
	"fmt"
	"os"

	"github.com/btcsuite/btclog"
	"github.com/vulpemventures/go-elements-fun/contract"
	"github.com/vulpemventures/go-elements-fun/issuance"
	"github.com/vulpemventures/go-elements-fun/slip77"
)

var (
	backendLog = btclog.NewBackend(os.Stderr)

	log       = backendLog.Logger("MAIN")
	cntrLog   = backendLog.Logger("CNTR")
	issnLog   = backendLog.Logger("ISSN")
	slip77Log = backendLog.Logger("SL77")

	subsystemLoggers = map[string]btclog.Logger{
		"MAIN": log,
		"CNTR": cntrLog,
		"ISSN": issnLog,
		"SL77": slip77Log,
	}
)

func init() {
	contract.UseLogger(cntrLog)
	issuance.UseLogger(issnLog)
	slip77.UseLogger(slip77Log)
}

// setLogLevels sets the level of every subsystem logger.
func setLogLevels(debugLevel string) error {
	level, ok := btclog.LevelFromString(debugLevel)
	if !ok {
		return fmt.Errorf("invalid debug level %q", debugLevel)
	}
	for _, logger := range subsystemLoggers {
		logger.SetLevel(level)
	}
	return nil
}
