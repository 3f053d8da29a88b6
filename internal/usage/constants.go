package usage

import "time"

// writeTimeout bounds each async ledger write
const writeTimeout = 5 * time.Second

// Log messages
const (
	LogMsgFailedToRecordInvocation = "Failed to record collaborator invocation"
	LogMsgShuttingDownLedger       = "Shutting down usage ledger"
	LogMsgLedgerShutdownDone       = "Usage ledger shutdown complete"
	LogMsgLedgerShutdownForced     = "Usage ledger shutdown timeout, some writes may be lost"
)
