package worker

import "time"

// DefaultSweepInterval is how often the deadline worker scans for overdue
// rounds, independent of precisely armed timers
const DefaultSweepInterval = time.Minute

// Pool defaults
const (
	DefaultPoolWorkers   = 4
	DefaultPoolQueueSize = 64
)

// Log messages
const (
	LogMsgWorkerJobFailed = "Worker job failed"

	LogMsgDeadlineScheduled   = "Scheduled round deadline"
	LogMsgDeadlineFired       = "Round deadline fired"
	LogMsgDeadlineAdvanceFail = "Deadline-triggered advance failed"
	LogMsgSweepFailed         = "Deadline sweep failed"
)
