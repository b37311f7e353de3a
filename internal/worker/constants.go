package worker

// Log Messages
const (
	LogMsgWorkerJobFailed = "Worker job failed"
)

// Pool sizing defaults
const (
	DefaultWorkers   = 2
	DefaultQueueSize = 64
)
