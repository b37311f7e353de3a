package metrics

// Metric names
const (
	MetricNameHTTPRequestsTotal   = "habitbot_http_requests_total"
	MetricNameHTTPRequestDuration = "habitbot_http_request_duration_seconds"

	MetricNameCommandsProcessed = "habitbot_commands_processed_total"
	MetricNameXPGranted         = "habitbot_xp_granted_total"
	MetricNameActivitiesLogged  = "habitbot_activities_logged_total"
	MetricNameStoreErrors       = "habitbot_store_errors_total"

	MetricNameVoiceSessionsOpened  = "habitbot_voice_sessions_opened_total"
	MetricNameVoiceSessionsClosed  = "habitbot_voice_sessions_closed_total"
	MetricNameVoiceSessionsDropped = "habitbot_voice_sessions_dropped_total"

	MetricNameNicknameRewrites = "habitbot_nickname_rewrites_total"
)

// Help texts
const (
	HelpTextHTTPRequestsTotal   = "Total number of HTTP requests processed"
	HelpTextHTTPRequestDuration = "HTTP request latency in seconds"

	HelpTextCommandsProcessed = "Total number of commands processed, by command name"
	HelpTextXPGranted         = "Total XP granted, by stat"
	HelpTextActivitiesLogged  = "Total activity log events recorded, by activity"
	HelpTextStoreErrors       = "Total storage-layer faults observed"

	HelpTextVoiceSessionsOpened  = "Voice sessions opened in tracked channels"
	HelpTextVoiceSessionsClosed  = "Voice sessions closed with at least one credited minute"
	HelpTextVoiceSessionsDropped = "Voice sessions closed under one minute and dropped"

	HelpTextNicknameRewrites = "Nickname rewrite attempts, by outcome"
)

// Label names
const (
	LabelMethod   = "method"
	LabelPath     = "path"
	LabelStatus   = "status"
	LabelCommand  = "command"
	LabelStat     = "stat"
	LabelActivity = "activity"
	LabelOutcome  = "outcome"
)

// HTTPLatencyBuckets covers the expected latency range of storage-backed
// request handling.
var HTTPLatencyBuckets = []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5}
