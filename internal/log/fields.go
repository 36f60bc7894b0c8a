package log

// Common field names for structured logging
const (
	FieldComponent  = "component"
	FieldRequestID  = "request_id"
	FieldClientIP   = "client_ip"
	FieldMethod     = "method"
	FieldPath       = "path"
	FieldStatusCode = "status_code"
	FieldDuration   = "duration_ms"
	FieldError      = "error"
	FieldOperation  = "operation"
	FieldStoreKey   = "store_key"
	FieldRecordID   = "record_id"
	FieldAmount     = "amount"
	FieldCategory   = "category"
	FieldMonth      = "month"
	FieldCount      = "count"
)

// Components defines standard component names
const (
	ComponentApp       = "app"
	ComponentHTTP      = "http"
	ComponentStore     = "store"
	ComponentKV        = "kv"
	ComponentEvents    = "events"
	ComponentWorker    = "worker"
	ComponentExport    = "export"
	ComponentAnalytics = "analytics"
)

// Operations defines standard operation names
const (
	OpLoad     = "load"
	OpPersist  = "persist"
	OpAdd      = "add"
	OpDelete   = "delete"
	OpUpdate   = "update"
	OpPublish  = "publish"
	OpConsume  = "consume"
	OpExport   = "export"
	OpStartup  = "startup"
	OpShutdown = "shutdown"
)
