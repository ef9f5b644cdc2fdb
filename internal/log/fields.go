package log

// Common field names for structured logging
const (
	FieldComponent   = "component"
	FieldRequestID   = "request_id"
	FieldClientIP    = "client_ip"
	FieldMethod      = "method"
	FieldPath        = "path"
	FieldStatusCode  = "status_code"
	FieldDuration    = "duration_ms"
	FieldError       = "error"
	FieldOperation   = "operation"
	FieldCollection  = "collection"
	FieldTxID        = "transaction_id"
	FieldKind        = "kind"
	FieldAmount      = "amount"
	FieldCategory    = "category"
	FieldRangeMode   = "range"
	FieldCurrency    = "currency"
	FieldBackend     = "backend"
	FieldQueue       = "queue"
	FieldExchange    = "exchange"
	FieldSheetsRef   = "sheets_ref"
)

// Components defines standard component names
const (
	ComponentApp     = "app"
	ComponentHTTP    = "http"
	ComponentLedger  = "ledger"
	ComponentStorage = "storage"
	ComponentAMQP    = "amqp"
	ComponentWorker  = "worker"
	ComponentSheets  = "sheets"
	ComponentRates   = "rates"
)
