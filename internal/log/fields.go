package log

import "sort"

// Field names shared by every component.
const (
	FieldComponent  = "component"
	FieldRequestID  = "request_id"
	FieldClientIP   = "client_ip"
	FieldMethod     = "method"
	FieldPath       = "path"
	FieldQuery      = "query"
	FieldStatusCode = "status_code"
	FieldDuration   = "duration_ms"
	FieldUserAgent  = "user_agent"
	FieldReferer    = "referer"
	FieldError      = "error"
	FieldOperation  = "operation"
	FieldLedgerKey  = "ledger_key"
	FieldEntryID    = "entry_id"
	FieldEntryDesc  = "entry_description"
	FieldCategory   = "category"
	FieldAmount     = "amount"
	FieldSource     = "source"
	FieldModel      = "model"
	FieldEvent      = "event"
	FieldSheetsRef  = "sheets_ref"
)

const (
	ComponentApp       = "app"
	ComponentHTTP      = "http"
	ComponentLedger    = "ledger"
	ComponentCatalog   = "catalog"
	ComponentChat      = "chat"
	ComponentStorage   = "storage"
	ComponentAMQP      = "amqp"
	ComponentWorker    = "worker"
	ComponentSheets    = "sheets"
	ComponentCache     = "cache"
	ComponentSecurity  = "security"
	ComponentRateLimit = "rate_limit"
	ComponentTrace     = "trace"
	ComponentBackend   = "backend"
	ComponentTemplate  = "template"
)

const (
	OpCreate  = "create"
	OpDelete  = "delete"
	OpPublish = "publish"
	OpAsk     = "ask"
	OpRender  = "render"
)

// Values for the error_type field.
const (
	ErrorTypeValidation    = "validation_error"
	ErrorTypeConfiguration = "configuration_error"
	ErrorTypeDatabase      = "database_error"
	ErrorTypeUpstream      = "upstream_error"
)

// LogFields collects attributes for one record. Builders return the same
// map so calls chain.
type LogFields map[string]any

func NewFields() LogFields {
	return make(LogFields)
}

func (f LogFields) WithComponent(component string) LogFields {
	f[FieldComponent] = component
	return f
}

func (f LogFields) WithClientIP(ip string) LogFields {
	f[FieldClientIP] = ip
	return f
}

// WithError records err's message; a nil error adds nothing.
func (f LogFields) WithError(err error) LogFields {
	if err != nil {
		f[FieldError] = err.Error()
	}
	return f
}

func (f LogFields) WithOperation(op string) LogFields {
	f[FieldOperation] = op
	return f
}

// WithEntry describes a ledger entry.
func (f LogFields) WithEntry(id, desc, category string, amount float64) LogFields {
	f[FieldEntryID] = id
	f[FieldEntryDesc] = desc
	f[FieldCategory] = category
	f[FieldAmount] = amount
	return f
}

// WithHTTPRequest adds the request line. Empty query, user agent and
// referer are left out.
func (f LogFields) WithHTTPRequest(r requestLine) LogFields {
	f[FieldMethod] = r.method
	f[FieldPath] = r.path
	for k, v := range map[string]string{FieldQuery: r.query, FieldUserAgent: r.userAgent, FieldReferer: r.referer} {
		if v != "" {
			f[k] = v
		}
	}
	return f
}

func (f LogFields) WithHTTPResponse(statusCode int, durationMs int64) LogFields {
	f[FieldStatusCode] = statusCode
	f[FieldDuration] = durationMs
	return f
}

// ToSlice flattens the fields into slog key/value pairs ordered by key, so
// records with the same fields always print the same way.
func (f LogFields) ToSlice() []any {
	keys := make([]string, 0, len(f))
	for k := range f {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]any, 0, len(f)*2)
	for _, k := range keys {
		out = append(out, k, f[k])
	}
	return out
}
