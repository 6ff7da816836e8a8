package tracing

// Span attribute keys.
const (
	AttrSessionID     = "session.id"
	AttrDocumentPath  = "document.path"
	AttrDocumentLines = "document.lines"
	AttrDocumentBytes = "document.bytes"

	AttrSearchPattern      = "search.pattern"
	AttrSearchReplacements = "search.replacements"

	AttrStorePath = "store.path"
)

// Span names.
const (
	SpanSessionSave       = "session.save"
	SpanSessionReplaceAll = "session.replace_all"
	SpanDocumentLoad      = "document.load"
	SpanPositionRestore   = "position.restore"
	SpanPositionStore     = "position.store"
)

// DefaultServiceName identifies inkwell in exported traces.
const DefaultServiceName = "inkwell"
