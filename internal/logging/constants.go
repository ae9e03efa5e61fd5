package logging

// Field names shared by every component so log output can be filtered
// consistently.
const (
	FieldQuery      = "query"
	FieldRequestID  = "request_id"
	FieldNodeKind   = "node_kind"
	FieldOperator   = "operator"
	FieldValue      = "value"
	FieldEntity     = "entity"
	FieldClass      = "class"
	FieldCount      = "count"
	FieldLimit      = "limit"
	FieldBackend    = "backend"
	FieldFile       = "file_path"
	FieldError      = "error"
	FieldDuration   = "duration_ms"
	FieldInputFile  = "input_file"
	FieldOutputFile = "output_file"
)
