package errors

type Code string

const (
	CodeUnknown          Code = "UNKNOWN"
	CodeValidation       Code = "VALIDATION"
	CodeNotFound         Code = "NOT_FOUND"
	CodePermissionDenied Code = "PERMISSION_DENIED"
	CodeExternal         Code = "EXTERNAL"
	CodeInternal         Code = "INTERNAL"
)
