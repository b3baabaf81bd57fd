package errcodes

type ErrorCode string

func (c ErrorCode) String() string {
	return string(c)
}

const (
	InternalServerError ErrorCode = "InternalServerError"
	ValidationError     ErrorCode = "ValidationError"
	NotFound            ErrorCode = "NotFound"

	InvalidUpload      ErrorCode = "InvalidUpload"      // file could not be decoded into deals
	UnsupportedUpload  ErrorCode = "UnsupportedUpload"  // neither JSON nor Excel
	InvalidMode        ErrorCode = "InvalidMode"        // unknown ranking / rate mode
	InvalidRollingMode ErrorCode = "InvalidRollingMode" // unknown rolling average mode
	BrokerNotFound     ErrorCode = "BrokerNotFound"
	DealsNotFound      ErrorCode = "DealsNotFound" // session has no uploaded deals
	StoreUnavailable   ErrorCode = "StoreUnavailable"
)
