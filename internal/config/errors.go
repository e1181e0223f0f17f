package config

import "errors"

var (
	ErrRedisAddrMissing       = errors.New("REDIS_ADDR is required")
	ErrInvalidRedisDB         = errors.New("REDIS_DB must be a valid integer")
	ErrInvalidTimeZone        = errors.New("ASSISTANT_TIMEZONE must be a valid IANA zone")
	ErrAPITokenMissing        = errors.New("ASSISTANT_API_TOKEN is required")
	ErrWorkspaceTokenMissing  = errors.New("WORKSPACE_API_TOKEN is required")
	ErrWorkspaceDBMissing     = errors.New("WORKSPACE_DATABASE_ID is required")
	ErrSheetsCredentialsUnset = errors.New("GOOGLE_CREDENTIALS_FILE is required when SHEETS_SPREADSHEET_ID is set")
)
