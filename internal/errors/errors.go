package errors

import "errors"

var (
	ErrAccountRequired     = errors.New("account name is required (set REPLICATE_USERNAME or --account)")
	ErrLoginTokenRequired  = errors.New("REPLICATE_CLI_AUTH_TOKEN environment variable is required")
	ErrAPITokenRequired    = errors.New("REPLICATE_API_TOKEN environment variable is required")
	ErrBinaryNotFound      = errors.New("cog binary not found")
	ErrInvalidTargetFormat = errors.New("invalid target format, expected registry/account/model")
)
