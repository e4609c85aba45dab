package derivative

import "errors"

var (
	ErrObjectNotFound = errors.New("storage: object not found")
	ErrBucketNotFound = errors.New("storage: bucket not found")
	ErrUnauthorized   = errors.New("storage: unauthorized")
	ErrInternal       = errors.New("storage: internal error")

	// ErrTranscoderUnavailable means the transcoding service binding is
	// missing. It stays loud on every message until operators fix the
	// configuration.
	ErrTranscoderUnavailable = errors.New("transcoder: service binding not configured")
)
