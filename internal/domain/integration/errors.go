package integration

import "errors"

// Client errors. Auth failures are permanent and abort a sync run;
// transient failures have already been retried by the client before
// they surface here.
var (
	ErrAuthFailed      = errors.New("integration: authentication with remote platform failed")
	ErrRateLimited     = errors.New("integration: remote platform rate limit exhausted")
	ErrUnavailable     = errors.New("integration: remote platform unavailable")
	ErrInvalidResponse = errors.New("integration: remote platform returned an unparseable response")
)
