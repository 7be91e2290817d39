package detector

import "errors"

var (
	// ErrSettingsUnavailable is returned when the runtime alert settings
	// cannot be loaded; the invocation is abandoned, the next tick retries.
	ErrSettingsUnavailable = errors.New("alert settings unavailable")
)
