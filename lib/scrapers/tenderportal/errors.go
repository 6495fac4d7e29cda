package tenderportal

import "errors"

// The portal never signals failure through payloads, only through status
// codes, redirect targets and cookie presence. Every operation maps those
// signals onto this taxonomy; nothing is retried internally.
var (
	ErrInvalidSlug        = errors.New("no company is registered under this slug")
	ErrSessionAcquisition = errors.New("failed to acquire a browsing session")
	ErrBadSession         = errors.New("unexpected response, bad session?")
	ErrLoginFailed        = errors.New("login rejected, bad credentials?")
	ErrLanguageMismatch   = errors.New("portal silently refused the language change")
	ErrFlagParse          = errors.New("failed to decode a notice flag icon")
	ErrRequiredField      = errors.New("required field missing from markup")
	ErrNoTenderInProgress = errors.New("no tender is in progress for this company")
	ErrTenderRemoval      = errors.New("portal reported a tender removal failure")
)
