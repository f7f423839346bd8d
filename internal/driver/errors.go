package driver

import "errors"

// ErrVerificationFailed wraps a rejection from the injected classio.Verifier
// after a rewrite; it is fatal for the offending file only.
var ErrVerificationFailed = errors.New("driver: rewritten class failed verification")
