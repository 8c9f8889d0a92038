package application

import "errors"

// Authorization failures. Every one of these is raised before any state
// mutation or fund movement.
var (
	// ErrOwnerSignatureRequired ...
	ErrOwnerSignatureRequired = errors.New("missing owner signature")
	// ErrGuardianSignatureRequired is thrown by guardian-gated operations
	// when the co-signature of the guardian bound at wallet creation is
	// absent.
	ErrGuardianSignatureRequired = errors.New("missing guardian co-signature")
	// ErrAuthoritySignatureRequired ...
	ErrAuthoritySignatureRequired = errors.New("missing onboarding authority signature")
	// ErrAdminSignatureRequired ...
	ErrAdminSignatureRequired = errors.New("missing tenant admin signature")
	// ErrWalletMismatch is thrown when the wallet record does not match
	// the address re-derived from the claimed owner identity.
	ErrWalletMismatch = errors.New("wallet record does not match derived address")
	// ErrOwnerMismatch ...
	ErrOwnerMismatch = errors.New("stored owner does not match signing owner")
	// ErrInvalidRecipient ...
	ErrInvalidRecipient = errors.New("recipient must be a valid non-zero identity")
)
