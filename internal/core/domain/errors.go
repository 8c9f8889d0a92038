package domain

import "errors"

// Policy violations.
var (
	// ErrTenantNotActive ...
	ErrTenantNotActive = errors.New("tenant is not active")
	// ErrInvalidTenantID is thrown when the tenant id is the zero identity.
	ErrInvalidTenantID = errors.New("tenant id must not be the zero identity")
	// ErrInvalidFeeRate is thrown when a fee rate exceeds the 500 bps hard cap.
	ErrInvalidFeeRate = errors.New("fee rate must not exceed 500 basis points")
	// ErrTreasuryCannotBeAdmin ...
	ErrTreasuryCannotBeAdmin = errors.New("treasury and admin must be distinct identities")
	// ErrInvalidTreasury ...
	ErrInvalidTreasury = errors.New("treasury must not be the zero identity")
	// ErrInvalidAssetPolicy ...
	ErrInvalidAssetPolicy = errors.New("asset policy is of unknown type")
	// ErrAssetNotAllowed is thrown when the tenant policy rejects an asset.
	ErrAssetNotAllowed = errors.New("asset not allowed by tenant policy")
	// ErrAmountTooSmall ...
	ErrAmountTooSmall = errors.New("amount is below the tenant minimum transaction amount")
	// ErrAmountTooLarge ...
	ErrAmountTooLarge = errors.New("amount is above the tenant maximum transaction amount")
	// ErrInvalidAmount ...
	ErrInvalidAmount = errors.New("amount must be greater than zero")
	// ErrFeeExceedsAmount is thrown when the bounded fee would consume the
	// whole transfer.
	ErrFeeExceedsAmount = errors.New("fee must be lower than the transfer amount")
)

// Identity and binding violations.
var (
	// ErrInvalidPubKey ...
	ErrInvalidPubKey = errors.New("identity must be a 32-byte hex encoded public key")
	// ErrGuardianCannotBeOwner ...
	ErrGuardianCannotBeOwner = errors.New("guardian and owner must be distinct identities")
)

// State-consistency failures.
var (
	// ErrWalletClosed ...
	ErrWalletClosed = errors.New("wallet is closed")
	// ErrVaultNotActive is thrown by any fund movement against a vault
	// that is paused or closed.
	ErrVaultNotActive = errors.New("vault is not active")
	// ErrVaultNotPaused ...
	ErrVaultNotPaused = errors.New("vault is not paused")
	// ErrVaultClosed is thrown when attempting a transition on a vault in
	// its terminal state.
	ErrVaultClosed = errors.New("vault is closed")
	// ErrInsufficientFunds ...
	ErrInsufficientFunds = errors.New("insufficient funds in vault")
)

// Arithmetic failures. Overflow always surfaces, never wraps.
var (
	// ErrFeeCalculationOverflow ...
	ErrFeeCalculationOverflow = errors.New("overflow in fee calculation")
	// ErrCounterOverflow ...
	ErrCounterOverflow = errors.New("overflow in vault counter update")
)

// Repository lookups.
var (
	// ErrWalletNotFound ...
	ErrWalletNotFound = errors.New("wallet not found")
	// ErrWalletAlreadyExists ...
	ErrWalletAlreadyExists = errors.New("wallet already exists")
	// ErrTenantNotFound ...
	ErrTenantNotFound = errors.New("tenant config not found")
	// ErrTenantAlreadyExists ...
	ErrTenantAlreadyExists = errors.New("tenant config already exists")
	// ErrVaultNotFound ...
	ErrVaultNotFound = errors.New("vault not found")
	// ErrVaultAlreadyExists ...
	ErrVaultAlreadyExists = errors.New("vault already exists")
)
