package application

import (
	"context"

	log "github.com/sirupsen/logrus"

	"github.com/custodia-network/custodia-daemon/internal/core/domain"
	"github.com/custodia-network/custodia-daemon/internal/core/ports"
	"github.com/custodia-network/custodia-daemon/pkg/derivation"
	"github.com/custodia-network/custodia-daemon/pkg/mathutil"
)

// VaultService exposes the lifecycle of custodial vaults: creation,
// deposits, withdrawals and status transitions. All guardian-gated
// operations re-validate the wallet binding at call time.
type VaultService interface {
	InitVault(ctx context.Context, req InitVaultReq) (*VaultInfo, error)
	Deposit(ctx context.Context, req DepositReq) (*TransferInfo, error)
	Withdraw(ctx context.Context, req WithdrawReq) (*TransferInfo, error)
	PauseVault(ctx context.Context, req VaultStatusReq) error
	ResumeVault(ctx context.Context, req VaultStatusReq) error
	CloseVault(ctx context.Context, req VaultStatusReq) error
	GetVault(ctx context.Context, address string) (*VaultInfo, error)
	ListVaultsForWallet(ctx context.Context, walletAddress string) ([]VaultInfo, error)
}

// InitVaultReq ...
type InitVaultReq struct {
	TenantID string
	Owner    string
	Asset    string
	Signers  Signers
}

// DepositReq ...
type DepositReq struct {
	TenantID string
	Owner    string
	Asset    string
	Amount   uint64
	Signers  Signers
}

// WithdrawReq ...
type WithdrawReq struct {
	TenantID  string
	Owner     string
	Asset     string
	Amount    uint64
	Recipient string
	Signers   Signers
}

// VaultStatusReq carries a pause, resume or close transition.
type VaultStatusReq struct {
	Owner   string
	Asset   string
	Signers Signers
}

type vaultService struct {
	repoManager ports.RepoManager
	ledger      ports.Ledger
	pubsub      ports.SecurePubSub
}

// NewVaultService ...
func NewVaultService(
	repoManager ports.RepoManager,
	ledger ports.Ledger,
	pubsub ports.SecurePubSub,
) VaultService {
	return &vaultService{
		repoManager: repoManager,
		ledger:      ledger,
		pubsub:      pubsub,
	}
}

// InitVault creates the vault record and its custodial token account.
// It requires the guardian co-signature.
func (s *vaultService) InitVault(
	ctx context.Context, req InitVaultReq,
) (*VaultInfo, error) {
	wallet, err := s.getWalletForOwner(ctx, req.Owner)
	if err != nil {
		return nil, err
	}
	if err := runChecks(
		walletBindingChecks(wallet, req.Owner, req.Signers, true)...,
	); err != nil {
		return nil, err
	}

	tenant, err := s.repoManager.TenantRepository().GetTenant(ctx, req.TenantID)
	if err != nil {
		return nil, err
	}
	if err := runChecks(tenantPolicyChecks(tenant, req.Asset)...); err != nil {
		return nil, err
	}

	vault, err := domain.NewVault(wallet.Address, req.Asset)
	if err != nil {
		return nil, err
	}

	if err := s.ledger.OpenAccount(ctx, vault.TokenAccount, req.Asset); err != nil {
		return nil, err
	}
	if err := s.repoManager.VaultRepository().AddVault(ctx, vault); err != nil {
		return nil, err
	}

	event := VaultInitializedEvent{
		ID:           newEventID(),
		Wallet:       wallet.Address,
		Vault:        vault.Address,
		Asset:        vault.Asset,
		TokenAccount: vault.TokenAccount,
		Owner:        wallet.Owner,
		Guardian:     wallet.Guardian,
		Timestamp:    eventTimestamp(),
	}
	s.publish(TopicVaultInitialized, serialize(event))

	return vaultInfo(vault, 0), nil
}

// Deposit moves funds from the owner's external account into custody.
// Only the owner signature is required.
func (s *vaultService) Deposit(
	ctx context.Context, req DepositReq,
) (*TransferInfo, error) {
	if req.Amount == 0 {
		return nil, domain.ErrInvalidAmount
	}

	wallet, err := s.getWalletForOwner(ctx, req.Owner)
	if err != nil {
		return nil, err
	}
	if err := runChecks(
		walletBindingChecks(wallet, req.Owner, req.Signers, false)...,
	); err != nil {
		return nil, err
	}

	tenant, err := s.repoManager.TenantRepository().GetTenant(ctx, req.TenantID)
	if err != nil {
		return nil, err
	}
	if err := runChecks(tenantPolicyChecks(tenant, req.Asset)...); err != nil {
		return nil, err
	}

	vaultAddress, err := s.vaultAddressFor(wallet.Address, req.Asset)
	if err != nil {
		return nil, err
	}

	var deposited *domain.Vault
	if err := s.repoManager.VaultRepository().UpdateVault(
		ctx, vaultAddress,
		func(v *domain.Vault) (*domain.Vault, error) {
			if err := v.CanTransact(); err != nil {
				return nil, err
			}
			// Fail on counter overflow before moving any funds.
			if _, err := mathutil.CheckedAdd(
				v.TotalDeposited, req.Amount,
			); err != nil {
				return nil, domain.ErrCounterOverflow
			}

			if err := s.ledger.Transfer(
				ctx, req.Owner, v.TokenAccount, req.Asset, req.Amount,
			); err != nil {
				return nil, err
			}
			if err := v.RecordDeposit(req.Amount); err != nil {
				return nil, err
			}
			deposited = v
			return v, nil
		},
	); err != nil {
		return nil, err
	}

	event := TokensDepositedEvent{
		ID:        newEventID(),
		Wallet:    wallet.Address,
		Vault:     deposited.Address,
		Asset:     deposited.Asset,
		Owner:     wallet.Owner,
		Amount:    req.Amount,
		Timestamp: eventTimestamp(),
	}
	s.publish(TopicTokensDeposited, serialize(event))

	return &TransferInfo{
		Vault:  deposited.Address,
		Asset:  deposited.Asset,
		Amount: req.Amount,
	}, nil
}

// Withdraw moves funds out of custody to the designated recipient. It
// requires both owner and guardian signatures, validates the tenant
// transaction limits and takes the tenant fee out of the withdrawn
// amount, paying it to the treasury.
func (s *vaultService) Withdraw(
	ctx context.Context, req WithdrawReq,
) (*TransferInfo, error) {
	if req.Amount == 0 {
		return nil, domain.ErrInvalidAmount
	}
	if !domain.IsValidPubKey(req.Recipient) || domain.IsZeroPubKey(req.Recipient) {
		return nil, ErrInvalidRecipient
	}

	wallet, err := s.getWalletForOwner(ctx, req.Owner)
	if err != nil {
		return nil, err
	}
	if err := runChecks(
		walletBindingChecks(wallet, req.Owner, req.Signers, true)...,
	); err != nil {
		return nil, err
	}

	tenant, err := s.repoManager.TenantRepository().GetTenant(ctx, req.TenantID)
	if err != nil {
		return nil, err
	}
	if err := runChecks(tenantPolicyChecks(tenant, req.Asset)...); err != nil {
		return nil, err
	}
	if err := tenant.ValidateTransactionLimits(req.Amount); err != nil {
		return nil, err
	}

	fee, err := tenant.CalculateFee(req.Amount)
	if err != nil {
		return nil, err
	}

	vaultAddress, err := s.vaultAddressFor(wallet.Address, req.Asset)
	if err != nil {
		return nil, err
	}

	var withdrawn *domain.Vault
	if err := s.repoManager.VaultRepository().UpdateVault(
		ctx, vaultAddress,
		func(v *domain.Vault) (*domain.Vault, error) {
			if err := v.CanTransact(); err != nil {
				return nil, err
			}

			balance, err := s.ledger.BalanceOf(ctx, v.TokenAccount, req.Asset)
			if err != nil {
				return nil, err
			}
			if balance < req.Amount {
				return nil, domain.ErrInsufficientFunds
			}
			// Fail on counter overflow before moving any funds.
			if _, err := mathutil.CheckedAdd(
				v.TotalWithdrawn, req.Amount,
			); err != nil {
				return nil, domain.ErrCounterOverflow
			}

			// Funds leave the token account here and only here, within
			// the same atomic update as the bookkeeping.
			legs := []ports.TransferLeg{{
				From:   v.TokenAccount,
				To:     req.Recipient,
				Asset:  req.Asset,
				Amount: req.Amount - fee,
			}}
			if fee > 0 {
				legs = append(legs, ports.TransferLeg{
					From:   v.TokenAccount,
					To:     tenant.Treasury,
					Asset:  req.Asset,
					Amount: fee,
				})
			}
			if err := s.ledger.TransferMany(ctx, legs...); err != nil {
				return nil, err
			}
			if err := v.RecordWithdrawal(req.Amount); err != nil {
				return nil, err
			}
			withdrawn = v
			return v, nil
		},
	); err != nil {
		return nil, err
	}

	event := TokensWithdrawnEvent{
		ID:        newEventID(),
		Wallet:    wallet.Address,
		Vault:     withdrawn.Address,
		Asset:     withdrawn.Asset,
		Owner:     wallet.Owner,
		Guardian:  wallet.Guardian,
		Recipient: req.Recipient,
		Amount:    req.Amount,
		Fee:       fee,
		Timestamp: eventTimestamp(),
	}
	s.publish(TopicTokensWithdrawn, serialize(event))

	return &TransferInfo{
		Vault:     withdrawn.Address,
		Asset:     withdrawn.Asset,
		Amount:    req.Amount,
		Fee:       fee,
		Recipient: req.Recipient,
	}, nil
}

func (s *vaultService) PauseVault(ctx context.Context, req VaultStatusReq) error {
	return s.changeVaultStatus(ctx, req, func(v *domain.Vault) error {
		return v.Pause()
	})
}

func (s *vaultService) ResumeVault(ctx context.Context, req VaultStatusReq) error {
	return s.changeVaultStatus(ctx, req, func(v *domain.Vault) error {
		return v.Resume()
	})
}

func (s *vaultService) CloseVault(ctx context.Context, req VaultStatusReq) error {
	return s.changeVaultStatus(ctx, req, func(v *domain.Vault) error {
		return v.Close()
	})
}

func (s *vaultService) GetVault(
	ctx context.Context, address string,
) (*VaultInfo, error) {
	vault, err := s.repoManager.VaultRepository().GetVault(ctx, address)
	if err != nil {
		return nil, err
	}
	balance, err := s.ledger.BalanceOf(ctx, vault.TokenAccount, vault.Asset)
	if err != nil {
		return nil, err
	}
	return vaultInfo(vault, balance), nil
}

func (s *vaultService) ListVaultsForWallet(
	ctx context.Context, walletAddress string,
) ([]VaultInfo, error) {
	vaults, err := s.repoManager.VaultRepository().GetVaultsForWallet(
		ctx, walletAddress,
	)
	if err != nil {
		return nil, err
	}
	infos := make([]VaultInfo, 0, len(vaults))
	for i := range vaults {
		balance, err := s.ledger.BalanceOf(
			ctx, vaults[i].TokenAccount, vaults[i].Asset,
		)
		if err != nil {
			return nil, err
		}
		infos = append(infos, *vaultInfo(&vaults[i], balance))
	}
	return infos, nil
}

// changeVaultStatus applies a pause/resume/close transition, gated by
// the same owner+guardian binding as withdrawals.
func (s *vaultService) changeVaultStatus(
	ctx context.Context, req VaultStatusReq,
	transition func(v *domain.Vault) error,
) error {
	wallet, err := s.getWalletForOwner(ctx, req.Owner)
	if err != nil {
		return err
	}
	if err := runChecks(
		walletBindingChecks(wallet, req.Owner, req.Signers, true)...,
	); err != nil {
		return err
	}

	vaultAddress, err := s.vaultAddressFor(wallet.Address, req.Asset)
	if err != nil {
		return err
	}

	var changed *domain.Vault
	if err := s.repoManager.VaultRepository().UpdateVault(
		ctx, vaultAddress,
		func(v *domain.Vault) (*domain.Vault, error) {
			if err := transition(v); err != nil {
				return nil, err
			}
			changed = v
			return v, nil
		},
	); err != nil {
		return err
	}

	event := VaultStatusChangedEvent{
		ID:        newEventID(),
		Wallet:    wallet.Address,
		Vault:     changed.Address,
		Status:    vaultStatusString(changed.Status),
		Timestamp: eventTimestamp(),
	}
	s.publish(TopicVaultStatusChanged, serialize(event))
	return nil
}

func (s *vaultService) getWalletForOwner(
	ctx context.Context, owner string,
) (*domain.Wallet, error) {
	if !domain.IsValidPubKey(owner) {
		return nil, domain.ErrInvalidPubKey
	}
	walletAddress, _, err := derivation.Derive(
		derivation.WalletNamespace, domain.PubKeyBytes(owner),
	)
	if err != nil {
		return nil, err
	}
	return s.repoManager.WalletRepository().GetWallet(ctx, walletAddress)
}

func (s *vaultService) vaultAddressFor(
	walletAddress, asset string,
) (string, error) {
	address, _, err := derivation.Derive(
		derivation.VaultNamespace,
		domain.PubKeyBytes(walletAddress), domain.PubKeyBytes(asset),
	)
	return address, err
}

func (s *vaultService) publish(topic, message string) {
	if err := s.pubsub.Publish(topic, message); err != nil {
		log.WithError(err).WithField("topic", topic).Warn(
			"failed to publish event",
		)
	}
}
