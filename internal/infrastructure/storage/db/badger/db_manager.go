package dbbadger

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/custodia-network/custodia-daemon/internal/core/domain"
	"github.com/custodia-network/custodia-daemon/internal/core/ports"
	"github.com/dgraph-io/badger/v3"
	log "github.com/sirupsen/logrus"
	"github.com/timshannon/badgerhold/v4"
)

// DbManager holds all the badgerhold stores in a single data structure.
type DbManager struct {
	Store *badgerhold.Store
}

// NewDbManager opens (or creates if not exists) the badger store on disk.
// It expects a base data dir and an optional logger.
func NewDbManager(baseDbDir string, logger badger.Logger) (*DbManager, error) {
	mainDb, err := createDb(baseDbDir+"/vault", logger)
	if err != nil {
		return nil, fmt.Errorf("opening vault db: %w", err)
	}

	return &DbManager{
		Store: mainDb,
	}, nil
}

// JSONEncode is a custom JSON based encoder for badger
func JSONEncode(value interface{}) ([]byte, error) {
	var buff bytes.Buffer

	en := json.NewEncoder(&buff)

	err := en.Encode(value)
	if err != nil {
		return nil, err
	}

	return buff.Bytes(), nil
}

// JSONDecode is a custom JSON based decoder for badger
func JSONDecode(data []byte, value interface{}) error {
	var buff bytes.Buffer
	de := json.NewDecoder(&buff)

	_, err := buff.Write(data)
	if err != nil {
		return err
	}

	return de.Decode(value)
}

func createDb(dbDir string, logger badger.Logger) (db *badgerhold.Store, err error) {
	opts := badger.DefaultOptions(dbDir)
	opts.Logger = logger

	db, err = badgerhold.Open(badgerhold.Options{
		Encoder:          JSONEncode,
		Decoder:          JSONDecode,
		SequenceBandwith: 100,
		Options:          opts,
	})

	return
}

type repoManager struct {
	db *DbManager

	walletRepository domain.WalletRepository
	tenantRepository domain.TenantRepository
	vaultRepository  domain.VaultRepository
}

// NewRepoManager opens the badger store at the given data dir and returns
// a ports.RepoManager with all the repositories backed by it.
func NewRepoManager(baseDbDir string, logger badger.Logger) (ports.RepoManager, error) {
	db, err := NewDbManager(baseDbDir, logger)
	if err != nil {
		return nil, err
	}

	return &repoManager{
		db:               db,
		walletRepository: NewWalletRepositoryImpl(db),
		tenantRepository: NewTenantRepositoryImpl(db),
		vaultRepository:  NewVaultRepositoryImpl(db),
	}, nil
}

func (m *repoManager) WalletRepository() domain.WalletRepository {
	return m.walletRepository
}

func (m *repoManager) TenantRepository() domain.TenantRepository {
	return m.tenantRepository
}

func (m *repoManager) VaultRepository() domain.VaultRepository {
	return m.vaultRepository
}

func (m *repoManager) Close() {
	if err := m.db.Store.Close(); err != nil {
		log.WithError(err).Warn("an error occured while closing the db")
	}
}
