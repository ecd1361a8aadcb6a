package importer

import (
	"context"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"

	"github.com/simaogato/cryptoledger-backend/internal/domain"
)

// ImportService handles movement imports
type ImportService struct {
	WalletRepo     domain.WalletRepository
	AssetRepo      domain.AssetRepository
	FiatRepo       domain.FiatCurrencyRepository
	MovementRepo   domain.MovementRepository
	RunningBalance bool
	Logger         logrus.FieldLogger
}

// NewImportService creates a new ImportService instance.
// A nil logger discards output.
func NewImportService(
	walletRepo domain.WalletRepository,
	assetRepo domain.AssetRepository,
	fiatRepo domain.FiatCurrencyRepository,
	movementRepo domain.MovementRepository,
	runningBalance bool,
	logger logrus.FieldLogger,
) *ImportService {
	if logger == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		logger = l
	}
	return &ImportService{
		WalletRepo:     walletRepo,
		AssetRepo:      assetRepo,
		FiatRepo:       fiatRepo,
		MovementRepo:   movementRepo,
		RunningBalance: runningBalance,
		Logger:         logger,
	}
}

// NewParser snapshots the catalog and the stored movements for one batch
func (s *ImportService) NewParser(ctx context.Context) (*Parser, error) {
	wallets, err := s.WalletRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list wallets: %w", err)
	}
	assets, err := s.AssetRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list assets: %w", err)
	}
	fiats, err := s.FiatRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list fiat currencies: %w", err)
	}
	movements, err := s.MovementRepo.List(ctx, domain.MovementFilter{})
	if err != nil {
		return nil, fmt.Errorf("failed to list movements: %w", err)
	}
	return &Parser{
		Catalog:        NewCatalog(wallets, assets, fiats),
		Ledger:         domain.NewLedger(movements),
		RunningBalance: s.RunningBalance,
	}, nil
}

// Preview parses a file without storing anything
func (s *ImportService) Preview(ctx context.Context, kind domain.MovementKind, src Source) ([]domain.Movement, error) {
	parser, err := s.NewParser(ctx)
	if err != nil {
		return nil, err
	}
	return parser.Parse(kind, src)
}

// Import parses a file and, only if every row is valid, stores all of its
// movements in one atomic batch
// Logic:
//  1. Snapshot wallets, assets, fiat currencies and stored movements
//  2. Validate headers, then each row in file order; the first failure aborts
//  3. Insert the parsed movements in original row order
func (s *ImportService) Import(ctx context.Context, kind domain.MovementKind, src Source) ([]domain.Movement, error) {
	log := s.Logger.WithField("kind", kind)

	movements, err := s.Preview(ctx, kind, src)
	if err != nil {
		log.WithError(err).Warn("import rejected")
		return nil, err
	}
	if len(movements) == 0 {
		log.Info("import file has no rows")
		return movements, nil
	}

	if err := s.MovementRepo.CreateBatch(ctx, movements); err != nil {
		return nil, fmt.Errorf("failed to store imported movements: %w", err)
	}

	log.WithField("rows", len(movements)).Info("import stored")
	return movements, nil
}
