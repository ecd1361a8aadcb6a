package movement

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/simaogato/cryptoledger-backend/internal/domain"
	"github.com/simaogato/cryptoledger-backend/internal/usecase/balance"
)

// ErrKindChanged is returned when an update tries to turn a movement into another kind
var ErrKindChanged = errors.New("movement kind cannot be changed")

// MovementService handles listing and editing stored movements
type MovementService struct {
	MovementRepo domain.MovementRepository
	Logger       logrus.FieldLogger
}

// NewMovementService creates a new MovementService instance
func NewMovementService(movementRepo domain.MovementRepository, logger logrus.FieldLogger) *MovementService {
	if logger == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		logger = l
	}
	return &MovementService{
		MovementRepo: movementRepo,
		Logger:       logger,
	}
}

// List returns the stored movements matching filter
func (s *MovementService) List(ctx context.Context, filter domain.MovementFilter) ([]domain.Movement, error) {
	return s.MovementRepo.List(ctx, filter)
}

// Update overwrites every field of a stored movement
// Logic:
//  1. Fetch the stored movement; the kind must not change
//  2. Validate the new values
//  3. For outflows, check funds against the ledger with the stored movement's own
//     contribution added back, so the edit is judged as if it replaced the original
//  4. Save using MovementRepo.Update
func (s *MovementService) Update(ctx context.Context, updated domain.Movement) error {
	stored, err := s.MovementRepo.GetByID(ctx, updated.MovementID())
	if err != nil {
		return err
	}
	if stored.Kind() != updated.Kind() {
		return ErrKindChanged
	}
	if err := updated.Validate(); err != nil {
		return err
	}

	if pos, requested, ok := balance.Outflow(updated); ok {
		movements, err := s.MovementRepo.List(ctx, domain.MovementFilter{WalletID: &pos.WalletID, AssetID: &pos.AssetID})
		if err != nil {
			return err
		}
		ledger := domain.NewLedger(movements)
		addBack := balance.AddBack(stored, pos.WalletID, pos.AssetID)
		available := balance.Available(ledger, pos.WalletID, pos.AssetID, addBack)
		if requested.GreaterThan(available) {
			return fmt.Errorf("%w: requested %s, available %s", domain.ErrInsufficientFunds, requested, available)
		}
	}

	if err := s.MovementRepo.Update(ctx, updated); err != nil {
		return err
	}
	s.Logger.WithFields(logrus.Fields{
		"movement": updated.MovementID(),
		"kind":     updated.Kind(),
	}).Info("movement updated")
	return nil
}

// Delete removes a stored movement
func (s *MovementService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.MovementRepo.GetByID(ctx, id); err != nil {
		return err
	}
	if err := s.MovementRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.Logger.WithField("movement", id).Info("movement deleted")
	return nil
}
