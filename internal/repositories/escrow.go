package repositories

import (
	"context"
	"errors"
	"fmt"

	"challenz/internal/models"

	"gorm.io/gorm"
)

// ErrNotFound is returned when a lookup by id matches no row.
var ErrNotFound = errors.New("record not found")

// EscrowRepository reads business profiles and fee escrow rows. Ledger rows
// are returned newest first.
type EscrowRepository interface {
	ListBusinessProfiles(ctx context.Context) ([]models.BusinessProfile, error)
	GetBusinessProfile(ctx context.Context, id string) (*models.BusinessProfile, error)
	// ListLedgerEntries returns entries for the given merchants, or for every
	// merchant when none are given.
	ListLedgerEntries(ctx context.Context, merchantIDs ...string) ([]models.EscrowLedgerEntry, error)
}

type escrowRepository struct {
	db *gorm.DB
}

func NewEscrowRepository(db *gorm.DB) EscrowRepository {
	return &escrowRepository{
		db: db,
	}
}

func (r *escrowRepository) ListBusinessProfiles(ctx context.Context) ([]models.BusinessProfile, error) {
	var profiles []models.BusinessProfile
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&profiles).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list business users: %w", err)
	}
	return profiles, nil
}

func (r *escrowRepository) GetBusinessProfile(ctx context.Context, id string) (*models.BusinessProfile, error) {
	var profile models.BusinessProfile
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&profile).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get business user: %w", err)
	}
	return &profile, nil
}

func (r *escrowRepository) ListLedgerEntries(ctx context.Context, merchantIDs ...string) ([]models.EscrowLedgerEntry, error) {
	query := r.db.WithContext(ctx)
	if len(merchantIDs) > 0 {
		query = query.Where("merchant_id IN ?", merchantIDs)
	}

	var entries []models.EscrowLedgerEntry
	if err := query.Order("created_at DESC").Find(&entries).Error; err != nil {
		return nil, fmt.Errorf("failed to list escrow entries: %w", err)
	}
	return entries, nil
}
