package escrow

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"challenz/internal/models"
	"challenz/internal/repositories"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// Fetch sources reported to the metrics collector
const (
	sourceProfiles = "business_users"
	sourceLedger   = "fee_escrow"
)

type Service interface {
	ListRows(ctx context.Context) ([]DashboardRow, error)
	GetMerchantDetail(ctx context.Context, merchantID string) (*MerchantDetail, error)
}

// Config controls the clock and zone the views are computed in.
type Config struct {
	Location *time.Location
	Now      func() time.Time
}

type service struct {
	repo     repositories.EscrowRepository
	schedule Schedule
	now      func() time.Time
	metrics  MetricsCollector
	log      *logrus.Entry
}

// NewService creates a new escrow dashboard service
func NewService(
	repo repositories.EscrowRepository,
	cfg Config,
	metrics MetricsCollector,
	logger *logrus.Logger,
) Service {
	if repo == nil {
		panic("repo is required")
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	// Metrics is optional, create no-op collector if nil
	if metrics == nil {
		metrics = &NoopMetricsCollector{}
	}
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	return &service{
		repo:     repo,
		schedule: NewSchedule(cfg.Location),
		now:      cfg.Now,
		metrics:  metrics,
		log:      logger.WithField("component", "escrow"),
	}
}

func (s *service) ListRows(ctx context.Context) ([]DashboardRow, error) {
	var (
		profiles []models.BusinessProfile
		entries  []models.EscrowLedgerEntry
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		profiles, err = s.fetchProfiles(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		entries, err = s.fetchLedger(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	ids := make([]string, len(profiles))
	for i := range profiles {
		ids[i] = profiles[i].ID
	}
	aggregates := Aggregate(ids, entries)

	now := s.now()
	rows := make([]DashboardRow, 0, len(profiles))
	for i := range profiles {
		profile := &profiles[i]
		agg := aggregates[profile.ID]

		from := now
		if agg.EarliestMissedDate != nil {
			if anchor, ok := s.schedule.MissedAnchor(*agg.EarliestMissedDate); ok {
				from = anchor
			}
		}
		rows = append(rows, BuildDashboardRow(profile, agg, s.schedule.NextPayoutLabel(from)))
	}

	s.metrics.RecordRowsBuilt("list", len(rows))
	return rows, nil
}

func (s *service) GetMerchantDetail(ctx context.Context, merchantID string) (*MerchantDetail, error) {
	merchantID = strings.TrimSpace(merchantID)
	if merchantID == "" {
		return nil, ErrMerchantIDRequired
	}
	// ids are UUIDs upstream; anything else cannot match a business user.
	// uuid.Parse also takes urn and braced forms, so query the canonical one.
	parsed, err := uuid.Parse(merchantID)
	if err != nil {
		return nil, ErrMerchantNotFound
	}
	merchantID = parsed.String()

	profile, err := s.fetchProfile(ctx, merchantID)
	if err != nil {
		return nil, err
	}

	entries, err := s.fetchLedger(ctx, merchantID)
	if err != nil {
		return nil, err
	}

	agg := Aggregate([]string{merchantID}, entries)[merchantID]
	now := s.now()

	detail := &MerchantDetail{
		Summary: BuildDetailSummary(profile, agg, s.schedule.NextPayoutLabel(now)),
		Ledger:  s.schedule.FormatLedger(entries, now),
	}
	s.metrics.RecordRowsBuilt("detail", len(detail.Ledger))
	return detail, nil
}

func (s *service) fetchProfiles(ctx context.Context) ([]models.BusinessProfile, error) {
	start := time.Now()
	profiles, err := s.repo.ListBusinessProfiles(ctx)
	s.metrics.RecordFetchDuration(sourceProfiles, time.Since(start))
	if err != nil {
		s.metrics.RecordFetchError(sourceProfiles)
		s.log.WithError(err).WithField("source", sourceProfiles).Error("upstream fetch failed")
		return nil, fmt.Errorf("failed to fetch business users: %w", err)
	}
	return profiles, nil
}

func (s *service) fetchProfile(ctx context.Context, merchantID string) (*models.BusinessProfile, error) {
	start := time.Now()
	profile, err := s.repo.GetBusinessProfile(ctx, merchantID)
	s.metrics.RecordFetchDuration(sourceProfiles, time.Since(start))
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, ErrMerchantNotFound
	}
	if err != nil {
		s.metrics.RecordFetchError(sourceProfiles)
		s.log.WithError(err).WithFields(logrus.Fields{
			"source":      sourceProfiles,
			"merchant_id": merchantID,
		}).Error("upstream fetch failed")
		return nil, fmt.Errorf("failed to fetch business user %s: %w", merchantID, err)
	}
	return profile, nil
}

func (s *service) fetchLedger(ctx context.Context, merchantIDs ...string) ([]models.EscrowLedgerEntry, error) {
	start := time.Now()
	entries, err := s.repo.ListLedgerEntries(ctx, merchantIDs...)
	s.metrics.RecordFetchDuration(sourceLedger, time.Since(start))
	if err != nil {
		s.metrics.RecordFetchError(sourceLedger)
		s.log.WithError(err).WithFields(logrus.Fields{
			"source":       sourceLedger,
			"merchant_ids": merchantIDs,
		}).Error("upstream fetch failed")
		return nil, fmt.Errorf("failed to fetch escrow entries: %w", err)
	}
	return entries, nil
}
