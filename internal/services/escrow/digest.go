package escrow

import (
	"context"
	"fmt"
	"sort"
	"time"

	"challenz/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// Publisher delivers a keyed event to the finance channel.
type Publisher interface {
	Publish(ctx context.Context, key string, event interface{}) error
}

// BuildMissedPayoutDigest keeps the rows with missed payouts, largest missed
// amount first, and totals the missed amounts per currency.
func BuildMissedPayoutDigest(rows []DashboardRow, nextPayoutAt string, generatedAt time.Time) models.MissedPayoutDigest {
	items := make([]models.MissedPayoutDigestItem, 0)
	totals := make(map[string]decimal.Decimal)

	for _, row := range rows {
		if row.MissedPayoutCount == 0 {
			continue
		}
		var amount float64
		if row.MissedPayoutAmount != nil {
			amount = *row.MissedPayoutAmount
		}
		totals[row.Currency] = totals[row.Currency].Add(decimal.NewFromFloat(amount))
		items = append(items, models.MissedPayoutDigestItem{
			MerchantID:   row.ID,
			BusinessName: row.BusinessName,
			Currency:     row.Currency,
			MissedAmount: amount,
			MissedCount:  row.MissedPayoutCount,
			WasSupposed:  row.MissedPayoutWasSupposed,
		})
	}

	sort.SliceStable(items, func(i, j int) bool {
		if items[i].MissedAmount != items[j].MissedAmount {
			return items[i].MissedAmount > items[j].MissedAmount
		}
		return items[i].MerchantID < items[j].MerchantID
	})

	out := make(map[string]float64, len(totals))
	for currency, total := range totals {
		out[currency] = money(total)
	}

	return models.MissedPayoutDigest{
		ID:            uuid.NewString(),
		GeneratedAt:   generatedAt,
		NextPayoutAt:  nextPayoutAt,
		MerchantCount: len(items),
		Totals:        out,
		Merchants:     items,
	}
}

// DigestJob publishes the missed payout digest built from the list view.
type DigestJob struct {
	service   Service
	publisher Publisher
	schedule  Schedule
	now       func() time.Time
	log       *logrus.Entry
}

func NewDigestJob(service Service, publisher Publisher, cfg Config, logger *logrus.Logger) *DigestJob {
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &DigestJob{
		service:   service,
		publisher: publisher,
		schedule:  NewSchedule(cfg.Location),
		now:       cfg.Now,
		log:       logger.WithField("component", "escrow_digest"),
	}
}

// Run builds one digest and publishes it. An empty digest is still sent so
// consumers can tell a clean slot from a missing job.
func (j *DigestJob) Run(ctx context.Context) (*models.MissedPayoutDigest, error) {
	rows, err := j.service.ListRows(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to build escrow rows: %w", err)
	}

	now := j.now()
	next := j.schedule.NextPayoutAt(now).Format("2006-01-02 15:04")
	digest := BuildMissedPayoutDigest(rows, next, now)

	if err := j.publisher.Publish(ctx, digest.ID, digest); err != nil {
		j.log.WithError(err).WithField("digest_id", digest.ID).Error("failed to publish missed payout digest")
		return nil, fmt.Errorf("failed to publish digest: %w", err)
	}

	j.log.WithFields(logrus.Fields{
		"digest_id":      digest.ID,
		"merchant_count": digest.MerchantCount,
		"next_payout_at": digest.NextPayoutAt,
	}).Info("missed payout digest published")
	return &digest, nil
}
