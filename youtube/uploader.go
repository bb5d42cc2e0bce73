// Package youtube applies generated metadata and publish schedules to
// videos on the channel through the YouTube Data API v3.
//
// Media files are uploaded by the channel owner as private drafts; this
// package only updates their metadata and scheduled publish times, so a
// mapping from slot ID to YouTube video ID is required for live runs.
package youtube

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"pmpcal/config"
	"pmpcal/export"
	"pmpcal/internal/retry"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
	"google.golang.org/api/option"
	youtubeapi "google.golang.org/api/youtube/v3"
)

// videos.update costs 50 quota units per call.
const updateQuotaCost = 50

// defaultDailyQuota is the standard YouTube Data API daily allowance.
const defaultDailyQuota = 10000

var (
	ErrQuotaExhausted = errors.New("youtube: estimated quota exhausted")
	ErrNoMapping      = errors.New("youtube: no video ID mapped for slot")
)

// SubmitError wraps a per-record submission failure.
type SubmitError struct {
	SlotID string
	Err    error
}

func (e *SubmitError) Error() string {
	return fmt.Sprintf("submit %s: %v", e.SlotID, e.Err)
}

func (e *SubmitError) Unwrap() error {
	return e.Err
}

// VideoMapping resolves slot IDs to YouTube video IDs. The channel owner
// maintains it as a flat JSON object, e.g. {"w01_d1": "dQw4w9WgXcQ"}.
type VideoMapping map[string]string

// LoadVideoMapping reads a slot-to-video mapping file.
func LoadVideoMapping(path string) (VideoMapping, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read mapping: %w", err)
	}
	var m VideoMapping
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, fmt.Errorf("parse mapping %s: %w", path, err)
	}
	return m, nil
}

// SubmitReport summarizes a batch submission.
type SubmitReport struct {
	Submitted []string      `json:"submitted"`
	Skipped   []string      `json:"skipped"`
	Failures  []SubmitError `json:"-"`
}

// Uploader pushes upload records to YouTube with rate limiting, retry,
// and estimated quota tracking.
type Uploader struct {
	service      *youtubeapi.Service
	limiter      *rate.Limiter
	quotaReserve int
	logger       *zap.Logger

	// Quota tracking
	mu             sync.Mutex
	estimatedQuota int
	lastQuotaReset time.Time
	quotaExhausted bool

	RetryConfig *retry.Config
}

// NewUploader authenticates against the YouTube Data API using the OAuth
// credentials in cfg and returns an Uploader paced at cfg.RateLimitPerMin.
func NewUploader(ctx context.Context, cfg config.YouTubeConfig, logger *zap.Logger) (*Uploader, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	client, err := newOAuthClient(ctx, cfg.CredentialsFile, cfg.TokenFile, logger)
	if err != nil {
		return nil, err
	}

	service, err := youtubeapi.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		return nil, fmt.Errorf("create youtube service: %w", err)
	}

	rc := retry.DefaultConfig()
	return &Uploader{
		service:        service,
		limiter:        rate.NewLimiter(rate.Every(time.Minute/time.Duration(cfg.RateLimitPerMin)), 1),
		quotaReserve:   cfg.QuotaReserve,
		logger:         logger,
		estimatedQuota: defaultDailyQuota,
		lastQuotaReset: time.Now(),
		RetryConfig:    &rc,
	}, nil
}

// NewDryRunUploader returns an Uploader with no API service behind it.
// It can only be used with SubmitBatch's dry-run mode.
func NewDryRunUploader(logger *zap.Logger) *Uploader {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Uploader{
		limiter:        rate.NewLimiter(rate.Inf, 1),
		logger:         logger,
		estimatedQuota: defaultDailyQuota,
		lastQuotaReset: time.Now(),
	}
}

// SubmitBatch applies each record's metadata and publish schedule to its
// mapped video. Records without a mapping are skipped, individual API
// failures are collected rather than aborting the batch, and a dry run
// logs the plan without touching the network.
func (u *Uploader) SubmitBatch(ctx context.Context, records []export.UploadRecord, mapping VideoMapping, dryRun bool) (*SubmitReport, error) {
	report := &SubmitReport{}

	for _, rec := range records {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		videoID, ok := mapping[rec.ID]
		if !ok {
			u.logger.Warn("slot has no mapped video, skipping",
				zap.String("slot", rec.ID))
			report.Skipped = append(report.Skipped, rec.ID)
			continue
		}

		if dryRun {
			u.logger.Info("dry run: would schedule video",
				zap.String("slot", rec.ID),
				zap.String("video_id", videoID),
				zap.String("title", rec.Title),
				zap.String("publish_at", rec.PublishAt))
			report.Submitted = append(report.Submitted, rec.ID)
			continue
		}

		if err := u.submitOne(ctx, rec, videoID); err != nil {
			u.logger.Warn("submission failed",
				zap.String("slot", rec.ID),
				zap.Error(err))
			report.Failures = append(report.Failures, SubmitError{SlotID: rec.ID, Err: err})
			continue
		}
		report.Submitted = append(report.Submitted, rec.ID)
	}

	u.logger.Info("batch submission complete",
		zap.Int("submitted", len(report.Submitted)),
		zap.Int("skipped", len(report.Skipped)),
		zap.Int("failed", len(report.Failures)),
		zap.Bool("dry_run", dryRun))

	if len(report.Failures) > 0 {
		return report, fmt.Errorf("youtube: %d of %d submissions failed", len(report.Failures), len(records))
	}
	return report, nil
}

func (u *Uploader) submitOne(ctx context.Context, rec export.UploadRecord, videoID string) error {
	if err := u.checkQuota(); err != nil {
		return err
	}
	if err := u.limiter.Wait(ctx); err != nil {
		return err
	}

	video := &youtubeapi.Video{
		Id: videoID,
		Snippet: &youtubeapi.VideoSnippet{
			Title:       rec.Title,
			Description: rec.Description,
			Tags:        rec.Tags,
			CategoryId:  rec.CategoryID,
		},
		Status: &youtubeapi.VideoStatus{
			PrivacyStatus: rec.PrivacyStatus,
			PublishAt:     rec.PublishAt,
		},
	}

	cfg := retry.DefaultConfig()
	if u.RetryConfig != nil {
		cfg = *u.RetryConfig
	}
	return retry.Do(ctx, cfg, uploadErrorClassifier, func(ctx context.Context) error {
		_, err := u.service.Videos.Update([]string{"snippet", "status"}, video).Context(ctx).Do()
		if err == nil {
			u.trackQuotaUsage(updateQuotaCost)
		}
		return err
	})
}

// checkQuota refuses new submissions once the estimated remaining quota
// dips below the configured reserve.
func (u *Uploader) checkQuota() error {
	u.mu.Lock()
	defer u.mu.Unlock()
	if u.quotaExhausted {
		return ErrQuotaExhausted
	}
	return nil
}

// trackQuotaUsage updates the estimated quota and flags exhaustion.
// The estimate resets after 24 hours to match the API's daily window.
func (u *Uploader) trackQuotaUsage(units int) {
	u.mu.Lock()
	defer u.mu.Unlock()

	if time.Since(u.lastQuotaReset) > 24*time.Hour {
		u.estimatedQuota = defaultDailyQuota
		u.lastQuotaReset = time.Now()
		u.quotaExhausted = false
		u.logger.Info("quota estimate reset (new day)")
	}

	u.estimatedQuota -= units

	if u.estimatedQuota < u.quotaReserve {
		if !u.quotaExhausted {
			u.logger.Warn("quota exhausted",
				zap.Int("remaining", u.estimatedQuota),
				zap.Int("reserve", u.quotaReserve))
			u.quotaExhausted = true
		}
	}
}

// EstimatedQuota returns the estimated remaining quota units.
func (u *Uploader) EstimatedQuota() int {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.estimatedQuota
}

// uploadErrorClassifier decides whether an API error is worth retrying.
func uploadErrorClassifier(err error) bool {
	if err == nil {
		return false
	}

	// Daily quota exhaustion won't recover within a retry window.
	if strings.Contains(err.Error(), "quotaExceeded") {
		return false
	}
	// Per-minute rate limiting recovers quickly.
	if strings.Contains(err.Error(), "rateLimitExceeded") {
		return true
	}
	if strings.Contains(err.Error(), "backendError") {
		return true
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	// Malformed metadata won't fix itself.
	if strings.Contains(err.Error(), "invalid") {
		return false
	}

	return true
}
