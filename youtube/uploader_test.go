package youtube

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"pmpcal/export"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

func newTestUploader() *Uploader {
	return &Uploader{
		limiter:        rate.NewLimiter(rate.Inf, 1),
		logger:         zap.NewNop(),
		estimatedQuota: defaultDailyQuota,
		lastQuotaReset: time.Now(),
	}
}

func testRecords(n int) []export.UploadRecord {
	records := make([]export.UploadRecord, 0, n)
	for i := 1; i <= n; i++ {
		records = append(records, export.UploadRecord{
			ID:            fmt.Sprintf("w01_d%d", i),
			Title:         fmt.Sprintf("Video %d", i),
			PrivacyStatus: "private",
			PublishAt:     "2026-09-07T15:00:00Z",
		})
	}
	return records
}

func TestSubmitBatchDryRun(t *testing.T) {
	u := newTestUploader()
	records := testRecords(3)
	mapping := VideoMapping{
		"w01_d1": "vid-1",
		"w01_d2": "vid-2",
		"w01_d3": "vid-3",
	}

	report, err := u.SubmitBatch(context.Background(), records, mapping, true)
	if err != nil {
		t.Fatalf("SubmitBatch() error = %v", err)
	}
	if len(report.Submitted) != 3 {
		t.Errorf("Submitted = %d, want 3", len(report.Submitted))
	}
	if len(report.Skipped) != 0 || len(report.Failures) != 0 {
		t.Errorf("skipped = %d, failures = %d, want 0/0",
			len(report.Skipped), len(report.Failures))
	}
}

func TestSubmitBatchSkipsUnmappedSlots(t *testing.T) {
	u := newTestUploader()
	records := testRecords(3)
	mapping := VideoMapping{"w01_d2": "vid-2"}

	report, err := u.SubmitBatch(context.Background(), records, mapping, true)
	if err != nil {
		t.Fatalf("SubmitBatch() error = %v", err)
	}
	if len(report.Submitted) != 1 {
		t.Errorf("Submitted = %d, want 1", len(report.Submitted))
	}
	if len(report.Skipped) != 2 {
		t.Errorf("Skipped = %d, want 2", len(report.Skipped))
	}
	for _, id := range report.Skipped {
		if id == "w01_d2" {
			t.Errorf("mapped slot %s was skipped", id)
		}
	}
}

func TestSubmitBatchHonorsContextCancellation(t *testing.T) {
	u := newTestUploader()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := u.SubmitBatch(ctx, testRecords(3), VideoMapping{}, true)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("SubmitBatch() error = %v, want context.Canceled", err)
	}
}

func TestLoadVideoMapping(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "mapping.json")
	data := `{"w01_d1": "abc123", "w01_d2": "def456"}`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	m, err := LoadVideoMapping(path)
	if err != nil {
		t.Fatalf("LoadVideoMapping() error = %v", err)
	}
	if m["w01_d1"] != "abc123" {
		t.Errorf("m[w01_d1] = %q, want abc123", m["w01_d1"])
	}
	if len(m) != 2 {
		t.Errorf("len(m) = %d, want 2", len(m))
	}
}

func TestLoadVideoMappingMissingFile(t *testing.T) {
	if _, err := LoadVideoMapping(filepath.Join(t.TempDir(), "absent.json")); err == nil {
		t.Error("expected error for missing mapping file")
	}
}

func TestLoadVideoMappingMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadVideoMapping(path); err == nil {
		t.Error("expected error for malformed mapping file")
	}
}

func TestQuotaTrackingExhaustion(t *testing.T) {
	u := newTestUploader()
	u.quotaReserve = defaultDailyQuota - updateQuotaCost

	u.trackQuotaUsage(updateQuotaCost)
	if err := u.checkQuota(); err == nil {
		t.Error("expected quota check to fail once below reserve")
	} else if !errors.Is(err, ErrQuotaExhausted) {
		t.Errorf("checkQuota() = %v, want ErrQuotaExhausted", err)
	}
}

func TestQuotaResetsAfterDay(t *testing.T) {
	u := newTestUploader()
	u.quotaReserve = defaultDailyQuota // force immediate exhaustion
	u.trackQuotaUsage(updateQuotaCost)
	if err := u.checkQuota(); err == nil {
		t.Fatal("expected exhaustion before reset")
	}

	u.lastQuotaReset = time.Now().Add(-25 * time.Hour)
	u.quotaReserve = 0
	u.trackQuotaUsage(updateQuotaCost)
	if err := u.checkQuota(); err != nil {
		t.Errorf("checkQuota() after daily reset = %v, want nil", err)
	}
	if got := u.EstimatedQuota(); got != defaultDailyQuota-updateQuotaCost {
		t.Errorf("EstimatedQuota() = %d, want %d", got, defaultDailyQuota-updateQuotaCost)
	}
}

func TestUploadErrorClassifier(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		retryable bool
	}{
		{"nil", nil, false},
		{"daily quota", errors.New("googleapi: Error 403: quotaExceeded"), false},
		{"rate limit", errors.New("googleapi: Error 403: rateLimitExceeded"), true},
		{"backend", errors.New("googleapi: Error 500: backendError"), true},
		{"deadline", context.DeadlineExceeded, true},
		{"invalid metadata", errors.New("googleapi: Error 400: invalidTitle, invalid title"), false},
		{"unknown", errors.New("connection reset by peer"), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := uploadErrorClassifier(tt.err); got != tt.retryable {
				t.Errorf("uploadErrorClassifier(%v) = %v, want %v", tt.err, got, tt.retryable)
			}
		})
	}
}
