package export

import (
	"fmt"
	"time"
	"unicode/utf8"

	"pmpcal/metadata"
)

// YouTube upload limits, re-validated here because the metadata generator
// does not re-check them at export time.
const (
	maxUploadTitleLength = 100
	maxUploadTags        = 15
	maxUploadTagChars    = 500

	uploadCategoryID    = "27" // Education
	uploadPrivacyStatus = "private"
)

// UploadRecord is one flattened, upload-ready entry of the upload batch.
type UploadRecord struct {
	ID            string   `json:"id"`
	Title         string   `json:"title"`
	Description   string   `json:"description"`
	Tags          []string `json:"tags"`
	CategoryID    string   `json:"category_id"`
	PrivacyStatus string   `json:"privacy_status"`
	PublishAt     string   `json:"publish_at"`
	// Thumbnail is the color/variant reference the rendering engine
	// resolves to an image; the pipeline only chooses which to request.
	Thumbnail string `json:"thumbnail"`
}

// UploadBatch flattens the video list into upload-ready records and
// enforces YouTube's field limits.
func UploadBatch(videos []*metadata.VideoMetadata) ([]UploadRecord, error) {
	records := make([]UploadRecord, 0, len(videos))
	for _, v := range videos {
		if n := utf8.RuneCountInString(v.Basic.Title); n > maxUploadTitleLength {
			return nil, fmt.Errorf("export: %s: title is %d chars, limit %d", v.Basic.ID, n, maxUploadTitleLength)
		}
		if len(v.Keywords) > maxUploadTags {
			return nil, fmt.Errorf("export: %s: %d tags, limit %d", v.Basic.ID, len(v.Keywords), maxUploadTags)
		}
		total := 0
		for _, tag := range v.Keywords {
			total += len(tag)
		}
		if total > maxUploadTagChars {
			return nil, fmt.Errorf("export: %s: tags total %d chars, limit %d", v.Basic.ID, total, maxUploadTagChars)
		}

		records = append(records, UploadRecord{
			ID:            v.Basic.ID,
			Title:         v.Basic.Title,
			Description:   v.Description,
			Tags:          v.Keywords,
			CategoryID:    uploadCategoryID,
			PrivacyStatus: uploadPrivacyStatus,
			PublishAt:     v.Upload.ScheduledAt.Format(time.RFC3339),
			Thumbnail:     fmt.Sprintf("%s-%s-%s", v.Basic.ID, v.Basic.ThumbnailColor, v.Basic.Type),
		})
	}
	return records, nil
}
