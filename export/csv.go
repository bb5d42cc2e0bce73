package export

import (
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"
	"time"

	"pmpcal/metadata"
)

// csvHeader is the fixed column layout downstream spreadsheets rely on.
var csvHeader = []string{
	"Week", "Day", "DayNumber", "Type", "Title", "Duration",
	"Domain", "Keywords", "SEOScore", "PlaylistCount", "UploadDate",
}

// CSV renders the video list as the video-metadata-export sheet:
// one header line plus one row per video.
func CSV(videos []*metadata.VideoMetadata) (string, error) {
	var b strings.Builder
	w := csv.NewWriter(&b)

	if err := w.Write(csvHeader); err != nil {
		return "", fmt.Errorf("export: write csv header: %w", err)
	}

	for _, v := range videos {
		row := []string{
			strconv.Itoa(v.Basic.Week),
			strconv.Itoa(v.Basic.Day),
			strconv.Itoa(v.Basic.DayNumber),
			string(v.Basic.Type),
			v.Basic.Title,
			strconv.Itoa(v.Basic.DurationMinutes),
			string(v.Basic.Domain),
			strings.Join(v.Keywords, "; "),
			strconv.Itoa(v.SEO.Score),
			strconv.Itoa(len(v.Playlists)),
			v.Upload.ScheduledAt.Format(time.RFC3339),
		}
		if err := w.Write(row); err != nil {
			return "", fmt.Errorf("export: write csv row %s: %w", v.Basic.ID, err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("export: flush csv: %w", err)
	}
	return b.String(), nil
}
