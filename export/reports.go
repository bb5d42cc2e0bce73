package export

import (
	"sort"
	"strings"

	"pmpcal/batch"
	"pmpcal/metadata"
)

// PlaylistConfigDoc is the playlist-config.json document.
type PlaylistConfigDoc struct {
	Playlists []*batch.PlaylistGroup `json:"playlists"`
}

// PlaylistConfig orders the consolidated playlists by id for a stable
// document.
func PlaylistConfig(groups map[string]*batch.PlaylistGroup) PlaylistConfigDoc {
	doc := PlaylistConfigDoc{Playlists: make([]*batch.PlaylistGroup, 0, len(groups))}
	for _, g := range groups {
		doc.Playlists = append(doc.Playlists, g)
	}
	sort.Slice(doc.Playlists, func(i, j int) bool {
		return doc.Playlists[i].ID < doc.Playlists[j].ID
	})
	return doc
}

// KeywordCount is one entry of the keyword frequency table.
type KeywordCount struct {
	Keyword string `json:"keyword"`
	Count   int    `json:"count"`
}

// SEOAnalysisDoc is the seo-analysis.json aggregate report.
type SEOAnalysisDoc struct {
	TotalVideos  int            `json:"total_videos"`
	AverageScore float64        `json:"average_score"`
	MinScore     int            `json:"min_score"`
	MaxScore     int            `json:"max_score"`
	ScoreBands   map[string]int `json:"score_bands"`
	TopKeywords  []KeywordCount `json:"top_keywords"`
}

// SEOAnalysis aggregates score statistics and keyword frequency over the
// processed videos.
func SEOAnalysis(videos []*metadata.VideoMetadata) SEOAnalysisDoc {
	doc := SEOAnalysisDoc{
		TotalVideos: len(videos),
		ScoreBands:  map[string]int{"0-39": 0, "40-69": 0, "70-100": 0},
	}
	if len(videos) == 0 {
		return doc
	}

	sum := 0
	doc.MinScore = videos[0].SEO.Score
	doc.MaxScore = videos[0].SEO.Score
	freq := make(map[string]int)
	display := make(map[string]string)

	for _, v := range videos {
		score := v.SEO.Score
		sum += score
		if score < doc.MinScore {
			doc.MinScore = score
		}
		if score > doc.MaxScore {
			doc.MaxScore = score
		}
		switch {
		case score < 40:
			doc.ScoreBands["0-39"]++
		case score < 70:
			doc.ScoreBands["40-69"]++
		default:
			doc.ScoreBands["70-100"]++
		}
		for _, kw := range v.Keywords {
			key := strings.ToLower(kw)
			freq[key]++
			if _, ok := display[key]; !ok {
				display[key] = kw
			}
		}
	}
	doc.AverageScore = float64(sum) / float64(len(videos))

	for key, count := range freq {
		doc.TopKeywords = append(doc.TopKeywords, KeywordCount{Keyword: display[key], Count: count})
	}
	sort.Slice(doc.TopKeywords, func(i, j int) bool {
		if doc.TopKeywords[i].Count != doc.TopKeywords[j].Count {
			return doc.TopKeywords[i].Count > doc.TopKeywords[j].Count
		}
		return doc.TopKeywords[i].Keyword < doc.TopKeywords[j].Keyword
	})
	if len(doc.TopKeywords) > 10 {
		doc.TopKeywords = doc.TopKeywords[:10]
	}
	return doc
}
