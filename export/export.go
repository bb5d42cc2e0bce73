// Package export formats batch results into the serializations consumed
// by downstream tools: CSV, the YouTube upload batch, playlist config,
// and the SEO analysis report. Formatters are pure; WriteAll handles the
// file tree.
package export

import (
	"errors"

	"go.uber.org/zap"

	"pmpcal/batch"
	"pmpcal/storage"
)

// WriteAll persists every output of a run. Each output is attempted
// independently: one broken writer never prevents the others from
// completing. All failures are joined into the returned error.
func WriteAll(result *batch.Result, store *storage.OutputStore, logger *zap.Logger) error {
	if logger == nil {
		logger = zap.NewNop()
	}

	var errs []error
	step := func(name string, fn func() error) {
		if err := fn(); err != nil {
			logger.Error("output failed", zap.String("output", name), zap.Error(err))
			errs = append(errs, err)
			return
		}
		logger.Debug("output written", zap.String("output", name))
	}

	step(storage.FileCompleteMetadata, func() error {
		return store.WriteJSON(storage.FileCompleteMetadata, result)
	})
	step(storage.FileUploadBatch, func() error {
		records, err := UploadBatch(result.Videos)
		if err != nil {
			return err
		}
		return store.WriteJSON(storage.FileUploadBatch, records)
	})
	step(storage.FilePlaylistConfig, func() error {
		return store.WriteJSON(storage.FilePlaylistConfig, PlaylistConfig(result.Playlists))
	})
	step(storage.FileSEOAnalysis, func() error {
		return store.WriteJSON(storage.FileSEOAnalysis, SEOAnalysis(result.Videos))
	})
	step(storage.FileCSVExport, func() error {
		doc, err := CSV(result.Videos)
		if err != nil {
			return err
		}
		return store.WriteText(storage.FileCSVExport, doc)
	})
	for _, v := range result.Videos {
		step("description "+v.Filename(), func() error {
			return store.WriteDescription(v.Filename(), v.Description)
		})
	}

	return errors.Join(errs...)
}
