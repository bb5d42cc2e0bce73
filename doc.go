// Package pmpcal generates publication-ready YouTube metadata for a
// 13-week PMP exam study plan.
//
// # Overview
//
// The pipeline expands a fixed 13-week calendar into 91 video slots,
// derives SEO-optimized titles, descriptions, and tags for each slot,
// consolidates playlist assignments, and exports everything as JSON,
// CSV, and a YouTube upload batch.
//
// The sub-packages are organized by pipeline stage:
//
//   - calendar: the 13-week calendar, work groups, and slot expansion
//   - metadata: titles, descriptions, keywords, and SEO scoring
//   - batch: batch processing with filtering and playlist consolidation
//   - export: CSV, upload batch, playlist config, and SEO reports
//   - storage: locked, atomically-written output directories
//   - youtube: applying metadata and publish schedules via the Data API
//   - scheduler: cron-driven pipeline runs
//   - config: configuration management
//
// # Quick Start
//
// Generate the full batch and write every export:
//
//	gen := metadata.NewGenerator(metadata.Options{})
//	if err := gen.LoadConfigurations("", "", ""); err != nil {
//		log.Fatal(err)
//	}
//	proc := batch.NewProcessor(gen, logger)
//	result, err := proc.ProcessAll(ctx)
//	if err != nil {
//		log.Fatal(err)
//	}
//	store, err := storage.NewOutputStore("generated/metadata")
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer store.Close()
//	if err := export.WriteAll(result, store, logger); err != nil {
//		log.Fatal(err)
//	}
//
// # Configuration
//
// Settings load from multiple sources, highest priority first:
//
//  1. Environment variables
//  2. Config file (pmpcal.json or ~/.config/pmpcal/pmpcal.json)
//  3. Default values
//
// Environment variables:
//
//   - PMPCAL_CALENDAR: calendar override file (JSON)
//   - PMPCAL_KEYWORDS: keyword database file (JSON)
//   - PMPCAL_CHANNEL: channel branding file (YAML)
//   - PMPCAL_OUTPUT_DIR: output directory for exports
//   - PMPCAL_START_DATE: publish date of week 1 day 1 (YYYY-MM-DD)
//   - PMPCAL_UPLOAD_HOUR: UTC hour of day videos go live
//   - PMPCAL_PRIMARY_KEYWORD: primary SEO keyword
//   - PMPCAL_LOG_LEVEL: debug, info, warn, or error
//   - PMPCAL_YT_CREDENTIALS: OAuth client credentials file
//   - PMPCAL_YT_TOKEN: cached OAuth token file
//   - PMPCAL_YT_QUOTA_RESERVE: API quota units to keep in reserve
//   - PMPCAL_YT_RATE_LIMIT: upload submissions per minute
//
// # Error Handling
//
// All operations return errors that support the standard patterns:
//
//	if errors.Is(err, pmpcal.ErrNotInitialized) {
//		fmt.Println("call LoadConfigurations first")
//	}
//
//	var genErr *pmpcal.GenerationError
//	if errors.As(err, &genErr) {
//		fmt.Printf("slot %s failed: %v\n", genErr.SlotID, genErr.Err)
//	}
package pmpcal
