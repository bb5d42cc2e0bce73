package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"text/tabwriter"
	"time"

	"pmpcal/batch"
	"pmpcal/calendar"
	"pmpcal/config"
	"pmpcal/export"
	"pmpcal/internal/observability"
	"pmpcal/metadata"
	"pmpcal/scheduler"
	"pmpcal/storage"
	"pmpcal/youtube"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	// Optional; env vars from the shell always win.
	_ = godotenv.Load()

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "generate":
		cmdGenerate(args)
	case "export":
		cmdExport(args)
	case "upload":
		cmdUpload(args)
	case "schedule":
		cmdSchedule(args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Error: unknown command %q\n\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Fprintf(os.Stderr, `pmpcal - 13-week PMP study plan metadata pipeline

Usage:
  pmpcal generate [flags]   Generate video metadata and write all outputs
  pmpcal export [flags]     Write a single export format from a fresh run
  pmpcal upload [flags]     Apply a generated upload batch to YouTube
  pmpcal schedule [flags]   Run the pipeline periodically on a cron schedule
  pmpcal help               Show this help message

Examples:
  pmpcal generate                               # Full 13-week batch
  pmpcal generate --week 5                      # Week 5 only
  pmpcal generate --type practice --verbose     # All practice sessions
  pmpcal export --format csv                    # Spreadsheet export only
  pmpcal upload --mapping mapping.json --dry-run
  pmpcal schedule --cron "0 6 * * 1"            # Mondays at 06:00

For help on a specific command: pmpcal <command> -h
`)
}

// runtime bundles the pieces every command needs.
type runtime struct {
	cfg    *config.Config
	logger *zap.Logger
}

func newRuntime(verbose bool) *runtime {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	level := cfg.LogLevel
	if verbose {
		level = "debug"
	}
	logger, err := observability.NewLogger(level)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating logger: %v\n", err)
		os.Exit(1)
	}
	return &runtime{cfg: cfg, logger: logger}
}

func (r *runtime) newGenerator(keyword string) *metadata.Generator {
	if keyword == "" {
		keyword = r.cfg.PrimaryKeyword
	}
	gen := metadata.NewGenerator(metadata.Options{
		PrimaryKeyword: keyword,
		StartDate:      r.cfg.StartTime(),
		UploadHour:     r.cfg.UploadHour,
	})
	if err := gen.LoadConfigurations(r.cfg.CalendarPath, r.cfg.KeywordsPath, r.cfg.ChannelPath); err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configurations: %v\n", err)
		os.Exit(1)
	}
	return gen
}

// parseCriteria converts the shared filter flags into batch criteria.
func parseCriteria(week int, typeStr, domainStr string, dayFrom, dayTo int) batch.Criteria {
	if week < 0 || week > calendar.NumWeeks {
		fmt.Fprintf(os.Stderr, "Error: --week must be between 1 and %d\n", calendar.NumWeeks)
		os.Exit(1)
	}
	c := batch.Criteria{Week: week, DayFrom: dayFrom, DayTo: dayTo}

	switch typeStr {
	case "":
	case "overview":
		c.Type = calendar.TypeOverview
	case "daily-study":
		c.Type = calendar.TypeDailyStudy
	case "practice":
		c.Type = calendar.TypePractice
	case "review":
		c.Type = calendar.TypeReview
	default:
		fmt.Fprintf(os.Stderr, "Error: invalid --type value %q (use overview, daily-study, practice, or review)\n", typeStr)
		os.Exit(1)
	}

	switch domainStr {
	case "":
	case "people":
		c.Domain = calendar.DomainPeople
	case "process":
		c.Domain = calendar.DomainProcess
	case "business":
		c.Domain = calendar.DomainBusiness
	case "mixed":
		c.Domain = calendar.DomainMixed
	case "introduction":
		c.Domain = calendar.DomainIntroduction
	default:
		fmt.Fprintf(os.Stderr, "Error: invalid --domain value %q (use people, process, business, mixed, or introduction)\n", domainStr)
		os.Exit(1)
	}

	return c
}

func runBatch(r *runtime, keyword string, c batch.Criteria) *batch.Result {
	gen := r.newGenerator(keyword)
	proc := batch.NewProcessor(gen, r.logger)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	result, err := proc.Process(ctx, c)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error generating metadata: %v\n", err)
		os.Exit(1)
	}
	return result
}

func cmdGenerate(args []string) {
	fs := flag.NewFlagSet("generate", flag.ExitOnError)
	week := fs.Int("week", 0, "Limit to one week, 1-13 (0 = all)")
	typeStr := fs.String("type", "", "Limit to one slot type: overview, daily-study, practice, review")
	domainStr := fs.String("domain", "", "Limit to one ECO domain: people, process, business, mixed, introduction")
	dayFrom := fs.Int("day-from", 0, "First day of week to include, 1-7 (0 = unbounded)")
	dayTo := fs.Int("day-to", 0, "Last day of week to include, 1-7 (0 = unbounded)")
	out := fs.String("out", "", "Output directory (default from config)")
	keyword := fs.String("keyword", "", "Primary SEO keyword override")
	verbose := fs.Bool("verbose", false, "Enable debug logging")
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: pmpcal generate [flags]\n\nFlags:\n")
		fs.PrintDefaults()
	}
	fs.Parse(args)

	r := newRuntime(*verbose)
	result := runBatch(r, *keyword, parseCriteria(*week, *typeStr, *domainStr, *dayFrom, *dayTo))

	outDir := *out
	if outDir == "" {
		outDir = r.cfg.OutputDir
	}
	store, err := storage.NewOutputStore(outDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening output directory: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if err := export.WriteAll(result, store, r.logger); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing outputs: %v\n", err)
		os.Exit(1)
	}

	printSummary(result, outDir)
	if len(result.Failures) > 0 {
		os.Exit(1)
	}
}

func printSummary(result *batch.Result, outDir string) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "TYPE\tCOUNT")
	for _, t := range []calendar.SlotType{
		calendar.TypeOverview,
		calendar.TypeDailyStudy,
		calendar.TypePractice,
		calendar.TypeReview,
	} {
		if n := result.Summary.ByType[t]; n > 0 {
			fmt.Fprintf(w, "%s\t%d\n", t, n)
		}
	}
	w.Flush()

	fmt.Printf("\nGenerated %d videos across %d playlists -> %s\n",
		result.Summary.TotalVideos, len(result.Playlists), outDir)
	for _, f := range result.Failures {
		fmt.Fprintf(os.Stderr, "Warning: slot %s failed: %s\n", f.SlotID, f.Error)
	}
}

func cmdExport(args []string) {
	fs := flag.NewFlagSet("export", flag.ExitOnError)
	format := fs.String("format", "json", "Export format: json, csv, or youtube")
	playlists := fs.Bool("playlists", false, "Also write the playlist configuration")
	out := fs.String("out", "", "Output directory (default from config)")
	keyword := fs.String("keyword", "", "Primary SEO keyword override")
	verbose := fs.Bool("verbose", false, "Enable debug logging")
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: pmpcal export [flags]\n\nFlags:\n")
		fs.PrintDefaults()
	}
	fs.Parse(args)

	r := newRuntime(*verbose)
	result := runBatch(r, *keyword, batch.Criteria{})

	outDir := *out
	if outDir == "" {
		outDir = r.cfg.OutputDir
	}
	store, err := storage.NewOutputStore(outDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening output directory: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	var written string
	switch *format {
	case "json":
		err = store.WriteJSON(storage.FileCompleteMetadata, result)
		written = store.Path(storage.FileCompleteMetadata)
	case "csv":
		var doc string
		doc, err = export.CSV(result.Videos)
		if err == nil {
			err = store.WriteText(storage.FileCSVExport, doc)
		}
		written = store.Path(storage.FileCSVExport)
	case "youtube":
		var records []export.UploadRecord
		records, err = export.UploadBatch(result.Videos)
		if err == nil {
			err = store.WriteJSON(storage.FileUploadBatch, records)
		}
		written = store.Path(storage.FileUploadBatch)
	default:
		fmt.Fprintf(os.Stderr, "Error: invalid --format value %q (use json, csv, or youtube)\n", *format)
		os.Exit(1)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error writing export: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Wrote %s\n", written)

	if *playlists {
		doc := export.PlaylistConfig(result.Playlists)
		if err := store.WriteJSON(storage.FilePlaylistConfig, doc); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing playlist config: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Wrote %s\n", store.Path(storage.FilePlaylistConfig))
	}
}

func cmdUpload(args []string) {
	fs := flag.NewFlagSet("upload", flag.ExitOnError)
	batchPath := fs.String("batch", "", "Upload batch file (default <output-dir>/batch/upload-batch.json)")
	mappingPath := fs.String("mapping", "", "Slot-to-video-ID mapping file (required)")
	dryRun := fs.Bool("dry-run", false, "Log the submission plan without calling the API")
	verbose := fs.Bool("verbose", false, "Enable debug logging")
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: pmpcal upload [flags]\n\nFlags:\n")
		fs.PrintDefaults()
	}
	fs.Parse(args)

	if *mappingPath == "" {
		fmt.Fprintf(os.Stderr, "Error: --mapping is required\n")
		fs.Usage()
		os.Exit(1)
	}

	r := newRuntime(*verbose)

	path := *batchPath
	if path == "" {
		path = filepath.Join(r.cfg.OutputDir, storage.FileUploadBatch)
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading upload batch (run 'pmpcal generate' first): %v\n", err)
		os.Exit(1)
	}
	var records []export.UploadRecord
	if err := json.Unmarshal(raw, &records); err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing upload batch %s: %v\n", path, err)
		os.Exit(1)
	}

	mapping, err := youtube.LoadVideoMapping(*mappingPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	var uploader *youtube.Uploader
	if *dryRun {
		uploader = youtube.NewDryRunUploader(r.logger)
	} else {
		uploader, err = youtube.NewUploader(ctx, r.cfg.YouTube, r.logger)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating uploader: %v\n", err)
			os.Exit(1)
		}
	}

	report, err := uploader.SubmitBatch(ctx, records, mapping, *dryRun)
	if report != nil {
		fmt.Printf("Submitted: %d  Skipped: %d  Failed: %d\n",
			len(report.Submitted), len(report.Skipped), len(report.Failures))
		for _, f := range report.Failures {
			fmt.Fprintf(os.Stderr, "  %s: %v\n", f.SlotID, f.Err)
		}
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// pipelineJob adapts a full generate-and-export run to the scheduler.
type pipelineJob struct {
	r      *runtime
	outDir string
}

func (j *pipelineJob) Name() string { return "metadata-pipeline" }

func (j *pipelineJob) RunOnce(ctx context.Context) error {
	gen := j.r.newGenerator("")
	proc := batch.NewProcessor(gen, j.r.logger)

	result, err := proc.ProcessAll(ctx)
	if err != nil {
		return err
	}

	store, err := storage.NewOutputStore(j.outDir)
	if err != nil {
		return err
	}
	defer store.Close()

	return export.WriteAll(result, store, j.r.logger)
}

func cmdSchedule(args []string) {
	fs := flag.NewFlagSet("schedule", flag.ExitOnError)
	cronSpec := fs.String("cron", "0 6 * * 1", "Cron expression for pipeline runs")
	out := fs.String("out", "", "Output directory (default from config)")
	verbose := fs.Bool("verbose", false, "Enable debug logging")
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: pmpcal schedule [flags]\n\nFlags:\n")
		fs.PrintDefaults()
	}
	fs.Parse(args)

	r := newRuntime(*verbose)

	outDir := *out
	if outDir == "" {
		outDir = r.cfg.OutputDir
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	job := &pipelineJob{r: r, outDir: outDir}
	sched := scheduler.New(*cronSpec, job, r.logger)

	// Produce a fresh set of outputs immediately, then follow the cron.
	if err := sched.RunOnce(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error on initial run: %v\n", err)
		os.Exit(1)
	}

	if err := sched.Start(ctx); err != nil && err != context.Canceled {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
