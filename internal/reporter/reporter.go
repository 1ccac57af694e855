// Package reporter runs a single firmware update report: one session, one
// search, one history query, three printed views.
package reporter

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/breeze-rmm/fwreport/internal/collectors"
	"github.com/breeze-rmm/fwreport/internal/firmware"
	"github.com/breeze-rmm/fwreport/internal/logging"
	"github.com/breeze-rmm/fwreport/internal/privilege"
	"github.com/breeze-rmm/fwreport/internal/render"
	"github.com/breeze-rmm/fwreport/internal/svcquery"
	"github.com/breeze-rmm/fwreport/internal/wua"
)

// Options controls how the report is written.
type Options struct {
	Format  string // "text", "json" or "yaml"
	NoColor bool
}

// Reporter queries the update service and prints the firmware views.
type Reporter struct {
	svc  wua.Service
	out  io.Writer
	opts Options

	system       func() collectors.SystemInfo
	serviceState func(name string) (svcquery.ServiceInfo, error)
	elevated     func() bool
	now          func() time.Time
}

// New returns a Reporter writing to out.
func New(svc wua.Service, out io.Writer, opts Options) *Reporter {
	return &Reporter{
		svc:          svc,
		out:          out,
		opts:         opts,
		system:       collectors.NewSystemCollector().Collect,
		serviceState: svcquery.GetStatus,
		elevated:     privilege.IsElevated,
		now:          time.Now,
	}
}

// Run collects the firmware views and writes the report. Nothing is written
// if any service call fails.
func (r *Reporter) Run(ctx context.Context) error {
	log := logging.FromContext(ctx)

	if !r.elevated() {
		log.Debug("not running elevated, the update search may be denied")
	}
	r.checkUpdateService(log)

	views, err := r.Collect(ctx)
	if err != nil {
		return err
	}

	report := render.Report{
		GeneratedAt: r.now(),
		System:      r.system(),
		Views:       views,
	}
	return render.Write(r.out, r.opts.Format, report, render.Options{NoColor: r.opts.NoColor})
}

// Collect runs the search and history queries in one session and derives the
// firmware views. The first failing call aborts the run.
func (r *Reporter) Collect(ctx context.Context) (firmware.Views, error) {
	log := logging.FromContext(ctx)

	log.Debug("opening update session")
	session, err := r.svc.Open()
	if err != nil {
		return firmware.Views{}, err
	}
	defer func() {
		if cerr := session.Close(); cerr != nil {
			log.Warn("closing update session", logging.KeyError, cerr)
		}
	}()

	log.Debug("searching for updates", "criteria", wua.DriverSearchCriteria)
	start := time.Now()
	records, err := session.Search(wua.DriverSearchCriteria)
	if err != nil {
		return firmware.Views{}, err
	}
	log.Debug("search complete", logging.KeyCount, len(records), logging.KeyDurationMs, time.Since(start).Milliseconds())

	total, err := session.HistoryCount()
	if err != nil {
		return firmware.Views{}, err
	}
	log.Debug("querying update history", logging.KeyCount, total)

	start = time.Now()
	history, err := session.QueryHistory(0, total)
	if err != nil {
		return firmware.Views{}, err
	}
	log.Debug("history query complete", logging.KeyCount, len(history), logging.KeyDurationMs, time.Since(start).Milliseconds())

	views := firmware.Classify(records, history)
	narrateMatches(log, "available", titlesOf(views.Available))
	narrateMatches(log, "installed", historyTitles(views.Installed))
	log.Debug("firmware updates classified",
		"available", len(views.Available), "installed", len(views.Installed), "pending", len(views.Pending))

	return views, nil
}

// checkUpdateService logs the state of the Windows Update service. It never
// blocks the run; a stopped service surfaces as a search failure.
func (r *Reporter) checkUpdateService(log *slog.Logger) {
	info, err := r.serviceState(svcquery.UpdateServiceName)
	if err != nil {
		log.Debug("update service state unavailable", logging.KeyError, err)
		return
	}

	switch {
	case info.IsDisabled():
		log.Info("update service is disabled, the search will likely fail", "service", info.Name)
	case !info.IsActive():
		log.Info("update service is not running, it will be started on demand", "service", info.Name, "status", info.Status)
	default:
		log.Debug("update service is running", "service", info.Name, "startType", info.StartType)
	}
}

func narrateMatches(log *slog.Logger, view string, titles []string) {
	if !log.Enabled(context.Background(), slog.LevelDebug) {
		return
	}
	for _, title := range titles {
		kw, _ := firmware.MatchedKeyword(title)
		log.Debug("firmware match", "view", view, logging.KeyTitle, title, logging.KeyKeyword, kw)
	}
}

func titlesOf(records []wua.UpdateRecord) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.Title
	}
	return out
}

func historyTitles(entries []wua.HistoryEntry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Title
	}
	return out
}
