package firmware

import "github.com/breeze-rmm/fwreport/internal/wua"

// Views holds the derived firmware collections for one run.
type Views struct {
	Available []wua.UpdateRecord `json:"available" yaml:"available"`
	Installed []wua.HistoryEntry `json:"installed" yaml:"installed"`
	Pending   []wua.UpdateRecord `json:"pending" yaml:"pending"`
}

// FilterUpdates returns the records whose title matches, in input order.
func FilterUpdates(records []wua.UpdateRecord) []wua.UpdateRecord {
	out := make([]wua.UpdateRecord, 0, len(records))
	for _, r := range records {
		if Matches(r.Title) {
			out = append(out, r)
		}
	}
	return out
}

// FilterHistory returns the history entries whose title matches, in input order.
func FilterHistory(entries []wua.HistoryEntry) []wua.HistoryEntry {
	out := make([]wua.HistoryEntry, 0, len(entries))
	for _, e := range entries {
		if Matches(e.Title) {
			out = append(out, e)
		}
	}
	return out
}

// PendingDownload returns the available updates that are not downloaded yet.
func PendingDownload(available []wua.UpdateRecord) []wua.UpdateRecord {
	out := make([]wua.UpdateRecord, 0, len(available))
	for _, r := range available {
		if !r.IsDownloaded {
			out = append(out, r)
		}
	}
	return out
}

// Classify derives all three views from a search result and the update history.
func Classify(records []wua.UpdateRecord, history []wua.HistoryEntry) Views {
	available := FilterUpdates(records)
	return Views{
		Available: available,
		Installed: FilterHistory(history),
		Pending:   PendingDownload(available),
	}
}
