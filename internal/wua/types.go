package wua

import (
	"fmt"
	"time"
)

// DriverSearchCriteria selects driver-type updates that are not yet installed.
const DriverSearchCriteria = "IsInstalled=0 and Type='Driver'"

// UpdateRecord is one update returned by a search.
type UpdateRecord struct {
	Title          string   `json:"title" yaml:"title"`
	KBArticleIDs   []string `json:"kbArticleIds" yaml:"kbArticleIds"` // e.g. "KB5034441"
	Classification string   `json:"classification" yaml:"classification"`
	IsDownloaded   bool     `json:"isDownloaded" yaml:"isDownloaded"`
	IsInstalled    bool     `json:"isInstalled" yaml:"isInstalled"`
}

// HistoryEntry is one past update operation from the update history.
type HistoryEntry struct {
	Date   time.Time       `json:"date" yaml:"date"`
	Title  string          `json:"title" yaml:"title"`
	Result OperationResult `json:"result" yaml:"result"`
}

// OperationResult mirrors the WUA OperationResultCode enumeration.
type OperationResult int

const (
	ResultNotStarted          OperationResult = 0
	ResultInProgress          OperationResult = 1
	ResultSucceeded           OperationResult = 2
	ResultSucceededWithErrors OperationResult = 3
	ResultFailed              OperationResult = 4
	ResultAborted             OperationResult = 5
)

func (r OperationResult) String() string {
	switch r {
	case ResultNotStarted:
		return "NotStarted"
	case ResultInProgress:
		return "InProgress"
	case ResultSucceeded:
		return "Succeeded"
	case ResultSucceededWithErrors:
		return "SucceededWithErrors"
	case ResultFailed:
		return "Failed"
	case ResultAborted:
		return "Aborted"
	default:
		return fmt.Sprintf("Unknown(%d)", int(r))
	}
}

// MarshalText renders the result by name in JSON and YAML output.
func (r OperationResult) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

// Service opens query sessions against the host update service.
type Service interface {
	Open() (Session, error)
}

// Session is a single query session. Implementations are not safe for
// concurrent use and must be closed by the caller.
type Session interface {
	Search(criteria string) ([]UpdateRecord, error)
	HistoryCount() (int, error)
	QueryHistory(offset, count int) ([]HistoryEntry, error)
	Close() error
}
