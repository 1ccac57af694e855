//go:build windows

package wua

import (
	"fmt"
	"runtime"
	"strings"
	"time"

	"github.com/go-ole/go-ole"
	"github.com/go-ole/go-ole/oleutil"

	"github.com/breeze-rmm/fwreport/internal/logging"
)

var log = logging.L("wua")

// comService talks to the Windows Update Agent through its COM automation API.
type comService struct{}

// NewService returns the Windows Update Agent backed Service.
func NewService() Service {
	return comService{}
}

// comSession owns the IUpdateSession and its searcher. The calling goroutine
// stays locked to its OS thread until Close, since the COM apartment is per thread.
type comSession struct {
	session  *ole.IDispatch
	searcher *ole.IDispatch
	closed   bool
}

// Open initializes COM on the current thread and creates an update session.
func (comService) Open() (Session, error) {
	runtime.LockOSThread()

	if err := ole.CoInitializeEx(0, ole.COINIT_APARTMENTTHREADED); err != nil {
		runtime.UnlockOSThread()
		return nil, wrapErr("initialize COM", err)
	}

	unknown, err := oleutil.CreateObject("Microsoft.Update.Session")
	if err != nil {
		ole.CoUninitialize()
		runtime.UnlockOSThread()
		return nil, wrapErr("create update session", err)
	}
	defer unknown.Release()

	session, err := unknown.QueryInterface(ole.IID_IDispatch)
	if err != nil {
		ole.CoUninitialize()
		runtime.UnlockOSThread()
		return nil, wrapErr("query update session", err)
	}

	searcherVar, err := oleutil.CallMethod(session, "CreateUpdateSearcher")
	if err != nil {
		session.Release()
		ole.CoUninitialize()
		runtime.UnlockOSThread()
		return nil, wrapErr("create update searcher", err)
	}
	searcher := searcherVar.ToIDispatch()
	if searcher == nil {
		searcherVar.Clear()
		session.Release()
		ole.CoUninitialize()
		runtime.UnlockOSThread()
		return nil, wrapErr("create update searcher", fmt.Errorf("nil searcher"))
	}

	log.Debug("update session opened")
	return &comSession{session: session, searcher: searcher}, nil
}

// Close releases the COM objects and the thread lock taken by Open.
func (s *comSession) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true

	s.searcher.Release()
	s.session.Release()
	ole.CoUninitialize()
	runtime.UnlockOSThread()
	return nil
}

// Search runs an IUpdateSearcher.Search and converts each IUpdate in order.
func (s *comSession) Search(criteria string) ([]UpdateRecord, error) {
	resultVar, err := oleutil.CallMethod(s.searcher, "Search", criteria)
	if err != nil {
		return nil, wrapErr("search", err)
	}
	defer resultVar.Clear()

	result := resultVar.ToIDispatch()
	if result == nil {
		return nil, wrapErr("search", fmt.Errorf("nil result"))
	}

	updatesVar, err := oleutil.GetProperty(result, "Updates")
	if err != nil {
		return nil, wrapErr("search", fmt.Errorf("updates collection: %w", err))
	}
	defer updatesVar.Clear()

	updates := updatesVar.ToIDispatch()
	if updates == nil {
		return nil, wrapErr("search", fmt.Errorf("updates collection missing"))
	}

	count, err := getIntProperty(updates, "Count")
	if err != nil {
		return nil, wrapErr("search", fmt.Errorf("updates count: %w", err))
	}

	records := make([]UpdateRecord, 0, count)
	for i := 0; i < count; i++ {
		itemVar, err := oleutil.GetProperty(updates, "Item", i)
		if err != nil {
			return nil, wrapErr("search", fmt.Errorf("update %d: %w", i, err))
		}
		update, err := itemDispatch(itemVar, "update", i)
		if err != nil {
			itemVar.Clear()
			return nil, wrapErr("search", err)
		}

		record := updateToRecord(update)
		itemVar.Clear()
		records = append(records, record)
	}

	return records, nil
}

// HistoryCount returns IUpdateSearcher.GetTotalHistoryCount.
func (s *comSession) HistoryCount() (int, error) {
	countVar, err := oleutil.CallMethod(s.searcher, "GetTotalHistoryCount")
	if err != nil {
		return 0, wrapErr("history count", err)
	}
	defer countVar.Clear()
	return int(countVar.Val), nil
}

// QueryHistory returns count history entries starting at offset.
func (s *comSession) QueryHistory(offset, count int) ([]HistoryEntry, error) {
	if count <= 0 {
		return []HistoryEntry{}, nil
	}

	historyVar, err := oleutil.CallMethod(s.searcher, "QueryHistory", offset, count)
	if err != nil {
		return nil, wrapErr("query history", err)
	}
	defer historyVar.Clear()

	history := historyVar.ToIDispatch()
	if history == nil {
		return nil, wrapErr("query history", fmt.Errorf("history collection missing"))
	}

	n, err := getIntProperty(history, "Count")
	if err != nil {
		return nil, wrapErr("query history", fmt.Errorf("history count: %w", err))
	}

	entries := make([]HistoryEntry, 0, n)
	for i := 0; i < n; i++ {
		itemVar, err := oleutil.GetProperty(history, "Item", i)
		if err != nil {
			return nil, wrapErr("query history", fmt.Errorf("entry %d: %w", i, err))
		}
		item, err := itemDispatch(itemVar, "entry", i)
		if err != nil {
			itemVar.Clear()
			return nil, wrapErr("query history", err)
		}

		title, _ := getStringProperty(item, "Title")
		resultCode, _ := getIntProperty(item, "ResultCode")
		date, _ := getDateProperty(item, "Date")
		itemVar.Clear()

		entries = append(entries, HistoryEntry{
			Date:   date,
			Title:  title,
			Result: OperationResult(resultCode),
		})
	}

	return entries, nil
}

func updateToRecord(update *ole.IDispatch) UpdateRecord {
	title, _ := getStringProperty(update, "Title")
	isDownloaded, _ := getBoolProperty(update, "IsDownloaded")
	isInstalled, _ := getBoolProperty(update, "IsInstalled")

	return UpdateRecord{
		Title:          title,
		KBArticleIDs:   kbArticleIDs(update),
		Classification: strings.Join(categoryNames(update), ", "),
		IsDownloaded:   isDownloaded,
		IsInstalled:    isInstalled,
	}
}

// kbArticleIDs returns every KB article ID of the update, "KB"-prefixed.
func kbArticleIDs(update *ole.IDispatch) []string {
	ids := stringCollection(update, "KBArticleIDs")
	for i, kb := range ids {
		if kb != "" && !strings.HasPrefix(kb, "KB") {
			ids[i] = "KB" + kb
		}
	}
	return ids
}

func categoryNames(update *ole.IDispatch) []string {
	catsVar, err := oleutil.GetProperty(update, "Categories")
	if err != nil {
		return nil
	}
	defer catsVar.Clear()

	cats := catsVar.ToIDispatch()
	if cats == nil {
		return nil
	}

	count, err := getIntProperty(cats, "Count")
	if err != nil {
		return nil
	}

	names := make([]string, 0, count)
	for i := 0; i < count; i++ {
		itemVar, err := oleutil.GetProperty(cats, "Item", i)
		if err != nil {
			continue
		}
		cat := itemVar.ToIDispatch()
		if cat != nil {
			if name, err := getStringProperty(cat, "Name"); err == nil && name != "" {
				names = append(names, name)
			}
		}
		itemVar.Clear()
	}
	return names
}

// stringCollection reads an IStringCollection property into a slice.
func stringCollection(dispatch *ole.IDispatch, name string) []string {
	collVar, err := oleutil.GetProperty(dispatch, name)
	if err != nil {
		return nil
	}
	defer collVar.Clear()

	coll := collVar.ToIDispatch()
	if coll == nil {
		return nil
	}

	count, err := getIntProperty(coll, "Count")
	if err != nil || count == 0 {
		return nil
	}

	values := make([]string, 0, count)
	for i := 0; i < count; i++ {
		itemVar, err := oleutil.GetProperty(coll, "Item", i)
		if err != nil {
			continue
		}
		values = append(values, itemVar.ToString())
		itemVar.Clear()
	}
	return values
}

func getStringProperty(dispatch *ole.IDispatch, name string) (string, error) {
	value, err := oleutil.GetProperty(dispatch, name)
	if err != nil {
		return "", err
	}
	defer value.Clear()
	return value.ToString(), nil
}

func getIntProperty(dispatch *ole.IDispatch, name string) (int, error) {
	value, err := oleutil.GetProperty(dispatch, name)
	if err != nil {
		return 0, err
	}
	defer value.Clear()
	return int(value.Val), nil
}

func getBoolProperty(dispatch *ole.IDispatch, name string) (bool, error) {
	value, err := oleutil.GetProperty(dispatch, name)
	if err != nil {
		return false, err
	}
	defer value.Clear()
	return value.Val != 0, nil
}

func getDateProperty(dispatch *ole.IDispatch, name string) (time.Time, error) {
	value, err := oleutil.GetProperty(dispatch, name)
	if err != nil {
		return time.Time{}, err
	}
	defer value.Clear()
	return ole.GetVariantDate(uint64(value.Val))
}
