package render

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/breeze-rmm/fwreport/internal/collectors"
	"github.com/breeze-rmm/fwreport/internal/firmware"
	"github.com/breeze-rmm/fwreport/internal/wua"
)

func renderText(t *testing.T, report Report) string {
	t.Helper()
	var buf bytes.Buffer
	if err := Text(&buf, report, Options{NoColor: true}); err != nil {
		t.Fatalf("Text: %v", err)
	}
	return buf.String()
}

func TestTextEmptyReportPrintsNoneMessages(t *testing.T) {
	out := renderText(t, Report{})

	for _, want := range []string{
		HeaderAvailable, NoneAvailable,
		HeaderInstalled, NoneInstalled,
		HeaderPending, NonePending,
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}
	if strings.Contains(out, "TITLE") || strings.Contains(out, "DATE") {
		t.Fatalf("no table expected for empty report:\n%s", out)
	}
	if strings.Contains(out, "\x1b[") {
		t.Fatalf("no ANSI escapes expected with NoColor:\n%s", out)
	}
}

func TestTextSectionOrder(t *testing.T) {
	out := renderText(t, Report{})

	a := strings.Index(out, HeaderAvailable)
	i := strings.Index(out, HeaderInstalled)
	p := strings.Index(out, HeaderPending)
	if !(a < i && i < p) {
		t.Fatalf("sections out of order (%d, %d, %d):\n%s", a, i, p, out)
	}
}

func TestTextAvailableAndPendingTables(t *testing.T) {
	bios := wua.UpdateRecord{
		Title:          "2024-09 BIOS Update for Model X",
		KBArticleIDs:   []string{"KB5040001", "KB5040002"},
		Classification: "Drivers",
		IsDownloaded:   false,
	}
	report := Report{Views: firmware.Classify([]wua.UpdateRecord{bios}, nil)}

	out := renderText(t, report)

	if !strings.Contains(out, "TITLE") || !strings.Contains(out, "KB ARTICLES") || !strings.Contains(out, "DOWNLOADED") {
		t.Fatalf("expected available table header:\n%s", out)
	}
	if strings.Count(out, bios.Title) != 2 {
		t.Fatalf("expected title in available and pending tables:\n%s", out)
	}
	if !strings.Contains(out, "KB5040001, KB5040002") {
		t.Fatalf("expected joined KB list:\n%s", out)
	}
	if !strings.Contains(out, "false") {
		t.Fatalf("expected downloaded column:\n%s", out)
	}
	if !strings.Contains(out, NoneInstalled) {
		t.Fatalf("expected installed none-message:\n%s", out)
	}
	if strings.Contains(out, NoneAvailable) || strings.Contains(out, NonePending) {
		t.Fatalf("unexpected none-message for populated sections:\n%s", out)
	}
}

func TestTextInstalledTable(t *testing.T) {
	date := time.Date(2024, 8, 14, 10, 30, 0, 0, time.Local)
	report := Report{Views: firmware.Views{
		Installed: []wua.HistoryEntry{{
			Date:   date,
			Title:  "Intel Management Engine Firmware Update",
			Result: wua.ResultSucceeded,
		}},
	}}

	out := renderText(t, report)

	for _, want := range []string{"DATE", "RESULT", "2024-08-14 10:30:00", "Intel Management Engine Firmware Update", "Succeeded"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}
	if !strings.Contains(out, NoneAvailable) || !strings.Contains(out, NonePending) {
		t.Fatalf("expected available and pending none-messages:\n%s", out)
	}
}

func TestTextMissingKBPrintsDash(t *testing.T) {
	report := Report{Views: firmware.Views{
		Available: []wua.UpdateRecord{{Title: "UEFI CA update", IsDownloaded: true}},
	}}
	out := renderText(t, report)

	var row string
	for _, line := range strings.Split(out, "\n") {
		if strings.HasPrefix(line, "UEFI CA update") {
			row = line
			break
		}
	}
	if row == "" {
		t.Fatalf("expected update row:\n%s", out)
	}
	if !strings.Contains(row, " - ") || !strings.HasSuffix(strings.TrimSpace(row), "true") {
		t.Fatalf("unexpected row %q", row)
	}
}

func TestTextHostPreamble(t *testing.T) {
	report := Report{System: collectors.SystemInfo{
		Hostname:     "ws-042",
		OSVersion:    "Microsoft Windows 11 Pro 10.0.22631",
		Manufacturer: "LENOVO",
		Model:        "20XW0026US",
		BIOSVersion:  "N32ET86W (1.62 )",
	}}

	out := renderText(t, report)
	if !strings.HasPrefix(out, "Host: ws-042 (Microsoft Windows 11 Pro 10.0.22631)\n") {
		t.Fatalf("unexpected preamble:\n%s", out)
	}
	if !strings.Contains(out, "Firmware: LENOVO 20XW0026US, BIOS N32ET86W (1.62 )") {
		t.Fatalf("expected firmware line:\n%s", out)
	}
}
