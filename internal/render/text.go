package render

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/breeze-rmm/fwreport/internal/wua"
)

// Section headers and the messages printed when a section is empty.
const (
	HeaderAvailable = "Available Firmware Updates:"
	HeaderInstalled = "Installed Firmware Updates (History):"
	HeaderPending   = "Firmware Updates Pending Download:"

	NoneAvailable = "No firmware updates available."
	NoneInstalled = "No firmware updates installed."
	NonePending   = "No firmware updates pending download."
)

// DateLayout formats history dates in local time.
const DateLayout = "2006-01-02 15:04:05"

var (
	headerColor = lipgloss.Color("#0969DA")
	dimColor    = lipgloss.Color("#6E7681")
)

type styles struct {
	header lipgloss.Style
	none   lipgloss.Style
	host   lipgloss.Style
}

func newStyles(w io.Writer, opts Options) styles {
	r := lipgloss.NewRenderer(w)
	if opts.NoColor {
		r.SetColorProfile(termenv.Ascii)
	}
	return styles{
		header: r.NewStyle().Bold(true).Foreground(headerColor),
		none:   r.NewStyle().Foreground(dimColor),
		host:   r.NewStyle().Faint(true),
	}
}

// Text writes the host preamble and the three report sections.
func Text(w io.Writer, report Report, opts Options) error {
	st := newStyles(w, opts)

	if err := writeHost(w, st, report); err != nil {
		return err
	}
	if err := writeAvailable(w, st, report.Available); err != nil {
		return err
	}
	if err := writeInstalled(w, st, report.Installed); err != nil {
		return err
	}
	return writePending(w, st, report.Pending)
}

func writeHost(w io.Writer, st styles, report Report) error {
	sys := report.System
	if sys.Hostname == "" {
		return nil
	}

	line := "Host: " + sys.Hostname
	if osVersion := strings.TrimSpace(sys.OSVersion); osVersion != "" {
		line += " (" + osVersion + ")"
	}
	if _, err := fmt.Fprintln(w, st.host.Render(line)); err != nil {
		return err
	}

	if sys.BIOSVersion != "" {
		device := strings.TrimSpace(sys.Manufacturer + " " + sys.Model)
		fw := "Firmware: BIOS " + sys.BIOSVersion
		if device != "" {
			fw = "Firmware: " + device + ", BIOS " + sys.BIOSVersion
		}
		if _, err := fmt.Fprintln(w, st.host.Render(fw)); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w)
	return err
}

func writeAvailable(w io.Writer, st styles, updates []wua.UpdateRecord) error {
	if _, err := fmt.Fprintln(w, st.header.Render(HeaderAvailable)); err != nil {
		return err
	}
	if len(updates) == 0 {
		return writeNone(w, st, NoneAvailable)
	}

	tw := newTable(w)
	fmt.Fprintln(tw, "TITLE\tKB ARTICLES\tCLASSIFICATION\tDOWNLOADED")
	for _, u := range updates {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%t\n", u.Title, kbList(u.KBArticleIDs), u.Classification, u.IsDownloaded)
	}
	return endTable(w, tw)
}

func writeInstalled(w io.Writer, st styles, entries []wua.HistoryEntry) error {
	if _, err := fmt.Fprintln(w, st.header.Render(HeaderInstalled)); err != nil {
		return err
	}
	if len(entries) == 0 {
		return writeNone(w, st, NoneInstalled)
	}

	tw := newTable(w)
	fmt.Fprintln(tw, "DATE\tTITLE\tRESULT")
	for _, e := range entries {
		date := ""
		if !e.Date.IsZero() {
			date = e.Date.Local().Format(DateLayout)
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\n", date, e.Title, e.Result)
	}
	return endTable(w, tw)
}

func writePending(w io.Writer, st styles, updates []wua.UpdateRecord) error {
	if _, err := fmt.Fprintln(w, st.header.Render(HeaderPending)); err != nil {
		return err
	}
	if len(updates) == 0 {
		return writeNone(w, st, NonePending)
	}

	tw := newTable(w)
	fmt.Fprintln(tw, "TITLE\tKB ARTICLES\tCLASSIFICATION")
	for _, u := range updates {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", u.Title, kbList(u.KBArticleIDs), u.Classification)
	}
	return endTable(w, tw)
}

func writeNone(w io.Writer, st styles, msg string) error {
	_, err := fmt.Fprintf(w, "%s\n\n", st.none.Render(msg))
	return err
}

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
}

func endTable(w io.Writer, tw *tabwriter.Writer) error {
	if err := tw.Flush(); err != nil {
		return err
	}
	_, err := fmt.Fprintln(w)
	return err
}

func kbList(ids []string) string {
	if len(ids) == 0 {
		return "-"
	}
	return strings.Join(ids, ", ")
}
