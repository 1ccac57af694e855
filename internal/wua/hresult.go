package wua

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"

	"github.com/go-ole/go-ole"
)

// dispExceptionHResult is DISP_E_EXCEPTION; the real failure code is carried in
// the EXCEPINFO attached to the OLE error.
const dispExceptionHResult uint32 = 0x80020009

// hresultInfo holds a human-readable name and description for a WUA HRESULT code.
type hresultInfo struct {
	Name    string
	Message string
}

// knownHResults maps HRESULT codes seen while searching and reading history.
var knownHResults = map[uint32]hresultInfo{
	0x8024000B: {"WU_E_CALL_CANCELLED", "operation was cancelled"},
	0x8024000E: {"WU_E_OPERATIONINPROGRESS", "another conflicting operation was in progress"},
	0x80240004: {"WU_E_NOT_INITIALIZED", "Windows Update Agent is not initialized"},
	0x80240007: {"WU_E_INVALIDINDEX", "the index to a collection was invalid"},
	0x80240024: {"WU_E_NO_UPDATE", "there are no updates"},
	0x8024002E: {"WU_E_WU_DISABLED", "non-managed server access is not allowed"},
	0x80240032: {"WU_E_INVALID_CRITERIA", "the search criteria string was invalid"},
	0x80240438: {"WU_E_PT_ENDPOINT_UNREACHABLE", "there is no route or network connectivity to the endpoint"},
	0x8024401C: {"WU_E_PT_HTTP_STATUS_REQUEST_TIMEOUT", "the server timed out waiting for the request"},
	0x8024402C: {"WU_E_PT_WINHTTP_NAME_NOT_RESOLVED", "the proxy or target server name could not be resolved"},
	0x80244022: {"WU_E_PT_HTTP_STATUS_SERVICE_UNAVAIL", "the update service is temporarily unavailable"},
	0x80240044: {"WU_E_PER_MACHINE_UPDATE_ACCESS_DENIED", "only administrators can perform this operation on per-machine updates"},
	0x8024A000: {"WU_E_AU_NOSERVICE", "automatic Updates was unable to service incoming requests"},

	0x80070005: {"E_ACCESSDENIED", "access denied, run from an elevated prompt"},
	0x8007000E: {"E_OUTOFMEMORY", "not enough memory to complete the operation"},
	0x80070422: {"ERROR_SERVICE_DISABLED", "the Windows Update service (wuauserv) is disabled"},
	0x80070057: {"E_INVALIDARG", "one or more arguments are not valid"},
	0x800401F3: {"CO_E_CLASSSTRING", "Microsoft.Update.Session is not registered on this host"},
	0x80072EE2: {"WININET_E_TIMEOUT", "the operation timed out"},
	0x80072EFD: {"WININET_E_CANNOT_CONNECT", "could not connect to the update server"},
	0x80072EE7: {"WININET_E_NAME_NOT_RESOLVED", "the update server name could not be resolved"},
	0x80072F8F: {"WININET_E_DECODING_FAILED", "a security error occurred (certificate problem)"},
}

// FormatHResult returns a human-readable description of a WUA HRESULT code.
// For known codes: "0x80240024: WU_E_NO_UPDATE: there are no updates"
// For unknown codes: "0x80070070: unknown HRESULT"
func FormatHResult(hr uint32) string {
	if info, ok := knownHResults[hr]; ok {
		return fmt.Sprintf("0x%08X: %s: %s", hr, info.Name, info.Message)
	}
	return fmt.Sprintf("0x%08X: unknown HRESULT", hr)
}

var hresultPattern = regexp.MustCompile(`(?i)\b(?:0x)?(8[0-9a-f]{7})\b`)

// HResultFromError recovers an HRESULT from a COM error. OLE errors report the
// code directly; for DISP_E_EXCEPTION the EXCEPINFO scode is preferred. Other
// errors are scanned for an embedded 0x8XXXXXXX code.
func HResultFromError(err error) (uint32, bool) {
	if err == nil {
		return 0, false
	}

	var oleErr *ole.OleError
	if errors.As(err, &oleErr) {
		hr := uint32(oleErr.Code())
		if hr == dispExceptionHResult {
			if sc, ok := oleErr.SubError().(interface{ SCODE() uint32 }); ok && sc.SCODE() != 0 {
				return sc.SCODE(), true
			}
		}
		if hr != 0 {
			return hr, true
		}
	}

	m := hresultPattern.FindStringSubmatch(err.Error())
	if m == nil {
		return 0, false
	}
	v, perr := strconv.ParseUint(m[1], 16, 32)
	if perr != nil {
		return 0, false
	}
	return uint32(v), true
}

// IsAccessDenied returns true if the HRESULT indicates an access denied error.
func IsAccessDenied(hr uint32) bool {
	return hr == 0x80070005 || hr == 0x80240044
}

// IsNetworkError returns true if the HRESULT indicates a network connectivity issue.
func IsNetworkError(hr uint32) bool {
	switch hr {
	case 0x80072EE2, 0x80072EFD, 0x80072EE7, 0x80072F8F, 0x80240438, 0x8024401C, 0x8024402C, 0x80244022:
		return true
	}
	return false
}

// Hint returns a short remediation hint for a failure, or "" when none applies.
func Hint(err error) string {
	var svcErr *ServiceError
	if !errors.As(err, &svcErr) {
		return ""
	}
	switch {
	case IsAccessDenied(svcErr.HResult):
		return "re-run from an elevated (administrator) prompt"
	case IsNetworkError(svcErr.HResult):
		return "check network access to the update service"
	case svcErr.HResult == 0x80070422:
		return "enable the Windows Update service (wuauserv)"
	}
	return ""
}
