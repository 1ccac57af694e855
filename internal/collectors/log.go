package collectors

import "github.com/breeze-rmm/fwreport/internal/logging"

var log = logging.L("collectors")
