// Package reporter collects the diagnostics of a single parse.
package reporter

import (
	"fmt"

	"go.uber.org/zap"
)

// Reporter is an append-only list of diagnostics. Every entry is mirrored to
// the logger at debug level. The zero value is not usable; call [New].
type Reporter struct {
	messages []string
	logger   *zap.Logger
}

// New returns an empty [Reporter] writing to logger. A nil logger discards
// log entries.
func New(logger *zap.Logger) *Reporter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Reporter{logger: logger}
}

// Report appends msg and logs it with the given field name.
func (r *Reporter) Report(field string, msg string) {
	r.messages = append(r.messages, msg)
	r.logger.Debug(msg, zap.String("field", field))
}

// Reportf formats and appends a diagnostic.
func (r *Reporter) Reportf(field string, format string, args ...any) {
	r.Report(field, fmt.Sprintf(format, args...))
}

// Messages returns the diagnostics in the order they were reported.
func (r *Reporter) Messages() []string {
	return r.messages
}
