package mock

import (
	"context"

	"github.com/provdir/provdir"
)

var _ provdir.ReportWriter = (*ReportWriter)(nil)

// ReportWriter is a mock implementation of provdir.ReportWriter.
type ReportWriter struct {
	WriteReportFn func(ctx context.Context, report *provdir.Report) error
}

func (w *ReportWriter) WriteReport(ctx context.Context, report *provdir.Report) error {
	return w.WriteReportFn(ctx, report)
}
