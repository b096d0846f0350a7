package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/rohmanhakim/richtext-icons/internal/catalog"
	"github.com/rohmanhakim/richtext-icons/internal/scheduler"
)

// generateStylesheet runs one stylesheet execution and reports it.
func generateStylesheet(ctx context.Context, s *scheduler.Scheduler, out io.Writer, errOut io.Writer) error {
	execution, err := s.ExecuteStylesheet(ctx)
	if err != nil {
		return err
	}
	reportRejected(errOut, execution.Catalog.Rejected)

	if execution.WriteResult == nil {
		_, err = out.Write(execution.Content)
		return err
	}
	status := "wrote"
	if execution.WriteResult.Unchanged() {
		status = "unchanged"
	}
	fmt.Fprintf(out, "%s %s?ver=%s (%d icons)\n",
		status,
		execution.WriteResult.Path(),
		execution.WriteResult.ContentHash(),
		len(execution.Catalog.Icons),
	)
	return nil
}

// generatePreview runs one preview execution and reports it.
func generatePreview(ctx context.Context, s *scheduler.Scheduler, title string, out io.Writer, errOut io.Writer) error {
	execution, err := s.ExecutePreview(ctx, title)
	if err != nil {
		return err
	}
	reportRejected(errOut, execution.Catalog.Rejected)

	if execution.WriteResult == nil {
		_, err = out.Write(execution.Content)
		return err
	}
	fmt.Fprintf(out, "wrote %s (%d icons)\n", execution.WriteResult.Path(), len(execution.Catalog.Icons))
	return nil
}

func reportRejected(w io.Writer, rejected []catalog.Rejection) {
	for _, r := range rejected {
		fmt.Fprintf(w, "skipped %s: %s\n", r.File, r.Err)
	}
}
