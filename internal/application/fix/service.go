// Package fix runs one repair-and-merge invocation over a set of history files.
package fix

import (
	"context"
	"errors"

	appconfig "github.com/doeshing/fishfix/internal/application/config"
	"github.com/doeshing/fishfix/internal/application/merge"
	"github.com/doeshing/fishfix/internal/application/repair"
	"github.com/doeshing/fishfix/internal/domain"
	"github.com/doeshing/fishfix/internal/ports"
)

// Service coordinates reading, repairing, merging and writing history.
type Service struct {
	Source      ports.HistorySource
	Sink        ports.HistorySink
	OpenArchive ports.ArchiveOpener
	Logger      ports.Logger
}

// Run processes req. Parse errors and ordering anomalies are counted in the result;
// only configuration and I/O failures are returned as errors.
func (s *Service) Run(ctx context.Context, req domain.FixRequest) (domain.FixResult, error) {
	if err := appconfig.ValidateRequest(req); err != nil {
		return domain.FixResult{}, err
	}

	opts := repair.Options{
		FixEnabled: req.ParseFix && !req.Lint,
		FixPaths:   req.FixPaths,
		Detail:     req.Verbose,
	}

	var (
		stats  domain.RunStats
		groups = make([][]domain.HistoryRecord, 0, len(req.Inputs))
	)
	for _, path := range req.Inputs {
		if err := ctx.Err(); err != nil {
			return domain.FixResult{Stats: stats}, err
		}
		s.Logger.Info("reading history", map[string]interface{}{"file": path})
		raw, err := s.Source.Read(path)
		if err != nil {
			return domain.FixResult{Stats: stats}, err
		}

		opts.Source = path
		records, fileStats := repair.ParseAndRepair(raw, opts)
		s.report(path, raw, records, fileStats)
		groups = append(groups, records)
		stats = stats.Add(fileStats)
	}

	merged, unsorted := merge.MergeAndSort(groups, req.Sort && !req.Lint)
	stats.UnsortedCount = unsorted
	s.Logger.Info("history merged", map[string]interface{}{
		"records":  len(merged),
		"unsorted": unsorted,
		"sorted":   req.Sort && !req.Lint,
	})

	result := domain.FixResult{Stats: stats, Records: len(merged)}
	if req.Lint {
		return result, nil
	}

	out := req.OutPath
	if out == "" {
		out = domain.StdioPath
	}
	written, err := s.write(out, req.Append, merged)
	result.BytesWritten = written
	if err != nil {
		return result, err
	}
	result.Output = out

	if req.ArchivePath != "" {
		archived, err := s.archive(ctx, req.ArchivePath, req.Inputs, groups)
		result.Archived = archived
		if err != nil {
			return result, err
		}
	}
	return result, nil
}

func (s *Service) write(path string, appendMode bool, records []domain.HistoryRecord) (int64, error) {
	w, err := s.Sink.Create(path, appendMode)
	if err != nil {
		return 0, err
	}
	written, err := merge.Write(w, records)
	if closeErr := w.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		var ioErr *domain.IOError
		if !errors.As(err, &ioErr) {
			err = &domain.IOError{Op: "write", Path: path, Err: err}
		}
		return written, err
	}
	s.Logger.Info("history written", map[string]interface{}{"file": path, "bytes": written, "append": appendMode})
	return written, nil
}

// archive decodes each input's records and stores them. Records that still fail to
// decode, which only happens when repair was disabled, are skipped with a warning.
func (s *Service) archive(ctx context.Context, path string, inputs []string, groups [][]domain.HistoryRecord) (int, error) {
	if s.OpenArchive == nil {
		return 0, errors.New("archive is not available")
	}
	store, err := s.OpenArchive(path)
	if err != nil {
		return 0, err
	}
	defer func() {
		if err := store.Close(); err != nil {
			s.Logger.Error("closing archive", err, map[string]interface{}{"file": path})
		}
	}()

	total := 0
	for i, group := range groups {
		entries := make([]domain.HistoryEntry, 0, len(group))
		for _, rec := range group {
			entry, err := repair.DecodeEntry(rec)
			if err != nil {
				s.Logger.Warn("record not archived", map[string]interface{}{"file": rec.Source, "line": rec.StartLine, "error": err.Error()})
				continue
			}
			entries = append(entries, entry)
		}
		n, err := store.Save(ctx, inputs[i], entries)
		if err != nil {
			return total, err
		}
		total += n
	}
	s.Logger.Info("history archived", map[string]interface{}{"file": path, "inserted": total})
	return total, nil
}

func (s *Service) report(path, raw string, records []domain.HistoryRecord, stats domain.RunStats) {
	for _, rec := range records {
		if !rec.Outcome.Valid {
			s.Logger.Debug("unparseable cmd line", map[string]interface{}{
				"file":     path,
				"line":     rec.StartLine,
				"text":     rec.CmdLine(),
				"error":    rec.Outcome.ErrorDetail,
				"repaired": rec.Outcome.Repaired,
			})
		}
		if rec.WhenStatus == domain.WhenInvalid {
			s.Logger.Debug("invalid when value, sorting as 0", map[string]interface{}{"file": path, "line": rec.StartLine})
		}
	}
	if stats.StrayLines > 0 {
		s.Logger.Warn("dropped lines outside any record", map[string]interface{}{
			"file":  path,
			"lines": repair.StrayLines(raw),
		})
	}
	s.Logger.Info("history checked", map[string]interface{}{
		"file":        path,
		"records":     stats.TotalRecords,
		"unparseable": stats.UnparseableCount,
		"repaired":    stats.RepairedCount,
		"bad_paths":   stats.UnparseablePaths,
		"fixed_paths": stats.RepairedPaths,
	})
}
