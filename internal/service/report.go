// Package service implements the analysis use cases: each one is a thin
// configuration of the shared remote-run capability in internal/domain/run,
// persisting its outcome as a report record.
package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/rivalradar/rivalradar/internal/core"
	"github.com/rivalradar/rivalradar/internal/domain/model"
	apperrors "github.com/rivalradar/rivalradar/internal/errors"
)

// ReportServiceOptions groups dependencies for ReportService.
type ReportServiceOptions struct {
	Store core.ReportStore
}

// ReportService persists and retrieves report records through the report
// store. Records are stored as JSON under "report:<kind>:<id>" keys.
type ReportService struct {
	store core.ReportStore
}

// NewReportService constructs a new ReportService.
func NewReportService(opts ReportServiceOptions) *ReportService {
	return &ReportService{store: opts.Store}
}

// Save validates and persists a report, replacing any previous version.
func (s *ReportService) Save(ctx context.Context, report *model.Report) error {
	if err := report.Validate(); err != nil {
		return apperrors.Wrap(err, apperrors.ErrCodeValidation, "invalid report")
	}
	b, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("marshal report %s: %w", report.ID, err)
	}
	if err := s.store.Set(ctx, report.StoreKey(), b); err != nil {
		return fmt.Errorf("persist report %s: %w", report.ID, err)
	}
	return nil
}

// Get retrieves one report by kind and id. A store miss means the report
// never existed, not that an analysis failed.
func (s *ReportService) Get(ctx context.Context, kind model.ReportKind, id string) (*model.Report, error) {
	b, err := s.store.Get(ctx, model.StoreKey(kind, id))
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return nil, apperrors.NotFoundf("report %s not found", id)
		}
		return nil, fmt.Errorf("load report %s: %w", id, err)
	}

	var report model.Report
	if err := json.Unmarshal(b, &report); err != nil {
		return nil, fmt.Errorf("decode report %s: %w", id, err)
	}
	return &report, nil
}

// List returns all reports of one kind, newest first.
func (s *ReportService) List(ctx context.Context, kind model.ReportKind) ([]*model.Report, error) {
	keys, err := s.store.ListKeys(ctx, model.StoreKeyPrefix(kind))
	if err != nil {
		return nil, fmt.Errorf("list %s reports: %w", kind, err)
	}

	reports := make([]*model.Report, 0, len(keys))
	for _, key := range keys {
		b, err := s.store.Get(ctx, key)
		if err != nil {
			// A key can disappear between listing and loading.
			if errors.Is(err, core.ErrNotFound) {
				continue
			}
			return nil, fmt.Errorf("load report key %q: %w", key, err)
		}
		var report model.Report
		if err := json.Unmarshal(b, &report); err != nil {
			return nil, fmt.Errorf("decode report key %q: %w", key, err)
		}
		reports = append(reports, &report)
	}

	sort.Slice(reports, func(i, j int) bool {
		return reports[i].CreatedAt.After(reports[j].CreatedAt)
	})
	return reports, nil
}

// ListAll returns every report across all kinds, newest first.
func (s *ReportService) ListAll(ctx context.Context) ([]*model.Report, error) {
	kinds := []model.ReportKind{
		model.ReportKindSiteProfile,
		model.ReportKindProducts,
		model.ReportKindSEOAudit,
		model.ReportKindKeywords,
		model.ReportKindComparison,
	}

	var all []*model.Report
	for _, kind := range kinds {
		reports, err := s.List(ctx, kind)
		if err != nil {
			return nil, err
		}
		all = append(all, reports...)
	}
	sort.Slice(all, func(i, j int) bool {
		return all[i].CreatedAt.After(all[j].CreatedAt)
	})
	return all, nil
}

// Delete removes a report. Returns true if it existed.
func (s *ReportService) Delete(ctx context.Context, kind model.ReportKind, id string) (bool, error) {
	existed, err := s.store.Delete(ctx, model.StoreKey(kind, id))
	if err != nil {
		return false, fmt.Errorf("delete report %s: %w", id, err)
	}
	return existed, nil
}

// Health checks the backing store.
func (s *ReportService) Health(ctx context.Context) error {
	return s.store.Health(ctx)
}

// completeReport marshals payload into the report, marks it completed, and
// persists the final record.
func completeReport(ctx context.Context, reports *ReportService, report *model.Report, payload any) error {
	b, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal %s payload: %w", report.Kind, err)
	}
	if err := report.Complete(b); err != nil {
		return err
	}
	return reports.Save(ctx, report)
}

// failReport persists the failed record and returns the original cause so
// callers can log and classify it.
func failReport(ctx context.Context, reports *ReportService, report *model.Report, cause error) error {
	report.Fail(cause.Error())
	if err := reports.Save(ctx, report); err != nil {
		return errors.Join(cause, err)
	}
	return cause
}
