// Package mocks provides mock implementations for testing the report services.
//
// This package uses go.uber.org/mock (gomock) to generate type-safe mocks for
// the port interfaces in internal/core. To regenerate mocks after interface
// changes, run:
//
//	go generate ./internal/mocks
//
// Usage in tests:
//
//	ctrl := gomock.NewController(t)
//	defer ctrl.Finish()
//	store := mocks.NewMockReportStore(ctrl)
//	store.EXPECT().Get(gomock.Any(), "report:products:id").Return(nil, core.ErrNotFound)
package mocks

// Generate mock for the ReportStore interface from internal/core.
//go:generate go run go.uber.org/mock/mockgen -package=mocks -destination=report_store_mock.go github.com/rivalradar/rivalradar/internal/core ReportStore

// Generate mock for the ScrapeClient interface from internal/core.
//go:generate go run go.uber.org/mock/mockgen -package=mocks -destination=scrape_client_mock.go github.com/rivalradar/rivalradar/internal/core ScrapeClient

// Generate mock for the TextGenerator interface from internal/core.
//go:generate go run go.uber.org/mock/mockgen -package=mocks -destination=text_generator_mock.go github.com/rivalradar/rivalradar/internal/core TextGenerator
