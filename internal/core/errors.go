package core

import "errors"

// ErrNotFound is returned by ReportStore.Get when a key is absent. A store
// miss means "no previous data", never a failed report.
var ErrNotFound = errors.New("report not found")
