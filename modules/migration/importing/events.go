package importing

import "github.com/iota-uz/migscope/modules/migration/domain/records"

// ProgressEvent is pushed to the event bus whenever the tracker advances, so
// observers (UI, log sinks, tests) follow the pipeline without sharing its
// state. Progress is monotonically non-decreasing within one import.
type ProgressEvent struct {
	Kind      records.Kind
	Operation string
	Progress  float64
}

// CompletedEvent is published once per successful import.
type CompletedEvent struct {
	Kind   records.Kind
	Result *Result
}

// FailedEvent is published when an import aborts on a structural or
// kind-mismatch error.
type FailedEvent struct {
	Kind records.Kind
	Err  error
}
