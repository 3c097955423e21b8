package seo

// ScanStatus is the lifecycle state of a scan. The backend crawler owns all
// transitions; this service only observes them.
type ScanStatus string

// Scan lifecycle states.
const (
	ScanPending   ScanStatus = "pending"
	ScanRunning   ScanStatus = "running"
	ScanCompleted ScanStatus = "completed"
	ScanFailed    ScanStatus = "failed"
)

// Terminal reports whether the status is final. Terminal scans never change
// again, so there is no reason to re-fetch them.
func (s ScanStatus) Terminal() bool {
	return s == ScanCompleted || s == ScanFailed
}

// ShouldContinuePolling is the pure transition rule for the scan watcher:
// keep polling only while the scan is still pending or running. Unknown
// statuses stop the loop rather than poll forever.
func ShouldContinuePolling(s ScanStatus) bool {
	return s == ScanPending || s == ScanRunning
}
