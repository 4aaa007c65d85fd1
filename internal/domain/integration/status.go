package integration

// SyncStatus tracks where a tenant's ingestion run currently stands
type SyncStatus string

const (
	SyncStatusNever      SyncStatus = "NEVER"
	SyncStatusInProgress SyncStatus = "IN_PROGRESS"
	SyncStatusCompleted  SyncStatus = "COMPLETED"
	SyncStatusFailed     SyncStatus = "FAILED"
)

// IsValid checks if the sync status is a known value
func (s SyncStatus) IsValid() bool {
	switch s {
	case SyncStatusNever, SyncStatusInProgress, SyncStatusCompleted, SyncStatusFailed:
		return true
	default:
		return false
	}
}

// IsTerminal reports whether the status is an end state of a run
func (s SyncStatus) IsTerminal() bool {
	return s == SyncStatusCompleted || s == SyncStatusFailed
}

// String returns the string representation of the sync status
func (s SyncStatus) String() string {
	return string(s)
}
