package types

// Task and Milestone status values
const (
	StatusNotStarted = "not-started"
	StatusInProgress = "in-progress"
	StatusCompleted  = "completed"
)

// Project-only status value (projects also use the three above)
const (
	StatusPlanning = "planning"
)

// Priority values
const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
)

// Team member roles
const (
	RoleLeader = "leader"
	RoleMember = "member"
)

// Valid value sets for validation
var ValidTaskStatuses = []string{
	StatusNotStarted, StatusInProgress, StatusCompleted,
}

var ValidProjectStatuses = []string{
	StatusNotStarted, StatusPlanning, StatusInProgress, StatusCompleted,
}

var ValidPriorities = []string{
	PriorityLow, PriorityMedium, PriorityHigh,
}

// Helper functions for validation
func IsValidTaskStatus(status string) bool {
	for _, s := range ValidTaskStatuses {
		if s == status {
			return true
		}
	}
	return false
}

func IsValidProjectStatus(status string) bool {
	for _, s := range ValidProjectStatuses {
		if s == status {
			return true
		}
	}
	return false
}

func IsValidPriority(priority string) bool {
	for _, p := range ValidPriorities {
		if p == priority {
			return true
		}
	}
	return false
}
