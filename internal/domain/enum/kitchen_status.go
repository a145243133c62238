package enum

import "fmt"

// KitchenStatus represents the preparation stage of an order
type KitchenStatus string

const (
	KitchenStatusPending    KitchenStatus = "pending"
	KitchenStatusInProgress KitchenStatus = "in-progress"
	KitchenStatusReady      KitchenStatus = "ready"
	KitchenStatusCompleted  KitchenStatus = "completed"
)

// KitchenStatuses lists the workflow stages in order
var KitchenStatuses = []KitchenStatus{
	KitchenStatusPending,
	KitchenStatusInProgress,
	KitchenStatusReady,
	KitchenStatusCompleted,
}

func (s KitchenStatus) String() string {
	return string(s)
}

// IsValid reports whether s is one of the known kitchen statuses
func (s KitchenStatus) IsValid() bool {
	for _, known := range KitchenStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// ParseKitchenStatus converts a raw string into a KitchenStatus
func ParseKitchenStatus(s string) (KitchenStatus, error) {
	status := KitchenStatus(s)
	if !status.IsValid() {
		return "", fmt.Errorf("unknown kitchen status %q", s)
	}
	return status, nil
}
