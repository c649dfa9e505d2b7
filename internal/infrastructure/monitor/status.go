package monitor

import "time"

// ReplicaStatus is the last known state of one storage replica.
type ReplicaStatus struct {
	Name          string    `json:"name"`
	Healthy       bool      `json:"healthy"`
	LastOperation string    `json:"last_operation,omitempty"`
	LastError     string    `json:"last_error,omitempty"`
	LastChecked   time.Time `json:"last_checked,omitzero"`
}

// Status is the health payload served by the health endpoint. Degraded
// means at least one replica's last operation failed while the overall
// store may still be accepting writes.
type Status struct {
	Degraded bool            `json:"degraded"`
	Replicas []ReplicaStatus `json:"replicas"`
}
