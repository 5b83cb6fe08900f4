package api

import (
	"time"

	"netrecon/scanner"
)

// ScanTask represents a reconnaissance job managed by the scan service.
type ScanTask struct {
	// ID is the immutable identifier of the scan task (UUID v4).
	ID string `json:"id" format:"uuid" example:"a3f5c62e-1234-4f72-a84a-1c2d3e4f5678"`
	// Status reflects the asynchronous lifecycle state of the task.
	Status string `json:"status" enums:"pending,running,completed,failed" example:"pending"`
	// AddressSpec is the submitted target spec: a single IP, a range
	// ("192.168.0.1-49") or a CIDR block ("10.0.0.0/24").
	AddressSpec string `json:"address_spec" example:"192.168.0.0/24"`
	// Ports is the submitted port spec: a range or a comma-separated list.
	Ports string `json:"ports" example:"1-1024"`
	// Reports holds one entry per live host once the task completes.
	Reports []scanner.HostReport `json:"reports,omitempty"`
	// CreatedAt records when the task was accepted.
	CreatedAt time.Time `json:"created_at" format:"date-time"`
	// CompletedAt is set once the task reaches a terminal state.
	CompletedAt *time.Time `json:"completed_at,omitempty" format:"date-time"`
	// Error describes why a task failed; empty otherwise.
	Error string `json:"error,omitempty" example:"invalid port list"`
}

// CreateScanRequest is the payload for creating new scan tasks.
type CreateScanRequest struct {
	// AddressSpec selects the targets: single IP, range or CIDR block.
	AddressSpec string `json:"address_spec" binding:"required" example:"192.168.0.1-49"`
	// Ports selects the ports: range or comma-separated list. Optional;
	// defaults to 1-1024.
	Ports string `json:"ports" example:"22,80,443"`
}

// ErrorResponse provides a consistent structure for API error payloads.
type ErrorResponse struct {
	// Error is a human-readable explanation of why the request failed.
	Error string `json:"error" example:"task not found"`
}
