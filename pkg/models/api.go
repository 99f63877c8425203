package models

import "diskinfo/pkg/diskstat"

// Health is returned by the health check endpoint.
type Health struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

// SeverityResponse is the classification of a usage percentage.
type SeverityResponse struct {
	Percent  float64           `json:"percent"`
	Severity diskstat.Severity `json:"severity"`
}

// ErrorResponse is the body of every non-2xx JSON response.
type ErrorResponse struct {
	Error string `json:"error"`
}
