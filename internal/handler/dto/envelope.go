// Package dto provides Data Transfer Objects for API requests and responses.
package dto

// Envelope is the uniform response wrapper used by every endpoint,
// success or failure.
type Envelope struct {
	StatusCode int      `json:"statusCode"`
	Data       any      `json:"data,omitempty"`
	Message    string   `json:"message"`
	Success    bool     `json:"success"`
	Errors     []string `json:"errors,omitempty"`
}
