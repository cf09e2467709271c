// Package rpc defines the wire messages of the BMI services and the
// Connect handler and client constructors for them.
package rpc

import "github.com/mmynk/bmitracker/internal/trend"

// CalculateRequest carries the raw text of the weight and height fields.
type CalculateRequest struct {
	Weight string `json:"weight"`
	Height string `json:"height"`
}

type CalculateResponse struct {
	BMI        float64 `json:"bmi"`
	BMIDisplay string  `json:"bmi_display"`
	Category   string  `json:"category"`
}

// Record is a stored record with its category recomputed for display.
type Record struct {
	ID         int64   `json:"id"`
	Name       string  `json:"name"`
	Weight     float64 `json:"weight"`
	Height     float64 `json:"height"`
	BMI        float64 `json:"bmi"`
	BMIDisplay string  `json:"bmi_display"`
	Category   string  `json:"category"`
}

type SaveRecordRequest struct {
	Name   string `json:"name"`
	Weight string `json:"weight"`
	Height string `json:"height"`
}

// SaveRecordResponse returns the saved record and the updated record set.
type SaveRecordResponse struct {
	Record  *Record   `json:"record"`
	Records []*Record `json:"records"`
}

type ListRecordsRequest struct{}

type ListRecordsResponse struct {
	Records []*Record `json:"records"`
}

type GetTrendRequest struct{}

// GetTrendResponse has a nil Chart until the first record is saved.
type GetTrendResponse struct {
	Chart *trend.Chart `json:"chart"`
}

type LoginRequest struct {
	Password string `json:"password"`
}

type LoginResponse struct {
	Token     string `json:"token"`
	ExpiresAt int64  `json:"expires_at"`
}
