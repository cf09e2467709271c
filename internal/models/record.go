package models

import "github.com/mmynk/bmitracker/internal/bmi"

// Record represents a saved BMI calculation.
type Record struct {
	// ID is assigned by the store on insert and increases monotonically.
	ID int64

	// Name is free text from the form. It may be empty.
	Name string

	// Weight is in kilograms.
	Weight float64

	// Height is in centimeters.
	Height float64

	// BMI is stored at full precision.
	BMI float64
}

// NewRecord builds an unsaved record from a calculation result.
func NewRecord(name string, res bmi.Result) *Record {
	return &Record{
		Name:   name,
		Weight: res.WeightKg,
		Height: res.HeightCm,
		BMI:    res.BMI,
	}
}

// Category recomputes the weight class from the stored BMI.
func (r Record) Category() bmi.Category {
	return bmi.Classify(r.BMI)
}

// HeightBMI is one point of the trend chart.
type HeightBMI struct {
	Height float64
	BMI    float64
}
