// Package bmi computes and classifies body-mass-index values.
package bmi

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// InvalidInputText is shown in place of a numeric result when input is rejected.
const InvalidInputText = "Invalid input"

// ErrInvalidInput is returned when weight or height text is not a finite number.
var ErrInvalidInput = errors.New("invalid input")

// Category is the weight class a BMI value falls into.
type Category int

const (
	Underweight Category = iota + 1
	Normal
	Overweight
	Obese
)

// String returns the label shown next to a calculated BMI.
func (c Category) String() string {
	switch c {
	case Underweight:
		return "Underweight"
	case Normal:
		return "Normal weight"
	case Overweight:
		return "Overweight"
	case Obese:
		return "Obesity"
	default:
		return "Unknown"
	}
}

// Input holds one weight/height pair as entered by the user.
type Input struct {
	WeightKg float64
	HeightCm float64
}

// Result is the outcome of a single calculation.
// BMI is kept at full precision; use Display for the two-decimal form.
type Result struct {
	Input
	BMI      float64
	Category Category
}

// Display formats the BMI with two decimal places.
func (r Result) Display() string {
	return Format(r.BMI)
}

// Format renders a BMI value the way every surface displays it.
func Format(bmi float64) string {
	return strconv.FormatFloat(bmi, 'f', 2, 64)
}

// Compute converts height to meters and returns weight / height².
// Zero or negative values are not special-cased.
func Compute(in Input) Result {
	heightM := in.HeightCm / 100
	value := in.WeightKg / (heightM * heightM)
	return Result{
		Input:    in,
		BMI:      value,
		Category: Classify(value),
	}
}

// Classify maps a BMI to its category. Bands are evaluated in order and the
// first match wins. Values in [24.9, 25) and >= 29.9 fall through to Obese.
func Classify(bmi float64) Category {
	switch {
	case bmi < 18.5:
		return Underweight
	case bmi >= 18.5 && bmi < 24.9:
		return Normal
	case bmi >= 25 && bmi < 29.9:
		return Overweight
	default:
		return Obese
	}
}

// ParseInput parses weight and height text into an Input.
func ParseInput(weight, height string) (Input, error) {
	w, err := parseNumber(weight)
	if err != nil {
		return Input{}, fmt.Errorf("%w: weight %q", ErrInvalidInput, weight)
	}
	h, err := parseNumber(height)
	if err != nil {
		return Input{}, fmt.Errorf("%w: height %q", ErrInvalidInput, height)
	}
	return Input{WeightKg: w, HeightCm: h}, nil
}

// Calculate parses both fields and computes the result.
// A height that makes the BMI non-finite (e.g. 0) is reported as invalid input.
func Calculate(weight, height string) (Result, error) {
	in, err := ParseInput(weight, height)
	if err != nil {
		return Result{}, err
	}
	res := Compute(in)
	if math.IsInf(res.BMI, 0) || math.IsNaN(res.BMI) {
		return Result{}, fmt.Errorf("%w: bmi is not finite for height %q", ErrInvalidInput, height)
	}
	return res, nil
}

func parseNumber(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, err
	}
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return 0, fmt.Errorf("not a finite number: %q", s)
	}
	return v, nil
}
