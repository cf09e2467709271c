// Package models defines the persisted domain types of the BMI tracker.
//
// # Records
//
// A Record is one saved calculation: the name typed into the form, the
// weight and height it was computed from, and the resulting BMI. Records
// are append-only. Once inserted they are never updated or deleted.
//
// The BMI category is not stored. It is derived from the BMI value when a
// record is read, so changing the classification rules changes how old
// records are labelled without touching the table.
//
// # Projections
//
// HeightBMI is the (height, bmi) pair used to draw the trend chart.
package models
