package domain

import (
	"errors"
	"math"
	"time"
)

// ErrInvalidMeasurement is returned for non-positive height or weight values.
var ErrInvalidMeasurement = errors.New("height and weight must be positive")

type BMICategory string

const (
	BMIUnderweight BMICategory = "Underweight"
	BMINormal      BMICategory = "Normal weight"
	BMIOverweight  BMICategory = "Overweight"
	BMIObese       BMICategory = "Obese"
)

type UserProfile struct {
	UserID    string
	FullName  string
	Email     string
	Age       int
	HeightCm  float64
	WeightKg  float64
	UpdatedAt time.Time
}

// HasMeasurements reports whether both height and weight are set.
func (p *UserProfile) HasMeasurements() bool {
	return p.HeightCm > 0 && p.WeightKg > 0
}

// BMI computes the profile's body mass index.
func (p *UserProfile) BMI() (float64, error) {
	return ComputeBMI(p.HeightCm, p.WeightKg)
}

// ComputeBMI returns weight / height² (height given in centimetres),
// rounded to two decimals.
func ComputeBMI(heightCm, weightKg float64) (float64, error) {
	if heightCm <= 0 || weightKg <= 0 || math.IsNaN(heightCm) || math.IsNaN(weightKg) {
		return 0, ErrInvalidMeasurement
	}
	m := heightCm / 100
	bmi := weightKg / (m * m)
	return math.Round(bmi*100) / 100, nil
}

// CategorizeBMI maps a BMI value to its standard category.
func CategorizeBMI(bmi float64) BMICategory {
	switch {
	case bmi < 18.5:
		return BMIUnderweight
	case bmi < 25:
		return BMINormal
	case bmi < 30:
		return BMIOverweight
	default:
		return BMIObese
	}
}
