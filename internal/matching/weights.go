package matching

import "fmt"

const (
	// MinRating and MaxRating bound the rating average fed into the boost.
	MinRating = 0.0
	MaxRating = 5.0
)

// Weights is the process-wide scoring configuration. It is built once at
// startup and handed to the Engine by value.
type Weights struct {
	// Freelancer -> project fields.
	ProjectTitle     float64
	ProjectPreferred float64
	ProjectWorking   float64

	// Project -> freelancer fields.
	FreelancerJob    float64
	FreelancerCareer float64
	FreelancerStack  float64

	// Rating boost: (RatingTop - 0.5) + RatingSlope * clamp(rating, 0, 5).
	RatingTop     float64
	RatingSlope   float64
	DefaultRating float64
}

// DefaultWeights returns the reference tuning.
func DefaultWeights() Weights {
	return Weights{
		ProjectTitle:     1.2,
		ProjectPreferred: 1.0,
		ProjectWorking:   1.6,
		FreelancerJob:    1.3,
		FreelancerCareer: 0.9,
		FreelancerStack:  1.5,
		RatingTop:        1.25,
		RatingSlope:      0.1,
		DefaultRating:    2.5,
	}
}

// Validate checks that all field weights are positive and that the relative
// importance holds in both directions: working condition / tech stack count
// most, preferred condition / career least.
func (w Weights) Validate() error {
	fields := map[string]float64{
		"project_title":     w.ProjectTitle,
		"project_preferred": w.ProjectPreferred,
		"project_working":   w.ProjectWorking,
		"freelancer_job":    w.FreelancerJob,
		"freelancer_career": w.FreelancerCareer,
		"freelancer_stack":  w.FreelancerStack,
	}
	for name, v := range fields {
		if v <= 0 {
			return fmt.Errorf("%w: %s must be positive, got %v", ErrInvalidWeights, name, v)
		}
	}
	if !(w.ProjectWorking > w.ProjectTitle && w.ProjectTitle > w.ProjectPreferred) {
		return fmt.Errorf("%w: project weights must satisfy working > title > preferred", ErrInvalidWeights)
	}
	if !(w.FreelancerStack > w.FreelancerJob && w.FreelancerJob > w.FreelancerCareer) {
		return fmt.Errorf("%w: freelancer weights must satisfy stack > job > career", ErrInvalidWeights)
	}
	if w.RatingSlope < 0 {
		return fmt.Errorf("%w: rating slope must not be negative", ErrInvalidWeights)
	}
	if w.DefaultRating < MinRating || w.DefaultRating > MaxRating {
		return fmt.Errorf("%w: default rating must be within [%v, %v]", ErrInvalidWeights, MinRating, MaxRating)
	}
	if w.Boost(nil) <= 0 || w.BoostFloor() < 0 {
		return fmt.Errorf("%w: rating boost must stay non-negative", ErrInvalidWeights)
	}
	return nil
}

// BoostFloor is the multiplier for a zero rating.
func (w Weights) BoostFloor() float64 {
	return w.RatingTop - 0.5
}

// Boost returns the rating multiplier for a candidate. A nil rating means
// the candidate has no reviews and gets DefaultRating.
func (w Weights) Boost(rating *float64) float64 {
	r := w.DefaultRating
	if rating != nil {
		r = *rating
	}
	return w.BoostFloor() + w.RatingSlope*ClampRating(r)
}

// ClampRating bounds r to [MinRating, MaxRating].
func ClampRating(r float64) float64 {
	switch {
	case r < MinRating:
		return MinRating
	case r > MaxRating:
		return MaxRating
	default:
		return r
	}
}
