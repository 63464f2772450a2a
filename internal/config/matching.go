package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/fadilmartias/talent-match/internal/matching"
	"gopkg.in/yaml.v3"
)

type MatchingConfig struct {
	WeightsFile string
	Weights     matching.Weights
}

var (
	matchingConfig *MatchingConfig
	matchingErr    error
	matchingOnce   sync.Once
)

// LoadMatchingConfig returns the reference weights, overridden by the YAML
// file named in MATCH_WEIGHTS_FILE when set. The result is validated.
func LoadMatchingConfig() (*MatchingConfig, error) {
	matchingOnce.Do(func() {
		path := os.Getenv("MATCH_WEIGHTS_FILE")
		weights := matching.DefaultWeights()
		if path != "" {
			weights, matchingErr = LoadWeightsFile(path)
			if matchingErr != nil {
				return
			}
		}
		if matchingErr = weights.Validate(); matchingErr != nil {
			return
		}
		matchingConfig = &MatchingConfig{WeightsFile: path, Weights: weights}
	})
	return matchingConfig, matchingErr
}

// weightsFile mirrors matching.Weights for YAML. Absent keys keep the
// reference value.
type weightsFile struct {
	Project struct {
		Title              *float64 `yaml:"title"`
		PreferredCondition *float64 `yaml:"preferred_condition"`
		WorkingCondition   *float64 `yaml:"working_condition"`
	} `yaml:"project"`
	Freelancer struct {
		Job       *float64 `yaml:"job"`
		Career    *float64 `yaml:"career"`
		TechStack *float64 `yaml:"tech_stack"`
	} `yaml:"freelancer"`
	Rating struct {
		Top     *float64 `yaml:"top"`
		Slope   *float64 `yaml:"slope"`
		Default *float64 `yaml:"default"`
	} `yaml:"rating"`
}

// LoadWeightsFile reads a weights YAML file on top of the defaults.
func LoadWeightsFile(path string) (matching.Weights, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return matching.Weights{}, fmt.Errorf("read weights file %s: %w", path, err)
	}
	return ParseWeights(data)
}

// ParseWeights decodes weights YAML on top of the defaults.
func ParseWeights(data []byte) (matching.Weights, error) {
	var f weightsFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return matching.Weights{}, fmt.Errorf("parse weights: %w", err)
	}

	w := matching.DefaultWeights()
	set := func(dst *float64, src *float64) {
		if src != nil {
			*dst = *src
		}
	}
	set(&w.ProjectTitle, f.Project.Title)
	set(&w.ProjectPreferred, f.Project.PreferredCondition)
	set(&w.ProjectWorking, f.Project.WorkingCondition)
	set(&w.FreelancerJob, f.Freelancer.Job)
	set(&w.FreelancerCareer, f.Freelancer.Career)
	set(&w.FreelancerStack, f.Freelancer.TechStack)
	set(&w.RatingTop, f.Rating.Top)
	set(&w.RatingSlope, f.Rating.Slope)
	set(&w.DefaultRating, f.Rating.Default)
	return w, nil
}
