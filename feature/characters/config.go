package characters

import (
	"time"

	"content-forge/core/errs"
	"content-forge/core/utils"
)

// Config holds configuration for character pool planning.
type Config struct {
	// TargetPoolSize is the number of available entries the pool should hold.
	TargetPoolSize int `mapstructure:"target_pool_size" default:"1000"`
	// BatchSize is the number of specs per dispatched batch.
	BatchSize int `mapstructure:"batch_size" default:"50"`
	// DefaultGenderRatio is "MALE:x,FEMALE:y".
	DefaultGenderRatio string `mapstructure:"default_gender_ratio" default:"MALE:0.5,FEMALE:0.5"`
	// QualityDistribution is "QUALITY:share,...".
	QualityDistribution string `mapstructure:"quality_distribution" default:"SUPERIOR_ELITE_QUALITY:0.001,ELITE_QUALITY:0.059,ADVANCED_QUALITY:0.14,STANDARD_QUALITY:0.25,BASIC_QUALITY:0.55"`
	// BatchTTLSeconds is the lifetime of a pending batch record.
	BatchTTLSeconds int `mapstructure:"batch_ttl_seconds" default:"86400"`
}

// MaleRatio returns MALE / (MALE + FEMALE) from DefaultGenderRatio.
func (c Config) MaleRatio() (float64, error) {
	return ParseGenderRatio(c.DefaultGenderRatio)
}

// ParseGenderRatio parses "MALE:x,FEMALE:y" into the male share.
func ParseGenderRatio(s string) (float64, error) {
	w, err := utils.ParseWeights(s)
	if err != nil {
		return 0, err
	}
	male, okM := w[GenderMale]
	female, okF := w[GenderFemale]
	if !okM || !okF {
		return 0, errs.Configuration("gender ratio %q must define MALE and FEMALE", s)
	}
	if male < 0 || female < 0 || male+female <= 0 {
		return 0, errs.Configuration("gender ratio %q must be non-negative with a positive sum", s)
	}
	return male / (male + female), nil
}

// Distribution parses QualityDistribution. Unknown quality levels are rejected.
func (c Config) Distribution() (map[string]float64, error) {
	dist, err := utils.ParseWeights(c.QualityDistribution)
	if err != nil {
		return nil, err
	}
	for q := range dist {
		if _, ok := Profiles[q]; !ok {
			return nil, errs.Configuration("unknown quality level %s in distribution", q)
		}
	}
	if err := validateDistribution(dist); err != nil {
		return nil, err
	}
	return dist, nil
}

// BatchTTL returns the pending batch lifetime.
func (c Config) BatchTTL() time.Duration {
	return time.Duration(c.BatchTTLSeconds) * time.Second
}
