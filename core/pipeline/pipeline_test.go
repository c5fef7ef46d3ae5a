package pipeline_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"content-forge/core/errs"
	"content-forge/core/pipeline"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

var fastPolicy = pipeline.RetryPolicy{MaxAttempts: 3, Delay: time.Millisecond}

func countingStep(name string, failures int, err error, calls *int) pipeline.Step {
	return pipeline.Step{
		Name: name,
		Run: func(context.Context) error {
			*calls++
			if *calls <= failures {
				return err
			}
			return nil
		},
	}
}

func TestPipeline_RetriesThenSucceeds(t *testing.T) {
	var first, second int
	p := pipeline.New(fastPolicy, zap.NewNop(),
		countingStep("cache_reference_data", 2, errs.ErrCacheUnavailable, &first),
		countingStep("planners", 0, nil, &second),
	)

	assert.True(t, p.Run(context.Background()))
	assert.Equal(t, 3, first)
	assert.Equal(t, 1, second)
	assert.Equal(t, []string{"cache_reference_data", "planners"}, p.Steps())
}

func TestPipeline_AbortsOnExhaustedStep(t *testing.T) {
	var first, second, third int
	boom := errors.New("redis down")
	p := pipeline.New(fastPolicy, zap.NewNop(),
		countingStep("cache_reference_data", 0, nil, &first),
		countingStep("data_loaders", 100, boom, &second),
		countingStep("planners", 0, nil, &third),
	)

	err := p.RunE(context.Background())
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "data_loaders")
	assert.Equal(t, 1, first)
	assert.Equal(t, 3, second)
	assert.Equal(t, 0, third, "steps after the failing one must not run")

	second = 0
	assert.False(t, p.Run(context.Background()))
}

func TestPipeline_ConfigurationErrorNotRetried(t *testing.T) {
	var calls int
	p := pipeline.New(fastPolicy, zap.NewNop(),
		countingStep("planners", 100, errs.Configuration("gender ratio missing"), &calls),
	)

	err := p.RunE(context.Background())
	assert.ErrorIs(t, err, errs.ErrConfiguration)
	assert.Equal(t, 1, calls)
}

func TestRetryPolicy_Notify(t *testing.T) {
	var attempts []int
	calls := 0
	err := pipeline.RetryPolicy{MaxAttempts: 2, Delay: time.Millisecond}.Do(context.Background(),
		func(context.Context) error {
			calls++
			return errors.New("nope")
		},
		func(attempt int, _ error, _ time.Duration) { attempts = append(attempts, attempt) },
	)
	assert.Error(t, err)
	assert.Equal(t, 2, calls)
	assert.Equal(t, []int{1}, attempts)
}

func TestConfig_Policy(t *testing.T) {
	p := pipeline.Config{MaxAttempts: 4, RetryDelaySeconds: 2}.Policy()
	assert.Equal(t, 4, p.MaxAttempts)
	assert.Equal(t, 2*time.Second, p.Delay)
}
