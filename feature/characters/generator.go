package characters

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"content-forge/core/errs"
	"content-forge/core/reference"
	"content-forge/core/utils"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"gorm.io/datatypes"
)

type generatorRefs struct {
	personalities map[string]json.RawMessage
	stories       map[string]json.RawMessage
}

// Generator turns character specs into pool entries. It satisfies batch.Generator.
type Generator struct {
	store *reference.Store
	names NameSource
	now   func() time.Time
	newID func() string

	mu  sync.Mutex
	rng *rand.Rand

	refs atomic.Pointer[generatorRefs]
}

// NewGenerator creates a generator drawing stats and names from rng.
func NewGenerator(store *reference.Store, rng *rand.Rand) *Generator {
	return &Generator{
		store: store,
		names: SyllableNames{},
		now:   func() time.Time { return time.Now().UTC() },
		newID: uuid.NewString,
		rng:   rng,
	}
}

// WithNames replaces the name source.
func (g *Generator) WithNames(names NameSource) *Generator {
	g.names = names
	return g
}

// Prepare loads personalities and background stories for one batch.
func (g *Generator) Prepare(ctx context.Context) error {
	refs := &generatorRefs{}
	eg, ctx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		var err error
		refs.personalities, err = g.store.GetAll(ctx, reference.Personalities)
		return err
	})
	eg.Go(func() error {
		var err error
		refs.stories, err = g.store.GetAll(ctx, reference.BackgroundStories)
		return err
	})
	if err := eg.Wait(); err != nil {
		return err
	}
	g.refs.Store(refs)
	return nil
}

// Generate builds one pool entry. An unknown quality, gender or race fails that spec only.
func (g *Generator) Generate(_ context.Context, spec Spec) (PoolEntry, error) {
	refs := g.refs.Load()
	if refs == nil {
		return PoolEntry{}, errs.Configuration("character generator used before Prepare")
	}

	profile, ok := Profiles[spec.QualityLevel]
	if !ok {
		return PoolEntry{}, errs.Validation("unknown quality level %q", spec.QualityLevel)
	}
	gender := strings.ToUpper(spec.Gender)
	if gender != GenderMale && gender != GenderFemale {
		return PoolEntry{}, errs.Validation("unknown gender %q", spec.Gender)
	}
	if spec.CreatureTypeID <= 0 {
		return PoolEntry{}, errs.Validation("spec has no creature type")
	}

	g.mu.Lock()
	stats := RollStats(g.rng, profile)
	name, surname := g.names.Name(g.rng, gender)
	g.mu.Unlock()

	rawStats, err := json.Marshal(stats)
	if err != nil {
		return PoolEntry{}, fmt.Errorf("encode stats: %w", err)
	}

	score := 0
	for _, v := range stats {
		score += v
	}

	return PoolEntry{
		ID:                   g.newID(),
		CreatureTypeID:       spec.CreatureTypeID,
		PersonalityID:        optionalID(g.store.Pick(refs.personalities, "personality_id", "rarity_weight", "")),
		BackgroundStoryID:    optionalID(g.store.Pick(refs.stories, "story_id", "rarity_weight", "")),
		Name:                 name,
		Surname:              surname,
		Gender:               gender,
		BaseStats:            datatypes.JSON(rawStats),
		VisualAppearanceData: datatypes.JSON(`{}`),
		InitialSkillLevels:   datatypes.JSON(`{}`),
		InitialRoleName:      DefaultRoleName,
		QualityLevel:         spec.QualityLevel,
		Status:               StatusAvailable,
		RarityScore:          score,
		GeneratedAt:          g.now(),
	}, nil
}

func optionalID(s string) *int {
	if s == "" {
		return nil
	}
	id := utils.ToInt(s)
	if id <= 0 {
		return nil
	}
	return &id
}
