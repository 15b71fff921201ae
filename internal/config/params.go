package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/Harshitk-cp/nars/internal/bag"
	"github.com/Harshitk-cp/nars/internal/domain"
)

var ErrInvalidParams = errors.New("invalid reasoning parameters")

// Params is the configuration surface of the reasoning core.
type Params struct {
	K                      float64 `yaml:"k"`
	Mindfulness            float64 `yaml:"mindfulness"`
	DecayMultiplier        float64 `yaml:"decay_multiplier"`
	BagCapacity            int     `yaml:"bag_capacity"`
	ConceptCapacity        int     `yaml:"concept_capacity"`
	BagBuckets             int     `yaml:"bag_buckets"`
	TableCapacity          int     `yaml:"table_capacity"`
	MaxEvidentialBase      int     `yaml:"max_evidential_base"`
	MaxInteracted          int     `yaml:"max_interacted"`
	RelatedConceptAttempts int     `yaml:"related_concept_attempts"`
	InputBufferCapacity    int     `yaml:"input_buffer_capacity"`

	Defaults InputDefaults `yaml:"defaults"`
}

// InputDefaults are the values given to input tasks that do not carry their own.
type InputDefaults struct {
	JudgmentTruth  domain.TruthValue `yaml:"judgment_truth"`
	JudgmentBudget bag.Budget        `yaml:"judgment_budget"`
	QuestionBudget bag.Budget        `yaml:"question_budget"`
	GoalDesire     domain.TruthValue `yaml:"goal_desire"`
	GoalBudget     bag.Budget        `yaml:"goal_budget"`
	QuestBudget    bag.Budget        `yaml:"quest_budget"`
}

// Budget returns the input budget for a punctuation.
func (d InputDefaults) Budget(p domain.Punctuation) bag.Budget {
	switch p {
	case domain.Judgment:
		return d.JudgmentBudget
	case domain.Question:
		return d.QuestionBudget
	case domain.Goal:
		return d.GoalBudget
	case domain.Quest:
		return d.QuestBudget
	}
	panic(fmt.Sprintf("config: no budget for punctuation %d", p))
}

// Value returns the default truth or desire value, or nil for questions and quests.
func (d InputDefaults) Value(p domain.Punctuation) *domain.TruthValue {
	var v domain.TruthValue
	switch p {
	case domain.Judgment:
		v = d.JudgmentTruth
	case domain.Goal:
		v = d.GoalDesire
	default:
		return nil
	}
	return &v
}

func DefaultParams() Params {
	return Params{
		K:                      1,
		Mindfulness:            0.8,
		DecayMultiplier:        0.95,
		BagCapacity:            bag.DefaultCapacity,
		ConceptCapacity:        50000,
		BagBuckets:             bag.DefaultBuckets,
		TableCapacity:          30,
		MaxEvidentialBase:      20000,
		MaxInteracted:          20000,
		RelatedConceptAttempts: 10,
		InputBufferCapacity:    60,
		Defaults: InputDefaults{
			JudgmentTruth:  domain.NewTruthValue(1.0, 0.9),
			JudgmentBudget: bag.NewBudget(0.8, 0.5, 0.9),
			QuestionBudget: bag.NewBudget(0.9, 0.9, 0.9),
			GoalDesire:     domain.NewTruthValue(1.0, 0.9),
			GoalBudget:     bag.NewBudget(0.9, 0.9, 0.9),
			QuestBudget:    bag.NewBudget(0.9, 0.9, 0.9),
		},
	}
}

// StampLimits returns the evidential base and interaction history bounds.
func (p Params) StampLimits() domain.StampLimits {
	return domain.StampLimits{MaxEvidentialBase: p.MaxEvidentialBase, MaxInteracted: p.MaxInteracted}
}

// LoadParams starts from the defaults, overlays the YAML file named by
// ParamsFile (if any), applies NARS_* overrides and validates the result.
func LoadParams() (Params, error) {
	p := DefaultParams()
	if path := ParamsFile(); path != "" {
		var err error
		if p, err = LoadParamsFile(path, p); err != nil {
			return Params{}, err
		}
	}
	p = ParamsFromEnv(p)
	if err := p.Validate(); err != nil {
		return Params{}, err
	}
	return p, nil
}

// LoadParamsFile overlays the YAML file at path onto base. Keys absent from
// the file keep their base values.
func LoadParamsFile(path string, base Params) (Params, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Params{}, fmt.Errorf("read params file: %w", err)
	}
	if err := yaml.Unmarshal(data, &base); err != nil {
		return Params{}, fmt.Errorf("parse params file %s: %w", path, err)
	}
	return base, nil
}

// ParamsFromEnv applies NARS_* overrides to base. Unparseable values are ignored.
func ParamsFromEnv(base Params) Params {
	envFloat("NARS_K", &base.K)
	envFloat("NARS_MINDFULNESS", &base.Mindfulness)
	envFloat("NARS_DECAY_MULTIPLIER", &base.DecayMultiplier)
	envInt("NARS_BAG_CAPACITY", &base.BagCapacity)
	envInt("NARS_CONCEPT_CAPACITY", &base.ConceptCapacity)
	envInt("NARS_BAG_BUCKETS", &base.BagBuckets)
	envInt("NARS_TABLE_CAPACITY", &base.TableCapacity)
	envInt("NARS_MAX_EVIDENTIAL_BASE", &base.MaxEvidentialBase)
	envInt("NARS_MAX_INTERACTED", &base.MaxInteracted)
	envInt("NARS_RELATED_CONCEPT_ATTEMPTS", &base.RelatedConceptAttempts)
	envInt("NARS_INPUT_BUFFER_CAPACITY", &base.InputBufferCapacity)
	return base
}

func envFloat(key string, dst *float64) {
	if v, err := strconv.ParseFloat(os.Getenv(key), 64); err == nil {
		*dst = v
	}
}

func envInt(key string, dst *int) {
	if v, err := strconv.Atoi(os.Getenv(key)); err == nil {
		*dst = v
	}
}

func (p Params) Validate() error {
	switch {
	case p.K <= 0:
		return fmt.Errorf("%w: k must be positive, got %g", ErrInvalidParams, p.K)
	case p.Mindfulness < 0 || p.Mindfulness > 1:
		return fmt.Errorf("%w: mindfulness must be in [0, 1], got %g", ErrInvalidParams, p.Mindfulness)
	case p.DecayMultiplier < 0 || p.DecayMultiplier > 1:
		return fmt.Errorf("%w: decay multiplier must be in [0, 1], got %g", ErrInvalidParams, p.DecayMultiplier)
	case p.BagBuckets < 2:
		return fmt.Errorf("%w: need at least 2 buckets, got %d", ErrInvalidParams, p.BagBuckets)
	}

	positive := map[string]int{
		"bag capacity":             p.BagCapacity,
		"concept capacity":         p.ConceptCapacity,
		"table capacity":           p.TableCapacity,
		"max evidential base":      p.MaxEvidentialBase,
		"max interacted":           p.MaxInteracted,
		"related concept attempts": p.RelatedConceptAttempts,
		"input buffer capacity":    p.InputBufferCapacity,
	}
	for name, v := range positive {
		if v <= 0 {
			return fmt.Errorf("%w: %s must be positive, got %d", ErrInvalidParams, name, v)
		}
	}

	for _, tv := range []domain.TruthValue{p.Defaults.JudgmentTruth, p.Defaults.GoalDesire} {
		if tv.Frequency < 0 || tv.Frequency > 1 || tv.Confidence <= 0 || tv.Confidence >= 1 {
			return fmt.Errorf("%w: default value %s out of range", ErrInvalidParams, tv)
		}
	}
	return nil
}
