// Package neat holds the tunables, logging, and cross-cutting contracts
// shared by the genetics, network, and experiment packages: the Options
// configuration, a context.Context carrier for it, a leveled logger, and
// the RandomSource contract the core consumes instead of touching
// math/rand directly.
package neat

import (
	"io"
	"io/ioutil"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cast"
	"gopkg.in/yaml.v3"
)

// Options holds every tunable named by the specification: population
// management, mutation probabilities, and compatibility coefficients.
type Options struct {
	// Population settings
	PopSize           int     `yaml:"pop_size"`
	SurvivalThreshold float64 `yaml:"survival_threshold"`
	CompatThreshold   float64 `yaml:"compat_threshold"`
	DropOffAge        int     `yaml:"dropoff_age"`
	TargetNumSpecies  int     `yaml:"target_num_species"`

	// Mutation settings
	NewNodeProb            float64 `yaml:"new_node_prob"`
	NewLinkProb            float64 `yaml:"new_link_prob"`
	ChangeLinkWeightsProb  float64 `yaml:"change_link_weights_prob"`
	ChangeLinkWeightsPower float64 `yaml:"change_link_weights_power"`
	RecurrentLinkProb      float64 `yaml:"recurrent_link_prob"`
	SelfLinkProb           float64 `yaml:"self_link_prob"`
	ToggleEnableProb       float64 `yaml:"toggle_enable_prob"`
	MutateOnlyProb         float64 `yaml:"mutate_only_prob"`
	MutateAfterMatingProb  float64 `yaml:"mutate_after_mating_prob"`
	InterspeciesMatingProb float64 `yaml:"interspecies_mating_prob"`
	NewLinkTries           int     `yaml:"new_link_tries"`

	// Compatibility coefficients
	DisjointCoeff float64 `yaml:"c_disjoint"`
	ExcessCoeff   float64 `yaml:"c_excess"`
	WeightCoeff   float64 `yaml:"c_weight"`

	// EvaluatorWorkers is a worker-pool size for the Evaluator (spec
	// §4.7/§5). It is loaded and stored only: genetics.EvaluatePopulation
	// takes its worker count as an argument and uses 1 for any value below 1.
	EvaluatorWorkers int `yaml:"evaluator_workers"`

	// LogLevel controls the package logger; see log.go.
	LogLevel string `yaml:"log_level"`
}

// DefaultOptions returns the enumerated defaults from spec §6.
func DefaultOptions() *Options {
	return &Options{
		SurvivalThreshold:      0.3,
		CompatThreshold:        6.0,
		DropOffAge:             15,
		TargetNumSpecies:       10,
		NewNodeProb:            0.01,
		NewLinkProb:            0.3,
		ChangeLinkWeightsProb:  0.8,
		ChangeLinkWeightsPower: 0.5,
		RecurrentLinkProb:      0.3,
		SelfLinkProb:           0.5,
		ToggleEnableProb:       0.05,
		MutateOnlyProb:         0.25,
		MutateAfterMatingProb:  0.8,
		InterspeciesMatingProb: 0.001,
		NewLinkTries:           30,
		DisjointCoeff:          1.0,
		ExcessCoeff:            1.0,
		WeightCoeff:            0.4,
		LogLevel:               "info",
	}
}

// Validate rejects configurations that would violate core invariants.
func (o *Options) Validate() error {
	if o.PopSize <= 0 {
		return errors.Errorf("wrong population size in options: %d", o.PopSize)
	}
	if o.CompatThreshold <= 0 {
		return errors.New("compat threshold must be positive")
	}
	if o.DropOffAge <= 0 {
		return errors.New("dropoff age must be positive")
	}
	if o.TargetNumSpecies <= 0 {
		return errors.New("target number of species must be positive")
	}
	if o.NewLinkTries <= 0 {
		return errors.New("new link tries must be positive")
	}
	for name, p := range map[string]float64{
		"new_node_prob":            o.NewNodeProb,
		"new_link_prob":            o.NewLinkProb,
		"change_link_weights_prob": o.ChangeLinkWeightsProb,
		"recurrent_link_prob":      o.RecurrentLinkProb,
		"self_link_prob":           o.SelfLinkProb,
		"toggle_enable_prob":       o.ToggleEnableProb,
		"mutate_only_prob":         o.MutateOnlyProb,
		"mutate_after_mating_prob": o.MutateAfterMatingProb,
		"interspecies_mating_prob": o.InterspeciesMatingProb,
	} {
		if p < 0 || p > 1 {
			return errors.Errorf("probability %s out of range [0,1]: %f", name, p)
		}
	}
	return nil
}

// LoadYAMLOptions loads Options encoded as YAML, the primary configuration
// format for this module.
func LoadYAMLOptions(r io.Reader) (*Options, error) {
	content, err := ioutil.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read NEAT options")
	}
	opts := DefaultOptions()
	if err = yaml.Unmarshal(content, opts); err != nil {
		return nil, errors.Wrap(err, "failed to decode NEAT options from YAML")
	}
	if err = InitLogger(opts.LogLevel); err != nil {
		return nil, errors.Wrap(err, "failed to initialize logger")
	}
	if err = opts.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid NEAT options")
	}
	return opts, nil
}

// LoadOptions loads Options from the legacy flat "key value" text format,
// kept for parity with hand-written config files.
func LoadOptions(r io.Reader) (*Options, error) {
	content, err := ioutil.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read NEAT options")
	}
	opts := DefaultOptions()
	for _, line := range strings.Split(string(content), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		parts := strings.SplitN(line, " ", 2)
		if len(parts) != 2 {
			return nil, errors.Errorf("malformed options line: %q", line)
		}
		name, value := parts[0], strings.TrimSpace(parts[1])
		switch name {
		case "pop_size":
			opts.PopSize = cast.ToInt(value)
		case "survival_threshold":
			opts.SurvivalThreshold = cast.ToFloat64(value)
		case "compat_threshold":
			opts.CompatThreshold = cast.ToFloat64(value)
		case "dropoff_age":
			opts.DropOffAge = cast.ToInt(value)
		case "target_num_species":
			opts.TargetNumSpecies = cast.ToInt(value)
		case "new_node_prob":
			opts.NewNodeProb = cast.ToFloat64(value)
		case "new_link_prob":
			opts.NewLinkProb = cast.ToFloat64(value)
		case "change_link_weights_prob":
			opts.ChangeLinkWeightsProb = cast.ToFloat64(value)
		case "change_link_weights_power":
			opts.ChangeLinkWeightsPower = cast.ToFloat64(value)
		case "recurrent_link_prob":
			opts.RecurrentLinkProb = cast.ToFloat64(value)
		case "self_link_prob":
			opts.SelfLinkProb = cast.ToFloat64(value)
		case "toggle_enable_prob":
			opts.ToggleEnableProb = cast.ToFloat64(value)
		case "mutate_only_prob":
			opts.MutateOnlyProb = cast.ToFloat64(value)
		case "mutate_after_mating_prob":
			opts.MutateAfterMatingProb = cast.ToFloat64(value)
		case "interspecies_mating_prob":
			opts.InterspeciesMatingProb = cast.ToFloat64(value)
		case "new_link_tries":
			opts.NewLinkTries = cast.ToInt(value)
		case "c_disjoint":
			opts.DisjointCoeff = cast.ToFloat64(value)
		case "c_excess":
			opts.ExcessCoeff = cast.ToFloat64(value)
		case "c_weight":
			opts.WeightCoeff = cast.ToFloat64(value)
		case "evaluator_workers":
			opts.EvaluatorWorkers = cast.ToInt(value)
		case "log_level":
			opts.LogLevel = value
		default:
			return nil, errors.Errorf("unknown configuration parameter: %s", name)
		}
	}
	if err = InitLogger(opts.LogLevel); err != nil {
		return nil, errors.Wrap(err, "failed to initialize logger")
	}
	if err = opts.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid NEAT options")
	}
	return opts, nil
}

// ReadOptionsFromFile resolves the file encoding (.yml/.yaml vs. flat text)
// from its extension and loads accordingly.
func ReadOptionsFromFile(path string) (*Options, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open options file")
	}
	defer f.Close()
	if strings.HasSuffix(path, ".yml") || strings.HasSuffix(path, ".yaml") {
		return LoadYAMLOptions(f)
	}
	return LoadOptions(f)
}
