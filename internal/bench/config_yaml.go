package bench

import (
	"fmt"
	"os"
	"slices"

	"github.com/go-viper/mapstructure/v2"
	"github.com/goccy/go-yaml"
	"github.com/hephbuild/lockbench/internal/runner"
)

type YAMLConfig struct {
	Runs   *int        `yaml:"runs"`
	Warmup *int        `yaml:"warmup"`
	Trials []YAMLTrial `yaml:"trials"`
}

type YAMLTrial struct {
	Name     string         `yaml:"name"`
	Protocol *string        `yaml:"protocol"`
	Budget   *uint64        `yaml:"budget"`
	Threads  *int           `yaml:"threads"`
	Options  map[string]any `yaml:"options,omitempty"`
}

func ParseYAMLConfig(filepath string) (YAMLConfig, error) {
	b, err := os.ReadFile(filepath)
	if err != nil {
		return YAMLConfig{}, err
	}

	return DecodeYAMLConfig(b)
}

func DecodeYAMLConfig(b []byte) (YAMLConfig, error) {
	var cfg YAMLConfig
	err := yaml.UnmarshalWithOptions(b, &cfg, yaml.Strict())
	if err != nil {
		return YAMLConfig{}, err
	}

	return cfg, nil
}

// ApplyYAMLConfig patches trials that already exist by name and appends new ones.
func ApplyYAMLConfig(cfg Config, inc YAMLConfig) (Config, error) {
	if inc.Runs != nil {
		cfg.Runs = *inc.Runs
	}

	if inc.Warmup != nil {
		cfg.Warmup = *inc.Warmup
	}

	cfg.Trials = slices.Clone(cfg.Trials)

	for _, inct := range inc.Trials {
		if inct.Name == "" {
			return Config{}, fmt.Errorf("trial without name")
		}

		i := slices.IndexFunc(cfg.Trials, func(t Trial) bool {
			return t.Name == inct.Name
		})

		if i < 0 {
			cfg.Trials = append(cfg.Trials, Trial{
				Name:    inct.Name,
				Budget:  DefaultBudget,
				Threads: DefaultThreads,
			})
			i = len(cfg.Trials) - 1
		}

		t := cfg.Trials[i]
		if inct.Protocol != nil {
			p, err := runner.ParseProtocol(*inct.Protocol)
			if err != nil {
				return Config{}, fmt.Errorf("trial %q: %w", inct.Name, err)
			}
			t.Protocol = p
		}
		if inct.Budget != nil {
			t.Budget = *inct.Budget
		}
		if inct.Threads != nil {
			t.Threads = *inct.Threads
		}
		if inct.Options != nil {
			err := decodeOptions(inct.Options, &t)
			if err != nil {
				return Config{}, fmt.Errorf("trial %q: options: %w", inct.Name, err)
			}
		}
		cfg.Trials[i] = t
	}

	return cfg, nil
}

func decodeOptions(options map[string]any, t *Trial) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &t.Options,
		ErrorUnused:      true,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return err
	}

	return dec.Decode(options)
}
