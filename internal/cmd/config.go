package cmd

import (
	"errors"
	"os"

	"github.com/hephbuild/lockbench/internal/bench"
)

var configPath string

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "trials config file (default "+bench.ConfigFileName+" when present)")
}

func loadConfig() (bench.Config, error) {
	cfg := bench.DefaultConfig()

	paths := []string{bench.ConfigFileName, bench.ConfigFileName + ".local"}
	if configPath != "" {
		paths = []string{configPath}
	}

	for _, p := range paths {
		yamlCfg, err := bench.ParseYAMLConfig(p)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) && configPath == "" {
				continue
			}

			return cfg, err
		}

		cfg, err = bench.ApplyYAMLConfig(cfg, yamlCfg)
		if err != nil {
			return cfg, err
		}
	}

	return cfg, nil
}
