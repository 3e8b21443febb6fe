package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/pcastellanos/hubblefit/internal/domain"
)

func LoadAnalysis(path string) (domain.Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return domain.Config{}, &domain.OpError{
			Op:   "config.load_analysis",
			Kind: domain.KindNotFound,
			Path: path,
			Err:  err,
		}
	}

	var dto YAMLAnalysis
	if err := yaml.Unmarshal(b, &dto); err != nil {
		return domain.Config{}, &domain.OpError{
			Op:   "config.load_analysis",
			Kind: domain.KindInvalidInput,
			Path: path,
			Err:  err,
		}
	}

	return MapAnalysis(path, dto)
}
