package ports

import "go.trai.ch/dts/internal/core/domain"

// ConfigLoader defines the interface for loading the project configuration.
//
//go:generate mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// Load walks up from cwd to the nearest dts.yaml and returns its configuration.
	// It returns nil, nil when no configuration file exists.
	Load(cwd string) (*domain.Config, error)
}
