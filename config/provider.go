package config

import (
	"fmt"
	"path/filepath"

	"github.com/samber/do/v2"
)

// ProvideLoaderOptions configures the Loader provider.
type ProvideLoaderOptions struct {
	ConfigPath string // directory holding server.yaml / <env>.yaml
	EnvPrefix  string // environment variable prefix, e.g. "MODRING"
	Env        string // environment name selecting the overlay file
}

// ProvideLoader returns a samber/do provider building a ready Loader.
// Config is the bottom-most component and has no dependencies.
//
//	do.Provide(injector, config.ProvideLoader(config.ProvideLoaderOptions{
//	    ConfigPath: "configs",
//	    EnvPrefix:  "MODRING",
//	    Env:        "dev",
//	}))
//	loader := do.MustInvoke[*config.Loader](injector)
func ProvideLoader(opts ProvideLoaderOptions) func(do.Injector) (*Loader, error) {
	return func(i do.Injector) (*Loader, error) {
		if opts.ConfigPath == "" {
			opts.ConfigPath = "configs"
		}

		loader := NewLoader()
		loader.AddSource(NewFileSource(filepath.Join(opts.ConfigPath, "server.yaml"), 10))
		if opts.Env != "" {
			loader.AddSource(NewFileSource(filepath.Join(opts.ConfigPath, opts.Env+".yaml"), 20))
		}
		if opts.EnvPrefix != "" {
			loader.AddSource(NewEnvSource(opts.EnvPrefix, 50))
		}

		if err := loader.Load(); err != nil {
			return nil, fmt.Errorf("config loader build failed: %w", err)
		}
		return loader, nil
	}
}
