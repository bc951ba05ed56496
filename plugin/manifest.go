package plugin

import (
	"regexp"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/modring/go-modring-framework/validator"
)

var (
	namePattern    = regexp.MustCompile(`^[a-z0-9][a-z0-9_-]*$`)
	versionPattern = regexp.MustCompile(`^\d+\.\d+(\.\d+)?([.-][0-9A-Za-z]+)*$`)
)

// Manifest describes a plugin to the host.
type Manifest struct {
	// Name is the unique plugin identifier. Lowercase, digits,
	// hyphen, underscore.
	Name string `mapstructure:"name" json:"name"`

	// Version, e.g. "1.4.2".
	Version string `mapstructure:"version" json:"version"`

	// Author is free-form.
	Author string `mapstructure:"author" json:"author,omitempty"`

	// Description is a one-line summary.
	Description string `mapstructure:"description" json:"description,omitempty"`

	// Website points at the plugin's home page.
	Website string `mapstructure:"website" json:"website,omitempty"`
}

// Validate checks the manifest.
func (m Manifest) Validate() error {
	return validation.ValidateStruct(&m,
		validation.Field(&m.Name,
			validation.Required,
			validation.Length(2, 64),
			validation.Match(namePattern)),
		validation.Field(&m.Version,
			validation.Required,
			validation.Match(versionPattern)),
		validation.Field(&m.Description, validation.Length(0, 256)),
	)
}

// checkManifest validates and converts errors to layered codes.
func checkManifest(m Manifest) error {
	if err := validator.ValidateRequest(m); err != nil {
		return ErrManifestInvalid.Wrap(err)
	}
	return nil
}
