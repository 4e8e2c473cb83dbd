package domain

import _ "embed"

//go:embed config_template.toml
var configTemplateContent string

// ConfigTemplate returns the commented default configuration file.
func ConfigTemplate() string {
	return configTemplateContent
}
