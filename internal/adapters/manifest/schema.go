package manifest

import "go.trai.ch/annocache/internal/core/domain"

// SupportedVersion is the only manifest version understood by the loader.
const SupportedVersion = "1"

// Manifest is the on-disk shape of annotations.yaml.
type Manifest struct {
	Version      string                    `yaml:"version"`
	Root         string                    `yaml:"root"`
	Declarations map[string]DeclarationDTO `yaml:"declarations"`
}

// DeclarationDTO is the on-disk shape of one declaration.
type DeclarationDTO struct {
	Source      string                       `yaml:"source"`
	Extends     string                       `yaml:"extends"`
	Uses        []string                     `yaml:"uses"`
	Implements  []string                     `yaml:"implements"`
	Annotations domain.Collection            `yaml:"annotations"`
	Properties  map[string]domain.Collection `yaml:"properties"`
	Methods     map[string]domain.Collection `yaml:"methods"`
}
