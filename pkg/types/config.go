// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// HTTPConfig holds shared HTTP settings used by stages that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "get-papers-list/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// FetchConfig holds settings for the PubMed fetch stage.
type FetchConfig struct {
	HTTPConfig `yaml:",inline"`

	// MaxResults is the maximum number of PMIDs to request (default 100).
	MaxResults int `json:"max_results" yaml:"max_results"`

	// Email is the contact email sent to NCBI as courtesy identification.
	Email string `json:"email,omitempty" yaml:"email,omitempty"`

	// APIKey is an optional NCBI API key for higher rate limits.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`
}

// ClassifyConfig holds settings for the affiliation classification stage.
type ClassifyConfig struct {
	// CompaniesFile optionally overrides the built-in company lookup
	// table with a YAML file.
	CompaniesFile string `json:"companies_file,omitempty" yaml:"companies_file,omitempty"`

	// AcademicFile optionally overrides the built-in academic keyword
	// list with a YAML file.
	AcademicFile string `json:"academic_file,omitempty" yaml:"academic_file,omitempty"`
}

// OutputConfig holds settings for the reporting stage.
type OutputConfig struct {
	// File is the CSV output path. Empty means console table output.
	File string `json:"file,omitempty" yaml:"file,omitempty"`

	// Debug enables verbose progress output.
	Debug bool `json:"debug" yaml:"debug"`
}

// PipelineConfig groups all stage configurations for one run.
type PipelineConfig struct {
	Fetch    FetchConfig    `json:"fetch" yaml:"fetch"`
	Classify ClassifyConfig `json:"classify" yaml:"classify"`
	Output   OutputConfig   `json:"output" yaml:"output"`
}
