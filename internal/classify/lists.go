// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package classify

import (
	"fmt"
	"os"
	"strings"

	"go.yaml.in/yaml/v3"
)

// Company is one entry in the known-company lookup table. Matching is a
// case-insensitive substring check against the name and any aliases; the
// Name is what appears in output.
type Company struct {
	Name    string   `yaml:"name"`
	Aliases []string `yaml:"aliases,omitempty"`
}

// Lists holds the ordered lookup tables driving classification. They are
// configuration data: DefaultLists returns the built-in tables, and each
// table can be replaced from a YAML file without touching code.
type Lists struct {
	Companies        []Company `yaml:"companies"`
	AcademicKeywords []string  `yaml:"academic_keywords"`
	IndustryKeywords []string  `yaml:"industry_keywords"`
}

// DefaultLists returns the built-in lookup tables.
func DefaultLists() Lists {
	return Lists{
		Companies:        defaultCompanies(),
		AcademicKeywords: defaultAcademicKeywords(),
		IndustryKeywords: defaultIndustryKeywords(),
	}
}

// LoadCompaniesFile reads a YAML company table: a list of entries with a
// name and optional aliases.
func LoadCompaniesFile(path string) ([]Company, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading companies file: %w", err)
	}
	var companies []Company
	if err := yaml.Unmarshal(data, &companies); err != nil {
		return nil, fmt.Errorf("parsing companies file %s: %w", path, err)
	}
	var valid []Company
	for _, c := range companies {
		if strings.TrimSpace(c.Name) != "" {
			valid = append(valid, c)
		}
	}
	if len(valid) == 0 {
		return nil, fmt.Errorf("companies file %s contains no usable entries", path)
	}
	return valid, nil
}

// LoadKeywordsFile reads a YAML keyword table: a plain list of strings.
func LoadKeywordsFile(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading keywords file: %w", err)
	}
	var keywords []string
	if err := yaml.Unmarshal(data, &keywords); err != nil {
		return nil, fmt.Errorf("parsing keywords file %s: %w", path, err)
	}
	var valid []string
	for _, k := range keywords {
		if strings.TrimSpace(k) != "" {
			valid = append(valid, k)
		}
	}
	if len(valid) == 0 {
		return nil, fmt.Errorf("keywords file %s contains no usable entries", path)
	}
	return valid, nil
}

// defaultCompanies lists major pharmaceutical and biotech companies.
// Order matters: the first match wins, so more specific names come before
// shorter ones that could shadow them.
func defaultCompanies() []Company {
	return []Company{
		{Name: "Pfizer"},
		{Name: "Johnson & Johnson", Aliases: []string{"j&j"}},
		{Name: "Janssen"},
		{Name: "Genentech"},
		{Name: "Roche"},
		{Name: "Novartis"},
		{Name: "Merck", Aliases: []string{"msd"}},
		{Name: "Bristol-Myers Squibb", Aliases: []string{"bristol myers squibb", "bms"}},
		{Name: "AbbVie"},
		{Name: "Sanofi"},
		{Name: "GlaxoSmithKline", Aliases: []string{"gsk"}},
		{Name: "AstraZeneca"},
		{Name: "Boehringer Ingelheim"},
		{Name: "Takeda"},
		{Name: "Eli Lilly", Aliases: []string{"lilly"}},
		{Name: "Bayer"},
		{Name: "Novo Nordisk"},
		{Name: "Biogen"},
		{Name: "Celgene"},
		{Name: "Amgen"},
		{Name: "Gilead"},
		{Name: "Regeneron"},
		{Name: "Vertex"},
		{Name: "Moderna"},
		{Name: "BioNTech"},
		{Name: "CureVac"},
		{Name: "Alexion"},
		{Name: "Alnylam"},
		{Name: "BioMarin"},
		{Name: "Incyte"},
		{Name: "Exelixis"},
		{Name: "Seagen", Aliases: []string{"seattle genetics"}},
		{Name: "Jazz Pharmaceuticals"},
		{Name: "Shire"},
		{Name: "Allergan"},
		{Name: "Teva"},
		{Name: "Mylan"},
		{Name: "Sandoz"},
		{Name: "Hospira"},
		{Name: "Actavis"},
		{Name: "Mallinckrodt"},
		{Name: "Otsuka"},
		{Name: "Daiichi Sankyo"},
		{Name: "Astellas"},
		{Name: "Eisai"},
		{Name: "Chugai"},
		{Name: "Kyowa Kirin"},
		{Name: "Ono Pharmaceutical"},
		{Name: "Shionogi"},
		{Name: "Tsumura"},
		{Name: "Grifols"},
		{Name: "UCB"},
		{Name: "Servier"},
		{Name: "Ipsen"},
		{Name: "CSL Behring"},
		{Name: "Genmab"},
		{Name: "Bluebird Bio"},
		{Name: "CRISPR Therapeutics"},
		{Name: "Editas Medicine"},
		{Name: "Intellia Therapeutics"},
		{Name: "Sangamo Therapeutics"},
		{Name: "Beam Therapeutics"},
		{Name: "Allogene Therapeutics"},
		{Name: "Juno Therapeutics"},
		{Name: "Kite Pharma"},
		{Name: "Fate Therapeutics"},
		{Name: "Cellectis"},
		{Name: "Oxford Biomedica"},
		{Name: "Orchard Therapeutics"},
		{Name: "uniQure"},
		{Name: "Spark Therapeutics"},
	}
}

// defaultAcademicKeywords lists terms that mark academic, non-profit, and
// government institutions.
func defaultAcademicKeywords() []string {
	return []string{
		"university",
		"college",
		"school of medicine",
		"medical school",
		"graduate school",
		"school of public health",
		"hospital",
		"medical center",
		"medical centre",
		"health center",
		"clinic",
		"academy of",
		"institute",
		"laboratory",
		"nih",
		"ministry of",
		"department of health",
		"public health agency",
		"government",
		"federal",
		"research council",
		"faculty of",
		"foundation",
		"non-profit",
		"nonprofit",
		"charity",
		"max planck",
		"inserm",
		"cnrs",
	}
}

// defaultIndustryKeywords lists terms that mark commercial pharma/biotech
// organizations for the suffix-pattern rule.
func defaultIndustryKeywords() []string {
	return []string{
		"pharmaceutical",
		"pharmaceuticals",
		"pharma",
		"biotech",
		"biotechnology",
		"biopharmaceutical",
		"biopharmaceuticals",
		"therapeutics",
		"biosciences",
		"laboratories",
		"r&d",
		"clinical development",
		"medical affairs",
	}
}
