// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the get-papers-list CLI: it searches
// PubMed for papers matching a query, flags the ones with pharmaceutical or
// biotech company authors, and writes a CSV summary or console table.
package main

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/get-papers-list/internal/classify"
	"github.com/pdiddy/get-papers-list/internal/pubmed"
	"github.com/pdiddy/get-papers-list/internal/report"
	"github.com/pdiddy/get-papers-list/internal/secrets"
	"github.com/pdiddy/get-papers-list/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

const (
	defaultTimeout    = 30 * time.Second
	defaultMaxResults = 100
	defaultUserAgent  = "get-papers-list/0.1"
)

// loadedSecrets holds NCBI credentials loaded from .secrets/ (or the
// environment) at startup.
var loadedSecrets map[string]string

// secretDefault returns fallback when set, else the secret value for key.
func secretDefault(key, fallback string) string {
	if fallback != "" {
		return fallback
	}
	return loadedSecrets[key]
}

var rootCmd = &cobra.Command{
	Use:   "get-papers-list <query>",
	Short: "Fetch PubMed papers with pharma/biotech company authors",
	Long: `get-papers-list queries PubMed for papers matching a search string,
retrieves author and affiliation metadata, and keeps the papers where at
least one author is affiliated with a pharmaceutical or biotech company.
Results go to a CSV file (-f) or a console table.

The query uses standard PubMed syntax: AND/OR/NOT operators, [MeSH]
qualifiers, field searches like author[au] or title[ti], date ranges
with [dp], and so on.`,
	Example: `  get-papers-list "cancer drug development"
  get-papers-list "COVID-19 vaccine" -f covid_papers.csv
  get-papers-list "diabetes[MeSH] AND clinical trial" --max-results 200`,
	Args:          cobra.ExactArgs(1),
	SilenceUsage:  true,
	RunE:          runRoot,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		s, err := secrets.Load(".secrets/")
		if err != nil {
			return err
		}
		loadedSecrets = s
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./get-papers-list.yaml or ~/.config/get-papers-list/config.yaml)")

	rootCmd.Flags().StringP("file", "f", "", "CSV output path (default: console table)")
	rootCmd.Flags().BoolP("debug", "d", false, "print debug information during execution")
	rootCmd.Flags().Int("max-results", defaultMaxResults, "maximum number of papers to fetch")
	rootCmd.Flags().String("email", "", "contact email sent to NCBI as courtesy identification")
	rootCmd.Flags().String("api-key", "", "NCBI API key for increased rate limits")
	rootCmd.Flags().Duration("timeout", defaultTimeout, "HTTP request timeout")
	rootCmd.Flags().String("companies-file", "", "YAML file overriding the known-company table")
	rootCmd.Flags().String("academic-file", "", "YAML file overriding the academic keyword list")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("get-papers-list")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "get-papers-list"))
		}
	}

	viper.SetEnvPrefix("GET_PAPERS_LIST")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func runRoot(cmd *cobra.Command, args []string) error {
	query := args[0]
	if query == "" {
		return fmt.Errorf("query must not be empty")
	}

	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}
	lists, err := buildLists(cfg.Classify)
	if err != nil {
		return err
	}

	// Validate the output path before any network call.
	if cfg.Output.File != "" {
		if err := report.CheckWritable(cfg.Output.File); err != nil {
			return err
		}
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	w := os.Stderr
	debug := cfg.Output.Debug

	fmt.Fprintf(w, "Searching PubMed for: %s\n", query)
	client := pubmed.NewClient(cfg.Fetch)

	pmids, err := client.Search(ctx, query)
	if err != nil {
		return fmt.Errorf("searching PubMed: %w", err)
	}
	if len(pmids) == 0 {
		fmt.Fprintln(w, "No papers found for the given query.")
		return nil
	}
	fmt.Fprintf(w, "Found %d paper(s)\n", len(pmids))

	if debug {
		fmt.Fprintln(w, "Fetching detailed paper information...")
	}
	result := client.FetchDetails(ctx, pmids, w)
	if ctx.Err() != nil {
		return ctx.Err()
	}
	if debug && result.SkippedRecords > 0 {
		fmt.Fprintf(w, "Skipped %d malformed record(s)\n", result.SkippedRecords)
	}
	if len(result.Papers) == 0 {
		fmt.Fprintln(w, "No detailed paper information could be retrieved.")
		return nil
	}
	fmt.Fprintf(w, "Retrieved details for %d paper(s)\n", len(result.Papers))

	if debug {
		fmt.Fprintln(w, "Filtering papers with company affiliations...")
	}
	summaries := classify.SummarizeAll(result.Papers, lists)
	if len(summaries) == 0 {
		fmt.Fprintln(w, "No papers found with pharmaceutical/biotech company authors.")
		fmt.Fprintln(w, "This could mean:")
		fmt.Fprintln(w, "- No papers in the results have industry authors")
		fmt.Fprintln(w, "- Author affiliation data is not available")
		fmt.Fprintln(w, "- Company detection patterns need refinement")
		return nil
	}
	fmt.Fprintf(w, "Found %d paper(s) with company affiliations\n", len(summaries))

	if cfg.Output.File != "" {
		if err := report.WriteFile(summaries, cfg.Output.File); err != nil {
			return err
		}
		fmt.Fprintf(w, "Results saved to %s\n", cfg.Output.File)
		printCompanySummary(summaries, w)
		return nil
	}

	report.FormatTable(summaries, os.Stdout)
	return nil
}

// buildConfig merges flags, the viper config file, and loaded secrets into
// the pipeline configuration. Flags win, then config, then secrets.
func buildConfig(cmd *cobra.Command) (types.PipelineConfig, error) {
	file, _ := cmd.Flags().GetString("file")
	debug, _ := cmd.Flags().GetBool("debug")
	maxResults, _ := cmd.Flags().GetInt("max-results")
	email, _ := cmd.Flags().GetString("email")
	apiKey, _ := cmd.Flags().GetString("api-key")
	timeout, _ := cmd.Flags().GetDuration("timeout")
	companiesFile, _ := cmd.Flags().GetString("companies-file")
	academicFile, _ := cmd.Flags().GetString("academic-file")

	if maxResults <= 0 {
		return types.PipelineConfig{}, fmt.Errorf("--max-results must be positive, got %d", maxResults)
	}

	if email == "" {
		email = viper.GetString("email")
	}
	if apiKey == "" {
		apiKey = viper.GetString("api_key")
	}
	if companiesFile == "" {
		companiesFile = viper.GetString("companies_file")
	}
	if academicFile == "" {
		academicFile = viper.GetString("academic_file")
	}

	return types.PipelineConfig{
		Fetch: types.FetchConfig{
			HTTPConfig: types.HTTPConfig{
				Timeout:   timeout,
				UserAgent: defaultUserAgent,
			},
			MaxResults: maxResults,
			Email:      secretDefault(secrets.KeyEmail, email),
			APIKey:     secretDefault(secrets.KeyAPIKey, apiKey),
		},
		Classify: types.ClassifyConfig{
			CompaniesFile: companiesFile,
			AcademicFile:  academicFile,
		},
		Output: types.OutputConfig{
			File:  file,
			Debug: debug,
		},
	}, nil
}

// buildLists starts from the built-in lookup tables and applies any
// configured overrides.
func buildLists(cfg types.ClassifyConfig) (classify.Lists, error) {
	lists := classify.DefaultLists()
	if cfg.CompaniesFile != "" {
		companies, err := classify.LoadCompaniesFile(cfg.CompaniesFile)
		if err != nil {
			return classify.Lists{}, err
		}
		lists.Companies = companies
	}
	if cfg.AcademicFile != "" {
		keywords, err := classify.LoadKeywordsFile(cfg.AcademicFile)
		if err != nil {
			return classify.Lists{}, err
		}
		lists.AcademicKeywords = keywords
	}
	return lists, nil
}

// printCompanySummary lists the distinct companies across all rows,
// sorted for readability.
func printCompanySummary(summaries []types.PaperSummary, w *os.File) {
	seen := map[string]bool{}
	for _, s := range summaries {
		for _, c := range s.Companies {
			seen[c] = true
		}
	}
	if len(seen) == 0 {
		return
	}
	companies := make([]string, 0, len(seen))
	for c := range seen {
		companies = append(companies, c)
	}
	sort.Strings(companies)

	fmt.Fprintln(w, "Companies found:")
	for _, c := range companies {
		fmt.Fprintf(w, "  - %s\n", c)
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
