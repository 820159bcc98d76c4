package contract

import (
	"fmt"
	"maps"
	"path/filepath"
	"slices"
	"strings"

	"github.com/pulseedu/schoolpulse/schema"
)

// Validation bounds for configuration.
const (
	MaxResultLimit = 1000
	MinPrecision   = 1
	MaxPrecision   = 3
)

// UrgencyWeightsRaw holds custom urgency weights from the YAML config
// file. Use float64 pointers so absent fields fall back to defaults.
type UrgencyWeightsRaw struct {
	Scope    *float64 `mapstructure:"scope"`
	Severity *float64 `mapstructure:"severity"`
}

// ProfileConfig holds profiling settings.
type ProfileConfig struct {
	Enabled bool
	Prefix  string
}

// ProcessProfilingConfig handles the profiling flag and sets up profiling configuration.
func ProcessProfilingConfig(profile *ProfileConfig, profilePrefix string) error {
	if profilePrefix != "" {
		profile.Enabled = true
		profile.Prefix = profilePrefix
	}
	return nil
}

// Config holds the runtime configuration for the analysis.
// This struct remains the "final, validated" config.
type Config struct {
	Workbook string
	Taxonomy *schema.Taxonomy
	Catalog  *schema.IssueCatalog

	IssueIDs   []string
	TierFilter schema.PerformanceTier // 0 = no filter
	School     string
	AllSchools bool

	Limit      int // 0 = no limit
	Detail     bool
	Explain    bool
	Precision  int
	Output     schema.OutputMode
	OutputFile string
	Width      int // Terminal width override (0 = auto-detect)

	MaxUrgency  int     // check gate: highest tolerated issue urgency
	MaxLowShare float64 // check gate: highest tolerated low-tier percentage

	// UrgencyWeights blends scope and severity into the urgency score,
	// computed from defaults plus custom overrides.
	UrgencyWeights map[schema.WeightKey]float64

	UseEmojis bool // Enable emojis in output headers
	UseColors bool // Enable colored labels in table output
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config file).
// Viper unmarshals into this struct.
type ConfigRawInput struct {
	// This is set manually from positional args, so no tag
	WorkbookStr string

	// --- Fields from rootCmd.PersistentFlags() ---
	Rubric     string `mapstructure:"rubric"`
	Catalog    string `mapstructure:"catalog"`
	Limit      int    `mapstructure:"limit"`
	Tier       string `mapstructure:"tier"`
	Precision  int    `mapstructure:"precision"`
	Output     string `mapstructure:"output"`
	OutputFile string `mapstructure:"output-file"`
	Detail     bool   `mapstructure:"detail"`
	Width      int    `mapstructure:"width"`
	Emoji      string `mapstructure:"emoji"`
	Color      string `mapstructure:"color"`

	// --- Fields from issuesCmd.Flags() ---
	Issues  string `mapstructure:"issues"`
	Explain bool   `mapstructure:"explain"`

	// --- Fields from reportCmd.Flags() ---
	School     string `mapstructure:"school"`
	AllSchools bool   `mapstructure:"all"`

	// --- Fields from checkCmd.Flags() ---
	MaxUrgency  int     `mapstructure:"max-urgency"`
	MaxLowShare float64 `mapstructure:"max-low-share"`

	// --- Custom urgency weights from config file ---
	Weights UrgencyWeightsRaw `mapstructure:"weights"`
}

// Clone returns a deep copy of the Config struct. The taxonomy and
// catalog pointers are shared; both are read-only after loading.
func (c *Config) Clone() *Config {
	clone := *c
	if c.IssueIDs != nil {
		clone.IssueIDs = slices.Clone(c.IssueIDs)
	}
	if c.UrgencyWeights != nil {
		clone.UrgencyWeights = maps.Clone(c.UrgencyWeights)
	}
	return &clone
}

// ProcessAndValidate performs all parsing and validation on the raw inputs
// and updates the final Config struct.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput) error {
	if err := validateSimpleInputs(cfg, input); err != nil {
		return err
	}
	if err := processSelection(cfg, input); err != nil {
		return err
	}
	if err := processUrgencyWeights(cfg, input); err != nil {
		return err
	}
	if err := resolveWorkbook(cfg, input); err != nil {
		return err
	}
	return loadRubricAndCatalog(cfg, input)
}

// validateSimpleInputs processes and validates all scalar fields.
func validateSimpleInputs(cfg *Config, input *ConfigRawInput) error {
	// --- 0. Transfer simple non-validated fields from input -> cfg ---
	cfg.OutputFile = input.OutputFile
	cfg.Detail = input.Detail
	cfg.Explain = input.Explain
	cfg.Width = input.Width

	// Parse emoji flag
	emojis, err := ParseBoolString(input.Emoji)
	if err != nil {
		return fmt.Errorf("invalid --emoji value: %w", err)
	}
	cfg.UseEmojis = emojis

	// Parse color flag
	colors, err := ParseBoolString(input.Color)
	if err != nil {
		return fmt.Errorf("invalid --color value: %w", err)
	}
	cfg.UseColors = colors

	// --- 1. Limit Validation ---
	if input.Limit < 0 || input.Limit > MaxResultLimit {
		return fmt.Errorf("limit must be between 0 and %d, 0 meaning no limit (received %d)", MaxResultLimit, input.Limit)
	}
	cfg.Limit = input.Limit

	// --- 2. Precision and Output Validation ---
	if input.Precision < MinPrecision || input.Precision > MaxPrecision {
		return fmt.Errorf("precision must be between %d and %d (received %d)", MinPrecision, MaxPrecision, input.Precision)
	}
	cfg.Precision = input.Precision

	cfg.Output = schema.OutputMode(strings.ToLower(input.Output))
	if _, ok := schema.ValidOutputModes[cfg.Output]; !ok {
		return fmt.Errorf("invalid output format '%s'. must be text, csv, json, parquet", input.Output)
	}
	if cfg.Output == schema.ParquetOut && cfg.OutputFile == "" {
		return fmt.Errorf("parquet output requires --output-file")
	}

	// --- 3. Check Gate Validation ---
	if input.MaxUrgency < 0 || input.MaxUrgency > 100 {
		return fmt.Errorf("max-urgency must be between 0 and 100 (received %d)", input.MaxUrgency)
	}
	cfg.MaxUrgency = input.MaxUrgency

	if input.MaxLowShare < 0 || input.MaxLowShare > 100 {
		return fmt.Errorf("max-low-share must be between 0.0 and 100.0 (received %.1f)", input.MaxLowShare)
	}
	cfg.MaxLowShare = input.MaxLowShare

	return nil
}

// processSelection handles the tier filter, issue candidates and school
// selector.
func processSelection(cfg *Config, input *ConfigRawInput) error {
	tier, err := ParseTierString(input.Tier)
	if err != nil {
		return err
	}
	cfg.TierFilter = tier

	cfg.IssueIDs = ParseIssueList(input.Issues)

	cfg.School = strings.TrimSpace(input.School)
	cfg.AllSchools = input.AllSchools
	if cfg.AllSchools && cfg.School != "" {
		return fmt.Errorf("cannot combine --school with --all")
	}

	return nil
}

// processUrgencyWeights merges custom weight overrides over the defaults
// and validates that the result still sums to 1.0.
func processUrgencyWeights(cfg *Config, input *ConfigRawInput) error {
	weights := schema.GetDefaultUrgencyWeights()
	if input.Weights.Scope != nil {
		weights[schema.WeightScope] = *input.Weights.Scope
	}
	if input.Weights.Severity != nil {
		weights[schema.WeightSeverity] = *input.Weights.Severity
	}

	sum := 0.0
	for key, w := range weights {
		if w < 0.0 || w > 1.0 {
			return fmt.Errorf("urgency weight %s must be between 0.0 and 1.0 (received %.3f)", key, w)
		}
		sum += w
	}
	if sum < 0.999 || sum > 1.001 {
		return fmt.Errorf("urgency weights must sum to 1.0, got %.3f", sum)
	}

	cfg.UrgencyWeights = weights
	return nil
}

// resolveWorkbook validates the workbook path shape. Existence is
// checked at load time so commands that never read the roster still
// configure cleanly.
func resolveWorkbook(cfg *Config, input *ConfigRawInput) error {
	workbook := strings.TrimSpace(input.WorkbookStr)
	if workbook == "" {
		workbook = schema.DefaultWorkbook
	}
	switch strings.ToLower(filepath.Ext(workbook)) {
	case ".csv", ".json":
	default:
		return fmt.Errorf("unsupported workbook format '%s'. must be a .csv or .json file", workbook)
	}
	cfg.Workbook = workbook
	return nil
}

// loadRubricAndCatalog loads the rubric and issue catalog, falling back
// to the built-in defaults, then checks issue candidates against the
// catalog.
func loadRubricAndCatalog(cfg *Config, input *ConfigRawInput) error {
	if input.Rubric != "" {
		tax, err := schema.LoadTaxonomyFile(input.Rubric)
		if err != nil {
			return fmt.Errorf("load rubric: %w", err)
		}
		cfg.Taxonomy = tax
	} else {
		cfg.Taxonomy = schema.DefaultTaxonomy()
	}

	if input.Catalog != "" {
		catalog, err := schema.LoadCatalogFile(input.Catalog)
		if err != nil {
			return fmt.Errorf("load catalog: %w", err)
		}
		cfg.Catalog = catalog
	} else {
		cfg.Catalog = schema.DefaultCatalog()
	}

	for _, id := range cfg.IssueIDs {
		if _, ok := cfg.Catalog.Definition(id); !ok {
			return fmt.Errorf("unknown issue id '%s'. known ids: %s", id, strings.Join(cfg.Catalog.IDs(), ", "))
		}
	}

	return nil
}

// RevalidateTier re-parses a raw tier filter on an already validated
// config. The MCP handlers use this for parameters that bypass cobra.
func RevalidateTier(cfg *Config, tierStr string) error {
	tier, err := ParseTierString(tierStr)
	if err != nil {
		return err
	}
	cfg.TierFilter = tier
	return nil
}

// RevalidateIssues re-parses a raw issue candidate list and checks it
// against the loaded catalog.
func RevalidateIssues(cfg *Config, issuesStr string) error {
	cfg.IssueIDs = ParseIssueList(issuesStr)
	for _, id := range cfg.IssueIDs {
		if _, ok := cfg.Catalog.Definition(id); !ok {
			return fmt.Errorf("unknown issue id '%s'. known ids: %s", id, strings.Join(cfg.Catalog.IDs(), ", "))
		}
	}
	return nil
}

// RevalidateReport checks the school selector before building report
// cards.
func RevalidateReport(cfg *Config) error {
	if cfg.AllSchools && cfg.School != "" {
		return fmt.Errorf("cannot combine --school with --all")
	}
	if !cfg.AllSchools && strings.TrimSpace(cfg.School) == "" {
		return fmt.Errorf("must specify --school when running the report command")
	}
	return nil
}
