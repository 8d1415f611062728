package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/bnema/urlclean/internal/engine"
	"github.com/bnema/urlclean/internal/models"
	"github.com/bnema/urlclean/internal/rules"
	"github.com/bnema/urlclean/internal/urlview"
)

var (
	cfgFile string
	cfg     models.Config
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "urlclean",
	Short: "Remove tracking parameters from URLs",
	Long: `A tool that strips tracking query parameters from URLs using a
configurable rule set, leaving every other byte of the URL untouched.`,
}

var cleanCmd = &cobra.Command{
	Use:   "clean [url...]",
	Short: "Clean URLs from arguments or stdin",
	RunE:  runClean,
}

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "Inspect and validate rule sets",
}

var rulesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the loaded rules",
	RunE:  runRulesList,
}

var rulesCheckCmd = &cobra.Command{
	Use:   "check [file]",
	Short: "Validate a rule file, reporting every problem",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runRulesCheck,
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a default rules file and config",
	RunE:  runInit,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default: ./configs/urlclean.toml)")
	rootCmd.PersistentFlags().String("rules", "", "rules file (overrides config)")

	cleanCmd.Flags().Bool("json", false, "emit full results as JSON")
	cleanCmd.Flags().Bool("verbose", false, "show per-parameter effects")

	rulesCmd.AddCommand(rulesListCmd, rulesCheckCmd)
	rootCmd.AddCommand(cleanCmd, rulesCmd, initCmd)
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("urlclean")
		viper.SetConfigType("toml")
		viper.AddConfigPath("./configs")
		viper.AddConfigPath(".")
	}

	// Set defaults
	viper.SetDefault("rules.file", "./configs/rules.json")
	viper.SetDefault("rules.accept_semicolon", false)
	viper.SetDefault("rules.cache_size", engine.DefaultCacheSize)
	viper.SetDefault("output.format", "plain")
	viper.SetDefault("output.verbose", false)

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			fmt.Fprintf(os.Stderr, "Error reading config: %v\n", err)
		}
	}

	if err := viper.Unmarshal(&cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing config: %v\n", err)
	}
}

// rulesPath resolves the rules file: flag beats config.
func rulesPath(cmd *cobra.Command) string {
	if p, _ := cmd.Flags().GetString("rules"); p != "" {
		return p
	}
	return cfg.Rules.File
}

// loadSettings reads the configured rule file, falling back to the shipped
// defaults when it is missing or malformed. A malformed file is never
// partially applied.
func loadSettings(cmd *cobra.Command) models.AppSettings {
	path := rulesPath(cmd)
	settings, err := rules.Store{Path: path}.Read()
	if err != nil {
		if !os.IsNotExist(err) {
			fmt.Fprintf(os.Stderr, "Warning: rules file %s rejected, using defaults: %v\n", path, err)
		}
		return rules.Default()
	}
	return settings
}

func runClean(cmd *cobra.Command, args []string) error {
	asJSON, _ := cmd.Flags().GetBool("json")
	verbose, _ := cmd.Flags().GetBool("verbose")
	if cfg.Output.Format == "json" {
		asJSON = true
	}
	verbose = verbose || cfg.Output.Verbose

	settings := loadSettings(cmd)
	eng := engine.New(slog.New(slog.NewTextHandler(os.Stderr, nil)), cfg.Rules.CacheSize)
	rs, err := eng.Compiled(settings)
	if err != nil {
		return fmt.Errorf("compiling rules: %w", err)
	}

	tok := urlview.StdTokenizer{AcceptSemicolon: cfg.Rules.AcceptSemicolon}

	inputs := args
	if len(inputs) == 0 {
		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			line := strings.TrimSpace(scanner.Text())
			if line != "" {
				inputs = append(inputs, line)
			}
		}
		if err := scanner.Err(); err != nil {
			return err
		}
	}

	failed := 0
	for _, raw := range inputs {
		u, err := urlview.Parse(raw, tok)
		if err != nil {
			fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
			failed++
			continue
		}

		res := eng.Clean(u, rs)
		if asJSON {
			if err := printJSON(raw, res); err != nil {
				return err
			}
			continue
		}

		fmt.Println(res.Cleaned.String())
		printWarnings(res)
		if verbose {
			printEffects(res)
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d URLs could not be parsed", failed, len(inputs))
	}
	return nil
}

func printWarnings(res engine.Result) {
	if res.Warnings.HasCredentials {
		fmt.Fprintln(os.Stderr, "  warning: URL embeds credentials (left untouched)")
	}
	for _, p := range res.Warnings.SensitiveParams {
		if vals := res.Cleaned.Query().GetAll(p); len(vals) > 0 {
			fmt.Fprintf(os.Stderr, "  warning: sensitive parameter %q present\n", p)
		}
	}
}

func printEffects(res engine.Result) {
	for _, eff := range res.Effects {
		if !eff.Removed {
			continue
		}
		var by []string
		for _, m := range eff.Matches {
			by = append(by, fmt.Sprintf("rule %d (%s)", m.RuleIndex, m.Pattern))
		}
		fmt.Fprintf(os.Stderr, "  removed %q: %s\n", eff.Key, strings.Join(by, ", "))
	}
}

// CleanOutput is the JSON shape emitted per URL
type CleanOutput struct {
	Input    string               `json:"input"`
	Cleaned  string               `json:"cleaned"`
	Effects  []engine.TokenEffect `json:"tokenEffects"`
	Warnings engine.Warnings      `json:"warnings"`
}

func printJSON(input string, res engine.Result) error {
	enc := json.NewEncoder(os.Stdout)
	return enc.Encode(CleanOutput{
		Input:    input,
		Cleaned:  res.Cleaned.String(),
		Effects:  res.Effects,
		Warnings: res.Warnings,
	})
}

func runRulesList(cmd *cobra.Command, args []string) error {
	settings := loadSettings(cmd)

	fmt.Printf("Rule set version %d, %d rules:\n\n", settings.Version, len(settings.Sites))
	for i, rule := range settings.Sites {
		name := ""
		if rule.Metadata != nil {
			if n, ok := rule.Metadata["name"].(string); ok {
				name = " " + n
			}
		}
		fmt.Printf("  [%d]%s\n", i, name)
		fmt.Printf("      hosts:   %s\n", describeHost(rule.When.Host))
		if len(rule.When.Schemes) > 0 {
			fmt.Printf("      schemes: %s\n", strings.Join(rule.When.Schemes, ", "))
		}
		if len(rule.Then.Remove) > 0 {
			fmt.Printf("      remove:  %s\n", strings.Join(rule.Then.Remove, ", "))
		}
		if w := rule.Then.Warn; w != nil {
			fmt.Printf("      warn:    credentials=%v sensitive=[%s]\n",
				w.OnEmbeddedCredentials, strings.Join(w.SensitiveParams, ", "))
		}
		fmt.Println()
	}
	return nil
}

func describeHost(h models.HostMatch) string {
	if h.Domains.Kind == models.DomainsAny {
		return "any"
	}
	domains := strings.Join(h.Domains.Names, ", ")
	switch h.Subdomains.Kind {
	case models.SubdomainsNone:
		return domains + " (no subdomains)"
	case models.SubdomainsOneOf:
		return domains + " (subdomains: " + strings.Join(h.Subdomains.Labels, ", ") + ")"
	default:
		return domains + " (any subdomain)"
	}
}

func runRulesCheck(cmd *cobra.Command, args []string) error {
	path := rulesPath(cmd)
	if len(args) == 1 {
		path = args[0]
	}

	_, err := rules.Store{Path: path}.Read()
	if err == nil {
		fmt.Printf("%s: OK\n", path)
		return nil
	}

	fmt.Printf("%s: invalid\n", path)
	for _, line := range strings.Split(err.Error(), "\n") {
		fmt.Printf("  %s\n", line)
	}
	return fmt.Errorf("rule file rejected")
}

func runInit(cmd *cobra.Command, args []string) error {
	rulesFile := rulesPath(cmd)
	configPath := "./configs/urlclean.toml"
	if cfgFile != "" {
		configPath = cfgFile
	}

	if err := writeDefaultRules(rulesFile); err != nil {
		return err
	}
	fmt.Printf("Created rules file: %s\n", rulesFile)

	if err := writeDefaultConfig(configPath, rulesFile); err != nil {
		return err
	}
	fmt.Printf("Created config file: %s\n", configPath)
	return nil
}

func writeDefaultRules(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("rules file already exists: %s", path)
	}
	return rules.Store{Path: path}.Write(rules.Default())
}

func writeDefaultConfig(path, rulesFile string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists: %s", path)
	}

	defaultConfig := fmt.Sprintf(`# urlclean configuration

# Rule-set settings
[rules]
file = %q
accept_semicolon = false
cache_size = %d

# Output settings
[output]
format = "plain"
verbose = false
`, rulesFile, engine.DefaultCacheSize)

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(defaultConfig), 0644)
}
