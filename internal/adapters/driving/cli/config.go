package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/custodia-labs/sourcerank/internal/core/domain"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or change settings",
	Long: `Settings are stored in config.toml inside the configuration directory.
Run 'sourcerank config keys' for the list of supported keys.`,
	RunE: runConfigShow,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show effective settings",
	Args:  cobra.NoArgs,
	RunE:  runConfigShow,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a setting",
	Long: `Validates and stores one setting. List values are comma-separated.

Examples:
  sourcerank config set recommend.strategy soft-quota
  sourcerank config set diversify.type_cap.telegram 2
  sourcerank config set catalog.url_lists links.txt,more-links.txt`,
	Args: cobra.ExactArgs(2),
	RunE: runConfigSet,
}

var configKeysCmd = &cobra.Command{
	Use:   "keys",
	Short: "List supported setting keys",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		if settingsService == nil {
			return errNotConfigured("settings")
		}
		for _, k := range settingsService.Keys() {
			fmt.Fprintln(cmd.OutOrStdout(), k)
		}
		return nil
	},
}

var configVocabularyCmd = &cobra.Command{
	Use:   "vocabulary",
	Short: "Print the effective vocabulary as YAML",
	Long: `Prints the keyword, cluster, domain-hint and gap tables in use. Save the
output, edit it and point catalog.vocabulary at the file to override them.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		v := vocabulary
		if v == nil {
			v = domain.DefaultVocabulary()
		}
		enc := yaml.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("encode vocabulary: %w", err)
		}
		return enc.Close()
	},
}

func init() {
	configCmd.AddCommand(configShowCmd, configSetCmd, configKeysCmd, configVocabularyCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errNotConfigured("settings")
	}
	s, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Config file: %s\n\n", settingsService.Path())

	fmt.Fprintln(out, "[catalog]")
	fmt.Fprintf(out, "  dir:         %s\n", s.Catalog.Dir)
	fmt.Fprintf(out, "  karpathy:    %s\n", s.Catalog.Karpathy)
	fmt.Fprintf(out, "  deep_github: %s\n", s.Catalog.DeepGitHub)
	fmt.Fprintf(out, "  telegram:    %s\n", s.Catalog.Telegram)
	fmt.Fprintf(out, "  url_lists:   %s\n", strings.Join(s.Catalog.URLLists, ", "))
	fmt.Fprintf(out, "  vocabulary:  %s\n", orDefault(s.Catalog.Vocabulary, "(built-in)"))
	fmt.Fprintln(out)

	fmt.Fprintln(out, "[recommend]")
	fmt.Fprintf(out, "  limit:    %d\n", s.Recommend.Limit)
	fmt.Fprintf(out, "  strategy: %s\n", s.Recommend.Strategy.Description())
	fmt.Fprintln(out)

	d := s.Diversify
	fmt.Fprintln(out, "[diversify]")
	fmt.Fprintf(out, "  per_type_cap:       %d\n", d.PerTypeCap)
	for _, t := range domain.AllSourceTypes() {
		if c, ok := d.TypeCaps[t]; ok {
			fmt.Fprintf(out, "  type_cap.%-11s %d\n", t.String()+":", c)
		}
	}
	fmt.Fprintf(out, "  per_host_cap:       %d\n", d.PerHostCap)
	fmt.Fprintf(out, "  window_multiplier:  %d\n", d.WindowMultiplier)
	fmt.Fprintf(out, "  accept_relevance:   %.2f\n", d.AcceptRelevance)
	fmt.Fprintf(out, "  backfill_relevance: %.2f\n", d.BackfillRelevance)
	fmt.Fprintf(out, "  min_secondary:      %d\n", d.MinSecondary)
	fmt.Fprintln(out)

	fmt.Fprintln(out, "[import]")
	fmt.Fprintf(out, "  github_token: %s\n", maskToken(s.Import.GitHubToken))
	fmt.Fprintf(out, "  feeds:        %s\n", orDefault(strings.Join(s.Import.Feeds, ", "), "(none)"))
	if s.Import.TelegramEnabled() {
		fmt.Fprintf(out, "  telegram:     app %d, hash %s\n", s.Import.TelegramAppID, maskToken(s.Import.TelegramAppHash))
	} else {
		fmt.Fprintln(out, "  telegram:     (not configured)")
	}
	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errNotConfigured("settings")
	}
	if err := settingsService.Set(args[0], args[1]); err != nil {
		return fmt.Errorf("failed to set %s: %w", args[0], err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Set %s\n", args[0])
	return nil
}

func maskToken(token string) string {
	switch {
	case token == "":
		return "(not set)"
	case len(token) <= 8:
		return "****"
	default:
		return token[:4] + "..." + token[len(token)-4:]
	}
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
