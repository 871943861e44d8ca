package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var factsCmd = &cobra.Command{
	Use:   "facts",
	Short: "Inspect what the assistant remembers about you",
}

var factsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List remembered facts",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		store, err := openFacts(cfg)
		if err != nil {
			return err
		}
		defer store.Close()

		facts, err := store.Load(cmd.Context())
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		if len(facts) == 0 {
			fmt.Fprintln(out, "No facts remembered yet.")
			return nil
		}
		for _, key := range facts.Keys() {
			fmt.Fprintf(out, "%s = %s\n", key, facts[key])
		}
		return nil
	},
}

var factsSetCmd = &cobra.Command{
	Use:     "set <key> <value>",
	Short:   "Remember a fact, e.g. `aeris facts set identity.name Ana`",
	Args:    cobra.MinimumNArgs(2),
	Example: "  aeris facts set identity.name Ana\n  aeris facts set preferences.city Zagreb",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		store, err := openFacts(cfg)
		if err != nil {
			return err
		}
		defer store.Close()

		key := strings.TrimSpace(args[0])
		value := strings.Join(args[1:], " ")
		if err := store.Merge(cmd.Context(), map[string]any{key: value}); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s = %s\n", key, value)
		return nil
	},
}

func init() {
	factsCmd.AddCommand(factsListCmd, factsSetCmd)
}
