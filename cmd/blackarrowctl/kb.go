package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func newKBCmd(cfg *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "kb",
		Short: "Inspect the chatbot knowledge base",
	}
	cmd.AddCommand(newKBLintCmd(cfg))
	cmd.AddCommand(newKBListCmd(cfg))
	return cmd
}

func newKBLintCmd(cfg *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "lint",
		Short: "Report records the matcher cannot use",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			kb, err := loadKB(cfg)
			if err != nil {
				return err
			}
			problems := kb.Lint()
			for _, p := range problems {
				fmt.Fprintln(cmd.OutOrStdout(), p)
			}
			if len(problems) > 0 {
				return fmt.Errorf("%d problem(s) in %d record(s)", len(problems), kb.Len())
			}
			fmt.Fprintf(cmd.OutOrStdout(), "ok: %d records\n", kb.Len())
			return nil
		},
	}
}

func newKBListCmd(cfg *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List questions and their keywords",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			kb, err := loadKB(cfg)
			if err != nil {
				return err
			}
			for i, rec := range kb.Records() {
				fmt.Fprintf(cmd.OutOrStdout(), "%3d  %s  %v\n", i, rec.Question, rec.Keywords)
			}
			return nil
		},
	}
}
