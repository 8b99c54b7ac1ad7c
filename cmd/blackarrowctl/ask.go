package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func newAskCmd(cfg *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ask [question...]",
		Short: "Run a question through the chatbot matcher",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			kb, err := loadKB(cfg)
			if err != nil {
				return err
			}
			question := strings.TrimSpace(strings.Join(args, " "))
			if question == "" {
				return errors.New("question is empty")
			}

			m := kb.Classify(question)
			verbose, _ := cmd.Flags().GetBool("verbose")
			if verbose {
				fmt.Fprintf(cmd.OutOrStdout(), "outcome=%s score=%d record=%d\n", m.Outcome, m.Score, m.Index)
			}
			fmt.Fprintln(cmd.OutOrStdout(), m.Answer)
			return nil
		},
	}
	cmd.Flags().BoolP("verbose", "v", false, "Print the match outcome, score and record index.")
	return cmd
}
