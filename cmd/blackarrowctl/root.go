package main

import (
	"blackarrow-backend/internal/chatbot"
	"blackarrow-backend/internal/env"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const kbKey = "knowledge_base"

func newRootCmd() *cobra.Command {
	cfg := viper.New()
	_ = cfg.BindEnv(kbKey, env.KnowledgeBasePath)

	cmd := &cobra.Command{
		Use:          "blackarrowctl",
		Short:        "Operator tools for the Black Arrow backend",
		SilenceUsage: true,
	}

	cmd.PersistentFlags().String("kb", "", "Knowledge base YAML (defaults to KNOWLEDGE_BASE_PATH, then the embedded table).")
	_ = cfg.BindPFlag(kbKey, cmd.PersistentFlags().Lookup("kb"))

	cmd.AddCommand(newAskCmd(cfg))
	cmd.AddCommand(newKBCmd(cfg))
	cmd.AddCommand(newHashPasswordCmd())
	return cmd
}

func loadKB(cfg *viper.Viper) (*chatbot.KnowledgeBase, error) {
	return chatbot.LoadKnowledgeBase(cfg.GetString(kbKey))
}
