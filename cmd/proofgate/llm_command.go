package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"proofgate/internal/config"
)

func newLLMCommand(ctx *commandContext) *cobra.Command {
	llmCmd := &cobra.Command{
		Use:   "llm",
		Short: "LLM collaborator utilities",
	}
	llmCmd.AddCommand(newLLMHealthCommand(ctx))
	return llmCmd
}

type llmTarget struct {
	label    string
	settings config.LLMConfig
}

func newLLMHealthCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check that the configured LLM endpoints answer with JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			targets := []llmTarget{{label: "Rubric LLM", settings: cfg.RubricLLM()}}
			if cfg.Review.Strategy == config.StrategyAuditor {
				targets = append(targets, llmTarget{label: "Auditor LLM", settings: cfg.AuditorLLM()})
			}

			out := cmd.OutOrStdout()
			colorize := shouldColorize(out)
			failed := 0
			for _, target := range targets {
				if err := cfg.RequireLLM(target.settings); err != nil {
					failed++
					fmt.Fprintln(out, renderStatusLine(target.label, statusError, err.Error(), colorize))
					continue
				}
				if err := llmClient(target.settings).HealthCheck(cmd.Context()); err != nil {
					failed++
					fmt.Fprintln(out, renderStatusLine(target.label, statusError, err.Error(), colorize))
					continue
				}
				fmt.Fprintln(out, renderStatusLine(target.label, statusOK, target.settings.Model, colorize))
			}
			if failed > 0 {
				return fmt.Errorf("%d llm endpoint(s) unhealthy", failed)
			}
			return nil
		},
	}
}
