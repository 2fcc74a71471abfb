package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hyperifyio/gopoem/internal/app"
)

func newModelsCmd() *cobra.Command {
	var cfg app.Config

	cmd := &cobra.Command{
		Use:   "models",
		Short: "List models the backend advertises",
		RunE: func(cmd *cobra.Command, args []string) error {
			configPath := ""
			if f := cmd.Flag("config"); f != nil {
				configPath = f.Value.String()
			}
			resolved, err := resolveConfig(cfg, configPath)
			if err != nil {
				return err
			}
			a, err := app.New(resolved)
			if err != nil {
				return err
			}
			ids, err := a.Models(cmd.Context())
			if err != nil {
				return err
			}
			for _, id := range ids {
				fmt.Println(id)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&cfg.BaseURL, "llm.base", "", "OpenAI-compatible base URL")
	return cmd
}
