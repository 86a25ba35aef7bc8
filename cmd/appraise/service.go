package main

import (
	"context"
	"io"

	"github.com/Veraticus/appraise/internal/api"
	"github.com/Veraticus/appraise/internal/cli"
	"github.com/Veraticus/appraise/internal/model"
	"github.com/spf13/cobra"
)

func newClient(baseURL string) (*api.HTTPClient, error) {
	return api.NewClient(api.Config{
		BaseURL: baseURL,
		Timeout: settings.APITimeout,
	})
}

func importanceCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "importance",
		Short: "Show how much each feature influences the model",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := newClient(settings.APIURL)
			if err != nil {
				return err
			}
			return runImportance(cmd.Context(), cmd.OutOrStdout(), cmd.ErrOrStderr(), client, asJSON)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print the raw service response as JSON")
	return cmd
}

func runImportance(ctx context.Context, out, progress io.Writer, client api.Client, asJSON bool) error {
	var resp model.FeatureImportanceResponse
	err := cli.Wait(ctx, progress, "Loading feature importance...", func(ctx context.Context) error {
		var err error
		resp, err = client.GetFeatureImportance(ctx)
		return err
	})
	if err != nil {
		return err
	}

	if asJSON {
		return writeJSON(out, resp)
	}
	_, err = io.WriteString(out, cli.RenderImportance(resp))
	return err
}

func healthCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "health",
		Short: "Check whether the service has a model loaded",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := newClient(settings.APIURL)
			if err != nil {
				return err
			}
			return runHealth(cmd.Context(), cmd.OutOrStdout(), cmd.ErrOrStderr(), client, asJSON)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print the raw service response as JSON")
	return cmd
}

func runHealth(ctx context.Context, out, progress io.Writer, client api.Client, asJSON bool) error {
	var health model.ModelHealthResponse
	err := cli.Wait(ctx, progress, "Checking model status...", func(ctx context.Context) error {
		var err error
		health, err = client.CheckHealth(ctx)
		return err
	})
	if err != nil {
		return err
	}

	if asJSON {
		return writeJSON(out, health)
	}
	_, err = io.WriteString(out, cli.RenderHealth(health))
	return err
}
