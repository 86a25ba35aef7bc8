package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/Veraticus/appraise/internal/api"
	"github.com/Veraticus/appraise/internal/apitest"
	"github.com/Veraticus/appraise/internal/common"
	"github.com/Veraticus/appraise/internal/tui"
	"github.com/Veraticus/appraise/internal/tui/themes"
	"github.com/spf13/cobra"
)

func uiCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:         "ui",
		Short:       "Start the interactive predictor",
		Args:        cobra.NoArgs,
		RunE:        runUI,
		Annotations: map[string]string{logToFile: "true"},
	}
	addRecordFlags(cmd)
	return cmd
}

func runUI(cmd *cobra.Command, _ []string) error {
	client, err := newClient(settings.APIURL)
	if err != nil {
		return err
	}

	common.LogInfo("starting interactive predictor", common.Fields{"api_url": client.BaseURL()})
	return tui.Run(cmd.Context(), uiOptions(cmd, client)...)
}

func demoCmd() *cobra.Command {
	var (
		modelType string
		unloaded  bool
	)

	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Start the interactive predictor against a built-in fake service",
		Long: `Start the interactive predictor against an in-process fake prediction service.

No backend is needed. The fake service serves the same endpoints as the real one,
so the form, the results panel and the importance chart all work.`,
		Args:        cobra.NoArgs,
		Annotations: map[string]string{logToFile: "true"},
		RunE: func(cmd *cobra.Command, _ []string) error {
			switch modelType {
			case apitest.ModelRandomForest, apitest.ModelLinearRegression:
			default:
				return common.NewUserError(
					fmt.Sprintf("--model-type must be %s or %s", apitest.ModelRandomForest, apitest.ModelLinearRegression),
					common.ErrInvalidConfig,
				)
			}

			srv := apitest.New(
				apitest.WithModelType(modelType),
				apitest.WithLoaded(!unloaded),
			)
			baseURL, shutdown, err := serveDemo(srv)
			if err != nil {
				return err
			}
			defer shutdown()

			client, err := newClient(baseURL)
			if err != nil {
				return err
			}

			common.LogInfo("demo service started", common.Fields{
				"addr":       baseURL,
				"model_type": modelType,
				"loaded":     !unloaded,
			})
			return tui.Run(cmd.Context(), uiOptions(cmd, client)...)
		},
	}

	cmd.Flags().StringVar(&modelType, "model-type", apitest.ModelRandomForest, "model the fake service pretends to run (random_forest, linear_regression)")
	cmd.Flags().BoolVar(&unloaded, "unloaded", false, "report that no model is loaded")
	addRecordFlags(cmd)
	return cmd
}

// serveDemo serves srv on a loopback port and returns its base URL.
func serveDemo(srv *apitest.Server) (string, func(), error) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return "", nil, fmt.Errorf("failed to start demo service: %w", err)
	}

	httpServer := &http.Server{
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		if err := httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			common.LogError(err, "demo service stopped", nil)
		}
	}()

	shutdown := func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = httpServer.Shutdown(ctx) // Best effort
	}
	return "http://" + ln.Addr().String(), shutdown, nil
}

func uiOptions(cmd *cobra.Command, client api.Client) []tui.Option {
	opts := []tui.Option{
		tui.WithClient(client),
		tui.WithTheme(themes.GetTheme(settings.Theme)),
		tui.WithTimeout(settings.APITimeout),
	}

	if record, _ := cmd.Flags().GetBool("record"); record {
		dir, _ := cmd.Flags().GetString("record-dir")
		opts = append(opts, tui.WithRecording(dir))
	}
	return opts
}

func addRecordFlags(cmd *cobra.Command) {
	cmd.Flags().Bool("record", false, "record every UI frame for debugging")
	cmd.Flags().String("record-dir", "", "directory for recorded frames (default: a new temp directory)")
}
