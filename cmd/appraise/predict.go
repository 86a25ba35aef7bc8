package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/Veraticus/appraise/internal/api"
	"github.com/Veraticus/appraise/internal/cli"
	"github.com/Veraticus/appraise/internal/common"
	"github.com/Veraticus/appraise/internal/form"
	"github.com/Veraticus/appraise/internal/model"
	"github.com/Veraticus/appraise/internal/tui/components"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

func predictCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "predict",
		Short: "Predict the price of one house",
		Long: `Predict the price of one house. Unset fields use the same defaults as the
interactive form, and the same bounds apply.`,
		Example: `  appraise predict --square-footage 2400 --bedrooms 4 --location-score 8.5
  appraise predict --age 40 --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := newClient(settings.APIURL)
			if err != nil {
				return err
			}
			return runPredict(cmd.Context(), cmd.OutOrStdout(), cmd.ErrOrStderr(), client, featureValues(cmd.Flags()), asJSON)
		},
	}

	addFeatureFlags(cmd.Flags())
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the raw service response as JSON")
	return cmd
}

func runPredict(ctx context.Context, out, progress io.Writer, client api.Client, values map[model.FeatureKey]string, asJSON bool) error {
	features, errs := form.Validate(values)
	if errs.HasErrors() {
		return validationError(errs)
	}

	common.LogDebug("requesting prediction", common.Fields{"features": features})

	var resp model.PredictionResponse
	err := cli.Wait(ctx, progress, "Predicting house price...", func(ctx context.Context) error {
		var err error
		resp, err = client.Predict(ctx, features)
		return err
	})
	if err != nil {
		return err
	}

	if asJSON {
		return writeJSON(out, resp)
	}
	_, err = io.WriteString(out, components.RenderPlain(resp))
	return err
}

// featureFlagName maps a feature key to its flag, e.g. square_footage -> square-footage.
func featureFlagName(key model.FeatureKey) string {
	return strings.ReplaceAll(string(key), "_", "-")
}

func addFeatureFlags(flags *pflag.FlagSet) {
	defaults := form.DefaultValues()
	for _, rule := range form.Rules() {
		usage := fmt.Sprintf("%s (%s to %s)", model.Label(rule.Field), form.FormatInput(rule.Min.Value), form.FormatInput(rule.Max.Value))
		flags.String(featureFlagName(rule.Field), defaults[rule.Field], usage)
	}
}

// featureValues reads the raw feature inputs from flags.
func featureValues(flags *pflag.FlagSet) map[model.FeatureKey]string {
	values := make(map[model.FeatureKey]string, len(model.FeatureOrder))
	for _, key := range model.FeatureOrder {
		if v, err := flags.GetString(featureFlagName(key)); err == nil {
			values[key] = v
		}
	}
	return values
}

// validationError lists every failing field in form order.
func validationError(errs form.Errors) error {
	var lines []string
	for _, key := range model.FeatureOrder {
		if msg, ok := errs[key]; ok {
			lines = append(lines, fmt.Sprintf("  --%s: %s", featureFlagName(key), msg))
		}
	}
	return common.NewUserError("invalid house details:\n"+strings.Join(lines, "\n"), errs.Err())
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode response: %w", err)
	}
	return nil
}
