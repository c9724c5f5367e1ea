package commands

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

// NewPredictCmd creates the predict command
func NewPredictCmd() *cobra.Command {
	var featuresArg string

	cmd := &cobra.Command{
		Use:   "predict",
		Short: "Send a prediction request",
		Long: `Send one prediction request through the traffic splitter and print
the probability, the variant used and the measured latency.`,
		Example: `  canaryctl predict --features 0.5,-1.2,3.4,0.0,1.1`,
		RunE: func(cmd *cobra.Command, args []string) error {
			features, err := parseFeatures(featuresArg)
			if err != nil {
				return err
			}

			client := newAPIClient()
			result, err := client.call("POST", "/predict", map[string]interface{}{
				"features": features,
			})
			if err != nil {
				return err
			}
			return printJSON(result)
		},
	}

	cmd.Flags().StringVarP(&featuresArg, "features", "f", "", "Comma-separated feature values")
	cmd.MarkFlagRequired("features")

	return cmd
}

func parseFeatures(arg string) ([]float64, error) {
	parts := strings.Split(arg, ",")
	features := make([]float64, 0, len(parts))

	for _, part := range parts {
		value, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid feature value %q: %w", part, err)
		}
		features = append(features, value)
	}

	return features, nil
}
