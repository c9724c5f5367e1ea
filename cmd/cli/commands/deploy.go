package commands

import (
	"github.com/spf13/cobra"
)

// NewDeployCmd creates the deploy command
func NewDeployCmd() *cobra.Command {
	var modelPath string

	cmd := &cobra.Command{
		Use:   "deploy",
		Short: "Deploy a canary model",
		Long: `Deploy a new canary model that will receive 10% of prediction
traffic. Fails if a canary is already active or the artifact
cannot be loaded.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			client := newAPIClient()
			result, err := client.call("POST", "/admin/deploy-canary", map[string]string{
				"model_path": modelPath,
			})
			if err != nil {
				return err
			}
			return printJSON(result)
		},
	}

	cmd.Flags().StringVarP(&modelPath, "model", "m", "", "Path of the canary model artifact")
	cmd.MarkFlagRequired("model")

	return cmd
}
