package commands

import (
	"github.com/spf13/cobra"
)

// NewRollbackCmd creates the rollback command
func NewRollbackCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rollback",
		Short: "Roll back the active canary",
		Long:  `Discard the active canary and revert all traffic to stable.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			client := newAPIClient()
			result, err := client.call("POST", "/admin/rollback-canary", nil)
			if err != nil {
				return err
			}
			return printJSON(result)
		},
	}
}

// NewPromoteCmd creates the promote command
func NewPromoteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "promote",
		Short: "Promote the active canary to stable",
		Long: `Replace the stable model with the active canary. Run a health
check first; promotion itself does not gate on it.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			client := newAPIClient()
			result, err := client.call("POST", "/admin/promote-canary", nil)
			if err != nil {
				return err
			}
			return printJSON(result)
		},
	}
}

// NewSlowdownCmd creates the toggle-slowdown command
func NewSlowdownCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "toggle-slowdown",
		Short: "Toggle canary slowdown simulation",
		Long: `Flip the flag that injects a fixed artificial delay into canary
predictions, for deterministic testing of the health check.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			client := newAPIClient()
			result, err := client.call("POST", "/admin/toggle-slowdown", nil)
			if err != nil {
				return err
			}
			return printJSON(result)
		},
	}
}

// NewHealthCmd creates the health-check command
func NewHealthCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check canary health",
		Long: `Compare canary latency against stable with Welch's t-test and
report whether an alert is raised.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			client := newAPIClient()
			result, err := client.call("GET", "/admin/check-canary-health", nil)
			if err != nil {
				return err
			}
			return printJSON(result)
		},
	}
}

// NewStatusCmd creates the status command
func NewStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show deployment status",
		RunE: func(cmd *cobra.Command, args []string) error {
			client := newAPIClient()
			result, err := client.call("GET", "/admin/status", nil)
			if err != nil {
				return err
			}
			return printJSON(result)
		},
	}
}
