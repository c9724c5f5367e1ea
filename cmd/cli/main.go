package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/inferloop/mlcanary/cmd/cli/commands"
)

var (
	cfgFile string
	verbose bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "canaryctl",
		Short: "Canary deployment operator CLI",
		Long: `A command-line interface for operating canary deployments of a
served predictive model: deploy, monitor, promote and roll back.`,
		Version: "0.1.0",
	}

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.canaryctl.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().String("server", "http://localhost:8000", "server base URL")
	viper.BindPFlag("server_url", rootCmd.PersistentFlags().Lookup("server"))

	// Initialize Viper
	cobra.OnInitialize(initConfig)

	// Add commands
	rootCmd.AddCommand(commands.NewDeployCmd())
	rootCmd.AddCommand(commands.NewRollbackCmd())
	rootCmd.AddCommand(commands.NewPromoteCmd())
	rootCmd.AddCommand(commands.NewSlowdownCmd())
	rootCmd.AddCommand(commands.NewHealthCmd())
	rootCmd.AddCommand(commands.NewPredictCmd())
	rootCmd.AddCommand(commands.NewStatusCmd())

	// Execute
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		viper.AddConfigPath(home)
		viper.SetConfigType("yaml")
		viper.SetConfigName(".canaryctl")
	}

	viper.AutomaticEnv()
	viper.SetEnvPrefix("CANARYCTL")

	if err := viper.ReadInConfig(); err == nil && verbose {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}
