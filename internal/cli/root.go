package cli

import (
	"os"

	"github.com/spf13/cobra"
)

var (
	addr       string
	configPath string
	bankFile   string
	rounds     int
)

// Execute runs the CLI.
func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	envAddr := os.Getenv("QUIZ_ADDR")
	if envAddr == "" {
		envAddr = ":4000"
	}
	envConfig := os.Getenv("CONFIG_PATH")
	if envConfig == "" {
		envConfig = "config/config.yaml"
	}

	cmd := &cobra.Command{
		Use:   "quiz-server",
		Short: "Multiplayer trivia server over plain TCP",
	}

	cmd.PersistentFlags().StringVar(&addr, "addr", envAddr, "TCP address to accept players on")
	cmd.PersistentFlags().StringVar(&configPath, "config", envConfig, "path to YAML config")
	cmd.PersistentFlags().StringVar(&bankFile, "bank", "", "question bank file")
	cmd.PersistentFlags().IntVar(&rounds, "rounds", 0, "number of questions per game")
	cmd.AddCommand(NewStartCmd(&configPath, &addr, &bankFile, &rounds))
	cmd.AddCommand(NewMigrateCmd(&configPath))
	return cmd
}
