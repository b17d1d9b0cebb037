package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"coolfinds/internal/logger"

	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Execute one autonomous generation run",
	Long: `Pick a trending topic, synthesize the article, attach a hero image,
store the result, and post it to Reddit. The run result, including the
per-stage debug log, is printed as JSON.

Example:
  coolfinds run`,
	Run: func(cmd *cobra.Command, args []string) {
		if err := runOnce(); err != nil {
			logger.Error("Autonomous run failed", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
}

func runOnce() error {
	ctx := context.Background()

	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	result := a.runner.Run(ctx)

	out, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode run result: %w", err)
	}
	fmt.Println(string(out))

	if !result.Success {
		return fmt.Errorf("run failed: %s", result.Error)
	}
	return nil
}
