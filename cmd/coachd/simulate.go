package main

import (
	"encoding/json"
	"os"

	"github.com/spf13/cobra"

	"github.com/openmohaa/coach-api/internal/logic"
)

var (
	simGameMode  string
	simMapName   string
	simSeed      uint64
	simRulesFile string
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Print one simulated analysis without storing it",
	RunE:  runSimulate,
}

func init() {
	simulateCmd.Flags().StringVar(&simGameMode, "mode", "Solo", "Game mode")
	simulateCmd.Flags().StringVar(&simMapName, "map", "Erangel", "Map name")
	simulateCmd.Flags().Uint64Var(&simSeed, "seed", 0, "Random seed (0 for a random seed)")
	simulateCmd.Flags().StringVar(&simRulesFile, "rules", "", "Rule table YAML (default: built-in rules)")
	rootCmd.AddCommand(simulateCmd)
}

func runSimulate(cmd *cobra.Command, _ []string) error {
	rules, err := logic.LoadRuleFile(simRulesFile, logic.DefaultMetricSpecs)
	if err != nil {
		return err
	}

	source := logic.NewUnseededRandomSource()
	if simSeed != 0 {
		source = logic.NewRandomSource(simSeed)
	}

	analyzer := logic.NewAnalyzer(logic.NewSimulator(source, logic.DefaultMetricSpecs), logic.NewEngine(rules))
	result, err := analyzer.Analyze("local", simGameMode, simMapName)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}
