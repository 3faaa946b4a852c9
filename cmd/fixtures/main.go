package main

import (
	"fmt"
	"os"
	"time"

	"github.com/riskibarqy/amateur-league/internal/domain/schedule"
	"github.com/riskibarqy/amateur-league/internal/interfaces/workbook"
	idgen "github.com/riskibarqy/amateur-league/internal/platform/id"
	"github.com/spf13/cobra"
)

const defaultConfigFile = "fixtures.yaml"

func main() {
	rootCmd := &cobra.Command{
		Use:   "fixtures",
		Short: "Offline round-robin fixture planner for amateur leagues",
	}

	var initOutput string
	initCmd := &cobra.Command{
		Use:          "init",
		Short:        "Write a starter fixtures.yaml",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if _, err := os.Stat(initOutput); err == nil {
				return fmt.Errorf("%s already exists; remove it first or use -o to write elsewhere", initOutput)
			}
			if err := os.WriteFile(initOutput, []byte(configTemplate), 0o644); err != nil {
				return fmt.Errorf("writing config: %w", err)
			}
			cmd.Printf("created %s\n", initOutput)
			return nil
		},
	}
	initCmd.Flags().StringVarP(&initOutput, "output", "o", defaultConfigFile, "Output path for the config file")

	var (
		configFile string
		outputFile string
	)
	generateCmd := &cobra.Command{
		Use:          "generate",
		Short:        "Generate the fixture list and export it as an Excel workbook",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(configFile)
			if err != nil {
				return err
			}
			count, err := run(cfg, outputFile)
			if err != nil {
				return err
			}
			cmd.Printf("wrote %d matches to %s\n", count, outputFile)
			return nil
		},
	}
	generateCmd.Flags().StringVarP(&configFile, "config", "c", defaultConfigFile, "Path to the fixtures config")
	generateCmd.Flags().StringVarP(&outputFile, "output", "o", "fixtures.xlsx", "Output Excel file path")

	rootCmd.AddCommand(initCmd, generateCmd)
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cfg Config, outputPath string) (int, error) {
	fixtures, err := schedule.Generate(cfg.Teams(), cfg.Rounds, cfg.FirstGameday)
	if err != nil {
		return 0, fmt.Errorf("generate fixtures: %w", err)
	}

	ids := &idgen.SequenceGenerator{Prefix: "match-"}
	matches, err := schedule.Materialize(fixtures, cfg.Season, schedule.Options{
		Rounds:       cfg.Rounds,
		FirstGameday: cfg.FirstGameday,
		Start:        cfg.Start.Time,
		Interval:     time.Duration(cfg.IntervalDays) * 24 * time.Hour,
		Venue:        cfg.Venue,
	}, ids.NewID)
	if err != nil {
		return 0, fmt.Errorf("materialize fixtures: %w", err)
	}

	f, err := workbook.Generate(cfg.League+" "+cfg.Season, matches)
	if err != nil {
		return 0, err
	}
	defer func() {
		_ = f.Close()
	}()

	if err := f.SaveAs(outputPath); err != nil {
		return 0, fmt.Errorf("save workbook: %w", err)
	}
	return len(matches), nil
}

const configTemplate = `# Fixture planner configuration
league: Kreisliga Nord
season: "2026"

# Kickoff of the first gameday, in the league's local time.
start: "2026-04-05T10:30:00+02:00"
interval_days: 7
first_gameday: 1
# Each round is a full cycle; odd rounds swap home and away.
rounds: 2
venue: Sportplatz Nord

teams:
  - name: Rot-Weiss Nord
    kit: red
  - name: Eintracht Hafen
    kit: blue
  - name: Borussia Ost
    kit: black
  - name: Fortuna West
    kit: green
`
