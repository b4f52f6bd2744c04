package cmd

import (
	"encoding/csv"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	sim "github.com/queueing-sim/queueing-sim/sim"
	"github.com/queueing-sim/queueing-sim/sim/scenario"
	"github.com/queueing-sim/queueing-sim/sim/trace"
)

var (
	// CLI flags
	scenarioPath string  // Path to scenario YAML (empty = built-in hospital scenario)
	seed         int64   // Seed override for the partitioned RNG
	horizon      float64 // Horizon override (simulated time units)
	logLevel     string  // Log verbosity level
	traceLevel   string  // Event trace level (none, events)
	arrivalsCSV  string  // Output path for the arrivals table
	resourcesCSV string  // Output path for the resources table
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "queueing-sim",
	Short: "Discrete-event simulator for queueing networks",
}

// runCmd executes a scenario using parameters from CLI flags
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a queueing network scenario",
	Run: func(cmd *cobra.Command, args []string) {
		// Set up logging
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			logrus.Fatalf("Invalid log level: %s", logLevel)
		}
		logrus.SetLevel(level)

		spec, err := loadSpec()
		if err != nil {
			logrus.Fatalf("unable to load scenario: %v", err)
		}

		// Flag overrides beat scenario file values
		if cmd.Flags().Changed("seed") {
			spec.Seed = seed
		}
		if cmd.Flags().Changed("horizon") {
			spec.Horizon = horizon
		}
		if cmd.Flags().Changed("trace") {
			spec.Trace = traceLevel
		}

		cfg, err := spec.Build()
		if err != nil {
			logrus.Fatalf("invalid scenario: %v", err)
		}

		logrus.Infof("Starting simulation %q with %d stations, horizon=%g, seed=%d",
			spec.Name, len(cfg.Stations), cfg.Horizon, cfg.Seed)

		startTime := time.Now()

		s, err := sim.NewSimulator(cfg)
		if err != nil {
			logrus.Fatalf("invalid scenario: %v", err)
		}
		result, err := s.Run()
		if err != nil {
			logrus.Fatalf("simulation aborted: %v", err)
		}

		sim.Summarize(result).Print()
		if result.Trace.Config.Enabled() {
			summary := trace.Summarize(result.Trace)
			logrus.Infof("trace: %d events, %d arrivals, %d departures, %d branch draws",
				summary.TotalEvents, summary.Arrivals, summary.Departures, summary.BranchDraws)
		}

		if arrivalsCSV != "" {
			if err := writeTable(arrivalsCSV, result.ArrivalsTable()); err != nil {
				logrus.Fatalf("write arrivals table: %v", err)
			}
		}
		if resourcesCSV != "" {
			if err := writeTable(resourcesCSV, result.ResourcesTable()); err != nil {
				logrus.Fatalf("write resources table: %v", err)
			}
		}

		logrus.Infof("Simulation complete in %s.", time.Since(startTime))
	},
}

func loadSpec() (*scenario.Spec, error) {
	if scenarioPath == "" {
		return scenario.Default()
	}
	return scenario.Load(scenarioPath)
}

// writeTable renders a result table as CSV.
func writeTable(path string, table *sim.Table) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(table.Header); err != nil {
		return err
	}
	if err := w.WriteAll(table.Rows); err != nil {
		return err
	}
	w.Flush()
	return w.Error()
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// init sets up CLI flags and subcommands
func init() {
	runCmd.Flags().StringVar(&scenarioPath, "scenario", "", "Scenario YAML path (default: built-in hospital scenario)")
	runCmd.Flags().Int64Var(&seed, "seed", 42, "Seed for random sampling (overrides scenario)")
	runCmd.Flags().Float64Var(&horizon, "horizon", 0, "Admission horizon in simulated time units (overrides scenario)")
	runCmd.Flags().StringVar(&logLevel, "log", "error", "Log level (trace, debug, info, warn, error, fatal, panic)")
	runCmd.Flags().StringVar(&traceLevel, "trace", "none", "Event trace level (none, events)")
	runCmd.Flags().StringVar(&arrivalsCSV, "arrivals-csv", "", "Write the arrivals table to this CSV path")
	runCmd.Flags().StringVar(&resourcesCSV, "resources-csv", "", "Write the resources table to this CSV path")

	rootCmd.AddCommand(runCmd)
}
