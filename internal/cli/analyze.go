package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"stellareffects/internal/config"
	"stellareffects/internal/effects"
)

// TxFixture is one decoded transaction: its fee facts plus the per-operation
// metadata the engine consumes.
type TxFixture struct {
	Source     string      `json:"source"`
	FeeBid     string      `json:"feeBid"`
	FeeCharged string      `json:"feeCharged"`
	FeeBump    bool        `json:"feeBump,omitempty"`
	Operations []OpFixture `json:"operations"`
}

// OpFixture is one operation's worth of engine input.
type OpFixture struct {
	Operation        effects.Operation `json:"operation"`
	Changes          []effects.Change  `json:"changes,omitempty"`
	Result           *effects.Result   `json:"result,omitempty"`
	Events           []effects.Event   `json:"events,omitempty"`
	DiagnosticEvents []effects.Event   `json:"diagnosticEvents,omitempty"`
}

// Report is the analyze command's JSON output.
type Report struct {
	Fee        effects.Effect    `json:"fee"`
	Operations []OperationReport `json:"operations"`
	DurationMs int64             `json:"durationMs"`
}

// OperationReport holds one operation's derived effects and diagnostics.
type OperationReport struct {
	Effects     []effects.Effect     `json:"effects"`
	Diagnostics []effects.Diagnostic `json:"diagnostics,omitempty"`
}

var (
	outputPath  string
	expectPath  string
	prettyPrint bool
	parallelism int
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [fixture-file]",
	Short: "Derive effects from decoded transaction metadata",
	Long: `Analyze reads one decoded transaction from a JSON fixture file and
prints the derived effect list for every operation.

The fixture carries the transaction's fee facts and, per operation, the
operation parameters, the ledger-entry changes with before/after
snapshots, the claimed-offer result and any contract events.

With --expect, the derived effects are compared against a reference file
holding one effect list per operation and the command fails on the first
mismatch.

Example:
    stellareffects analyze ./fixtures/payment.json
    stellareffects analyze ./fixtures/swap.json -o effects.json --pretty
    stellareffects analyze ./fixtures/swap.json --expect ./fixtures/swap.expected.json`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	analyzeCmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output file for results (JSON, default stdout)")
	analyzeCmd.Flags().StringVar(&expectPath, "expect", "", "Reference file with expected per-operation effects")
	analyzeCmd.Flags().BoolVar(&prettyPrint, "pretty", false, "Indent the JSON output")
	analyzeCmd.Flags().IntVar(&parallelism, "parallelism", 0, "Concurrent operation analyses (overrides config)")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	start := time.Now()

	cfg, err := config.Load(configFile)
	if err != nil {
		return err
	}
	if parallelism > 0 {
		cfg.Parallelism = parallelism
	}

	fixture, err := loadFixture(args[0])
	if err != nil {
		return fmt.Errorf("loading fixture %s: %w", args[0], err)
	}

	report, err := analyzeTransaction(cfg, fixture)
	if err != nil {
		return err
	}
	report.DurationMs = time.Since(start).Milliseconds()

	if expectPath != "" {
		if err := compareExpected(report, expectPath); err != nil {
			return err
		}
	}

	if verbose {
		total := 0
		for _, op := range report.Operations {
			total += len(op.Effects)
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "%d operations, %d effects, %dms\n",
			len(report.Operations), total, report.DurationMs)
	}

	return writeReport(report)
}

func loadFixture(path string) (*TxFixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	fixture := &TxFixture{}
	if err := json.Unmarshal(data, fixture); err != nil {
		return nil, err
	}
	if len(fixture.Operations) == 0 {
		return nil, fmt.Errorf("fixture has no operations")
	}
	return fixture, nil
}

// analyzeTransaction derives the fee effect and every operation's effect
// list. Operations run concurrently up to the configured limit, except
// when asset-contract mapping is on: deploys observed in one operation
// must resolve token events of later ones, which forces ledger order.
func analyzeTransaction(cfg *config.Config, fixture *TxFixture) (*Report, error) {
	fee, err := effects.FeeCharged(fixture.Source, fixture.FeeBid, fixture.FeeCharged, fixture.FeeBump)
	if err != nil {
		return nil, fmt.Errorf("deriving fee effect: %w", err)
	}

	var sac *effects.SacMap
	if cfg.MapSac {
		sac, err = effects.NewSacMap(cfg.SacCacheSize)
		if err != nil {
			return nil, err
		}
	}

	limit := cfg.Parallelism
	if limit <= 0 {
		limit = runtime.NumCPU()
	}
	if cfg.MapSac {
		limit = 1
	}

	report := &Report{
		Fee:        fee,
		Operations: make([]OperationReport, len(fixture.Operations)),
	}

	var g errgroup.Group
	g.SetLimit(limit)
	for i := range fixture.Operations {
		g.Go(func() error {
			op := &fixture.Operations[i]
			engine := effects.NewEngine(op.Operation, op.Changes, op.Result, effects.Options{
				MapSac:              cfg.MapSac,
				ProcessSystemEvents: cfg.ProcessSystemEvents,
				Network:             cfg.Network,
				Sac:                 sac,
			})
			list, diags, err := engine.Analyze(op.Events, op.DiagnosticEvents)
			if err != nil {
				return fmt.Errorf("operation %d: %w", i, err)
			}
			report.Operations[i] = OperationReport{Effects: list, Diagnostics: diags}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return report, nil
}

// compareExpected checks the derived effects against a reference file
// holding one effect list per operation. Effects are compared by their
// canonical JSON form.
func compareExpected(report *Report, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	var want [][]effects.Effect
	if err := json.Unmarshal(data, &want); err != nil {
		return fmt.Errorf("parsing expected effects %s: %w", path, err)
	}

	if len(want) != len(report.Operations) {
		return fmt.Errorf("expected %d operations, derived %d", len(want), len(report.Operations))
	}
	for i, op := range report.Operations {
		if len(want[i]) != len(op.Effects) {
			return fmt.Errorf("operation %d: expected %d effects, derived %d", i, len(want[i]), len(op.Effects))
		}
		for j := range op.Effects {
			got, err := json.Marshal(op.Effects[j])
			if err != nil {
				return err
			}
			exp, err := json.Marshal(want[i][j])
			if err != nil {
				return err
			}
			if string(got) != string(exp) {
				return fmt.Errorf("operation %d effect %d: expected %s, derived %s", i, j, exp, got)
			}
		}
	}
	return nil
}

func writeReport(report *Report) error {
	var data []byte
	var err error
	if prettyPrint {
		data, err = json.MarshalIndent(report, "", "  ")
	} else {
		data, err = json.Marshal(report)
	}
	if err != nil {
		return err
	}
	data = append(data, '\n')

	if outputPath == "" {
		_, err = os.Stdout.Write(data)
		return err
	}
	return os.WriteFile(outputPath, data, 0644)
}
