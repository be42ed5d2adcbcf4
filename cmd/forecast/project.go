package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/simaogato/wealthflow-forecast/internal/domain"
	"github.com/simaogato/wealthflow-forecast/internal/usecase/projection"
)

var (
	flagInput   string
	flagAnchor  string
	flagHorizon int
)

var projectCmd = &cobra.Command{
	Use:   "project",
	Short: "Project monthly cash flow from a JSON transaction snapshot",
	RunE:  runProject,
}

func init() {
	projectCmd.Flags().StringVarP(&flagInput, "input", "i", "-", "JSON array of transaction records (- for stdin)")
	projectCmd.Flags().StringVarP(&flagAnchor, "anchor", "a", "", "Anchor date YYYY-MM-DD (default: today)")
	projectCmd.Flags().IntVarP(&flagHorizon, "horizon", "n", 12, "Number of months to project")
	rootCmd.AddCommand(projectCmd)
}

type bucketOutput struct {
	MonthIndex        int    `json:"month_index"`
	Month             string `json:"month"`
	Income            string `json:"income"`
	Expense           string `json:"expense"`
	NetDelta          string `json:"net_delta"`
	CumulativeBalance string `json:"cumulative_balance"`
}

type projectOutput struct {
	Buckets []bucketOutput `json:"buckets"`
	Summary struct {
		TotalIncome        string `json:"total_income"`
		TotalExpense       string `json:"total_expense"`
		FinalBalance       string `json:"final_balance"`
		LowestBalance      string `json:"lowest_balance"`
		LowestBalanceMonth int    `json:"lowest_balance_month"`
	} `json:"summary"`
}

func runProject(cmd *cobra.Command, _ []string) error {
	logger := newLogger()

	anchor := time.Now().UTC()
	if flagAnchor != "" {
		parsed, err := time.Parse("2006-01-02", flagAnchor)
		if err != nil {
			return fmt.Errorf("invalid --anchor: %w", err)
		}
		anchor = parsed
	}

	raws, err := readSnapshot(cmd.InOrStdin(), flagInput)
	if err != nil {
		return err
	}
	logger.Debug("Snapshot loaded", "records", len(raws), "anchor", anchor.Format("2006-01-02"), "horizon_months", flagHorizon)

	buckets, err := projection.BuildFromRaw(anchor, flagHorizon, raws)
	if err != nil {
		return err
	}

	return writeJSON(cmd.OutOrStdout(), toProjectOutput(buckets, projection.Summarize(buckets)))
}

// readSnapshot decodes a JSON array of records, keeping numbers exact as json.Number
func readSnapshot(stdin io.Reader, path string) ([]domain.RawTransaction, error) {
	r := stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open snapshot: %w", err)
		}
		defer f.Close()
		r = f
	}

	dec := json.NewDecoder(r)
	dec.UseNumber()

	var raws []domain.RawTransaction
	if err := dec.Decode(&raws); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	return raws, nil
}

func toProjectOutput(buckets []domain.MonthlyBucket, summary domain.ProjectionSummary) projectOutput {
	var out projectOutput
	out.Buckets = make([]bucketOutput, 0, len(buckets))
	for _, b := range buckets {
		out.Buckets = append(out.Buckets, bucketOutput{
			MonthIndex:        b.MonthIndex,
			Month:             b.Month.Format("2006-01"),
			Income:            b.Income.String(),
			Expense:           b.Expense.String(),
			NetDelta:          b.NetDelta.String(),
			CumulativeBalance: b.CumulativeBalance.String(),
		})
	}
	out.Summary.TotalIncome = summary.TotalIncome.String()
	out.Summary.TotalExpense = summary.TotalExpense.String()
	out.Summary.FinalBalance = summary.FinalBalance.String()
	out.Summary.LowestBalance = summary.LowestBalance.String()
	out.Summary.LowestBalanceMonth = summary.LowestBalanceMonth
	return out
}
