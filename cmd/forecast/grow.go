package main

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/simaogato/wealthflow-forecast/internal/config"
	"github.com/simaogato/wealthflow-forecast/internal/domain"
	"github.com/simaogato/wealthflow-forecast/internal/usecase/growth"
)

var (
	flagBalance   string
	flagMonths    int
	flagTiersFile string
)

var growCmd = &cobra.Command{
	Use:   "grow",
	Short: "Simulate monthly compound growth under a tiered rate schedule",
	RunE:  runGrow,
}

func init() {
	growCmd.Flags().StringVarP(&flagBalance, "balance", "b", "", "Starting balance")
	growCmd.Flags().IntVarP(&flagMonths, "months", "m", 12, "Simulation length in months")
	growCmd.Flags().StringVarP(&flagTiersFile, "tiers", "t", "", "YAML rate tier schedule (default: built-in schedule)")
	_ = growCmd.MarkFlagRequired("balance")
	rootCmd.AddCommand(growCmd)
}

type growthPointOutput struct {
	MonthIndex       int    `json:"month_index"`
	ProjectedBalance string `json:"projected_balance"`
}

func runGrow(cmd *cobra.Command, _ []string) error {
	logger := newLogger()

	balance, err := decimal.NewFromString(flagBalance)
	if err != nil {
		return fmt.Errorf("invalid --balance: %w", err)
	}

	tiers := config.DefaultRateTiers()
	if flagTiersFile != "" {
		tiers, err = config.LoadRateTiers(flagTiersFile)
		if err != nil {
			return err
		}
	}

	tier, err := growth.SelectTier(tiers, balance)
	if err != nil {
		return err
	}
	logger.Debug("Rate tier selected", "annual_rate", tier.AnnualRate.String(), "months", flagMonths)

	points, err := growth.Simulate(domain.GrowthSimulationRequest{
		StartingBalance: balance,
		DurationMonths:  flagMonths,
		RateTiers:       tiers,
	})
	if err != nil {
		return err
	}

	out := make([]growthPointOutput, 0, len(points))
	for _, p := range points {
		out = append(out, growthPointOutput{
			MonthIndex:       p.MonthIndex,
			ProjectedBalance: p.ProjectedBalance.String(),
		})
	}
	return writeJSON(cmd.OutOrStdout(), out)
}
