package reporting

import (
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/ibexquant/swing-backtest/internal/backtest"
	"github.com/ibexquant/swing-backtest/internal/history"
)

// ConsoleReporter prints run and sweep results to stdout.
type ConsoleReporter struct{}

// NewConsoleReporter creates a console reporter.
func NewConsoleReporter() *ConsoleReporter {
	return &ConsoleReporter{}
}

// PrintSummary prints the flat performance record of one run.
func (r *ConsoleReporter) PrintSummary(summary backtest.Summary, initialCapital, finalCapital float64) {
	fmt.Println("\n" + strings.Repeat("=", 50))
	fmt.Println("📊 BACKTEST RESULTS")
	fmt.Println(strings.Repeat("=", 50))

	fmt.Printf("💰 Initial Capital:    €%.2f\n", initialCapital)
	fmt.Printf("💰 Final Capital:      €%.2f\n", finalCapital)
	if initialCapital > 0 {
		fmt.Printf("📈 Total Return:       %+.2f%%\n", (finalCapital-initialCapital)/initialCapital*100)
	}
	fmt.Printf("🔄 Total Trades:       %d\n", summary.Trades)
	fmt.Printf("✅ Win Rate:           %.1f%%\n", summary.WinRatePct)
	fmt.Printf("💹 Expectancy:         %+.2fR\n", summary.ExpectancyR)
	fmt.Printf("📉 Max Drawdown:       %.1f%%\n", summary.MaxDrawdownPct)
}

// PrintSweep prints the per-instrument table and the classification of a
// multi-instrument sweep.
func (r *ConsoleReporter) PrintSweep(result backtest.SweepResult) {
	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.AppendHeader(table.Row{"Ticker", "Vol %", "Trades", "Return %", "Expectancy R", "Status"})

	for _, inst := range result.Instruments {
		if inst.Excluded {
			t.AppendRow(table.Row{inst.Symbol, fmt.Sprintf("%.1f", inst.VolatilityPct), "-", "-", "-", "excluded: " + inst.ExcludeReason})
			continue
		}
		if len(inst.Trades) == 0 {
			t.AppendRow(table.Row{inst.Symbol, fmt.Sprintf("%.1f", inst.VolatilityPct), 0, "-", "-", "no trades"})
			continue
		}
		t.AppendRow(table.Row{
			inst.Symbol,
			fmt.Sprintf("%.1f", inst.VolatilityPct),
			len(inst.Trades),
			fmt.Sprintf("%+.1f", inst.ReturnPct),
			fmt.Sprintf("%+.2f", inst.Summary.ExpectancyR),
			classify(inst.ReturnPct),
		})
	}

	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, Align: text.AlignRight},
		{Number: 3, Align: text.AlignRight},
		{Number: 4, Align: text.AlignRight},
		{Number: 5, Align: text.AlignRight},
	})

	fmt.Println()
	fmt.Println(t.Render())

	r.printClassification("✅ APPROVED", result.Approved, "return ≥ +2%, trade these first")
	r.printClassification("⚪ NEUTRAL", result.Neutral, "trade with caution")
	r.printClassification("❌ REJECTED", result.Rejected, "do not trade")
	if len(result.Excluded) > 0 {
		symbols := make([]string, len(result.Excluded))
		for i, inst := range result.Excluded {
			symbols[i] = inst.Symbol
		}
		fmt.Printf("\n🚫 EXCLUDED (%d): %s\n", len(result.Excluded), strings.Join(symbols, ", "))
	}

	fmt.Println("\n" + strings.Repeat("=", 50))
	fmt.Println("📊 AGGREGATE")
	fmt.Println(strings.Repeat("=", 50))
	fmt.Printf("🎯 Total Trades:   %d\n", result.Summary.Trades)
	fmt.Printf("📈 Win Rate:       %.1f%%\n", result.Summary.WinRatePct)
	fmt.Printf("💰 Expectancy:     %+.2fR\n", result.Summary.ExpectancyR)
	fmt.Printf("📉 Max Drawdown:   %.1f%%\n", result.Summary.MaxDrawdownPct)
	fmt.Printf("%s\n", verdict(result.Summary.ExpectancyR))
}

// PrintMonteCarlo prints the resampling percentile bands.
func (r *ConsoleReporter) PrintMonteCarlo(mc backtest.MonteCarloSummary, iterations int) {
	fmt.Println("\n" + strings.Repeat("=", 50))
	fmt.Printf("🎲 MONTE CARLO (%d iterations)\n", iterations)
	fmt.Println(strings.Repeat("=", 50))
	fmt.Printf("💰 Final Capital:  P5 €%.0f | median €%.0f | P95 €%.0f\n",
		mc.CapitalP5, mc.CapitalMedian, mc.CapitalP95)
	fmt.Printf("📉 Drawdown:       median %.1f%% | P95 %.1f%% | worst %.1f%%\n",
		mc.DrawdownMedianPct, mc.DrawdownP95Pct, mc.DrawdownWorstPct)
}

// PrintComparison prints the diff against the previous persisted run.
func (r *ConsoleReporter) PrintComparison(d history.Diff) {
	fmt.Println("\n" + strings.Repeat("=", 50))
	fmt.Println("📈 COMPARED TO PREVIOUS RUN")
	fmt.Println(strings.Repeat("=", 50))

	fmt.Printf("Previous: %s | Current: %s\n",
		d.Previous.CreatedAt.Format("2006-01-02"), d.Current.CreatedAt.Format("2006-01-02"))
	fmt.Printf("Expectancy: %+.2fR → %+.2fR (%+.2fR)\n",
		d.Previous.ExpectancyR, d.Current.ExpectancyR, d.ExpectancyDelta)
	fmt.Printf("Win Rate:   %.1f%% → %.1f%% (%+.1f%%)\n",
		d.Previous.WinRatePct, d.Current.WinRatePct, d.WinRateDelta)

	if len(d.NewlyApproved) > 0 {
		fmt.Printf("✅ Newly approved: %s\n", strings.Join(d.NewlyApproved, ", "))
	}
	if len(d.Dropped) > 0 {
		fmt.Printf("❌ No longer approved: %s\n", strings.Join(d.Dropped, ", "))
	}
	if len(d.NewlyApproved) == 0 && len(d.Dropped) == 0 {
		fmt.Println("➡️  No changes in approved tickers")
	}
}

func (r *ConsoleReporter) printClassification(label string, instruments []backtest.InstrumentResult, hint string) {
	if len(instruments) == 0 {
		return
	}
	symbols := make([]string, len(instruments))
	for i, inst := range instruments {
		symbols[i] = inst.Symbol
	}
	fmt.Printf("\n%s (%d) - %s:\n  %s\n", label, len(instruments), hint, strings.Join(symbols, ", "))
}

func classify(returnPct float64) string {
	switch {
	case returnPct >= 2.0:
		return "approved"
	case returnPct < -2.0:
		return "rejected"
	default:
		return "neutral"
	}
}

func verdict(expectancyR float64) string {
	switch {
	case expectancyR >= 0.40:
		return "🟢 System state: EXCELLENT"
	case expectancyR >= 0.20:
		return "🟢 System state: PROFITABLE"
	case expectancyR > 0:
		return "🟡 System state: MARGINAL"
	default:
		return "🔴 System state: NOT PROFITABLE"
	}
}
