// Command report prints the broker and lead-source tables of a deal file.
//
//	report [-mode settled|conversion] [-min-deals 5] [-broker all] [-year all] deals.xlsx
package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"text/tabwriter"

	"deal_dashboard/internal/domain/entity"
	"deal_dashboard/internal/domain/service/aggregate"
	"deal_dashboard/internal/domain/value"
	"deal_dashboard/internal/infrastructure/ingest"
	"deal_dashboard/pkg/logx"
)

func main() {
	log := logx.NewLogger(os.Stderr, "warn", "text")
	slog.SetDefault(log)

	if err := run(os.Args[1:], os.Stdout); err != nil {
		log.Error("report failed", logx.Error(err))
		os.Exit(1)
	}
}

func run(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("report", flag.ContinueOnError)
	mode := fs.String("mode", value.ModeSettled.String(), "ranking: settled or conversion")
	minDeals := fs.Int("min-deals", aggregate.DefaultMinDeals, "hide brokers with fewer deals")
	broker := fs.String("broker", value.All, "only this broker")
	year := fs.String("year", value.All, "only this year")

	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("fs.Parse: %w", err)
	}

	if fs.NArg() != 1 {
		return fmt.Errorf("expected exactly one deal file, got %d", fs.NArg())
	}

	m, err := value.ParseMode(*mode)
	if err != nil {
		return fmt.Errorf("value.ParseMode: %w", err)
	}

	deals, err := readDeals(fs.Arg(0))
	if err != nil {
		return err
	}

	deals = aggregate.FilterDeals(deals, value.Filter{Broker: *broker, Year: *year})

	slog.Debug("deals loaded", slog.Int(logx.FieldDeals, len(deals)))

	performances := aggregate.FilterByMinimumDeals(aggregate.ComputeBrokerPerformance(deals, m), *minDeals)

	return render(out, performances, aggregate.LeadSourceBreakdown(deals))
}

func readDeals(path string) ([]entity.Deal, error) {
	format, err := ingest.DetectFormat(filepath.Base(path), "")
	if err != nil {
		return nil, fmt.Errorf("ingest.DetectFormat: %w", err)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("os.Open: %w", err)
	}
	defer f.Close()

	deals, err := ingest.Decode(f, format)
	if err != nil {
		return nil, fmt.Errorf("ingest.Decode: %w", err)
	}

	return deals, nil
}

func render(out io.Writer, performances []entity.BrokerPerformance, sources []entity.LeadSourceSummary) error {
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', tabwriter.AlignRight) //nolint:mnd

	fmt.Fprintln(tw, "Broker\tDeals\tSettled\tSettled %\tSettled value\tAvg value\tConverted %\t")

	for _, p := range performances {
		fmt.Fprintf(tw, "%s\t%d\t%d\t%.1f\t%.2f\t%.2f\t%.1f\t\n",
			p.BrokerName, p.TotalDeals, p.SettledDeals, p.SettledRate,
			p.SettledValue, p.AvgDealValue, p.ConversionRate)
	}

	fmt.Fprintln(tw, "\t\t\t\t\t\t\t")
	fmt.Fprintln(tw, "Source\tDeals\tSettled\tSettled %\tSettled value\t\tConverted %\t")

	for _, s := range sources {
		fmt.Fprintf(tw, "%s\t%d\t%d\t%.1f\t%.2f\t\t%.1f\t\n",
			s.Source, s.TotalDeals, s.SettledDeals, s.SettledRate, s.SettledValue, s.ConversionRate)
	}

	if err := tw.Flush(); err != nil {
		return fmt.Errorf("tw.Flush: %w", err)
	}

	return nil
}
