package export

import (
	"fmt"
	"io"
	"os"

	"hedgebacktest/internal/domain"

	"github.com/gocarina/gocsv"
)

// ComparisonRowsCSV writes the comparison table as CSV, headers from the
// csv struct tags.
func ComparisonRowsCSV(w io.Writer, rows []domain.ComparisonRow) error {
	if err := gocsv.Marshal(rows, w); err != nil {
		return fmt.Errorf("failed to write comparison csv: %w", err)
	}
	return nil
}

// MonthlyResultsCSV writes the detailed monthly table as CSV.
func MonthlyResultsCSV(w io.Writer, results []domain.MonthlyResult) error {
	type monthlyRow struct {
		Month    string  `csv:"Month"`
		StockPnl float64 `csv:"Stock PnL"`
		HedgePnl float64 `csv:"Hedge PnL"`
		TotalPnl float64 `csv:"Total PnL"`
	}

	rows := make([]monthlyRow, len(results))
	for i, r := range results {
		rows[i] = monthlyRow{
			Month:    r.Month,
			StockPnl: r.StockPnl,
			HedgePnl: r.HedgePnl,
			TotalPnl: r.TotalPnl,
		}
	}

	if err := gocsv.Marshal(rows, w); err != nil {
		return fmt.Errorf("failed to write monthly results csv: %w", err)
	}
	return nil
}

// ToFile writes via the given writer func to path, creating or truncating it.
func ToFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
