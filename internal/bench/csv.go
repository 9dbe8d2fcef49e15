package bench

import (
	"encoding/csv"
	"os"
)

func WriteCSV(path string, records []Record) error {
	header := []string{
		"algo", "params", "instance", "customers", "runs",
		"time_best_ms", "time_mean_ms", "time_std_ms",
		"evaluations_mean", "front_size_mean", "warnings",
		"hv_best", "hv_mean", "hv_std",
		"igd_best", "igd_mean", "igd_std",
	}
	rows := make([][]string, 0, len(records))
	for _, r := range records {
		rows = append(rows, []string{
			r.Algo,
			r.Params,
			r.Instance,
			itoa(r.Customers),
			itoa(r.Runs),

			ftoa(r.TimeBestMs),
			ftoa(r.TimeMeanMs),
			ftoa(r.TimeStdMs),

			ftoa(r.EvaluationsMean),
			ftoa(r.FrontSizeMean),
			itoa(r.Warnings),

			ftoa(r.HVBest),
			ftoa(r.HVMean),
			ftoa(r.HVStd),
			ftoa(r.IGDBest),
			ftoa(r.IGDMean),
			ftoa(r.IGDStd),
		})
	}
	return writeRows(path, header, rows)
}

func WriteCoverageCSV(path string, cov []Coverage) error {
	rows := make([][]string, 0, len(cov))
	for _, c := range cov {
		rows = append(rows, []string{c.Instance, c.A, c.B, ftoa(c.Value)})
	}
	return writeRows(path, []string{"instance", "a", "b", "coverage"}, rows)
}

func writeRows(path string, header []string, rows [][]string) error {
	if d := dirOf(path); d != "" {
		if err := os.MkdirAll(d, 0o755); err != nil {
			return err
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return err
	}
	if err := w.WriteAll(rows); err != nil {
		return err
	}
	return f.Close()
}
