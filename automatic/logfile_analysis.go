package automatic

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
)

// AnalyzeLogFile reads a self-play CSV file back and summarizes it.
func AnalyzeLogFile(filepath string) (*Summary, error) {
	file, err := os.Open(filepath)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	r := csv.NewReader(file)

	col := map[string]int{}
	acc := &summarizer{}
	line := 0
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		line++
		if record[0] == csvHeader[0] {
			for i, name := range record {
				col[name] = i
			}
			continue
		}
		if len(col) == 0 {
			return nil, fmt.Errorf("%s: missing header", filepath)
		}
		returns, err := strconv.ParseFloat(record[col["returns"]], 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		actions, err := strconv.Atoi(record[col["actions"]])
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		won, err := strconv.ParseBool(record[col["won"]])
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		capped, err := strconv.ParseBool(record[col["capped"]])
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		acc.push(returns, actions, won, capped)
	}
	return acc.summary(), nil
}

func (s *Summary) String() string {
	str := fmt.Sprintf("Games played: %d\n", s.Games)
	str += fmt.Sprintf("Wins: %d (%.3f%%)\n", s.Wins, 100.0*s.WinRate)
	str += fmt.Sprintf("Stopped at the action cap: %d\n", s.Capped)
	str += fmt.Sprintf("Mean returns: %.3f  Stdev: %.3f  95%% CI: [%.3f, %.3f]\n",
		s.MeanReturns, s.StdevReturns, s.CI95Low, s.CI95High)
	str += fmt.Sprintf("Min returns: %.0f  Max returns: %.0f\n", s.MinReturns, s.MaxReturns)
	str += fmt.Sprintf("Mean actions per game: %.1f\n", s.MeanActions)
	return str
}
