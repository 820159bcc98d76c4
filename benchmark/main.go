// Package main provides a performance benchmarking tool for the SchoolPulse CLI.
// It measures execution times across different workbook sizes and command types,
// running each test multiple times, treating the first successful run as cold and averaging the rest as warm,
// generating CSV output for performance analysis and documentation.
//
// Prerequisites:
// - schoolpulse binary installed and available in PATH
//
// Usage: go run benchmark/main.go [workbook-dir]
//
//	workbook-dir: Directory where synthetic workbooks are generated
package main

import (
	"encoding/csv"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/pulseedu/schoolpulse/schema"
)

// BenchmarkResult holds the result of a benchmark run (cold run and average of warm runs).
type BenchmarkResult struct {
	Workbook string
	Command  string
	ColdTime string
	WarmTime string
}

// BenchmarkConfig holds configuration for the benchmark run.
type BenchmarkConfig struct {
	WorkbookDir string
	Timeout     time.Duration
	Runs        int
	RosterSizes []int
	Commands    []string
}

func main() {
	// Parse command line arguments
	if len(os.Args) != 2 {
		fmt.Printf("Usage: %s [workbook-dir]\n", os.Args[0])
		os.Exit(1)
	}
	workbookDir := os.Args[1]

	config := BenchmarkConfig{
		WorkbookDir: workbookDir,
		Timeout:     2 * time.Minute,
		Runs:        4,
		RosterSizes: []int{50, 500, 5000},
		Commands:    []string{"schools", "issues", "summary"},
	}

	if err := checkPrerequisites(config); err != nil {
		fmt.Printf("Prerequisites check failed: %v\n", err)
		os.Exit(1)
	}

	workbooks, err := generateWorkbooks(config)
	if err != nil {
		fmt.Printf("Failed to generate workbooks: %v\n", err)
		os.Exit(1)
	}

	results := runBenchmarks(config, workbooks)

	if err := saveResults(results); err != nil {
		fmt.Printf("Failed to save results: %v\n", err)
		os.Exit(1)
	}

	printSummary(results, config.Commands)
}

// checkPrerequisites verifies that the schoolpulse binary and workbook directory exist
func checkPrerequisites(config BenchmarkConfig) error {
	// Check if schoolpulse is available
	if _, err := exec.LookPath("schoolpulse"); err != nil {
		return fmt.Errorf("schoolpulse binary not found in PATH")
	}

	if _, err := os.Stat(config.WorkbookDir); os.IsNotExist(err) {
		return fmt.Errorf("workbook directory not found at %s", config.WorkbookDir)
	}

	return nil
}

// generateWorkbooks writes one synthetic workbook per configured roster size
// and returns the generated file paths keyed by a short label.
func generateWorkbooks(config BenchmarkConfig) (map[string]string, error) {
	keys := schema.DefaultTaxonomy().MetricKeys()
	workbooks := make(map[string]string, len(config.RosterSizes))

	for _, size := range config.RosterSizes {
		label := fmt.Sprintf("roster-%d", size)
		path := filepath.Join(config.WorkbookDir, label+".csv")
		if err := writeSyntheticWorkbook(path, size, keys); err != nil {
			return nil, err
		}
		fmt.Printf("Generated %s (%d schools)\n", path, size)
		workbooks[label] = path
	}

	return workbooks, nil
}

// writeSyntheticWorkbook writes a deterministic workbook with every rubric
// metric scored. Scores cycle through the 1.0-4.0 band so all tiers and a
// spread of issues show up in the analysis.
func writeSyntheticWorkbook(path string, size int, keys []string) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() { _ = file.Close() }()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	header := append([]string{"id", "name", "students"}, keys...)
	if err := writer.Write(header); err != nil {
		return err
	}

	for i := 0; i < size; i++ {
		record := make([]string, 0, len(header))
		record = append(record,
			strconv.Itoa(i+1),
			fmt.Sprintf("School %04d", i+1),
			strconv.Itoa(200+(i*37)%800),
		)
		for j := range keys {
			score := 1.0 + float64((i*7+j*13)%31)/10.0
			record = append(record, strconv.FormatFloat(score, 'f', 1, 64))
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}

	return nil
}

// runBenchmarks executes all benchmark tests across generated workbooks
func runBenchmarks(config BenchmarkConfig, workbooks map[string]string) []BenchmarkResult {
	var results []BenchmarkResult

	fmt.Printf("Starting benchmark: %d workbooks, %v timeout, %d runs per command\n",
		len(workbooks), config.Timeout, config.Runs)

	for _, size := range config.RosterSizes {
		label := fmt.Sprintf("roster-%d", size)
		path := workbooks[label]
		fmt.Printf("Benchmarking %s\n", label)

		for _, command := range config.Commands {
			result := runBenchmarkSuite(config, label, path, command)
			results = append(results, result)
		}
	}

	return results
}

// runBenchmarkSuite runs all timed runs for one command against one workbook
func runBenchmarkSuite(config BenchmarkConfig, label, workbookPath, command string) BenchmarkResult {
	fmt.Printf("Running %s analysis on %s (%d runs)\n", command, label, config.Runs)

	coldTime, warmTimes := runBenchmark(config, workbookPath, command)

	coldTimeStr := "TIMEOUT"
	if coldTime > 0 {
		coldTimeStr = fmt.Sprintf("%.3fs", coldTime)
	}

	warmAvg := "TIMEOUT"
	if len(warmTimes) > 0 {
		var sum float64
		for _, t := range warmTimes {
			sum += t
		}
		warmAvg = fmt.Sprintf("%.3fs", sum/float64(len(warmTimes)))
	}

	fmt.Printf("  Cold time: %s, Warm average: %s\n", coldTimeStr, warmAvg)

	return BenchmarkResult{
		Workbook: label,
		Command:  command,
		ColdTime: coldTimeStr,
		WarmTime: warmAvg,
	}
}

// runBenchmark executes a schoolpulse command multiple times and returns cold time and warm times
func runBenchmark(config BenchmarkConfig, workbookPath, command string) (coldTime float64, warmTimes []float64) {
	args := []string{command, workbookPath}

	var times []float64
	for run := 1; run <= config.Runs; run++ {
		start := time.Now()

		cmd := exec.Command("schoolpulse", args...)

		done := make(chan bool)
		var output []byte
		var cmdErr error

		go func() {
			output, cmdErr = cmd.CombinedOutput()
			done <- true
		}()

		select {
		case <-done:
			if cmdErr == nil && isSuccess(output) {
				times = append(times, time.Since(start).Seconds())
			}
		case <-time.After(config.Timeout):
			// Timeout - don't add to times
		}
	}

	if len(times) > 0 {
		coldTime = times[0]
		warmTimes = times[1:]
	}
	return
}

// isSuccess checks if command output indicates successful completion
func isSuccess(output []byte) bool {
	return strings.Contains(string(output), "Analysis completed in")
}

// saveResults writes benchmark results to a timestamped CSV file
func saveResults(results []BenchmarkResult) error {
	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("/tmp/schoolpulse_benchmark_%s.csv", timestamp)

	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			fmt.Printf("Warning: failed to close file %s: %v\n", filename, closeErr)
		}
	}()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	// Write header
	if err := writer.Write([]string{"workbook", "cmd", "cold_time", "warm_avg"}); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	// Write results
	for _, result := range results {
		if err := writer.Write([]string{result.Workbook, result.Command, result.ColdTime, result.WarmTime}); err != nil {
			return fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	fmt.Printf("Results saved to %s\n", filename)
	return nil
}

// printSummary displays the final benchmark results summary
func printSummary(results []BenchmarkResult, commands []string) {
	fmt.Printf("Benchmark complete\n")

	for _, command := range commands {
		title := strings.ToUpper(command[:1]) + command[1:] + " Analysis:"
		printCommandSummary(results, command, title)
	}

	fmt.Printf("Benchmark script completed successfully\n")
}

// printCommandSummary displays results for a specific command type
func printCommandSummary(results []BenchmarkResult, command, title string) {
	fmt.Printf("%s\n", title)
	for _, result := range results {
		if result.Command == command {
			fmt.Printf("  %-12s: Cold: %s, Warm: %s\n", result.Workbook, result.ColdTime, result.WarmTime)
		}
	}
}
