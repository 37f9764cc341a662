// Package bench implements the single-process benchmark harness: it drives
// testing.Benchmark over the selected map implementations and reports
// ns/op and ops/sec per operation, optionally exporting CSV.
//
// All mutation happens on the benchmark goroutine, so the single-writer
// engine is exercised within its contract; the parallel read benchmark fans
// reads out across goroutines.
package bench

import (
	"encoding/csv"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/judismar/monkeymap/cmd/util"
	"github.com/judismar/monkeymap/lib/hashmap"
)

var (
	// BenchCmd is the `bench` subcommand.
	BenchCmd = &cobra.Command{
		Use:   "bench",
		Short: "Benchmark the map implementations",
		Long: util.WrapString("Benchmarks put, overwrite, get, delete and mixed workloads " +
			"for the selected map implementations and prints ns/op and ops/sec for each."),
		RunE:    run,
		PreRunE: processConfig,
	}

	benchImpls     []string
	benchKeySpread int
	benchSkip      []string
	benchCSVPath   string
)

func init() {
	key := "impls"
	BenchCmd.Flags().String(key, "", util.WrapString("Implementations to benchmark (comma separated); empty runs all"))
	key = "keys"
	BenchCmd.Flags().Int(key, 1024, util.WrapString("How many different keys to use for the tests"))
	key = "skip"
	BenchCmd.Flags().String(key, "", util.WrapString("Benchmarks to skip (comma separated - e.g. put,get)"))
	key = "csv"
	BenchCmd.Flags().String(key, "", util.WrapString("Optional path to save benchmark results as CSV"))
}

func processConfig(cmd *cobra.Command, _ []string) error {
	if err := util.BindCommandFlags(cmd); err != nil {
		return err
	}

	benchKeySpread = viper.GetInt("keys")
	if benchKeySpread <= 0 {
		return fmt.Errorf("keys must be positive, got %d", benchKeySpread)
	}
	benchImpls = splitList(viper.GetString("impls"))
	benchSkip = splitList(viper.GetString("skip"))
	benchCSVPath = viper.GetString("csv")
	return nil
}

func run(_ *cobra.Command, _ []string) error {
	impls := selectedImplementations()

	fmt.Println("Benchmarking map implementations")
	fmt.Printf("Keys: %d\n\n", benchKeySpread)

	type resultKey struct {
		impl hashmap.Implementation
		test string
	}
	results := make(map[resultKey]testing.BenchmarkResult)

	for _, impl := range impls {
		fmt.Printf("--- %s ---\n", impl)

		newMap := func() hashmap.Map[int64, int64] {
			return hashmap.New[int64, int64](impl, hashmap.Config[int64, int64]{
				Capacity: benchKeySpread,
			})
		}

		putResult := testing.Benchmark(func(b *testing.B) {
			if shouldSkip("put") {
				return
			}
			m := newMap()
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				key := int64(i % benchKeySpread)
				if _, _, err := m.Put(key, key); err != nil {
					b.Fatalf("put failed: %v", err)
				}
			}
		})
		results[resultKey{impl, "put"}] = putResult
		printResult("put", putResult)

		overwriteResult := testing.Benchmark(func(b *testing.B) {
			if shouldSkip("overwrite") {
				return
			}
			m := newMap()
			fill(b, m)
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				key := int64(i % benchKeySpread)
				if _, _, err := m.Put(key, int64(i)); err != nil {
					b.Fatalf("overwrite failed: %v", err)
				}
			}
		})
		results[resultKey{impl, "overwrite"}] = overwriteResult
		printResult("overwrite", overwriteResult)

		getResult := testing.Benchmark(func(b *testing.B) {
			if shouldSkip("get") {
				return
			}
			m := newMap()
			fill(b, m)
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				m.Get(int64(i % benchKeySpread))
			}
		})
		results[resultKey{impl, "get"}] = getResult
		printResult("get", getResult)

		getParallelResult := testing.Benchmark(func(b *testing.B) {
			if shouldSkip("get-parallel") || !impl.ThreadSafe() {
				return
			}
			m := newMap()
			fill(b, m)
			b.ResetTimer()
			b.RunParallel(func(pb *testing.PB) {
				counter := 0
				for pb.Next() {
					m.Get(int64(counter % benchKeySpread))
					counter++
				}
			})
		})
		results[resultKey{impl, "get-parallel"}] = getParallelResult
		printResult("get-parallel", getParallelResult)

		getMissingResult := testing.Benchmark(func(b *testing.B) {
			if shouldSkip("get-missing") {
				return
			}
			m := newMap()
			fill(b, m)
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				m.Get(int64(benchKeySpread + i))
			}
		})
		results[resultKey{impl, "get-missing"}] = getMissingResult
		printResult("get-missing", getMissingResult)

		deleteResult := testing.Benchmark(func(b *testing.B) {
			if shouldSkip("delete") {
				return
			}
			m := newMap()
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				key := int64(i % benchKeySpread)
				if i%2 == 0 {
					if _, _, err := m.Put(key, key); err != nil {
						b.Fatalf("put failed: %v", err)
					}
				} else {
					m.Delete(key)
				}
			}
		})
		results[resultKey{impl, "delete"}] = deleteResult
		printResult("delete", deleteResult)

		mixedResult := testing.Benchmark(func(b *testing.B) {
			if shouldSkip("mixed") {
				return
			}
			m := newMap()
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				key := int64(i % benchKeySpread)
				switch i % 4 {
				case 0, 1:
					m.Get(key)
				case 2:
					if _, _, err := m.Put(key, key); err != nil {
						b.Fatalf("put failed: %v", err)
					}
				case 3:
					m.Delete(key)
				}
			}
		})
		results[resultKey{impl, "mixed"}] = mixedResult
		printResult("mixed", mixedResult)

		fmt.Println()
	}

	if benchCSVPath != "" {
		fmt.Printf("Exporting results to CSV: %s\n", benchCSVPath)
		rows := [][]string{{"Implementation", "Test", "NsPerOp", "OpsPerSec", "Skipped", "Keys"}}
		for key, result := range results {
			skipped := result.NsPerOp() == 0
			nsPerOp := math.Max(float64(result.NsPerOp()), 1)
			opsPerSec := 0.0
			if !skipped {
				opsPerSec = 1.0 / (nsPerOp / 1e9)
			}
			rows = append(rows, []string{
				key.impl.String(),
				key.test,
				strconv.FormatFloat(nsPerOp, 'f', 0, 64),
				strconv.FormatFloat(opsPerSec, 'f', 0, 64),
				strconv.FormatBool(skipped),
				strconv.Itoa(benchKeySpread),
			})
		}
		if err := writeCSV(benchCSVPath, rows); err != nil {
			return fmt.Errorf("failed to export results to CSV: %w", err)
		}
		fmt.Println("Export complete")
	}
	return nil
}

// --------------------------------------------------------------------------
// Helper
// --------------------------------------------------------------------------

func selectedImplementations() []hashmap.Implementation {
	if len(benchImpls) == 0 {
		return hashmap.Implementations()
	}
	impls := make([]hashmap.Implementation, 0, len(benchImpls))
	for _, name := range benchImpls {
		impls = append(impls, hashmap.ImplementationByShortName(name))
	}
	return impls
}

func splitList(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}

func shouldSkip(test string) bool {
	for _, skip := range benchSkip {
		if test == skip {
			return true
		}
	}
	return false
}

// fill loads every key of the key space, with value equal to key.
func fill(b *testing.B, m hashmap.Map[int64, int64]) {
	for i := int64(0); i < int64(benchKeySpread); i++ {
		if _, _, err := m.Put(i, i); err != nil {
			b.Fatalf("prefill failed: %v", err)
		}
	}
}

// printResult prints the result of a benchmark test in a formatted way
func printResult(test string, result testing.BenchmarkResult) {
	if result.NsPerOp() == 0 {
		fmt.Printf("%-20sskipped\n", test)
		return
	}

	nsPerOp := math.Max(float64(result.NsPerOp()), 1) // prevent division by zero
	opsPerSec := 1.0 / (nsPerOp / 1e9)

	fmt.Printf("%-20s%.0fns/op (%s/op)\t%.0f ops/sec\n", test, nsPerOp, time.Duration(nsPerOp), opsPerSec)
}

func writeCSV(path string, rows [][]string) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()
	return writer.WriteAll(rows)
}
