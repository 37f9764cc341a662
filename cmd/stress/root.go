// Package stress implements the concurrency stress harness: one writer
// goroutine and a sweep of reader goroutines hammer a map implementation
// while every read is checked for anomalies (a published key that stays
// absent after the first load, or a value that differs from its key).
package stress

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/judismar/monkeymap/cmd/util"
	"github.com/judismar/monkeymap/lib/hashmap"
	hmutil "github.com/judismar/monkeymap/lib/hashmap/util"
)

var (
	// StressCmd is the `stress` subcommand.
	StressCmd = &cobra.Command{
		Use:   "stress",
		Short: "Run the single-writer/multi-reader stress harness",
		Long: util.WrapString("Runs one writer goroutine and a sweep of reader goroutines " +
			"against the selected map implementations, verifying that readers never observe " +
			"anomalous values and reporting per-sweep timing statistics."),
		RunE:    run,
		PreRunE: processConfig,
	}

	cfg settings
)

// settings mirrors the harness configuration flags.
type settings struct {
	Implementation        string
	MapSize               int
	LoadFactor            float64
	MinThreads            int
	MaxThreads            int
	Experiments           int
	WarmupRuns            int
	WriterReps            int
	ReaderReps            int
	KeyGap                int64
	DeleteGapFactor       int64
	IncludeIteration      bool
	ChangeExisting        bool
	IncludeDeletions      bool
	SingleThreadAlsoReads bool
	CSVPath               string
	LogLevel              string
}

func init() {
	key := "impl"
	StressCmd.Flags().String(key, "", util.WrapString("Implementation to test (monkey, xsync, syncmap, mutexmap); empty runs all thread-safe ones"))
	key = "size"
	StressCmd.Flags().Int(key, 100_000, util.WrapString("Number of entries the writer maintains"))
	key = "load-factor"
	StressCmd.Flags().Float64(key, 0.5, util.WrapString("Load factor for the monkey implementation"))
	key = "min-threads"
	StressCmd.Flags().Int(key, 2, util.WrapString("Smallest total thread count of the sweep (1 writer + N-1 readers)"))
	key = "max-threads"
	StressCmd.Flags().Int(key, 16, util.WrapString("Largest total thread count of the sweep"))
	key = "experiments"
	StressCmd.Flags().Int(key, 4, util.WrapString("Experiments per sweep point"))
	key = "warmup"
	StressCmd.Flags().Int(key, 1, util.WrapString("Warm-up runs per implementation before measuring"))
	key = "writer-reps"
	StressCmd.Flags().Int(key, 1000, util.WrapString("Repetitions of the writer's work loop"))
	key = "reader-reps"
	StressCmd.Flags().Int(key, 2000, util.WrapString("Repetitions of each reader's work loop"))
	key = "key-gap"
	StressCmd.Flags().Int64(key, 583_475_513, util.WrapString("Gap between consecutive keys, spreading them over the hash space"))
	key = "delete-gap-factor"
	StressCmd.Flags().Int64(key, 2, util.WrapString("Every delete-gap-factor-th key is deleted/read"))
	key = "include-iteration"
	StressCmd.Flags().Bool(key, true, util.WrapString("Readers iterate over the map instead of issuing point reads"))
	key = "change-existing"
	StressCmd.Flags().Bool(key, true, util.WrapString("Writer keeps overwriting existing entries after the first load"))
	key = "include-deletions"
	StressCmd.Flags().Bool(key, false, util.WrapString("Writer deletes and re-inserts part of the key space each repetition"))
	key = "single-thread-also-reads"
	StressCmd.Flags().Bool(key, true, util.WrapString("With one thread total, the writer also runs the reader loop afterwards"))
	key = "csv"
	StressCmd.Flags().String(key, "", util.WrapString("Optional path to save sweep results as CSV"))
	key = "log-level"
	StressCmd.Flags().String(key, "info", util.WrapString("Log level (debug, info, warn, error)"))
}

func processConfig(cmd *cobra.Command, _ []string) error {
	if err := util.BindCommandFlags(cmd); err != nil {
		return err
	}

	cfg = settings{
		Implementation:        viper.GetString("impl"),
		MapSize:               viper.GetInt("size"),
		LoadFactor:            viper.GetFloat64("load-factor"),
		MinThreads:            viper.GetInt("min-threads"),
		MaxThreads:            viper.GetInt("max-threads"),
		Experiments:           viper.GetInt("experiments"),
		WarmupRuns:            viper.GetInt("warmup"),
		WriterReps:            viper.GetInt("writer-reps"),
		ReaderReps:            viper.GetInt("reader-reps"),
		KeyGap:                viper.GetInt64("key-gap"),
		DeleteGapFactor:       viper.GetInt64("delete-gap-factor"),
		IncludeIteration:      viper.GetBool("include-iteration"),
		ChangeExisting:        viper.GetBool("change-existing"),
		IncludeDeletions:      viper.GetBool("include-deletions"),
		SingleThreadAlsoReads: viper.GetBool("single-thread-also-reads"),
		CSVPath:               viper.GetString("csv"),
		LogLevel:              viper.GetString("log-level"),
	}

	if cfg.MapSize <= 0 {
		return fmt.Errorf("size must be positive, got %d", cfg.MapSize)
	}
	if cfg.MinThreads < 1 || cfg.MaxThreads < cfg.MinThreads {
		return fmt.Errorf("invalid thread sweep [%d, %d]", cfg.MinThreads, cfg.MaxThreads)
	}
	if cfg.KeyGap < 1 || cfg.DeleteGapFactor < 1 {
		return fmt.Errorf("key-gap and delete-gap-factor must be positive")
	}
	return nil
}

func run(_ *cobra.Command, _ []string) error {
	logger, err := util.NewLogger(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer logger.Sync()

	impls := selectedImplementations()
	logger.Infow("starting stress run",
		"implementations", impls,
		"size", cfg.MapSize,
		"threads", fmt.Sprintf("%d..%d", cfg.MinThreads, cfg.MaxThreads),
		"writer_reps", cfg.WriterReps,
		"reader_reps", cfg.ReaderReps,
		"iteration", cfg.IncludeIteration,
		"deletions", cfg.IncludeDeletions,
	)

	rows := [][]string{{
		"implementation", "threads", "experiments",
		"mean_seconds", "max_seconds", "std_seconds",
		"anomalies", "max_probe_depth",
	}}

	for _, impl := range impls {
		for w := 0; w < cfg.WarmupRuns; w++ {
			if _, _, _, err := runExperiment(logger, impl, cfg.MinThreads); err != nil {
				return err
			}
		}
		logger.Infow("warm-up complete", "implementation", impl)

		for threads := cfg.MinThreads; threads <= cfg.MaxThreads; threads++ {
			times := make([]float64, 0, cfg.Experiments)
			anomalies := 0
			maxDepth := 0

			for exp := 1; exp <= cfg.Experiments; exp++ {
				elapsed, anoms, depth, err := runExperiment(logger, impl, threads)
				if err != nil {
					return err
				}
				times = append(times, elapsed.Seconds())
				anomalies += anoms
				if depth > maxDepth {
					maxDepth = depth
				}
				logger.Debugw("experiment complete",
					"implementation", impl, "threads", threads, "experiment", exp,
					"elapsed", elapsed, "anomalies", anoms)
			}

			stats := hmutil.NewStats(times)
			logger.Infow("sweep point complete",
				"implementation", impl,
				"threads", threads,
				"mean_s", stats.Mean,
				"max_s", stats.Max,
				"std_s", stats.StdDeviation,
				"anomalies", anomalies,
				"max_probe_depth", maxDepth,
			)
			if anomalies > 0 {
				logger.Errorw("anomalies detected", "implementation", impl, "threads", threads, "count", anomalies)
			}

			rows = append(rows, []string{
				impl.String(),
				strconv.Itoa(threads),
				strconv.Itoa(cfg.Experiments),
				strconv.FormatFloat(stats.Mean, 'f', 6, 64),
				strconv.FormatFloat(stats.Max, 'f', 6, 64),
				strconv.FormatFloat(stats.StdDeviation, 'f', 6, 64),
				strconv.Itoa(anomalies),
				strconv.Itoa(maxDepth),
			})
		}
	}

	if cfg.CSVPath != "" {
		if err := writeCSV(cfg.CSVPath, rows); err != nil {
			return fmt.Errorf("failed to export results to CSV: %w", err)
		}
		logger.Infow("results exported", "path", cfg.CSVPath)
	}
	return nil
}

// selectedImplementations resolves the --impl flag; empty means every
// thread-safe implementation.
func selectedImplementations() []hashmap.Implementation {
	if cfg.Implementation != "" {
		return []hashmap.Implementation{hashmap.ImplementationByShortName(cfg.Implementation)}
	}
	var impls []hashmap.Implementation
	for _, impl := range hashmap.Implementations() {
		if impl.ThreadSafe() {
			impls = append(impls, impl)
		}
	}
	return impls
}

// --------------------------------------------------------------------------
// Experiment execution
// --------------------------------------------------------------------------

// anomaly is one invalid observation made by a reader. Readers push these
// onto a lock-free queue so reporting never perturbs the measured run.
type anomaly struct {
	reader int
	key    int64
	value  int64
	kind   string
}

// runExperiment runs one writer and threads-1 readers to completion and
// returns the elapsed wall-clock time, the anomaly count and the maximum
// probe depth the map reached (0 for engines without that diagnostic).
func runExperiment(logger *zap.SugaredLogger, impl hashmap.Implementation, threads int) (time.Duration, int, int, error) {
	m := hashmap.New[int64, int64](impl, hashmap.Config[int64, int64]{
		Capacity:   cfg.MapSize,
		LoadFactor: cfg.LoadFactor,
		ValueToKey: func(v int64) int64 { return v }, // every entry stores its key
	})

	queue := hmutil.NewLockFreeMPSC[anomaly]()
	var firstLoadDone atomic.Bool
	var wg sync.WaitGroup

	numReaders := threads - 1
	start := time.Now()

	wg.Add(1)
	go func() {
		defer wg.Done()
		writerLoop(m, &firstLoadDone, queue)
	}()

	for r := 1; r <= numReaders; r++ {
		wg.Add(1)
		go func(reader int) {
			defer wg.Done()
			readerLoop(m, reader, &firstLoadDone, queue)
		}(r)
	}

	wg.Wait()
	if numReaders == 0 && cfg.SingleThreadAlsoReads {
		readerLoop(m, 0, &firstLoadDone, queue)
	}
	elapsed := time.Since(start)

	queue.Close()
	logged := 0
	anomalies := queue.Drain(func(a anomaly) {
		if logged < 5 {
			logger.Warnw("anomaly", "reader", a.reader, "kind", a.kind, "key", a.key, "value", a.value)
			logged++
		}
	})

	maxDepth := 0
	if probed, ok := m.(interface{ MaxProbeDepthInUse() int }); ok {
		maxDepth = probed.MaxProbeDepthInUse()
	}
	return elapsed, anomalies, maxDepth, nil
}

// writerLoop is the single mutating goroutine: it loads the key space,
// optionally deletes a stripe of it, and optionally keeps overwriting
// existing entries.
func writerLoop(m hashmap.Map[int64, int64], firstLoadDone *atomic.Bool, queue *hmutil.LockFreeMPSC[anomaly]) {
	for rep := 1; rep <= cfg.WriterReps; rep++ {
		if cfg.IncludeDeletions || !firstLoadDone.Load() {
			for i := int64(0); i < int64(cfg.MapSize); i++ {
				key := i * cfg.KeyGap
				if _, _, err := m.Put(key, key); err != nil {
					queue.Push(anomaly{key: key, kind: "writer: " + err.Error()})
					return
				}
			}
			firstLoadDone.Store(true)
		}

		if cfg.IncludeDeletions {
			for key := int64(0); key < cfg.KeyGap*int64(cfg.MapSize); key += cfg.KeyGap * cfg.DeleteGapFactor {
				m.Delete(key)
			}
		}

		if cfg.ChangeExisting {
			for i := int64(0); i < int64(cfg.MapSize); i++ {
				key := i * cfg.KeyGap
				if _, _, err := m.Put(key, key); err != nil {
					queue.Push(anomaly{key: key, kind: "writer: " + err.Error()})
					return
				}
			}
		}
	}
}

// readerLoop verifies the map from a reader's point of view: every observed
// value must equal its key, and a key that is not prone to deletion must not
// stay absent once the first load has completed.
func readerLoop(m hashmap.Map[int64, int64], reader int, firstLoadDone *atomic.Bool, queue *hmutil.LockFreeMPSC[anomaly]) {
	for rep := 1; rep <= cfg.ReaderReps; rep++ {
		if cfg.IncludeIteration {
			for k, v := range m.All() {
				if v != k {
					queue.Push(anomaly{reader: reader, key: k, value: v, kind: "foreign value in iteration"})
				}
			}
			continue
		}
		for key := cfg.KeyGap; key < cfg.KeyGap*int64(cfg.MapSize); key += cfg.KeyGap * cfg.DeleteGapFactor {
			readKey(m, reader, key, firstLoadDone, queue)
		}
	}
}

func readKey(m hashmap.Map[int64, int64], reader int, key int64, firstLoadDone *atomic.Bool, queue *hmutil.LockFreeMPSC[anomaly]) {
	value, ok := m.Get(key)
	if !ok {
		if !firstLoadDone.Load() || proneToDeletion(key) {
			return
		}
		// Publication lag is legitimate; a key that stays absent is not.
		time.Sleep(10 * time.Millisecond)
		value, ok = m.Get(key)
		if !ok {
			queue.Push(anomaly{reader: reader, key: key, kind: "published key absent"})
			return
		}
	}
	if value != key {
		queue.Push(anomaly{reader: reader, key: key, value: value, kind: "foreign value"})
	}
}

func proneToDeletion(key int64) bool {
	return key%(cfg.KeyGap*cfg.DeleteGapFactor) == 0
}

// --------------------------------------------------------------------------
// CSV export
// --------------------------------------------------------------------------

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
