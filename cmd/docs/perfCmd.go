package docs

import (
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/rcrowley/go-metrics"
	"github.com/russcam/elastic/cmd/util"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	perfTestCmd = &cobra.Command{
		Use:     "perf",
		Short:   "Performance testing tool for the connection pool",
		RunE:    runPerf,
		PreRunE: processPerfConfig,
	}
	perfKeyPrefix  = "__test"
	perfIndex      = "perf"
	perfNumThreads = 10
	perfRequests   = 1000
)

func init() {
	// add flags
	key := "perf-index"
	perfTestCmd.Flags().String(key, "perf", util.WrapString("Index to run the benchmark against"))
	key = "threads"
	perfTestCmd.Flags().Int(key, 10, util.WrapString("Number of producer goroutines"))
	key = "requests"
	perfTestCmd.Flags().Int(key, 1000, util.WrapString("Number of requests per producer and benchmark"))
}

func processPerfConfig(cmd *cobra.Command, _ []string) error {
	if err := viper.BindPFlags(cmd.Flags()); err != nil {
		return err
	}

	// Read the configuration from the command line flags and environment variables
	perfIndex = viper.GetString("perf-index")
	perfNumThreads = viper.GetInt("threads")
	perfRequests = viper.GetInt("requests")

	return nil
}

func runPerf(_ *cobra.Command, _ []string) error {
	fmt.Println("Performance testing tool for the connection pool")

	// Print configuration
	fmt.Println()
	fmt.Println("Configuration:")
	fmt.Println(util.GetClientConfig().String())
	fmt.Printf("Threads: %d, Requests per thread: %d\n", perfNumThreads, perfRequests)
	fmt.Println()

	registry := metrics.NewRegistry()

	type doc struct {
		Title string `json:"title"`
		Seq   int    `json:"seq"`
	}

	// index benchmark
	runBenchmark("index", registry, func(thread, i int) error {
		return esClient.Index(perfIndex, perfKey(thread, i), doc{Title: "benchmark document", Seq: i})
	})

	// get benchmark
	runBenchmark("get", registry, func(thread, i int) error {
		_, _, err := esClient.Get(perfIndex, perfKey(thread, i))
		return err
	})

	// cleanup
	for t := 0; t < perfNumThreads; t++ {
		for i := 0; i < perfRequests; i++ {
			if _, err := esClient.Delete(perfIndex, perfKey(t, i)); err != nil {
				fmt.Printf("cleanup: error deleting %s: %v\n", perfKey(t, i), err)
			}
		}
	}

	return nil
}

// runBenchmark runs one operation across all producer goroutines and
// prints its latency distribution
func runBenchmark(name string, registry metrics.Registry, op func(thread, i int) error) {
	timer := metrics.GetOrRegisterTimer(name, registry)
	errs := metrics.GetOrRegisterCounter(name+".errors", registry)

	var wg sync.WaitGroup
	wg.Add(perfNumThreads)

	start := time.Now()
	for t := 0; t < perfNumThreads; t++ {
		go func(thread int) {
			defer wg.Done()
			for i := 0; i < perfRequests; i++ {
				timer.Time(func() {
					if err := op(thread, i); err != nil {
						errs.Inc(1)
					}
				})
			}
		}(t)
	}
	wg.Wait()
	elapsed := time.Since(start)

	total := int64(perfNumThreads) * int64(perfRequests)
	fmt.Printf("%-8s: %d requests in %s (%.0f req/s), errors=%d\n",
		name, total, elapsed.Round(time.Millisecond), float64(total)/elapsed.Seconds(), errs.Count())
	fmt.Printf("%-8s  mean=%s p95=%s p99=%s max=%s\n",
		"",
		time.Duration(timer.Mean()).Round(time.Microsecond),
		time.Duration(timer.Percentile(0.95)).Round(time.Microsecond),
		time.Duration(timer.Percentile(0.99)).Round(time.Microsecond),
		time.Duration(timer.Max()).Round(time.Microsecond))
}

func perfKey(thread, i int) string {
	return perfKeyPrefix + "-" + strconv.Itoa(thread) + "-" + strconv.Itoa(i)
}
