package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/ostafen/growtable/internal/logger"
	"github.com/ostafen/growtable/internal/metrics"
	"github.com/ostafen/growtable/internal/rlimit"
	"github.com/ostafen/growtable/pkg/keys"
	"github.com/ostafen/growtable/pkg/mem"
	"github.com/ostafen/growtable/pkg/table"
	"github.com/ostafen/growtable/pkg/util/format"
)

type Options struct {
	Capacity          int
	BucketCapacity    int
	MaxCapacity       int
	Keys              string
	MemoryBudget      uint64
	AddressSpaceLimit uint64
	Metrics           bool
	DisableLog        bool
	LogLevel          logger.Level
}

func defineTableFlags(cmd *cobra.Command, capacity int) {
	cmd.Flags().Int("capacity", capacity, "initial number of cells")
	cmd.Flags().Int("bucket-capacity", table.DefaultBucketCapacity, "number of entries per bucket")
	cmd.Flags().Int("max-capacity", 0, "maximum number of cells the table may grow to (0 for unbounded)")
	cmd.Flags().StringP("keys", "k", "int", "key strategy (see the strategies command)")
	cmd.Flags().String("memory-budget", "", "maximum memory charged to the table, e.g. 64KB (empty for unlimited)")
	cmd.Flags().String("address-space-limit", "", "cap the process address space, e.g. 512MB (linux only)")
	cmd.Flags().Bool("metrics", false, "dump table metrics in Prometheus text format on exit")
}

func parseOptions(cmd *cobra.Command) (Options, error) {
	capacity, _ := cmd.Flags().GetInt("capacity")
	bucketCapacity, _ := cmd.Flags().GetInt("bucket-capacity")
	maxCapacity, _ := cmd.Flags().GetInt("max-capacity")
	keyStrategy, _ := cmd.Flags().GetString("keys")
	enableMetrics, _ := cmd.Flags().GetBool("metrics")
	disableLog, _ := cmd.Flags().GetBool("no-log")

	if _, err := keys.Lookup(keyStrategy); err != nil {
		return Options{}, err
	}

	memoryBudget, err := getBytes(cmd, "memory-budget")
	if err != nil {
		return Options{}, err
	}

	addressSpaceLimit, err := getBytes(cmd, "address-space-limit")
	if err != nil {
		return Options{}, err
	}

	logLevelName, _ := cmd.Flags().GetString("log-level")
	logLevel, err := logger.ParseLevel(logLevelName)
	if err != nil {
		return Options{}, err
	}

	return Options{
		Capacity:          capacity,
		BucketCapacity:    bucketCapacity,
		MaxCapacity:       maxCapacity,
		Keys:              keyStrategy,
		MemoryBudget:      memoryBudget,
		AddressSpaceLimit: addressSpaceLimit,
		Metrics:           enableMetrics,
		DisableLog:        disableLog,
		LogLevel:          logLevel,
	}, nil
}

// getBytes returns 0 for an empty flag.
func getBytes(cmd *cobra.Command, name string) (uint64, error) {
	s, _ := cmd.Flags().GetString(name)
	if s == "" {
		return 0, nil
	}

	v, err := format.ParseBytes(s)
	if err != nil {
		return 0, fmt.Errorf("--%s: %w", name, err)
	}
	return v, nil
}

// session holds what every command shares while a table is alive.
type session struct {
	opts     Options
	log      *logger.Logger
	budget   *mem.Budget
	registry *prometheus.Registry
	metrics  *metrics.Collector
}

func newSession(opts Options) (*session, error) {
	s := &session{opts: opts}

	s.log = setupLogger(os.Stderr, opts)

	if opts.AddressSpaceLimit > 0 {
		if err := rlimit.LimitAddressSpace(opts.AddressSpaceLimit); err != nil {
			return nil, err
		}
		s.log.Infof("address space limited to %s", format.FormatBytes(opts.AddressSpaceLimit))
	}

	if opts.MemoryBudget > 0 {
		s.budget = mem.NewBudget(opts.MemoryBudget)
	}

	if opts.Metrics {
		s.registry = prometheus.NewRegistry()

		c, err := metrics.NewCollector(s.registry)
		if err != nil {
			return nil, err
		}
		s.metrics = c
	}
	return s, nil
}

func setupLogger(w io.Writer, opts Options) *logger.Logger {
	if opts.DisableLog {
		return logger.Discard()
	}
	return logger.New(w, opts.LogLevel)
}

func (s *session) allocator() mem.Allocator {
	if s.budget == nil {
		return mem.Unlimited
	}
	return s.budget
}

func (s *session) tableOptions(name string) table.Options {
	opts := table.Options{
		BucketCapacity: s.opts.BucketCapacity,
		MaxCapacity:    s.opts.MaxCapacity,
		Allocator:      s.allocator(),
		Reporter:       s.log,
	}
	if s.metrics != nil {
		opts.Observer = s.metrics.Track(name, s.opts.Capacity)
	}
	return opts
}

// stringStrategy builds one of the string key strategies.
func (s *session) stringStrategy() table.KeyStrategy[string] {
	if s.opts.Keys == "xxstring" {
		return keys.NewXXString(s.allocator())
	}
	return keys.NewString(s.allocator())
}

// finish logs memory usage and, if enabled, dumps metrics to w.
func (s *session) finish(w io.Writer) error {
	if s.budget != nil {
		s.log.Infof("memory: %s in use, %s peak, %s budget",
			format.FormatBytes(s.budget.Used()),
			format.FormatBytes(s.budget.Peak()),
			format.FormatBytes(s.budget.Limit()))
	}

	if s.registry == nil {
		return nil
	}

	if s.log.Enabled(logger.DebugLevel) {
		lines, err := metrics.Summary(s.registry)
		if err != nil {
			return err
		}
		for _, l := range lines {
			s.log.Debug(l)
		}
	}
	return metrics.Dump(w, s.registry)
}

func openTable[K, V any](s *session, name string, ks table.KeyStrategy[K], pv table.ValuePrinter[V]) (*table.Table[K, V], error) {
	tb, err := table.New(s.opts.Capacity, ks, pv, s.tableOptions(name))
	if err != nil {
		return nil, err
	}
	s.log.Debugf("created %s table: capacity %d, bucket capacity %d, keys %s",
		name, tb.Capacity(), tb.BucketCapacity(), s.opts.Keys)
	return tb, nil
}
