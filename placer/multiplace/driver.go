package multiplace

import (
	"fmt"
	"runtime"
	"sort"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/cgra-tools/pnr/internal/prng"
	"github.com/cgra-tools/pnr/layout"
	"github.com/cgra-tools/pnr/placer/detail"
	"github.com/cgra-tools/pnr/pnrconfig"
)

// Option configures a Driver.
type Option func(*Driver)

// WithLogger injects a structured logger, forwarded to every per-cluster
// detail.Placer.
func WithLogger(l *zap.Logger) Option {
	return func(d *Driver) {
		if l != nil {
			d.logger = l
		}
	}
}

// WithWorkers overrides the worker-pool size (default:
// min(#clusters, hardware concurrency, ≥1)).
func WithWorkers(n int) Option {
	return func(d *Driver) {
		if n > 0 {
			d.workers = n
		}
	}
}

// ClusterInput is one cluster's detailed-placement input, matching
// detail.NewPlacer's parameters.
type ClusterInput struct {
	ID     string
	Blocks []detail.BlockSpec
	Cells  map[layout.Type][][2]int
	Fixed  map[int][2]int
	Groups []detail.RegisterGroup
	Nets   []detail.Net
}

// Driver dispatches one detail.Placer per cluster in a bounded worker
// pool.
type Driver struct {
	Cfg     pnrconfig.Config
	logger  *zap.Logger
	workers int
}

// NewDriver constructs a Driver from cfg; workers defaults to 0, which Run
// resolves to min(#clusters, runtime.NumCPU(), ≥1).
func NewDriver(cfg pnrconfig.Config, opts ...Option) *Driver {
	d := &Driver{Cfg: cfg, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

type clusterResult struct {
	id     string
	result *detail.Result
	err    error
}

// Run places every cluster's instances independently and in parallel (one
// goroutine per cluster, bounded by the worker pool), then unions the
// resulting block-name→(x,y) mappings, dropping dummy instances (already
// excluded by detail.Result) and cluster-centroid synthetic blocks whose
// name begins with 'x'.
func (d *Driver) Run(clusters []ClusterInput) (map[string][2]int, error) {
	if len(clusters) == 0 {
		return map[string][2]int{}, nil
	}

	sorted := append([]ClusterInput(nil), clusters...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].ID < sorted[j].ID })

	workers := d.workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > len(sorted) {
		workers = len(sorted)
	}
	if workers < 1 {
		workers = 1
	}

	sem := make(chan struct{}, workers)
	results := make([]clusterResult, len(sorted))
	var wg sync.WaitGroup

	for i, c := range sorted {
		i, c := i, c
		wg.Add(1)
		sem <- struct{}{}
		go func() {
			defer wg.Done()
			defer func() { <-sem }()
			results[i] = d.runOne(i, c)
		}()
	}
	wg.Wait()

	union := make(map[string][2]int)
	var firstErr error
	for _, r := range results {
		if r.err != nil {
			if firstErr == nil {
				firstErr = fmt.Errorf("multiplace: cluster %s: %w: %v", r.id, ErrClusterFailed, r.err)
			}
			continue
		}
		for blockID, pos := range r.result.Positions {
			name := r.result.Names[blockID]
			if strings.HasPrefix(name, "x") {
				continue
			}
			union[name] = pos
		}
	}
	if firstErr != nil {
		return nil, firstErr
	}
	return union, nil
}

// runOne builds and runs one cluster's detail.Placer with a seed derived
// deterministically from the base seed and the cluster's sorted index, so
// the whole pipeline stays a deterministic function of its inputs
// regardless of goroutine scheduling order.
func (d *Driver) runOne(index int, c ClusterInput) clusterResult {
	p, err := detail.NewPlacer(c.Blocks, c.Cells, c.Fixed, c.Groups, c.Nets, d.Cfg, detail.WithLogger(d.logger))
	if err != nil {
		return clusterResult{id: c.ID, err: err}
	}
	rng := prng.New(d.Cfg.Seed + int64(index))
	return clusterResult{id: c.ID, result: p.Place(rng)}
}
