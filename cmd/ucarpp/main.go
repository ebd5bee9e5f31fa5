package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/lintang-b-s/ucarpp/pkg"
	"github.com/lintang-b-s/ucarpp/pkg/instance"
	"github.com/lintang-b-s/ucarpp/pkg/logger"
	"github.com/lintang-b-s/ucarpp/pkg/metrics"
	"github.com/lintang-b-s/ucarpp/pkg/report"
	"github.com/lintang-b-s/ucarpp/pkg/solver"
	"github.com/lintang-b-s/ucarpp/pkg/util"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var (
	vehicles    = flag.Int("vehicles", 1, "number of vehicles")
	strategy    = flag.String("strategy", pkg.STRATEGY_VNS, "search strategy: VNS, VND, VNASD[n] or VNAASD[n]")
	repetition  = flag.Int("repetition", 0, "rounds of VNASD/VNAASD (0 = SEARCH_REPETITION)")
	iterations  = flag.Int("iterations", 0, "iteration budget (0 = SEARCH_ITERATIONS)")
	seed        = flag.Uint64("seed", 0, "random seed (0 = SEARCH_SEED)")
	starts      = flag.Int("starts", 1, "independent searches per instance, the best one is reported")
	workers     = flag.Int("workers", 0, "multi-start worker goroutines (0 = GOMAXPROCS)")
	parallel    = flag.Int("parallel", 2, "instance files solved concurrently")
	modified    = flag.Bool("modified", false, "solve the modified instances: capacity 30, time limit 40")
	format      = flag.String("format", report.FORMAT_TEXT, "report format: text, yaml or json")
	outDir      = flag.String("out", "", "directory for report files (stdout when empty)")
	progressDir = flag.String("progress", "", "directory for per-instance convergence logs")
	metricsOut  = flag.String("metrics_out", "", "write prometheus metrics to this textfile when done")
	configDir   = flag.String("config", ".", "directory containing config.{yaml,json,toml} and .env")
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage:\n\tucarpp [flags] instance.dat[.bz2] ...\n")
		flag.PrintDefaults()
	}
	flag.Parse()
	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(1)
	}

	if err := util.LoadEnv(filepath.Join(*configDir, ".env")); err != nil {
		panic(err)
	}
	if err := util.ReadConfig(*configDir); err != nil {
		panic(err)
	}
	logger, err := logger.New()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	params := solver.ParamsFromViper()
	if *iterations > 0 {
		params.Iterations = *iterations
	}
	if *seed > 0 {
		params.Seed = *seed
	}
	if *repetition <= 0 {
		*repetition = params.Repetition
	}

	reg := prometheus.NewRegistry()
	searchMetrics, err := metrics.NewSearchMetrics(reg)
	if err != nil {
		panic(err)
	}

	reports := make([]*report.Report, flag.NArg())
	g := new(errgroup.Group)
	g.SetLimit(*parallel)
	for i, filename := range flag.Args() {
		g.Go(func() error {
			rep, err := solveFile(filename, params, searchMetrics, logger)
			if err != nil {
				return fmt.Errorf("%s: %w", filename, err)
			}
			reports[i] = rep
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		logger.Error("solving failed", zap.Error(err))
		os.Exit(1)
	}

	for _, rep := range reports {
		if err := writeReport(rep); err != nil {
			logger.Error("cannot write report", zap.String("instance", rep.Instance), zap.Error(err))
			os.Exit(1)
		}
	}

	if *metricsOut != "" {
		if err := metrics.WriteToFile(*metricsOut, reg); err != nil {
			logger.Error("cannot write metrics", zap.Error(err))
			os.Exit(1)
		}
	}
}

func solveFile(filename string, params solver.Params, searchMetrics *metrics.SearchMetrics,
	logger *zap.Logger) (*report.Report, error) {
	inst, err := instance.ReadInstance(filename)
	if err != nil {
		return nil, err
	}
	if *modified {
		inst.Modified()
	}
	graph, err := inst.BuildGraph()
	if err != nil {
		return nil, err
	}

	logger = logger.With(zap.String("instance", inst.Name))
	logger.Info("instance loaded", zap.Int("vertices", graph.NumberOfVertices()),
		zap.Int("edges", len(inst.Edges)), zap.Int("closure_edges", graph.NumberOfEdges()-len(inst.Edges)),
		zap.Int("capacity", inst.Capacity), zap.Int("time_limit", inst.TimeLimit))

	opts := []solver.Option{solver.WithMetrics(searchMetrics)}
	if *progressDir != "" {
		f, err := os.Create(filepath.Join(*progressDir, runName(inst.Name)+".progress"))
		if err != nil {
			return nil, err
		}
		defer f.Close()
		opts = append(opts, solver.WithProgress(f))
	}

	res, err := solver.SolveMultiStart(graph, inst.Depot, *vehicles, inst.Limits(), params, logger, *strategy,
		*repetition, *starts, *workers, opts...)
	if err != nil {
		return nil, err
	}

	return report.New(res.Best, report.Meta{
		Instance: inst.Name,
		RunID:    res.RunID,
		Strategy: *strategy,
		Seed:     res.Seed,
	}), nil
}

// runName names output files after the instance, the fleet size, the strategy and the variant,
// e.g. "gdb1.3.VNS.ORG".
func runName(instanceName string) string {
	variant := "ORG"
	if *modified {
		variant = "MDF"
	}
	name := strings.TrimSuffix(filepath.Base(instanceName), ".dat")
	return fmt.Sprintf("%s.%d.%s.%s", name, *vehicles, strings.ToUpper(*strategy), variant)
}

func writeReport(rep *report.Report) error {
	if *outDir == "" {
		return rep.Write(os.Stdout, *format)
	}
	f, err := os.Create(filepath.Join(*outDir, runName(rep.Instance)+"."+*format))
	if err != nil {
		return err
	}
	defer f.Close()
	return rep.Write(f, *format)
}
