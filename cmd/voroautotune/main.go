// Command voroautotune searches (nx, ny) block-grid dimensions for a
// voro2d.Config that minimize occupancy imbalance across blocks for a given
// particle set, using gonum's CMA-ES search (optimize.CmaEsChol).
package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"

	"gonum.org/v1/gonum/optimize"

	"github.com/haldane-labs/voro2d/config"
)

func main() {
	configPath := flag.String("config", "", "base config YAML file (empty = use defaults)")
	pointCount := flag.Int("points", 20000, "number of synthetic uniform points to seed the search with")
	seed := flag.Int64("seed", 42, "RNG seed for the synthetic point set")
	maxEvals := flag.Int("max-evals", 60, "maximum number of evaluations")
	gridMax := flag.Int("grid-max", 128, "upper bound on nx and ny during search")
	outputDir := flag.String("output", "", "output directory for results")
	flag.Parse()

	if *outputDir == "" {
		log.Fatal("--output is required")
	}
	if err := os.MkdirAll(*outputDir, 0755); err != nil {
		log.Fatalf("failed to create output directory: %v", err)
	}

	if err := config.Init(*configPath); err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	baseCfg := config.Cfg()
	containerCfg := baseCfg.ToContainerConfig()

	points := SyntheticPoints(containerCfg, *pointCount, *seed)
	evaluator := NewFitnessEvaluator(containerCfg, points, baseCfg.NumberThread)

	params := NewParamVector(*gridMax)
	dim := params.Dim()
	initX := params.Normalize(params.DefaultVector())

	problem := optimize.Problem{
		Func: func(x []float64) float64 {
			raw := params.Clamp(params.Denormalize(x))
			return evaluator.Evaluate(raw)
		},
	}

	settings := &optimize.Settings{
		FuncEvaluations: *maxEvals,
		Concurrent:      0,
	}
	method := &optimize.CmaEsChol{
		InitStepSize: 0.3,
		Population:   4 + int(3.0*float64(dim)/2.0),
	}

	logPath := filepath.Join(*outputDir, "autotune_log.csv")
	logFile, err := os.Create(logPath)
	if err != nil {
		log.Fatalf("failed to create log file: %v", err)
	}
	defer logFile.Close()

	logWriter := csv.NewWriter(logFile)
	defer logWriter.Flush()
	logWriter.Write([]string{"eval", "cv", "nx", "ny"})

	evalCount := 0
	bestCV := float64(1e9)
	var bestParams []float64

	originalFunc := problem.Func
	problem.Func = func(x []float64) float64 {
		cv := originalFunc(x)
		evalCount++

		raw := params.Clamp(params.Denormalize(x))
		if cv < bestCV {
			bestCV = cv
			bestParams = make([]float64, len(raw))
			copy(bestParams, raw)
		}

		logWriter.Write([]string{
			strconv.Itoa(evalCount),
			fmt.Sprintf("%.6f", cv),
			strconv.Itoa(int(raw[0])),
			strconv.Itoa(int(raw[1])),
		})
		logWriter.Flush()

		fmt.Printf("eval %d/%d: nx=%d ny=%d cv=%.4f (best=%.4f)\n",
			evalCount, *maxEvals, int(raw[0]), int(raw[1]), cv, bestCV)
		return cv
	}

	fmt.Printf("searching nx,ny in [1,%d] over %d points, max_evals=%d\n", *gridMax, *pointCount, *maxEvals)

	result, err := optimize.Minimize(problem, initX, settings, method)
	if err != nil {
		log.Printf("optimization ended: %v", err)
	}
	if bestParams == nil {
		bestParams = params.Clamp(params.Denormalize(result.X))
	}

	fmt.Printf("\nbest: nx=%d ny=%d cv=%.4f\n", int(bestParams[0]), int(bestParams[1]), bestCV)

	bestCfg, _ := config.Load(*configPath)
	bestCfg.Grid.NX = int(bestParams[0])
	bestCfg.Grid.NY = int(bestParams[1])

	outPath := filepath.Join(*outputDir, "best_config.yaml")
	if err := bestCfg.WriteYAML(outPath); err != nil {
		log.Printf("failed to write best config: %v", err)
	} else {
		fmt.Printf("best config saved to: %s\n", outPath)
	}
}
