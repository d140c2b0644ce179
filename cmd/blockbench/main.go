// Copyright ©2025 The Blockgrid Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command blockbench benchmarks the blockgrid kernels and records a JSON
// session file that compare runs can diff.
package main

import (
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/LynnColeArt/blockgrid"
	"github.com/LynnColeArt/blockgrid/internal/config"
)

var (
	configFile string
	output     string
	iterations int
	verbose    bool
	plot       bool

	logger *zap.Logger
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "blockbench",
		Short: "benchmark blockgrid kernels",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			zcfg := zap.NewProductionConfig()
			zcfg.Encoding = "console"
			zcfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
			if verbose {
				zcfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
			}
			var err error
			logger, err = zcfg.Build()
			return err
		},
	}
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run the kernel benchmark sweep",
		RunE:  runBench,
	}
	runCmd.Flags().StringVarP(&configFile, "config", "c", "", "benchmark config file (yaml)")
	runCmd.Flags().StringVarP(&output, "output", "o", "", "result file (overrides config)")
	runCmd.Flags().IntVarP(&iterations, "iterations", "n", 0, "iterations per size (overrides config)")
	runCmd.Flags().BoolVar(&plot, "plot", true, "render throughput graph")

	infoCmd := &cobra.Command{
		Use:   "info",
		Short: "print device and SIMD capability information",
		Run: func(cmd *cobra.Command, args []string) {
			dev := blockgrid.GetDevice()
			fmt.Printf("Device:   %s (id %d)\n", dev.Name, dev.ID)
			fmt.Printf("Cores:    %d (max %d threads)\n", dev.NumCores, dev.MaxThreads)
			fmt.Printf("Memory:   %.1f GB\n", float64(dev.TotalMem)/(1<<30))
			fmt.Printf("SIMD:     %s\n", blockgrid.CPUInfo())
		},
	}

	initCmd := &cobra.Command{
		Use:   "init [file]",
		Short: "write a default benchmark config",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return config.Save(args[0], config.DefaultConfig())
		},
	}

	rootCmd.AddCommand(runCmd, infoCmd, initCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runBench(cmd *cobra.Command, args []string) error {
	cfg := config.DefaultConfig()
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		cfg = loaded
		logger.Debug("Loaded config", zap.String("path", configFile))
	}
	if output != "" {
		cfg.Output = output
	}
	if iterations > 0 {
		cfg.Iterations = iterations
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	logger.Info("Starting benchmark sweep",
		zap.Int("sizes", len(cfg.Sizes)),
		zap.Int("iterations", cfg.Iterations))

	var collector blockgrid.BenchCollector
	throughput := make([]float64, 0, len(cfg.Sizes))

	for _, size := range cfg.Sizes {
		result, err := benchIndexMax(rng, size.ANumBlock, size.BNumBlock, cfg.Warmup, cfg.Iterations)
		if err != nil {
			return err
		}
		collector.Record(result)
		throughput = append(throughput, result.GBPerSec)
		logger.Info("Benchmarked",
			zap.String("name", result.Name),
			zap.Float64("ns_per_op", result.NsPerOp),
			zap.Float64("gb_per_sec", result.GBPerSec))

		segResult, err := benchSegmentMax(rng, size.ANumBlock*size.BNumBlock, cfg.Segments, cfg.Warmup, cfg.Iterations)
		if err != nil {
			return err
		}
		collector.Record(segResult)
		logger.Info("Benchmarked",
			zap.String("name", segResult.Name),
			zap.Float64("ns_per_op", segResult.NsPerOp),
			zap.Float64("gb_per_sec", segResult.GBPerSec))
	}

	if plot && len(throughput) > 1 {
		fmt.Println()
		fmt.Println(asciigraph.Plot(throughput,
			asciigraph.Height(10),
			asciigraph.Caption("IndexMax throughput (GB/s) by grid size")))
		fmt.Println()
	}

	if err := collector.WriteFile(cfg.Output); err != nil {
		return fmt.Errorf("writing results: %w", err)
	}
	logger.Info("Session written", zap.String("path", cfg.Output))
	return nil
}

func benchIndexMax(rng *rand.Rand, aNumBlock, bNumBlock, warmup, iterations int) (blockgrid.BenchResult, error) {
	n := aNumBlock * bNumBlock

	dVals, err := blockgrid.Malloc(n * 4)
	if err != nil {
		return blockgrid.BenchResult{}, err
	}
	defer blockgrid.Free(dVals)
	dIdx, err := blockgrid.Malloc(n * 4)
	if err != nil {
		return blockgrid.BenchResult{}, err
	}
	defer blockgrid.Free(dIdx)

	vals := dVals.Float32()
	idx := dIdx.Int32()
	for i := 0; i < n; i++ {
		vals[i] = rng.Float32()
		idx[i] = rng.Int31n(int32(n))
	}

	run := func() error {
		out, err := blockgrid.IndexMax(dVals, dIdx, aNumBlock, bNumBlock)
		if err != nil {
			return err
		}
		return blockgrid.Free(out)
	}

	for i := 0; i < warmup; i++ {
		if err := run(); err != nil {
			return blockgrid.BenchResult{}, err
		}
	}

	start := time.Now()
	for i := 0; i < iterations; i++ {
		if err := run(); err != nil {
			return blockgrid.BenchResult{}, err
		}
	}
	elapsed := time.Since(start)

	nsPerOp := float64(elapsed.Nanoseconds()) / float64(iterations)
	bytesPerOp := float64(n * 12) // two reads and one write per element
	return blockgrid.BenchResult{
		Name:     fmt.Sprintf("IndexMax/%dx%d", aNumBlock, bNumBlock),
		Elements: n,
		NsPerOp:  nsPerOp,
		GBPerSec: bytesPerOp / nsPerOp, // bytes/ns == GB/s
	}, nil
}

func benchSegmentMax(rng *rand.Rand, n, segments, warmup, iterations int) (blockgrid.BenchResult, error) {
	dVals, err := blockgrid.Malloc(n * 4)
	if err != nil {
		return blockgrid.BenchResult{}, err
	}
	defer blockgrid.Free(dVals)
	dIdx, err := blockgrid.Malloc(n * 4)
	if err != nil {
		return blockgrid.BenchResult{}, err
	}
	defer blockgrid.Free(dIdx)
	dOut, err := blockgrid.Malloc(segments * 4)
	if err != nil {
		return blockgrid.BenchResult{}, err
	}
	defer blockgrid.Free(dOut)

	vals := dVals.Float32()
	idx := dIdx.Int32()
	for i := 0; i < n; i++ {
		vals[i] = rng.Float32()
		idx[i] = rng.Int31n(int32(segments))
	}

	for i := 0; i < warmup; i++ {
		if err := blockgrid.SegmentMax(dVals, dIdx, n, segments, dOut); err != nil {
			return blockgrid.BenchResult{}, err
		}
	}

	start := time.Now()
	for i := 0; i < iterations; i++ {
		if err := blockgrid.SegmentMax(dVals, dIdx, n, segments, dOut); err != nil {
			return blockgrid.BenchResult{}, err
		}
	}
	elapsed := time.Since(start)

	nsPerOp := float64(elapsed.Nanoseconds()) / float64(iterations)
	bytesPerOp := float64(n * 8)
	return blockgrid.BenchResult{
		Name:     fmt.Sprintf("SegmentMax/%d", n),
		Elements: n,
		NsPerOp:  nsPerOp,
		GBPerSec: bytesPerOp / nsPerOp,
	}, nil
}
