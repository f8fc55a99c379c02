// glbpack packs a glTF scene description and all the external buffer and
// image files it references into a single binary GLB container.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/Faultbox/glbpack/internal/config"
	"github.com/Faultbox/glbpack/internal/logger"
	"github.com/Faultbox/glbpack/pkg/glb"
	"github.com/Faultbox/glbpack/pkg/gltf"
)

var (
	flagManifest = flag.String("manifest", "", "Pack a batch of files described by a yaml manifest")
	flagWorkers  = flag.Int("workers", 0, "Parallel jobs in manifest mode (0 = manifest value)")
	flagLogLevel = flag.String("log-level", "", "Log level: debug, info, warn, error")
	flagLogFile  = flag.String("log-file", "", "Also write logs to this file")
)

func main() {
	flag.Usage = printUsage
	flag.Parse()

	if *flagManifest != "" {
		os.Exit(runManifest(*flagManifest))
	}

	if flag.NArg() != 2 {
		printUsage()
		os.Exit(1)
	}

	log := newLogger(*flagLogLevel, *flagLogFile)
	defer log.Sync()

	if err := packFile(log, flag.Arg(0), flag.Arg(1)); err != nil {
		log.Error("pack failed", zap.String("input", flag.Arg(0)), zap.Error(err))
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Fprintln(os.Stderr, `glbpack - pack a glTF scene and its external files into a GLB container

Usage:
  glbpack [options] <input.gltf> <output.glb>
  glbpack [options] -manifest <pack.yaml>

Relative buffer and image URIs resolve against the input file's directory.

Options:
  -manifest <file>   Pack a batch of files described by a yaml manifest
  -workers <n>       Parallel jobs in manifest mode
  -log-level <lvl>   debug, info, warn or error
  -log-file <file>   Also write logs to this file

Examples:
  glbpack scene.gltf scene.glb
  glbpack -manifest assets/pack.yaml -workers 8`)
}

func newLogger(level, file string) *zap.Logger {
	return logger.New(logger.Options{Level: level, File: file})
}

func runManifest(path string) int {
	m, err := config.Load(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	// Flags override manifest settings.
	level := *flagLogLevel
	if level == "" {
		level = m.Logging.Level
	}
	file := *flagLogFile
	if file == "" {
		file = m.Logging.LogFile
	}
	log := newLogger(level, file)
	defer log.Sync()

	workers := *flagWorkers
	if workers <= 0 {
		workers = m.Workers
	}
	if workers > len(m.Jobs) && len(m.Jobs) > 0 {
		workers = len(m.Jobs)
	}

	// Each job owns an independent packer, so jobs only contend on the
	// output filesystem.
	jobs := make(chan config.Job)
	var failed atomic.Int64
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for job := range jobs {
				if err := packFile(log, job.Input, job.Output); err != nil {
					log.Error("pack failed",
						zap.String("input", job.Input), zap.Error(err))
					failed.Add(1)
				}
			}
		}()
	}
	for _, job := range m.Jobs {
		jobs <- job
	}
	close(jobs)
	wg.Wait()

	log.Info("batch complete",
		zap.Int("jobs", len(m.Jobs)), zap.Int64("failed", failed.Load()))
	if failed.Load() > 0 {
		return 1
	}
	return 0
}

func packFile(log *zap.Logger, input, output string) error {
	in, err := os.Open(input)
	if err != nil {
		return err
	}
	doc, err := gltf.Decode(in)
	in.Close()
	if err != nil {
		return err
	}

	packer := glb.NewPacker(doc, os.DirFS(filepath.Dir(input)))
	if err := packer.Pack(); err != nil {
		return err
	}
	for _, warn := range packer.Warnings() {
		log.Warn(warn, zap.String("input", input))
	}

	// Write to a temp file in the destination directory and rename on
	// success, so a failed pack never leaves a truncated .glb behind.
	tmp, err := os.CreateTemp(filepath.Dir(output), ".glbpack-*")
	if err != nil {
		return err
	}
	bw := bufio.NewWriter(tmp)
	n, err := packer.WriteTo(bw)
	if err == nil {
		err = bw.Flush()
	}
	if closeErr := tmp.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		os.Remove(tmp.Name())
		return err
	}
	if err := os.Rename(tmp.Name(), output); err != nil {
		os.Remove(tmp.Name())
		return err
	}

	log.Info("packed",
		zap.String("input", input),
		zap.String("output", output),
		zap.Int64("bytes", n))
	return nil
}
