package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"runtime/pprof"
	"time"

	"github.com/xaanimus/xsray/pkg/loaders"
	"github.com/xaanimus/xsray/pkg/renderer"
)

func main() {
	workers := flag.Int("workers", 0, "Number of parallel tile workers (0 = auto-detect CPU count)")
	cpuProfile := flag.String("cpuprofile", "", "Write CPU profile to file")
	flag.Usage = showHelp
	flag.Parse()

	if flag.NArg() != 1 {
		showHelp()
		os.Exit(1)
	}
	scenePath := flag.Arg(0)

	if *cpuProfile != "" {
		f, err := os.Create(*cpuProfile)
		if err != nil {
			fmt.Printf("Could not create CPU profile: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			fmt.Printf("Could not start CPU profile: %v\n", err)
			os.Exit(1)
		}
		defer pprof.StopCPUProfile()
	}

	if err := run(scenePath, *workers); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
}

func run(scenePath string, workers int) error {
	logger := log.New(os.Stderr, "", log.LstdFlags)

	spec, err := loaders.LoadSceneSpec(scenePath)
	if err != nil {
		return err
	}

	buildStart := time.Now()
	_, r, err := loaders.Build(spec, filepath.Dir(scenePath), logger)
	if err != nil {
		return err
	}
	r.SetWorkers(workers)
	fmt.Printf("Scene built in %v\n", time.Since(buildStart))

	renderStart := time.Now()
	buffer, stats := r.Render()
	fmt.Printf("Render completed in %v (%d pixels, %d samples)\n",
		time.Since(renderStart), stats.TotalPixels, stats.TotalSamples)

	postStart := time.Now()
	img := renderer.ToImage(buffer, r.Settings())
	outputPath := scenePath + ".png"
	if err := loaders.WritePNG(outputPath, img); err != nil {
		return err
	}
	fmt.Printf("Post processing and write took %v\n", time.Since(postStart))
	fmt.Printf("Render saved as %s\n", outputPath)
	return nil
}

func showHelp() {
	fmt.Println("xsray - offline Monte-Carlo path tracer")
	fmt.Println("Usage: xsray [options] <scene-file>")
	fmt.Println()
	fmt.Println("The rendered image is written next to the scene file as <scene-file>.png.")
	fmt.Println("Scene files are YAML (.yaml/.yml) or JSON (.json).")
	fmt.Println()
	fmt.Println("Options:")
	flag.PrintDefaults()
}
