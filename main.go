package main

import (
	"log"
	"os"
	"runtime/pprof"

	"github.com/joho/godotenv"
	"github.com/lumipallolabs/imagedive/internal/cli"
)

func main() {
	// IMAGEDIVE_* settings may come from a .env in the working directory
	_ = godotenv.Load()

	// Enable CPU profiling if CPUPROFILE env var is set
	if cpuProfile := os.Getenv("CPUPROFILE"); cpuProfile != "" {
		f, err := os.Create(cpuProfile)
		if err != nil {
			log.Fatal("could not create CPU profile: ", err)
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			log.Fatal("could not start CPU profile: ", err)
		}
		defer pprof.StopCPUProfile()
		log.Printf("CPU profiling enabled, writing to %s", cpuProfile)
	}

	if err := run(); err != nil {
		os.Exit(1)
	}
}

// run executes the root command; cobra reports the error itself
func run() error {
	return cli.NewRootCommand().Execute()
}
