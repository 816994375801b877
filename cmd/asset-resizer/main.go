package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"time"

	"github.com/ytget/asset-resizer/internal/config"
	"github.com/ytget/asset-resizer/internal/export"
	"github.com/ytget/asset-resizer/internal/model"
	"github.com/ytget/asset-resizer/internal/platform"
)

// Version is set during build via -ldflags "-X main.version=X.Y.Z"
var version = "dev"

func main() {
	jobPath := flag.String("job", "", "YAML job file")
	src := flag.String("src", "", "source folder")
	dest := flag.String("dest", "", "destination folder")
	ios := flag.String("ios", "", "comma-separated iOS scale factors, e.g. 3,2,1")
	android := flag.String("android", "", "comma-separated Android scale factors, e.g. 4,3,2,1.5,1")
	interp := flag.String("interp", "", "interpolation kernel")
	quality := flag.Int("quality", 0, "JPEG quality (1-100)")
	dryRun := flag.Bool("dry-run", false, "print planned files without writing")
	flag.Parse()

	fmt.Printf("Asset Resizer v%s\n", version)

	job, err := buildJobFile(*jobPath, *src, *dest, *ios, *android, *interp, *quality)
	if err != nil {
		log.Fatalf("Invalid arguments: %v", err)
	}

	if err := run(job, *dryRun); err != nil {
		var validation *export.ValidationError
		if errors.As(err, &validation) {
			log.Fatalf("Nothing exported: %v", err)
		}
		log.Fatalf("Export failed: %v", err)
	}
}

// buildJobFile loads the job file if given and lets flags override its fields
func buildJobFile(path, src, dest, ios, android, interp string, quality int) (*config.JobFile, error) {
	job := &config.JobFile{}
	if path != "" {
		loaded, err := config.LoadJobFile(path)
		if err != nil {
			return nil, err
		}
		job = loaded
	}

	if src != "" {
		job.Source = src
	}
	if dest != "" {
		job.Destination = dest
	}
	if ios != "" {
		scales, err := parseScales(ios)
		if err != nil {
			return nil, fmt.Errorf("-ios: %w", err)
		}
		job.IOS = scales
	}
	if android != "" {
		scales, err := parseScales(android)
		if err != nil {
			return nil, fmt.Errorf("-android: %w", err)
		}
		job.Android = scales
	}
	if interp != "" {
		job.Interpolation = interp
	}
	if quality != 0 {
		job.JPEGQuality = quality
	}

	return job, job.Validate()
}

// parseScales parses "3,2,1.5"
func parseScales(list string) ([]float64, error) {
	var scales []float64
	for _, field := range strings.Split(list, ",") {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		value, err := strconv.ParseFloat(field, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid scale factor %q", field)
		}
		scales = append(scales, value)
	}
	return scales, nil
}

// run lists the source folder and exports, or prints the plan for a dry run
func run(jobFile *config.JobFile, dryRun bool) error {
	var files []string
	if jobFile.Source != "" {
		listed, err := platform.ListSourceImages(jobFile.Source)
		if err != nil {
			return err
		}
		files = listed
	}

	job := jobFile.ExportJob(files)
	runner := export.NewOptionsRunner(jobFile)

	if dryRun {
		return printPlan(job)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	sink := export.SinkFuncs{
		OnProgress: func(completed, total int) {
			fmt.Printf("\r[%d/%d]", completed, total)
		},
		OnDone: func() {
			fmt.Println()
			fmt.Println("Done")
		},
	}
	return runner.Run(ctx, job, sink)
}

// printPlan prints every file an export would write
func printPlan(job *model.ExportJob) error {
	tasks, err := export.Plan(export.ExportRoot(job.DestinationRoot, time.Now()), job)
	if err != nil {
		return err
	}
	for _, task := range tasks {
		fmt.Printf("%s\t%s\n", task, task.DestinationPath)
	}
	fmt.Printf("%d files\n", len(tasks))
	return nil
}
