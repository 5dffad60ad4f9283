package main

import (
	"fmt"
	"io"
	"time"

	"pine/internal/buildpipeline"
)

func printStageTimings(out io.Writer, timings buildpipeline.Timings) {
	if out == nil {
		return
	}
	var total time.Duration
	for _, stage := range buildpipeline.Stages {
		if !timings.Has(stage) {
			continue
		}
		d := timings.Duration(stage)
		total += d
		fmt.Fprintf(out, "%-8s %8.1f ms\n", stage, toMillis(d))
	}
	if total > 0 {
		fmt.Fprintf(out, "%-8s %8.1f ms\n", "total", toMillis(total))
	}
}

func toMillis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
