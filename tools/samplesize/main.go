// Command samplesize computes the per-group sample size needed to detect
// a latency shift between the stable and canary variants with a
// two-sample t-test, using the normal approximation
//
//	n = ((z_{1-alpha/2} + z_{power}) / d)^2
//
// where d is Cohen's effect size (mean difference over standard
// deviation). The defaults target a 10ms shift with sd 15ms at alpha
// 0.05 and 80% power.
package main

import (
	"flag"
	"fmt"
	"math"
	"os"

	"gonum.org/v1/gonum/stat/distuv"
)

func main() {
	meanDiff := flag.Float64("mean-diff", 10.0, "Detectable mean latency difference in ms")
	stdDev := flag.Float64("std-dev", 15.0, "Assumed latency standard deviation in ms")
	alpha := flag.Float64("alpha", 0.05, "Significance level (two-sided)")
	power := flag.Float64("power", 0.8, "Target statistical power")
	flag.Parse()

	if *stdDev <= 0 || *meanDiff <= 0 {
		fmt.Fprintln(os.Stderr, "mean-diff and std-dev must be positive")
		os.Exit(1)
	}
	if *alpha <= 0 || *alpha >= 1 || *power <= 0 || *power >= 1 {
		fmt.Fprintln(os.Stderr, "alpha and power must be in (0, 1)")
		os.Exit(1)
	}

	n := sampleSize(*meanDiff / *stdDev, *alpha, *power)

	fmt.Printf("Effect size (Cohen's d): %.3f\n", *meanDiff / *stdDev)
	fmt.Printf("Minimum sample size required per group: %d\n", n)
}

// sampleSize returns ceil(((z_{1-alpha/2} + z_{power}) / d)^2)
func sampleSize(effectSize, alpha, power float64) int {
	normal := distuv.Normal{Mu: 0, Sigma: 1}

	zAlpha := normal.Quantile(1 - alpha/2)
	zPower := normal.Quantile(power)

	n := math.Pow((zAlpha+zPower)/effectSize, 2)

	return int(math.Ceil(n))
}
