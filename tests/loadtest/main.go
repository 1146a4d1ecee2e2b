package main

import (
	"flag"
	"fmt"
	"io"
	"math/rand"
	"net"
	"net/http"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/fatih/color"
	"github.com/montanaflynn/stats"
)

var (
	baseURL      = flag.String("url", "http://127.0.0.1:8050", "dashboard base URL")
	numWorkers   = flag.Int("workers", 50, "concurrent workers")
	testDuration = flag.Duration("duration", 10*time.Second, "duration of each phase")
	maxDistance  = flag.Int("max-distance", 30, "upper bound for min_distance filters")
)

var readEndpoints = []string{
	"/api/stats", "/api/monthly", "/api/cumulative", "/api/pace", "/api/calendar", "/api/recent",
}

var httpClient = &http.Client{
	Timeout: 5 * time.Second,
	Transport: &http.Transport{
		MaxIdleConns:        200,
		MaxIdleConnsPerHost: 200,
		IdleConnTimeout:     30 * time.Second,
		DialContext: (&net.Dialer{
			Timeout:   2 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
	},
}

type result struct {
	endpoint string
	status   int
	latency  time.Duration
	err      bool
}

type endpointStats struct {
	count     int64
	errors    int64
	latencies stats.Float64Data
}

func main() {
	flag.Parse()

	color.Cyan("=== RunDash Load Test ===")
	fmt.Printf("Workers: %d | Duration: %s | Target: %s\n\n", *numWorkers, *testDuration, *baseURL)

	fmt.Print("Waiting for server... ")
	for i := 0; i < 30; i++ {
		resp, err := httpClient.Get(*baseURL + "/health")
		if err == nil {
			io.Copy(io.Discard, resp.Body)
			resp.Body.Close()
			break
		}
		if i == 29 {
			color.Red("FAILED: server not responding")
			return
		}
		time.Sleep(200 * time.Millisecond)
	}
	color.Green("OK")

	// Distinct thresholds produce distinct cache keys.
	fmt.Println("\n--- Phase 1: Map filter sweep (GET /api/layers) ---")
	runPhase(*testDuration, func(rng *rand.Rand) result {
		return doGet("/api/layers", fmt.Sprintf("/api/layers?min_distance=%.1f", rng.Float64()*float64(*maxDistance)))
	})

	fmt.Println("\n--- Phase 2: Page load mix (page + every JSON endpoint) ---")
	runPhase(*testDuration, func(rng *rand.Rand) result {
		r := rng.Float64()
		switch {
		case r < 0.10:
			return doGet("/", "/")
		case r < 0.30:
			return doGet("/api/layers", fmt.Sprintf("/api/layers?min_distance=%d", rng.Intn(*maxDistance)))
		default:
			ep := readEndpoints[rng.Intn(len(readEndpoints))]
			return doGet(ep, ep)
		}
	})
}

func runPhase(duration time.Duration, workFn func(rng *rand.Rand) result) {
	results := make(chan result, 10000)
	var wg sync.WaitGroup
	var totalOps atomic.Int64
	stop := make(chan struct{})

	for i := 0; i < *numWorkers; i++ {
		wg.Add(1)
		go func(seed int64) {
			defer wg.Done()
			rng := rand.New(rand.NewSource(seed))
			for {
				select {
				case <-stop:
					return
				default:
					results <- workFn(rng)
					totalOps.Add(1)
				}
			}
		}(rand.Int63() + int64(i))
	}

	all := make(map[string]*endpointStats)
	done := make(chan struct{})
	go func() {
		for r := range results {
			s, ok := all[r.endpoint]
			if !ok {
				s = &endpointStats{}
				all[r.endpoint] = s
			}
			s.count++
			if r.err {
				s.errors++
			}
			s.latencies = append(s.latencies, float64(r.latency.Microseconds()))
		}
		close(done)
	}()

	time.Sleep(duration)
	close(stop)
	wg.Wait()
	close(results)
	<-done

	printResults(all, duration)
}

func printResults(all map[string]*endpointStats, duration time.Duration) {
	var totalOps, totalErrors int64

	endpoints := make([]string, 0, len(all))
	for ep := range all {
		endpoints = append(endpoints, ep)
	}
	sort.Strings(endpoints)

	fmt.Printf("\n  %-18s %8s %6s %10s %10s %10s %10s\n", "Endpoint", "Reqs", "Errs", "Avg", "P50", "P95", "P99")
	fmt.Println("  " + strings.Repeat("-", 84))

	for _, ep := range endpoints {
		s := all[ep]
		totalOps += s.count
		totalErrors += s.errors

		avg, _ := s.latencies.Mean()
		p50, _ := s.latencies.Percentile(50)
		p95, _ := s.latencies.Percentile(95)
		p99, _ := s.latencies.Percentile(99)

		fmt.Printf("  %-18s %8d %6d %10s %10s %10s %10s\n",
			ep, s.count, s.errors, fmtMicros(avg), fmtMicros(p50), fmtMicros(p95), fmtMicros(p99))
	}

	fmt.Println("  " + strings.Repeat("-", 84))
	if totalOps == 0 {
		color.Yellow("  No requests completed")
		return
	}
	summary := fmt.Sprintf("  Total: %d reqs | Errors: %d (%.1f%%) | RPS: %.0f",
		totalOps, totalErrors, float64(totalErrors)/float64(totalOps)*100, float64(totalOps)/duration.Seconds())
	if totalErrors > 0 {
		color.Yellow(summary)
	} else {
		color.Green(summary)
	}
}

func doGet(label, path string) result {
	start := time.Now()
	resp, err := httpClient.Get(*baseURL + path)
	lat := time.Since(start)
	if err != nil {
		return result{label, 0, lat, true}
	}
	io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
	return result{label, resp.StatusCode, lat, resp.StatusCode != http.StatusOK}
}

func fmtMicros(us float64) string {
	if us < 1000 {
		return fmt.Sprintf("%.0fus", us)
	}
	return fmt.Sprintf("%.1fms", us/1000.0)
}
