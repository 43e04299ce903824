// Command smoke probes a running API instance and reports per-endpoint
// status. Intended for post-deploy verification; non-zero exit when a
// critical target fails.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"
)

type target struct {
	Method   string `json:"method"`
	Path     string `json:"path"`
	Expect   int    `json:"expect"`
	Critical bool   `json:"critical"`
	Auth     bool   `json:"auth"`
}

type config struct {
	Targets []target `json:"targets"`
}

type probe struct {
	Target   target
	Status   int
	OK       bool
	Err      error
	Duration time.Duration
}

func main() {
	var (
		baseURL     string
		token       string
		targetsPath string
		timeout     time.Duration
	)

	flag.StringVar(&baseURL, "base", "http://localhost:8080", "API base URL")
	flag.StringVar(&token, "token", "", "Bearer token for authenticated targets")
	flag.StringVar(&targetsPath, "targets", filepath.Join("scripts", "smoke", "targets.json"), "Path to JSON targets file")
	flag.DurationVar(&timeout, "timeout", 5*time.Second, "HTTP client timeout")
	flag.Parse()

	targets, err := loadTargets(targetsPath)
	if err != nil {
		log.Fatalf("failed to load targets: %v", err)
	}

	client := &http.Client{Timeout: timeout}
	results := make([]probe, 0, len(targets))
	for _, tgt := range targets {
		results = append(results, run(client, baseURL, token, tgt))
	}

	criticalFailures := 0
	for _, r := range results {
		mark := "PASS"
		if !r.OK {
			mark = "FAIL"
			if r.Target.Critical {
				criticalFailures++
			}
		}
		detail := fmt.Sprintf("status=%d", r.Status)
		if r.Err != nil {
			detail = r.Err.Error()
		}
		fmt.Printf("%-4s %-6s %-50s %s (%s)\n", mark, r.Target.Method, r.Target.Path, detail, r.Duration.Round(time.Millisecond))
	}

	if criticalFailures > 0 {
		fmt.Printf("\n%d critical target(s) failed\n", criticalFailures)
		os.Exit(1)
	}
	fmt.Println("\nall critical targets passed")
}

func run(client *http.Client, baseURL, token string, tgt target) probe {
	start := time.Now()
	url := strings.TrimRight(baseURL, "/") + tgt.Path
	req, err := http.NewRequest(tgt.Method, url, nil)
	if err != nil {
		return probe{Target: tgt, Err: err, Duration: time.Since(start)}
	}
	if tgt.Auth && token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := client.Do(req)
	if err != nil {
		return probe{Target: tgt, Err: err, Duration: time.Since(start)}
	}
	defer resp.Body.Close() //nolint:errcheck

	expect := tgt.Expect
	if expect == 0 {
		expect = http.StatusOK
	}
	return probe{
		Target:   tgt,
		Status:   resp.StatusCode,
		OK:       resp.StatusCode == expect,
		Duration: time.Since(start),
	}
}

func loadTargets(path string) ([]target, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg config
	if err := json.Unmarshal(raw, &cfg); err != nil {
		return nil, fmt.Errorf("parse targets: %w", err)
	}
	if len(cfg.Targets) == 0 {
		return nil, fmt.Errorf("no targets defined in %s", path)
	}
	return cfg.Targets, nil
}
