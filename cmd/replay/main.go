// Command replay verifies an archived match: it re-simulates from the
// archived seed and rosters and requires the regenerated event log to be
// byte-identical to the stored one.
package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"riftcast.gg/internal/persistence/archive"
	"riftcast.gg/internal/sim/catalogs"
	"riftcast.gg/internal/sim/engine"
	"riftcast.gg/internal/sim/tuning"
)

func main() {
	var (
		archivePath = flag.String("archive", "", "path to match-*.jsonl.zst")
		configDir   = flag.String("configs", "./configs", "config directory")
		tuningPath  = flag.String("tuning", "", "tuning file (default: <configs>/tuning.yaml)")
	)
	flag.Parse()

	if *archivePath == "" {
		fmt.Fprintln(os.Stderr, "missing -archive")
		os.Exit(2)
	}

	stored, err := archive.Read(*archivePath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "read archive:", err)
		os.Exit(1)
	}
	fmt.Printf("archive v%d match=%s seed=%s teams=%s/%s events=%d\n",
		stored.Header.Version, stored.Header.MatchID, stored.Header.Seed,
		stored.Header.Rosters[0].Team, stored.Header.Rosters[1].Team, len(stored.Events))

	cats, err := catalogs.Load(*configDir)
	if err != nil {
		fmt.Fprintln(os.Stderr, "load catalogs:", err)
		os.Exit(1)
	}

	tp := strings.TrimSpace(*tuningPath)
	if tp == "" {
		tp = filepath.Join(*configDir, "tuning.yaml")
	}
	tune, err := tuning.Load(tp)
	if err != nil {
		fmt.Fprintln(os.Stderr, "load tuning:", err)
		os.Exit(1)
	}

	m, err := engine.NewMatch(stored.Header.MatchID, stored.Header.Seed, stored.Header.Rosters, tune, cats)
	if err != nil {
		fmt.Fprintln(os.Stderr, "rebuild match:", err)
		os.Exit(1)
	}
	m.RunToCompletion()

	regen := m.Log().Events()
	if len(regen) != len(stored.Events) {
		fmt.Fprintf(os.Stderr, "event count mismatch: stored=%d regenerated=%d\n", len(stored.Events), len(regen))
		os.Exit(1)
	}
	for i := range regen {
		want, _ := json.Marshal(stored.Events[i])
		got, _ := json.Marshal(regen[i])
		if !bytes.Equal(want, got) {
			fmt.Fprintf(os.Stderr, "event %d mismatch:\n  stored:      %s\n  regenerated: %s\n", i, want, got)
			os.Exit(1)
		}
	}

	fmt.Printf("replay ok: %d events byte-identical (ticks=%d winner=%d)\n",
		len(regen), m.Result().Ticks, m.Result().Winner)
}
