package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"riftcast.gg/internal/persistence/archive"
	"riftcast.gg/internal/persistence/matchdb"
	"riftcast.gg/internal/protocol"
	"riftcast.gg/internal/sim/catalogs"
	"riftcast.gg/internal/sim/engine"
	"riftcast.gg/internal/sim/rng"
	"riftcast.gg/internal/sim/runner"
	"riftcast.gg/internal/sim/tuning"
	"riftcast.gg/internal/transport/ws"
)

func main() {
	var (
		addr        = flag.String("addr", ":8080", "http listen address")
		configDir   = flag.String("configs", "./configs", "config directory")
		dataDir     = flag.String("data", "./data", "runtime data directory")
		rostersPath = flag.String("rosters", "", "rosters file (default: <configs>/rosters.json)")
		tuningPath  = flag.String("tuning", "", "tuning file (default: <configs>/tuning.yaml)")
		seed        = flag.String("seed", "", "schedule seed (default: derived from start time)")
		matches     = flag.Int("matches", 0, "number of matches to play (0 = run until stopped)")
		pauseSec    = flag.Int("pause", 10, "seconds between matches")
		disableDB   = flag.Bool("disable_db", false, "disable the sqlite match index")
	)
	flag.Parse()

	logger := log.New(os.Stdout, "[server] ", log.LstdFlags|log.Lmicroseconds)

	cats, err := catalogs.Load(*configDir)
	if err != nil {
		logger.Fatalf("load catalogs: %v", err)
	}

	tp := strings.TrimSpace(*tuningPath)
	if tp == "" {
		tp = filepath.Join(*configDir, "tuning.yaml")
	}
	tune, err := tuning.Load(tp)
	if err != nil {
		if os.IsNotExist(err) {
			logger.Printf("tuning not found (%s); using defaults", tp)
			tune = tuning.Defaults()
		} else {
			logger.Fatalf("load tuning: %v", err)
		}
	}

	rp := strings.TrimSpace(*rostersPath)
	if rp == "" {
		rp = filepath.Join(*configDir, "rosters.json")
	}
	rosters, err := engine.LoadRosters(rp)
	if err != nil {
		logger.Fatalf("load rosters: %v", err)
	}
	if len(rosters) < 2 {
		logger.Fatalf("need at least 2 rosters, have %d", len(rosters))
	}

	var db *matchdb.DB
	if !*disableDB {
		db, err = matchdb.Open(filepath.Join(*dataDir, "index", "matches.db"))
		if err != nil {
			logger.Fatalf("open match index: %v", err)
		}
		defer db.Close()
	}

	scheduleSeed := strings.TrimSpace(*seed)
	if scheduleSeed == "" {
		scheduleSeed = fmt.Sprintf("riftcast-%d", time.Now().UnixNano())
	}
	logger.Printf("schedule seed: %s", scheduleSeed)

	wsServer := ws.NewServer(logger, protocol.CatalogDigests{
		Items:      cats.Items.Digest,
		BuildPaths: cats.BuildPaths.Digest,
		Weathers:   cats.Weathers.Digest,
	}, tune.TickRateHz)

	mux := http.NewServeMux()
	mux.HandleFunc("/v1/ws", wsServer.Handler())
	mux.HandleFunc("/v1/matches", listMatches(db))
	mux.HandleFunc("/v1/matches/", getMatch(db))
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	httpSrv := &http.Server{Addr: *addr, Handler: mux}
	go func() {
		logger.Printf("listening on %s", *addr)
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("http: %v", err)
		}
	}()

	ctx, cancel := context.WithCancel(context.Background())
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sig
		logger.Printf("shutting down")
		cancel()
	}()

	playMatches(ctx, logger, playConfig{
		Seed:     scheduleSeed,
		Matches:  *matches,
		Pause:    time.Duration(*pauseSec) * time.Second,
		DataDir:  *dataDir,
		Tune:     tune,
		Catalogs: cats,
		Rosters:  rosters,
		WSServer: wsServer,
		DB:       db,
	})

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	_ = httpSrv.Shutdown(shutdownCtx)
}

type playConfig struct {
	Seed     string
	Matches  int
	Pause    time.Duration
	DataDir  string
	Tune     tuning.Tuning
	Catalogs *catalogs.Catalogs
	Rosters  []engine.Roster
	WSServer *ws.Server
	DB       *matchdb.DB
}

// playMatches runs a seeded schedule of live matches until the count is
// reached or ctx is canceled. The schedule stream only picks pairings; each
// match gets its own seed so any single match can be re-simulated alone.
func playMatches(ctx context.Context, logger *log.Logger, cfg playConfig) {
	schedule := rng.New(cfg.Seed)

	for n := 1; cfg.Matches == 0 || n <= cfg.Matches; n++ {
		if ctx.Err() != nil {
			return
		}

		pick := schedule.Fork(fmt.Sprintf("pairing:%d", n))
		i := pick.IntN(len(cfg.Rosters))
		j := pick.IntN(len(cfg.Rosters) - 1)
		if j >= i {
			j++
		}

		matchID := fmt.Sprintf("m_%s_%d", time.Now().UTC().Format("20060102"), n)
		matchSeed := fmt.Sprintf("%s/%d", cfg.Seed, n)
		rosters := [2]engine.Roster{cfg.Rosters[i], cfg.Rosters[j]}

		m, err := engine.NewMatch(matchID, matchSeed, rosters, cfg.Tune, cfg.Catalogs)
		if err != nil {
			logger.Printf("match %s: %v", matchID, err)
			return
		}

		run := runner.New(m, cfg.Tune.TickRateHz)
		cfg.WSServer.SetMatch(run)
		logger.Printf("match %s: %s vs %s (seed %s)", matchID, rosters[0].Team, rosters[1].Team, matchSeed)

		res := run.Run(ctx)
		if res == nil {
			return
		}
		logger.Printf("match %s: winner=%s reason=%s ticks=%d events=%d",
			matchID, res.Teams[res.Winner].Name, res.Reason, res.Ticks, m.Log().Len())

		storeMatch(logger, cfg, m, res, rosters)

		if ctx.Err() != nil {
			return
		}
		select {
		case <-ctx.Done():
			return
		case <-time.After(cfg.Pause):
		}
	}
}

func storeMatch(logger *log.Logger, cfg playConfig, m *engine.Match, res *engine.Result, rosters [2]engine.Roster) {
	path, err := archive.Write(filepath.Join(cfg.DataDir, "matches"), archive.Match{
		Header: archive.Header{
			MatchID: m.ID,
			Seed:    m.Seed,
			Rosters: rosters,
		},
		Events: m.Log().Events(),
		Result: res,
	})
	if err != nil {
		logger.Printf("archive %s: %v", m.ID, err)
		return
	}

	if cfg.DB == nil {
		return
	}
	err = cfg.DB.Insert(context.Background(), matchdb.Row{
		ID:          m.ID,
		Seed:        m.Seed,
		TeamA:       res.Teams[0].Name,
		TeamB:       res.Teams[1].Name,
		Winner:      res.Winner,
		Reason:      res.Reason,
		Ticks:       res.Ticks,
		KillsA:      res.Teams[0].Kills,
		KillsB:      res.Teams[1].Kills,
		GoldA:       res.Teams[0].Gold,
		GoldB:       res.Teams[1].Gold,
		EventCount:  m.Log().Len(),
		ArchivePath: path,
		FinishedAt:  time.Now(),
	})
	if err != nil {
		logger.Printf("index %s: %v", m.ID, err)
	}
}

func listMatches(db *matchdb.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if db == nil {
			http.Error(w, "index disabled", http.StatusServiceUnavailable)
			return
		}
		rows, err := db.ListRecent(r.Context(), 50)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		writeJSON(w, rows)
	}
}

func getMatch(db *matchdb.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if db == nil {
			http.Error(w, "index disabled", http.StatusServiceUnavailable)
			return
		}
		id := strings.TrimPrefix(r.URL.Path, "/v1/matches/")
		if id == "" {
			http.Error(w, "missing match id", http.StatusBadRequest)
			return
		}
		row, err := db.Get(r.Context(), id)
		if err == matchdb.ErrNotFound {
			http.Error(w, "not found", http.StatusNotFound)
			return
		}
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		writeJSON(w, row)
	}
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}
