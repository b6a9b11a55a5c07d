package engine

import (
	"os"
	"path/filepath"
	"testing"
)

func writeRosterFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "rosters.json")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadRosters(t *testing.T) {
	rosters, err := LoadRosters("../../../configs/rosters.json")
	if err != nil {
		t.Fatalf("load shipped rosters: %v", err)
	}
	if len(rosters) < 2 {
		t.Fatalf("only %d rosters shipped", len(rosters))
	}
	for _, r := range rosters {
		if len(r.Champions) != 5 {
			t.Fatalf("team %s fielded %d champions", r.Team, len(r.Champions))
		}
	}
}

func TestLoadRostersRejectsBadInput(t *testing.T) {
	cases := map[string]string{
		"empty team name": `[{"team":"","champions":[{"name":"X","role":"MID","health":1000}]}]`,
		"no champions":    `[{"team":"A","champions":[]}]`,
		"empty champion":  `[{"team":"A","champions":[{"name":"","role":"MID","health":1000}]}]`,
		"zero health":     `[{"team":"A","champions":[{"name":"X","role":"MID","health":0}]}]`,
		"skill range":     `[{"team":"A","champions":[{"name":"X","role":"MID","health":1000,"mechanics":1.5}]}]`,
		"not json":        `{{{`,
	}
	for name, body := range cases {
		if _, err := LoadRosters(writeRosterFile(t, body)); err == nil {
			t.Errorf("%s: accepted", name)
		}
	}
}
