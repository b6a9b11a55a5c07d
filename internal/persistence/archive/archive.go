// Package archive persists finished matches as zstd-compressed JSONL: one
// header line (seed + rosters, everything needed to re-simulate), one line
// per event in log order, and one result line. A consumer that folds the
// event lines in order reconstructs the same derived state the live feed
// produced.
package archive

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/zstd"

	"riftcast.gg/internal/sim/engine"
)

type Header struct {
	Version int              `json:"version"`
	MatchID string           `json:"match_id"`
	Seed    string           `json:"seed"`
	Rosters [2]engine.Roster `json:"rosters"`
}

type Match struct {
	Header Header
	Events []engine.Event
	Result *engine.Result
}

type line struct {
	Header *Header        `json:"header,omitempty"`
	Event  *engine.Event  `json:"event,omitempty"`
	Result *engine.Result `json:"result,omitempty"`
}

func Path(dir, matchID string) string {
	return filepath.Join(dir, "match-"+matchID+".jsonl.zst")
}

// Write stores one finished match. The file is written whole; there is no
// append path because a match archive is immutable once the match ended.
func Write(dir string, m Match) (string, error) {
	if m.Header.MatchID == "" {
		return "", fmt.Errorf("archive: empty match id")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	path := Path(dir, m.Header.MatchID)

	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	enc, err := zstd.NewWriter(f, zstd.WithEncoderLevel(zstd.SpeedFastest))
	if err != nil {
		_ = f.Close()
		return "", err
	}
	w := bufio.NewWriter(enc)

	writeLine := func(v line) error {
		b, err := json.Marshal(v)
		if err != nil {
			return err
		}
		if _, err := w.Write(b); err != nil {
			return err
		}
		return w.WriteByte('\n')
	}

	hdr := m.Header
	hdr.Version = 1
	if err := writeLine(line{Header: &hdr}); err != nil {
		_ = enc.Close()
		_ = f.Close()
		return "", err
	}
	for i := range m.Events {
		if err := writeLine(line{Event: &m.Events[i]}); err != nil {
			_ = enc.Close()
			_ = f.Close()
			return "", err
		}
	}
	if m.Result != nil {
		if err := writeLine(line{Result: m.Result}); err != nil {
			_ = enc.Close()
			_ = f.Close()
			return "", err
		}
	}

	if err := w.Flush(); err != nil {
		_ = enc.Close()
		_ = f.Close()
		return "", err
	}
	if err := enc.Close(); err != nil {
		_ = f.Close()
		return "", err
	}
	return path, f.Close()
}

// Read loads a match archive. Parse failures are reported to the caller as
// plain errors; they never reach simulation code.
func Read(path string) (Match, error) {
	var out Match

	f, err := os.Open(path)
	if err != nil {
		return out, err
	}
	defer f.Close()

	dec, err := zstd.NewReader(f)
	if err != nil {
		return out, err
	}
	defer dec.Close()

	sc := bufio.NewScanner(dec)
	sc.Buffer(make([]byte, 64*1024), 8*1024*1024)

	first := true
	for sc.Scan() {
		var l line
		if err := json.Unmarshal(sc.Bytes(), &l); err != nil {
			return out, fmt.Errorf("%s: bad line: %w", filepath.Base(path), err)
		}
		switch {
		case l.Header != nil:
			if !first {
				return out, fmt.Errorf("%s: header not on first line", filepath.Base(path))
			}
			out.Header = *l.Header
		case l.Event != nil:
			out.Events = append(out.Events, *l.Event)
		case l.Result != nil:
			out.Result = l.Result
		}
		first = false
	}
	if err := sc.Err(); err != nil {
		return out, err
	}
	if out.Header.MatchID == "" {
		return out, fmt.Errorf("%s: missing header", filepath.Base(path))
	}
	return out, nil
}
