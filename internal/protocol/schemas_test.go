package protocol_test

import (
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

func TestSchemas_ValidateSamples(t *testing.T) {
	compile := func(name string) *jsonschema.Schema {
		t.Helper()
		p := filepath.Join("..", "..", "schemas", name)
		s, err := jsonschema.Compile(p)
		if err != nil {
			t.Fatalf("compile %s: %v", name, err)
		}
		return s
	}

	validate := func(s *jsonschema.Schema, v any) {
		t.Helper()
		if err := s.Validate(v); err != nil {
			t.Fatalf("validate: %v", err)
		}
	}

	helloSchema := compile("hello.schema.json")
	welcomeSchema := compile("welcome.schema.json")
	eventSchema := compile("event.schema.json")

	var hello any
	_ = json.Unmarshal([]byte(`{
	  "type":"HELLO",
	  "protocol_version":"1.0",
	  "viewer_name":"caster1",
	  "since_index":0
	}`), &hello)
	validate(helloSchema, hello)

	var welcome any
	_ = json.Unmarshal([]byte(`{
	  "type":"WELCOME",
	  "protocol_version":"1.0",
	  "match_id":"m_20260823_1",
	  "teams":["Crimson Vortex","Azure Phalanx"],
	  "tick_rate_hz":2,
	  "catalogs":{
	    "items_digest":"deadbeef",
	    "build_paths_digest":"deadbeef",
	    "weathers_digest":"deadbeef"
	  }
	}`), &welcome)
	validate(welcomeSchema, welcome)

	var event any
	_ = json.Unmarshal([]byte(`{
	  "type":"EVENT",
	  "protocol_version":"1.0",
	  "index":12,
	  "event":{
	    "type":"lane.kill",
	    "tick":88,
	    "kill":{"killer":"T0C1","victim":"T1C1","gold":300,"streak":1,"lane":"TOP"}
	  }
	}`), &event)
	validate(eventSchema, event)
}
