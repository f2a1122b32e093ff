package registry

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefault_Cities(t *testing.T) {
	r, err := Default()
	if err != nil {
		t.Fatalf("Failed to load embedded registry: %v", err)
	}

	ops, ok := r.LookupCity("Strasbourg")
	if !ok {
		t.Fatal("Strasbourg should be known")
	}
	if len(ops) != 1 || ops[0] != "CTS" {
		t.Errorf("expected [CTS], got %v", ops)
	}

	ops, ok = r.LookupCity("Paris")
	if !ok || len(ops) != 2 {
		t.Errorf("expected two Paris operators, got %v", ops)
	}

	t.Logf("✓ Loaded %d cities", len(r.Cities()))
}

func TestLookupCity_CaseSensitive(t *testing.T) {
	r, err := Default()
	if err != nil {
		t.Fatalf("Failed to load embedded registry: %v", err)
	}

	for _, city := range []string{"strasbourg", "STRASBOURG", " Strasbourg", "Atlantis"} {
		if _, ok := r.LookupCity(city); ok {
			t.Errorf("%q should not match", city)
		}
	}
}

func TestLookupOperator(t *testing.T) {
	r, err := Default()
	if err != nil {
		t.Fatalf("Failed to load embedded registry: %v", err)
	}

	cts, ok := r.LookupOperator("CTS")
	if !ok {
		t.Fatal("CTS should have a descriptor")
	}
	if cts.Name != "CTS" {
		t.Errorf("expected name CTS, got %q", cts.Name)
	}
	if !cts.RequiresToken {
		t.Error("CTS requires a token")
	}
	if !cts.Discoverable() {
		t.Error("CTS should be discoverable")
	}
	if cts.BaseURL+cts.DiscoveryPath != "https://api.cts-strasbourg.eu/v1/siri/2.0/stoppoints-discovery" {
		t.Errorf("unexpected endpoint %s%s", cts.BaseURL, cts.DiscoveryPath)
	}

	tcl, ok := r.LookupOperator("TCL")
	if !ok {
		t.Fatal("TCL should have a descriptor")
	}
	if tcl.Discoverable() {
		t.Error("TCL has no API URL and should not be discoverable")
	}

	if _, ok := r.LookupOperator("RATP"); ok {
		t.Error("RATP has no descriptor")
	}
}

func TestLookupCity_ReturnsCopy(t *testing.T) {
	r := New(map[string][]string{"Town": {"A", "B"}}, nil)

	ops, _ := r.LookupCity("Town")
	ops[0] = "Z"

	again, _ := r.LookupCity("Town")
	if again[0] != "A" {
		t.Errorf("registry was mutated through a lookup result: %v", again)
	}
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want string
	}{
		{
			name: "not yaml",
			doc:  "cities: [[[",
			want: "parse registry",
		},
		{
			name: "no cities",
			doc:  "operators: {}",
			want: "no cities",
		},
		{
			name: "missing protocol",
			doc:  "cities: {X: [A]}\noperators:\n  A:\n    api_url: https://example.com\n",
			want: `operator "A"`,
		},
		{
			name: "bad url",
			doc:  "cities: {X: [A]}\noperators:\n  A:\n    protocol: SIRI-lite\n    api_url: not a url\n",
			want: `operator "A"`,
		},
		{
			name: "bad auth type",
			doc:  "cities: {X: [A]}\noperators:\n  A:\n    protocol: SIRI-lite\n    auth_type: digest\n",
			want: `operator "A"`,
		},
		{
			name: "city without operators",
			doc:  "cities: {X: []}\n",
			want: `city "X"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.doc))
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("expected error containing %q, got %v", tt.want, err)
			}
		})
	}
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "registry.yml")
	doc := `cities:
  Testville: [Fake]
operators:
  Fake:
    protocol: SIRI-lite
    api_url: http://127.0.0.1:9
    endpoint: /stoppoints-discovery
    requires_token: false
`
	if err := os.WriteFile(path, []byte(doc), 0644); err != nil {
		t.Fatalf("Failed to create temp file: %v", err)
	}

	r, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	d, ok := r.LookupOperator("Fake")
	if !ok || !d.Discoverable() || d.RequiresToken {
		t.Errorf("unexpected descriptor %+v", d)
	}
	if got := r.Cities(); len(got) != 1 || got[0] != "Testville" {
		t.Errorf("unexpected cities %v", got)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yml")); err == nil {
		t.Error("missing registry file should return error")
	}
}
