package formatter

import (
	"strings"
	"testing"

	"github.com/dhrions/ha-public-transports/discovery"
	"github.com/dhrions/ha-public-transports/wizard"
)

func strPtr(s string) *string { return &s }

func TestFormat_SelectionJSON(t *testing.T) {
	sel := wizard.SelectionResult{City: "Strasbourg", TransitCompany: "CTS", StopName: "Gare", StopCode: strPtr("G1")}

	out, err := Format(sel, "json")
	if err != nil {
		t.Fatalf("format: %v", err)
	}
	s := string(out)
	for _, want := range []string{`"city": "Strasbourg"`, `"api_token": null`, `"stop_code": "G1"`} {
		if !strings.Contains(s, want) {
			t.Errorf("expected %s in\n%s", want, s)
		}
	}
	if !strings.HasSuffix(s, "}\n") {
		t.Error("JSON output should end with a newline")
	}
}

func TestFormat_ResultYAML(t *testing.T) {
	res := discovery.Result{
		Stops:   []discovery.StopRecord{{StopName: "Gare", StopCode: strPtr("G1")}, {StopName: "Centre"}},
		Outcome: discovery.Outcome{Kind: discovery.Success},
	}

	out, err := Format(res, "YAML")
	if err != nil {
		t.Fatalf("format: %v", err)
	}
	s := string(out)
	for _, want := range []string{"stop_name: Gare", "stop_code: G1", "stop_code: null", "kind: success"} {
		if !strings.Contains(s, want) {
			t.Errorf("expected %q in\n%s", want, s)
		}
	}
}

func TestFormat_OutcomeKindJSON(t *testing.T) {
	out, err := Format(discovery.Outcome{Kind: discovery.UpstreamError, StatusCode: 503}, "")
	if err != nil {
		t.Fatalf("format: %v", err)
	}
	if !strings.Contains(string(out), `"kind": "upstream_error"`) || !strings.Contains(string(out), `"status_code": 503`) {
		t.Errorf("unexpected output %s", out)
	}
}

func TestFormat_Unknown(t *testing.T) {
	if _, err := Format(struct{}{}, "xml"); err == nil {
		t.Error("xml is not supported")
	}
}
