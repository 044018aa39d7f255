package notify

import "testing"

func TestEvalFilter(t *testing.T) {
	event := Event{
		Type:      "payment.recorded",
		Title:     "Payment recorded",
		LotNumber: "LOT-2026-014",
	}

	tests := []struct {
		name    string
		expr    string
		want    bool
		wantErr bool
	}{
		{"empty matches everything", "", true, false},
		{"type match", `type == "payment.recorded"`, true, false},
		{"type mismatch", `type == "shipment.created"`, false, false},
		{"lot prefix", `lot_number.startsWith("LOT-2026")`, true, false},
		{"conjunction", `type == "payment.recorded" && lot_number != ""`, true, false},
		{"broken expression fails open", `type ==`, true, true},
		{"unknown variable fails open", `amount > 100`, true, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := EvalFilter(tc.expr, event)
			if got != tc.want {
				t.Errorf("EvalFilter(%q) = %v, want %v", tc.expr, got, tc.want)
			}
			if (err != nil) != tc.wantErr {
				t.Errorf("EvalFilter(%q) err = %v, wantErr %v", tc.expr, err, tc.wantErr)
			}
		})
	}
}

func TestCompileFilterRejectsNonBool(t *testing.T) {
	if _, err := CompileFilter(`lot_number`); err == nil {
		t.Error("string-typed filter compiled without error")
	}
}
