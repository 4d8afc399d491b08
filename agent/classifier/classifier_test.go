package classifier

import (
	"testing"

	contractx "github.com/pattarab/supportflow/agent/contract"
)

func TestClassifyPrecedence(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		text string
		want contractx.Intent
	}{
		{"simple data query", "Get customer information for ID 5", contractx.IntentSimpleDataQuery},
		{"show customer", "show customer 3", contractx.IntentSimpleDataQuery},
		// The exclusion words push a data-looking query down the ladder
		// into coordinated support.
		{"exclusion falls through", "help me get customer 5", contractx.IntentCoordinatedSupport},
		{"escalation charged twice", "I've been charged twice, please refund immediately!", contractx.IntentEscalation},
		{"escalation urgent", "this is urgent", contractx.IntentEscalation},
		// Escalation outranks multi-intent even with two action words.
		{"escalation over multi-intent", "urgent: update and show my account", contractx.IntentEscalation},
		{"multi intent", "Update my email to newemail@test.com and show my ticket history", contractx.IntentMultiIntent},
		{"complex analysis", "Show me all active customers who have open tickets", contractx.IntentComplexAnalysis},
		{"high priority analysis", "list of high-priority tickets please", contractx.IntentComplexAnalysis},
		{"coordinated support", "I'm customer 1 and need help upgrading my account", contractx.IntentCoordinatedSupport},
		{"cancel", "I want to cancel", contractx.IntentCoordinatedSupport},
		{"general fallback", "hello there", contractx.IntentGeneral},
		{"empty", "", contractx.IntentGeneral},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := Classify(tc.text); got != tc.want {
				t.Fatalf("Classify(%q) = %s, want %s", tc.text, got, tc.want)
			}
		})
	}
}

func TestClassifyIsIdempotent(t *testing.T) {
	t.Parallel()

	texts := []string{
		"Get customer information for ID 5",
		"help me get customer 5",
		"random text",
	}
	for _, text := range texts {
		first := Classify(text)
		second := Classify(text)
		if first != second {
			t.Fatalf("Classify(%q) unstable: %s then %s", text, first, second)
		}
	}
}

func TestRuleLadderOrder(t *testing.T) {
	t.Parallel()

	want := []contractx.Intent{
		contractx.IntentSimpleDataQuery,
		contractx.IntentEscalation,
		contractx.IntentMultiIntent,
		contractx.IntentComplexAnalysis,
		contractx.IntentCoordinatedSupport,
	}
	if len(rules) != len(want) {
		t.Fatalf("expected %d rules, got %d", len(want), len(rules))
	}
	for i, r := range rules {
		if r.intent != want[i] {
			t.Fatalf("rule %d is %s, want %s", i, r.intent, want[i])
		}
	}
}

func TestCustomerID(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name   string
		text   string
		qctx   contractx.QueryContext
		wantID int64
		wantOK bool
	}{
		{"from context", "need help", contractx.QueryContext{CustomerID: 7}, 7, true},
		{"context wins over text", "customer 3", contractx.QueryContext{CustomerID: 9}, 9, true},
		{"id pattern", "Get customer information for ID 5", contractx.QueryContext{}, 5, true},
		{"customer pattern", "I'm Customer 12 here", contractx.QueryContext{}, 12, true},
		{"no id", "need help with my account", contractx.QueryContext{}, 0, false},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			id, ok := CustomerID(tc.text, tc.qctx)
			if ok != tc.wantOK || id != tc.wantID {
				t.Fatalf("CustomerID(%q) = (%d, %t), want (%d, %t)", tc.text, id, ok, tc.wantID, tc.wantOK)
			}
		})
	}
}

func TestEmail(t *testing.T) {
	t.Parallel()

	email, ok := Email("Update my email to newemail@test.com and show my ticket history")
	if !ok || email != "newemail@test.com" {
		t.Fatalf("Email() = (%q, %t)", email, ok)
	}

	if _, ok := Email("no address here"); ok {
		t.Fatal("expected no email match")
	}
}
