package domain

import (
	"strings"
	"testing"

	apperrors "github.com/hara-desu/ForestOnchain/internal/platform/errors"
)

func TestIsOwnerIgnoresCase(t *testing.T) {
	t.Parallel()
	if !IsOwner("0xAbCd", "0xabcd") {
		t.Fatalf("expected case-insensitive owner match")
	}
	if IsOwner("", "") || IsOwner("0x1", "0x2") {
		t.Fatalf("unexpected owner match")
	}
}

func TestParseCost(t *testing.T) {
	t.Parallel()
	wei, err := ParseCost("0.01")
	if err != nil || wei.String() != "10000000000000000" {
		t.Fatalf("expected 1e16 wei, got %v (%v)", wei, err)
	}
	cases := map[string]string{
		" ":    "New cost must not be empty.",
		"abc":  "Invalid ETH amount format.",
		"0.00": "New cost per tree must be greater than 0.",
		"-1":   "New cost per tree must be greater than 0.",
	}
	for in, want := range cases {
		if _, err := ParseCost(in); apperrors.UserMessage(err) != want {
			t.Fatalf("cost %q: expected %q, got %v", in, want, err)
		}
	}
}

func TestParseWithdrawal(t *testing.T) {
	t.Parallel()
	valid := func(s string) bool { return strings.HasPrefix(s, "0x") && len(s) == 42 }
	to := "0x00000000000000000000000000000000000000cc"
	w, err := ParseWithdrawal(to, "1.5", valid)
	if err != nil || w.Amount.String() != "1500000000000000000" || w.To != to {
		t.Fatalf("unexpected withdrawal %+v (%v)", w, err)
	}
	cases := []struct{ to, amount, want string }{
		{"", "1", "Recipient address is required."},
		{"0x12", "1", "Recipient address is not a valid address."},
		{to, "", "Amount is required."},
		{to, "1.2.3", "Invalid ETH amount format."},
		{to, "0", "Amount must be greater than 0."},
	}
	for _, tc := range cases {
		if _, err := ParseWithdrawal(tc.to, tc.amount, valid); apperrors.UserMessage(err) != tc.want {
			t.Fatalf("withdraw(%q, %q): expected %q, got %v", tc.to, tc.amount, tc.want, err)
		}
	}
}
