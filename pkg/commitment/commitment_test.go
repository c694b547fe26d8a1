package commitment

import (
	"encoding/json"
	"testing"
)

func TestBuild(t *testing.T) {
	terms := Terms{
		Token:             "VET",
		Amount:            1000,
		ExpectedToken:     "VTHO",
		ExpectedPrice:     42,
		SettlementAddress: "0xabc",
	}

	c, err := Build(terms, 1000, 500)
	if err != nil {
		t.Fatal(err)
	}

	if err := Validate(c); err != nil {
		t.Errorf("fresh commitment should validate: %v", err)
	}
	if c.Timestamp != 1000 || c.Expiry != 1500 {
		t.Errorf("bad validity window: ts=%d expiry=%d", c.Timestamp, c.Expiry)
	}

	var decoded Terms
	if err := json.Unmarshal(c.EncryptedPayload, &decoded); err != nil {
		t.Fatalf("payload should carry the terms: %v", err)
	}
	if decoded != terms {
		t.Errorf("payload mismatch: %+v", decoded)
	}

	// Seeds are random per commitment.
	c2, err := Build(terms, 1000, 500)
	if err != nil {
		t.Fatal(err)
	}
	if c.NullifierSeed == c2.NullifierSeed {
		t.Error("two commitments should not share a nullifier seed")
	}
	// Same labeled inputs hash identically.
	if c.CommitmentHash != c2.CommitmentHash {
		t.Error("commitment hash should be deterministic for equal terms and time")
	}
}

func TestValidateRejects(t *testing.T) {
	terms := Terms{Token: "VET", Amount: 1}

	c, err := Build(terms, 1000, 500)
	if err != nil {
		t.Fatal(err)
	}

	bad := c
	bad.EncryptedPayload = nil
	if Validate(bad) == nil {
		t.Error("empty payload should be rejected")
	}

	bad = c
	bad.Expiry = bad.Timestamp
	if Validate(bad) == nil {
		t.Error("non-positive validity window should be rejected")
	}
}
