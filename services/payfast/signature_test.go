package payfast

import "testing"

func TestBuildParamStringSortsAndDropsEmpties(t *testing.T) {
	data := map[string]string{
		"b_key": "2",
		"a_key": "1",
		"empty": "",
	}
	got := BuildParamString(data)
	want := "a_key=1&b_key=2"
	if got != want {
		t.Fatalf("BuildParamString = %q, want %q", got, want)
	}
}

func TestBuildParamStringEncoding(t *testing.T) {
	data := map[string]string{
		"item_name": "KleanZilla cleaning (deep)",
		"note":      "don't rush!",
	}
	got := BuildParamString(data)
	want := "item_name=KleanZilla+cleaning+%28deep%29&note=don%27t+rush%21"
	if got != want {
		t.Fatalf("BuildParamString = %q, want %q", got, want)
	}
}

func TestBuildSignatureOrderIndependent(t *testing.T) {
	a := map[string]string{"b": "2", "a": "1"}
	b := map[string]string{"a": "1", "b": "2"}

	if BuildSignature(a, "") != BuildSignature(b, "") {
		t.Fatal("signature depends on input field order")
	}
	if BuildSignature(a, "secret") != BuildSignature(b, "secret") {
		t.Fatal("signature depends on input field order with passphrase")
	}
}

func TestBuildSignaturePassphraseChangesDigest(t *testing.T) {
	data := map[string]string{"merchant_id": "10000100", "amount": "650.00"}

	plain := BuildSignature(data, "")
	keyed := BuildSignature(data, "phrase phrase")
	if plain == keyed {
		t.Fatal("passphrase did not affect signature")
	}
	if len(plain) != 32 || len(keyed) != 32 {
		t.Fatalf("expected 32-char hex digests, got %d and %d", len(plain), len(keyed))
	}
}

func TestBuildSignatureDeterministic(t *testing.T) {
	data := map[string]string{
		"merchant_id":    "10000100",
		"m_payment_id":   "abc-123",
		"amount_gross":   "650.00",
		"payment_status": "COMPLETE",
	}
	if BuildSignature(data, "pass") != BuildSignature(data, "pass") {
		t.Fatal("signature is not deterministic")
	}
}
