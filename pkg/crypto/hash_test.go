package crypto

import (
	"encoding/hex"
	"testing"
)

func TestKeccak256_KnownVectors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "empty",
			input: "",
			want:  "c5d2460186f7233c927e7db2dcc703c0e500b653ca82273b7bfad8045d85a470",
		},
		{
			name:  "abc",
			input: "abc",
			want:  "4e03657aea45a94fc7d47ba826c8d667c0d1e6e33a64a036ec44f58fa12d6c45",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Keccak256([]byte(tt.input))
			if hex.EncodeToString(got[:]) != tt.want {
				t.Errorf("Keccak256(%q) = %x, want %s", tt.input, got, tt.want)
			}
		})
	}
}

func TestKeccak256_Concatenation(t *testing.T) {
	joined := Keccak256([]byte("ab"), []byte("c"))
	single := Keccak256([]byte("abc"))
	if joined != single {
		t.Error("Keccak256 over split input should equal hash of concatenation")
	}
}

// The EIP-155 example key: all-0x46 secret maps to a fixed, published address.
func TestAddressFromPubKey_KnownKey(t *testing.T) {
	keyBytes, _ := hex.DecodeString("4646464646464646464646464646464646464646464646464646464646464646")
	key, err := PrivateKeyFromBytes(keyBytes)
	if err != nil {
		t.Fatalf("PrivateKeyFromBytes() error: %v", err)
	}

	const want = "0x9d8A62f656a8d1615C1294fd71e9CFb3E4855A4F"
	if got := key.Address().String(); got != want {
		t.Errorf("Address() = %s, want %s", got, want)
	}
}

func TestAddressFromPubKey_DeterministicPerKey(t *testing.T) {
	k1, err := GenerateKey()
	if err != nil {
		t.Fatalf("GenerateKey() error: %v", err)
	}
	k2, err := GenerateKey()
	if err != nil {
		t.Fatalf("GenerateKey() error: %v", err)
	}

	if k1.Address() != AddressFromPubKey(k1.PublicKey()) {
		t.Error("Address() should match AddressFromPubKey of own public key")
	}
	if k1.Address() == k2.Address() {
		t.Error("different keys should yield different addresses")
	}
}
