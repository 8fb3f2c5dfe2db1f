package service

import (
	"errors"
	"strings"
	"testing"

	"github.com/revstack-dev/revstack/internal/providerconfig/domain"
)

func TestConfigEncryptionRoundTrip(t *testing.T) {
	s := &Service{encKey: deriveKey("unit-test-secret")}

	values := map[string]any{
		"secret_key": "sk_test_supersecret",
		"test_mode":  true,
	}
	encrypted, err := s.encryptConfig(values)
	if err != nil {
		t.Fatalf("encrypt: %v", err)
	}
	if strings.Contains(string(encrypted), "supersecret") {
		t.Fatalf("ciphertext leaks plaintext: %s", encrypted)
	}

	decrypted, err := s.decryptConfig(encrypted)
	if err != nil {
		t.Fatalf("decrypt: %v", err)
	}
	if decrypted["secret_key"] != "sk_test_supersecret" {
		t.Fatalf("round trip lost secret_key: %v", decrypted)
	}
	if decrypted["test_mode"] != true {
		t.Fatalf("round trip lost test_mode: %v", decrypted)
	}
}

func TestDecryptWithWrongKeyFails(t *testing.T) {
	writer := &Service{encKey: deriveKey("key-a")}
	reader := &Service{encKey: deriveKey("key-b")}

	encrypted, err := writer.encryptConfig(map[string]any{"secret_key": "sk_test_x"})
	if err != nil {
		t.Fatalf("encrypt: %v", err)
	}
	if _, err := reader.decryptConfig(encrypted); !errors.Is(err, domain.ErrInvalidConfig) {
		t.Fatalf("expected ErrInvalidConfig, got %v", err)
	}
}

func TestEncryptWithoutKeyFails(t *testing.T) {
	s := &Service{encKey: deriveKey("")}
	if _, err := s.encryptConfig(map[string]any{"secret_key": "sk_test_x"}); !errors.Is(err, domain.ErrEncryptionKeyMissing) {
		t.Fatalf("expected ErrEncryptionKeyMissing, got %v", err)
	}
}
