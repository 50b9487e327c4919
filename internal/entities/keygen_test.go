package entities

import (
	"strings"
	"testing"
)

func TestGenerateAttributeKey(t *testing.T) {
	key := GenerateAttributeKey()

	if !strings.HasPrefix(key, AttributeKeyPrefix) {
		t.Errorf("generated key %q missing prefix %q", key, AttributeKeyPrefix)
	}
	if len(key) != len(AttributeKeyPrefix)+attributeKeyEntropy*2 {
		t.Errorf("generated key %q has unexpected length %d", key, len(key))
	}
}

func TestGenerateAttributeKey_Unique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		key := GenerateAttributeKey()
		if seen[key] {
			t.Fatalf("duplicate generated key: %s", key)
		}
		seen[key] = true
	}
}

func TestIsGeneratedAttributeKey(t *testing.T) {
	tests := []struct {
		key  string
		want bool
	}{
		{GenerateAttributeKey(), true},
		{"attr_deadbeef", true},
		{"brand", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := IsGeneratedAttributeKey(tt.key); got != tt.want {
			t.Errorf("IsGeneratedAttributeKey(%q) = %v, want %v", tt.key, got, tt.want)
		}
	}
}
