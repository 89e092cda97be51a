package utils

import "testing"

func TestValidatePhone(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		phone string
		valid bool
	}{
		{name: "e164", phone: "+14045550100", valid: true},
		{name: "formatted", phone: "+1 (404) 555-0100", valid: true},
		{name: "no plus", phone: "4045550100", valid: true},
		{name: "leading zero", phone: "+0404555", valid: false},
		{name: "letters", phone: "call me", valid: false},
		{name: "too long", phone: "+1234567890123456", valid: false},
		{name: "empty", phone: "", valid: false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := ValidatePhone(tt.phone); got != tt.valid {
				t.Fatalf("ValidatePhone(%q) = %v, want %v", tt.phone, got, tt.valid)
			}
		})
	}
}

func TestHashPassword(t *testing.T) {
	BcryptCost = 4
	hash, err := HashPassword("password123")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if !CheckPasswordHash("password123", hash) || CheckPasswordHash("password124", hash) {
		t.Fatalf("hash does not verify correctly")
	}
}
