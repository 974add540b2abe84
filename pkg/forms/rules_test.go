package forms

import (
	"slices"
	"strings"
	"testing"
)

func TestValidateLicenseNumber(t *testing.T) {
	tests := []struct {
		name    string
		license string
		want    []string
	}{
		{"valid", "AAA12345", nil},
		{"valid other letters", "XYZ00000", nil},
		{"lowercase prefix", "aaa12345", []string{msgLicensePrefix}},
		{"mixed case prefix", "AaA12345", []string{msgLicensePrefix}},
		{"letter in digits", "AAA1234X", []string{msgLicenseDigits}},
		{"both fail", "aaa1234x", []string{msgLicensePrefix, msgLicenseDigits}},
		{"digit in prefix", "AB112345", []string{msgLicensePrefix}},
		{"non ascii upper", "ÄAA12345", []string{msgLicensePrefix}},
		{"too short", "AAA1234", []string{msgLicenseLength + " (it has 7).", msgLicenseDigits}},
		{"too long", "AAA123456", []string{msgLicenseLength + " (it has 9)."}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ValidateLicenseNumber(tt.license)
			if !slices.Equal(got, tt.want) {
				t.Fatalf("ValidateLicenseNumber(%q) = %q, want %q", tt.license, got, tt.want)
			}
		})
	}
}

func TestValidateLicenseNumberMessagesNameCounts(t *testing.T) {
	msgs := ValidateLicenseNumber("abcdefgh")
	if len(msgs) != 2 {
		t.Fatalf("expected two messages, got %q", msgs)
	}
	if !strings.Contains(msgs[0], "3") {
		t.Fatalf("prefix message should cite 3: %q", msgs[0])
	}
	if !strings.Contains(msgs[1], "5") {
		t.Fatalf("digits message should cite 5: %q", msgs[1])
	}
}

// Every 8-character string over a small alphabet: accepted iff the first
// three are A-Z and the last five are digits.
func TestValidateLicenseNumberExhaustiveShape(t *testing.T) {
	alphabet := []byte{'A', 'z', '7', '-'}
	buf := make([]byte, LicenseLength)

	var walk func(i int)
	walk = func(i int) {
		if i == LicenseLength {
			s := string(buf)
			prefixOK := hasUpperPrefix([]rune(s), 3)
			digitsOK := hasDigitSuffix([]rune(s), 5)

			var want []string
			if !prefixOK {
				want = append(want, msgLicensePrefix)
			}
			if !digitsOK {
				want = append(want, msgLicenseDigits)
			}
			if got := ValidateLicenseNumber(s); !slices.Equal(got, want) {
				t.Fatalf("ValidateLicenseNumber(%q) = %q, want %q", s, got, want)
			}
			return
		}
		for _, c := range alphabet {
			buf[i] = c
			walk(i + 1)
		}
	}
	walk(0)
}

func TestValidateUsername(t *testing.T) {
	tests := []struct {
		username string
		wantErr  bool
	}{
		{"", true},
		{"a", true},
		{"ab", true},
		{"abc", false},
		{"driver.one", false},
		{"with space", true},
		{strings.Repeat("x", MaxUsernameLength), false},
		{strings.Repeat("x", MaxUsernameLength+1), true},
	}
	for _, tt := range tests {
		got := ValidateUsername(tt.username)
		if (len(got) > 0) != tt.wantErr {
			t.Fatalf("ValidateUsername(%q) = %q, wantErr %v", tt.username, got, tt.wantErr)
		}
	}

	short := ValidateUsername("ab")
	if len(short) != 1 || !strings.Contains(short[0], "3") {
		t.Fatalf("short username message should cite 3, got %q", short)
	}
}
