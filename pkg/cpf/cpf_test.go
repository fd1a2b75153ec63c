package cpf

import (
	"errors"
	"testing"
)

func TestValidate_KnownValid(t *testing.T) {
	valid := []string{
		"52998224725",
		"11144477735",
	}
	for _, s := range valid {
		if err := Validate(s); err != nil {
			t.Errorf("Validate(%q) = %v, want nil", s, err)
		}
		if !Valid(s) {
			t.Errorf("Valid(%q) = false, want true", s)
		}
	}
}

func TestValidate_RepeatedDigits(t *testing.T) {
	for _, s := range []string{
		"00000000000",
		"11111111111",
		"99999999999",
	} {
		err := Validate(s)
		if !errors.Is(err, ErrRepeated) {
			t.Errorf("Validate(%q) = %v, want ErrRepeated", s, err)
		}
	}
}

func TestValidate_Format(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"ten digits", "5299822472"},
		{"twelve digits", "529982247255"},
		{"non numeric", "5299822472a"},
		{"formatted", "529.982.247-25"},
		{"letters", "abcdefghijk"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.input)
			if !errors.Is(err, ErrLength) {
				t.Errorf("Validate(%q) = %v, want ErrLength", tt.input, err)
			}
		})
	}
}

func TestValidate_BadCheckDigits(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		// 52998224725 is valid; perturb each check digit.
		{"wrong first check digit", "52998224735"},
		{"wrong second check digit", "52998224726"},
		{"both wrong", "52998224711"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.input)
			if !errors.Is(err, ErrChecksum) {
				t.Errorf("Validate(%q) = %v, want ErrChecksum", tt.input, err)
			}
		})
	}
}

func TestValid_Invalid(t *testing.T) {
	if Valid("12345678900") {
		t.Error("Valid(12345678900) = true, want false")
	}
}
