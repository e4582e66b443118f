package target

import (
	"testing"
)

func TestIdentifierString(t *testing.T) {
	tests := []struct {
		name    string
		account string
		want    string
	}{
		{
			name:    "alice",
			account: "alice",
			want:    "r8.im/alice/cyberpony-multi-lora",
		},
		{
			name:    "hyphenated account",
			account: "my-team",
			want:    "r8.im/my-team/cyberpony-multi-lora",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := New(tt.account).String()
			if got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParse(t *testing.T) {
	id, err := Parse("r8.im/alice/cyberpony-multi-lora")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if id.Registry != "r8.im" {
		t.Errorf("Registry = %q, want %q", id.Registry, "r8.im")
	}
	if id.Account != "alice" {
		t.Errorf("Account = %q, want %q", id.Account, "alice")
	}
	if id.Model != "cyberpony-multi-lora" {
		t.Errorf("Model = %q, want %q", id.Model, "cyberpony-multi-lora")
	}

	// Round trip
	if id.String() != "r8.im/alice/cyberpony-multi-lora" {
		t.Errorf("round trip = %q", id.String())
	}
}

func TestParseRejectsMalformed(t *testing.T) {
	tests := []string{
		"",
		"alice",
		"alice/model",
		"r8.im/alice/model/extra",
		"r8.im//model",
		"r8.im/alice/",
		"r8.im/Alice/model", // uppercase not allowed
		"r8.im/-alice/model",
	}

	for _, input := range tests {
		t.Run(input, func(t *testing.T) {
			if _, err := Parse(input); err == nil {
				t.Errorf("Parse(%q) succeeded, want error", input)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		id      Identifier
		wantErr bool
	}{
		{
			name: "valid",
			id:   Identifier{Registry: "r8.im", Account: "alice", Model: "cyberpony-multi-lora"},
		},
		{
			name:    "missing registry",
			id:      Identifier{Account: "alice", Model: "m"},
			wantErr: true,
		},
		{
			name:    "missing account",
			id:      Identifier{Registry: "r8.im", Model: "m"},
			wantErr: true,
		},
		{
			name:    "missing model",
			id:      Identifier{Registry: "r8.im", Account: "alice"},
			wantErr: true,
		},
		{
			name: "dots and underscores allowed",
			id:   Identifier{Registry: "r8.im", Account: "a_1.b", Model: "model_v1.0"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.id.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
