package cli

import "testing"

// withDefault swaps the package default config for the duration of a test.
func withDefault(t *testing.T, cfg *Config) {
	t.Helper()
	original := current
	t.Cleanup(func() { current = original })
	SetDefault(cfg)
}

func TestOutputMode(t *testing.T) {
	tests := []struct {
		name string
		mode OutputMode
		tty  bool
		json bool
	}{
		{"ModeTTY", ModeTTY, true, false},
		{"ModePlain", ModePlain, false, false},
		{"ModeJSON", ModeJSON, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{Mode: tt.mode}
			if got := cfg.IsTTY(); got != tt.tty {
				t.Errorf("IsTTY() = %v, want %v", got, tt.tty)
			}
			if got := cfg.IsJSON(); got != tt.json {
				t.Errorf("IsJSON() = %v, want %v", got, tt.json)
			}
		})
	}
}

func TestOutputMode_String(t *testing.T) {
	tests := []struct {
		mode OutputMode
		want string
	}{
		{ModeTTY, "tty"},
		{ModePlain, "plain"},
		{ModeJSON, "json"},
	}

	for _, tt := range tests {
		if got := tt.mode.String(); got != tt.want {
			t.Errorf("OutputMode(%d).String() = %q, want %q", int(tt.mode), got, tt.want)
		}
	}
}

func TestDefaultConfig_PlainEnv(t *testing.T) {
	tests := []struct {
		name, key, value string
	}{
		{"NO_COLOR", "NO_COLOR", "1"},
		{"TERM=dumb", "TERM", "dumb"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			if got := DefaultConfig().Mode; got != ModePlain {
				t.Errorf("Mode = %v, want ModePlain", got)
			}
		})
	}
}

func TestConfigure(t *testing.T) {
	withDefault(t, nil)

	if got := Configure(true, false).Mode; got != ModeJSON {
		t.Errorf("Configure(json).Mode = %v, want ModeJSON", got)
	}
	if Default().Mode != ModeJSON {
		t.Error("Configure did not install the default config")
	}
	if got := Configure(false, true).Mode; got != ModePlain {
		t.Errorf("Configure(noColor).Mode = %v, want ModePlain", got)
	}
}

func TestEnableColors(t *testing.T) {
	tests := []struct {
		mode OutputMode
		want bool
	}{
		{ModeTTY, true},
		{ModePlain, false},
		{ModeJSON, false},
	}

	for _, tt := range tests {
		withDefault(t, &Config{Mode: tt.mode})
		if got := EnableColors(); got != tt.want {
			t.Errorf("EnableColors() in mode %v = %v, want %v", tt.mode, got, tt.want)
		}
	}
}
