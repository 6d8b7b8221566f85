package markdown

import (
	"strings"
	"testing"
)

func TestToTelegramHTML(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"bold", "hola **mundo**", "hola <b>mundo</b>"},
		{"italic", "hola *mundo*", "hola <i>mundo</i>"},
		{"empty", "", ""},
		{"list", "- uno\n- dos", "• uno\n• dos"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ToTelegramHTML(tt.in)
			if !strings.Contains(got, strings.TrimSpace(tt.want)) {
				t.Errorf("ToTelegramHTML(%q) = %q, want it to contain %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestToTelegramHTMLStripsUnsupportedTags(t *testing.T) {
	got := ToTelegramHTML("# Título\n\ntexto")
	if strings.Contains(got, "<h1>") {
		t.Errorf("heading tag left in output: %q", got)
	}
	if !strings.Contains(got, "Título") {
		t.Errorf("heading content lost: %q", got)
	}
}
