package slug

import "testing"

func TestRemoveDiacritics(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Jiří", "Jiri"},
		{"Výročí", "Vyroci"},
		{"café", "cafe"},
		{"plain", "plain"},
		{"", ""},
	}

	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			got := RemoveDiacritics(tc.input)
			if got != tc.want {
				t.Errorf("RemoveDiacritics(%q) = %q, want %q", tc.input, got, tc.want)
			}
		})
	}
}

func TestMake(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Summer Gala 2026", "summer-gala-2026"},
		{"Novákovic svatba", "novakovic-svatba"},
		{"Tech / Conf!", "tech-conf"},
		{"  spaced  out  ", "spaced-out"},
		{"UPPER", "upper"},
		{"---", ""},
		{"", ""},
	}

	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			got := Make(tc.input)
			if got != tc.want {
				t.Errorf("Make(%q) = %q, want %q", tc.input, got, tc.want)
			}
		})
	}
}
