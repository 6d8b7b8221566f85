package i18n

import "testing"

func TestTranslateConditionSpanish(t *testing.T) {
	cases := map[string]string{
		"Sunny":              "Soleado",
		"Partly cloudy":      "Parcialmente nublado",
		"Heavy thunderstorm": "Tormenta eléctrica intensa",
	}
	for in, want := range cases {
		if got := TranslateCondition("es", in); got != want {
			t.Errorf("TranslateCondition(es, %q) = %q, want %q", in, got, want)
		}
	}
}

func TestTranslateConditionPassthrough(t *testing.T) {
	if got := TranslateCondition("en", "Sunny"); got != "Sunny" {
		t.Errorf("english should pass through, got %q", got)
	}
	if got := TranslateCondition("es", "Volcanic ash"); got != "Volcanic ash" {
		t.Errorf("unknown text should pass through, got %q", got)
	}
}
