package articles

import "testing"

func TestSlugify(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"Direito do Consumidor", "direito-do-consumidor"},
		{"Ação de Indenização", "acao-de-indenizacao"},
		{"Férias: o que você precisa saber", "ferias-o-que-voce-precisa-saber"},
		{"   espaços   extras   ", "espacos-extras"},
		{"Já-hifenizado", "ja-hifenizado"},
		{"UPPERCASE Title 2026", "uppercase-title-2026"},
		{"!!!", ""},
		{"", ""},
		{"100% garantido?", "100-garantido"},
	}
	for _, c := range cases {
		t.Run(c.in, func(t *testing.T) {
			if got := Slugify(c.in); got != c.want {
				t.Fatalf("Slugify(%q) = %q, want %q", c.in, got, c.want)
			}
		})
	}
}

func TestSlugifyIsIdempotent(t *testing.T) {
	once := Slugify("Ação Trabalhista & Rescisão")
	if Slugify(once) != once {
		t.Fatalf("Slugify is not idempotent on %q", once)
	}
}
