package sena

import (
	"testing"

	"github.com/imgoedu/imgo-backend/internal/model"
)

func TestModalityFromCode(t *testing.T) {
	cases := []struct {
		code string
		want string
	}{
		{"V", model.ModalityVirtual},
		{"v", model.ModalityVirtual},
		{"H", model.ModalityHibrida},
		{"P", model.ModalityPresencial},
		{"", model.ModalityPresencial},
		{"X", model.ModalityPresencial},
	}
	for _, tc := range cases {
		if got := ModalityFromCode(tc.code); got != tc.want {
			t.Errorf("ModalityFromCode(%q) = %q, want %q", tc.code, got, tc.want)
		}
	}
}

func TestGuessLevel(t *testing.T) {
	if got := GuessLevel("Tecnólogo en Análisis de Datos"); got != model.LevelTecnologico {
		t.Errorf("GuessLevel tecnólogo = %q", got)
	}
	if got := GuessLevel("Tecnologo en Software"); got != model.LevelTecnologico {
		t.Errorf("GuessLevel tecnologo (sin tilde) = %q", got)
	}
	if got := GuessLevel("Técnico en Cocina"); got != model.LevelTecnico {
		t.Errorf("GuessLevel técnico = %q", got)
	}
	if got := GuessLevel("Auxiliar Administrativo"); got != model.LevelTecnico {
		t.Errorf("GuessLevel default = %q", got)
	}
}

func TestGuessArea(t *testing.T) {
	cases := []struct {
		title string
		want  string
	}{
		{"Auxiliar en Enfermería", "Salud"},
		{"Tecnólogo en Desarrollo de Software", "Ingeniería y Tecnología"},
		{"Técnico en Contabilidad", "Negocios"},
		{"Técnico en Cocina", "Artes y Humanidades"},
		{"Apoyo a la Educación Inicial", "Educación"},
		{"Soldadura de Tuberías", "Otros"},
	}
	for _, tc := range cases {
		if got := GuessArea(tc.title); got != tc.want {
			t.Errorf("GuessArea(%q) = %q, want %q", tc.title, got, tc.want)
		}
	}
}

func TestMergeReplacesExistingEntry(t *testing.T) {
	existing := []model.Institution{
		{ID: "uni-a", Name: "Alfa", Programs: []model.Program{{ID: "p1", Title: "A"}}},
		{ID: InstitutionID, Name: "SENA viejo", Programs: []model.Program{{ID: "old", Title: "Viejo"}}},
	}
	scraped := []Program{
		{ProgramID: "1", Modality: "V", Title: "Tecnólogo en Software"},
		{ProgramID: "2", Modality: "P", Title: "Técnico en Cocina"},
	}

	out := Merge(existing, scraped)

	var sena *model.Institution
	count := 0
	for i := range out {
		if out[i].ID == InstitutionID {
			sena = &out[i]
			count++
		}
	}
	if count != 1 || sena == nil {
		t.Fatalf("expected exactly one SENA entry, got %d", count)
	}
	if len(sena.Programs) != 2 {
		t.Fatalf("programs = %d, want 2 (old entry replaced)", len(sena.Programs))
	}
	for _, p := range sena.Programs {
		if p.TuitionCOPYear != 0 || p.DurationMonths != 12 {
			t.Errorf("program %q = %+v, want free 12-month program", p.Title, p)
		}
	}
}

func TestMergeSkipsWhenNoPrograms(t *testing.T) {
	existing := []model.Institution{
		{ID: InstitutionID, Name: "SENA viejo", Programs: []model.Program{{ID: "old"}}},
		{ID: "uni-a", Name: "Alfa", Programs: []model.Program{{ID: "p1"}}},
	}

	out := Merge(existing, nil)

	if len(out) != 1 || out[0].ID != "uni-a" {
		t.Fatalf("empty scrape must drop the stale entry and add nothing: %+v", out)
	}
}
