package linkage

import (
	"testing"

	"github.com/rs/zerolog"

	"github.com/imgoedu/imgo-backend/internal/socrata"
)

func TestLinkAttachesAndDropsOrphans(t *testing.T) {
	iesRows := []socrata.Row{
		{"codigo": "101", "nombre": "Uni A"},
	}
	programRows := []socrata.Row{
		{"inst_code": "101", "programa_academico": "Ingeniería"},
		{"inst_code": "999", "programa_academico": "Ghost"},
	}

	out, stats := Link(iesRows, programRows, "codigo", "inst_code", zerolog.Nop())

	if len(out) != 1 {
		t.Fatalf("linked institutions = %d, want 1", len(out))
	}
	if out[0].Name != "Uni A" {
		t.Errorf("Name = %q, want Uni A", out[0].Name)
	}
	if len(out[0].Programs) != 1 || out[0].Programs[0].Title != "Ingeniería" {
		t.Fatalf("programs = %+v, want exactly Ingeniería", out[0].Programs)
	}
	// The orphan referencing code 999 is dropped without error.
	if stats.Attached != 1 {
		t.Errorf("attached = %d, want 1", stats.Attached)
	}
}

func TestLinkFiltersInstitutionsWithoutPrograms(t *testing.T) {
	iesRows := []socrata.Row{
		{"codigo": "101", "nombre": "Con programas"},
		{"codigo": "202", "nombre": "Sin programas"},
	}
	programRows := []socrata.Row{
		{"inst_code": "101", "programa_academico": "Derecho"},
	}

	out, _ := Link(iesRows, programRows, "codigo", "inst_code", zerolog.Nop())

	for _, u := range out {
		if len(u.Programs) < 1 {
			t.Errorf("institution %q has no programs in final output", u.Name)
		}
	}
	if len(out) != 1 {
		t.Errorf("linked = %d, want 1", len(out))
	}
}

func TestLinkJoinUsesNormalizedCodes(t *testing.T) {
	// Institution publishes "0001714", programs publish "1714.0"; both must
	// canonicalize identically for the join to attach.
	iesRows := []socrata.Row{
		{"codigo": "0001714", "nombre": "Uni Andes"},
	}
	programRows := []socrata.Row{
		{"inst_code": "1714.0", "programa_academico": "Economía"},
	}

	out, _ := Link(iesRows, programRows, "codigo", "inst_code", zerolog.Nop())

	if len(out) != 1 || len(out[0].Programs) != 1 {
		t.Fatalf("normalized join failed: %+v", out)
	}
}

func TestLinkFirstInstitutionWinsOnDuplicateCode(t *testing.T) {
	iesRows := []socrata.Row{
		{"codigo": "7", "nombre": "Primera"},
		{"codigo": "7", "nombre": "Segunda"},
	}
	programRows := []socrata.Row{
		{"inst_code": "7", "programa_academico": "Arte"},
	}

	out, _ := Link(iesRows, programRows, "codigo", "inst_code", zerolog.Nop())

	if len(out) != 1 || out[0].Name != "Primera" {
		t.Fatalf("duplicate handling wrong: %+v", out)
	}
}

func TestLinkSkipsRowsMissingNameOrCode(t *testing.T) {
	iesRows := []socrata.Row{
		{"codigo": "1", "nombre": ""},
		{"codigo": "", "nombre": "Sin código"},
		{"codigo": "2", "nombre": "Valida"},
	}
	programRows := []socrata.Row{
		{"inst_code": "1", "programa_academico": "A"},
		{"inst_code": "2", "programa_academico": "B"},
	}

	out, _ := Link(iesRows, programRows, "codigo", "inst_code", zerolog.Nop())

	if len(out) != 1 || out[0].Name != "Valida" {
		t.Fatalf("expected only Valida, got %+v", out)
	}
}

func TestLinkBackfillsInstitutionFields(t *testing.T) {
	iesRows := []socrata.Row{
		{"codigo": "3", "nombre": "Uni Backfill"},
	}
	programRows := []socrata.Row{
		{
			"inst_code":              "3",
			"programa_academico":     "Medicina",
			"enlace":                 "https://uni.example.edu",
			"municipio_de_oferta":    "Cali",
			"departamento_de_oferta": "Valle del Cauca",
		},
		{
			// A second program must not overwrite already-backfilled values.
			"inst_code":           "3",
			"programa_academico":  "Enfermería",
			"enlace":              "https://otra.example.edu",
			"municipio_de_oferta": "Palmira",
		},
	}

	out, _ := Link(iesRows, programRows, "codigo", "inst_code", zerolog.Nop())

	u := out[0]
	if u.Website != "https://uni.example.edu" {
		t.Errorf("Website = %q, first non-empty should win", u.Website)
	}
	if u.City != "Cali" || u.Department != "Valle del Cauca" {
		t.Errorf("backfill = %q/%q", u.City, u.Department)
	}
}

func TestLinkWebsiteFallsBackToPortal(t *testing.T) {
	iesRows := []socrata.Row{
		{"codigo": "4", "nombre": "Sin web"},
	}
	programRows := []socrata.Row{
		{"inst_code": "4", "programa_academico": "Física"},
	}

	out, _ := Link(iesRows, programRows, "codigo", "inst_code", zerolog.Nop())

	if out[0].Website != SNIESPortalURL {
		t.Errorf("Website = %q, want portal fallback", out[0].Website)
	}
}

func TestLinkSortsByNameWithSpanishCollation(t *testing.T) {
	iesRows := []socrata.Row{
		{"codigo": "1", "nombre": "Zulia"},
		{"codigo": "2", "nombre": "Ándes"},
		{"codigo": "3", "nombre": "Bolívar"},
	}
	programRows := []socrata.Row{
		{"inst_code": "1", "programa_academico": "A"},
		{"inst_code": "2", "programa_academico": "B"},
		{"inst_code": "3", "programa_academico": "C"},
	}

	out, _ := Link(iesRows, programRows, "codigo", "inst_code", zerolog.Nop())

	want := []string{"Ándes", "Bolívar", "Zulia"}
	for i, name := range want {
		if out[i].Name != name {
			t.Fatalf("order[%d] = %q, want %q", i, out[i].Name, name)
		}
	}
}
