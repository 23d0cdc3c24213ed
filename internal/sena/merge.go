package sena

import (
	"strings"

	"github.com/imgoedu/imgo-backend/internal/linkage"
	"github.com/imgoedu/imgo-backend/internal/model"
)

// InstitutionID is the fixed id of the synthetic SENA entry; merging replaces
// any prior entry with this id.
const InstitutionID = "sena"

// ModalityFromCode maps the catalogue's single-letter modality codes.
func ModalityFromCode(code string) string {
	switch strings.ToUpper(strings.TrimSpace(code)) {
	case "V":
		return model.ModalityVirtual
	case "H":
		return model.ModalityHibrida
	default:
		return model.ModalityPresencial
	}
}

// GuessLevel derives the level from the program title. SENA only offers
// technical tracks, so anything that is not a "tecnólogo" counts as Técnico.
func GuessLevel(title string) string {
	t := strings.ToLower(title)
	if strings.Contains(t, "tecnólogo") || strings.Contains(t, "tecnologo") {
		return model.LevelTecnologico
	}
	return model.LevelTecnico
}

// areaRule buckets titles into knowledge areas by keyword, first match wins.
type areaRule struct {
	tokens []string
	area   string
}

var areaRules = []areaRule{
	{tokens: []string{"salud", "enfer", "medic"}, area: "Salud"},
	{tokens: []string{"software", "sistemas", "datos", "program"}, area: "Ingeniería y Tecnología"},
	{tokens: []string{"negocio", "admin", "contab", "finan"}, area: "Negocios"},
	{tokens: []string{"cocina", "gastr", "arte"}, area: "Artes y Humanidades"},
	{tokens: []string{"educ"}, area: "Educación"},
	{tokens: []string{"derech", "jur"}, area: "Derecho"},
}

// GuessArea derives the knowledge area from the program title.
func GuessArea(title string) string {
	t := strings.ToLower(title)
	for _, rule := range areaRules {
		for _, tok := range rule.tokens {
			if strings.Contains(t, tok) {
				return rule.area
			}
		}
	}
	return "Otros"
}

// Merge replaces any existing SENA entry in universities with one rebuilt from
// the scraped programs and re-sorts the dataset. When the scrape produced no
// programs, the prior entry is removed and nothing is appended, keeping the
// at-least-one-program invariant.
func Merge(universities []model.Institution, programs []Program) []model.Institution {
	filtered := make([]model.Institution, 0, len(universities)+1)
	for _, u := range universities {
		if u.ID != InstitutionID {
			filtered = append(filtered, u)
		}
	}

	inst := model.Institution{
		ID:         InstitutionID,
		Name:       "SENA (Servicio Nacional de Aprendizaje)",
		Type:       model.TypePublica,
		City:       "Nacional",
		Department: "Colombia",
		Website:    "https://www.sena.edu.co/",
		Logo:       "https://www.sena.edu.co/Style%20Library/alayout/images/logoSena.png",
		Programs:   []model.Program{},
		Reviews: []model.Review{
			{Name: "Estudiante", Rating: 5, Text: "Oferta amplia y gratuita; buena conexión con empleabilidad."},
		},
	}

	for _, sp := range programs {
		title := strings.TrimSpace(sp.Title)

		id := linkage.Slugify("sena-" + sp.ProgramID + "-" + title)
		if id == "" {
			id = "sena-" + sp.ProgramID
		}

		inst.Programs = append(inst.Programs, model.Program{
			ID:             id,
			Title:          title,
			Level:          GuessLevel(title),
			Area:           GuessArea(title),
			DurationMonths: 12,
			Modality:       ModalityFromCode(sp.Modality),
			TuitionCOPYear: 0,
			Requirements:   []string{"Inscripción SENA / convocatoria vigente"},
		})
	}

	if len(inst.Programs) == 0 {
		return filtered
	}

	filtered = append(filtered, inst)
	linkage.SortByName(filtered)
	return filtered
}
