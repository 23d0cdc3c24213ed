package linkage

import (
	"math"
	"strconv"
	"strings"

	"github.com/imgoedu/imgo-backend/internal/model"
	"github.com/imgoedu/imgo-backend/internal/socrata"
)

// SNIESPortalURL is the government portal used as website fallback for
// institutions that publish none.
const SNIESPortalURL = "https://snies.mineducacion.gov.co/portal/consultas/"

// DefaultDurationMonths is assumed when the raw duration is unparsable.
const DefaultDurationMonths = 96

// ResolveField returns the first present, non-empty value among the aliased
// raw field names, trimmed. First match wins; values are never merged.
func ResolveField(row socrata.Row, aliases ...string) string {
	for _, k := range aliases {
		v, ok := row[k]
		if !ok || v == nil {
			continue
		}
		s := strings.TrimSpace(stringify(v))
		if s != "" {
			return s
		}
	}
	return ""
}

// Field alias lists, in priority order, covering the names the publishers have
// used across dataset releases.
var (
	institutionNameAliases = []string{"nombre_institucion", "nombre_ies", "institucion", "ies", "nombre", "nombreinstitucion"}
	institutionDeptAliases = []string{"departamento", "depto", "departamento_ies", "nombredepartinstitucion"}
	institutionCityAliases = []string{"municipio", "ciudad", "municipio_ies", "municipio_de_oferta", "nombremunicipioinstitucion"}
	institutionTypeAliases = []string{"caracter_academico", "sector", "naturaleza", "tipo_institucion", "caracteracademico"}
	institutionWebAliases  = []string{"pagina_web", "sitio_web", "web", "url", "pagina"}

	programIDAliases       = []string{"codigo_snies_del_programa", "codigo_snies_programa", "cod_programa", "snies_programa", "codigo_del_programa"}
	programTitleAliases    = []string{"programa_academico", "nombre_programa", "programa", "denominacion", "nombre_del_programa"}
	programLevelAliases    = []string{"nivel_de_formacion", "nivel_formacion", "nivel", "ciclo"}
	programModalityAliases = []string{"metodologia", "modalidad", "metodologia_programa"}
	programAreaAliases     = []string{"area_de_conocimiento", "nucleo_basico_del_conocimiento", "nbc", "area"}
	programDurationAliases = []string{"duracion_estimada", "duracion", "numero_de_semestres", "semestres"}
	programCityAliases     = []string{"municipio_de_oferta", "municipio", "ciudad"}
	programDeptAliases     = []string{"departamento_de_oferta", "departamento", "depto"}
	programURLAliases      = []string{"enlace", "url", "pagina_web", "sitio_web"}
)

// keywordRule maps a set of substrings to a categorical value; rule lists are
// evaluated in order and the first match wins.
type keywordRule struct {
	tokens []string
	value  string
}

var levelRules = []keywordRule{
	{tokens: []string{"tecno"}, value: model.LevelTecnologico},
	{tokens: []string{"técn", "tecnic"}, value: model.LevelTecnico},
	{tokens: []string{"espec"}, value: model.LevelEspecializacion},
	{tokens: []string{"maestr"}, value: model.LevelMaestria},
	{tokens: []string{"doctor"}, value: model.LevelDoctorado},
}

var modalityRules = []keywordRule{
	{tokens: []string{"virtual", "distancia"}, value: model.ModalityVirtual},
	{tokens: []string{"hibr"}, value: model.ModalityHibrida},
}

func matchKeyword(raw string, rules []keywordRule, fallback string) string {
	s := strings.ToLower(raw)
	for _, rule := range rules {
		for _, tok := range rule.tokens {
			if strings.Contains(s, tok) {
				return rule.value
			}
		}
	}
	return fallback
}

// MapLevel derives the enumerated program level from the raw free-text field.
func MapLevel(raw string) string {
	return matchKeyword(raw, levelRules, model.LevelPregrado)
}

// MapModality derives the enumerated modality. The virtual/distancia rule
// runs first, so "presencial y virtual" counts as Virtual; the combination
// check only catches abbreviated forms the keyword rules miss.
func MapModality(raw string) string {
	s := strings.ToLower(raw)
	if v := matchKeyword(s, modalityRules, ""); v != "" {
		return v
	}
	if strings.Contains(s, "pres") && strings.Contains(s, "virt") {
		return model.ModalityHibrida
	}
	return model.ModalityPresencial
}

// ParseDurationMonths converts the raw duration field into months. A numeric
// value of 20 or below is assumed to be semesters and multiplied by 6, as is
// anything explicitly labeled "sem"; larger values are taken as months.
func ParseDurationMonths(raw string) int {
	d, err := strconv.ParseFloat(strings.ReplaceAll(raw, ",", "."), 64)
	if err != nil || d <= 0 {
		return DefaultDurationMonths
	}
	if strings.Contains(strings.ToLower(raw), "sem") || (d >= 1 && d <= 20) {
		return int(math.Round(d * 6))
	}
	return int(math.Round(d))
}

// NormalizeInstitution maps a raw institution row into the canonical shape,
// reading the join code from the detected codeKey column. Callers must discard
// results missing a name or a code.
func NormalizeInstitution(row socrata.Row, codeKey string) model.Institution {
	code := NormalizeCode(row[codeKey])

	name := ResolveField(row, institutionNameAliases...)
	dept := ResolveField(row, institutionDeptAliases...)
	city := ResolveField(row, institutionCityAliases...)
	rawType := ResolveField(row, institutionTypeAliases...)
	website := ResolveField(row, institutionWebAliases...)

	idBase := code
	if idBase == "" {
		idBase = randomSuffix()
	}
	id := Slugify(name + "-" + idBase)
	if id == "" {
		id = "ies-" + idBase
	}

	instType := model.TypePrivada
	if strings.Contains(rawType, "Oficial") {
		instType = model.TypePublica
	}

	if city == "" {
		city = "N/A"
	}
	if dept == "" {
		dept = "N/A"
	}

	return model.Institution{
		ID:              id,
		InstitutionCode: code,
		Name:            name,
		Type:            instType,
		City:            city,
		Department:      dept,
		Website:         website,
		Logo:            "",
		Programs:        []model.Program{},
		Reviews:         []model.Review{},
	}
}

// NormalizedProgram is a program plus the offer-location fields used only for
// backfilling its institution during linking; the persisted summary is the
// embedded model.Program.
type NormalizedProgram struct {
	model.Program
	City       string
	Department string
	Website    string
}

// NormalizeProgram maps a raw program row into the canonical shape. Tuition is
// always zero here; it is left for manual enrichment.
func NormalizeProgram(row socrata.Row) NormalizedProgram {
	programID := ResolveField(row, programIDAliases...)
	title := ResolveField(row, programTitleAliases...)
	area := ResolveField(row, programAreaAliases...)

	id := Slugify(title + "-" + programID)
	if id == "" {
		id = "prog-" + randomSuffix()
	}
	if area == "" {
		area = "Otros"
	}

	return NormalizedProgram{
		Program: model.Program{
			ID:             id,
			Title:          title,
			Level:          MapLevel(ResolveField(row, programLevelAliases...)),
			Area:           area,
			DurationMonths: ParseDurationMonths(ResolveField(row, programDurationAliases...)),
			Modality:       MapModality(ResolveField(row, programModalityAliases...)),
			TuitionCOPYear: 0,
			Requirements:   []string{},
		},
		City:       ResolveField(row, programCityAliases...),
		Department: ResolveField(row, programDeptAliases...),
		Website:    ResolveField(row, programURLAliases...),
	}
}
