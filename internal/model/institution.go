package model

// Program level labels as the frontend renders them.
const (
	LevelPregrado        = "Pregrado"
	LevelTecnico         = "Técnico"
	LevelTecnologico     = "Tecnológico"
	LevelEspecializacion = "Especialización"
	LevelMaestria        = "Maestría"
	LevelDoctorado       = "Doctorado"
)

// Program modality labels.
const (
	ModalityPresencial = "Presencial"
	ModalityVirtual    = "Virtual"
	ModalityHibrida    = "Híbrida"
)

// Institution type labels.
const (
	TypePublica = "Pública"
	TypePrivada = "Privada"
)

// Website liveness statuses written by the validate-websites run.
const (
	WebsiteValid    = "valid"
	WebsiteRedirect = "redirect"
	WebsiteInvalid  = "invalid"
	WebsiteMissing  = "missing"
)

// Program is the denormalized program summary embedded in an Institution.
// Tuition is never populated by the linkage run; it is reserved for manual
// enrichment.
type Program struct {
	ID             string   `json:"id"`
	Title          string   `json:"title"`
	Level          string   `json:"level"`
	Area           string   `json:"area"`
	DurationMonths int      `json:"durationMonths"`
	Modality       string   `json:"modality"`
	TuitionCOPYear int64    `json:"tuitionCOPYear"`
	Requirements   []string `json:"requirements"`
}

// Review is a user review placeholder. The linkage run always emits an empty
// list; only the synthetic SENA entry carries a seeded review.
type Review struct {
	Name   string `json:"name"`
	Rating int    `json:"rating"`
	Text   string `json:"text"`
}

// Institution is one record of the universities.json artifact consumed by the
// frontend. It is fully regenerated on every linkage run.
type Institution struct {
	ID              string    `json:"id"`
	InstitutionCode string    `json:"institutionCode"`
	Name            string    `json:"name"`
	Type            string    `json:"type"`
	City            string    `json:"city"`
	Department      string    `json:"department"`
	Website         string    `json:"website"`
	Logo            string    `json:"logo"`
	Programs        []Program `json:"programs"`
	Reviews         []Review  `json:"reviews"`

	// Set by the validate-websites run, absent otherwise.
	WebsiteNormalized string `json:"websiteNormalized,omitempty"`
	WebsiteStatus     string `json:"websiteStatus,omitempty"`
	WebsiteCheckedAt  string `json:"websiteCheckedAt,omitempty"`
}
