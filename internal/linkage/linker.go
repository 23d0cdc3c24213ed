package linkage

import (
	"sort"

	"github.com/rs/zerolog"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/imgoedu/imgo-backend/internal/model"
	"github.com/imgoedu/imgo-backend/internal/socrata"
)

// Stats summarizes one linkage run for logging.
type Stats struct {
	Institutions int
	Programs     int
	Indexed      int
	Attached     int
	Dropped      int
	Linked       int
}

// BuildCodeSet collects the distinct normalized values of the given column.
func BuildCodeSet(rows []socrata.Row, key string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, row := range rows {
		if v := NormalizeCode(row[key]); v != "" {
			set[v] = struct{}{}
		}
	}
	return set
}

// Link builds the join index over institutions and attaches every matching
// program. Programs whose institution code resolves to nothing are dropped
// silently; partial coverage between the two datasets is expected, not an
// error. Institutions that end up with zero programs are filtered out of the
// result.
func Link(iesRows, programRows []socrata.Row, iesCodeKey, programCodeKey string, log zerolog.Logger) ([]model.Institution, Stats) {
	stats := Stats{Institutions: len(iesRows), Programs: len(programRows)}

	// Index institutions by normalized code. First institution wins on
	// duplicate codes; later duplicates are dropped, not merged.
	byCode := make(map[string]*model.Institution)
	var ordered []*model.Institution

	for _, row := range iesRows {
		inst := NormalizeInstitution(row, iesCodeKey)
		if inst.Name == "" || inst.InstitutionCode == "" {
			continue
		}
		if _, dup := byCode[inst.InstitutionCode]; dup {
			continue
		}
		u := inst
		byCode[u.InstitutionCode] = &u
		ordered = append(ordered, &u)
	}
	stats.Indexed = len(byCode)

	for _, row := range programRows {
		code := NormalizeCode(row[programCodeKey])
		inst, ok := byCode[code]
		if !ok {
			stats.Dropped++
			continue
		}

		p := NormalizeProgram(row)
		if p.Title == "" {
			stats.Dropped++
			continue
		}

		inst.Programs = append(inst.Programs, p.Program)
		stats.Attached++

		// Opportunistic backfill: first non-empty value wins.
		if inst.Website == "" && p.Website != "" {
			inst.Website = p.Website
		}
		if (inst.City == "N/A" || inst.City == "") && p.City != "" {
			inst.City = p.City
		}
		if (inst.Department == "N/A" || inst.Department == "") && p.Department != "" {
			inst.Department = p.Department
		}
	}

	out := make([]model.Institution, 0, len(ordered))
	for _, inst := range ordered {
		if len(inst.Programs) == 0 {
			continue
		}
		if inst.Website == "" {
			inst.Website = SNIESPortalURL
		}
		out = append(out, *inst)
	}
	stats.Linked = len(out)

	SortByName(out)

	log.Info().
		Int("institutions", stats.Institutions).
		Int("programs", stats.Programs).
		Int("indexed", stats.Indexed).
		Int("attached", stats.Attached).
		Int("linked", stats.Linked).
		Msg("linkage complete")

	return out, stats
}

// SortByName orders institutions by display name using Spanish collation, the
// order the frontend expects.
func SortByName(list []model.Institution) {
	coll := collate.New(language.Spanish)
	sort.SliceStable(list, func(i, j int) bool {
		return coll.CompareString(list[i].Name, list[j].Name) < 0
	})
}
