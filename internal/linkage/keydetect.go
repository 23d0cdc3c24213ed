package linkage

import (
	"sort"
	"strings"

	"github.com/imgoedu/imgo-backend/internal/socrata"
)

// DefaultSampleSize bounds how many rows the frequency scan inspects.
const DefaultSampleSize = 4000

// KeyScore is one column's score in a detection ranking.
type KeyScore struct {
	Key   string
	Score int
}

// DetectKeyByMatches scores every column of rows by how many of its normalized
// values appear in codes, over at most sampleN rows. The best-scoring column is
// the join key candidate; ties keep column encounter order (stable sort).
// Returns "" when no column matched at all.
func DetectKeyByMatches(rows []socrata.Row, codes map[string]struct{}, sampleN int) (string, []KeyScore) {
	if sampleN <= 0 {
		sampleN = DefaultSampleSize
	}

	counts := make(map[string]int)
	var order []string

	n := len(rows)
	if n > sampleN {
		n = sampleN
	}

	for i := 0; i < n; i++ {
		row := rows[i]
		if row == nil {
			continue
		}
		for _, k := range sortedKeys(row) {
			v := NormalizeCode(row[k])
			if v == "" {
				continue
			}
			if _, ok := codes[v]; !ok {
				continue
			}
			if counts[k] == 0 {
				order = append(order, k)
			}
			counts[k]++
		}
	}

	ranking := make([]KeyScore, 0, len(order))
	for _, k := range order {
		ranking = append(ranking, KeyScore{Key: k, Score: counts[k]})
	}
	sort.SliceStable(ranking, func(i, j int) bool {
		return ranking[i].Score > ranking[j].Score
	})
	if len(ranking) > 15 {
		ranking = ranking[:15]
	}

	if len(ranking) == 0 {
		return "", nil
	}
	return ranking[0].Key, ranking
}

// KeyNameRule scores a column name by substring. Tokens are alternatives; a
// rule's points apply at most once per column. Rules marked ProgramPenalty are
// skipped when scanning the programs dataset itself.
type KeyNameRule struct {
	Name           string
	Tokens         []string
	Points         int
	ProgramPenalty bool
}

// InstitutionKeyRules is the ordered rule list for spotting an institution
// identifier column by name. Tokens match the real datos.gov.co column names,
// so they stay in Spanish.
var InstitutionKeyRules = []KeyNameRule{
	{Name: "national registry", Tokens: []string{"snies"}, Points: 6},
	{Name: "institution word", Tokens: []string{"institucion", "instit"}, Points: 4},
	{Name: "ies acronym", Tokens: []string{"ies"}, Points: 3},
	{Name: "inst fragment", Tokens: []string{"inst"}, Points: 1},
	{Name: "code word", Tokens: []string{"codigo"}, Points: 2},
	{Name: "program field", Tokens: []string{"program"}, Points: -4, ProgramPenalty: true},
	{Name: "geographic field", Tokens: []string{"depart", "municip", "origen"}, Points: -2},
}

// DetectKeyByName is the fallback used when no column's values overlap the
// candidate set: it scores column names against InstitutionKeyRules. Only a
// positive score wins; "" means detection failed and the run must abort.
func DetectKeyByName(rows []socrata.Row, penalizePrograms bool) (string, []KeyScore) {
	if len(rows) == 0 {
		return "", nil
	}

	keys := sortedKeys(rows[0])
	ranking := make([]KeyScore, 0, len(keys))
	for _, k := range keys {
		ranking = append(ranking, KeyScore{Key: k, Score: scoreKeyName(k, penalizePrograms)})
	}
	sort.SliceStable(ranking, func(i, j int) bool {
		return ranking[i].Score > ranking[j].Score
	})
	if len(ranking) > 12 {
		ranking = ranking[:12]
	}

	if len(ranking) == 0 || ranking[0].Score <= 0 {
		return "", ranking
	}
	return ranking[0].Key, ranking
}

func scoreKeyName(key string, penalizePrograms bool) int {
	s := strings.ToLower(key)
	pts := 0
	for _, rule := range InstitutionKeyRules {
		if rule.ProgramPenalty && !penalizePrograms {
			continue
		}
		for _, tok := range rule.Tokens {
			if strings.Contains(s, tok) {
				pts += rule.Points
				break
			}
		}
	}
	return pts
}

// ColumnNames lists the columns of the first row, for diagnostics when
// detection fails.
func ColumnNames(rows []socrata.Row) []string {
	if len(rows) == 0 {
		return nil
	}
	return sortedKeys(rows[0])
}

// sortedKeys gives a deterministic column order; Go map iteration would
// otherwise randomize tie-breaks between equally scored columns.
func sortedKeys(row socrata.Row) []string {
	keys := make([]string, 0, len(row))
	for k := range row {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
