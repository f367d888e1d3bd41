package seedevents

import (
	"fmt"
	"math/rand"
)

// Wire shapes matching the ingest log schema.
type eventRecord struct {
	Name    string        `json:"name"`
	Date    string        `json:"date"`
	Kind    string        `json:"kind"`
	Matches []matchRecord `json:"matches"`
}

type matchRecord struct {
	Fighter1    string `json:"fighter1"`
	Country1    string `json:"country1"`
	Fighter2    string `json:"fighter2"`
	Country2    string `json:"country2"`
	WeightClass string `json:"weight_class"`
	Method      string `json:"method"`
	Winner      string `json:"winner,omitempty"`
	Notes       string `json:"notes,omitempty"`
}

type vacancyRecord struct {
	Org         string `json:"org"`
	WeightClass string `json:"weight_class"`
	Champion    string `json:"champion"`
	Date        string `json:"date"`
	Message     string `json:"message"`
}

type tournamentRecord struct {
	Year     int    `json:"year"`
	Winner   string `json:"winner"`
	RunnerUp string `json:"runner_up"`
}

var (
	weightClasses = []string{
		"heavyweight", "bridgerweight", "middleweight",
		"welterweight", "lightweight", "featherweight",
	}
	orgs      = []string{"wwf", "wwo", "iwb", "ring"}
	countries = []string{"mx", "us", "jp", "ca", "gb", "ar"}

	firstNames = []string{
		"El Fantasma", "Rey", "Blue", "Gran", "Doctor", "Mil",
		"Apollo", "Iron", "King", "Silver", "Black", "Golden",
	}
	lastNames = []string{
		"Tormenta", "Demonio", "Aguila", "Relampago", "Centurion",
		"Coloso", "Huracan", "Serpiente", "Tigre", "Volador",
		"Martillo", "Leon",
	}
	months = []string{
		"January", "February", "March", "April", "May", "June",
		"July", "August", "September", "October", "November", "December",
	}
)

type fighter struct {
	name    string
	country string
}

type lineKey struct {
	org    string
	weight string
}

// generator produces a deterministic synthetic history.
type generator struct {
	rng     *rand.Rand
	rosters map[string][]fighter // weight class -> roster
	champs  map[lineKey]fighter  // tracked title holders

	events      []eventRecord
	vacancies   []vacancyRecord
	tournaments []tournamentRecord
	stats       Stats
}

func newGenerator(cfg *Config) *generator {
	g := &generator{
		rng:     rand.New(rand.NewSource(cfg.Seed)),
		rosters: make(map[string][]fighter),
		champs:  make(map[lineKey]fighter),
	}
	used := make(map[string]bool)
	for _, wc := range weightClasses {
		roster := make([]fighter, 0, cfg.RosterSize)
		for len(roster) < cfg.RosterSize {
			name := firstNames[g.rng.Intn(len(firstNames))] + " " +
				lastNames[g.rng.Intn(len(lastNames))]
			if used[name] {
				name = fmt.Sprintf("%s II", name)
			}
			if used[name] {
				continue
			}
			used[name] = true
			roster = append(roster, fighter{
				name:    name,
				country: countries[g.rng.Intn(len(countries))],
			})
		}
		g.rosters[wc] = roster
	}
	return g
}

// run simulates every year in the configured range.
func (g *generator) run(cfg *Config) {
	for year := cfg.StartYear; year <= cfg.EndYear; year++ {
		g.simulateYear(cfg, year)
	}
}

func (g *generator) simulateYear(cfg *Config, year int) {
	for m, month := range months {
		card := eventRecord{
			Name: fmt.Sprintf("%s Spectacular %d", month, year),
			Date: fmt.Sprintf("%s %d, %d", month, 1+g.rng.Intn(28), year),
			Kind: "ppv",
		}
		for _, wc := range weightClasses {
			titleOrg := ""
			if m%3 == 0 {
				titleOrg = orgs[(m/3+len(wc))%len(orgs)]
			}
			card.Matches = append(card.Matches, g.match(wc, titleOrg, card.Date, year))
		}
		g.events = append(g.events, card)
		g.stats.Cards++
		g.stats.Matches += len(card.Matches)

		if cfg.Weekly {
			weekly := eventRecord{
				Name: fmt.Sprintf("Tuesday Night Mat Wars %d-%02d", year, m+1),
				Date: fmt.Sprintf("%s %d, %d", month, 1+g.rng.Intn(28), year),
				Kind: "weekly",
			}
			for i := 0; i < 3; i++ {
				wc := weightClasses[g.rng.Intn(len(weightClasses))]
				weekly.Matches = append(weekly.Matches, g.match(wc, "", weekly.Date, year))
			}
			g.events = append(g.events, weekly)
			g.stats.Cards++
			g.stats.Matches += len(weekly.Matches)
		}
	}

	// One Open Tournament edition per year.
	roster := g.rosters["heavyweight"]
	winner := roster[g.rng.Intn(len(roster))]
	runnerUp := roster[g.rng.Intn(len(roster))]
	g.tournaments = append(g.tournaments, tournamentRecord{
		Year:     year,
		Winner:   winner.name,
		RunnerUp: runnerUp.name,
	})
	g.stats.Tournaments++

	// Rarely a champion walks out and the belt is vacated.
	if g.rng.Intn(8) == 0 {
		g.vacate(year)
	}
}

func (g *generator) match(weight, titleOrg, date string, year int) matchRecord {
	roster := g.rosters[weight]
	a := roster[g.rng.Intn(len(roster))]
	b := roster[g.rng.Intn(len(roster))]
	for b.name == a.name {
		b = roster[g.rng.Intn(len(roster))]
	}

	key := lineKey{org: titleOrg, weight: weight}
	if titleOrg != "" {
		// The champion, once crowned, shows up to defend.
		if champ, ok := g.champs[key]; ok {
			a = champ
		}
		g.stats.TitleMatches++
	}

	method, decisive := g.method()
	rec := matchRecord{
		Fighter1:    a.name,
		Country1:    a.country,
		Fighter2:    b.name,
		Country2:    b.country,
		WeightClass: weight,
		Method:      method,
	}
	if decisive {
		if g.rng.Intn(3) > 0 {
			rec.Winner = a.name
		} else {
			rec.Winner = b.name
		}
	}
	if titleOrg != "" {
		rec.Notes = fmt.Sprintf("%s %s Title Match", orgLabel(titleOrg), titleCase(weight))
		if decisive && changeEligible(method) {
			winner := a
			if rec.Winner == b.name {
				winner = b
			}
			g.champs[key] = winner
		}
	}
	return rec
}

func (g *generator) vacate(year int) {
	for key, champ := range g.champs {
		g.vacancies = append(g.vacancies, vacancyRecord{
			Org:         key.org,
			WeightClass: key.weight,
			Champion:    champ.name,
			Date:        fmt.Sprintf("December 31, %d", year),
			Message:     "Stripped of the title after an injury",
		})
		delete(g.champs, key)
		g.stats.Vacancies++
		return
	}
}

func (g *generator) method() (string, bool) {
	switch g.rng.Intn(10) {
	case 0:
		return "Time Limit Draw", false
	case 1:
		return "Count Out", true
	case 2:
		return "Disqualification", true
	case 3, 4:
		return "Submission", true
	case 5:
		return "Decision", true
	default:
		return "Pinfall", true
	}
}

func changeEligible(method string) bool {
	return method != "Count Out" && method != "Disqualification"
}

func orgLabel(org string) string {
	if org == "ring" {
		return "The Ring"
	}
	out := make([]byte, len(org))
	for i := 0; i < len(org); i++ {
		out[i] = org[i] - 'a' + 'A'
	}
	return string(out)
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return string(s[0]-'a'+'A') + s[1:]
}
