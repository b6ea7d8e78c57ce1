// Package synonyms maps free-text query fragments onto the closed taxonomy.
// It is a static-table-driven hint source for the router, not ground truth.
package synonyms

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/marcinkowskimikolaj/assetly/internal/assistant/textnorm"
)

// Table holds normalized synonym terms keyed to canonical taxonomy names.
// Terms are stored pre-folded (lowercase, no diacritics).
type Table struct {
	subSyn map[string]string // folded term -> canonical subcategory
	catSyn map[string]string // folded term -> canonical category
}

// subcategorySynonyms is the built-in term table. Keys are written in folded
// form because queries are folded before matching.
var subcategorySynonyms = map[string]string{
	"paliwo":        "Paliwo",
	"benzyna":       "Paliwo",
	"diesel":        "Paliwo",
	"tankowanie":    "Paliwo",
	"stacja paliw":  "Paliwo",
	"serwis":        "Serwis i naprawy",
	"naprawa":       "Serwis i naprawy",
	"mechanik":      "Serwis i naprawy",
	"przeglad":      "Serwis i naprawy",
	"ubezpieczenie auta":      "Ubezpieczenie auta",
	"ubezpieczenie samochodu": "Ubezpieczenie auta",
	"parking":     "Parkingi",
	"parkowanie":  "Parkingi",
	"autobus":     "Transport publiczny",
	"tramwaj":     "Transport publiczny",
	"pociag":      "Transport publiczny",
	"komunikacja": "Transport publiczny",
	"bilet miesieczny": "Transport publiczny",
	"spozywcze":        "Spożywcze",
	"zakupy spozywcze": "Spożywcze",
	"biedronka":        "Spożywcze",
	"lidl":             "Spożywcze",
	"zabka":            "Spożywcze",
	"restauracja":      "Restauracje",
	"restauracje":      "Restauracje",
	"kolacja na miescie": "Restauracje",
	"obiad na miescie":   "Jedzenie na mieście",
	"fast food":          "Jedzenie na mieście",
	"kebab":              "Jedzenie na mieście",
	"pizza":              "Jedzenie na mieście",
	"kawa":               "Kawa",
	"kawiarnia":          "Kawa",
	"czynsz":             "Czynsz",
	"najem":              "Czynsz",
	"prad":               "Prąd",
	"energia":            "Prąd",
	"gaz":                "Gaz",
	"woda":               "Woda",
	"internet":           "Internet",
	"meble":              "Wyposażenie",
	"wyposazenie":        "Wyposażenie",
	"zdrowie":            "Zdrowie i uroda",
	"lekarz":             "Zdrowie i uroda",
	"apteka":             "Zdrowie i uroda",
	"leki":               "Zdrowie i uroda",
	"dentysta":           "Zdrowie i uroda",
	"fryzjer":            "Zdrowie i uroda",
	"kosmetyczka":        "Zdrowie i uroda",
	"uroda":              "Zdrowie i uroda",
	"ubrania":            "Odzież",
	"odziez":             "Odzież",
	"buty":               "Odzież",
	"kino":               "Rozrywka",
	"koncert":            "Rozrywka",
	"rozrywka":           "Rozrywka",
	"silownia":           "Sport",
	"basen":              "Sport",
	"sport":              "Sport",
	"kurs":               "Edukacja",
	"szkolenie":          "Edukacja",
	"ksiazki":            "Edukacja",
	"edukacja":           "Edukacja",
	"prezent":            "Prezenty",
	"prezenty":           "Prezenty",
	"przedszkole":        "Przedszkole",
	"zlobek":             "Przedszkole",
	"zabawki":            "Zabawki",
	"oszczednosci":       "Oszczędności",
	"inwestycje":         "Inwestycje",
	"akcje":              "Inwestycje",
	"etf":                "Inwestycje",
	"prowizja":           "Prowizje i opłaty",
	"oplata bankowa":     "Prowizje i opłaty",
	"rata":               "Raty kredytu",
	"raty":               "Raty kredytu",
	"kredyt":             "Raty kredytu",
	"netflix":            "Streaming",
	"spotify":            "Streaming",
	"hbo":                "Streaming",
	"streaming":          "Streaming",
	"oprogramowanie":     "Oprogramowanie",
	"licencja":           "Oprogramowanie",
	"telefon":            "Telefon",
	"abonament":          "Telefon",
}

var categorySynonyms = map[string]string{
	"auto":        "Auto i transport",
	"samochod":    "Auto i transport",
	"transport":   "Auto i transport",
	"dojazdy":     "Auto i transport",
	"jedzenie":    "Jedzenie",
	"zywnosc":     "Jedzenie",
	"mieszkanie":  "Mieszkanie",
	"dom":         "Mieszkanie",
	"oplaty":      "Mieszkanie",
	"osobiste":    "Osobiste",
	"dzieci":      "Dzieci",
	"dziecko":     "Dzieci",
	"finanse":     "Finanse",
	"subskrypcje": "Subskrypcje",
	"abonamenty":  "Subskrypcje",
}

// DefaultTable returns the built-in synonym table.
func DefaultTable() *Table {
	t := &Table{
		subSyn: make(map[string]string, len(subcategorySynonyms)),
		catSyn: make(map[string]string, len(categorySynonyms)),
	}
	for term, sub := range subcategorySynonyms {
		t.subSyn[term] = sub
	}
	for term, cat := range categorySynonyms {
		t.catSyn[term] = cat
	}
	return t
}

// overridesFile mirrors the keyword-list layout of category config files.
type overridesFile struct {
	Subcategories []struct {
		Name     string   `yaml:"name"`
		Keywords []string `yaml:"keywords"`
	} `yaml:"subcategories"`
	Categories []struct {
		Name     string   `yaml:"name"`
		Keywords []string `yaml:"keywords"`
	} `yaml:"categories"`
}

// LoadOverrides merges extra synonym terms from a YAML file over the table.
// Keywords are folded on load, so the file may use diacritics freely.
func (t *Table) LoadOverrides(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("synonyms.LoadOverrides: %w", err)
	}
	var file overridesFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("synonyms.LoadOverrides: parse %s: %w", path, err)
	}
	for _, entry := range file.Subcategories {
		for _, kw := range entry.Keywords {
			t.subSyn[textnorm.Clean(kw)] = entry.Name
		}
	}
	for _, entry := range file.Categories {
		for _, kw := range entry.Keywords {
			t.catSyn[textnorm.Clean(kw)] = entry.Name
		}
	}
	return nil
}
