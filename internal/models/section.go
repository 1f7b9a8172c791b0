package models

import "strings"

// Section identifiers used as keys in progress records and as note/bookmark sections
const (
	SectionHome          = "home"
	SectionCharacters    = "characters"
	SectionOeuvre        = "oeuvre"
	SectionThemes        = "themes"
	SectionQuotes        = "quotes"
	SectionFiche         = "fiche"
	SectionComparison    = "comparison"
	SectionGlossary      = "glossary"
	SectionMindmaps      = "mindmaps"
	SectionHowTo         = "howto"
	SectionSampleAnswers = "sample_answers"
	SectionQuiz          = "quiz"
	SectionQuickQuiz     = "quiz_rapide"
	SectionNotes         = "notes"
	SectionBookmarks     = "bookmarks"
	SectionEcrits        = "ecrits"
	SectionAudio         = "audio"
	SectionExam          = "examen"
	SectionSearch        = "search"
	SectionQuickReview   = "quick_review"
	SectionProgress      = "progress"
	SectionAbout         = "about"
	SectionOther         = "other"
)

// sectionPaths maps client page paths to section identifiers
var sectionPaths = map[string]string{
	"/":               SectionHome,
	"/personnages":    SectionCharacters,
	"/oeuvre":         SectionOeuvre,
	"/themes":         SectionThemes,
	"/citations":      SectionQuotes,
	"/fiche":          SectionFiche,
	"/comparison":     SectionComparison,
	"/glossary":       SectionGlossary,
	"/mindmaps":       SectionMindmaps,
	"/howto":          SectionHowTo,
	"/sample-answers": SectionSampleAnswers,
	"/quiz":           SectionQuickQuiz,
	"/notes":          SectionNotes,
	"/bookmarks":      SectionBookmarks,
	"/ecrits":         SectionEcrits,
	"/audio":          SectionAudio,
	"/examen":         SectionExam,
	"/search":         SectionSearch,
	"/quick-review":   SectionQuickReview,
	"/progress":       SectionProgress,
	"/about":          SectionAbout,
}

// NoteSections lists the sections a note can be filed under
var NoteSections = []string{
	SectionCharacters,
	SectionThemes,
	SectionQuotes,
	SectionOeuvre,
	SectionComparison,
	SectionOther,
}

// SectionForPath resolves a client page path to its section identifier.
// Trailing slashes are ignored. The second value is false for unknown paths.
func SectionForPath(path string) (string, bool) {
	path = strings.TrimSpace(path)
	if len(path) > 1 {
		path = strings.TrimRight(path, "/")
	}
	if path == "" {
		path = "/"
	}
	section, ok := sectionPaths[path]
	return section, ok
}
