// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package extraction

import (
	"regexp"

	"golang.org/x/text/language"

	"namescreen/internal/langdetect"
)

// NamePattern is a compiled person-name pattern with metadata. Group selects
// the capture group holding the name, 0 for the whole match.
type NamePattern struct {
	Pattern  *regexp.Regexp
	Name     string
	Priority int
	Group    int
}

// patternSets holds the per-language person-name patterns. Honorific-anchored
// patterns rank higher because the title is strong evidence of a person.
var patternSets = map[language.Tag][]NamePattern{
	langdetect.English: {
		{
			Pattern:  regexp.MustCompile(`(?:Mr|Mrs|Ms|Dr|Prof|Sir)\.?\s+([A-Z][a-z]+(?:\s+[A-Z][a-z]+){0,2})`),
			Name:     "en_honorific_name",
			Priority: 8,
			Group:    1,
		},
		{
			Pattern:  regexp.MustCompile(`\b[A-Z][a-z]+(?:\s+[A-Z][a-z]+){1,2}\b`),
			Name:     "en_capitalized_name",
			Priority: 5,
		},
	},
	langdetect.Spanish: {
		{
			Pattern:  regexp.MustCompile(`(?:Don|Doña|Sr\.?|Sra\.?|Dr\.?|Dra\.?)\s+([A-ZÁÉÍÓÚÑ][a-záéíóúñ]+(?:\s+[A-ZÁÉÍÓÚÑ][a-záéíóúñ]+){0,2})`),
			Name:     "es_honorific_name",
			Priority: 8,
			Group:    1,
		},
		{
			Pattern:  regexp.MustCompile(`\b[A-ZÁÉÍÓÚÑ][a-záéíóúñ]+(?:\s+(?:de|del|de la|de los|y)\s+[A-ZÁÉÍÓÚÑ][a-záéíóúñ]+|\s+[A-ZÁÉÍÓÚÑ][a-záéíóúñ]+){1,2}\b`),
			Name:     "es_capitalized_name",
			Priority: 5,
		},
	},
	langdetect.French: {
		{
			Pattern:  regexp.MustCompile(`(?:M\.|Mme|Mlle|Dr\.?|Pr\.?)\s+([A-ZÀÂÇÈÉÊËÎÏÔÛ][a-zàâçèéêëîïôûù]+(?:\s+[A-ZÀÂÇÈÉÊËÎÏÔÛ][a-zàâçèéêëîïôûù]+){0,2})`),
			Name:     "fr_honorific_name",
			Priority: 8,
			Group:    1,
		},
		{
			Pattern:  regexp.MustCompile(`\b[A-ZÀÂÇÈÉÊËÎÏÔÛ][a-zàâçèéêëîïôûù]+(?:\s+(?:de|du|des|le|la)\s+[A-ZÀÂÇÈÉÊËÎÏÔÛ][a-zàâçèéêëîïôûù]+|\s+[A-ZÀÂÇÈÉÊËÎÏÔÛ][a-zàâçèéêëîïôûù]+){1,2}\b`),
			Name:     "fr_capitalized_name",
			Priority: 5,
		},
	},
	langdetect.German: {
		{
			Pattern:  regexp.MustCompile(`(?:Herr|Frau|Dr\.?|Prof\.?)\s+([A-ZÄÖÜ][a-zäöüß]+(?:\s+[A-ZÄÖÜ][a-zäöüß]+){0,2})`),
			Name:     "de_honorific_name",
			Priority: 8,
			Group:    1,
		},
		{
			Pattern:  regexp.MustCompile(`\b[A-ZÄÖÜ][a-zäöüß]+(?:\s+(?:von|zu|van)\s+[A-ZÄÖÜ][a-zäöüß]+|\s+[A-ZÄÖÜ][a-zäöüß]+){1,2}\b`),
			Name:     "de_capitalized_name",
			Priority: 5,
		},
	},
}

// stoplists holds common words that the capitalized-name patterns pick up at
// sentence starts but that never denote persons.
var stoplists = map[language.Tag][]string{
	langdetect.English: {
		"however", "therefore", "although", "meanwhile", "furthermore",
		"nevertheless", "according", "monday", "tuesday", "wednesday",
		"thursday", "friday", "saturday", "sunday", "january", "february",
		"march", "april", "june", "july", "august", "september", "october",
		"november", "december", "new york", "united states", "last week",
	},
	langdetect.Spanish: {
		"según", "aunque", "también", "después", "durante", "mientras",
		"entonces", "además", "sin embargo",
	},
	langdetect.French: {
		"selon", "depuis", "pendant", "maintenant", "toujours", "encore",
		"ainsi", "donc", "cependant",
	},
	langdetect.German: {
		"jedoch", "außerdem", "während", "bereits", "dennoch", "schließlich",
		"allerdings", "nach informationen",
	},
}

// personIndicators are context words that raise confidence that a match is an
// individual rather than a place or organization.
var personIndicators = map[language.Tag][]string{
	langdetect.English: {"mr", "mrs", "ms", "president", "director", "prosecutor", "judge", "minister", "investigator", "spokesman", "ceo"},
	langdetect.Spanish: {"señor", "señora", "presidente", "director", "fiscal", "juez", "ministro"},
	langdetect.French:  {"monsieur", "madame", "président", "directeur", "procureur", "juge", "ministre"},
	langdetect.German:  {"herr", "frau", "präsident", "direktor", "staatsanwalt", "richter", "minister", "ermittlerin", "ermittler"},
}
