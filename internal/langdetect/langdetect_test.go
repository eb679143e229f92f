// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package langdetect

import (
	"testing"

	"golang.org/x/text/language"
)

func TestDetect(t *testing.T) {
	cases := []struct {
		name string
		text string
		want language.Tag
	}{
		{
			"english article",
			"The prosecutor said that the investigation into the bank was ongoing and that charges were expected.",
			English,
		},
		{
			"spanish article",
			"El fiscal dijo que la investigación sobre el banco seguía en curso y que se esperaban cargos según las autoridades.",
			Spanish,
		},
		{
			"french article",
			"Le procureur a déclaré que l'enquête sur la banque était en cours et que des accusations étaient attendues selon les autorités.",
			French,
		},
		{
			"german article",
			"Der Staatsanwalt sagte, dass die Ermittlungen gegen die Bank noch andauern und mit einer Anklage gerechnet wird.",
			German,
		},
		{"empty text", "", English},
		{"numbers only", "12345 67890", English},
		{"unknown language falls back", "Lorem ipsum dolor sit amet consectetur adipiscing elit", English},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Detect(tc.text); got != tc.want {
				t.Errorf("Detect() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestDetect_Deterministic(t *testing.T) {
	text := "Der Staatsanwalt sagte, dass die Ermittlungen andauern würden."
	first := Detect(text)
	for i := 0; i < 10; i++ {
		if got := Detect(text); got != first {
			t.Fatalf("Detect is not deterministic: %v vs %v", got, first)
		}
	}
}

func TestCode(t *testing.T) {
	cases := []struct {
		tag  language.Tag
		want string
	}{
		{English, "en"},
		{Spanish, "es"},
		{French, "fr"},
		{German, "de"},
	}
	for _, tc := range cases {
		if got := Code(tc.tag); got != tc.want {
			t.Errorf("Code(%v) = %q, want %q", tc.tag, got, tc.want)
		}
	}
}
