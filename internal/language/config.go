package language

import (
	"fmt"

	"github.com/spf13/viper"
)

// FromViper loads a custom profile from the "profile" section of the
// configuration, for languages without a built-in inventory:
//
//	profile:
//	  language: nl
//	  vowels: [a, e, i, o, u]
//	  diphthongs: [ej, au]
//	  consonants: [p, t, k, s, n]
//	  consonant_clusters: []
//	  not_symbol: "[^a-z ]"
//	  voice: nl
//
// The loaded profile is validated like any other.
func FromViper(v *viper.Viper) (Profile, error) {
	if !v.IsSet("profile") {
		return Profile{}, fmt.Errorf("no profile section in configuration")
	}

	p := Profile{
		Language:          v.GetString("profile.language"),
		Vowels:            v.GetStringSlice("profile.vowels"),
		Diphthongs:        v.GetStringSlice("profile.diphthongs"),
		Consonants:        v.GetStringSlice("profile.consonants"),
		ConsonantClusters: v.GetStringSlice("profile.consonant_clusters"),
		NotSymbol:         v.GetString("profile.not_symbol"),
		Voice:             v.GetString("profile.voice"),
	}
	if p.NotSymbol == "" {
		p.NotSymbol = "[^a-zA-Z ]"
	}
	return New(p)
}
