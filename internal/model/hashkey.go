package model

import "github.com/vvka-141/dvgen/internal/naming"

// EffectiveHubName returns the hub name a non-link group produces, applying
// the concept precedence (group concept > table concept > table name).
func EffectiveHubName(t *Table, g BusinessKeyGroup) string {
	return naming.HubName(t.Name, t.HubConcept(g))
}

// EffectiveHashkeyName returns the hashkey name a non-link group contributes
// to the global hashkey namespace: its declared name, or the "hk_{hubName}"
// fallback when none is set.
func EffectiveHashkeyName(t *Table, g BusinessKeyGroup) string {
	if g.HashkeyName != "" {
		return g.HashkeyName
	}
	return naming.DefaultHashkeyName(EffectiveHubName(t, g))
}
