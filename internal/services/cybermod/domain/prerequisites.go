package domain

import "strings"

// MissingPrerequisites returns the unmet tokens of a comma-separated
// requirement string, with their original casing and in input order. Blank
// requirements return an empty slice.
func MissingPrerequisites(actor Actor, requirements string) []string {
	missing := []string{}
	if strings.TrimSpace(requirements) == "" {
		return missing
	}
	for _, raw := range strings.Split(requirements, ",") {
		original := strings.TrimSpace(raw)
		token := strings.ToLower(original)
		if token == "" {
			continue
		}
		if satisfiesToken(actor, token) || satisfiesFamily(actor, token) {
			continue
		}
		missing = append(missing, original)
	}
	return missing
}

// satisfiesToken matches on name or description. A matching cybermod must be
// installed; any other item counts by existence.
func satisfiesToken(actor Actor, token string) bool {
	for _, item := range actor.Items {
		if !item.Mentions(token) {
			continue
		}
		if !IsCybermod(item) || IsInstalled(item) {
			return true
		}
	}
	return false
}

func satisfiesFamily(actor Actor, token string) bool {
	for _, family := range prerequisiteFamilies {
		if !containsAny(token, family) {
			continue
		}
		for _, item := range actor.Items {
			name := strings.ToLower(item.Name)
			if IsInstalled(item) && IsCybermod(item) && containsAny(name, family) {
				return true
			}
		}
	}
	return false
}
