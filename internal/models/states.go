package models

import "strings"

// NigerianStates lists the 36 states plus the FCT, in the order the server's
// location filter expects them spelled.
var NigerianStates = []string{
	"Abia", "Adamawa", "Akwa Ibom", "Anambra", "Bauchi", "Bayelsa", "Benue",
	"Borno", "Cross River", "Delta", "Ebonyi", "Edo", "Ekiti", "Enugu",
	"Gombe", "Imo", "Jigawa", "Kaduna", "Kano", "Katsina", "Kebbi", "Kogi",
	"Kwara", "Lagos", "Nasarawa", "Niger", "Ogun", "Ondo", "Osun", "Oyo",
	"Plateau", "Rivers", "Sokoto", "Taraba", "Yobe", "Zamfara", "FCT",
}

// NormalizeState maps a case-insensitive state name to its canonical
// spelling. The second return is false for anything that is not a state.
func NormalizeState(name string) (string, bool) {
	for _, s := range NigerianStates {
		if strings.EqualFold(s, name) {
			return s, true
		}
	}
	return "", false
}
