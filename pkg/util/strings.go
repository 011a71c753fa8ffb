package util

import "strings"

// NormaliseLineCode trims and upper-cases a line code so 500t and " 500T " are the same line
func NormaliseLineCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// RemoveDuplicateStrings keeps the first occurrence of every non-empty string not in ignoreList
func RemoveDuplicateStrings(strings []string, ignoreList []string) []string {
	presentStrings := make(map[string]bool)
	list := []string{}

	for _, ignoreString := range ignoreList {
		presentStrings[ignoreString] = true
	}

	for _, item := range strings {
		if _, value := presentStrings[item]; !value && item != "" {
			presentStrings[item] = true
			list = append(list, item)
		}
	}
	return list
}

func ParseBool(value string) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "1", "true", "yes", "evet":
		return true
	}
	return false
}
