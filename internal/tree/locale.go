package tree

import (
	"os"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// localeEnvironmentVariables lists collation locale sources in POSIX
// precedence order.
var localeEnvironmentVariables = []string{"LC_ALL", "LC_COLLATE", "LANG"}

// localeCollator builds a collator for the host locale. When no usable locale
// is present in the environment the undetermined tag is used, which yields a
// stable Unicode default ordering.
func localeCollator() *collate.Collator {
	return collate.New(hostLanguageTag())
}

// hostLanguageTag resolves the collation language from the environment.
func hostLanguageTag() language.Tag {
	for _, environmentVariable := range localeEnvironmentVariables {
		localeValue := os.Getenv(environmentVariable)
		if parsedTag, parsed := parseLocaleValue(localeValue); parsed {
			return parsedTag
		}
	}
	return language.Und
}

// parseLocaleValue converts a POSIX locale string such as "en_US.UTF-8" into a
// BCP 47 language tag. Values like "C" and "POSIX" carry no language and are
// rejected.
func parseLocaleValue(localeValue string) (language.Tag, bool) {
	trimmedValue := strings.TrimSpace(localeValue)
	if trimmedValue == "" {
		return language.Und, false
	}
	if encodingIndex := strings.IndexAny(trimmedValue, ".@"); encodingIndex >= 0 {
		trimmedValue = trimmedValue[:encodingIndex]
	}
	if trimmedValue == "" || trimmedValue == "C" || trimmedValue == "POSIX" {
		return language.Und, false
	}
	parsedTag, parseError := language.Parse(strings.ReplaceAll(trimmedValue, "_", "-"))
	if parseError != nil {
		return language.Und, false
	}
	return parsedTag, true
}
