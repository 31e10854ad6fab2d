package tree

import (
	"testing"

	"golang.org/x/text/language"
)

func TestParseLocaleValue(testingInstance *testing.T) {
	testCases := []struct {
		testName    string
		localeValue string
		expectedTag language.Tag
		expectMatch bool
	}{
		{testName: "posix_with_encoding", localeValue: "en_US.UTF-8", expectedTag: language.MustParse("en-US"), expectMatch: true},
		{testName: "posix_with_modifier", localeValue: "de_DE@euro", expectedTag: language.MustParse("de-DE"), expectMatch: true},
		{testName: "bare_language", localeValue: "sv", expectedTag: language.MustParse("sv"), expectMatch: true},
		{testName: "c_locale_rejected", localeValue: "C", expectMatch: false},
		{testName: "c_locale_with_encoding_rejected", localeValue: "C.UTF-8", expectMatch: false},
		{testName: "posix_locale_rejected", localeValue: "POSIX", expectMatch: false},
		{testName: "empty_rejected", localeValue: "", expectMatch: false},
		{testName: "garbage_rejected", localeValue: "!!", expectMatch: false},
	}

	for _, testCase := range testCases {
		testingInstance.Run(testCase.testName, func(subtest *testing.T) {
			parsedTag, matched := parseLocaleValue(testCase.localeValue)
			if matched != testCase.expectMatch {
				subtest.Fatalf("expected match=%v, got %v", testCase.expectMatch, matched)
			}
			if matched && parsedTag != testCase.expectedTag {
				subtest.Errorf("expected tag %v, got %v", testCase.expectedTag, parsedTag)
			}
		})
	}
}

func TestHostLanguageTagPrecedence(testingInstance *testing.T) {
	testingInstance.Setenv("LC_ALL", "fr_FR.UTF-8")
	testingInstance.Setenv("LC_COLLATE", "de_DE.UTF-8")
	testingInstance.Setenv("LANG", "en_US.UTF-8")

	if resolvedTag := hostLanguageTag(); resolvedTag != language.MustParse("fr-FR") {
		testingInstance.Errorf("expected LC_ALL to win, got %v", resolvedTag)
	}
}

func TestHostLanguageTagFallsBackToUndetermined(testingInstance *testing.T) {
	testingInstance.Setenv("LC_ALL", "")
	testingInstance.Setenv("LC_COLLATE", "")
	testingInstance.Setenv("LANG", "C.UTF-8")

	if resolvedTag := hostLanguageTag(); resolvedTag != language.Und {
		testingInstance.Errorf("expected undetermined tag, got %v", resolvedTag)
	}
}
