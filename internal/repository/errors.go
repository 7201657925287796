package repository

import (
	"errors"
	"fmt"
	"regexp"
)

var (
	ErrSettingsNotFound = errors.New("settings not found")
	ErrLanguageNotFound = errors.New("language not found")
	ErrInvalidLanguage  = errors.New("invalid language tag")
)

// languageTagPattern accepts tags such as "de", "en", "pt-BR".
var languageTagPattern = regexp.MustCompile(`^[a-z]{2,3}(-[A-Za-z0-9]{1,8})?$`)

// ValidateLanguage checks that tag is a plain language tag safe to use in paths and keys.
func ValidateLanguage(tag string) error {
	if !languageTagPattern.MatchString(tag) {
		return fmt.Errorf("%w: %q", ErrInvalidLanguage, tag)
	}
	return nil
}
