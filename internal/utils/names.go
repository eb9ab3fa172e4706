package utils

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Capitalize upper-cases the first rune of s ("demoRelease" -> "DemoRelease")
func Capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError || !unicode.IsLower(r) {
		return s
	}

	return string(unicode.ToTitle(r)) + s[size:]
}

// AssembleTask returns the assemble task name for a variant
func AssembleTask(variant string) string {
	return "assemble" + Capitalize(variant)
}

// RenameTask returns the rename task name for output index of a variant.
// The first output keeps the bare name; later ones get the output name or
// their 1-based position as a suffix.
func RenameTask(variant, output string, index int) string {
	name := "renameApkAfter" + Capitalize(variant)
	if index == 0 {
		return name
	}

	if output = strings.TrimSpace(output); output != "" {
		return name + Capitalize(output)
	}

	return name + strconv.Itoa(index+1)
}
