package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCapitalize(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"release", "Release"},
		{"demoRelease", "DemoRelease"},
		{"Release", "Release"},
		{"", ""},
		{"1st", "1st"},
		{"édition", "Édition"},
	}

	for _, test := range tests {
		result := Capitalize(test.input)
		assert.Equal(t, test.expected, result, "Capitalize(%q)", test.input)
	}
}

func TestAssembleTask(t *testing.T) {
	assert.Equal(t, "assembleRelease", AssembleTask("release"))
	assert.Equal(t, "assembleFreeDebug", AssembleTask("freeDebug"))
}

func TestRenameTask(t *testing.T) {
	tests := []struct {
		variant  string
		output   string
		index    int
		expected string
	}{
		{"release", "", 0, "renameApkAfterRelease"},
		{"release", "universal", 0, "renameApkAfterRelease"},
		{"release", "arm64", 1, "renameApkAfterReleaseArm64"},
		{"release", "", 2, "renameApkAfterRelease3"},
		{"freeRelease", " ", 1, "renameApkAfterFreeRelease2"},
	}

	for _, test := range tests {
		result := RenameTask(test.variant, test.output, test.index)
		assert.Equal(t, test.expected, result, "RenameTask(%q, %q, %d)", test.variant, test.output, test.index)
	}
}
