package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestThemeChoice(t *testing.T) {
	for _, theme := range AllThemes {
		assert.True(t, theme.IsValid(), theme)
	}
	assert.False(t, ThemeChoice("sepia").IsValid())
	assert.Equal(t, "Dark", ThemeDark.DisplayName())
	assert.Equal(t, "System", ThemeChoice("").DisplayName())
}

func TestDestinationIsValid(t *testing.T) {
	assert.Len(t, AllDestinations, 9)
	assert.True(t, DestinationLicenses.IsValid())
	assert.False(t, Destination("billing").IsValid())
}
