package viewmodel

import (
	"testing"

	"settings-core/internal/entity"

	"github.com/stretchr/testify/assert"
)

func TestNavigationStack(t *testing.T) {
	var s NavigationStack

	_, ok := s.Pop()
	assert.False(t, ok)
	assert.Empty(t, s.Path())

	s.Push(entity.DestinationAccount)
	s.Push(entity.DestinationChangePassword)

	top, ok := s.Top()
	assert.True(t, ok)
	assert.Equal(t, entity.DestinationChangePassword, top)
	assert.Equal(t, []entity.Destination{entity.DestinationAccount, entity.DestinationChangePassword}, s.Path())

	popped, ok := s.Pop()
	assert.True(t, ok)
	assert.Equal(t, entity.DestinationChangePassword, popped)

	s.Push(entity.DestinationActiveSessions)
	s.PopToRoot()
	assert.Empty(t, s.Path())
}

func TestNavigationStack_PathIsCopy(t *testing.T) {
	var s NavigationStack
	s.Push(entity.DestinationPrivacy)

	path := s.Path()
	path[0] = entity.DestinationAbout

	assert.Equal(t, []entity.Destination{entity.DestinationPrivacy}, s.Path())
}
