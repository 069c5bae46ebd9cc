package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTaskStatusValidation(t *testing.T) {
	assert.True(t, IsValidTaskStatus(StatusNotStarted))
	assert.True(t, IsValidTaskStatus(StatusInProgress))
	assert.True(t, IsValidTaskStatus(StatusCompleted))

	assert.False(t, IsValidTaskStatus(StatusPlanning))
	assert.False(t, IsValidTaskStatus("done"))
	assert.False(t, IsValidTaskStatus(""))
}

func TestProjectStatusValidation(t *testing.T) {
	assert.True(t, IsValidProjectStatus(StatusPlanning))
	assert.True(t, IsValidProjectStatus(StatusNotStarted))
	assert.True(t, IsValidProjectStatus(StatusInProgress))
	assert.True(t, IsValidProjectStatus(StatusCompleted))

	assert.False(t, IsValidProjectStatus("archived"))
}

func TestPriorityValidation(t *testing.T) {
	assert.True(t, IsValidPriority(PriorityLow))
	assert.True(t, IsValidPriority(PriorityMedium))
	assert.True(t, IsValidPriority(PriorityHigh))

	assert.False(t, IsValidPriority("urgent"))
	assert.False(t, IsValidPriority(""))
}
