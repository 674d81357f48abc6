package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devcoach/devcoach/internal/project"
)

func TestStatusUnreachableOllamaReturnsError(t *testing.T) {
	chdirTemp(t)
	proj := project.New("demo", "demo project", nil)
	proj.Meta.LLM.Port = 1 // nothing listens here
	require.NoError(t, proj.Save())

	statusCmd.SetContext(t.Context())
	err := statusCmd.RunE(statusCmd, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ollama unreachable")
}

func TestStatusWithoutProjectSucceedsWithHint(t *testing.T) {
	chdirTemp(t)

	statusCmd.SetContext(t.Context())
	require.NoError(t, statusCmd.RunE(statusCmd, nil))
}
