package tracks

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookup(t *testing.T) {
	task, ok := Lookup("web")
	require.True(t, ok)
	assert.Equal(t, "Web Development Task", task.Title)
	require.Len(t, task.Requirements, 3)
	assert.Equal(t, "Registration Form", task.Requirements[0].Title)
	assert.NotEmpty(t, task.Guidelines)
	assert.NotEmpty(t, task.TechStack)
	assert.NotEmpty(t, task.Resources)

	_, ok = Lookup("blockchain")
	assert.False(t, ok)

	_, ok = Lookup("")
	assert.False(t, ok)
}

func TestAllOrder(t *testing.T) {
	all := All()
	require.Len(t, all, 4)
	got := make([]string, len(all))
	for i, task := range all {
		got[i] = task.Track
	}
	assert.Equal(t, []string{"android", "web", "ml", "game"}, got)
}

func TestEveryTaskIsComplete(t *testing.T) {
	for _, task := range All() {
		assert.NotEmpty(t, task.Title, task.Track)
		assert.NotEmpty(t, task.Description, task.Track)
		assert.NotEmpty(t, task.Requirements, task.Track)
		for _, res := range task.Resources {
			assert.NotEmpty(t, res.URL, task.Track)
		}
	}
}
