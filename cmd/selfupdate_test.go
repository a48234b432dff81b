package cmd

import (
	"bytes"
	"testing"

	"github.com/creativeprojects/go-selfupdate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelfUpdateCmd_RefusesDevelopmentBuilds(t *testing.T) {
	for _, version := range []string{"", "dev"} {
		t.Run("version "+version, func(t *testing.T) {
			original := rootCmd.Version
			t.Cleanup(func() { rootCmd.Version = original })
			rootCmd.Version = version

			var out, errOut bytes.Buffer
			cmd := newSelfUpdateCmd()
			cmd.SetOut(&out)
			cmd.SetErr(&errOut)
			cmd.SetArgs([]string{})

			err := cmd.Execute()
			require.Error(t, err)
			assert.Contains(t, err.Error(), "cannot self-update a development version")
			assert.NotContains(t, out.String(), "Current version")
		})
	}
}

func TestGithubRepoSlug(t *testing.T) {
	slug := selfupdate.ParseSlug(githubRepoSlug)
	owner, repo, err := slug.GetSlug()
	require.NoError(t, err)
	assert.Equal(t, "fdu-backoffice", owner)
	assert.Equal(t, "clientctl", repo)
}
