package history_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/lugassawan/gitlogjson/internal/git"
	"github.com/lugassawan/gitlogjson/internal/history"
	"github.com/lugassawan/gitlogjson/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const multiLineMessage = "Add parser | with \"pipes\"\n\nFirst paragraph.\n\n  indented line\nlast line\n"

func newHistoryRepo(t *testing.T) string {
	t.Helper()
	repo := testutil.NewTestRepo(t)
	testutil.Commit(t, repo, 1, "initial commit")
	testutil.Commit(t, repo, 2, multiLineMessage)
	testutil.Commit(t, repo, 3, "Fix: commas, semicolons; and {braces}")
	return repo
}

func TestIntegrationAllFields(t *testing.T) {
	repo := newHistoryRepo(t)

	res, err := history.Compute(&git.ExecRunner{}, repo, history.Options{
		Hash: true, Subject: true, Date: true, Body: true, AuthorName: true, AuthorEmail: true,
	})
	require.NoError(t, err)
	require.Len(t, res.Commits, 3)

	newest := res.Commits[0]
	assert.Equal(t, "Fix: commas, semicolons; and {braces}", *newest.Subject)
	assert.Len(t, *newest.Hash, 40)
	assert.Equal(t, "", *newest.Body)
	assert.Equal(t, testutil.AuthorName, *newest.Author.Name)
	assert.Equal(t, testutil.AuthorEmail, *newest.Author.Email)
	assert.True(t, strings.HasPrefix(*newest.Date, "2023-11-14T22:16:20"), *newest.Date)

	middle := res.Commits[1]
	assert.Equal(t, "Add parser | with \"pipes\"", *middle.Subject)
	assert.Equal(t, "First paragraph.\n\n  indented line\nlast line", *middle.Body)

	assert.Equal(t, "initial commit", *res.Commits[2].Subject)
}

func TestIntegrationSubjectEndingInUnitSeparator(t *testing.T) {
	repo := testutil.NewTestRepo(t)
	testutil.Commit(t, repo, 1, "subj\x1f")

	res, err := history.Compute(&git.ExecRunner{}, repo, history.Options{Subject: true, AuthorName: true})
	require.NoError(t, err)
	require.Len(t, res.Commits, 1)
	assert.Equal(t, "subj\x1f", *res.Commits[0].Subject)
	assert.Equal(t, testutil.AuthorName, *res.Commits[0].Author.Name)
}

func TestIntegrationLimit(t *testing.T) {
	repo := newHistoryRepo(t)

	res, err := history.Compute(&git.ExecRunner{}, repo, history.Options{Subject: true, Limit: 2})
	require.NoError(t, err)
	require.Len(t, res.Commits, 2)
	assert.Equal(t, "Fix: commas, semicolons; and {braces}", *res.Commits[0].Subject)

	all, err := history.Compute(&git.ExecRunner{}, repo, history.Options{Hash: true, Limit: 50})
	require.NoError(t, err)
	assert.Len(t, all.Commits, 3)
}

func TestIntegrationPassthrough(t *testing.T) {
	repo := newHistoryRepo(t)

	res, err := history.Compute(&git.ExecRunner{}, repo, history.Options{Pretty: true})
	require.NoError(t, err)
	require.Len(t, res.Blocks, 3)

	for _, block := range res.Blocks {
		assert.True(t, strings.HasPrefix(block, "commit "), "block = %q", block)
		assert.Contains(t, block, "Author: "+testutil.AuthorName+" <"+testutil.AuthorEmail+">")
	}
	assert.Contains(t, res.Blocks[1], "    First paragraph.\n")
}

func TestIntegrationNotARepository(t *testing.T) {
	testutil.RequireGit(t)
	dir := t.TempDir()
	t.Setenv("GIT_CEILING_DIRECTORIES", dir)

	_, err := history.Compute(&git.ExecRunner{}, dir, history.Options{Hash: true})
	require.Error(t, err)

	var perr *git.ProcessError
	require.True(t, errors.As(err, &perr), "err = %T %v", err, err)
	assert.NotZero(t, perr.ExitCode)
	assert.NotEmpty(t, perr.Stderr)
}
