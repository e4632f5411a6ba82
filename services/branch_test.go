package services

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveBranchByIDAndSlug(t *testing.T) {
	db := newTestDB(t)
	branch := seedBranch(t, db, "Downtown")

	byID, err := ResolveBranch(db, fmt.Sprintf("%d", branch.ID))
	require.NoError(t, err)
	require.NotNil(t, byID)
	assert.Equal(t, branch.ID, byID.ID)

	bySlug, err := ResolveBranch(db, branch.Slug)
	require.NoError(t, err)
	require.NotNil(t, bySlug)
	assert.Equal(t, branch.ID, bySlug.ID)

	missing, err := ResolveBranch(db, "no-such-slug")
	require.NoError(t, err)
	assert.Nil(t, missing)

	missingID, err := ResolveBranch(db, "9999")
	require.NoError(t, err)
	assert.Nil(t, missingID)

	blank, err := ResolveBranch(db, "   ")
	require.NoError(t, err)
	assert.Nil(t, blank)
}
