package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "debatetab/pkg/domain-errors"
)

func TestNewTournament(t *testing.T) {
	tour, err := NewTournament(" wudc ", "World Championships", "", 1)
	require.NoError(t, err)
	assert.Equal(t, "wudc", tour.Slug)
	assert.Equal(t, "World Championships", tour.ShortName)
	assert.True(t, tour.Active)

	_, err = NewTournament("bad slug", "Name", "", 1)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeInvariantViolation))

	_, err = NewTournament("ok", " ", "", 1)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeInvariantViolation))
}

func TestRoundPatchApply(t *testing.T) {
	r := &Round{Seq: 1, Name: "Round 1", Stage: StagePreliminary, DrawType: DrawTypeRandom, DrawStatus: DrawStatusNone, Weight: 1}
	released := true
	name := " Round One "
	p := RoundPatch{MotionsReleased: &released, Name: &name}
	require.NoError(t, p.Validate())
	p.Apply(r)

	assert.True(t, r.MotionsReleased)
	assert.Equal(t, "Round One", r.Name)
	assert.Equal(t, 1, r.Seq)
}

func TestRoundUpdateValidate(t *testing.T) {
	u := RoundUpdate{Seq: 1, Name: "Round 1", Stage: StagePreliminary, DrawType: DrawTypeRandom, DrawStatus: DrawStatusReleased, Silent: true, Weight: 1}
	require.NoError(t, u.Validate())

	u.Stage = "X"
	assert.True(t, dErrors.HasCode(u.Validate(), dErrors.CodeValidation))
}

func TestPreferences(t *testing.T) {
	p := Preferences{}
	p.Normalize()
	assert.Equal(t, DefaultPreferences(), p)
	require.NoError(t, p.Validate())

	p.TeamNameGenerator = "roman"
	assert.Error(t, p.Validate())
}
