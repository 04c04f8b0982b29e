package commands_test

import (
	"testing"

	"courierhub/internal/core/application/usecases/commands"
	"courierhub/internal/core/domain/model/actor"
	"courierhub/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfirmDeliveryCommand_ValidInput(t *testing.T) {
	deliveryID := kernel.NewUUID()
	by := staffActor()

	cmd, err := commands.NewConfirmDeliveryCommand(deliveryID, by)
	require.NoError(t, err)
	require.NoError(t, cmd.Validate())
	assert.Equal(t, deliveryID, cmd.DeliveryID())
	assert.Equal(t, by, cmd.By())
}

func TestNewConfirmDeliveryCommand_InvalidDeliveryID(t *testing.T) {
	_, err := commands.NewConfirmDeliveryCommand(kernel.UUID{}, staffActor())
	require.Error(t, err)
	assert.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
}

func TestNewConfirmDeliveryCommand_UnconstructedActor(t *testing.T) {
	_, err := commands.NewConfirmDeliveryCommand(kernel.NewUUID(), actor.Actor{})
	require.Error(t, err)
	assert.ErrorIs(t, err, actor.ErrActorIsNotConstructed)
}

func TestConfirmDeliveryCommand_Validate_ZeroValue(t *testing.T) {
	var cmd commands.ConfirmDeliveryCommand // zero value, not constructed via constructor

	err := cmd.Validate()

	require.Error(t, err)
	require.ErrorIs(t, err, commands.ErrConfirmDeliveryCommandIsNotConstructed)
}
