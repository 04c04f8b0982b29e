package guard_test

import (
	"errors"
	"testing"

	"courierhub/internal/pkg/guard"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConstructorGuard(t *testing.T) {
	t.Run("creates_properly_constructed_guard", func(t *testing.T) {
		g := guard.NewConstructorGuard()

		customError := errors.New("test object not constructed")
		require.NoError(t, g.Validate(customError))
		require.NoError(t, g.Validate(nil))
	})
}

func TestConstructorGuard_Validate(t *testing.T) {
	t.Run("properly_constructed_guard_returns_nil", func(t *testing.T) {
		g := guard.NewConstructorGuard()

		require.NoError(t, g.Validate(errors.New("not constructed")))
	})

	t.Run("zero_value_guard_returns_custom_error", func(t *testing.T) {
		var g guard.ConstructorGuard // zero value
		expectedError := errors.New("entity not constructed")

		err := g.Validate(expectedError)

		require.Error(t, err)
		assert.Equal(t, expectedError, err)
	})

	t.Run("zero_value_guard_returns_default_error_when_nil", func(t *testing.T) {
		var g guard.ConstructorGuard // zero value

		err := g.Validate(nil)

		require.Error(t, err)
		assert.Equal(t, guard.ErrDefaultConstructorGuard, err)
	})

	t.Run("default_error_has_meaningful_message", func(t *testing.T) {
		assert.Equal(t, "object must be created via its constructor", guard.ErrDefaultConstructorGuard.Error())
	})
}

// TestConstructorGuardUsageExample demonstrates how ConstructorGuard is used
// in a domain object to enforce constructor usage.
func TestConstructorGuardUsageExample(t *testing.T) {
	type Fee struct {
		amount int
		guard  guard.ConstructorGuard
	}

	var errFeeNotConstructed = errors.New("Fee must be created via NewFee")

	newFee := func(amount int) (Fee, error) {
		if amount < 0 {
			return Fee{}, errors.New("amount cannot be negative")
		}
		return Fee{amount: amount, guard: guard.NewConstructorGuard()}, nil
	}

	validateFee := func(f Fee) error {
		return f.guard.Validate(errFeeNotConstructed)
	}

	t.Run("valid_construction_through_constructor", func(t *testing.T) {
		fee, err := newFee(5000)

		require.NoError(t, err)
		require.NoError(t, validateFee(fee))
		assert.Equal(t, 5000, fee.amount)
	})

	t.Run("zero_value_construction_fails_validation", func(t *testing.T) {
		var fee Fee // zero value

		err := validateFee(fee)

		require.Error(t, err)
		assert.Equal(t, errFeeNotConstructed, err)
	})

	t.Run("constructor_validates_business_rules", func(t *testing.T) {
		_, err := newFee(-1)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "amount cannot be negative")
	})
}

func TestConstructorGuardCanBePassedByValue(t *testing.T) {
	g := guard.NewConstructorGuard()
	testError := errors.New("test error")

	gCopy := g

	require.NoError(t, g.Validate(testError))
	require.NoError(t, gCopy.Validate(testError))
}
