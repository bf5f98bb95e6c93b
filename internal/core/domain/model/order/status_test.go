package order_test

import (
	"testing"

	"textile/internal/core/domain/model/order"
	"textile/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatus_Validate(t *testing.T) {
	for _, s := range []order.Status{order.Open, order.Approved, order.InProgress, order.Completed, order.Cancelled} {
		require.NoError(t, s.Validate(), s.String())
	}

	err := order.Unknown.Validate()
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	assert.Contains(t, err.Error(), "status is invalid")
	assert.Equal(t, "Unknown", order.Status(42).String())
}

func TestStatus_Transitions(t *testing.T) {
	testCases := []struct {
		name     string
		from     order.Status
		move     func(order.Status) (order.Status, error)
		expected order.Status
		allowed  bool
	}{
		{"approve open", order.Open, order.Status.Approve, order.Approved, true},
		{"approve approved", order.Approved, order.Status.Approve, 0, false},
		{"start production from approved", order.Approved, order.Status.StartProduction, order.InProgress, true},
		{"start production from open", order.Open, order.Status.StartProduction, 0, false},
		{"continue production from approved", order.Approved, order.Status.ContinueProduction, order.InProgress, true},
		{"continue production in progress", order.InProgress, order.Status.ContinueProduction, order.InProgress, true},
		{"continue production from open", order.Open, order.Status.ContinueProduction, 0, false},
		{"complete in progress", order.InProgress, order.Status.Complete, order.Completed, true},
		{"complete approved", order.Approved, order.Status.Complete, 0, false},
		{"cancel open", order.Open, order.Status.Cancel, order.Cancelled, true},
		{"cancel approved", order.Approved, order.Status.Cancel, order.Cancelled, true},
		{"cancel in progress", order.InProgress, order.Status.Cancel, 0, false},
		{"cancel completed", order.Completed, order.Status.Cancel, 0, false},
		{"revert in progress", order.InProgress, order.Status.RevertToApproved, order.Approved, true},
		{"revert completed", order.Completed, order.Status.RevertToApproved, 0, false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			next, err := tc.move(tc.from)

			if tc.allowed {
				require.NoError(t, err)
				assert.Equal(t, tc.expected, next)
				return
			}
			require.ErrorIs(t, err, errs.ErrStateConflict)
			require.ErrorIs(t, err, errs.ErrInvalidTransition)
		})
	}
}

func TestStatus_Predicates(t *testing.T) {
	assert.True(t, order.Completed.IsTerminal())
	assert.True(t, order.Cancelled.IsTerminal())
	assert.False(t, order.InProgress.IsTerminal())
	assert.True(t, order.Approved.AcceptsJobs())
	assert.True(t, order.InProgress.AcceptsJobs())
	assert.False(t, order.Open.AcceptsJobs())
}
