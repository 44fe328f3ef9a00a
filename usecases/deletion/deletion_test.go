package deletion

import (
	"context"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dhis2/approval-backend/mocks"
	"github.com/dhis2/approval-backend/models"
	"github.com/dhis2/approval-backend/repositories/dbmodels"
)

func TestApprovalValidationAuditDeletionHandler(t *testing.T) {
	ctx := context.Background()
	exec := new(mocks.Executor)

	tests := []struct {
		kind   models.DeletableKind
		column string
	}{
		{models.DeletableDataSet, dbmodels.AuditColumnDataSet},
		{models.DeletableApprovalValidationRule, dbmodels.AuditColumnApprovalValidationRule},
		{models.DeletablePeriod, dbmodels.AuditColumnPeriod},
		{models.DeletableOrganisationUnit, dbmodels.AuditColumnOrganisationUnit},
		{models.DeletableCategoryOptionCombo, dbmodels.AuditColumnAttributeOptionCombo},
	}

	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			repository := new(mocks.ApprovalValidationAuditRepository)
			repository.On("CountApprovalValidationAudits", exec, tt.column, int64(12)).Return(0, nil).Once()
			repository.On("CountApprovalValidationAudits", exec, tt.column, int64(13)).Return(2, nil).Once()
			handler := NewApprovalValidationAuditDeletionHandler(repository)

			veto, err := handler.AllowDelete(ctx, exec, models.DeletableObject{Kind: tt.kind, Id: 12})
			require.NoError(t, err)
			assert.Empty(t, veto)

			veto, err = handler.AllowDelete(ctx, exec, models.DeletableObject{Kind: tt.kind, Id: 13})
			require.NoError(t, err)
			assert.Contains(t, veto, "ApprovalValidationAudit")

			repository.AssertExpectations(t)
		})
	}

	t.Run("unguarded kind", func(t *testing.T) {
		repository := new(mocks.ApprovalValidationAuditRepository)
		handler := NewApprovalValidationAuditDeletionHandler(repository)

		veto, err := handler.AllowDelete(ctx, exec, models.DeletableObject{Kind: models.DeletableUnknown, Id: 1})
		require.NoError(t, err)
		assert.Empty(t, veto)
		repository.AssertNotCalled(t, "CountApprovalValidationAudits")
	})

	t.Run("repository error", func(t *testing.T) {
		repositoryError := errors.New("connection refused")
		repository := new(mocks.ApprovalValidationAuditRepository)
		repository.On("CountApprovalValidationAudits", exec, dbmodels.AuditColumnPeriod, int64(1)).Return(0, repositoryError)
		handler := NewApprovalValidationAuditDeletionHandler(repository)

		_, err := handler.AllowDelete(ctx, exec, models.DeletableObject{Kind: models.DeletablePeriod, Id: 1})
		assert.ErrorIs(t, err, repositoryError)
	})
}

func TestDeletionManager_AllowDelete(t *testing.T) {
	ctx := context.Background()
	exec := new(mocks.Executor)
	object := models.DeletableObject{Kind: models.DeletableDataSet, Id: 5}

	t.Run("no veto", func(t *testing.T) {
		first := &mocks.DeletionHandler{Name: "First"}
		first.On("AllowDelete", exec, object).Return("", nil)
		manager := NewDeletionManager(new(mocks.ExecutorFactory), first)

		assert.NoError(t, manager.AllowDelete(ctx, exec, object))
		first.AssertExpectations(t)
	})

	t.Run("stops at the first veto", func(t *testing.T) {
		first := &mocks.DeletionHandler{Name: "First"}
		first.On("AllowDelete", exec, object).Return("referenced by First", nil)
		second := &mocks.DeletionHandler{Name: "Second"}
		manager := NewDeletionManager(new(mocks.ExecutorFactory), first)
		manager.Register(second)

		err := manager.AllowDelete(ctx, exec, object)
		assert.ErrorIs(t, err, models.ErrDeletionVetoed)
		assert.ErrorIs(t, err, models.ConflictError)
		assert.Contains(t, err.Error(), "referenced by First")
		second.AssertNotCalled(t, "AllowDelete", exec, object)
	})

	t.Run("handler error", func(t *testing.T) {
		handlerError := errors.New("boom")
		first := &mocks.DeletionHandler{Name: "First"}
		first.On("AllowDelete", exec, object).Return("", handlerError)
		manager := NewDeletionManager(new(mocks.ExecutorFactory), first)

		err := manager.AllowDelete(ctx, exec, object)
		assert.ErrorIs(t, err, handlerError)
		assert.NotErrorIs(t, err, models.ErrDeletionVetoed)
	})
}

func TestDeletionManager_Check(t *testing.T) {
	ctx := context.Background()
	exec := new(mocks.Executor)
	executorFactory := new(mocks.ExecutorFactory)
	executorFactory.On("NewExecutor").Return(exec)
	object := models.DeletableObject{Kind: models.DeletablePeriod, Id: 9}

	first := &mocks.DeletionHandler{Name: "First"}
	first.On("AllowDelete", exec, object).Return("referenced by First", nil)
	second := &mocks.DeletionHandler{Name: "Second"}
	second.On("AllowDelete", exec, object).Return("", nil)
	third := &mocks.DeletionHandler{Name: "Third"}
	third.On("AllowDelete", exec, object).Return("referenced by Third", nil)

	manager := NewDeletionManager(executorFactory, first, second, third)
	check, err := manager.Check(ctx, object)

	require.NoError(t, err)
	assert.False(t, check.Allowed())
	assert.Equal(t, object, check.Object)
	assert.Equal(t, []models.DeletionVeto{
		{Handler: "First", Message: "referenced by First"},
		{Handler: "Third", Message: "referenced by Third"},
	}, check.Vetoes)

	t.Run("unknown kind", func(t *testing.T) {
		_, err := manager.Check(ctx, models.DeletableObject{Kind: models.DeletableUnknown, Id: 1})
		assert.ErrorIs(t, err, models.BadParameterError)
	})
}
