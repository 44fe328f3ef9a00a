package repositories

import (
	"context"

	"github.com/Masterminds/squirrel"

	"github.com/dhis2/approval-backend/models"
	"github.com/dhis2/approval-backend/repositories/dbmodels"
)

func (repo *DbRepository) GetPeriodById(ctx context.Context, exec Executor, id int64) (models.Period, error) {
	if err := validateExecutor(exec); err != nil {
		return models.Period{}, err
	}

	return SqlToModel(
		ctx,
		exec,
		NewQueryBuilder().
			Select(dbmodels.SelectPeriodColumn...).
			From(dbmodels.TABLE_PERIOD).
			Where(squirrel.Eq{"periodid": id}),
		dbmodels.AdaptPeriod,
	)
}

func (repo *DbRepository) GetOrganisationUnitById(ctx context.Context, exec Executor, id int64) (models.OrganisationUnit, error) {
	if err := validateExecutor(exec); err != nil {
		return models.OrganisationUnit{}, err
	}

	return SqlToModel(
		ctx,
		exec,
		NewQueryBuilder().
			Select(dbmodels.SelectOrganisationUnitColumn...).
			From(dbmodels.TABLE_ORGANISATION_UNIT).
			Where(squirrel.Eq{"organisationunitid": id}),
		dbmodels.AdaptOrganisationUnit,
	)
}
