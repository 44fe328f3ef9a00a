package repositories

import (
	"context"
	"fmt"
	"reflect"

	"github.com/Masterminds/squirrel"
	"github.com/cockroachdb/errors"
	"github.com/jackc/pgx/v5"

	"github.com/dhis2/approval-backend/models"
)

func NewQueryBuilder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

func ExecBuilder(ctx context.Context, exec Executor, builder squirrel.Sqlizer) error {
	query, args, err := builder.ToSql()
	if err != nil {
		return errors.Wrap(err, "can't build sql query")
	}

	if _, err := exec.Exec(ctx, query, args...); err != nil {
		return errors.Wrap(err, fmt.Sprintf("error executing sql query: %s", query))
	}
	return nil
}

// ForEachRow runs the query and calls fn with the open rows, the rows are closed when fn returns.
func ForEachRow(ctx context.Context, exec Executor, query squirrel.Sqlizer, fn func(rows pgx.Rows) error) error {
	sql, args, err := query.ToSql()
	if err != nil {
		return errors.Wrap(err, "can't build sql query")
	}

	rows, err := exec.Query(ctx, sql, args...)
	if err != nil {
		return errors.Wrap(err, "error executing sql query")
	}
	defer rows.Close()

	if err := fn(rows); err != nil {
		return err
	}
	return errors.Wrap(rows.Err(), "error iterating over rows")
}

// executes the sql query and returns the integer of the first column of the single row
func SqlCount(ctx context.Context, exec Executor, query squirrel.Sqlizer) (int, error) {
	sql, args, err := query.ToSql()
	if err != nil {
		return 0, errors.Wrap(err, "can't build sql query")
	}

	var count int
	if err := exec.QueryRow(ctx, sql, args...).Scan(&count); err != nil {
		return 0, errors.Wrap(err, "error executing count query")
	}
	return count, nil
}

// executes the sql query and returns a list of models using the provided adapter
func SqlToListOfModels[DBModel, Model any](
	ctx context.Context,
	exec Executor,
	query squirrel.Sqlizer,
	adapter func(dbModel DBModel) (Model, error),
) ([]Model, error) {
	sql, args, err := query.ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "can't build sql query")
	}

	rows, err := exec.Query(ctx, sql, args...)
	if err != nil {
		return nil, errors.Wrap(err, "error executing sql query")
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (Model, error) {
		dbModel, err := pgx.RowToStructByName[DBModel](row)
		if err != nil {
			var zeroModel Model
			return zeroModel, errors.Wrap(err, fmt.Sprintf("error scanning row to struct %T", dbModel))
		}
		return adapter(dbModel)
	})
}

// executes the sql query and returns a model using the provided adapter
// If no result is returned by the query, returns nil
func SqlToOptionalModel[DBModel, Model any](
	ctx context.Context,
	exec Executor,
	query squirrel.Sqlizer,
	adapter func(dbModel DBModel) (Model, error),
) (*Model, error) {
	modelsList, err := SqlToListOfModels(ctx, exec, query, adapter)
	if err != nil {
		return nil, err
	}

	numberOfResults := len(modelsList)
	if numberOfResults == 0 {
		return nil, nil
	}
	model := modelsList[0]
	if numberOfResults > 1 {
		return nil, errors.Newf("expected 1 or 0 %v, %d rows in the result", reflect.TypeOf(model), numberOfResults)
	}
	return &model, nil
}

// executes the sql query and returns a model using the provided adapter
// if no result is returned by the query, returns a NotFoundError
func SqlToModel[DBModel, Model any](
	ctx context.Context,
	exec Executor,
	query squirrel.Sqlizer,
	adapter func(dbModel DBModel) (Model, error),
) (Model, error) {
	model, err := SqlToOptionalModel(ctx, exec, query, adapter)
	var zeroModel Model
	if err != nil {
		return zeroModel, err
	}
	if model == nil {
		return zeroModel, errors.Wrap(models.NotFoundError, fmt.Sprintf("found no object of type %T", zeroModel))
	}
	return *model, nil
}
