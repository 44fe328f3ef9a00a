package repositories

import (
	"context"

	"github.com/cockroachdb/errors"
)

func (repo *DbRepository) Liveness(ctx context.Context, exec Executor) error {
	if err := validateExecutor(exec); err != nil {
		return err
	}

	var result int
	if err := exec.QueryRow(ctx, "SELECT 1").Scan(&result); err != nil {
		return errors.Wrap(err, "database is not reachable")
	}
	return nil
}
