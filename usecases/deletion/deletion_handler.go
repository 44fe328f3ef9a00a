package deletion

import (
	"context"
	"fmt"

	"github.com/dhis2/approval-backend/models"
	"github.com/dhis2/approval-backend/repositories"
)

// DeletionHandler guards the deletion of objects it has references to.
// AllowDelete returns an empty veto when the object can be deleted, and for the kinds it does not guard.
type DeletionHandler interface {
	ClassName() string
	AllowDelete(ctx context.Context, exec repositories.Executor, object models.DeletableObject) (string, error)
}

func vetoMessage(className string) string {
	return fmt.Sprintf("Object could not be deleted because it is associated with another object: %s", className)
}
