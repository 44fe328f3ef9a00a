package usecases

import (
	"github.com/dhis2/approval-backend/repositories"
	"github.com/dhis2/approval-backend/usecases/deletion"
	"github.com/dhis2/approval-backend/usecases/executor_factory"
)

const DefaultSignatureLineCount = 1

type Usecases struct {
	Repositories       repositories.Repositories
	apiVersion         string
	reportBucketUrl    string
	signatureLineCount int
}

type Option func(*options)

func WithApiVersion(apiVersion string) Option {
	return func(o *options) {
		o.apiVersion = apiVersion
	}
}

func WithReportBucketUrl(bucket string) Option {
	return func(o *options) {
		o.reportBucketUrl = bucket
	}
}

func WithSignatureLineCount(count int) Option {
	return func(o *options) {
		o.signatureLineCount = count
	}
}

type options struct {
	apiVersion         string
	reportBucketUrl    string
	signatureLineCount int
}

func newUsecasesWithOptions(repositories repositories.Repositories, o *options) Usecases {
	if o.signatureLineCount <= 0 {
		o.signatureLineCount = DefaultSignatureLineCount
	}
	return Usecases{
		Repositories:       repositories,
		apiVersion:         o.apiVersion,
		reportBucketUrl:    o.reportBucketUrl,
		signatureLineCount: o.signatureLineCount,
	}
}

func NewUsecases(repositories repositories.Repositories, opts ...Option) Usecases {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}
	return newUsecasesWithOptions(repositories, o)
}

func (usecases *Usecases) NewExecutorFactory() executor_factory.ExecutorFactory {
	return executor_factory.NewDbExecutorFactory(usecases.Repositories.ExecutorGetter)
}

func (usecases *Usecases) NewTransactionFactory() executor_factory.TransactionFactory {
	return executor_factory.NewDbExecutorFactory(usecases.Repositories.ExecutorGetter)
}

func (usecases *Usecases) NewLivenessUsecase() LivenessUsecase {
	return LivenessUsecase{
		executorFactory:    usecases.NewExecutorFactory(),
		livenessRepository: usecases.Repositories.DbRepository,
	}
}

// NewDeletionManager registers every handler that can veto the deletion of referenced objects.
func (usecases *Usecases) NewDeletionManager() *deletion.DeletionManager {
	return deletion.NewDeletionManager(
		usecases.NewExecutorFactory(),
		deletion.NewApprovalValidationAuditDeletionHandler(usecases.Repositories.DbRepository),
	)
}

func (usecases *Usecases) NewApprovalValidationRuleUsecase() ApprovalValidationRuleUsecase {
	return NewApprovalValidationRuleUsecase(
		usecases.NewExecutorFactory(),
		usecases.NewTransactionFactory(),
		usecases.Repositories.DbRepository,
		usecases.NewDeletionManager(),
	)
}

func (usecases *Usecases) NewReportUsecase() ReportUsecase {
	return NewReportUsecase(
		usecases.NewExecutorFactory(),
		usecases.Repositories.DbRepository,
		usecases.Repositories.BlobRepository,
		usecases.reportBucketUrl,
		usecases.signatureLineCount,
	)
}

func (usecases *Usecases) ApiVersion() string {
	return usecases.apiVersion
}
