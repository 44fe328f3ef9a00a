package repositories

// Repositories groups the data access of the application, built once at startup.
type Repositories struct {
	ExecutorGetter ExecutorGetter
	DbRepository   *DbRepository
	BlobRepository BlobRepository
}

func NewRepositories(pool ConnectionPool, blobRepository BlobRepository, opts ...DbRepositoryOption) Repositories {
	return Repositories{
		ExecutorGetter: NewExecutorGetter(pool),
		DbRepository:   NewDbRepository(opts...),
		BlobRepository: blobRepository,
	}
}
