package repositories

import (
	"golang.org/x/text/language"
)

// DbRepository holds the queries on the application database. Every method takes the executor
// to use, so that the caller decides whether it runs inside a transaction.
type DbRepository struct {
	language language.Tag
}

type DbRepositoryOption func(*DbRepository)

// WithLanguage sets the language whose case rules apply to case insensitive searches.
func WithLanguage(lang language.Tag) DbRepositoryOption {
	return func(r *DbRepository) {
		r.language = lang
	}
}

func NewDbRepository(opts ...DbRepositoryOption) *DbRepository {
	repo := &DbRepository{
		language: language.English,
	}
	for _, opt := range opts {
		opt(repo)
	}
	return repo
}
