package domain

import "context"

type Service interface {
	Search(ctx context.Context, key string) ([]SpecialtyEntry, error)
	List(ctx context.Context) ([]SpecialtyEntry, error)
}
