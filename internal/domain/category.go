package domain

import "context"

type JobCategory struct {
	Category string   `json:"category" yaml:"category"`
	Jobs     []string `json:"jobs" yaml:"jobs"`
}

type CategoryUsecase interface {
	List(ctx context.Context) []JobCategory
	Exists(tag string) bool
}
