package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
//
// Queries never fail: empty and unmatched queries are results, not errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnknownPoint indicates a point id is not in the current lesson scope.
	ErrUnknownPoint = errors.New("unknown point")

	// ErrUnknownLesson indicates a lesson id is not in the dataset.
	ErrUnknownLesson = errors.New("unknown lesson")

	// ErrNoLessons indicates a dataset without any lessons.
	ErrNoLessons = errors.New("dataset has no lessons")

	// ErrAlreadyAnswered indicates a point quiz was already answered this session.
	ErrAlreadyAnswered = errors.New("quiz already answered")

	// ErrImageSearchUnavailable indicates no image searcher is configured.
	ErrImageSearchUnavailable = errors.New("image search unavailable")
)
