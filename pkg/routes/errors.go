package routes

import "errors"

// Registration errors are returned by New; resolution errors by Resolve and URL.
var (
	ErrInvalidPattern = errors.New("routes: invalid path pattern")
	ErrInvalidEntry   = errors.New("routes: invalid entry")
	ErrDuplicatePath  = errors.New("routes: duplicate path")
	ErrDuplicateName  = errors.New("routes: duplicate name")

	ErrNotFound     = errors.New("routes: no route matches path")
	ErrUnknownRoute = errors.New("routes: unknown route name")
	ErrMissingParam = errors.New("routes: missing path parameter")
)
