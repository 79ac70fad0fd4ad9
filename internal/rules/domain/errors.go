package domain

import "errors"

var (
	ErrRuleNotFound      = errors.New("rule not found")
	ErrEmptyBody         = errors.New("rule body must not be empty")
	ErrTemplateImmutable = errors.New("templates cannot be modified or deleted")
)
