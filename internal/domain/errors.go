package domain

import "errors"

var (
	ErrInvalidDrawCount = errors.New("draw count must be between 1 and deck size")
	ErrUpstreamLLM      = errors.New("upstream LLM failure")
	ErrEmptyCompletion  = errors.New("LLM returned no usable text")
)
