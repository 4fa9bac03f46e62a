package document

import (
	"errors"

	"pdftools/internal/toolchain"
)

var (
	ErrInvalidInput      = errors.New("invalid input")
	ErrFileTooLarge      = errors.New("file too large")
	ErrToolFailed        = errors.New("external tool failed")
	ErrIncorrectPassword = errors.New("incorrect password")
	ErrAlreadyEncrypted  = errors.New("PDF is already password protected")
	ErrNotEncrypted      = errors.New("PDF is not password protected")

	ErrDependencyMissing = toolchain.ErrToolNotFound
	ErrTimeout           = toolchain.ErrTimeout
)
