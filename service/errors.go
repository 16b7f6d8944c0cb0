package service

import "errors"

var (
	// ErrValidation marks a record rejected at the editor boundary
	ErrValidation = errors.New("validation failed")
	// ErrDuplicateID is returned when a record id is already in use
	ErrDuplicateID = errors.New("duplicate id")
	// ErrUnknownModule is returned when a combination references a module that does not exist
	ErrUnknownModule = errors.New("unknown module")
	// ErrModuleNotFound is returned when deleting a module that does not exist
	ErrModuleNotFound = errors.New("module not found")
	// ErrCombinationNotFound is returned when deleting a combination that does not exist
	ErrCombinationNotFound = errors.New("combination not found")
	// ErrResetNotConfirmed is returned when a reset is requested without confirmation
	ErrResetNotConfirmed = errors.New("reset requires confirmation")
	// ErrUnsupportedImage is returned for uploads that are not images
	ErrUnsupportedImage = errors.New("unsupported image")
	// ErrDriveUnavailable is returned when no Drive credentials are configured
	ErrDriveUnavailable = errors.New("google drive not configured")
)
