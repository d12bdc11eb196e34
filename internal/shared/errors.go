package shared

import "fmt"

var (
	ErrNotImplemented = fmt.Errorf("not implemented")

	// Configuration errors
	ErrMissingConfig = fmt.Errorf("configuration not found")
	ErrInvalidConfig = fmt.Errorf("invalid configuration")

	// Collection errors
	ErrRecordNotFound = fmt.Errorf("record not found")
	ErrDuplicateID    = fmt.Errorf("duplicate record identifier")
	ErrNilStore       = fmt.Errorf("collection requires a synchronization store")

	// Import errors
	ErrInvalidImportMode = fmt.Errorf("invalid import mode")
	ErrEmptyImport       = fmt.Errorf("import contains no records")

	// Input validation errors
	ErrInvalidInput    = fmt.Errorf("invalid input")
	ErrMissingArgument = fmt.Errorf("missing required argument")
	ErrInvalidArgument = fmt.Errorf("invalid argument")
	ErrInvalidFlag     = fmt.Errorf("invalid flag value")
)
