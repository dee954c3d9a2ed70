package errdefs

type ErrorType int

const (
	ErrTypeInvalidSelection ErrorType = iota
	ErrTypeBusy
	ErrTypeNotInstalled
	ErrTypeInstallationFailed
	ErrTypeDownloadFailed
	ErrTypeLaunchSpawn
	ErrTypeDirectoryCreationFailed
	ErrTypeInvalidSettings
	ErrTypeInvalidConfig
	ErrTypeGeneric
)

func (t ErrorType) String() string {
	switch t {
	case ErrTypeInvalidSelection:
		return "invalid selection"
	case ErrTypeBusy:
		return "busy"
	case ErrTypeNotInstalled:
		return "not installed"
	case ErrTypeInstallationFailed:
		return "installation failed"
	case ErrTypeDownloadFailed:
		return "download failed"
	case ErrTypeLaunchSpawn:
		return "launch failed"
	case ErrTypeDirectoryCreationFailed:
		return "directory creation failed"
	case ErrTypeInvalidSettings:
		return "invalid settings"
	case ErrTypeInvalidConfig:
		return "invalid config"
	default:
		return "error"
	}
}

type CustomError struct {
	Type    ErrorType
	Message string
	Err     error
}

func (e *CustomError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *CustomError) Unwrap() error {
	return e.Err
}

// Is matches any CustomError of the same Type, so the sentinels below work
// with errors.Is regardless of message or cause.
func (e *CustomError) Is(target error) bool {
	t, ok := target.(*CustomError)
	if !ok {
		return false
	}
	return t.Type == e.Type
}

func NewCustomError(errType ErrorType, message string) error {
	return &CustomError{
		Type:    errType,
		Message: message,
	}
}

// Wrap attaches cause to a new error of the given type.
func Wrap(errType ErrorType, message string, cause error) error {
	return &CustomError{
		Type:    errType,
		Message: message,
		Err:     cause,
	}
}

// TypeOf reports the ErrorType carried by err, or ErrTypeGeneric.
func TypeOf(err error) ErrorType {
	for err != nil {
		if ce, ok := err.(*CustomError); ok {
			return ce.Type
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			break
		}
		err = u.Unwrap()
	}
	return ErrTypeGeneric
}

var (
	ErrInvalidSelection        = NewCustomError(ErrTypeInvalidSelection, "please select a mod loader")
	ErrBusy                    = NewCustomError(ErrTypeBusy, "an install or launch is already running")
	ErrNotInstalled            = NewCustomError(ErrTypeNotInstalled, "mod loader is not installed, please install it first")
	ErrInstallationFailed      = NewCustomError(ErrTypeInstallationFailed, "installation failed")
	ErrDownloadFailed          = NewCustomError(ErrTypeDownloadFailed, "download failed")
	ErrLaunchSpawn             = NewCustomError(ErrTypeLaunchSpawn, "error launching Minecraft")
	ErrDirectoryCreationFailed = NewCustomError(ErrTypeDirectoryCreationFailed, "failed to create launcher directory")
	ErrInvalidSettings         = NewCustomError(ErrTypeInvalidSettings, "invalid settings")
	ErrInvalidConfig           = NewCustomError(ErrTypeInvalidConfig, "invalid config")
)
