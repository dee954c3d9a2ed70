package tui

type loginField int

const (
	fieldUsername loginField = iota
	fieldPassword
	fieldSignInLater
)

type settingsField int

const (
	fieldAutoUpdate settingsField = iota
	fieldMemory
	fieldJavaPath
	fieldSave
)

var settingsFields = []settingsField{fieldAutoUpdate, fieldMemory, fieldJavaPath, fieldSave}
