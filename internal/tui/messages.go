package tui

import "clippy/config/models"

// ModelsLoadedMsg is sent when the configuration is (re)loaded
type ModelsLoadedMsg struct {
	File *models.File
	Err  error
}

// DefaultChangedMsg is sent after the default model changes
type DefaultChangedMsg struct {
	Name string
	Err  error
}

// ModelAddedMsg is sent after a model is added from the form
type ModelAddedMsg struct {
	Name          string
	BecameDefault bool
	Err           error
}

// ModelRemovedMsg is sent after a model is removed
type ModelRemovedMsg struct {
	Name       string
	WasDefault bool
	Err        error
}

// ConfigChangedMsg is sent when the config file changes on disk
type ConfigChangedMsg struct{}
