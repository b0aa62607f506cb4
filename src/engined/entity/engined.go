// Package entity contains the domain types for the engined service.
package entity

import (
	"github.com/gofrs/uuid"
	"go.lsp.dev/jsonrpc2"
)

type keyType string

// SessionContextKey indicates the key to be used to identify the session UUID in the context.
const SessionContextKey keyType = "SessionUUID"

// EngineConfigKey is the config key that contains engine-specific configuration.
const EngineConfigKey = "engine"

// Session entity representing a single connected IDE frontend.
type Session struct {
	UUID        uuid.UUID      `json:"uuid" zap:"uuid"`
	Conn        *jsonrpc2.Conn `json:"-" zap:"-"`
	ProjectPath string         `json:"projectPath" zap:"projectPath"`
}

// EngineConfig describes the supervised engine and its collaborators.
type EngineConfig struct {
	// BinaryPath is the engine executable. If absent at startup the
	// installer is invoked before the process is spawned.
	BinaryPath string   `yaml:"binaryPath"`
	Args       []string `yaml:"args"`
	// ChannelDir is where the engine creates its local socket endpoints.
	ChannelDir string `yaml:"channelDir"`
	// ProjectMarkerFile marks a directory as an activatable project
	// environment (e.g. Project.toml).
	ProjectMarkerFile string `yaml:"projectMarkerFile"`
	// DefaultProjectPath is activated on fresh startup when set.
	DefaultProjectPath string `yaml:"defaultProjectPath"`

	ReleaseManifestPath string `yaml:"releaseManifestPath"`

	LanguageServer LanguageServerConfig `yaml:"languageServer"`
}

// LanguageServerConfig describes the external language server binary.
type LanguageServerConfig struct {
	BinaryPath string   `yaml:"binaryPath"`
	Args       []string `yaml:"args"`
}
