// Package model contains the repository layer models for engined.
package model

import (
	"github.com/gofrs/uuid"
	"go.lsp.dev/jsonrpc2"
)

// Session is the repository layer model for an individual IDE session.
type Session struct {
	UUID        uuid.UUID
	Conn        *jsonrpc2.Conn
	ProjectPath string
}
