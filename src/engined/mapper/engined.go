// Package mapper converts between entity, model, and transport representations.
package mapper

import (
	"context"

	"github.com/gofrs/uuid"
	"github.com/replkit/engined/src/engined/entity"
	"github.com/replkit/engined/src/engined/internal/errors"
	"github.com/replkit/engined/src/engined/model"
	"go.lsp.dev/jsonrpc2"
)

// UUIDToSession builds a fresh session entity for a new frontend connection.
func UUIDToSession(id uuid.UUID, conn *jsonrpc2.Conn) *entity.Session {
	return &entity.Session{
		UUID: id,
		Conn: conn,
	}
}

// SessionToModel converts a Session entity into its repository model.
func SessionToModel(s *entity.Session) *model.Session {
	return &model.Session{
		UUID:        s.UUID,
		Conn:        s.Conn,
		ProjectPath: s.ProjectPath,
	}
}

// ModelToSession converts a repository model into a Session entity.
func ModelToSession(m *model.Session) (*entity.Session, error) {
	if m == nil {
		return nil, errors.New("nil session model")
	}
	return &entity.Session{
		UUID:        m.UUID,
		Conn:        m.Conn,
		ProjectPath: m.ProjectPath,
	}, nil
}

// ContextToSessionUUID extracts the session UUID stored in the context.
func ContextToSessionUUID(ctx context.Context) (uuid.UUID, error) {
	id, ok := ctx.Value(entity.SessionContextKey).(uuid.UUID)
	if !ok {
		return uuid.Nil, &errors.NoSessionFoundError{}
	}
	return id, nil
}
