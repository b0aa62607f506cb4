package session

import (
	"context"
	"testing"

	"github.com/gofrs/uuid"
	"github.com/replkit/engined/src/engined/entity"
	"github.com/replkit/engined/src/engined/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tally "github.com/uber-go/tally/v4"
)

func TestSessionRepository(t *testing.T) {
	testScope := tally.NewTestScope("testing", make(map[string]string, 0))
	t.Run("should Set and Get successfully", func(t *testing.T) {
		var uuid uuid.UUID
		model := &entity.Session{
			UUID: uuid,
		}

		repository := New(testScope)

		err := repository.Set(context.Background(), model)
		require.NoError(t, err)
		val, err := repository.Get(context.Background(), uuid)
		require.NoError(t, err)
		assert.Equal(t, uuid, val.UUID)
	})

	t.Run("should fail to get something that was not Set", func(t *testing.T) {
		repository := New(testScope)

		id := uuid.Must(uuid.NewV4())
		_, err := repository.Get(context.Background(), id)
		require.Error(t, err)
		var nf *errors.UUIDNotFoundError
		require.ErrorAs(t, err, &nf)
		assert.Equal(t, id, nf.UUID)
	})

	t.Run("should reject nil session", func(t *testing.T) {
		repository := New(testScope)
		assert.Error(t, repository.Set(context.Background(), nil))
	})

	t.Run("delete and count", func(t *testing.T) {
		repository := New(testScope)
		id := uuid.Must(uuid.NewV4())
		require.NoError(t, repository.Set(context.Background(), &entity.Session{UUID: id}))

		count, err := repository.SessionCount(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 1, count)

		require.NoError(t, repository.Delete(context.Background(), id))
		count, err = repository.SessionCount(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 0, count)
	})
}

func TestGetFromContext(t *testing.T) {
	testScope := tally.NewTestScope("testing", make(map[string]string, 0))
	t.Run("should get when uuid is in context", func(t *testing.T) {
		var uuid uuid.UUID
		model := &entity.Session{
			UUID: uuid,
		}

		repository := New(testScope)
		ctx := context.WithValue(context.Background(), entity.SessionContextKey, uuid)
		err := repository.Set(ctx, model)
		require.NoError(t, err)
		val, err := repository.GetFromContext(ctx)
		assert.NoError(t, err)
		assert.Equal(t, uuid, val.UUID)
	})

	t.Run("should fail when uuid is missing", func(t *testing.T) {
		repository := New(testScope)
		_, err := repository.GetFromContext(context.Background())
		assert.Error(t, err)
	})
}

func TestGetAll(t *testing.T) {
	testScope := tally.NewTestScope("testing", make(map[string]string, 0))
	repository := New(testScope)

	for range 3 {
		require.NoError(t, repository.Set(context.Background(), &entity.Session{UUID: uuid.Must(uuid.NewV4())}))
	}

	all, err := repository.GetAll(context.Background())
	require.NoError(t, err)
	assert.Len(t, all, 3)
}
