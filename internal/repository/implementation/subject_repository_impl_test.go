package implementation_test

import (
	"context"
	"testing"

	"codal-docs-be/internal/entity"
	"codal-docs-be/internal/repository/implementation"
	"codal-docs-be/internal/repository/repotest"
	"codal-docs-be/internal/repository/specification"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubjectRepository_CreateIsIdempotent(t *testing.T) {
	ctx := context.Background()
	repo := implementation.NewSubjectRepository(repotest.NewDB(t))

	created, err := repo.Create(ctx, &entity.Subject{Id: "Civil Law"})
	require.NoError(t, err)
	assert.True(t, created)

	created, err = repo.Create(ctx, &entity.Subject{Id: "Civil Law"})
	require.NoError(t, err)
	assert.False(t, created)

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestSubtopicRepository_ScopedToSubject(t *testing.T) {
	ctx := context.Background()
	repo := implementation.NewSubtopicRepository(repotest.NewDB(t))

	for _, st := range []entity.Subtopic{
		{SubjectId: "Civil Law", Id: "Succession"},
		{SubjectId: "Civil Law", Id: "Land Titles"},
		{SubjectId: "Criminal Law", Id: "Land Titles"},
	} {
		st := st
		created, err := repo.Create(ctx, &st)
		require.NoError(t, err)
		assert.True(t, created)
	}

	created, err := repo.Create(ctx, &entity.Subtopic{SubjectId: "Civil Law", Id: "Land Titles"})
	require.NoError(t, err)
	assert.False(t, created)

	list, err := repo.FindAll(ctx,
		specification.BySubjectID{SubjectID: "Civil Law"},
		specification.OrderBy{Field: "id"},
	)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Land Titles", list[0].Id)
	assert.Equal(t, "Succession", list[1].Id)
}
