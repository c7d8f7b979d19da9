package application_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/huellitas-app/service-adoption/internal/platform/domain"
)

// Scenario D: owners cannot bookmark their own listing.
func TestAddFavorite_OwnPetIsSelfReference(t *testing.T) {
	s := newTestStack(t)
	ctx := context.Background()
	owner := s.newIdentity(t, "ana")

	pet, err := s.Pets.CreatePet(ctx, owner, createPetRequest("Luna"))
	require.NoError(t, err)

	_, err = s.Favorites.AddFavorite(ctx, owner, pet.ID)
	assert.True(t, domain.IsKind(err, domain.KindSelfReference))
}

func TestAddFavorite_DuplicateThenRecreate(t *testing.T) {
	s := newTestStack(t)
	ctx := context.Background()
	owner := s.newIdentity(t, "ana")
	fan := s.newIdentity(t, "beto")

	pet, err := s.Pets.CreatePet(ctx, owner, createPetRequest("Luna"))
	require.NoError(t, err)

	fav, err := s.Favorites.AddFavorite(ctx, fan, pet.ID)
	require.NoError(t, err)
	assert.Equal(t, fan.UserID, fav.UserID)
	assert.Equal(t, pet.ID, fav.PetID)

	_, err = s.Favorites.AddFavorite(ctx, fan, pet.ID)
	assert.True(t, domain.IsKind(err, domain.KindDuplicate))

	isFav, err := s.Favorites.IsFavorite(ctx, fan, pet.ID)
	require.NoError(t, err)
	assert.True(t, isFav)

	require.NoError(t, s.Favorites.RemoveFavorite(ctx, fan, pet.ID))
	isFav, err = s.Favorites.IsFavorite(ctx, fan, pet.ID)
	require.NoError(t, err)
	assert.False(t, isFav)

	err = s.Favorites.RemoveFavorite(ctx, fan, pet.ID)
	assert.True(t, domain.IsKind(err, domain.KindNotFound))

	_, err = s.Favorites.AddFavorite(ctx, fan, pet.ID)
	require.NoError(t, err)
}

func TestAddFavorite_MissingPet(t *testing.T) {
	s := newTestStack(t)
	fan := s.newIdentity(t, "beto")

	_, err := s.Favorites.AddFavorite(context.Background(), fan, uuid.New())
	assert.True(t, domain.IsKind(err, domain.KindNotFound))
}

func TestListFavorites_NewestFirstAndSkipsDeleted(t *testing.T) {
	s := newTestStack(t)
	ctx := context.Background()
	owner := s.newIdentity(t, "ana")
	fan := s.newIdentity(t, "beto")

	luna, err := s.Pets.CreatePet(ctx, owner, createPetRequest("Luna"))
	require.NoError(t, err)
	rocky, err := s.Pets.CreatePet(ctx, owner, createPetRequest("Rocky"))
	require.NoError(t, err)
	toby, err := s.Pets.CreatePet(ctx, owner, createPetRequest("Toby"))
	require.NoError(t, err)

	for _, id := range []uuid.UUID{luna.ID, rocky.ID, toby.ID} {
		_, err := s.Favorites.AddFavorite(ctx, fan, id)
		require.NoError(t, err)
	}
	require.NoError(t, s.Pets.DeletePet(ctx, owner, rocky.ID))

	favorites, err := s.Favorites.ListFavorites(ctx, fan)
	require.NoError(t, err)
	assert.ElementsMatch(t, []uuid.UUID{luna.ID, toby.ID}, dtoIDs(favorites))
	for _, f := range favorites {
		require.NotNil(t, f.Owner)
		assert.Equal(t, owner.UserID, f.Owner.ID)
	}

	isFav, err := s.Favorites.IsFavorite(ctx, fan, rocky.ID)
	require.NoError(t, err)
	assert.False(t, isFav)
}
