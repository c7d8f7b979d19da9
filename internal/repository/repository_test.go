package repository

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	favoriteDomain "github.com/huellitas-app/service-adoption/internal/domain/favorite"
	petDomain "github.com/huellitas-app/service-adoption/internal/domain/pet"
	reportDomain "github.com/huellitas-app/service-adoption/internal/domain/report"
	userDomain "github.com/huellitas-app/service-adoption/internal/domain/user"
	"github.com/huellitas-app/service-adoption/internal/platform/config"
	"github.com/huellitas-app/service-adoption/internal/platform/database"
	"github.com/huellitas-app/service-adoption/internal/platform/domain"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.Connect(config.DatabaseConfig{Driver: "sqlite", Path: ":memory:"}, zap.NewNop())
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(Models()...))
	t.Cleanup(func() { _ = database.Close(db) })
	return db
}

func seedUser(t *testing.T, db *gorm.DB, username string) *userDomain.User {
	t.Helper()
	u, err := userDomain.NewUser(username, "Nombre", "Apellido", username+"@example.com", "hash")
	require.NoError(t, err)
	require.NoError(t, NewGormUserRepository(db).Save(context.Background(), u))
	return u
}

func petAttrs(name string, species petDomain.Species, city string, urgent bool) petDomain.Attributes {
	return petDomain.Attributes{
		Name:        name,
		Species:     species,
		Breed:       "Mestizo",
		Age:         1.5,
		Size:        petDomain.SizeSmall,
		Sex:         petDomain.SexMale,
		Description: "Tranquilo",
		Images:      []string{"https://img.example.com/" + name + ".jpg"},
		Location:    petDomain.Location{City: city, Country: "Perú"},
		Urgent:      urgent,
	}
}

func seedPet(t *testing.T, repo *GormPetRepository, ownerID uuid.UUID, attrs petDomain.Attributes, createdAt time.Time) *petDomain.Pet {
	t.Helper()
	p := petDomain.Reconstruct(uuid.New(), ownerID, attrs, petDomain.StatusAvailable, nil, nil, 1, createdAt, createdAt)
	require.NoError(t, repo.Save(context.Background(), p))
	return p
}

func TestPetRepository_RoundTrip(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	owner := seedUser(t, db, "owner")
	repo := NewGormPetRepository(db)

	p, err := petDomain.NewPet(owner.ID(), petAttrs("Luna", petDomain.SpeciesDog, "Lima", true))
	require.NoError(t, err)
	_, err = p.AddComment(petDomain.UserSnapshot{ID: uuid.New(), Name: "Ana", Email: "ana@example.com"}, "Hola")
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, p))

	got, err := repo.FindByID(ctx, p.ID())
	require.NoError(t, err)
	assert.Equal(t, p.Attributes(), got.Attributes())
	assert.Equal(t, petDomain.StatusAvailable, got.Status())
	require.Len(t, got.Comments(), 1)
	assert.Equal(t, "Hola", got.Comments()[0].Text)
	assert.Equal(t, "Ana", got.Comments()[0].Author.Name)

	_, err = repo.FindByID(ctx, uuid.New())
	assert.True(t, domain.IsKind(err, domain.KindNotFound))
}

func TestPetRepository_UpdateWritesClearedAdopter(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	owner := seedUser(t, db, "owner")
	repo := NewGormPetRepository(db)

	p, err := petDomain.NewPet(owner.ID(), petAttrs("Luna", petDomain.SpeciesDog, "Lima", true))
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, p))

	adopter := petDomain.UserSnapshot{ID: uuid.New(), Name: "Beto", Email: "beto@example.com"}
	require.NoError(t, p.RequestAdoption(adopter))
	require.NoError(t, repo.Update(ctx, p))

	got, err := repo.FindByID(ctx, p.ID())
	require.NoError(t, err)
	assert.Equal(t, petDomain.StatusInProcess, got.Status())
	require.NotNil(t, got.Adopter())
	assert.Equal(t, adopter, *got.Adopter())

	_, err = p.RejectAdoption()
	require.NoError(t, err)
	require.NoError(t, p.Update(petDomain.Patch{Urgent: new(bool)}))
	require.NoError(t, repo.Update(ctx, p))

	got, err = repo.FindByID(ctx, p.ID())
	require.NoError(t, err)
	assert.Equal(t, petDomain.StatusAvailable, got.Status())
	assert.Nil(t, got.Adopter())
	assert.False(t, got.Attributes().Urgent)
	assert.Equal(t, int64(3), got.Version())
	assert.Equal(t, p.Version(), got.Version())
}

func TestPetRepository_SeveralChangesOneSave(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	owner := seedUser(t, db, "owner")
	repo := NewGormPetRepository(db)

	p, err := petDomain.NewPet(owner.ID(), petAttrs("Luna", petDomain.SpeciesDog, "Lima", false))
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, p))

	loaded, err := repo.FindByID(ctx, p.ID())
	require.NoError(t, err)
	_, err = loaded.AddComment(petDomain.UserSnapshot{ID: owner.ID(), Name: "Ana"}, "Primera")
	require.NoError(t, err)
	_, err = loaded.AddComment(petDomain.UserSnapshot{ID: owner.ID(), Name: "Ana"}, "Segunda")
	require.NoError(t, err)
	require.NoError(t, loaded.RequestAdoption(petDomain.UserSnapshot{ID: uuid.New(), Name: "Beto"}))
	require.NoError(t, repo.Update(ctx, loaded))
	assert.Equal(t, int64(2), loaded.Version())

	require.NoError(t, loaded.Update(petDomain.Patch{Urgent: new(bool)}))
	require.NoError(t, repo.Update(ctx, loaded))

	got, err := repo.FindByID(ctx, p.ID())
	require.NoError(t, err)
	assert.Equal(t, int64(3), got.Version())
	assert.Len(t, got.Comments(), 2)
	assert.Equal(t, petDomain.StatusInProcess, got.Status())
}

func TestPetRepository_UpdateVersionConflict(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	owner := seedUser(t, db, "owner")
	repo := NewGormPetRepository(db)

	p, err := petDomain.NewPet(owner.ID(), petAttrs("Luna", petDomain.SpeciesDog, "Lima", false))
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, p))

	first, err := repo.FindByID(ctx, p.ID())
	require.NoError(t, err)
	second, err := repo.FindByID(ctx, p.ID())
	require.NoError(t, err)

	require.NoError(t, first.RequestAdoption(petDomain.UserSnapshot{ID: uuid.New()}))
	require.NoError(t, repo.Update(ctx, first))

	require.NoError(t, second.RequestAdoption(petDomain.UserSnapshot{ID: uuid.New()}))
	err = repo.Update(ctx, second)
	assert.True(t, domain.IsKind(err, domain.KindConflict))
}

func TestPetRepository_RejectsUnknownStatus(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	owner := seedUser(t, db, "owner")
	repo := NewGormPetRepository(db)

	p, err := petDomain.NewPet(owner.ID(), petAttrs("Luna", petDomain.SpeciesDog, "Lima", false))
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, p))
	require.NoError(t, db.Exec(`UPDATE pets SET status = 'Perdido' WHERE id = ?`, p.ID()).Error)

	_, err = repo.FindByID(ctx, p.ID())
	require.Error(t, err)
	assert.False(t, domain.IsKind(err, domain.KindNotFound))

	_, err = repo.FindByOwnerID(ctx, owner.ID())
	assert.Error(t, err)
}

func TestPetRepository_Queries(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")
	repo := NewGormPetRepository(db)

	base := time.Now().UTC().Add(-time.Hour)
	dog := seedPet(t, repo, alice.ID(), petAttrs("Rex", petDomain.SpeciesDog, "Lima", false), base)
	cat := seedPet(t, repo, alice.ID(), petAttrs("Mia", petDomain.SpeciesCat, "Cusco", true), base.Add(time.Minute))
	urgentDog := seedPet(t, repo, bob.ID(), petAttrs("Toby", petDomain.SpeciesDog, "Lima", true), base.Add(2*time.Minute))

	pending := seedPet(t, repo, bob.ID(), petAttrs("Kira", petDomain.SpeciesDog, "Lima", false), base.Add(3*time.Minute))
	require.NoError(t, pending.RequestAdoption(petDomain.UserSnapshot{ID: alice.ID(), Name: "Alice"}))
	require.NoError(t, repo.Update(ctx, pending))

	all, err := repo.FindAvailable(ctx, petDomain.ListFilter{})
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{urgentDog.ID(), cat.ID(), dog.ID()}, petIDs(all))

	dogs, err := repo.FindAvailable(ctx, petDomain.ListFilter{Species: petDomain.SpeciesDog, City: "Lima"})
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{urgentDog.ID(), dog.ID()}, petIDs(dogs))

	urgent := true
	urgents, err := repo.FindAvailable(ctx, petDomain.ListFilter{Urgent: &urgent})
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{urgentDog.ID(), cat.ID()}, petIDs(urgents))

	none, err := repo.FindAvailable(ctx, petDomain.ListFilter{City: "Quito"})
	require.NoError(t, err)
	assert.Empty(t, none)

	bobs, err := repo.FindByOwnerID(ctx, bob.ID())
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{pending.ID(), urgentDog.ID()}, petIDs(bobs))

	requests, err := repo.FindPendingAdoptions(ctx)
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{pending.ID()}, petIDs(requests))

	byIDs, err := repo.FindByIDs(ctx, []uuid.UUID{dog.ID(), cat.ID(), uuid.New()})
	require.NoError(t, err)
	assert.Len(t, byIDs, 2)
}

func TestPetRepository_DeleteRemovesFavorites(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	owner := seedUser(t, db, "owner")
	fan := seedUser(t, db, "fan")
	pets := NewGormPetRepository(db)
	favorites := NewGormFavoriteRepository(db)

	p := seedPet(t, pets, owner.ID(), petAttrs("Luna", petDomain.SpeciesDog, "Lima", false), time.Now().UTC())
	fav, err := favoriteDomain.NewFavorite(fan.ID(), p.ID())
	require.NoError(t, err)
	require.NoError(t, favorites.Save(ctx, fav))

	require.NoError(t, pets.Delete(ctx, p.ID()))

	exists, err := favorites.Exists(ctx, fan.ID(), p.ID())
	require.NoError(t, err)
	assert.False(t, exists)

	err = pets.Delete(ctx, p.ID())
	assert.True(t, domain.IsKind(err, domain.KindNotFound))
}

func TestFavoriteRepository(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	owner := seedUser(t, db, "owner")
	fan := seedUser(t, db, "fan")
	pets := NewGormPetRepository(db)
	repo := NewGormFavoriteRepository(db)

	first := seedPet(t, pets, owner.ID(), petAttrs("Rex", petDomain.SpeciesDog, "Lima", false), time.Now().UTC())
	second := seedPet(t, pets, owner.ID(), petAttrs("Mia", petDomain.SpeciesCat, "Lima", false), time.Now().UTC())

	base := time.Now().UTC()
	require.NoError(t, repo.Save(ctx, favoriteDomain.Reconstruct(uuid.New(), fan.ID(), first.ID(), base)))
	require.NoError(t, repo.Save(ctx, favoriteDomain.Reconstruct(uuid.New(), fan.ID(), second.ID(), base.Add(time.Second))))

	err := repo.Save(ctx, favoriteDomain.Reconstruct(uuid.New(), fan.ID(), first.ID(), base))
	assert.Error(t, err)

	list, err := repo.FindByUserID(ctx, fan.ID())
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, second.ID(), list[0].PetID())
	assert.Equal(t, first.ID(), list[1].PetID())

	removed, err := repo.Delete(ctx, fan.ID(), first.ID())
	require.NoError(t, err)
	assert.True(t, removed)

	removed, err = repo.Delete(ctx, fan.ID(), first.ID())
	require.NoError(t, err)
	assert.False(t, removed)
}

func TestUserRepository(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	repo := NewGormUserRepository(db)

	u := seedUser(t, db, "ana")

	got, err := repo.FindByEmail(ctx, "  ANA@example.com")
	require.NoError(t, err)
	assert.Equal(t, u.ID(), got.ID())
	assert.Equal(t, "ana", got.Username())

	exists, err := repo.ExistsByUsername(ctx, "ana")
	require.NoError(t, err)
	assert.True(t, exists)

	_, err = repo.FindByEmail(ctx, "nadie@example.com")
	assert.True(t, domain.IsKind(err, domain.KindNotFound))

	_, err = repo.FindByID(ctx, uuid.New())
	assert.True(t, domain.IsKind(err, domain.KindNotFound))

	users, err := repo.FindByIDs(ctx, []uuid.UUID{u.ID()})
	require.NoError(t, err)
	require.Len(t, users, 1)
}

func TestReportRepository(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	reporter := seedUser(t, db, "reporter")
	repo := NewGormReportRepository(db)

	r, err := reportDomain.NewReport(
		reporter.ID(), reportDomain.TypeNeglect,
		"Gato encerrado en un balcón sin sombra",
		reportDomain.Location{Address: "Calle 1", City: "Lima", Country: "Perú"},
		[]string{"https://img.example.com/r.jpg"}, true,
		reportDomain.Contact{Phone: "999"},
	)
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, r))

	_, err = r.AddFollowUp(reportDomain.StatusReviewing, "En revisión", uuid.New())
	require.NoError(t, err)
	require.NoError(t, repo.Update(ctx, r))

	got, err := repo.FindByID(ctx, r.ID())
	require.NoError(t, err)
	assert.Equal(t, reportDomain.StatusReviewing, got.Status())
	require.Len(t, got.FollowUps(), 2)
	assert.Equal(t, reportDomain.StatusPending, got.FollowUps()[0].Status)
	assert.Equal(t, "Denuncia recibida", got.FollowUps()[0].Comment)
	assert.Equal(t, reportDomain.Contact{Phone: "999"}, got.Contact())

	assert.Equal(t, int64(2), got.Version())

	stale := reportDomain.Reconstruct(r.ID(), r.ReporterID(), r.Type(), r.Description(), r.Location(),
		nil, r.Status(), r.FollowUps(), r.Urgent(), r.Contact(), 1, r.CreatedAt(), r.UpdatedAt())
	err = repo.Update(ctx, stale)
	assert.True(t, domain.IsKind(err, domain.KindConflict))

	list, err := repo.FindByReporterID(ctx, reporter.ID())
	require.NoError(t, err)
	assert.Len(t, list, 1)

	require.NoError(t, db.Exec(`UPDATE reports SET status = 'Archivada' WHERE id = ?`, r.ID()).Error)
	_, err = repo.FindByID(ctx, r.ID())
	assert.Error(t, err)
}

func petIDs(pets []*petDomain.Pet) []uuid.UUID {
	ids := make([]uuid.UUID, len(pets))
	for i, p := range pets {
		ids[i] = p.ID()
	}
	return ids
}
