package application_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/huellitas-app/service-adoption/internal/application"
	userDomain "github.com/huellitas-app/service-adoption/internal/domain/user"
	"github.com/huellitas-app/service-adoption/internal/platform/auth"
	"github.com/huellitas-app/service-adoption/internal/platform/config"
	"github.com/huellitas-app/service-adoption/internal/platform/database"
	"github.com/huellitas-app/service-adoption/internal/platform/kafka"
	"github.com/huellitas-app/service-adoption/internal/repository"
)

type publishedEvent struct {
	Topic string
	Event kafka.CloudEvent
}

// recordingPublisher keeps every published event in memory.
type recordingPublisher struct {
	mu     sync.Mutex
	events []publishedEvent
	err    error
}

func (p *recordingPublisher) PublishEvent(_ context.Context, topic string, event kafka.CloudEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.events = append(p.events, publishedEvent{Topic: topic, Event: event})
	return nil
}

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, len(p.events))
	for i, e := range p.events {
		out[i] = e.Event.Type
	}
	return out
}

func (p *recordingPublisher) last() publishedEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.events[len(p.events)-1]
}

var errBrokerDown = errors.New("broker down")

type testStack struct {
	DB        *gorm.DB
	Publisher *recordingPublisher
	Users     *application.UserService
	Pets      *application.PetService
	Favorites *application.FavoriteService
	Reports   *application.ReportService
	userRepo  *repository.GormUserRepository
}

func newTestStack(t *testing.T) *testStack {
	t.Helper()
	db, err := database.Connect(config.DatabaseConfig{Driver: "sqlite", Path: ":memory:"}, zap.NewNop())
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(repository.Models()...))
	t.Cleanup(func() { _ = database.Close(db) })

	log := zap.NewNop()
	publisher := &recordingPublisher{}
	userRepo := repository.NewGormUserRepository(db)
	jwtManager := auth.NewJWTManager("test-secret", time.Hour)

	pets := application.NewPetService(repository.NewGormPetRepository(db), userRepo, publisher, log)
	return &testStack{
		DB:        db,
		Publisher: publisher,
		Users:     application.NewUserService(userRepo, jwtManager, log).WithBcryptCost(4),
		Pets:      pets,
		Favorites: application.NewFavoriteService(repository.NewGormFavoriteRepository(db), pets, log),
		Reports:   application.NewReportService(repository.NewGormReportRepository(db), publisher, log),
		userRepo:  userRepo,
	}
}

// newIdentity stores a user and returns the identity the auth middleware would resolve.
func (s *testStack) newIdentity(t *testing.T, username string) auth.Identity {
	t.Helper()
	u, err := userDomain.NewUser(username, "Nombre "+username, "Apellido", username+"@example.com", "hash")
	require.NoError(t, err)
	require.NoError(t, s.userRepo.Save(context.Background(), u))
	return auth.Identity{UserID: u.ID(), Name: u.Name(), Email: u.Email()}
}

func createPetRequest(name string) application.CreatePetRequest {
	age := 2.0
	return application.CreatePetRequest{
		Name:        name,
		Species:     "Perro",
		Breed:       "Mestizo",
		Age:         &age,
		Size:        "Mediano",
		Sex:         "Hembra",
		Description: "Muy cariñosa",
		Images:      []string{"https://img.example.com/" + name + ".jpg"},
		Location:    application.LocationRequest{City: "Lima", Country: "Perú"},
	}
}

func ptr[T any](v T) *T { return &v }
