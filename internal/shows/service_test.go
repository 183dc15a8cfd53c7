package shows_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"gigboard/internal/artists"
	"gigboard/internal/errs"
	"gigboard/internal/models"
	"gigboard/internal/shows"
	"gigboard/internal/venues"
)

// Mock implementations
type MockDBLayer struct {
	mock.Mock
}

func (m *MockDBLayer) List(ctx context.Context) ([]models.ShowListItem, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ShowListItem), args.Error(1)
}

func (m *MockDBLayer) GetByID(ctx context.Context, id int64) (*models.Show, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Show), args.Error(1)
}

func (m *MockDBLayer) ArtistExists(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockDBLayer) VenueExists(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockDBLayer) Create(ctx context.Context, show *models.Show) error {
	args := m.Called(ctx, show)
	return args.Error(0)
}

type MockCache struct {
	invalidated []string
}

func (c *MockCache) Get(ctx context.Context, key string, dest interface{}) bool { return false }
func (c *MockCache) Set(ctx context.Context, key string, value interface{})     {}
func (c *MockCache) Invalidate(ctx context.Context, keys ...string) {
	c.invalidated = append(c.invalidated, keys...)
}

type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) PublishShowCreated(show models.Show) error {
	args := m.Called(show)
	return args.Error(0)
}

func newService(db *MockDBLayer, cache *MockCache, events *MockPublisher) *shows.ShowService {
	return shows.NewShowService(db, cache, events, "http://localhost:8080")
}

func validRequest() models.ShowRequest {
	return models.ShowRequest{ArtistID: 1, VenueID: 2, StartTime: "2035-04-01T20:00:00Z"}
}

func TestCreateShow(t *testing.T) {
	mockDB := new(MockDBLayer)
	cache := &MockCache{}
	events := new(MockPublisher)
	service := newService(mockDB, cache, events)

	mockDB.On("ArtistExists", mock.Anything, int64(1)).Return(true, nil)
	mockDB.On("VenueExists", mock.Anything, int64(2)).Return(true, nil)
	mockDB.On("Create", mock.Anything, mock.AnythingOfType("*models.Show")).Return(nil)
	events.On("PublishShowCreated", mock.AnythingOfType("models.Show")).Return(nil)

	show, err := service.Create(context.Background(), validRequest())
	assert.NoError(t, err)
	assert.Equal(t, int64(1), show.ArtistID)
	assert.Equal(t, time.Date(2035, 4, 1, 20, 0, 0, 0, time.UTC), show.StartTime)

	// A booking touches the upcoming counts on both boards
	assert.Contains(t, cache.invalidated, venues.BoardKey)
	assert.Contains(t, cache.invalidated, artists.BoardKey)
	mockDB.AssertExpectations(t)
	events.AssertExpectations(t)
}

func TestCreateShowUnknownArtist(t *testing.T) {
	mockDB := new(MockDBLayer)
	service := newService(mockDB, &MockCache{}, new(MockPublisher))

	mockDB.On("ArtistExists", mock.Anything, int64(1)).Return(false, nil)

	show, err := service.Create(context.Background(), validRequest())
	assert.Nil(t, show)
	assert.True(t, errs.IsValidation(err))
	mockDB.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateShowUnknownVenue(t *testing.T) {
	mockDB := new(MockDBLayer)
	service := newService(mockDB, &MockCache{}, new(MockPublisher))

	mockDB.On("ArtistExists", mock.Anything, int64(1)).Return(true, nil)
	mockDB.On("VenueExists", mock.Anything, int64(2)).Return(false, nil)

	show, err := service.Create(context.Background(), validRequest())
	assert.Nil(t, show)
	assert.True(t, errs.IsValidation(err))
	mockDB.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateShowBadStartTime(t *testing.T) {
	mockDB := new(MockDBLayer)
	service := newService(mockDB, &MockCache{}, new(MockPublisher))

	req := validRequest()
	req.StartTime = "whenever"

	show, err := service.Create(context.Background(), req)
	assert.Nil(t, show)
	assert.True(t, errs.IsValidation(err))
	mockDB.AssertNotCalled(t, "ArtistExists", mock.Anything, mock.Anything)
}

func TestShareQR(t *testing.T) {
	mockDB := new(MockDBLayer)
	service := newService(mockDB, &MockCache{}, new(MockPublisher))

	mockDB.On("GetByID", mock.Anything, int64(12)).Return(&models.Show{ID: 12}, nil)

	png, err := service.ShareQR(context.Background(), 12)
	assert.NoError(t, err)
	require.NotEmpty(t, png)
	// PNG signature
	assert.Equal(t, []byte{0x89, 'P', 'N', 'G'}, png[:4])
}

func TestShareQRNotFound(t *testing.T) {
	mockDB := new(MockDBLayer)
	service := newService(mockDB, &MockCache{}, new(MockPublisher))

	mockDB.On("GetByID", mock.Anything, int64(99)).Return(nil, errs.NotFound("show", 99))

	png, err := service.ShareQR(context.Background(), 99)
	assert.Nil(t, png)
	assert.True(t, errors.Is(err, errs.ErrNotFound))
}
