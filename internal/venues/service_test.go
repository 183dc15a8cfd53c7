package venues_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"gigboard/internal/errs"
	"gigboard/internal/models"
	"gigboard/internal/venues"
)

// Mock implementations
type MockDBLayer struct {
	mock.Mock
}

func (m *MockDBLayer) ListGroupedByLocation(ctx context.Context, now time.Time) ([]models.CityVenues, error) {
	args := m.Called(ctx, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.CityVenues), args.Error(1)
}

func (m *MockDBLayer) SearchByName(ctx context.Context, term string, now time.Time) ([]models.VenueSummary, error) {
	args := m.Called(ctx, term, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.VenueSummary), args.Error(1)
}

func (m *MockDBLayer) GetByID(ctx context.Context, id int64) (*models.Venue, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Venue), args.Error(1)
}

func (m *MockDBLayer) PastShows(ctx context.Context, venueID int64, now time.Time) ([]models.VenueShowInfo, error) {
	args := m.Called(ctx, venueID, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.VenueShowInfo), args.Error(1)
}

func (m *MockDBLayer) UpcomingShows(ctx context.Context, venueID int64, now time.Time) ([]models.VenueShowInfo, error) {
	args := m.Called(ctx, venueID, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.VenueShowInfo), args.Error(1)
}

func (m *MockDBLayer) Create(ctx context.Context, venue *models.Venue) error {
	args := m.Called(ctx, venue)
	return args.Error(0)
}

func (m *MockDBLayer) Update(ctx context.Context, venue *models.Venue) error {
	args := m.Called(ctx, venue)
	return args.Error(0)
}

func (m *MockDBLayer) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockCache records stores and invalidations with a plain map
type MockCache struct {
	store       map[string]interface{}
	invalidated []string
}

func NewMockCache() *MockCache {
	return &MockCache{store: make(map[string]interface{})}
}

func (c *MockCache) Get(ctx context.Context, key string, dest interface{}) bool {
	// always miss; services must fall through to storage
	return false
}

func (c *MockCache) Set(ctx context.Context, key string, value interface{}) {
	c.store[key] = value
}

func (c *MockCache) Invalidate(ctx context.Context, keys ...string) {
	c.invalidated = append(c.invalidated, keys...)
}

type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) PublishVenueChanged(action string, venue models.Venue) error {
	args := m.Called(action, venue)
	return args.Error(0)
}

func newService(db *MockDBLayer, cache *MockCache, events *MockPublisher) *venues.VenueService {
	return venues.NewVenueService(db, cache, events)
}

func validRequest() models.VenueRequest {
	return models.VenueRequest{
		Name:    "The Musical Hop",
		City:    "San Francisco",
		State:   "CA",
		Address: "1015 Folsom Street",
		Phone:   "1231231234",
		Genres:  models.GenreList{"Jazz"},
	}
}

func TestListGroupedCachesBoard(t *testing.T) {
	mockDB := new(MockDBLayer)
	cache := NewMockCache()
	service := newService(mockDB, cache, new(MockPublisher))

	board := []models.CityVenues{{City: "San Francisco", State: "CA"}}
	mockDB.On("ListGroupedByLocation", mock.Anything, mock.AnythingOfType("time.Time")).Return(board, nil)

	groups, err := service.ListGrouped(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, board, groups)

	// The fresh board lands in the cache
	assert.Contains(t, cache.store, venues.BoardKey)
	mockDB.AssertExpectations(t)
}

func TestSearchTrimsTerm(t *testing.T) {
	mockDB := new(MockDBLayer)
	service := newService(mockDB, NewMockCache(), new(MockPublisher))

	summaries := []models.VenueSummary{{ID: 1, Name: "The Musical Hop"}}
	// A whitespace-only term matches everything, same as an empty one
	mockDB.On("SearchByName", mock.Anything, "", mock.AnythingOfType("time.Time")).Return(summaries, nil)

	resp, err := service.Search(context.Background(), "   ")
	assert.NoError(t, err)
	assert.Equal(t, 1, resp.Count)

	mockDB.On("SearchByName", mock.Anything, "hop", mock.AnythingOfType("time.Time")).Return(summaries, nil)
	_, err = service.Search(context.Background(), " hop ")
	assert.NoError(t, err)
	mockDB.AssertExpectations(t)
}

func TestCreateVenue(t *testing.T) {
	mockDB := new(MockDBLayer)
	cache := NewMockCache()
	events := new(MockPublisher)
	service := newService(mockDB, cache, events)

	mockDB.On("Create", mock.Anything, mock.AnythingOfType("*models.Venue")).Return(nil)
	events.On("PublishVenueChanged", "created", mock.AnythingOfType("models.Venue")).Return(nil)

	venue, err := service.Create(context.Background(), validRequest())
	assert.NoError(t, err)
	assert.Equal(t, "The Musical Hop", venue.Name)

	// The write invalidates the listing board and emits a change event
	assert.Contains(t, cache.invalidated, venues.BoardKey)
	mockDB.AssertExpectations(t)
	events.AssertExpectations(t)
}

func TestCreateVenueRejectedBeforeStorage(t *testing.T) {
	mockDB := new(MockDBLayer)
	service := newService(mockDB, NewMockCache(), new(MockPublisher))

	req := validRequest()
	req.State = "California"

	venue, err := service.Create(context.Background(), req)
	assert.Nil(t, venue)
	assert.True(t, errs.IsValidation(err))

	// Nothing reaches the DB on a validation failure
	mockDB.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateVenuePersistenceFailure(t *testing.T) {
	mockDB := new(MockDBLayer)
	service := newService(mockDB, NewMockCache(), new(MockPublisher))

	mockDB.On("Create", mock.Anything, mock.Anything).Return(errors.New("disk full"))

	venue, err := service.Create(context.Background(), validRequest())
	assert.Nil(t, venue)
	assert.True(t, errs.IsPersistence(err))
}

func TestGetDetailNotFound(t *testing.T) {
	mockDB := new(MockDBLayer)
	service := newService(mockDB, NewMockCache(), new(MockPublisher))

	mockDB.On("GetByID", mock.Anything, int64(42)).Return(nil, errs.NotFound("venue", 42))

	detail, err := service.GetDetail(context.Background(), 42)
	assert.Nil(t, detail)
	assert.True(t, errors.Is(err, errs.ErrNotFound))
}

func TestGetDetail(t *testing.T) {
	mockDB := new(MockDBLayer)
	service := newService(mockDB, NewMockCache(), new(MockPublisher))

	venue := &models.Venue{ID: 1, Name: "The Musical Hop", City: "San Francisco", State: "CA"}
	past := []models.VenueShowInfo{{ArtistID: 4, ArtistName: "Guns N Petals"}}
	upcoming := []models.VenueShowInfo{}

	mockDB.On("GetByID", mock.Anything, int64(1)).Return(venue, nil)
	mockDB.On("PastShows", mock.Anything, int64(1), mock.AnythingOfType("time.Time")).Return(past, nil)
	mockDB.On("UpcomingShows", mock.Anything, int64(1), mock.AnythingOfType("time.Time")).Return(upcoming, nil)

	detail, err := service.GetDetail(context.Background(), 1)
	assert.NoError(t, err)
	assert.Equal(t, "The Musical Hop", detail.Name)
	assert.Equal(t, 1, detail.PastShowsCount)
	assert.Equal(t, 0, detail.UpcomingShowsCount)
}

func TestUpdateVenueNotFound(t *testing.T) {
	mockDB := new(MockDBLayer)
	service := newService(mockDB, NewMockCache(), new(MockPublisher))

	mockDB.On("GetByID", mock.Anything, int64(7)).Return(nil, errs.NotFound("venue", 7))

	venue, err := service.Update(context.Background(), 7, validRequest())
	assert.Nil(t, venue)
	assert.True(t, errors.Is(err, errs.ErrNotFound))
	mockDB.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestDeleteVenueReturnsDeleted(t *testing.T) {
	mockDB := new(MockDBLayer)
	cache := NewMockCache()
	events := new(MockPublisher)
	service := newService(mockDB, cache, events)

	venue := &models.Venue{ID: 3, Name: "The Dueling Pianos Bar"}
	mockDB.On("GetByID", mock.Anything, int64(3)).Return(venue, nil)
	mockDB.On("Delete", mock.Anything, int64(3)).Return(nil)
	events.On("PublishVenueChanged", "deleted", *venue).Return(nil)

	deleted, err := service.Delete(context.Background(), 3)
	assert.NoError(t, err)
	assert.Equal(t, "The Dueling Pianos Bar", deleted.Name)
	assert.Contains(t, cache.invalidated, venues.BoardKey)
	events.AssertExpectations(t)
}
