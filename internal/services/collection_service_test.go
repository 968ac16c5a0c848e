// internal/services/collection_service_test.go
package services

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"

	"github.com/nexushub/webhub-backend/internal/apperror"
)

type CollectionServiceTestSuite struct {
	suite.Suite
	db      *gorm.DB
	service *CollectionService
}

func TestCollectionServiceSuite(t *testing.T) {
	suite.Run(t, new(CollectionServiceTestSuite))
}

func (s *CollectionServiceTestSuite) SetupSuite() {
	s.db = setupTestDB(s.T())
	s.service = NewCollectionService(s.db)
}

func (s *CollectionServiceTestSuite) SetupTest() {
	truncateAll(s.T(), s.db)
}

func (s *CollectionServiceTestSuite) TestAddItemIsIdempotent() {
	owner := createTestUser(s.T(), s.db, "owner@example.com")
	webapp := createTestWebapp(s.T(), s.db, owner.ID)

	collection, err := s.service.Create(owner.ID, &CreateCollectionRequest{Name: "Favorites"})
	s.Require().NoError(err)

	s.Require().NoError(s.service.AddItem(collection.ID, owner.ID, webapp.ID))
	s.Require().NoError(s.service.AddItem(collection.ID, owner.ID, webapp.ID))

	items, err := s.service.GetItems(collection.ID, &owner.ID)
	s.Require().NoError(err)
	s.Len(items, 1)
}

func (s *CollectionServiceTestSuite) TestAddItemBumpsUpdatedAt() {
	owner := createTestUser(s.T(), s.db, "owner@example.com")
	webapp := createTestWebapp(s.T(), s.db, owner.ID)

	collection, err := s.service.Create(owner.ID, &CreateCollectionRequest{Name: "Favorites"})
	s.Require().NoError(err)
	createdAt := collection.UpdatedAt

	time.Sleep(10 * time.Millisecond)
	s.Require().NoError(s.service.AddItem(collection.ID, owner.ID, webapp.ID))

	refreshed, err := s.service.Get(collection.ID, &owner.ID)
	s.Require().NoError(err)
	s.True(refreshed.UpdatedAt.After(createdAt))
}

func (s *CollectionServiceTestSuite) TestVisibility() {
	owner := createTestUser(s.T(), s.db, "owner@example.com")
	stranger := createTestUser(s.T(), s.db, "stranger@example.com")

	private, err := s.service.Create(owner.ID, &CreateCollectionRequest{Name: "Secret"})
	s.Require().NoError(err)

	// owner reads fine
	_, err = s.service.Get(private.ID, &owner.ID)
	s.NoError(err)

	// others are forbidden, anonymous included
	_, err = s.service.Get(private.ID, &stranger.ID)
	s.ErrorIs(err, apperror.ErrForbidden)
	_, err = s.service.Get(private.ID, nil)
	s.ErrorIs(err, apperror.ErrForbidden)

	// missing is not found
	_, err = s.service.Get(uuid.New(), &owner.ID)
	s.ErrorIs(err, apperror.ErrNotFound)

	public, err := s.service.Create(owner.ID, &CreateCollectionRequest{Name: "Open", IsPublic: true})
	s.Require().NoError(err)
	_, err = s.service.Get(public.ID, nil)
	s.NoError(err)
}

func (s *CollectionServiceTestSuite) TestMutationIsOwnerOnly() {
	owner := createTestUser(s.T(), s.db, "owner@example.com")
	stranger := createTestUser(s.T(), s.db, "stranger@example.com")
	webapp := createTestWebapp(s.T(), s.db, owner.ID)

	collection, err := s.service.Create(owner.ID, &CreateCollectionRequest{Name: "Mine", IsPublic: true})
	s.Require().NoError(err)

	s.ErrorIs(s.service.AddItem(collection.ID, stranger.ID, webapp.ID), apperror.ErrForbidden)
	s.ErrorIs(s.service.Delete(collection.ID, stranger.ID), apperror.ErrForbidden)
}

func (s *CollectionServiceTestSuite) TestRemoveItem() {
	owner := createTestUser(s.T(), s.db, "owner@example.com")
	webapp := createTestWebapp(s.T(), s.db, owner.ID)

	collection, err := s.service.Create(owner.ID, &CreateCollectionRequest{Name: "Favorites"})
	s.Require().NoError(err)

	s.Require().NoError(s.service.AddItem(collection.ID, owner.ID, webapp.ID))
	s.Require().NoError(s.service.RemoveItem(collection.ID, owner.ID, webapp.ID))

	// removing again reports the absence
	s.ErrorIs(s.service.RemoveItem(collection.ID, owner.ID, webapp.ID), apperror.ErrNotFound)
}

func (s *CollectionServiceTestSuite) TestListPublic() {
	owner := createTestUser(s.T(), s.db, "owner@example.com")

	_, err := s.service.Create(owner.ID, &CreateCollectionRequest{Name: "Hidden"})
	s.Require().NoError(err)
	public, err := s.service.Create(owner.ID, &CreateCollectionRequest{Name: "Open", IsPublic: true})
	s.Require().NoError(err)

	collections, err := s.service.ListPublic(10)
	s.Require().NoError(err)
	s.Require().Len(collections, 1)
	s.Equal(public.ID, collections[0].ID)
	s.Equal(owner.Name, collections[0].OwnerName)
}

func (s *CollectionServiceTestSuite) TestItemCount() {
	owner := createTestUser(s.T(), s.db, "owner@example.com")

	collection, err := s.service.Create(owner.ID, &CreateCollectionRequest{Name: "Counted"})
	s.Require().NoError(err)

	for i := 0; i < 3; i++ {
		webapp := createTestWebapp(s.T(), s.db, owner.ID)
		s.Require().NoError(s.service.AddItem(collection.ID, owner.ID, webapp.ID))
	}

	refreshed, err := s.service.Get(collection.ID, &owner.ID)
	s.Require().NoError(err)
	s.Equal(int64(3), refreshed.ItemsCount)
}
