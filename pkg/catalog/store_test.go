package catalog

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/suite"

	"gamestore/pkg/models"
)

// StoreTestSuite tests the catalog Store functionality.
type StoreTestSuite struct {
	suite.Suite
	tempDir string
	dbPath  string
	store   *Store
}

// SetupSuite runs once before all tests.
func (s *StoreTestSuite) SetupSuite() {
	var err error
	s.tempDir, err = os.MkdirTemp("", "catalog-store-test-*")
	s.Require().NoError(err)
}

// TearDownSuite runs once after all tests.
func (s *StoreTestSuite) TearDownSuite() {
	if s.tempDir != "" {
		os.RemoveAll(s.tempDir)
	}
}

// SetupTest runs before each test.
func (s *StoreTestSuite) SetupTest() {
	s.dbPath = filepath.Join(s.tempDir, "test.db")
	var err error
	s.store, err = NewStore(s.dbPath)
	s.Require().NoError(err)
}

// TearDownTest runs after each test.
func (s *StoreTestSuite) TearDownTest() {
	if s.store != nil {
		s.store.Close()
	}
	for _, suffix := range []string{"", "-wal", "-shm"} {
		os.Remove(s.dbPath + suffix)
	}
}

// minetest builds the canonical test entry.
func (s *StoreTestSuite) minetest() *models.Game {
	game, err := NewEntry(
		"Minetest",
		"http://mirrors.kernel.org/ubuntu/pool/universe/m/minetest/minetest_5.1.1+repack-1build1_amd64.deb",
		"https://www.minetest.net/#gallery",
		"Open-source Minecraft Clone that runs natively on Windows, MacOS, Linux, and other OSs",
		"E",
		"linux",
		[]string{"open world", "open-source", "mining", "survival", "sandbox"},
		true,
	)
	s.Require().NoError(err)
	return game
}

// TestNewStore tests store creation.
func (s *StoreTestSuite) TestNewStore() {
	s.NotNil(s.store)
}

// TestNewStoreInvalidPath tests store creation with invalid path.
func (s *StoreTestSuite) TestNewStoreInvalidPath() {
	_, err := NewStore("/nonexistent/path/to/db.sqlite")
	s.Error(err)
}

// TestNewEntryNormalizes tests ingestion normalization.
func (s *StoreTestSuite) TestNewEntryNormalizes() {
	game, err := NewEntry("Super Tux Kart", "http://example.com/stk.deb", "", "", "e", "Linux", []string{" racing "}, false)
	s.Require().NoError(err)

	s.Equal("Super_Tux_Kart", game.Name)
	s.Equal("E", game.Rating)
	s.Equal("linux", game.Platform)
	s.Equal([]string{"racing"}, game.Genres)
	s.Equal(int64(1), game.Downloads)
	s.Equal(EncodeSource("http://example.com/stk.deb"), game.SourceEncoded)
	s.Positive(game.AddedAt)
}

// TestNewEntryValidation tests the write-time validation rules.
func (s *StoreTestSuite) TestNewEntryValidation() {
	_, err := NewEntry("", "http://example.com/a.deb", "", "", "", "", nil, false)
	s.ErrorIs(err, ErrValidation)

	_, err = NewEntry("game", "", "", "", "", "", nil, false)
	s.ErrorIs(err, ErrValidation)

	_, err = NewEntry("game", "http://example.com/a.deb", "", "", "", "", []string{"a,b"}, false)
	s.ErrorIs(err, ErrValidation)
}

// TestInsertAndGet tests the basic round trip.
func (s *StoreTestSuite) TestInsertAndGet() {
	game := s.minetest()
	s.Require().NoError(s.store.Insert(game))

	got, err := s.store.GetByName("Minetest")
	s.Require().NoError(err)
	s.Equal(game.Name, got.Name)
	s.Equal(game.URL, got.URL)
	s.Equal(game.SourceEncoded, got.SourceEncoded)
	s.Equal(game.Genres, got.Genres)
	s.Equal("E", got.Rating)
	s.Equal("linux", got.Platform)
	s.True(got.InPackMan)
}

// TestGetNotFound tests lookup of a missing entry.
func (s *StoreTestSuite) TestGetNotFound() {
	_, err := s.store.GetByName("nope")
	s.ErrorIs(err, ErrNotFound)
}

// TestInsertDuplicateName tests name uniqueness enforcement.
func (s *StoreTestSuite) TestInsertDuplicateName() {
	s.Require().NoError(s.store.Insert(s.minetest()))

	err := s.store.Insert(s.minetest())
	s.ErrorIs(err, ErrNameExists)

	games, err := s.store.List()
	s.Require().NoError(err)
	s.Len(games, 1)
}

// TestInsertQuotedName tests that quote characters cannot alter query
// semantics.
func (s *StoreTestSuite) TestInsertQuotedName() {
	game, err := NewEntry(`Bob's "Game"; DROP TABLE games; --`, "http://example.com/bob.deb", "", "", "", "", nil, false)
	s.Require().NoError(err)
	s.Require().NoError(s.store.Insert(game))

	got, err := s.store.GetByName(game.Name)
	s.Require().NoError(err)
	s.Equal(game.Name, got.Name)

	// The table survived and still answers queries.
	games, err := s.store.List()
	s.Require().NoError(err)
	s.Len(games, 1)
}

// TestListEmpty tests that an empty store yields an empty collection.
func (s *StoreTestSuite) TestListEmpty() {
	games, err := s.store.List()
	s.Require().NoError(err)
	s.Empty(games)
	s.NotNil(games)
}

// TestListOrderStable tests that scan order follows insertion order.
func (s *StoreTestSuite) TestListOrderStable() {
	for _, name := range []string{"alpha", "beta", "gamma"} {
		game, err := NewEntry(name, "http://example.com/"+name, "", "", "", "", nil, false)
		s.Require().NoError(err)
		s.Require().NoError(s.store.Insert(game))
	}

	games, err := s.store.List()
	s.Require().NoError(err)
	s.Require().Len(games, 3)
	s.Equal("alpha", games[0].Name)
	s.Equal("beta", games[1].Name)
	s.Equal("gamma", games[2].Name)
}

// TestRecordDownload tests the counter increment and the grant payload.
func (s *StoreTestSuite) TestRecordDownload() {
	game := s.minetest()
	s.Require().NoError(s.store.Insert(game))

	grant, err := s.store.RecordDownload("Minetest")
	s.Require().NoError(err)
	s.Equal(game.URL, grant.URL)
	s.True(grant.InPackMan)

	got, err := s.store.GetByName("Minetest")
	s.Require().NoError(err)
	s.Equal(int64(2), got.Downloads)
}

// TestRecordDownloadTwice tests that two sequential calls add exactly 2.
func (s *StoreTestSuite) TestRecordDownloadTwice() {
	s.Require().NoError(s.store.Insert(s.minetest()))

	_, err := s.store.RecordDownload("Minetest")
	s.Require().NoError(err)
	_, err = s.store.RecordDownload("Minetest")
	s.Require().NoError(err)

	got, err := s.store.GetByName("Minetest")
	s.Require().NoError(err)
	s.Equal(int64(3), got.Downloads)
}

// TestRecordDownloadNotFound tests that a miss performs no write.
func (s *StoreTestSuite) TestRecordDownloadNotFound() {
	s.Require().NoError(s.store.Insert(s.minetest()))

	_, err := s.store.RecordDownload("nope")
	s.ErrorIs(err, ErrNotFound)

	got, err := s.store.GetByName("Minetest")
	s.Require().NoError(err)
	s.Equal(int64(1), got.Downloads)
}

// TestRecordDownloadConcurrent tests that N concurrent callers produce
// exactly N increments with no lost updates.
func (s *StoreTestSuite) TestRecordDownloadConcurrent() {
	s.Require().NoError(s.store.Insert(s.minetest()))

	const callers = 20
	var wg sync.WaitGroup
	wg.Add(callers)
	for i := 0; i < callers; i++ {
		go func() {
			defer wg.Done()
			_, err := s.store.RecordDownload("Minetest")
			s.NoError(err)
		}()
	}
	wg.Wait()

	got, err := s.store.GetByName("Minetest")
	s.Require().NoError(err)
	s.Equal(int64(1+callers), got.Downloads)
}

// TestDeleteBySource tests the encoded-key bulk removal flow.
func (s *StoreTestSuite) TestDeleteBySource() {
	game := s.minetest()
	s.Require().NoError(s.store.Insert(game))

	other, err := NewEntry("other", "http://example.com/other.deb", "", "", "", "", nil, false)
	s.Require().NoError(err)
	s.Require().NoError(s.store.Insert(other))

	deleted, err := s.store.DeleteBySource([]string{game.SourceEncoded, "unknown-key"})
	s.Require().NoError(err)
	s.Equal([]string{"Minetest"}, deleted)

	_, err = s.store.GetByName("Minetest")
	s.ErrorIs(err, ErrNotFound)

	_, err = s.store.GetByName("other")
	s.NoError(err)
}

// TestDeleteByName tests the name-keyed deletion path.
func (s *StoreTestSuite) TestDeleteByName() {
	s.Require().NoError(s.store.Insert(s.minetest()))

	s.Require().NoError(s.store.DeleteByName("Minetest"))
	s.ErrorIs(s.store.DeleteByName("Minetest"), ErrNotFound)
}

// TestSeedIfEmpty tests first-start seeding.
func (s *StoreTestSuite) TestSeedIfEmpty() {
	seed := []models.Game{*s.minetest()}

	s.Require().NoError(s.store.SeedIfEmpty(seed))
	count, err := s.store.Count()
	s.Require().NoError(err)
	s.Equal(int64(1), count)

	// A populated store is left untouched.
	s.Require().NoError(s.store.SeedIfEmpty(seed))
	count, err = s.store.Count()
	s.Require().NoError(err)
	s.Equal(int64(1), count)
}

// TestLoadSeed tests parsing a default-games file.
func (s *StoreTestSuite) TestLoadSeed() {
	path := filepath.Join(s.tempDir, "default_games.json")
	content := `{
 "Minetest": {
  "base64": "",
  "downloads": 0,
  "genres": ["sandbox", "survival"],
  "URL": "http://example.com/minetest.deb",
  "screenshots_url": "https://www.minetest.net/#gallery",
  "description": "Open-source Minecraft Clone",
  "rating": "E",
  "platform": "linux",
  "joined": 1623351659,
  "in_pack_man": true
 }
}`
	s.Require().NoError(os.WriteFile(path, []byte(content), 0o600))

	games, err := LoadSeed(path)
	s.Require().NoError(err)
	s.Require().Len(games, 1)
	s.Equal("Minetest", games[0].Name)
	s.Equal(EncodeSource("http://example.com/minetest.deb"), games[0].SourceEncoded)
	s.Equal(int64(1), games[0].Downloads)
}

// TestStoreTestSuite runs the test suite.
func TestStoreTestSuite(t *testing.T) {
	suite.Run(t, new(StoreTestSuite))
}
