package sqldb_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"github.com/vytor/statsboard/internal/db"
	"github.com/vytor/statsboard/internal/models"
	"github.com/vytor/statsboard/internal/repository"
	"github.com/vytor/statsboard/internal/repository/sqldb"
	"github.com/vytor/statsboard/internal/stattype"
	"github.com/vytor/statsboard/internal/testutil"
)

type StatEventRepositorySuite struct {
	suite.Suite
	db   *db.DB
	repo repository.StatEventRepository
	exec repository.QueryExecutor
}

func (s *StatEventRepositorySuite) SetupTest() {
	s.db = testutil.NewTestDB(s.T())
	s.repo = sqldb.NewStatEventRepository(s.db.DB, s.db.Dialect().Placeholder)
	s.exec = sqldb.NewExecutor(s.db.DB, nil)
}

func (s *StatEventRepositorySuite) TearDownTest() {
	testutil.MustClose(s.T(), s.db)
}

func (s *StatEventRepositorySuite) TestInsertBatch() {
	ctx := context.Background()
	player := uuid.New()

	n, err := s.repo.InsertBatch(ctx, []models.StatEvent{
		{Player: player, Kind: stattype.Kills, Value: 3, Timestamp: 10},
		{Player: player, Kind: stattype.Deaths, Value: 1, Timestamp: 11},
	})
	s.Require().NoError(err)
	s.Equal(int64(2), n)

	rs, err := s.exec.Query(ctx, `SELECT player, stat, value, occurred_at FROM stat_events ORDER BY id`)
	s.Require().NoError(err)
	s.Require().Len(rs.Rows, 2)

	got, ok := rs.Rows[0].String("player")
	s.True(ok)
	s.Equal(player.String(), got)
	stat, _ := rs.Rows[1].String("stat")
	s.Equal("DEATHS", stat)
	ts, _ := rs.Rows[1].Int64("occurred_at")
	s.Equal(int64(11), ts)
}

func (s *StatEventRepositorySuite) TestInsertBatch_Chunks() {
	ctx := context.Background()
	events := make([]models.StatEvent, 450)
	for i := range events {
		events[i] = models.StatEvent{Player: uuid.New(), Kind: stattype.Points, Value: int64(i), Timestamp: int64(i)}
	}

	n, err := s.repo.InsertBatch(ctx, events)
	s.Require().NoError(err)
	s.Equal(int64(450), n)

	rs, err := s.exec.Query(ctx, `SELECT COUNT(*) AS n, SUM(value) AS total FROM stat_events`)
	s.Require().NoError(err)
	count, _ := rs.Rows[0].Int64("n")
	total, _ := rs.Rows[0].Int64("total")
	s.Equal(int64(450), count)
	s.Equal(int64(449*450/2), total)
}

func (s *StatEventRepositorySuite) TestInsertBatch_Empty() {
	n, err := s.repo.InsertBatch(context.Background(), nil)
	s.NoError(err)
	s.Zero(n)
}

func (s *StatEventRepositorySuite) TestInsertBatch_RollsBackOnFailure() {
	ctx := context.Background()
	events := []models.StatEvent{
		{Player: uuid.New(), Kind: stattype.Kills, Value: 1, Timestamp: 1},
		{Player: uuid.New(), Kind: stattype.Kind(0), Value: 1, Timestamp: 1},
	}

	_, err := s.repo.InsertBatch(ctx, events)
	s.Error(err, "empty stat id violates the definitions foreign key")

	rs, err := s.exec.Query(ctx, `SELECT COUNT(*) AS n FROM stat_events`)
	s.Require().NoError(err)
	count, _ := rs.Rows[0].Int64("n")
	s.Zero(count)
}

func (s *StatEventRepositorySuite) TestExecutor_QueryError() {
	_, err := s.exec.Query(context.Background(), `SELECT * FROM missing_table`)
	s.Error(err)

	s.Error(s.exec.Exec(context.Background(), `DELETE FROM missing_table`))
	s.NoError(s.exec.Exec(context.Background(), `DELETE FROM stat_events WHERE player = ?`, "nobody"))
}

func (s *StatEventRepositorySuite) TestExecutor_NullsAreAbsent() {
	rs, err := s.exec.Query(context.Background(), `SELECT SUM(value) AS total FROM stat_events`)
	s.Require().NoError(err)
	s.Require().Len(rs.Rows, 1)
	s.Equal([]string{"total"}, rs.Columns)

	_, ok := rs.Rows[0].Decimal("total")
	s.False(ok)
}

func TestStatEventRepositorySuite(t *testing.T) {
	suite.Run(t, new(StatEventRepositorySuite))
}
