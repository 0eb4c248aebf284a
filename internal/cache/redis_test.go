package cache

import (
	"context"
	"testing"
	"time"

	"github.com/go-redis/redismock/v8"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type RedisCacheSuite struct {
	suite.Suite
	ctx   context.Context
	cache *Redis
	mock  redismock.ClientMock
}

func (s *RedisCacheSuite) SetupTest() {
	s.ctx = context.Background()
	client, mock := redismock.NewClientMock()
	s.cache = &Redis{client: client, ttl: 5 * time.Minute}
	s.mock = mock
}

func (s *RedisCacheSuite) TearDownTest() {
	require.NoError(s.T(), s.mock.ExpectationsWereMet())
}

func (s *RedisCacheSuite) TestGetHit() {
	s.mock.ExpectGet("user:u1").SetVal(`{"id":"u1","name":"Alice"}`)

	var out map[string]string
	err := s.cache.Get(s.ctx, "user:u1", &out)

	require.NoError(s.T(), err)
	require.Equal(s.T(), "u1", out["id"])
	require.Equal(s.T(), "Alice", out["name"])
}

func (s *RedisCacheSuite) TestGetMiss() {
	s.mock.ExpectGet("user:absent").RedisNil()

	var out map[string]string
	err := s.cache.Get(s.ctx, "user:absent", &out)

	require.ErrorIs(s.T(), err, ErrMiss)
}

func (s *RedisCacheSuite) TestSet() {
	value := map[string]string{"id": "u1"}
	s.mock.ExpectSet("user:u1", []byte(`{"id":"u1"}`), s.cache.ttl).SetVal("OK")

	require.NoError(s.T(), s.cache.Set(s.ctx, "user:u1", value))
}

func (s *RedisCacheSuite) TestDelete() {
	s.mock.ExpectDel("task:t1").SetVal(1)

	require.NoError(s.T(), s.cache.Delete(s.ctx, "task:t1"))
}

func (s *RedisCacheSuite) TestDeleteNoKeys() {
	require.NoError(s.T(), s.cache.Delete(s.ctx))
}

func TestRedisCacheSuite(t *testing.T) {
	suite.Run(t, new(RedisCacheSuite))
}

func TestNoopAlwaysMisses(t *testing.T) {
	var c Cache = Noop{}

	var out map[string]string
	require.ErrorIs(t, c.Get(context.Background(), "any", &out), ErrMiss)
	require.NoError(t, c.Set(context.Background(), "any", out))
	require.NoError(t, c.Delete(context.Background(), "any"))
}
