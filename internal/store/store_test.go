package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mixtape-audio/html-scrabble/internal/game"
	"github.com/mixtape-audio/html-scrabble/internal/letters"
	"github.com/mixtape-audio/html-scrabble/internal/scrabble"
)

// testSnapshot builds a small but complete snapshot by hand.
func testSnapshot(t *testing.T, key string) *game.Snapshot {
	t.Helper()
	bag, err := letters.NewBag("english")
	require.NoError(t, err)

	turnZero := 1
	rack := scrabble.NewRack()
	rack.FillEmpty(bag.DrawTiles(7))
	return &game.Snapshot{
		Version:  game.SnapshotVersion,
		Key:      key,
		Language: "english",
		Players: []*game.Player{
			{Name: "ann", Key: "1111111111111111", Index: 0, Rack: rack, Score: 12},
			{Name: "ben", Key: "2222222222222222", Index: 1, Rack: scrabble.NewRack(), Score: 4},
		},
		Board:    scrabble.NewBoard(),
		BagTiles: bag.Tiles(),
		Turns:    []*game.Turn{{Type: game.TurnPass, Player: 0, WhosTurn: &turnZero}},
		WhosTurn: &turnZero,
		Passes:   1,
	}
}

func assertRoundTrip(t *testing.T, put, got *game.Snapshot) {
	t.Helper()
	want, err := game.EncodeSnapshot(put)
	require.NoError(t, err)
	back, err := game.EncodeSnapshot(got)
	require.NoError(t, err)
	assert.JSONEq(t, string(want), string(back))
}

func TestMemoryRoundTrip(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	snap := testSnapshot(t, "feedfacedeadbeef")

	require.NoError(t, m.Put(ctx, snap.Key, snap))
	got, err := m.Get(ctx, snap.Key)
	require.NoError(t, err)
	assert.NotSame(t, snap, got)
	assertRoundTrip(t, snap, got)
}

func TestMemoryMiss(t *testing.T) {
	m := NewMemory()
	_, err := m.Get(context.Background(), "0000000000000000")
	assert.ErrorIs(t, err, game.ErrGameNotFound)
}

func TestSQLiteRoundTrip(t *testing.T) {
	ctx := context.Background()
	s, err := OpenSQLite(filepath.Join(t.TempDir(), "games.db"))
	require.NoError(t, err)
	defer s.Close()

	snap := testSnapshot(t, "feedfacedeadbeef")
	require.NoError(t, s.Put(ctx, snap.Key, snap))
	got, err := s.Get(ctx, snap.Key)
	require.NoError(t, err)
	assertRoundTrip(t, snap, got)

	_, err = s.Get(ctx, "0000000000000000")
	assert.ErrorIs(t, err, game.ErrGameNotFound)
}

func TestSQLitePutOverwrites(t *testing.T) {
	ctx := context.Background()
	s, err := OpenSQLite(filepath.Join(t.TempDir(), "games.db"))
	require.NoError(t, err)
	defer s.Close()

	snap := testSnapshot(t, "feedfacedeadbeef")
	require.NoError(t, s.Put(ctx, snap.Key, snap))

	snap.Passes = 3
	snap.WhosTurn = nil
	snap.EndMessage = &game.EndMessage{Reason: "all players passed two times"}
	require.NoError(t, s.Put(ctx, snap.Key, snap))

	got, err := s.Get(ctx, snap.Key)
	require.NoError(t, err)
	assert.Equal(t, 3, got.Passes)
	assert.Nil(t, got.WhosTurn)
	require.NotNil(t, got.EndMessage)
	assert.Equal(t, "all players passed two times", got.EndMessage.Reason)
}
