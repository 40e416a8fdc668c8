package game

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeStore keeps encoded snapshots in memory, going through the wire
// codec so restored games never alias the live ones.
type fakeStore struct {
	mu   sync.Mutex
	data map[string][]byte
	puts int
}

func newFakeStore() *fakeStore {
	return &fakeStore{data: map[string][]byte{}}
}

func (s *fakeStore) Get(_ context.Context, key string) (*Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	raw, ok := s.data[key]
	if !ok {
		return nil, ErrGameNotFound
	}
	return DecodeSnapshot(raw)
}

func (s *fakeStore) Put(_ context.Context, key string, snap *Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	raw, err := EncodeSnapshot(snap)
	if err != nil {
		return err
	}
	s.data[key] = raw
	s.puts++
	return nil
}

type sentMail struct {
	to, subject, text, html string
}

// fakeMailer records deliveries on a channel so tests can wait for the
// asynchronous invitation goroutines.
type fakeMailer struct {
	sent chan sentMail
}

func newFakeMailer() *fakeMailer {
	return &fakeMailer{sent: make(chan sentMail, 8)}
}

func (m *fakeMailer) Send(_ context.Context, to, subject, text, html string) error {
	m.sent <- sentMail{to: to, subject: subject, text: text, html: html}
	return nil
}

func testRegistry(t *testing.T, store Store) *Registry {
	t.Helper()
	r, err := NewRegistry(RegistryConfig{
		Store:    store,
		Evaluate: acceptAll(10),
		BaseURL:  "http://localhost:9093",
	})
	require.NoError(t, err)
	return r
}

func twoSeats() []Seat {
	return []Seat{{Name: "ann"}, {Name: "ben"}}
}

func TestNewRegistryRequiresStore(t *testing.T) {
	_, err := NewRegistry(RegistryConfig{})
	assert.Error(t, err)
}

func TestRegistryCreatePersistsAndCaches(t *testing.T) {
	store := newFakeStore()
	r := testRegistry(t, store)

	g, err := r.Create(context.Background(), "english", twoSeats())
	require.NoError(t, err)
	assert.Contains(t, store.data, g.Key)

	// Cache hit resolves to the same live instance.
	cached, err := r.Get(context.Background(), g.Key)
	require.NoError(t, err)
	assert.Same(t, g, cached)
}

func TestRegistryGetRestoresFromStore(t *testing.T) {
	store := newFakeStore()
	g, err := testRegistry(t, store).Create(context.Background(), "german", twoSeats())
	require.NoError(t, err)

	// A second registry against the same store simulates a restart.
	r2 := testRegistry(t, store)
	restored, err := r2.Get(context.Background(), g.Key)
	require.NoError(t, err)

	assert.NotSame(t, g, restored)
	assert.Equal(t, g.Key, restored.Key)
	assert.Equal(t, "german", restored.Language)
	assert.Equal(t, g.Bag.RemainingCount(), restored.Bag.RemainingCount())
	assert.Equal(t, g.WhosTurn, restored.WhosTurn)
	require.Len(t, restored.Players, 2)
	assert.Equal(t, g.Players[0].Key, restored.Players[0].Key)
	assert.Equal(t, 7, restored.Players[0].Rack.TileCount())
	// Listeners never survive a restore.
	assert.Equal(t, 0, restored.Hub().Listeners())
}

func TestRegistryGetMiss(t *testing.T) {
	r := testRegistry(t, newFakeStore())
	_, err := r.Get(context.Background(), "feedfacedeadbeef")
	assert.ErrorIs(t, err, ErrGameNotFound)
}

func TestExecutePassFlowPersistsAndBroadcasts(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	r := testRegistry(t, store)
	g, err := r.Create(ctx, "english", twoSeats())
	require.NoError(t, err)

	events, cancel := g.Hub().Subscribe()
	defer cancel()
	putsBefore := store.puts

	for i := 0; i < 4; i++ {
		p := g.Players[g.WhosTurn]
		res, err := r.Execute(ctx, g, p, Command{Name: "pass"})
		require.NoError(t, err)
		require.NotNil(t, res)
		assert.NotNil(t, res.NewTiles)
		assert.Empty(t, res.NewTiles)
	}

	assert.True(t, g.Ended())
	assert.Equal(t, 4, store.puts-putsBefore)

	// Four turn events, then the end announcement.
	for i := 0; i < 4; i++ {
		ev := <-events
		assert.Equal(t, "turn", ev.Name)
	}
	ev := <-events
	assert.Equal(t, "gameEnded", ev.Name)
	end, ok := ev.Data.(*EndMessage)
	require.True(t, ok)
	assert.Equal(t, "all players passed two times", end.Reason)

	// The persisted copy carries the terminal state.
	snap, err := store.Get(ctx, g.Key)
	require.NoError(t, err)
	require.NotNil(t, snap.EndMessage)
	assert.Nil(t, snap.WhosTurn)
}

func TestExecuteRejectsOutOfTurnAndUnknownCommands(t *testing.T) {
	ctx := context.Background()
	r := testRegistry(t, newFakeStore())
	g, err := r.Create(ctx, "english", twoSeats())
	require.NoError(t, err)

	_, err = r.Execute(ctx, g, g.Players[1], Command{Name: "pass"})
	assert.ErrorIs(t, err, ErrNotYourTurn)

	_, err = r.Execute(ctx, g, g.Players[0], Command{Name: "shuffle"})
	var unrecognized *UnrecognizedCommandError
	require.ErrorAs(t, err, &unrecognized)
	assert.Equal(t, "shuffle", unrecognized.Command)
}

func TestExecuteMoveReturnsReplacementTiles(t *testing.T) {
	ctx := context.Background()
	r := testRegistry(t, newFakeStore())
	g, err := r.Create(ctx, "english", twoSeats())
	require.NoError(t, err)

	p0 := g.Players[0]
	res, err := r.Execute(ctx, g, p0, Command{Name: "makeMove", Placements: movePlacements(p0, 2)})
	require.NoError(t, err)
	assert.Len(t, res.NewTiles, 2)
	assert.Equal(t, 7, p0.Rack.TileCount())
	assert.Equal(t, 10, p0.Score)
	assert.Equal(t, 1, g.WhosTurn)
}

func TestFollowonRotatesSeatsAndKeepsKeys(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	r := testRegistry(t, store)
	g, err := r.Create(ctx, "english", []Seat{{Name: "ann"}, {Name: "ben"}, {Name: "cleo"}})
	require.NoError(t, err)

	events, cancel := g.Hub().Subscribe()
	defer cancel()

	// Ben requests the next game.
	res, err := r.Execute(ctx, g, g.Players[1], Command{Name: "newGame"})
	require.NoError(t, err)
	assert.Nil(t, res)
	require.NotEmpty(t, g.NextGameKey)

	next, err := r.Get(ctx, g.NextGameKey)
	require.NoError(t, err)
	require.Len(t, next.Players, 3)
	assert.Equal(t, []string{"ben", "cleo", "ann"}, []string{
		next.Players[0].Name, next.Players[1].Name, next.Players[2].Name,
	})
	// Capability keys follow the player into the next game.
	assert.Equal(t, g.Players[1].Key, next.Players[0].Key)
	assert.Equal(t, g.Players[0].Key, next.Players[2].Key)
	assert.Equal(t, 0, next.WhosTurn)

	ev := <-events
	assert.Equal(t, "nextGame", ev.Name)
	assert.Equal(t, next.Key, ev.Data)

	// At most one follow-on per game.
	_, err = r.Execute(ctx, g, g.Players[0], Command{Name: "newGame"})
	assert.ErrorIs(t, err, ErrDuplicateFollowon)
}

func TestFollowonKeyAppearsInEndMessage(t *testing.T) {
	ctx := context.Background()
	r := testRegistry(t, newFakeStore())
	g, err := r.Create(ctx, "english", twoSeats())
	require.NoError(t, err)

	for i := 0; i < 4; i++ {
		p := g.Players[g.WhosTurn]
		_, err := r.Execute(ctx, g, p, Command{Name: "pass"})
		require.NoError(t, err)
	}
	require.True(t, g.Ended())
	assert.Empty(t, g.EndMessage.NextGameKey)

	_, err = r.Execute(ctx, g, g.Players[0], Command{Name: "newGame"})
	require.NoError(t, err)
	assert.Equal(t, g.NextGameKey, g.EndMessage.NextGameKey)
}

func TestCreateSendsInvitations(t *testing.T) {
	store := newFakeStore()
	mailer := newFakeMailer()
	r, err := NewRegistry(RegistryConfig{
		Store:   store,
		Mailer:  mailer,
		BaseURL: "http://play.example.com",
	})
	require.NoError(t, err)

	g, err := r.Create(context.Background(), "english", []Seat{
		{Name: "ann", Email: "ann@example.com"},
		{Name: "ben", Email: "ben@example.com"},
		{Name: "ghost"}, // no address, no mail
	})
	require.NoError(t, err)

	got := map[string]sentMail{}
	for i := 0; i < 2; i++ {
		select {
		case m := <-mailer.sent:
			got[m.to] = m
		case <-time.After(2 * time.Second):
			t.Fatal("timed out waiting for invitation mail")
		}
	}
	require.Len(t, got, 2)

	ann := got["ann@example.com"]
	assert.Equal(t, "You have been invited to play Scrabble with ben and ghost", ann.subject)
	link := r.JoinLink(g, g.Players[0])
	assert.Contains(t, ann.text, link)
	assert.Contains(t, ann.html, link)
	assert.Equal(t, "http://play.example.com/game/"+g.Key+"/"+g.Players[0].Key, link)

	select {
	case m := <-mailer.sent:
		t.Fatalf("unexpected third mail to %s", m.to)
	case <-time.After(100 * time.Millisecond):
	}
}

func TestRegistryEvictsAtCacheCapacity(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	r, err := NewRegistry(RegistryConfig{
		Store:     store,
		BaseURL:   "http://localhost:9093",
		CacheSize: 2,
	})
	require.NoError(t, err)

	g1, err := r.Create(ctx, "english", twoSeats())
	require.NoError(t, err)
	g2, err := r.Create(ctx, "english", twoSeats())
	require.NoError(t, err)
	g3, err := r.Create(ctx, "english", twoSeats())
	require.NoError(t, err)

	// The third game pushed the oldest out of the cache.
	assert.Equal(t, 2, r.cache.Len())
	assert.False(t, r.cache.Contains(g1.Key))
	assert.True(t, r.cache.Contains(g2.Key))
	assert.True(t, r.cache.Contains(g3.Key))

	// The evicted game is still durable: resolving it reloads a fresh
	// instance from the store, with an empty listener set.
	reloaded, err := r.Get(ctx, g1.Key)
	require.NoError(t, err)
	assert.NotSame(t, g1, reloaded)
	assert.Equal(t, g1.Key, reloaded.Key)
	assert.Equal(t, 0, reloaded.Hub().Listeners())

	// Cached games resolve to their live instances.
	cached, err := r.Get(ctx, g3.Key)
	require.NoError(t, err)
	assert.Same(t, g3, cached)
}

func TestExecuteAbortedFinishLeavesPassCounter(t *testing.T) {
	ctx := context.Background()
	r := testRegistry(t, newFakeStore())
	g, err := r.Create(ctx, "english", twoSeats())
	require.NoError(t, err)

	// Two empty racks violate tile conservation; any finish must then
	// abort without committing anything.
	setRack(g.Players[0].Rack)
	setRack(g.Players[1].Rack)
	g.Passes = 1

	_, err = r.Execute(ctx, g, g.Players[0], Command{Name: "pass"})
	require.ErrorIs(t, err, ErrTileInvariant)

	assert.Equal(t, 1, g.Passes)
	assert.Empty(t, g.Turns)
	assert.False(t, g.Ended())
}

func TestSnapshotRejectsUnknownVersion(t *testing.T) {
	_, err := DecodeSnapshot([]byte(`{"v":99,"key":"abc"}`))
	assert.Error(t, err)

	_, err = DecodeSnapshot([]byte(`not json`))
	assert.Error(t, err)
}
