package service_test

import (
	"context"
	"errors"
	"sort"
	"sync"
	"testing"
	"time"

	"adventure-server/internal/interfaces"
	"adventure-server/internal/messaging"
	"adventure-server/internal/models"
	"adventure-server/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap/zaptest"
)

// memStore is an in-memory stand-in for the Postgres repositories with the
// same conditional-write semantics.
type memStore struct {
	mu       sync.Mutex
	stories  map[uuid.UUID]*models.Story
	scenes   map[uuid.UUID]*models.Scene
	choices  map[uuid.UUID]*models.Choice
	sessions map[uuid.UUID]*models.GameSession
	visits   []models.SceneVisit
}

func newMemStore() *memStore {
	return &memStore{
		stories:  map[uuid.UUID]*models.Story{},
		scenes:   map[uuid.UUID]*models.Scene{},
		choices:  map[uuid.UUID]*models.Choice{},
		sessions: map[uuid.UUID]*models.GameSession{},
	}
}

type memStories struct{ *memStore }
type memScenes struct{ *memStore }
type memChoices struct{ *memStore }
type memSessions struct{ *memStore }
type memVisits struct{ *memStore }

var (
	_ interfaces.StoryRepository       = memStories{}
	_ interfaces.SceneRepository       = memScenes{}
	_ interfaces.ChoiceRepository      = memChoices{}
	_ interfaces.GameSessionRepository = memSessions{}
	_ interfaces.SceneVisitRepository  = memVisits{}
)

func (r memStories) GetByID(_ context.Context, id uuid.UUID) (*models.Story, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if s, ok := r.stories[id]; ok {
		cp := *s
		return &cp, nil
	}
	return nil, models.ErrNotFound
}

func (r memScenes) GetByID(_ context.Context, id uuid.UUID) (*models.Scene, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if s, ok := r.scenes[id]; ok {
		cp := *s
		return &cp, nil
	}
	return nil, models.ErrNotFound
}

func (r memScenes) FindStartScene(_ context.Context, storyID uuid.UUID) (*models.Scene, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range r.scenes {
		if s.StoryID == storyID && s.IsStart {
			cp := *s
			return &cp, nil
		}
	}
	return nil, models.ErrNotFound
}

func (r memScenes) ListByIDs(_ context.Context, ids []uuid.UUID) ([]*models.Scene, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []*models.Scene{}
	for _, id := range ids {
		if s, ok := r.scenes[id]; ok {
			cp := *s
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r memChoices) GetByID(_ context.Context, id uuid.UUID) (*models.Choice, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if c, ok := r.choices[id]; ok {
		cp := *c
		return &cp, nil
	}
	return nil, models.ErrNotFound
}

func (r memChoices) ListFromScene(_ context.Context, sceneID uuid.UUID) ([]models.Choice, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []models.Choice{}
	for _, c := range r.choices {
		if c.FromSceneID == sceneID {
			out = append(out, *c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].OrderIndex < out[j].OrderIndex })
	return out, nil
}

func copySession(s *models.GameSession) *models.GameSession {
	cp := *s
	cp.Journal = s.Journal.Clone()
	cp.Items = s.Items.Clone()
	return &cp
}

func (r memSessions) GetByPlayerAndStory(_ context.Context, playerID, storyID uuid.UUID) (*models.GameSession, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range r.sessions {
		if s.PlayerID == playerID && s.StoryID == storyID {
			return copySession(s), nil
		}
	}
	return nil, models.ErrNotFound
}

func (r memSessions) GetOwned(_ context.Context, sessionID, playerID uuid.UUID) (*models.GameSession, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if s, ok := r.sessions[sessionID]; ok && s.PlayerID == playerID {
		return copySession(s), nil
	}
	return nil, models.ErrNotFound
}

func (r memSessions) GetOwnedActive(ctx context.Context, sessionID, playerID uuid.UUID) (*models.GameSession, error) {
	s, err := r.GetOwned(ctx, sessionID, playerID)
	if err != nil || !s.IsActive() {
		return nil, models.ErrNotFound
	}
	return s, nil
}

func (r memSessions) ResetForPlay(_ context.Context, session *models.GameSession) (uuid.UUID, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range r.sessions {
		if s.PlayerID == session.PlayerID && s.StoryID == session.StoryID {
			if s.IsActive() {
				return s.ID, false, nil
			}
			id := s.ID
			*s = *copySession(session)
			s.ID = id
			s.CompletedAt = nil
			return id, true, nil
		}
	}
	r.sessions[session.ID] = copySession(session)
	return session.ID, true, nil
}

func (r memSessions) ApplyTransition(_ context.Context, t models.SessionTransition) (*models.GameSession, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[t.SessionID]
	if !ok || s.PlayerID != t.PlayerID || !s.IsActive() || s.CurrentSceneID != t.ExpectedSceneID {
		return nil, models.ErrNotFound
	}
	s.CurrentSceneID = t.NextSceneID
	s.Status = t.Status
	s.Journal = t.Journal.Clone()
	s.CompletedAt = t.CompletedAt
	return copySession(s), nil
}

func (r memSessions) ReplaceItems(_ context.Context, sessionID, playerID uuid.UUID, expected, items models.KeywordSet) (*models.GameSession, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[sessionID]
	if !ok || s.PlayerID != playerID || !s.IsActive() || !s.Items.Equal(expected) {
		return nil, models.ErrNotFound
	}
	s.Items = items.Clone()
	return copySession(s), nil
}

func (r memSessions) MarkAbandoned(_ context.Context, sessionID, playerID uuid.UUID, _ time.Time) (*models.GameSession, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[sessionID]
	if !ok || s.PlayerID != playerID || !s.IsActive() {
		return nil, models.ErrNotFound
	}
	s.Status = models.SessionStatusAbandoned
	return copySession(s), nil
}

func (r memVisits) Append(_ context.Context, v *models.SceneVisit) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.visits = append(r.visits, *v)
	return nil
}

func (r memVisits) CountSince(_ context.Context, sessionID uuid.UUID, since time.Time) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, v := range r.visits {
		if v.SessionID == sessionID && !v.VisitedAt.Before(since) {
			n++
		}
	}
	return n, nil
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []messaging.GameEvent
}

func (p *recordingPublisher) PublishGameEvent(_ context.Context, e messaging.GameEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
	return nil
}

func (p *recordingPublisher) types() []messaging.GameEventType {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]messaging.GameEventType, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.Type)
	}
	return out
}

// CaveStorySuite plays a small story:
//
//	entrance -> hall (grants "torch") -> vault (requires "key") victory
//	         -> cellar (grants "key") -> hall
type CaveStorySuite struct {
	suite.Suite
	store     *memStore
	publisher *recordingPublisher
	svc       service.GameService
	clock     time.Time

	playerID uuid.UUID
	storyID  uuid.UUID
	entrance uuid.UUID
	hall     uuid.UUID
	cellar   uuid.UUID
	vault    uuid.UUID

	toHall     uuid.UUID
	toCellar   uuid.UUID
	toVault    uuid.UUID
	cellarHall uuid.UUID
}

func (s *CaveStorySuite) SetupTest() {
	s.store = newMemStore()
	s.publisher = &recordingPublisher{}
	s.playerID = uuid.New()
	s.storyID = uuid.New()
	s.clock = time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)

	s.store.stories[s.storyID] = &models.Story{ID: s.storyID, Title: "Cave", AuthorID: uuid.New(), IsPublished: true}

	victory := models.EndingVictory
	addScene := func(sc models.Scene) uuid.UUID {
		sc.ID = uuid.New()
		sc.StoryID = s.storyID
		s.store.scenes[sc.ID] = &sc
		return sc.ID
	}
	s.entrance = addScene(models.Scene{Title: "Entrance", IsStart: true, Keywords: models.NewKeywordSet("entered")})
	s.hall = addScene(models.Scene{Title: "Hall", Keywords: models.NewKeywordSet("torch"), ItemLabels: models.NewKeywordSet("rope")})
	s.cellar = addScene(models.Scene{Title: "Cellar", Keywords: models.NewKeywordSet("key")})
	s.vault = addScene(models.Scene{
		Title:            "Vault",
		IsEnding:         true,
		EndingType:       &victory,
		RequiredKeywords: models.NewKeywordSet("torch", "key"),
	})

	addChoice := func(from, to uuid.UUID, order int) uuid.UUID {
		c := &models.Choice{ID: uuid.New(), StoryID: s.storyID, FromSceneID: from, ToSceneID: to, OrderIndex: order}
		s.store.choices[c.ID] = c
		return c.ID
	}
	s.toHall = addChoice(s.entrance, s.hall, 0)
	s.toVault = addChoice(s.hall, s.vault, 0)
	s.toCellar = addChoice(s.hall, s.cellar, 1)
	s.cellarHall = addChoice(s.cellar, s.hall, 0)

	s.svc = service.NewGameService(
		memStories{s.store}, memScenes{s.store}, memChoices{s.store},
		memSessions{s.store}, memVisits{s.store}, s.publisher, zaptest.NewLogger(s.T()),
	)
	service.SetClock(s.svc, func() time.Time {
		s.clock = s.clock.Add(time.Minute)
		return s.clock
	})
}

func (s *CaveStorySuite) start() uuid.UUID {
	res, err := s.svc.StartOrResumeSession(context.Background(), s.storyID, s.playerID)
	s.Require().NoError(err)
	return res.SessionID
}

func (s *CaveStorySuite) TestFreshPlaythroughReachesVictory() {
	ctx := context.Background()
	sessionID := s.start()

	res, err := s.svc.Navigate(ctx, sessionID, s.toHall, s.playerID)
	s.Require().NoError(err)
	s.Equal([]string{"entered", "torch"}, res.Session.Journal.Values())
	s.Len(res.Scene.Choices, 2)

	_, err = s.svc.Navigate(ctx, sessionID, s.toCellar, s.playerID)
	s.Require().NoError(err)
	_, err = s.svc.Navigate(ctx, sessionID, s.cellarHall, s.playerID)
	s.Require().NoError(err)

	res, err = s.svc.Navigate(ctx, sessionID, s.toVault, s.playerID)
	s.Require().NoError(err)
	s.True(res.IsEnding)
	s.Equal(models.SessionStatusCompleted, res.Session.Status)
	s.NotNil(res.Session.CompletedAt)

	state, err := s.svc.GetPlayState(ctx, sessionID, s.playerID)
	s.Require().NoError(err)
	s.Require().NotNil(state.Ending)
	s.Equal(models.EndingVictory, state.Ending.Type)
	s.Equal(5, state.VisitCount)

	_, err = s.svc.Navigate(ctx, sessionID, s.toVault, s.playerID)
	s.ErrorIs(err, service.ErrSessionNotFound)

	s.Equal([]messaging.GameEventType{messaging.EventSessionStarted, messaging.EventSessionCompleted}, s.publisher.types())
}

func (s *CaveStorySuite) TestBlockedPathLeavesSessionUntouched() {
	ctx := context.Background()
	sessionID := s.start()
	_, err := s.svc.Navigate(ctx, sessionID, s.toHall, s.playerID)
	s.Require().NoError(err)

	before, err := s.svc.GetPlayState(ctx, sessionID, s.playerID)
	s.Require().NoError(err)
	s.True(before.Choices[0].Locked)
	s.Equal([]string{"key"}, before.Choices[0].MissingKeywords)
	s.False(before.Choices[1].Locked)

	_, err = s.svc.Navigate(ctx, sessionID, s.toVault, s.playerID)
	var missing *service.MissingKeywordsError
	s.Require().ErrorAs(err, &missing)
	s.Equal([]string{"key"}, missing.Missing)

	after, err := s.svc.GetPlayState(ctx, sessionID, s.playerID)
	s.Require().NoError(err)
	s.Equal(s.hall, after.Session.CurrentSceneID)
	s.Equal(before.Session.Journal.Values(), after.Session.Journal.Values())
	s.Equal(before.VisitCount, after.VisitCount)
}

func (s *CaveStorySuite) TestRestartAfterCompletionResetsProgress() {
	ctx := context.Background()
	sessionID := s.start()
	for _, choiceID := range []uuid.UUID{s.toHall, s.toCellar, s.cellarHall, s.toVault} {
		_, err := s.svc.Navigate(ctx, sessionID, choiceID, s.playerID)
		s.Require().NoError(err)
	}

	res, err := s.svc.StartOrResumeSession(ctx, s.storyID, s.playerID)
	s.Require().NoError(err)
	s.True(res.IsNew)
	s.Equal(sessionID, res.SessionID)

	state, err := s.svc.GetPlayState(ctx, sessionID, s.playerID)
	s.Require().NoError(err)
	s.Equal(models.SessionStatusActive, state.Session.Status)
	s.Equal(s.entrance, state.Session.CurrentSceneID)
	s.Equal([]string{"entered"}, state.Session.Journal.Values())
	s.Nil(state.Session.CompletedAt)
	s.Nil(state.Ending)
	s.Equal(1, state.VisitCount)
}

func (s *CaveStorySuite) TestResumeIsIdempotent() {
	ctx := context.Background()
	sessionID := s.start()
	_, err := s.svc.Navigate(ctx, sessionID, s.toHall, s.playerID)
	s.Require().NoError(err)

	for i := 0; i < 3; i++ {
		res, err := s.svc.StartOrResumeSession(ctx, s.storyID, s.playerID)
		s.Require().NoError(err)
		s.False(res.IsNew)
		s.Equal(sessionID, res.SessionID)
	}

	state, err := s.svc.GetPlayState(ctx, sessionID, s.playerID)
	s.Require().NoError(err)
	s.Equal(s.hall, state.Session.CurrentSceneID)
	s.Equal(2, state.VisitCount)
	s.Len(s.publisher.types(), 1)
}

func (s *CaveStorySuite) TestInventoryFollowsTheScene() {
	ctx := context.Background()
	sessionID := s.start()

	_, err := s.svc.CollectItem(ctx, sessionID, s.playerID, "rope")
	s.ErrorIs(err, service.ErrItemNotOffered)

	_, err = s.svc.Navigate(ctx, sessionID, s.toHall, s.playerID)
	s.Require().NoError(err)
	got, err := s.svc.CollectItem(ctx, sessionID, s.playerID, "rope")
	s.Require().NoError(err)
	s.Equal([]string{"rope"}, got.Items.Values())

	state, err := s.svc.GetPlayState(ctx, sessionID, s.playerID)
	s.Require().NoError(err)
	s.Empty(state.AvailableItems)

	got, err = s.svc.RemoveItem(ctx, sessionID, s.playerID, "rope")
	s.Require().NoError(err)
	s.True(got.Items.IsEmpty())
}

func (s *CaveStorySuite) TestAbandonThenStartOver() {
	ctx := context.Background()
	sessionID := s.start()
	_, err := s.svc.AbandonSession(ctx, sessionID, s.playerID)
	s.Require().NoError(err)

	_, err = s.svc.AbandonSession(ctx, sessionID, s.playerID)
	s.ErrorIs(err, service.ErrSessionNotFound)

	res, err := s.svc.StartOrResumeSession(ctx, s.storyID, s.playerID)
	s.Require().NoError(err)
	s.True(res.IsNew)
	s.Equal(sessionID, res.SessionID)
}

func (s *CaveStorySuite) TestOtherPlayerCannotSeeSession() {
	sessionID := s.start()
	_, err := s.svc.GetPlayState(context.Background(), sessionID, uuid.New())
	s.ErrorIs(err, service.ErrSessionNotFound)
}

func TestCaveStory(t *testing.T) {
	suite.Run(t, new(CaveStorySuite))
}

func TestConcurrentNavigationAppliesOnce(t *testing.T) {
	store := newMemStore()
	storyID, playerID := uuid.New(), uuid.New()
	store.stories[storyID] = &models.Story{ID: storyID, IsPublished: true}
	start := &models.Scene{ID: uuid.New(), StoryID: storyID, IsStart: true}
	next := &models.Scene{ID: uuid.New(), StoryID: storyID}
	store.scenes[start.ID] = start
	store.scenes[next.ID] = next
	choice := &models.Choice{ID: uuid.New(), StoryID: storyID, FromSceneID: start.ID, ToSceneID: next.ID}
	store.choices[choice.ID] = choice

	svc := service.NewGameService(memStories{store}, memScenes{store}, memChoices{store},
		memSessions{store}, memVisits{store}, nil, zaptest.NewLogger(t))
	res, err := svc.StartOrResumeSession(context.Background(), storyID, playerID)
	require.NoError(t, err)

	const players = 8
	var wg sync.WaitGroup
	errs := make(chan error, players)
	for i := 0; i < players; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Navigate(context.Background(), res.SessionID, choice.ID, playerID)
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	succeeded := 0
	for err := range errs {
		if err == nil {
			succeeded++
			continue
		}
		require.True(t, errors.Is(err, service.ErrInvalidChoice) || errors.Is(err, service.ErrPersistenceFailure), err)
	}
	require.Equal(t, 1, succeeded)
}
