package encounter

//go:generate mockgen -destination=mock/mock_service.go -package=mockencounter -source=service.go

import (
	"context"
	"sync"

	"github.com/veildark/acks-engine/internal/dice"
	"github.com/veildark/acks-engine/internal/domain/combat"
	"github.com/veildark/acks-engine/internal/domain/enemy"
	"github.com/veildark/acks-engine/internal/errors"
	"github.com/veildark/acks-engine/internal/repositories/characters"
	"github.com/veildark/acks-engine/internal/repositories/fights"
	"github.com/veildark/acks-engine/internal/uuid"
)

// Service hosts fights. It owns the authoritative stats for every
// combatant in an encounter, applies player and DM intents one at a
// time, and persists the fight after every transition.
type Service interface {
	// CreateEncounter opens a new empty encounter and returns its ID
	CreateEncounter(ctx context.Context) (string, error)

	// GetFight retrieves the current fight state of an encounter
	GetFight(ctx context.Context, encounterID string) (*combat.Fight, error)

	// AddCharacter brings a stored player character into the encounter
	AddCharacter(ctx context.Context, encounterID, characterID string) (combat.CombatantRef, error)

	// AddEnemy spawns a fresh instance of an enemy type into the encounter
	AddEnemy(ctx context.Context, encounterID, typeID string) (combat.CombatantRef, error)

	// StartRound rolls initiative and begins a round of combat
	StartRound(ctx context.Context, encounterID string) error

	// ResolveAction applies a decision on behalf of an owner
	ResolveAction(ctx context.Context, encounterID string, as combat.Owner, action combat.Action) error

	// ForceRelinquish hands a stalled player's pending decision to the DM
	ForceRelinquish(ctx context.Context, encounterID string) error

	// EndEncounter writes surviving characters back and tears the fight down
	EndEncounter(ctx context.Context, encounterID string) error

	// ListActiveEncounters returns the IDs of every encounter with a fight
	ListActiveEncounters(ctx context.Context) ([]string, error)
}

// encounterState is the authoritative in-memory side of one encounter:
// the live stats every fight transition reads and writes, which
// combatant maps back to which stored character, and how many of each
// enemy type have been spawned so display names stay unique.
//
// TODO: persist spawned enemy stats alongside the fight so a restart
// mid-combat can rehydrate enemies, not just player characters.
type encounterState struct {
	stats      map[combat.CombatantRef]*combat.CombatantStats
	characters map[combat.CombatantRef]string
	spawned    map[string]int
}

func newEncounterState() *encounterState {
	return &encounterState{
		stats:      make(map[combat.CombatantRef]*combat.CombatantStats),
		characters: make(map[combat.CombatantRef]string),
		spawned:    make(map[string]int),
	}
}

// Lookup implements combat.StatsProvider
func (e *encounterState) Lookup(ref combat.CombatantRef) (*combat.CombatantStats, bool) {
	stats, ok := e.stats[ref]
	return stats, ok
}

type service struct {
	mu sync.Mutex

	fightRepo     fights.Repository
	characterRepo characters.Repository
	enemyTypes    map[string]enemy.Type
	roller        dice.Roller
	notifier      combat.Notifier
	uuidGenerator uuid.Generator

	encounters map[string]*encounterState
}

// ServiceConfig holds configuration for the service
type ServiceConfig struct {
	FightRepository     fights.Repository
	CharacterRepository characters.Repository
	EnemyTypes          map[string]enemy.Type
	Roller              dice.Roller
	Notifier            combat.Notifier
	UUIDGenerator       uuid.Generator
}

// NewService creates a new encounter service
func NewService(cfg *ServiceConfig) Service {
	if cfg.FightRepository == nil {
		panic("fight repository is required")
	}
	if cfg.CharacterRepository == nil {
		panic("character repository is required")
	}
	if cfg.Notifier == nil {
		panic("notifier is required")
	}

	svc := &service{
		fightRepo:     cfg.FightRepository,
		characterRepo: cfg.CharacterRepository,
		enemyTypes:    cfg.EnemyTypes,
		roller:        cfg.Roller,
		notifier:      cfg.Notifier,
		uuidGenerator: cfg.UUIDGenerator,
		encounters:    make(map[string]*encounterState),
	}

	if svc.roller == nil {
		svc.roller = dice.NewRandomRoller()
	}
	if svc.uuidGenerator == nil {
		svc.uuidGenerator = uuid.NewGoogleUUIDGenerator()
	}

	return svc
}

// CreateEncounter opens a new empty encounter and returns its ID
func (s *service) CreateEncounter(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.uuidGenerator.New()
	if err := s.fightRepo.Save(ctx, id, combat.NewFight()); err != nil {
		return "", errors.Wrap(err, "failed to create encounter")
	}
	s.encounters[id] = newEncounterState()
	return id, nil
}

// GetFight retrieves the current fight state of an encounter
func (s *service) GetFight(ctx context.Context, encounterID string) (*combat.Fight, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.fightRepo.Get(ctx, encounterID)
}

func (s *service) state(encounterID string) (*encounterState, error) {
	state, ok := s.encounters[encounterID]
	if !ok {
		return nil, errors.NotFoundf("no encounter '%s'", encounterID).
			WithMeta("encounter_id", encounterID)
	}
	return state, nil
}

// AddCharacter brings a stored player character into the encounter
func (s *service) AddCharacter(ctx context.Context, encounterID, characterID string) (combat.CombatantRef, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	state, err := s.state(encounterID)
	if err != nil {
		return combat.CombatantRef{}, err
	}

	pc, err := s.characterRepo.Get(ctx, characterID)
	if err != nil {
		return combat.CombatantRef{}, errors.Wrap(err, "failed to load character")
	}

	ref := pc.Ref()
	if _, exists := state.stats[ref]; exists {
		return combat.CombatantRef{}, errors.AlreadyExistsf("%s is already in the encounter", ref)
	}

	fight, err := s.fightRepo.Get(ctx, encounterID)
	if err != nil {
		return combat.CombatantRef{}, err
	}
	fight.AddCombatant(combat.Player(pc.User), ref)
	if err := s.fightRepo.Save(ctx, encounterID, fight); err != nil {
		return combat.CombatantRef{}, err
	}

	state.stats[ref] = pc.CombatStats
	state.characters[ref] = pc.ID
	return ref, nil
}

// AddEnemy spawns a fresh instance of an enemy type into the encounter
func (s *service) AddEnemy(ctx context.Context, encounterID, typeID string) (combat.CombatantRef, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	state, err := s.state(encounterID)
	if err != nil {
		return combat.CombatantRef{}, err
	}

	typ, ok := s.enemyTypes[typeID]
	if !ok {
		return combat.CombatantRef{}, errors.NotFoundf("no enemy type '%s'", typeID).
			WithMeta("enemy_type", typeID)
	}

	instance, err := typ.Spawn(s.roller, state.spawned[typeID])
	if err != nil {
		return combat.CombatantRef{}, errors.Wrap(err, "failed to spawn enemy")
	}

	fight, err := s.fightRepo.Get(ctx, encounterID)
	if err != nil {
		return combat.CombatantRef{}, err
	}
	fight.AddCombatant(combat.DM(), instance.Ref)
	if err := s.fightRepo.Save(ctx, encounterID, fight); err != nil {
		return combat.CombatantRef{}, err
	}

	state.spawned[typeID]++
	state.stats[instance.Ref] = instance.Stats
	return instance.Ref, nil
}

// StartRound rolls initiative and begins a round of combat
func (s *service) StartRound(ctx context.Context, encounterID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	state, err := s.state(encounterID)
	if err != nil {
		return err
	}

	fight, err := s.fightRepo.Get(ctx, encounterID)
	if err != nil {
		return err
	}
	if err := fight.StartRound(s.roller, state, s.notifier); err != nil {
		return err
	}
	fight.NextTurn(state, s.notifier)

	return s.fightRepo.Save(ctx, encounterID, fight)
}

// ResolveAction applies a decision on behalf of an owner. The DM may
// act at any decision point; a player only when the fight is parked
// waiting on them.
func (s *service) ResolveAction(ctx context.Context, encounterID string, as combat.Owner, action combat.Action) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	state, err := s.state(encounterID)
	if err != nil {
		return err
	}

	fight, err := s.fightRepo.Get(ctx, encounterID)
	if err != nil {
		return err
	}
	if !as.IsDM() {
		if fight.AwaitingResponse == nil || *fight.AwaitingResponse != as {
			return errors.PermissionDeniedf("it is not %s's decision to make", as)
		}
	}
	if err := fight.ResolveAction(s.roller, state, s.notifier, action); err != nil {
		return err
	}

	return s.fightRepo.Save(ctx, encounterID, fight)
}

// ForceRelinquish hands a stalled player's pending decision to the DM
func (s *service) ForceRelinquish(ctx context.Context, encounterID string) error {
	return s.ResolveAction(ctx, encounterID, combat.DM(), combat.RelinquishControl{})
}

// EndEncounter writes surviving characters back and tears the fight
// down. Write-back failures abort before anything is deleted, so the
// encounter stays intact and the call can be retried.
func (s *service) EndEncounter(ctx context.Context, encounterID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	state, err := s.state(encounterID)
	if err != nil {
		return err
	}

	for ref, characterID := range state.characters {
		pc, err := s.characterRepo.Get(ctx, characterID)
		if err != nil {
			return errors.Wrapf(err, "failed to load character %s", characterID)
		}
		pc.CombatStats = state.stats[ref]
		if err := s.characterRepo.Update(ctx, pc); err != nil {
			return errors.Wrapf(err, "failed to save character %s", characterID)
		}
	}

	if err := s.fightRepo.Delete(ctx, encounterID); err != nil {
		return err
	}
	delete(s.encounters, encounterID)
	return nil
}

// ListActiveEncounters returns the IDs of every encounter with a fight
func (s *service) ListActiveEncounters(ctx context.Context) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.fightRepo.ListActive(ctx)
}
