package cache

import (
	"context"
	"sort"
	"strings"

	"github.com/riskibarqy/amateur-league/internal/domain/league"
	"github.com/riskibarqy/amateur-league/internal/domain/player"
	"github.com/riskibarqy/amateur-league/internal/domain/team"
	basecache "github.com/riskibarqy/amateur-league/internal/platform/cache"
)

type lookup[T any] struct {
	value  T
	exists bool
}

type LeagueRepository struct {
	next  league.Repository
	cache *basecache.Store
}

func NewLeagueRepository(next league.Repository, cache *basecache.Store) *LeagueRepository {
	return &LeagueRepository{next: next, cache: cache}
}

func (r *LeagueRepository) List(ctx context.Context) ([]league.League, error) {
	items, err := basecache.Load(ctx, r.cache, "league:list", func(ctx context.Context) ([]league.League, error) {
		items, err := r.next.List(ctx)
		if err != nil {
			return nil, err
		}
		return append([]league.League(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}
	return append([]league.League(nil), items...), nil
}

func (r *LeagueRepository) GetByID(ctx context.Context, leagueID string) (league.League, bool, error) {
	cached, err := basecache.Load(ctx, r.cache, "league:id:"+leagueID, func(ctx context.Context) (lookup[league.League], error) {
		item, exists, err := r.next.GetByID(ctx, leagueID)
		return lookup[league.League]{value: item, exists: exists}, err
	})
	if err != nil {
		return league.League{}, false, err
	}
	return cached.value, cached.exists, nil
}

// SeasonRepository caches season reads per league. Every write drops the
// season keys.
type SeasonRepository struct {
	next  league.SeasonRepository
	cache *basecache.Store
}

func NewSeasonRepository(next league.SeasonRepository, cache *basecache.Store) *SeasonRepository {
	return &SeasonRepository{next: next, cache: cache}
}

func (r *SeasonRepository) Create(ctx context.Context, season league.Season) error {
	if err := r.next.Create(ctx, season); err != nil {
		return err
	}
	r.cache.DeletePrefix(ctx, "season:")
	return nil
}

func (r *SeasonRepository) GetByID(ctx context.Context, seasonID string) (league.Season, bool, error) {
	cached, err := basecache.Load(ctx, r.cache, "season:id:"+seasonID, func(ctx context.Context) (lookup[league.Season], error) {
		item, exists, err := r.next.GetByID(ctx, seasonID)
		return lookup[league.Season]{value: item, exists: exists}, err
	})
	if err != nil {
		return league.Season{}, false, err
	}
	return cached.value, cached.exists, nil
}

func (r *SeasonRepository) ListByLeague(ctx context.Context, leagueID string) ([]league.Season, error) {
	items, err := basecache.Load(ctx, r.cache, "season:list:"+leagueID, func(ctx context.Context) ([]league.Season, error) {
		items, err := r.next.ListByLeague(ctx, leagueID)
		if err != nil {
			return nil, err
		}
		return append([]league.Season(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}
	return append([]league.Season(nil), items...), nil
}

func (r *SeasonRepository) GetPrimary(ctx context.Context, leagueID string) (league.Season, bool, error) {
	cached, err := basecache.Load(ctx, r.cache, "season:primary:"+leagueID, func(ctx context.Context) (lookup[league.Season], error) {
		item, exists, err := r.next.GetPrimary(ctx, leagueID)
		return lookup[league.Season]{value: item, exists: exists}, err
	})
	if err != nil {
		return league.Season{}, false, err
	}
	return cached.value, cached.exists, nil
}

func (r *SeasonRepository) SetPrimary(ctx context.Context, leagueID, seasonID string) error {
	err := r.next.SetPrimary(ctx, leagueID, seasonID)
	r.cache.DeletePrefix(ctx, "season:")
	return err
}

func (r *SeasonRepository) Delete(ctx context.Context, seasonID string) error {
	err := r.next.Delete(ctx, seasonID)
	r.cache.DeletePrefix(ctx, "season:")
	return err
}

// TeamRepository caches team reads. Points and cancellation writes pass
// through and drop every team key.
type TeamRepository struct {
	next  team.Repository
	cache *basecache.Store
}

func NewTeamRepository(next team.Repository, cache *basecache.Store) *TeamRepository {
	return &TeamRepository{next: next, cache: cache}
}

func (r *TeamRepository) ListByLeague(ctx context.Context, leagueID string) ([]team.Team, error) {
	items, err := basecache.Load(ctx, r.cache, "team:list:"+leagueID, func(ctx context.Context) ([]team.Team, error) {
		items, err := r.next.ListByLeague(ctx, leagueID)
		if err != nil {
			return nil, err
		}
		return append([]team.Team(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}
	return append([]team.Team(nil), items...), nil
}

func (r *TeamRepository) GetByID(ctx context.Context, teamID string) (team.Team, bool, error) {
	cached, err := basecache.Load(ctx, r.cache, "team:id:"+teamID, func(ctx context.Context) (lookup[team.Team], error) {
		item, exists, err := r.next.GetByID(ctx, teamID)
		return lookup[team.Team]{value: item, exists: exists}, err
	})
	if err != nil {
		return team.Team{}, false, err
	}
	return cached.value, cached.exists, nil
}

func (r *TeamRepository) GetByIDs(ctx context.Context, teamIDs []string) ([]team.Team, error) {
	items, err := basecache.Load(ctx, r.cache, "team:ids:"+idsKey(teamIDs), func(ctx context.Context) ([]team.Team, error) {
		items, err := r.next.GetByIDs(ctx, teamIDs)
		if err != nil {
			return nil, err
		}
		return append([]team.Team(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}
	return append([]team.Team(nil), items...), nil
}

func (r *TeamRepository) UpdatePoints(ctx context.Context, points map[string]int) error {
	err := r.next.UpdatePoints(ctx, points)
	r.cache.DeletePrefix(ctx, "team:")
	return err
}

// IncrementCancellations always reaches the backing store; the cap check
// must not see a cached counter.
func (r *TeamRepository) IncrementCancellations(ctx context.Context, teamID string) (int, error) {
	count, err := r.next.IncrementCancellations(ctx, teamID)
	r.cache.DeletePrefix(ctx, "team:")
	return count, err
}

func (r *TeamRepository) DecrementCancellations(ctx context.Context, teamID string) error {
	err := r.next.DecrementCancellations(ctx, teamID)
	r.cache.DeletePrefix(ctx, "team:")
	return err
}

func (r *TeamRepository) SetCancellations(ctx context.Context, counts map[string]int) error {
	err := r.next.SetCancellations(ctx, counts)
	r.cache.DeletePrefix(ctx, "team:")
	return err
}

func (r *TeamRepository) ResetCancellations(ctx context.Context, leagueID string) error {
	err := r.next.ResetCancellations(ctx, leagueID)
	r.cache.DeletePrefix(ctx, "team:")
	return err
}

// PlayerRepository caches player reads. ListSuspended is never cached.
type PlayerRepository struct {
	next  player.Repository
	cache *basecache.Store
}

func NewPlayerRepository(next player.Repository, cache *basecache.Store) *PlayerRepository {
	return &PlayerRepository{next: next, cache: cache}
}

func (r *PlayerRepository) GetByID(ctx context.Context, playerID string) (player.Player, bool, error) {
	cached, err := basecache.Load(ctx, r.cache, "player:id:"+playerID, func(ctx context.Context) (lookup[player.Player], error) {
		item, exists, err := r.next.GetByID(ctx, playerID)
		return lookup[player.Player]{value: item, exists: exists}, err
	})
	if err != nil {
		return player.Player{}, false, err
	}
	return cached.value, cached.exists, nil
}

func (r *PlayerRepository) GetByIDs(ctx context.Context, playerIDs []string) ([]player.Player, error) {
	items, err := basecache.Load(ctx, r.cache, "player:ids:"+idsKey(playerIDs), func(ctx context.Context) ([]player.Player, error) {
		items, err := r.next.GetByIDs(ctx, playerIDs)
		if err != nil {
			return nil, err
		}
		return append([]player.Player(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}
	return append([]player.Player(nil), items...), nil
}

func (r *PlayerRepository) ListByLeague(ctx context.Context, leagueID string) ([]player.Player, error) {
	items, err := basecache.Load(ctx, r.cache, "player:list:"+leagueID, func(ctx context.Context) ([]player.Player, error) {
		items, err := r.next.ListByLeague(ctx, leagueID)
		if err != nil {
			return nil, err
		}
		return append([]player.Player(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}
	return append([]player.Player(nil), items...), nil
}

func (r *PlayerRepository) ListSuspended(ctx context.Context, leagueID string) ([]player.Player, error) {
	return r.next.ListSuspended(ctx, leagueID)
}

func (r *PlayerRepository) UpdateEligibility(ctx context.Context, p player.Player) error {
	err := r.next.UpdateEligibility(ctx, p)
	r.cache.DeletePrefix(ctx, "player:")
	return err
}

func idsKey(ids []string) string {
	sorted := append([]string(nil), ids...)
	sort.Strings(sorted)
	return strings.Join(sorted, ",")
}
