//go:generate go run go.uber.org/mock/mockgen -source=route.go -destination=../mocks/mock_route_repository.go -package=mocks
package repositories

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync"
	"time"

	"team-roulette/domain"
	apperrors "team-roulette/errors"

	"github.com/dgraph-io/badger/v4"
)

const routePrefix = "route:"

type IRouteRepository interface {
	SaveRoutes(routes []domain.Route) error
	GetRoute(messageID, memberID string) (domain.Route, error)
	ListRoutes() ([]domain.Route, error)
}

// RouteRepository keeps pending voice moves in BadgerDB.
// Routes only matter while people react to the published split, so every entry expires after ttl.
type RouteRepository struct {
	db  *badger.DB
	log *slog.Logger
	ttl time.Duration
}

func NewRouteRepository(db *badger.DB, log *slog.Logger, ttl time.Duration) RouteRepository {
	return RouteRepository{db: db, log: log, ttl: ttl}
}

// routeKey is formatted as "route:{message_id}:{member_id}" so all routes of a message
// share a prefix. Discord snowflakes never contain ':'.
func routeKey(messageID, memberID string) []byte {
	return []byte(fmt.Sprintf("%s%s:%s", routePrefix, messageID, memberID))
}

func parseRouteKey(key string) (messageID, memberID string, ok bool) {
	rest, found := strings.CutPrefix(key, routePrefix)
	if !found {
		return "", "", false
	}
	return strings.Cut(rest, ":")
}

// SaveRoutes writes all routes in a single transaction.
func (r RouteRepository) SaveRoutes(routes []domain.Route) error {
	return r.db.Update(func(txn *badger.Txn) error {
		for _, route := range routes {
			entry := badger.NewEntry(routeKey(route.MessageID, route.MemberID), []byte(route.ChannelID))
			if r.ttl > 0 {
				entry = entry.WithTTL(r.ttl)
			}
			if err := txn.SetEntry(entry); err != nil {
				return err
			}
		}
		r.log.Debug("Routes saved", "count", len(routes))
		return nil
	})
}

func (r RouteRepository) GetRoute(messageID, memberID string) (domain.Route, error) {
	route := domain.Route{MessageID: messageID, MemberID: memberID}
	err := r.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(routeKey(messageID, memberID))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			route.ChannelID = string(val)
			return nil
		})
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return domain.Route{}, apperrors.ErrRouteNotFound
	}
	if err != nil {
		return domain.Route{}, err
	}
	return route, nil
}

// ListRoutes scans every live route, expired entries are skipped by badger.
func (r RouteRepository) ListRoutes() ([]domain.Route, error) {
	var routes []domain.Route
	err := r.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		prefix := []byte(routePrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			item := it.Item()
			messageID, memberID, ok := parseRouteKey(string(item.Key()))
			if !ok {
				r.log.Warn("Skipping malformed route key", "key", string(item.Key()))
				continue
			}
			err := item.Value(func(val []byte) error {
				routes = append(routes, domain.Route{MessageID: messageID, MemberID: memberID, ChannelID: string(val)})
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	return routes, err
}

type memoryRoute struct {
	channelID string
	expiresAt time.Time
}

// MemoryRouteRepository is used when no database path is configured.
type MemoryRouteRepository struct {
	mu     sync.RWMutex
	routes map[string]memoryRoute
	ttl    time.Duration
	now    func() time.Time
}

func NewMemoryRouteRepository(ttl time.Duration) *MemoryRouteRepository {
	return &MemoryRouteRepository{
		routes: make(map[string]memoryRoute),
		ttl:    ttl,
		now:    time.Now,
	}
}

func (r *MemoryRouteRepository) SaveRoutes(routes []domain.Route) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	var expiresAt time.Time
	if r.ttl > 0 {
		expiresAt = r.now().Add(r.ttl)
	}
	for _, route := range routes {
		r.routes[string(routeKey(route.MessageID, route.MemberID))] = memoryRoute{channelID: route.ChannelID, expiresAt: expiresAt}
	}
	return nil
}

func (r *MemoryRouteRepository) GetRoute(messageID, memberID string) (domain.Route, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stored, ok := r.routes[string(routeKey(messageID, memberID))]
	if !ok || r.expired(stored) {
		return domain.Route{}, apperrors.ErrRouteNotFound
	}
	return domain.Route{MessageID: messageID, MemberID: memberID, ChannelID: stored.channelID}, nil
}

// ListRoutes returns live routes sorted by key.
func (r *MemoryRouteRepository) ListRoutes() ([]domain.Route, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	keys := make([]string, 0, len(r.routes))
	for key, stored := range r.routes {
		if !r.expired(stored) {
			keys = append(keys, key)
		}
	}
	slices.Sort(keys)

	routes := make([]domain.Route, 0, len(keys))
	for _, key := range keys {
		messageID, memberID, _ := parseRouteKey(key)
		routes = append(routes, domain.Route{MessageID: messageID, MemberID: memberID, ChannelID: r.routes[key].channelID})
	}
	return routes, nil
}

func (r *MemoryRouteRepository) expired(stored memoryRoute) bool {
	return !stored.expiresAt.IsZero() && !r.now().Before(stored.expiresAt)
}
