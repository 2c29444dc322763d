package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/lostfound/internal/client/client"
	"github.com/dmitrijs2005/lostfound/internal/client/models"
	"github.com/dmitrijs2005/lostfound/internal/client/querycache"
	"github.com/dmitrijs2005/lostfound/internal/logging"
)

var ErrItemNotFound = errors.New("item not found")

// Actions lists what the detail view offers for one item.
type Actions struct {
	ContactURL    string
	ConfirmFound  bool
	ConfirmPickup bool
	PickupPath    string
}

// ItemService reads the shared listing through the query cache.
type ItemService interface {
	List(ctx context.Context, f models.Filter) ([]models.Item, error)
	Find(ctx context.Context, id string) (models.Item, error)
	Guards(ctx context.Context) ([]models.Satpam, error)
	Actions(ctx context.Context, it models.Item) Actions
	ListState() querycache.State
	Refresh()
}

type itemService struct {
	client   client.Client
	sessions SessionStore
	cache    *querycache.Cache
	log      logging.Logger
}

func NewItemService(c client.Client, s SessionStore, cache *querycache.Cache, log logging.Logger) ItemService {
	return &itemService{client: c, sessions: s, cache: cache, log: log}
}

func (s *itemService) all(ctx context.Context) ([]models.Item, error) {
	return querycache.Get(ctx, s.cache, querycache.KeyItemList, s.client.ListItems)
}

// List returns the items passing f, in server order.
func (s *itemService) List(ctx context.Context, f models.Filter) ([]models.Item, error) {
	items, err := s.all(ctx)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	return f.Apply(items), nil
}

// Find looks id up in the cached listing.
func (s *itemService) Find(ctx context.Context, id string) (models.Item, error) {
	items, err := s.all(ctx)
	if err != nil {
		return models.Item{}, fmt.Errorf("list items: %w", err)
	}
	for _, it := range items {
		if it.ID.String() == id {
			return it, nil
		}
	}
	return models.Item{}, fmt.Errorf("%w: %s", ErrItemNotFound, id)
}

func (s *itemService) Guards(ctx context.Context) ([]models.Satpam, error) {
	guards, err := querycache.Get(ctx, s.cache, querycache.KeyGuardList, s.client.ListGuards)
	if err != nil {
		return nil, fmt.Errorf("list guards: %w", err)
	}
	return guards, nil
}

// Actions hides the pickup confirmation when the token cannot be decoded.
func (s *itemService) Actions(ctx context.Context, it models.Item) Actions {
	isGuard := false
	if claims, err := s.sessions.Claims(ctx); err == nil {
		isGuard = claims.IsGuard()
	} else {
		s.log.Debug(ctx, "claims unavailable", "error", err)
	}

	a := Actions{
		ContactURL:    it.ContactURL(),
		ConfirmFound:  it.CanConfirmFound(),
		ConfirmPickup: it.CanConfirmPickup(isGuard),
	}
	if a.ConfirmPickup {
		a.PickupPath = PickupPath(it.ID.String())
	}
	return a
}

func (s *itemService) ListState() querycache.State {
	return s.cache.State(querycache.KeyItemList)
}

func (s *itemService) Refresh() {
	s.cache.Invalidate(querycache.KeyItemList)
}

// PickupPath is the location of the pickup confirmation view of id.
func PickupPath(id string) string {
	return "/" + id + "/confirmation"
}
