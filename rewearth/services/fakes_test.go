package services

import (
	"context"
	"regexp"

	"github.com/rewearth/rewearth/rewearth/database/models"
	"github.com/rewearth/rewearth/rewearth/database/repositories"
	"github.com/rewearth/rewearth/rewearth/ecodata"
)

// In-memory repository stand-ins. They mirror the storage contracts,
// including the atomic semantics of Settle, so service behavior can be
// exercised without a database.

type memUserRepo struct {
	byEmail map[string]*models.User
	nextID  int64
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{byEmail: make(map[string]*models.User)}
}

func (m *memUserRepo) Create(_ context.Context, user *models.User) error {
	email := repositories.NormalizeEmail(user.Email)
	if _, ok := m.byEmail[email]; ok {
		return models.ErrDuplicateEmail
	}
	m.nextID++
	user.ID = m.nextID
	user.Email = email
	stored := *user
	m.byEmail[email] = &stored
	return nil
}

func (m *memUserRepo) GetByEmail(_ context.Context, email string) (*models.User, error) {
	user, ok := m.byEmail[repositories.NormalizeEmail(email)]
	if !ok {
		return nil, models.ErrUserNotFound
	}
	out := *user
	return &out, nil
}

func (m *memUserRepo) AdjustCredits(_ context.Context, email string, delta int64) (*models.User, error) {
	user, ok := m.byEmail[repositories.NormalizeEmail(email)]
	if !ok {
		return nil, models.ErrUserNotFound
	}
	user.Credits += delta
	out := *user
	return &out, nil
}

type memItemRepo struct {
	byID   map[int64]*models.Item
	nextID int64
}

func newMemItemRepo() *memItemRepo {
	return &memItemRepo{byID: make(map[int64]*models.Item)}
}

func (m *memItemRepo) Create(_ context.Context, item *models.Item) error {
	m.nextID++
	item.ID = m.nextID
	item.OwnerEmail = repositories.NormalizeEmail(item.OwnerEmail)
	item.AvailableForSwap = true
	stored := *item
	m.byID[item.ID] = &stored
	return nil
}

func (m *memItemRepo) GetByID(_ context.Context, id int64) (*models.Item, error) {
	item, ok := m.byID[id]
	if !ok {
		return nil, models.ErrItemNotFound
	}
	out := *item
	return &out, nil
}

func (m *memItemRepo) GetByOwner(_ context.Context, ownerEmail string) ([]*models.Item, error) {
	email := repositories.NormalizeEmail(ownerEmail)
	var items []*models.Item
	for _, item := range m.byID {
		if item.OwnerEmail == email {
			out := *item
			items = append(items, &out)
		}
	}
	return items, nil
}

func (m *memItemRepo) GetFeed(_ context.Context, excludeEmail string) ([]*models.Item, error) {
	email := repositories.NormalizeEmail(excludeEmail)
	var items []*models.Item
	for _, item := range m.byID {
		if item.OwnerEmail != email {
			out := *item
			items = append(items, &out)
		}
	}
	return items, nil
}

func (m *memItemRepo) SetAvailability(_ context.Context, id int64, available bool) error {
	item, ok := m.byID[id]
	if !ok {
		return models.ErrItemNotFound
	}
	item.AvailableForSwap = available
	return nil
}

type memSwapRepo struct {
	byID   map[int64]*models.SwapRequest
	users  *memUserRepo
	items  *memItemRepo
	nextID int64
}

func newMemSwapRepo(users *memUserRepo, items *memItemRepo) *memSwapRepo {
	return &memSwapRepo{
		byID:  make(map[int64]*models.SwapRequest),
		users: users,
		items: items,
	}
}

func (m *memSwapRepo) Create(_ context.Context, swap *models.SwapRequest) error {
	m.nextID++
	swap.ID = m.nextID
	swap.Status = models.SwapPending
	stored := *swap
	m.byID[swap.ID] = &stored
	return nil
}

func (m *memSwapRepo) GetByID(_ context.Context, id int64) (*models.SwapRequest, error) {
	swap, ok := m.byID[id]
	if !ok {
		return nil, models.ErrSwapNotFound
	}
	out := *swap
	return &out, nil
}

func (m *memSwapRepo) GetPendingByReceiver(_ context.Context, receiverEmail string) ([]*models.SwapRequest, error) {
	email := repositories.NormalizeEmail(receiverEmail)
	var swaps []*models.SwapRequest
	for _, swap := range m.byID {
		if swap.ReceiverEmail == email && swap.Status == models.SwapPending {
			out := *swap
			swaps = append(swaps, &out)
		}
	}
	return swaps, nil
}

func (m *memSwapRepo) Reject(_ context.Context, id int64) (*models.SwapRequest, error) {
	swap, ok := m.byID[id]
	if !ok {
		return nil, models.ErrSwapNotFound
	}
	if swap.Status != models.SwapPending {
		return nil, models.ErrAlreadyResolved
	}
	swap.Status = models.SwapRejected
	out := *swap
	return &out, nil
}

// Settle re-checks every invariant before mutating anything, matching
// the all-or-nothing contract of the real transactional path.
func (m *memSwapRepo) Settle(_ context.Context, id int64) (*models.SwapRequest, error) {
	swap, ok := m.byID[id]
	if !ok {
		return nil, models.ErrSwapNotFound
	}
	if swap.Status != models.SwapPending {
		return nil, models.ErrAlreadyResolved
	}

	requester, ok := m.users.byEmail[swap.RequesterEmail]
	if !ok {
		return nil, models.ErrUserNotFound
	}
	if requester.Credits < swap.PlatformFee {
		return nil, models.ErrRequesterCantAfford
	}
	receiver, ok := m.users.byEmail[swap.ReceiverEmail]
	if !ok {
		return nil, models.ErrUserNotFound
	}
	if receiver.Credits < swap.PlatformFee {
		return nil, models.ErrReceiverCantAfford
	}

	for _, itemID := range []int64{swap.RequesterItemID, swap.ReceiverItemID} {
		item, ok := m.items.byID[itemID]
		if !ok {
			return nil, models.ErrItemNotFound
		}
		if !item.AvailableForSwap {
			return nil, models.ErrItemUnavailable
		}
	}

	requester.Credits -= swap.PlatformFee
	receiver.Credits -= swap.PlatformFee
	m.items.byID[swap.RequesterItemID].AvailableForSwap = false
	m.items.byID[swap.ReceiverItemID].AvailableForSwap = false
	swap.Status = models.SwapCompleted

	out := *swap
	return &out, nil
}

// fakeEcoSource serves a fixed dataset, matching patterns the same way
// the real store does: case-insensitive regex against ItemName.
type fakeEcoSource struct {
	records  []*ecodata.Record
	patterns []string
}

func (f *fakeEcoSource) FindByPattern(_ context.Context, pattern string) (*ecodata.Record, error) {
	f.patterns = append(f.patterns, pattern)
	re, err := regexp.Compile("(?i)" + pattern)
	if err != nil {
		return nil, err
	}
	for _, record := range f.records {
		if re.MatchString(record.ItemName) {
			out := *record
			return &out, nil
		}
	}
	return nil, ecodata.ErrNotFound
}

func (f *fakeEcoSource) ItemNames(_ context.Context) ([]string, error) {
	names := make([]string, 0, len(f.records))
	for _, r := range f.records {
		names = append(names, r.ItemName)
	}
	return names, nil
}
