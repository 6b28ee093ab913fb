package cart

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/glutt28/ecommerce-prototype/internal/storefront/catalog"
	"github.com/glutt28/ecommerce-prototype/internal/storefront/localstore"
)

var ErrInvalidQuantity = errors.New("quantity must be positive")

const defaultSyncTimeout = 10 * time.Second

// RemoteAPI is the remote cart resource the store synchronizes with.
type RemoteAPI interface {
	CartsByUser(ctx context.Context, userID int) ([]Cart, error)
	CartByID(ctx context.Context, id int) (Cart, error)
	CreateCart(ctx context.Context, c Cart) (Cart, error)
	UpdateCart(ctx context.Context, id int, c Cart) (Cart, error)
	DeleteCart(ctx context.Context, id int) error
}

// Store is the single source of truth for the current shopping cart.
//
// Every mutation updates the in-memory state and the local durable copy
// synchronously, then dispatches a best-effort sync to the remote cart
// resource. Remote failures are logged and swallowed: from the caller's
// perspective a mutation always succeeds, and the local copy stays
// authoritative until the next explicit sync point. Conflicts between the
// local and remote copy are resolved last-write-wins, no merging.
type Store struct {
	mu     sync.Mutex
	local  *localstore.Store
	remote RemoteAPI
	userID int
	cart   Cart
	subs   []func()

	// dispatch runs remote sync work off the caller's path; wg tracks
	// the dispatched work so Wait can drain it.
	dispatch    func(func())
	wg          sync.WaitGroup
	syncTimeout time.Duration
}

// NewStore creates a cart store backed by local durable storage and the
// remote cart resource. The store starts empty; call Initialize to load
// persisted state.
func NewStore(local *localstore.Store, remote RemoteAPI) *Store {
	return &Store{
		local:       local,
		remote:      remote,
		dispatch:    func(fn func()) { go fn() },
		syncTimeout: defaultSyncTimeout,
	}
}

// Initialize loads the persisted cart from local storage. A missing or
// malformed blob yields an empty cart, never an error. When an identity
// was persisted by a previous session, the remote cart for that identity
// is fetched as well and, if present, overwrites the local copy.
func (s *Store) Initialize(ctx context.Context) {
	s.mu.Lock()

	var saved Cart
	if s.local.GetJSON(localstore.KeyCart, &saved) {
		s.cart = saved
	} else {
		s.cart = Cart{}
	}

	var userID int
	if s.local.GetJSON(localstore.KeyUserID, &userID) && userID != 0 {
		s.userID = userID
		s.refreshRemoteLocked(ctx)
	}

	s.mu.Unlock()
	s.notify()
}

// BindIdentity associates a known identity with the cart going forward
// and reloads the remote cart for it, the remote copy winning over the
// local one when both exist.
func (s *Store) BindIdentity(ctx context.Context, userID int) {
	s.mu.Lock()
	s.userID = userID
	s.cart.UserID = userID
	if userID != 0 {
		s.refreshRemoteLocked(ctx)
	}
	s.mu.Unlock()
	s.notify()
}

// refreshRemoteLocked fetches the identity's carts from the remote
// resource. The first result is the most recent cart and replaces both
// the in-memory and the local copy. When the listing is empty but a
// remote id was persisted earlier, that cart is fetched directly.
// Fetch failure is non-fatal: the loaded local state remains
// authoritative.
func (s *Store) refreshRemoteLocked(ctx context.Context) {
	carts, err := s.remote.CartsByUser(ctx, s.userID)
	if err != nil {
		log.Printf("[Cart] Failed to load remote cart for user %d: %v", s.userID, err)
		return
	}

	var remote Cart
	switch {
	case len(carts) > 0:
		remote = carts[0]
	case s.cart.RemoteID != 0:
		remote, err = s.remote.CartByID(ctx, s.cart.RemoteID)
		if err != nil {
			log.Printf("[Cart] Failed to load remote cart %d: %v", s.cart.RemoteID, err)
			return
		}
	default:
		return
	}

	s.cart = remote.clone()
	// A remote copy is not trusted to uphold the quantity floor.
	items := s.cart.Items[:0]
	for _, item := range s.cart.Items {
		if item.Quantity > 0 {
			items = append(items, item)
		}
	}
	s.cart.Items = items
	s.cart.UserID = s.userID
	s.persistLocked()
}

// AddItem adds quantity of product to the cart. Re-adding a product is
// cumulative: the quantities are summed into the existing line item
// rather than replacing it.
func (s *Store) AddItem(product catalog.Product, quantity int) error {
	if quantity < 1 {
		return ErrInvalidQuantity
	}

	s.mu.Lock()
	found := false
	for i := range s.cart.Items {
		if s.cart.Items[i].ProductID == product.ID {
			s.cart.Items[i].Quantity += quantity
			found = true
			break
		}
	}
	if !found {
		s.cart.Items = append(s.cart.Items, LineItem{
			ProductID: product.ID,
			Quantity:  quantity,
			Title:     product.Title,
			Price:     product.Price,
			Image:     product.Image,
		})
	}
	s.touchLocked()
	s.persistLocked()
	s.mu.Unlock()

	s.notify()
	s.syncRemote()
	return nil
}

// RemoveItem removes the line item for productID. Removing an absent
// product leaves the cart unchanged and is not an error.
func (s *Store) RemoveItem(productID int) {
	s.mu.Lock()
	kept := s.cart.Items[:0]
	for _, item := range s.cart.Items {
		if item.ProductID != productID {
			kept = append(kept, item)
		}
	}
	if len(kept) == len(s.cart.Items) {
		s.mu.Unlock()
		return
	}
	s.cart.Items = kept
	s.touchLocked()
	s.persistLocked()
	s.mu.Unlock()

	s.notify()
	s.syncRemote()
}

// UpdateQuantity sets the line item's quantity to an absolute value.
// A quantity of zero or below removes the line item entirely; the cart
// never holds a zero-quantity line.
func (s *Store) UpdateQuantity(productID, quantity int) {
	if quantity <= 0 {
		s.RemoveItem(productID)
		return
	}

	s.mu.Lock()
	found := false
	for i := range s.cart.Items {
		if s.cart.Items[i].ProductID == productID {
			s.cart.Items[i].Quantity = quantity
			found = true
			break
		}
	}
	if !found {
		s.mu.Unlock()
		return
	}
	s.touchLocked()
	s.persistLocked()
	s.mu.Unlock()

	s.notify()
	s.syncRemote()
}

// Clear empties the cart and removes the local durable copy. When a
// remote cart exists its deletion is requested best-effort.
func (s *Store) Clear() {
	s.mu.Lock()
	remoteID := s.cart.RemoteID
	userID := s.userID
	s.cart = Cart{UserID: userID}
	if err := s.local.Delete(localstore.KeyCart); err != nil {
		log.Printf("[Cart] Failed to remove local cart: %v", err)
	}
	s.mu.Unlock()
	s.notify()

	if userID == 0 || remoteID == 0 {
		return
	}
	s.dispatchTracked(func() {
		ctx, cancel := context.WithTimeout(context.Background(), s.syncTimeout)
		defer cancel()
		if err := s.remote.DeleteCart(ctx, remoteID); err != nil {
			log.Printf("[Cart] Failed to delete remote cart %d: %v", remoteID, err)
		}
	})
}

// Reset discards the in-memory cart, its local copy and the bound
// identity without touching the remote resource. Used when the identity
// logs out.
func (s *Store) Reset() {
	s.mu.Lock()
	s.userID = 0
	s.cart = Cart{}
	if err := s.local.Delete(localstore.KeyCart); err != nil {
		log.Printf("[Cart] Failed to remove local cart: %v", err)
	}
	s.mu.Unlock()
	s.notify()
}

// Current returns a copy of the cart state.
func (s *Store) Current() Cart {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.clone()
}

// Items returns a copy of the current line items.
func (s *Store) Items() []LineItem {
	return s.Current().Items
}

// TotalPrice returns the sum of price x quantity over all line items,
// recomputed fresh on every call.
func (s *Store) TotalPrice() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.TotalPrice()
}

// TotalItemCount returns the sum of quantities over all line items,
// recomputed fresh on every call.
func (s *Store) TotalItemCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.TotalItems()
}

// Subscribe registers fn to run after every state change, for view
// binding. Callbacks run on the mutating caller's path and must not
// mutate the store.
func (s *Store) Subscribe(fn func()) {
	s.mu.Lock()
	s.subs = append(s.subs, fn)
	s.mu.Unlock()
}

// dispatchTracked runs fn via dispatch and registers it with the wait
// group so Wait observes it.
func (s *Store) dispatchTracked(fn func()) {
	s.wg.Add(1)
	s.dispatch(func() {
		defer s.wg.Done()
		fn()
	})
}

// Wait blocks until every dispatched remote sync has finished. Callers
// with a short process lifetime use it before exiting so in-flight
// creates, updates and deletes are not abandoned; mutations themselves
// never block on it.
func (s *Store) Wait() {
	s.wg.Wait()
}

func (s *Store) notify() {
	s.mu.Lock()
	subs := make([]func(), len(s.subs))
	copy(subs, s.subs)
	s.mu.Unlock()
	for _, fn := range subs {
		fn()
	}
}

func (s *Store) touchLocked() {
	s.cart.UserID = s.userID
	s.cart.Date = time.Now().UTC()
}

func (s *Store) persistLocked() {
	if err := s.local.SetJSON(localstore.KeyCart, s.cart); err != nil {
		log.Printf("[Cart] Failed to persist cart: %v", err)
	}
}

// syncRemote dispatches a best-effort upsert of the current cart against
// the remote resource: create when no remote id is associated yet, update
// otherwise. When two syncs race, the last remote call to complete wins;
// the local copy is the visible truth either way.
func (s *Store) syncRemote() {
	s.mu.Lock()
	if s.userID == 0 {
		s.mu.Unlock()
		return
	}
	snapshot := s.cart.clone()
	remoteID := s.cart.RemoteID
	s.mu.Unlock()

	s.dispatchTracked(func() {
		ctx, cancel := context.WithTimeout(context.Background(), s.syncTimeout)
		defer cancel()

		if remoteID != 0 {
			if _, err := s.remote.UpdateCart(ctx, remoteID, snapshot); err != nil {
				log.Printf("[Cart] Failed to update remote cart %d: %v", remoteID, err)
			}
			return
		}

		created, err := s.remote.CreateCart(ctx, snapshot)
		if err != nil {
			log.Printf("[Cart] Failed to create remote cart: %v", err)
			return
		}
		if created.RemoteID == 0 {
			return
		}
		s.mu.Lock()
		if s.cart.RemoteID == 0 {
			s.cart.RemoteID = created.RemoteID
			s.persistLocked()
		}
		s.mu.Unlock()
	})
}

func (c Cart) clone() Cart {
	out := c
	if c.Items != nil {
		out.Items = make([]LineItem, len(c.Items))
		copy(out.Items, c.Items)
	}
	return out
}
