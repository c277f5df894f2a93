package ws

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/okezie/marketlive-backend/internal/model"
	"gorm.io/gorm"

	"github.com/gorilla/websocket"
)

// newTestPair dials a throwaway upgrade server and returns the server side
// wrapped as a Session plus the raw client side for asserting on delivered
// frames.
func newTestPair(t *testing.T) (*Session, *websocket.Conn) {
	t.Helper()
	up := websocket.Upgrader{CheckOrigin: func(*http.Request) bool { return true }}
	connCh := make(chan *websocket.Conn, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := up.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		connCh <- conn
	}))
	t.Cleanup(srv.Close)

	client, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http"), nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { _ = client.Close() })

	select {
	case conn := <-connCh:
		sess := NewSession(conn)
		t.Cleanup(sess.Close)
		return sess, client
	case <-time.After(2 * time.Second):
		t.Fatal("no server connection")
		return nil, nil
	}
}

type frame struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

func readFrame(t *testing.T, conn *websocket.Conn) frame {
	t.Helper()
	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, data, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read frame: %v", err)
	}
	var f frame
	if err := json.Unmarshal(data, &f); err != nil {
		t.Fatalf("decode frame: %v", err)
	}
	return f
}

// expectNoFrame asserts nothing arrives within a short window. The read
// deadline poisons the connection, so call this only as the last read on it.
func expectNoFrame(t *testing.T, conn *websocket.Conn) {
	t.Helper()
	_ = conn.SetReadDeadline(time.Now().Add(150 * time.Millisecond))
	if _, data, err := conn.ReadMessage(); err == nil {
		t.Fatalf("unexpected frame: %s", data)
	}
}

func decodePayload(t *testing.T, f frame, v any) {
	t.Helper()
	if err := json.Unmarshal(f.Payload, v); err != nil {
		t.Fatalf("decode %s payload: %v", f.Type, err)
	}
}

// fakeRepo is an in-memory ListingRepository with keyed-update semantics
// matching the real store: Update affects zero rows for an absent id and
// never inserts. Setting failWith makes every operation fail, for
// persistence-failure paths; afterFind runs once FindByID returns, to wedge
// a concurrent write into the read-then-update window.
type fakeRepo struct {
	mu        sync.Mutex
	listings  map[string]model.Listing
	failWith  error
	afterFind func()
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{listings: make(map[string]model.Listing)}
}

func (r *fakeRepo) Create(_ context.Context, listing *model.Listing) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failWith != nil {
		return r.failWith
	}
	if _, ok := r.listings[listing.ID]; ok {
		return gorm.ErrDuplicatedKey
	}
	r.listings[listing.ID] = *listing
	return nil
}

func (r *fakeRepo) Update(_ context.Context, listing *model.Listing) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failWith != nil {
		return 0, r.failWith
	}
	if _, ok := r.listings[listing.ID]; !ok {
		return 0, nil
	}
	r.listings[listing.ID] = *listing
	return 1, nil
}

func (r *fakeRepo) Delete(_ context.Context, id string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failWith != nil {
		return 0, r.failWith
	}
	if _, ok := r.listings[id]; !ok {
		return 0, nil
	}
	delete(r.listings, id)
	return 1, nil
}

func (r *fakeRepo) FindByID(_ context.Context, id string) (*model.Listing, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failWith != nil {
		return nil, r.failWith
	}
	listing, ok := r.listings[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	if r.afterFind != nil {
		hook := r.afterFind
		r.afterFind = nil
		r.mu.Unlock()
		hook()
		r.mu.Lock()
	}
	return &listing, nil
}

func (r *fakeRepo) ListAll(_ context.Context) ([]model.Listing, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failWith != nil {
		return nil, r.failWith
	}
	out := make([]model.Listing, 0, len(r.listings))
	for _, l := range r.listings {
		out = append(out, l)
	}
	sortByRecency(out)
	return out, nil
}

func (r *fakeRepo) ListBySeller(_ context.Context, sellerID string) ([]model.Listing, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failWith != nil {
		return nil, r.failWith
	}
	out := make([]model.Listing, 0)
	for _, l := range r.listings {
		if l.SellerID == sellerID {
			out = append(out, l)
		}
	}
	sortByRecency(out)
	return out, nil
}

func sortByRecency(listings []model.Listing) {
	sort.Slice(listings, func(i, j int) bool {
		if listings[i].UpdatedAtMS != listings[j].UpdatedAtMS {
			return listings[i].UpdatedAtMS > listings[j].UpdatedAtMS
		}
		return listings[i].ID < listings[j].ID
	})
}

func (r *fakeRepo) get(id string) (model.Listing, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	l, ok := r.listings[id]
	return l, ok
}

func (r *fakeRepo) put(l model.Listing) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.listings[l.ID] = l
}

func (r *fakeRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.listings)
}
