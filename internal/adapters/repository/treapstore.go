package repository

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync/atomic"

	"golang.org/x/text/cases"

	"github.com/okian/brokerscore/internal/domain/model"
	"github.com/okian/brokerscore/internal/domain/ranking"
	"github.com/okian/brokerscore/internal/domain/types"
)

// Treap-based, in-memory Store implementation.
//
// Ordering: total DESC, then id ASC. Ids follow ingestion order, so this is
// the same order a stable sort by total produces. "less" means ranks earlier,
// making in-order traversal yield the leaderboard from best to worst.

// scoreFP is a total in ranking.Key fixed point, so the store and
// ranking.Sorted agree on ties.
type scoreFP int64

func toFixedPoint(x float64) scoreFP { return scoreFP(ranking.Key(x)) }

// treap node
type node struct {
	id    int
	score scoreFP
	prio  uint64
	left  *node
	right *node
	size  int
}

func nsize(n *node) int {
	if n == nil {
		return 0
	}
	return n.size
}

func fix(n *node) {
	if n != nil {
		n.size = 1 + nsize(n.left) + nsize(n.right)
	}
}

// less returns true if (aScore, aID) should appear before (bScore, bID).
func less(aScore scoreFP, aID int, bScore scoreFP, bID int) bool {
	if aScore != bScore {
		return aScore > bScore
	}
	return aID < bID
}

func rotateRight(y *node) *node {
	x := y.left
	t2 := x.right
	x.right = y
	y.left = t2
	fix(y)
	fix(x)
	return x
}

func rotateLeft(x *node) *node {
	y := x.right
	t2 := y.left
	y.left = x
	x.right = t2
	fix(x)
	fix(y)
	return y
}

// priority derives a well-mixed heap priority from the id (splitmix64), so
// the tree shape is balanced in expectation and identical across runs.
func priority(id int) uint64 {
	z := uint64(id) + 0x9e3779b97f4a7c15
	z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
	z = (z ^ (z >> 27)) * 0x94d049bb133111eb
	return z ^ (z >> 31)
}

func insert(n *node, id int, score scoreFP) *node {
	if n == nil {
		return &node{id: id, score: score, prio: priority(id), size: 1}
	}
	if less(score, id, n.score, n.id) {
		n.left = insert(n.left, id, score)
		if n.left.prio > n.prio {
			n = rotateRight(n)
		}
	} else {
		n.right = insert(n.right, id, score)
		if n.right.prio > n.prio {
			n = rotateLeft(n)
		}
	}
	fix(n)
	return n
}

// position returns how many nodes rank strictly before (score, id).
func position(n *node, id int, score scoreFP) int {
	before := 0
	for n != nil {
		switch {
		case n.id == id && n.score == score:
			return before + nsize(n.left)
		case less(score, id, n.score, n.id):
			n = n.left
		default:
			before += nsize(n.left) + 1
			n = n.right
		}
	}
	return before
}

// collectTopN appends up to limit nodes in rank order.
func collectTopN(n *node, limit int, byID map[int]model.Evaluation, out *[]types.Entry) {
	if n == nil || len(*out) >= limit {
		return
	}
	collectTopN(n.left, limit, byID, out)
	if len(*out) < limit {
		e := byID[n.id]
		*out = append(*out, types.Entry{Rank: len(*out) + 1, ID: e.ID, Name: e.Name, TotalScore: e.TotalScore})
	}
	if len(*out) < limit {
		collectTopN(n.right, limit, byID, out)
	}
}

// Snapshot is an immutable view of one dataset.
type Snapshot struct {
	root     *node
	byID     map[int]model.Evaluation
	byName   map[string]int
	ids      []int
	topCache []types.Entry
}

// TreapStore keeps the active dataset in an atomically swapped Snapshot.
// Reads never block and always see one complete dataset.
type TreapStore struct {
	snapshot     atomic.Pointer[Snapshot]
	topCacheSize int
}

// NewTreapStore constructs an empty store.
func NewTreapStore(opts ...Option) *TreapStore {
	s := &TreapStore{
		topCacheSize: 100,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.snapshot.Store(&Snapshot{byID: map[int]model.Evaluation{}, byName: map[string]int{}})
	return s
}

// nameKey folds case and collapses whitespace. Casers are stateful, so each
// call gets its own.
func nameKey(name string) string {
	return cases.Fold().String(strings.Join(strings.Fields(name), " "))
}

// Replace implements Store.Replace in O(n log n).
func (s *TreapStore) Replace(ctx context.Context, evals []model.Evaluation) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("replace: %w", err)
	}

	snap := &Snapshot{
		byID:   make(map[int]model.Evaluation, len(evals)),
		byName: make(map[string]int, len(evals)),
		ids:    make([]int, 0, len(evals)),
	}
	for _, e := range evals {
		if _, dup := snap.byID[e.ID]; dup {
			return fmt.Errorf("%w: %d", ErrDuplicateID, e.ID)
		}
		snap.byID[e.ID] = e
		snap.ids = append(snap.ids, e.ID)
		snap.root = insert(snap.root, e.ID, toFixedPoint(e.TotalScore))
	}
	sort.Ints(snap.ids)
	for _, id := range snap.ids {
		key := nameKey(snap.byID[id].Name)
		if _, taken := snap.byName[key]; !taken {
			snap.byName[key] = id
		}
	}
	snap.topCache = make([]types.Entry, 0, min(s.topCacheSize, len(evals)))
	collectTopN(snap.root, s.topCacheSize, snap.byID, &snap.topCache)

	s.snapshot.Store(snap)
	return nil
}

// GetByID implements Store.GetByID.
func (s *TreapStore) GetByID(_ context.Context, id int) (model.Evaluation, error) {
	e, ok := s.snapshot.Load().byID[id]
	if !ok {
		return model.Evaluation{}, fmt.Errorf("%w: id %d", ErrNotFound, id)
	}
	return e, nil
}

// GetByName implements Store.GetByName.
func (s *TreapStore) GetByName(_ context.Context, name string) (model.Evaluation, error) {
	snap := s.snapshot.Load()
	id, ok := snap.byName[nameKey(name)]
	if !ok || strings.TrimSpace(name) == "" {
		return model.Evaluation{}, fmt.Errorf("%w: name %q", ErrNotFound, name)
	}
	return snap.byID[id], nil
}

// Rank implements Store.Rank in O(log n) expected time.
func (s *TreapStore) Rank(_ context.Context, id int) (types.Entry, error) {
	snap := s.snapshot.Load()
	e, ok := snap.byID[id]
	if !ok {
		return types.Entry{}, fmt.Errorf("%w: id %d", ErrNotFound, id)
	}
	return types.Entry{
		Rank:       position(snap.root, id, toFixedPoint(e.TotalScore)) + 1,
		ID:         e.ID,
		Name:       e.Name,
		TotalScore: e.TotalScore,
	}, nil
}

// TopN implements Store.TopN.
func (s *TreapStore) TopN(_ context.Context, n int) ([]types.Entry, error) {
	if n < 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidLimit, n)
	}
	snap := s.snapshot.Load()
	if n <= len(snap.topCache) || len(snap.topCache) == len(snap.ids) {
		k := min(n, len(snap.topCache))
		out := make([]types.Entry, k)
		copy(out, snap.topCache[:k])
		return out, nil
	}
	out := make([]types.Entry, 0, min(n, len(snap.ids)))
	collectTopN(snap.root, n, snap.byID, &out)
	return out, nil
}

// All implements Store.All.
func (s *TreapStore) All(_ context.Context) []model.Evaluation {
	snap := s.snapshot.Load()
	out := make([]model.Evaluation, len(snap.ids))
	for i, id := range snap.ids {
		out[i] = snap.byID[id]
	}
	return out
}

// Count implements Store.Count.
func (s *TreapStore) Count(_ context.Context) int {
	return len(s.snapshot.Load().ids)
}
