// Package memory is a process-local backend with the same semantics as the
// PostgreSQL one. Used for development and service tests.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/huddle-dev/huddle/shared/domain"
)

type workspaceRow struct {
	ws      domain.Workspace
	seq     int64
	members map[domain.UserId]memberRow
}

type memberRow struct {
	member domain.Member
	seq    int64
}

type channelRow struct {
	ch  domain.Channel
	seq int64
}

type messageRow struct {
	msg       domain.Message // Mentions, Reactions and Replies unused
	seq       int64
	reactions *reactionSet
}

// Storage guards its maps with mu. Reaction toggles hold mu for reading
// only and serialize per triple on a striped lock.
type Storage struct {
	mu  sync.RWMutex
	seq int64
	now func() time.Time

	workspaces map[domain.WorkspaceId]*workspaceRow
	channels   map[domain.ChannelId]*channelRow
	messages   map[domain.MsgId]*messageRow

	topLevel    map[domain.ChannelId][]domain.MsgId
	replies     map[domain.MsgId][]domain.MsgId
	lastCreated map[domain.ChannelId]time.Time

	stripes [stripeCount]sync.Mutex
}

func New() *Storage {
	return &Storage{
		now:         time.Now,
		workspaces:  make(map[domain.WorkspaceId]*workspaceRow),
		channels:    make(map[domain.ChannelId]*channelRow),
		messages:    make(map[domain.MsgId]*messageRow),
		topLevel:    make(map[domain.ChannelId][]domain.MsgId),
		replies:     make(map[domain.MsgId][]domain.MsgId),
		lastCreated: make(map[domain.ChannelId]time.Time),
	}
}

// WithClock replaces the time source. Tests only.
func (s *Storage) WithClock(now func() time.Time) *Storage {
	s.now = now
	return s
}

// timestamp matches the precision PostgreSQL keeps.
func (s *Storage) timestamp() time.Time {
	return s.now().UTC().Round(time.Microsecond)
}

// nextSeq must be called with mu held for writing.
func (s *Storage) nextSeq() int64 {
	s.seq++
	return s.seq
}

func newId() string {
	return uuid.NewString()
}

func (s *Storage) Ping(ctx context.Context) error {
	return ctx.Err()
}
