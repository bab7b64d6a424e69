package memory

import (
	"context"
	"hash/fnv"
	"sync"
	"time"

	"github.com/huddle-dev/huddle/shared/domain"
)

const stripeCount = 256

type reactionKey struct {
	user  domain.UserId
	emoji domain.Emoji
}

// reactionSet holds the present (user, emoji) pairs of one message.
type reactionSet struct {
	m sync.Map // reactionKey -> time.Time
}

func (rs *reactionSet) counts() domain.ReactionCounts {
	counts := domain.ReactionCounts{}
	rs.m.Range(func(k, _ any) bool {
		counts[k.(reactionKey).emoji]++
		return true
	})
	return counts
}

func (s *Storage) stripe(msgId domain.MsgId, userId domain.UserId, emoji domain.Emoji) *sync.Mutex {
	h := fnv.New64a()
	h.Write([]byte(msgId))
	h.Write([]byte{0})
	h.Write([]byte(userId))
	h.Write([]byte{0})
	h.Write([]byte(emoji))
	return &s.stripes[h.Sum64()%stripeCount]
}

// ToggleReaction flips the (message, user, emoji) triple. The check and the
// write happen under the triple's stripe, so racing toggles on one triple
// serialize while other triples proceed. Two triples that share a stripe
// only wait for each other's map update; each still flips its own key.
func (s *Storage) ToggleReaction(ctx context.Context, msgId domain.MsgId, userId domain.UserId, emoji domain.Emoji) (domain.ReactionAction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row, ok := s.messages[msgId]
	if !ok {
		return "", errMessageNotFound
	}

	lock := s.stripe(msgId, userId, emoji)
	lock.Lock()
	defer lock.Unlock()

	k := reactionKey{user: userId, emoji: emoji}
	if _, present := row.reactions.m.Load(k); present {
		row.reactions.m.Delete(k)
		return domain.ReactionRemoved, nil
	}
	row.reactions.m.Store(k, time.Now())
	return domain.ReactionAdded, nil
}

func (s *Storage) ReactionCounts(ctx context.Context, msgId domain.MsgId) (domain.ReactionCounts, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row, ok := s.messages[msgId]
	if !ok {
		return nil, errMessageNotFound
	}
	return row.reactions.counts(), nil
}
