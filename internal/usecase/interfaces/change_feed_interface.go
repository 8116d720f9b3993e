package interfaces

import (
	"context"

	"repairshop/internal/domain/entities"
)

// FeedEventType discriminates record-level change feed events.

type FeedEventType string

const (
	FeedEventInsert FeedEventType = "insert"
	FeedEventUpdate FeedEventType = "update"
	FeedEventDelete FeedEventType = "delete"
)

// FeedEvent is one record-level mutation broadcast to every session.
// Record is populated for inserts and updates; deletes carry only RecordID.
type FeedEvent struct {
	Type     FeedEventType
	RecordID string
	Record   entities.JobRecord
}

// FeedHandlers receives pushed events from a subscription. OnError reports a
// dropped subscription; the subscriber is expected to resubscribe (local
// editing keeps working meanwhile, cross-session consistency is paused).
type FeedHandlers struct {
	OnInsert func(entities.JobRecord)
	OnUpdate func(entities.JobRecord)
	OnDelete func(recordID string)
	OnError  func(error)
}

// IChangeFeed abstracts the push channel of record-level events. Subscribe
// returns an unsubscribe handle; subscriptions are long-lived, one per
// session, and must be torn down when the session ends.
type IChangeFeed interface {
	Subscribe(ctx context.Context, h FeedHandlers) (unsubscribe func(), err error)
}
