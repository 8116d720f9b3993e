package feed

import (
	"context"
	"errors"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	ddbtypes "github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/aws/aws-sdk-go-v2/service/dynamodbstreams"
	streamtypes "github.com/aws/aws-sdk-go-v2/service/dynamodbstreams/types"
	"go.uber.org/zap"

	"repairshop/internal/adapter/persistence/repository"
	"repairshop/internal/usecase/interfaces"
)

const defaultPollInterval = time.Second

// StreamsAPI is the slice of the DynamoDB Streams client the feed uses.
// Taking the interface keeps the polling loop testable without AWS.
type StreamsAPI interface {
	DescribeStream(ctx context.Context, params *dynamodbstreams.DescribeStreamInput, optFns ...func(*dynamodbstreams.Options)) (*dynamodbstreams.DescribeStreamOutput, error)
	GetShardIterator(ctx context.Context, params *dynamodbstreams.GetShardIteratorInput, optFns ...func(*dynamodbstreams.Options)) (*dynamodbstreams.GetShardIteratorOutput, error)
	GetRecords(ctx context.Context, params *dynamodbstreams.GetRecordsInput, optFns ...func(*dynamodbstreams.Options)) (*dynamodbstreams.GetRecordsOutput, error)
}

// DynamoStreamFeed implements the change feed over the job-record table's
// DynamoDB Stream. Every session holds one long-lived subscription; the
// stream delivers insert/update/delete events uniformly to all of them.
//
// Subscriptions start at LATEST: a session sees changes from the moment it
// subscribes, the initial state comes from its own load query.
type DynamoStreamFeed struct {
	client       StreamsAPI
	streamArn    string
	pollInterval time.Duration
	log          *zap.Logger
}

var _ interfaces.IChangeFeed = (*DynamoStreamFeed)(nil)

func NewDynamoStreamFeed(client StreamsAPI, streamArn string, log *zap.Logger) (*DynamoStreamFeed, error) {
	if client == nil {
		return nil, errors.New("feed: streams client is required")
	}
	if streamArn == "" {
		return nil, errors.New("feed: stream arn is required")
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &DynamoStreamFeed{
		client:       client,
		streamArn:    streamArn,
		pollInterval: defaultPollInterval,
		log:          log.Named("feed"),
	}, nil
}

// Subscribe opens the polling loop and returns its cancel handle. A stream
// read error is forwarded to h.OnError and ends this subscription; the
// subscriber resubscribes on its own schedule.
func (f *DynamoStreamFeed) Subscribe(ctx context.Context, h interfaces.FeedHandlers) (func(), error) {
	iterators, err := f.shardIterators(ctx)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithCancel(ctx)
	go f.poll(ctx, iterators, h)
	return cancel, nil
}

func (f *DynamoStreamFeed) shardIterators(ctx context.Context) ([]string, error) {
	desc, err := f.client.DescribeStream(ctx, &dynamodbstreams.DescribeStreamInput{
		StreamArn: aws.String(f.streamArn),
	})
	if err != nil {
		return nil, err
	}

	var iterators []string
	for _, shard := range desc.StreamDescription.Shards {
		out, err := f.client.GetShardIterator(ctx, &dynamodbstreams.GetShardIteratorInput{
			StreamArn:         aws.String(f.streamArn),
			ShardId:           shard.ShardId,
			ShardIteratorType: streamtypes.ShardIteratorTypeLatest,
		})
		if err != nil {
			return nil, err
		}
		if out.ShardIterator != nil {
			iterators = append(iterators, *out.ShardIterator)
		}
	}
	return iterators, nil
}

func (f *DynamoStreamFeed) poll(ctx context.Context, iterators []string, h interfaces.FeedHandlers) {
	ticker := time.NewTicker(f.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		next := iterators[:0]
		for _, it := range iterators {
			out, err := f.client.GetRecords(ctx, &dynamodbstreams.GetRecordsInput{
				ShardIterator: aws.String(it),
			})
			if err != nil {
				if ctx.Err() != nil {
					return
				}
				f.log.Warn("stream read failed", zap.Error(err))
				if h.OnError != nil {
					h.OnError(err)
				}
				return
			}
			for _, rec := range out.Records {
				f.dispatch(rec, h)
			}
			if out.NextShardIterator != nil {
				next = append(next, *out.NextShardIterator)
			}
		}
		iterators = next

		// All shards closed: pick up the successors.
		if len(iterators) == 0 {
			refreshed, err := f.shardIterators(ctx)
			if err != nil {
				if ctx.Err() != nil {
					return
				}
				if h.OnError != nil {
					h.OnError(err)
				}
				return
			}
			iterators = refreshed
		}
	}
}

func (f *DynamoStreamFeed) dispatch(rec streamtypes.Record, h interfaces.FeedHandlers) {
	if rec.Dynamodb == nil {
		return
	}

	switch rec.EventName {
	case streamtypes.OperationTypeInsert, streamtypes.OperationTypeModify:
		record, err := repository.DecodeJobRecordAttrs(convertAttrMap(rec.Dynamodb.NewImage))
		if err != nil {
			f.log.Warn("undecodable stream image", zap.Error(err))
			return
		}
		if rec.EventName == streamtypes.OperationTypeInsert {
			if h.OnInsert != nil {
				h.OnInsert(record)
			}
		} else if h.OnUpdate != nil {
			h.OnUpdate(record)
		}

	case streamtypes.OperationTypeRemove:
		if h.OnDelete == nil {
			return
		}
		if id, ok := rec.Dynamodb.Keys["id"].(*streamtypes.AttributeValueMemberS); ok {
			h.OnDelete(id.Value)
		}
	}
}

// convertAttrMap bridges the streams attribute types to the dynamodb ones so
// the repository's unmarshalling can be reused verbatim.
func convertAttrMap(in map[string]streamtypes.AttributeValue) map[string]ddbtypes.AttributeValue {
	if in == nil {
		return nil
	}
	out := make(map[string]ddbtypes.AttributeValue, len(in))
	for k, v := range in {
		out[k] = convertAttr(v)
	}
	return out
}

func convertAttr(v streamtypes.AttributeValue) ddbtypes.AttributeValue {
	switch av := v.(type) {
	case *streamtypes.AttributeValueMemberS:
		return &ddbtypes.AttributeValueMemberS{Value: av.Value}
	case *streamtypes.AttributeValueMemberN:
		return &ddbtypes.AttributeValueMemberN{Value: av.Value}
	case *streamtypes.AttributeValueMemberB:
		return &ddbtypes.AttributeValueMemberB{Value: av.Value}
	case *streamtypes.AttributeValueMemberBOOL:
		return &ddbtypes.AttributeValueMemberBOOL{Value: av.Value}
	case *streamtypes.AttributeValueMemberNULL:
		return &ddbtypes.AttributeValueMemberNULL{Value: av.Value}
	case *streamtypes.AttributeValueMemberSS:
		return &ddbtypes.AttributeValueMemberSS{Value: av.Value}
	case *streamtypes.AttributeValueMemberNS:
		return &ddbtypes.AttributeValueMemberNS{Value: av.Value}
	case *streamtypes.AttributeValueMemberBS:
		return &ddbtypes.AttributeValueMemberBS{Value: av.Value}
	case *streamtypes.AttributeValueMemberL:
		items := make([]ddbtypes.AttributeValue, len(av.Value))
		for i, item := range av.Value {
			items[i] = convertAttr(item)
		}
		return &ddbtypes.AttributeValueMemberL{Value: items}
	case *streamtypes.AttributeValueMemberM:
		return &ddbtypes.AttributeValueMemberM{Value: convertAttrMap(av.Value)}
	default:
		return &ddbtypes.AttributeValueMemberNULL{Value: true}
	}
}
