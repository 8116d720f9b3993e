package feed

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodbstreams"
	streamtypes "github.com/aws/aws-sdk-go-v2/service/dynamodbstreams/types"

	"repairshop/internal/domain/entities"
	"repairshop/internal/usecase/interfaces"
)

// fakeStreams scripts the three stream calls the feed makes.
type fakeStreams struct {
	mu      sync.Mutex
	batches [][]streamtypes.Record
	err     error
}

func (f *fakeStreams) DescribeStream(ctx context.Context, params *dynamodbstreams.DescribeStreamInput, optFns ...func(*dynamodbstreams.Options)) (*dynamodbstreams.DescribeStreamOutput, error) {
	return &dynamodbstreams.DescribeStreamOutput{
		StreamDescription: &streamtypes.StreamDescription{
			Shards: []streamtypes.Shard{{ShardId: aws.String("shard-1")}},
		},
	}, nil
}

func (f *fakeStreams) GetShardIterator(ctx context.Context, params *dynamodbstreams.GetShardIteratorInput, optFns ...func(*dynamodbstreams.Options)) (*dynamodbstreams.GetShardIteratorOutput, error) {
	return &dynamodbstreams.GetShardIteratorOutput{ShardIterator: aws.String("iter-1")}, nil
}

func (f *fakeStreams) GetRecords(ctx context.Context, params *dynamodbstreams.GetRecordsInput, optFns ...func(*dynamodbstreams.Options)) (*dynamodbstreams.GetRecordsOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	var batch []streamtypes.Record
	if len(f.batches) > 0 {
		batch = f.batches[0]
		f.batches = f.batches[1:]
	}
	return &dynamodbstreams.GetRecordsOutput{
		Records:           batch,
		NextShardIterator: aws.String("iter-next"),
	}, nil
}

func jobImage(id, sequence string) map[string]streamtypes.AttributeValue {
	return map[string]streamtypes.AttributeValue{
		"id":          &streamtypes.AttributeValueMemberS{Value: id},
		"lookup_code": &streamtypes.AttributeValueMemberS{Value: "AB12CD34"},
		"sequence":    &streamtypes.AttributeValueMemberS{Value: sequence},
		"status":      &streamtypes.AttributeValueMemberS{Value: "pending"},
		"stage":       &streamtypes.AttributeValueMemberS{Value: "repairInProgress"},
		"ledger":      &streamtypes.AttributeValueMemberS{Value: `{"items":[],"discount":{"kind":"fixed","value":0},"tax_enabled":false,"subtotal":0,"discount_amount":0,"tax_amount":0,"total":42}`},
		"created_at":  &streamtypes.AttributeValueMemberS{Value: "2025-03-10T12:00:00Z"},
		"updated_at":  &streamtypes.AttributeValueMemberS{Value: "2025-03-10T12:00:00Z"},
	}
}

func TestDynamoStreamFeed_Subscribe(t *testing.T) {
	t.Run("delivers insert, update and delete events", func(t *testing.T) {
		client := &fakeStreams{
			batches: [][]streamtypes.Record{
				{
					{
						EventName: streamtypes.OperationTypeInsert,
						Dynamodb:  &streamtypes.StreamRecord{NewImage: jobImage("job-1", "202503-0001")},
					},
					{
						EventName: streamtypes.OperationTypeModify,
						Dynamodb:  &streamtypes.StreamRecord{NewImage: jobImage("job-1", "202503-0001")},
					},
					{
						EventName: streamtypes.OperationTypeRemove,
						Dynamodb: &streamtypes.StreamRecord{
							Keys: map[string]streamtypes.AttributeValue{
								"id": &streamtypes.AttributeValueMemberS{Value: "job-1"},
							},
						},
					},
				},
			},
		}

		f, err := NewDynamoStreamFeed(client, "arn:aws:dynamodb:local:000000000000:table/job_records/stream/1", nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		f.pollInterval = 10 * time.Millisecond

		inserts := make(chan entities.JobRecord, 1)
		updates := make(chan entities.JobRecord, 1)
		deletes := make(chan string, 1)

		unsubscribe, err := f.Subscribe(context.Background(), interfaces.FeedHandlers{
			OnInsert: func(r entities.JobRecord) { inserts <- r },
			OnUpdate: func(r entities.JobRecord) { updates <- r },
			OnDelete: func(id string) { deletes <- id },
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		defer unsubscribe()

		select {
		case r := <-inserts:
			if r.ID != "job-1" || r.Ledger.Total != 42 {
				t.Fatalf("unexpected insert record: %+v", r)
			}
			if r.Stage != entities.StageRepairInProgress {
				t.Fatalf("expected decoded stage, got %s", r.Stage)
			}
		case <-time.After(2 * time.Second):
			t.Fatalf("timed out waiting for the insert event")
		}

		select {
		case r := <-updates:
			if r.ID != "job-1" {
				t.Fatalf("unexpected update record: %+v", r)
			}
		case <-time.After(2 * time.Second):
			t.Fatalf("timed out waiting for the update event")
		}

		select {
		case id := <-deletes:
			if id != "job-1" {
				t.Fatalf("expected delete for job-1, got %s", id)
			}
		case <-time.After(2 * time.Second):
			t.Fatalf("timed out waiting for the delete event")
		}
	})

	t.Run("read failure surfaces through OnError and ends the subscription", func(t *testing.T) {
		client := &fakeStreams{err: errors.New("stream unavailable")}

		f, err := NewDynamoStreamFeed(client, "arn:aws:dynamodb:local:000000000000:table/job_records/stream/1", nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		f.pollInterval = 10 * time.Millisecond

		feedErrs := make(chan error, 1)
		unsubscribe, err := f.Subscribe(context.Background(), interfaces.FeedHandlers{
			OnError: func(err error) { feedErrs <- err },
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		defer unsubscribe()

		select {
		case err := <-feedErrs:
			if err == nil {
				t.Fatalf("expected the stream error")
			}
		case <-time.After(2 * time.Second):
			t.Fatalf("timed out waiting for the feed error")
		}
	})

	t.Run("unsubscribe stops the polling loop", func(t *testing.T) {
		client := &fakeStreams{}
		f, err := NewDynamoStreamFeed(client, "arn:aws:dynamodb:local:000000000000:table/job_records/stream/1", nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		f.pollInterval = 10 * time.Millisecond

		unsubscribe, err := f.Subscribe(context.Background(), interfaces.FeedHandlers{})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		unsubscribe()
		// The canceled context must not reach OnError; give the loop a tick
		// to notice.
		time.Sleep(50 * time.Millisecond)
	})

	t.Run("constructor validation", func(t *testing.T) {
		if _, err := NewDynamoStreamFeed(nil, "arn", nil); err == nil {
			t.Fatalf("expected an error without a client")
		}
		if _, err := NewDynamoStreamFeed(&fakeStreams{}, "", nil); err == nil {
			t.Fatalf("expected an error without a stream arn")
		}
	})
}
