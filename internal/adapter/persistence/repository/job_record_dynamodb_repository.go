package repository

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"strings"
	"time"

	"repairshop/internal/domain/entities"
	"repairshop/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const (
	defaultJobRecordsTableName = "job_records"
	defaultJobArchiveTableName = "job_records_archive"
	defaultSequencesTableName  = "sequence_numbers"
	jobRecordsLookupCodeIndex  = "lookup_code-index"
)

type jobRecordItem struct {
	ID              string `dynamodbav:"id"`
	LookupCode      string `dynamodbav:"lookup_code"`
	Sequence        string `dynamodbav:"sequence"`
	Status          string `dynamodbav:"status"`
	Stage           string `dynamodbav:"stage"`
	StageDetail     string `dynamodbav:"stage_detail,omitempty"`
	Ledger          string `dynamodbav:"ledger"`
	Attachments     string `dynamodbav:"attachments,omitempty"`
	CreatedAt       string `dynamodbav:"created_at"`
	StatusUpdatedAt string `dynamodbav:"status_updated_at"`
	UpdatedAt       string `dynamodbav:"updated_at"`
	DeletedAt       string `dynamodbav:"deleted_at,omitempty"`
}

// JobRecordDynamoRepository persists JobRecord entities in DynamoDB.
//
// Table requirements:
//   - active table: PK id (string), GSI lookup_code-index (PK: lookup_code)
//   - archive table: PK id (string)
//   - sequence table: PK sequence (string), one marker item per allocated
//     number; the conditional put on this table surfaces the allocator's
//     read-then-write race as ErrSequenceConflict instead of a silent
//     duplicate.
//
// The ledger is stored as one JSON snapshot attribute: writes always carry
// the whole ledger, which keeps the no-row-lock concurrency model honest.

type JobRecordDynamoRepository struct {
	ddb          *dynamodb.Client
	tableName    string
	archiveTable string
	seqTable     string
}

var _ interfaces.IJobRecordRepository = (*JobRecordDynamoRepository)(nil)

func NewJobRecordDynamoRepository(ddb *dynamodb.Client) *JobRecordDynamoRepository {
	return &JobRecordDynamoRepository{
		ddb:          ddb,
		tableName:    getenvDefault("JOB_RECORDS_TABLE", defaultJobRecordsTableName),
		archiveTable: getenvDefault("JOB_RECORDS_ARCHIVE_TABLE", defaultJobArchiveTableName),
		seqTable:     getenvDefault("SEQUENCE_NUMBERS_TABLE", defaultSequencesTableName),
	}
}

// Create inserts the record and claims its sequence number in one
// transaction. A concurrently claimed number cancels the transaction and
// surfaces interfaces.ErrSequenceConflict.
func (r *JobRecordDynamoRepository) Create(ctx context.Context, rec entities.JobRecord) (entities.JobRecord, error) {
	it, err := toJobRecordItem(rec)
	if err != nil {
		return entities.JobRecord{}, err
	}
	av, err := attributevalue.MarshalMap(it)
	if err != nil {
		return entities.JobRecord{}, err
	}

	_, err = r.ddb.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{
		TransactItems: []types.TransactWriteItem{
			{
				Put: &types.Put{
					TableName:           aws.String(r.tableName),
					Item:                av,
					ConditionExpression: aws.String("attribute_not_exists(#id)"),
					ExpressionAttributeNames: map[string]string{
						"#id": "id",
					},
				},
			},
			{
				Put: &types.Put{
					TableName: aws.String(r.seqTable),
					Item: map[string]types.AttributeValue{
						"sequence":  &types.AttributeValueMemberS{Value: rec.Sequence},
						"record_id": &types.AttributeValueMemberS{Value: rec.ID},
					},
					ConditionExpression: aws.String("attribute_not_exists(#seq)"),
					ExpressionAttributeNames: map[string]string{
						"#seq": "sequence",
					},
				},
			},
		},
	})
	if err != nil {
		var canceled *types.TransactionCanceledException
		if errors.As(err, &canceled) {
			for _, reason := range canceled.CancellationReasons {
				if reason.Code != nil && *reason.Code == "ConditionalCheckFailed" {
					return entities.JobRecord{}, interfaces.ErrSequenceConflict
				}
			}
		}
		return entities.JobRecord{}, err
	}
	return rec, nil
}

// GetByID checks the active table first, then the archive: records stay
// reachable (and restorable) from either location.
func (r *JobRecordDynamoRepository) GetByID(ctx context.Context, id string) (entities.JobRecord, error) {
	rec, err := r.getFromTable(ctx, r.tableName, id)
	if err != nil || rec.ID != "" {
		return rec, err
	}
	return r.getFromTable(ctx, r.archiveTable, id)
}

func (r *JobRecordDynamoRepository) getFromTable(ctx context.Context, table, id string) (entities.JobRecord, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(table),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.JobRecord{}, err
	}
	if len(out.Item) == 0 {
		return entities.JobRecord{}, nil
	}

	var it jobRecordItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.JobRecord{}, err
	}
	return fromJobRecordItem(it)
}

func (r *JobRecordDynamoRepository) GetByLookupCode(ctx context.Context, code string) (entities.JobRecord, error) {
	out, err := r.ddb.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String(jobRecordsLookupCodeIndex),
		KeyConditionExpression: aws.String("lookup_code = :code"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":code": &types.AttributeValueMemberS{Value: code},
		},
		Limit: aws.Int32(1),
	})
	if err != nil {
		return entities.JobRecord{}, err
	}
	if len(out.Items) == 0 {
		return entities.JobRecord{}, nil
	}

	var it jobRecordItem
	if err := attributevalue.UnmarshalMap(out.Items[0], &it); err != nil {
		return entities.JobRecord{}, err
	}
	return fromJobRecordItem(it)
}

// Persist applies a partial update to an active record. Each named field
// group maps to its own SET clause; the ledger clause always carries the
// full snapshot. A missing record returns the zero value rather than an
// error; callers map that to not-found.
func (r *JobRecordDynamoRepository) Persist(ctx context.Context, id string, upd interfaces.PartialUpdate) (entities.JobRecord, error) {
	now := time.Now().UTC().Format(time.RFC3339Nano)

	sets := []string{"#updated_at = :updated_at"}
	removes := []string{}
	vals := map[string]types.AttributeValue{
		":updated_at": &types.AttributeValueMemberS{Value: now},
	}
	names := map[string]string{
		"#id":         "id",
		"#updated_at": "updated_at",
	}

	if upd.Ledger != nil {
		blob, err := json.Marshal(upd.Ledger)
		if err != nil {
			return entities.JobRecord{}, err
		}
		sets = append(sets, "#ledger = :ledger")
		vals[":ledger"] = &types.AttributeValueMemberS{Value: string(blob)}
		names["#ledger"] = "ledger"
	}

	if upd.Status != nil {
		sets = append(sets, "#status = :status", "#status_updated_at = :status_updated_at")
		vals[":status"] = &types.AttributeValueMemberS{Value: string(*upd.Status)}
		vals[":status_updated_at"] = &types.AttributeValueMemberS{Value: now}
		names["#status"] = "status"
		names["#status_updated_at"] = "status_updated_at"
	}

	if upd.Stage != nil {
		sets = append(sets, "#stage = :stage")
		vals[":stage"] = &types.AttributeValueMemberS{Value: string(*upd.Stage)}
		names["#stage"] = "stage"

		detail, err := entities.EncodeStageDetail(upd.StageDetail)
		if err != nil {
			return entities.JobRecord{}, err
		}
		names["#stage_detail"] = "stage_detail"
		if detail == nil {
			removes = append(removes, "#stage_detail")
		} else {
			sets = append(sets, "#stage_detail = :stage_detail")
			vals[":stage_detail"] = &types.AttributeValueMemberS{Value: string(detail)}
		}
	}

	expr := "SET " + strings.Join(sets, ", ")
	if len(removes) > 0 {
		expr += " REMOVE " + strings.Join(removes, ", ")
	}

	out, err := r.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConditionExpression:       aws.String("attribute_exists(#id)"),
		UpdateExpression:          aws.String(expr),
		ExpressionAttributeValues: vals,
		ExpressionAttributeNames:  names,
		ReturnValues:              types.ReturnValueAllNew,
	})
	if err != nil {
		var cfe *types.ConditionalCheckFailedException
		if errors.As(err, &cfe) {
			return entities.JobRecord{}, nil
		}
		return entities.JobRecord{}, err
	}
	if len(out.Attributes) == 0 {
		return entities.JobRecord{}, nil
	}
	var it jobRecordItem
	if err := attributevalue.UnmarshalMap(out.Attributes, &it); err != nil {
		return entities.JobRecord{}, err
	}
	return fromJobRecordItem(it)
}

// Query scans the active table (and the archive when asked) applying the
// filter server-side. Scans paginate until exhaustion; list views are small
// enough here that no cursor surfaces in the interface.
func (r *JobRecordDynamoRepository) Query(ctx context.Context, f interfaces.RecordFilter) ([]entities.JobRecord, error) {
	recs, err := r.scanTable(ctx, r.tableName, f)
	if err != nil {
		return nil, err
	}
	if f.IncludeArchive {
		archived, err := r.scanTable(ctx, r.archiveTable, f)
		if err != nil {
			return nil, err
		}
		recs = append(recs, archived...)
	}
	return recs, nil
}

func (r *JobRecordDynamoRepository) scanTable(ctx context.Context, table string, f interfaces.RecordFilter) ([]entities.JobRecord, error) {
	conds := []string{}
	vals := map[string]types.AttributeValue{}
	names := map[string]string{}

	if !f.IncludeDeleted {
		conds = append(conds, "attribute_not_exists(#deleted_at)")
		names["#deleted_at"] = "deleted_at"
	}
	if f.Status != "" {
		conds = append(conds, "#status = :status")
		vals[":status"] = &types.AttributeValueMemberS{Value: string(f.Status)}
		names["#status"] = "status"
	}
	if f.SequencePrefix != "" {
		conds = append(conds, "begins_with(#sequence, :seq_prefix)")
		vals[":seq_prefix"] = &types.AttributeValueMemberS{Value: f.SequencePrefix}
		names["#sequence"] = "sequence"
	}

	in := &dynamodb.ScanInput{TableName: aws.String(table)}
	if len(conds) > 0 {
		in.FilterExpression = aws.String(strings.Join(conds, " AND "))
		in.ExpressionAttributeNames = names
	}
	if len(vals) > 0 {
		in.ExpressionAttributeValues = vals
	}

	var recs []entities.JobRecord
	for {
		out, err := r.ddb.Scan(ctx, in)
		if err != nil {
			return nil, err
		}
		for _, raw := range out.Items {
			var it jobRecordItem
			if err := attributevalue.UnmarshalMap(raw, &it); err != nil {
				return nil, err
			}
			rec, err := fromJobRecordItem(it)
			if err != nil {
				return nil, err
			}
			recs = append(recs, rec)
		}
		if len(out.LastEvaluatedKey) == 0 {
			return recs, nil
		}
		in.ExclusiveStartKey = out.LastEvaluatedKey
	}
}

// MaxSequence returns the highest numeric suffix among sequence numbers with
// the given month prefix, across active and archived storage (soft-deleted
// rows included: their numbers stay burned). Zero means an empty month.
func (r *JobRecordDynamoRepository) MaxSequence(ctx context.Context, prefix string) (int, error) {
	max := 0
	for _, table := range []string{r.tableName, r.archiveTable} {
		in := &dynamodb.ScanInput{
			TableName:            aws.String(table),
			FilterExpression:     aws.String("begins_with(#sequence, :prefix)"),
			ProjectionExpression: aws.String("#sequence"),
			ExpressionAttributeNames: map[string]string{
				"#sequence": "sequence",
			},
			ExpressionAttributeValues: map[string]types.AttributeValue{
				":prefix": &types.AttributeValueMemberS{Value: prefix + "-"},
			},
		}
		for {
			out, err := r.ddb.Scan(ctx, in)
			if err != nil {
				return 0, err
			}
			for _, raw := range out.Items {
				var it struct {
					Sequence string `dynamodbav:"sequence"`
				}
				if err := attributevalue.UnmarshalMap(raw, &it); err != nil {
					return 0, err
				}
				if n, ok := sequenceSuffix(it.Sequence, prefix); ok && n > max {
					max = n
				}
			}
			if len(out.LastEvaluatedKey) == 0 {
				break
			}
			in.ExclusiveStartKey = out.LastEvaluatedKey
		}
	}
	return max, nil
}

func (r *JobRecordDynamoRepository) SoftDelete(ctx context.Context, id string) error {
	now := time.Now().UTC().Format(time.RFC3339Nano)
	return r.markDeleted(ctx, id, &now)
}

func (r *JobRecordDynamoRepository) Restore(ctx context.Context, id string) error {
	return r.markDeleted(ctx, id, nil)
}

// markDeleted sets or clears deleted_at, trying the active table first and
// falling back to the archive (records are deletable/restorable from either
// location).
func (r *JobRecordDynamoRepository) markDeleted(ctx context.Context, id string, deletedAt *string) error {
	for _, table := range []string{r.tableName, r.archiveTable} {
		in := &dynamodb.UpdateItemInput{
			TableName: aws.String(table),
			Key: map[string]types.AttributeValue{
				"id": &types.AttributeValueMemberS{Value: id},
			},
			ConditionExpression: aws.String("attribute_exists(#id)"),
			ExpressionAttributeNames: map[string]string{
				"#id":         "id",
				"#deleted_at": "deleted_at",
			},
		}
		if deletedAt != nil {
			in.UpdateExpression = aws.String("SET #deleted_at = :deleted_at")
			in.ExpressionAttributeValues = map[string]types.AttributeValue{
				":deleted_at": &types.AttributeValueMemberS{Value: *deletedAt},
			}
		} else {
			in.UpdateExpression = aws.String("REMOVE #deleted_at")
		}

		_, err := r.ddb.UpdateItem(ctx, in)
		if err == nil {
			return nil
		}
		var cfe *types.ConditionalCheckFailedException
		if !errors.As(err, &cfe) {
			return err
		}
	}
	return nil
}

// Archive moves a record to the archive table, discarding attachment refs
// in the move, and removes it from the active table.
func (r *JobRecordDynamoRepository) Archive(ctx context.Context, id string) error {
	rec, err := r.getFromTable(ctx, r.tableName, id)
	if err != nil {
		return err
	}
	if rec.ID == "" {
		return nil
	}

	rec.Attachments = nil
	it, err := toJobRecordItem(rec)
	if err != nil {
		return err
	}
	av, err := attributevalue.MarshalMap(it)
	if err != nil {
		return err
	}

	_, err = r.ddb.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{
		TransactItems: []types.TransactWriteItem{
			{
				Put: &types.Put{
					TableName: aws.String(r.archiveTable),
					Item:      av,
				},
			},
			{
				Delete: &types.Delete{
					TableName: aws.String(r.tableName),
					Key: map[string]types.AttributeValue{
						"id": &types.AttributeValueMemberS{Value: id},
					},
				},
			},
		},
	})
	return err
}

// DecodeJobRecordAttrs converts a raw DynamoDB attribute map (a stored item
// or a stream image) into a JobRecord. Shared with the change-feed adapter
// so both sides read the exact same item shape.
func DecodeJobRecordAttrs(item map[string]types.AttributeValue) (entities.JobRecord, error) {
	var it jobRecordItem
	if err := attributevalue.UnmarshalMap(item, &it); err != nil {
		return entities.JobRecord{}, err
	}
	return fromJobRecordItem(it)
}

func toJobRecordItem(rec entities.JobRecord) (jobRecordItem, error) {
	ledger, err := json.Marshal(rec.Ledger)
	if err != nil {
		return jobRecordItem{}, err
	}
	detail, err := entities.EncodeStageDetail(rec.StageDetail)
	if err != nil {
		return jobRecordItem{}, err
	}

	attachments := ""
	if len(rec.Attachments) > 0 {
		b, err := json.Marshal(rec.Attachments)
		if err != nil {
			return jobRecordItem{}, err
		}
		attachments = string(b)
	}

	it := jobRecordItem{
		ID:              rec.ID,
		LookupCode:      rec.LookupCode,
		Sequence:        rec.Sequence,
		Status:          string(rec.Status),
		Stage:           string(rec.Stage),
		StageDetail:     string(detail),
		Ledger:          string(ledger),
		Attachments:     attachments,
		CreatedAt:       rec.CreatedAt.UTC().Format(time.RFC3339Nano),
		StatusUpdatedAt: rec.StatusUpdatedAt.UTC().Format(time.RFC3339Nano),
		UpdatedAt:       rec.UpdatedAt.UTC().Format(time.RFC3339Nano),
	}
	if rec.DeletedAt != nil {
		it.DeletedAt = rec.DeletedAt.UTC().Format(time.RFC3339Nano)
	}
	return it, nil
}

func fromJobRecordItem(it jobRecordItem) (entities.JobRecord, error) {
	var ledger entities.CostLedger
	if it.Ledger != "" {
		if err := json.Unmarshal([]byte(it.Ledger), &ledger); err != nil {
			return entities.JobRecord{}, err
		}
	}

	stage := entities.RepairStage(it.Stage)
	detail, err := entities.DecodeStageDetail(stage, []byte(it.StageDetail))
	if err != nil {
		return entities.JobRecord{}, err
	}

	var attachments []entities.AttachmentRef
	if it.Attachments != "" {
		if err := json.Unmarshal([]byte(it.Attachments), &attachments); err != nil {
			return entities.JobRecord{}, err
		}
	}

	createdAt, _ := time.Parse(time.RFC3339Nano, it.CreatedAt)
	statusUpdatedAt, _ := time.Parse(time.RFC3339Nano, it.StatusUpdatedAt)
	updatedAt, _ := time.Parse(time.RFC3339Nano, it.UpdatedAt)

	rec := entities.JobRecord{
		ID:              it.ID,
		LookupCode:      it.LookupCode,
		Sequence:        it.Sequence,
		Status:          entities.JobStatus(it.Status),
		Stage:           stage,
		StageDetail:     detail,
		Ledger:          ledger,
		Attachments:     attachments,
		CreatedAt:       createdAt,
		StatusUpdatedAt: statusUpdatedAt,
		UpdatedAt:       updatedAt,
	}
	if it.DeletedAt != "" {
		if dt, err := time.Parse(time.RFC3339Nano, it.DeletedAt); err == nil {
			rec.DeletedAt = &dt
		}
	}
	return rec, nil
}

func sequenceSuffix(sequence, prefix string) (int, bool) {
	rest, ok := strings.CutPrefix(sequence, prefix+"-")
	if !ok || rest == "" {
		return 0, false
	}
	n, err := strconv.Atoi(rest)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}
