package vectordb

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/warrior-ram/demo-ai-chatbot/internal/modules/ai/domain/repository"

	mclient "github.com/milvus-io/milvus-sdk-go/v2/client"
	"github.com/milvus-io/milvus-sdk-go/v2/entity"
)

const collectionPrefix = "knowledge_base_bot_"

// CollectionName 机器人知识库集合命名：knowledge_base_bot_<id>
func CollectionName(botID int64) string {
	return fmt.Sprintf("%s%d", collectionPrefix, botID)
}

// MilvusStore 基于 Milvus 的向量存储，每个机器人一个集合
type MilvusStore struct {
	cli         mclient.Client
	vectorField string
	vectorDim   int
	metricType  entity.MetricType
	searchParam entity.SearchParam
}

func NewMilvusStore(cli mclient.Client, vectorDim int, metricType entity.MetricType) (*MilvusStore, error) {
	if cli == nil {
		return nil, errors.New("milvus client is nil")
	}
	if vectorDim <= 0 {
		return nil, fmt.Errorf("invalid vectorDim: %d", vectorDim)
	}
	if metricType == "" {
		metricType = entity.L2
	}
	sp, err := entity.NewIndexAUTOINDEXSearchParam(1)
	if err != nil {
		return nil, err
	}
	return &MilvusStore{
		cli:         cli,
		vectorField: "vector",
		vectorDim:   vectorDim,
		metricType:  metricType,
		searchParam: sp,
	}, nil
}

func (s *MilvusStore) HasCollection(ctx context.Context, botID int64) (bool, error) {
	return s.cli.HasCollection(ctx, CollectionName(botID))
}

func (s *MilvusStore) EnsureCollection(ctx context.Context, botID int64) error {
	collection := CollectionName(botID)
	has, err := s.cli.HasCollection(ctx, collection)
	if err != nil {
		return err
	}
	if has {
		return nil
	}

	schema := &entity.Schema{
		CollectionName: collection,
		Description:    fmt.Sprintf("knowledge base vectors for bot %d", botID),
		Fields: []*entity.Field{
			{
				Name:       "id",
				DataType:   entity.FieldTypeVarChar,
				PrimaryKey: true,
				TypeParams: map[string]string{"max_length": "128"},
			},
			{
				Name:       s.vectorField,
				DataType:   entity.FieldTypeFloatVector,
				TypeParams: map[string]string{entity.TypeParamDim: fmt.Sprintf("%d", s.vectorDim)},
			},
			{
				Name:     "document_id",
				DataType: entity.FieldTypeInt64,
			},
			{
				Name:       "filename",
				DataType:   entity.FieldTypeVarChar,
				TypeParams: map[string]string{"max_length": "255"},
			},
			{
				Name:     "chunk_index",
				DataType: entity.FieldTypeInt64,
			},
			{
				Name:     "chunk_count",
				DataType: entity.FieldTypeInt64,
			},
			{
				Name:       "content",
				DataType:   entity.FieldTypeVarChar,
				TypeParams: map[string]string{"max_length": "4096"},
			},
		},
	}

	if err := s.cli.CreateCollection(ctx, schema, entity.DefaultShardNumber); err != nil {
		return err
	}

	idx, err := entity.NewIndexAUTOINDEX(s.metricType)
	if err != nil {
		return err
	}
	if err := s.cli.CreateIndex(ctx, collection, s.vectorField, idx, false); err != nil {
		return err
	}

	return s.cli.LoadCollection(ctx, collection, false)
}

func (s *MilvusStore) Upsert(ctx context.Context, botID int64, items []repository.VectorUpsertItem) ([]string, error) {
	if len(items) == 0 {
		return []string{}, nil
	}
	if err := s.EnsureCollection(ctx, botID); err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(items))
	vectors := make([][]float32, 0, len(items))
	documentIDs := make([]int64, 0, len(items))
	filenames := make([]string, 0, len(items))
	chunkIndexes := make([]int64, 0, len(items))
	chunkCounts := make([]int64, 0, len(items))
	contents := make([]string, 0, len(items))

	for _, it := range items {
		if it.ID == "" {
			return nil, errors.New("upsert item missing ID")
		}
		if len(it.Vector) != s.vectorDim {
			return nil, fmt.Errorf("vector dim mismatch for id=%s, got=%d want=%d", it.ID, len(it.Vector), s.vectorDim)
		}
		ids = append(ids, it.ID)
		vectors = append(vectors, it.Vector)
		documentIDs = append(documentIDs, it.DocumentID)
		filenames = append(filenames, it.Filename)
		chunkIndexes = append(chunkIndexes, int64(it.ChunkIndex))
		chunkCounts = append(chunkCounts, int64(it.ChunkCount))
		contents = append(contents, it.Content)
	}

	_, err := s.cli.Upsert(
		ctx,
		CollectionName(botID),
		"",
		entity.NewColumnVarChar("id", ids),
		entity.NewColumnFloatVector(s.vectorField, s.vectorDim, vectors),
		entity.NewColumnInt64("document_id", documentIDs),
		entity.NewColumnVarChar("filename", filenames),
		entity.NewColumnInt64("chunk_index", chunkIndexes),
		entity.NewColumnInt64("chunk_count", chunkCounts),
		entity.NewColumnVarChar("content", contents),
	)
	if err != nil {
		return nil, err
	}
	return ids, nil
}

func (s *MilvusStore) Search(ctx context.Context, botID int64, vector []float32, topK int) ([]repository.VectorSearchHit, error) {
	if len(vector) != s.vectorDim {
		return nil, fmt.Errorf("vector dim mismatch, got=%d want=%d", len(vector), s.vectorDim)
	}
	if topK <= 0 {
		topK = 5
	}
	res, err := s.cli.Search(
		ctx,
		CollectionName(botID),
		[]string{},
		"",
		[]string{"document_id", "filename", "chunk_index", "content"},
		[]entity.Vector{entity.FloatVector(vector)},
		s.vectorField,
		s.metricType,
		topK,
		s.searchParam,
	)
	if err != nil {
		return nil, err
	}
	if len(res) == 0 {
		return []repository.VectorSearchHit{}, nil
	}
	return parseSearchResult(res[0])
}

func (s *MilvusStore) CountVectors(ctx context.Context, botID int64) (int64, error) {
	stats, err := s.cli.GetCollectionStatistics(ctx, CollectionName(botID))
	if err != nil {
		return 0, err
	}
	raw, ok := stats["row_count"]
	if !ok {
		return 0, nil
	}
	count, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, err
	}
	return count, nil
}

func parseSearchResult(sr mclient.SearchResult) ([]repository.VectorSearchHit, error) {
	if sr.Err != nil {
		return nil, sr.Err
	}
	hits := make([]repository.VectorSearchHit, 0, sr.ResultCount)

	idCol := sr.IDs
	documentIDCol := columnByName(sr.Fields, "document_id")
	filenameCol := columnByName(sr.Fields, "filename")
	chunkIndexCol := columnByName(sr.Fields, "chunk_index")
	contentCol := columnByName(sr.Fields, "content")

	for i := 0; i < sr.ResultCount; i++ {
		id, _ := idCol.GetAsString(i)
		distance := float32(0)
		if i < len(sr.Scores) {
			distance = sr.Scores[i]
		}

		h := repository.VectorSearchHit{ID: id, Distance: distance}
		if documentIDCol != nil {
			v, _ := documentIDCol.GetAsInt64(i)
			h.DocumentID = v
		}
		if filenameCol != nil {
			v, _ := filenameCol.GetAsString(i)
			h.Filename = v
		}
		if chunkIndexCol != nil {
			v, _ := chunkIndexCol.GetAsInt64(i)
			h.ChunkIndex = int(v)
		}
		if contentCol != nil {
			v, _ := contentCol.GetAsString(i)
			h.Content = v
		}
		hits = append(hits, h)
	}

	return hits, nil
}

func columnByName(cols mclient.ResultSet, name string) entity.Column {
	for _, c := range cols {
		if c != nil && c.Name() == name {
			return c
		}
	}
	return nil
}

var _ repository.VectorStore = (*MilvusStore)(nil)
