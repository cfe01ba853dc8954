package repo

import (
	"errors"
	"testing"
	"time"

	"github.com/rogerio-castellano/catalog-api/internal/models"
	"github.com/rogerio-castellano/catalog-api/internal/query"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestFilterDocument(t *testing.T) {
	oid := primitive.NewObjectID()
	filter := filterDocument([]query.Condition{
		{Field: "category", Op: query.OpEq, Value: oid.Hex()},
		{Field: "price", Op: query.OpGte, Value: 50.0},
		{Field: "price", Op: query.OpLt, Value: 100.0},
	})

	price, ok := filter["price"].(bson.M)
	if !ok {
		t.Fatalf("expected operator map for price, got %T", filter["price"])
	}
	if price["$gte"] != 50.0 || price["$lt"] != 100.0 {
		t.Errorf("unexpected price operators %v", price)
	}

	category := filter["category"].(bson.M)
	if category["$eq"] != oid {
		t.Errorf("expected category to be converted to ObjectID, got %v", category["$eq"])
	}
}

func TestFilterDocumentKeepsMalformedCategory(t *testing.T) {
	filter := filterDocument([]query.Condition{{Field: "category", Op: query.OpIn, Value: []any{"shoes"}}})

	in := filter["category"].(bson.M)["$in"].(bson.A)
	if len(in) != 1 || in[0] != "shoes" {
		t.Errorf("expected raw string to be kept, got %v", in)
	}
}

func TestSortDocument(t *testing.T) {
	tests := []struct {
		name string
		keys []query.SortField
		want bson.D
	}{
		{"default", nil, bson.D{{Key: "created_at", Value: 1}, {Key: "_id", Value: 1}}},
		{"descending price", []query.SortField{{Field: "price", Desc: true}}, bson.D{
			{Key: "price", Value: -1}, {Key: "created_at", Value: 1}, {Key: "_id", Value: 1},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := sortDocument(tt.keys)
			if len(got) != len(tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, got)
			}
			for i := range got {
				if got[i].Key != tt.want[i].Key || got[i].Value != tt.want[i].Value {
					t.Errorf("position %d: expected %v, got %v", i, tt.want[i], got[i])
				}
			}
		})
	}
}

func TestFindPipeline(t *testing.T) {
	q := query.ProductQuery{
		Fields:     []string{"id", "title", "category"},
		Pagination: query.Pagination{Page: 2, Limit: 10},
	}
	pipeline := findPipeline(q)

	stages := []string{"$match", "$sort", "$skip", "$limit", "$lookup", "$set", "$unset", "$project"}
	if len(pipeline) != len(stages) {
		t.Fatalf("expected %d stages, got %d", len(stages), len(pipeline))
	}
	for i, stage := range stages {
		if pipeline[i][0].Key != stage {
			t.Errorf("stage %d: expected %s, got %s", i, stage, pipeline[i][0].Key)
		}
	}
	if skip := pipeline[2][0].Value; skip != int64(10) {
		t.Errorf("expected skip 10, got %v", skip)
	}

	proj := pipeline[7][0].Value.(bson.M)
	for _, key := range []string{"_id", "title", "category", "category_name"} {
		if proj[key] != 1 {
			t.Errorf("expected %s in projection, got %v", key, proj)
		}
	}
	if _, ok := proj["id"]; ok {
		t.Error("id must be projected as _id")
	}
}

func TestFindPipelineWithoutFields(t *testing.T) {
	pipeline := findPipeline(query.ProductQuery{Pagination: query.Pagination{Page: 1, Limit: 50}})
	if last := pipeline[len(pipeline)-1][0].Key; last != "$unset" {
		t.Errorf("expected no projection stage, last stage is %s", last)
	}
}

func TestUpdateDocument(t *testing.T) {
	now := time.Now().UTC()
	title, slug := "Running Shoes", "running-shoes"
	empty := ""

	update, err := updateDocument(models.ProductPatch{Title: &title, Slug: &slug, CategoryID: &empty}, now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	set := update["$set"].(bson.M)
	if set["title"] != title || set["slug"] != slug || set["updated_at"] != now {
		t.Errorf("unexpected $set %v", set)
	}
	if _, ok := set["price"]; ok {
		t.Error("absent fields must not be set")
	}
	if _, ok := update["$unset"]; !ok {
		t.Error("expected empty category to be unset")
	}
}

func TestUpdateDocumentRejectsMalformedCategory(t *testing.T) {
	bad := "nope"
	_, err := updateDocument(models.ProductPatch{CategoryID: &bad}, time.Now())
	if !errors.Is(err, ErrInvalidID) {
		t.Errorf("expected ErrInvalidID, got %v", err)
	}
}

func TestProductDocumentToProduct(t *testing.T) {
	oid, cat := primitive.NewObjectID(), primitive.NewObjectID()
	name := "Shoes"
	doc := productDocument{ID: oid, Title: "Red Shoes", Category: &cat, CategoryName: &name}

	p := doc.toProduct()
	if p.ID != oid.Hex() || p.CategoryID != cat.Hex() {
		t.Errorf("unexpected ids %s %s", p.ID, p.CategoryID)
	}
	if p.Category == nil || p.Category.Name != "Shoes" {
		t.Errorf("expected expanded category, got %+v", p.Category)
	}
	if p.Colors == nil || p.Images == nil {
		t.Error("expected empty lists instead of nil")
	}
}
