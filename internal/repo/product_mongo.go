package repo

import (
	"context"
	"fmt"
	"time"

	"github.com/rogerio-castellano/catalog-api/internal/models"
	"github.com/rogerio-castellano/catalog-api/internal/query"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

const (
	productsCollection   = "products"
	categoriesCollection = "categories"
)

// productDocument is the stored shape of a product. CategoryName is only
// present on documents read back through the category lookup.
type productDocument struct {
	ID                 primitive.ObjectID  `bson:"_id,omitempty"`
	Title              string              `bson:"title"`
	Slug               string              `bson:"slug"`
	Description        string              `bson:"description"`
	Quantity           int                 `bson:"quantity"`
	Sold               int                 `bson:"sold"`
	Price              float64             `bson:"price"`
	PriceAfterDiscount *float64            `bson:"price_after_discount,omitempty"`
	Colors             []string            `bson:"colors"`
	ImageCover         string              `bson:"image_cover"`
	Images             []string            `bson:"images"`
	Category           *primitive.ObjectID `bson:"category,omitempty"`
	CategoryName       *string             `bson:"category_name,omitempty"`
	RatingsAverage     *float64            `bson:"ratings_average,omitempty"`
	RatingsQuantity    int                 `bson:"ratings_quantity"`
	CreatedAt          time.Time           `bson:"created_at"`
	UpdatedAt          time.Time           `bson:"updated_at"`
}

type MongoProductRepository struct {
	products *mongo.Collection
	timeout  time.Duration
}

func NewMongoProductRepository(db *mongo.Database, timeout time.Duration) *MongoProductRepository {
	if timeout <= 0 {
		timeout = defaultQueryTimeout
	}
	return &MongoProductRepository{products: db.Collection(productsCollection), timeout: timeout}
}

func (r *MongoProductRepository) ValidID(id string) bool {
	return primitive.IsValidObjectID(id)
}

func (r *MongoProductRepository) Find(ctx context.Context, q query.ProductQuery) ([]models.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	pipeline := findPipeline(q)
	return r.aggregate(ctx, pipeline)
}

func (r *MongoProductRepository) FindByID(ctx context.Context, id string) (models.Product, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return models.Product{}, fmt.Errorf("%w: %q", ErrInvalidID, id)
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	pipeline := append(mongo.Pipeline{{{Key: "$match", Value: bson.M{"_id": oid}}}}, categoryLookup()...)
	products, err := r.aggregate(ctx, pipeline)
	if err != nil {
		return models.Product{}, err
	}
	if len(products) == 0 {
		return models.Product{}, ErrProductNotFound
	}
	return products[0], nil
}

func (r *MongoProductRepository) Create(ctx context.Context, p models.Product) (models.Product, error) {
	doc, err := newProductDocument(p)
	if err != nil {
		return models.Product{}, err
	}
	now := time.Now().UTC()
	doc.ID = primitive.NewObjectID()
	doc.CreatedAt, doc.UpdatedAt = now, now

	insertCtx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	if _, err := r.products.InsertOne(insertCtx, doc); err != nil {
		return models.Product{}, fmt.Errorf("failed to insert product: %w", err)
	}
	return r.FindByID(ctx, doc.ID.Hex())
}

func (r *MongoProductRepository) Update(ctx context.Context, id string, patch models.ProductPatch) (models.Product, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return models.Product{}, fmt.Errorf("%w: %q", ErrInvalidID, id)
	}
	update, err := updateDocument(patch, time.Now().UTC())
	if err != nil {
		return models.Product{}, err
	}

	updateCtx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	res, err := r.products.UpdateOne(updateCtx, bson.M{"_id": oid}, update)
	if err != nil {
		return models.Product{}, fmt.Errorf("failed to update product: %w", err)
	}
	if res.MatchedCount == 0 {
		return models.Product{}, ErrProductNotFound
	}
	return r.FindByID(ctx, id)
}

func (r *MongoProductRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidID, id)
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	res, err := r.products.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrProductNotFound
	}
	return nil
}

func (r *MongoProductRepository) aggregate(ctx context.Context, pipeline mongo.Pipeline) ([]models.Product, error) {
	cur, err := r.products.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer cur.Close(ctx)

	var docs []productDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}
	products := make([]models.Product, 0, len(docs))
	for _, d := range docs {
		products = append(products, d.toProduct())
	}
	return products, nil
}

// findPipeline matches, orders and pages before the category lookup so the
// join only runs for the returned page.
func findPipeline(q query.ProductQuery) mongo.Pipeline {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: filterDocument(q.Filter)}},
		{{Key: "$sort", Value: sortDocument(q.Sort)}},
		{{Key: "$skip", Value: int64(q.Pagination.Skip())}},
		{{Key: "$limit", Value: int64(q.Pagination.Limit)}},
	}
	pipeline = append(pipeline, categoryLookup()...)
	if len(q.Fields) > 0 {
		pipeline = append(pipeline, bson.D{{Key: "$project", Value: projection(q.Fields)}})
	}
	return pipeline
}

func categoryLookup() mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: categoriesCollection},
			{Key: "localField", Value: "category"},
			{Key: "foreignField", Value: "_id"},
			{Key: "as", Value: "category_docs"},
		}}},
		{{Key: "$set", Value: bson.M{
			"category_name": bson.M{"$arrayElemAt": bson.A{"$category_docs.name", 0}},
		}}},
		{{Key: "$unset", Value: "category_docs"}},
	}
}

func filterDocument(conds []query.Condition) bson.M {
	filter := bson.M{}
	for _, c := range conds {
		value := c.Value
		if c.Field == "category" {
			value = categoryValue(value)
		}
		ops, ok := filter[c.Field].(bson.M)
		if !ok {
			ops = bson.M{}
			filter[c.Field] = ops
		}
		ops[c.Op] = value
	}
	return filter
}

// categoryValue turns hex ids into ObjectIDs. Anything else is kept as a
// string so it simply matches nothing.
func categoryValue(v any) any {
	switch t := v.(type) {
	case string:
		if oid, err := primitive.ObjectIDFromHex(t); err == nil {
			return oid
		}
		return t
	case []any:
		out := make(bson.A, 0, len(t))
		for _, item := range t {
			out = append(out, categoryValue(item))
		}
		return out
	}
	return v
}

func sortDocument(keys []query.SortField) bson.D {
	sortDoc := bson.D{}
	for _, k := range keys {
		dir := 1
		if k.Desc {
			dir = -1
		}
		sortDoc = append(sortDoc, bson.E{Key: k.Field, Value: dir})
	}
	return append(sortDoc, bson.E{Key: "created_at", Value: 1}, bson.E{Key: "_id", Value: 1})
}

func projection(fields []string) bson.M {
	proj := bson.M{"_id": 1}
	for _, f := range fields {
		switch f {
		case "id":
		case "category":
			proj["category"] = 1
			proj["category_name"] = 1
		default:
			proj[f] = 1
		}
	}
	return proj
}

func updateDocument(patch models.ProductPatch, now time.Time) (bson.M, error) {
	set := bson.M{"updated_at": now}
	update := bson.M{}

	if patch.Title != nil {
		set["title"] = *patch.Title
	}
	if patch.Slug != nil {
		set["slug"] = *patch.Slug
	}
	if patch.Description != nil {
		set["description"] = *patch.Description
	}
	if patch.Quantity != nil {
		set["quantity"] = *patch.Quantity
	}
	if patch.Sold != nil {
		set["sold"] = *patch.Sold
	}
	if patch.Price != nil {
		set["price"] = *patch.Price
	}
	if patch.PriceAfterDiscount != nil {
		set["price_after_discount"] = *patch.PriceAfterDiscount
	}
	if patch.Colors != nil {
		set["colors"] = *patch.Colors
	}
	if patch.ImageCover != nil {
		set["image_cover"] = *patch.ImageCover
	}
	if patch.Images != nil {
		set["images"] = *patch.Images
	}
	if patch.CategoryID != nil {
		if *patch.CategoryID == "" {
			update["$unset"] = bson.M{"category": ""}
		} else {
			oid, err := primitive.ObjectIDFromHex(*patch.CategoryID)
			if err != nil {
				return nil, fmt.Errorf("%w: category %q", ErrInvalidID, *patch.CategoryID)
			}
			set["category"] = oid
		}
	}
	if patch.RatingsAverage != nil {
		set["ratings_average"] = *patch.RatingsAverage
	}
	if patch.RatingsQuantity != nil {
		set["ratings_quantity"] = *patch.RatingsQuantity
	}

	update["$set"] = set
	return update, nil
}

func newProductDocument(p models.Product) (productDocument, error) {
	doc := productDocument{
		Title:              p.Title,
		Slug:               p.Slug,
		Description:        p.Description,
		Quantity:           p.Quantity,
		Sold:               p.Sold,
		Price:              p.Price,
		PriceAfterDiscount: p.PriceAfterDiscount,
		Colors:             p.Colors,
		ImageCover:         p.ImageCover,
		Images:             p.Images,
		RatingsAverage:     p.RatingsAverage,
		RatingsQuantity:    p.RatingsQuantity,
	}
	if doc.Colors == nil {
		doc.Colors = []string{}
	}
	if doc.Images == nil {
		doc.Images = []string{}
	}
	if p.CategoryID != "" {
		oid, err := primitive.ObjectIDFromHex(p.CategoryID)
		if err != nil {
			return productDocument{}, fmt.Errorf("%w: category %q", ErrInvalidID, p.CategoryID)
		}
		doc.Category = &oid
	}
	return doc, nil
}

func (d productDocument) toProduct() models.Product {
	p := models.Product{
		ID:                 d.ID.Hex(),
		Title:              d.Title,
		Slug:               d.Slug,
		Description:        d.Description,
		Quantity:           d.Quantity,
		Sold:               d.Sold,
		Price:              d.Price,
		PriceAfterDiscount: d.PriceAfterDiscount,
		Colors:             d.Colors,
		ImageCover:         d.ImageCover,
		Images:             d.Images,
		RatingsAverage:     d.RatingsAverage,
		RatingsQuantity:    d.RatingsQuantity,
		CreatedAt:          d.CreatedAt,
		UpdatedAt:          d.UpdatedAt,
	}
	if p.Colors == nil {
		p.Colors = []string{}
	}
	if p.Images == nil {
		p.Images = []string{}
	}
	if d.Category != nil {
		p.CategoryID = d.Category.Hex()
	}
	if d.CategoryName != nil {
		p.Category = &models.CategoryRef{Name: *d.CategoryName}
	}
	return p
}
